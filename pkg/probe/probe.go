package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"intellica/pkg/log"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	// DefaultURL is the local Intellica backend root endpoint.
	DefaultURL = "http://localhost:8000/"

	// MissingMessage stands in for an absent "message" field.
	MissingMessage = "undefined"

	maxBodyBytes = 1 << 20
)

// Options tune the probe client. The zero value issues a single request
// with no timeout.
type Options struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Client issues the backend health check.
type Client struct {
	url    string
	client *retryablehttp.Client
}

// New creates a probe client for the given backend URL.
func New(backendURL string, opts Options) (*Client, error) {
	if !strings.HasPrefix(backendURL, "http://") && !strings.HasPrefix(backendURL, "https://") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, backendURL)
	}

	return &Client{
		url:    backendURL,
		client: newRetryableClient(opts),
	}, nil
}

// URL returns the probed backend URL.
func (c *Client) URL() string {
	return c.url
}

// Check performs one GET against the backend and returns its message.
func (c *Client) Check(ctx context.Context) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("health check %s: %w", c.url, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close health check response body")
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("health check %s: read body: %w", c.url, err)
	}

	return ParseMessage(body)
}

// ParseMessage extracts the "message" field from a health check body.
// A JSON null body is malformed. Any other JSON value that is not an object,
// or an object without the field, yields MissingMessage. Field values are
// stringified the way a browser template literal would.
func ParseMessage(body []byte) (string, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	switch v := doc.(type) {
	case nil:
		return "", fmt.Errorf("%w: body is null", ErrMalformedBody)
	case map[string]any:
		message, ok := v["message"]
		if !ok {
			return MissingMessage, nil
		}
		return stringify(message), nil
	default:
		return MissingMessage, nil
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case []any:
		parts := make([]string, len(v))
		for i, elem := range v {
			if elem != nil {
				parts[i] = stringify(elem)
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

// formatNumber renders f like Number.prototype.toString: plain decimals in
// [1e-6, 1e21), exponent form with no padded exponent digits outside it.
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

func newRetryableClient(opts Options) *retryablehttp.Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = opts.Timeout

	client := retryablehttp.NewClient()
	client.HTTPClient = httpClient
	client.RetryMax = opts.RetryMax
	if opts.RetryWaitMin > 0 {
		client.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		client.RetryWaitMax = opts.RetryWaitMax
	}
	client.Logger = nil
	client.CheckRetry = retryTransportErrors
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return client
}

// retryTransportErrors retries only when no response was received.
// Any HTTP status, including 5xx, is returned to the caller as-is.
func retryTransportErrors(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if resp != nil {
		return false, nil
	}

	if err != nil {
		return true, nil //nolint:nilerr // retryablehttp reports the final error
	}

	return false, nil
}
