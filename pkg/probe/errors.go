package probe

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMalformedBody is returned when the backend answers with something other than a JSON object.
	ErrMalformedBody = errors.New("malformed health check body")

	// ErrInvalidURL is returned when the backend URL is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("backend URL must start with http:// or https://")
)

// StatusError represents a non-2xx answer from the backend.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
