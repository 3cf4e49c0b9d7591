package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the status page.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Probe  ProbeConfig  `yaml:"probe"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// ProbeConfig holds backend health check configuration
type ProbeConfig struct {
	BackendURL   string        `yaml:"backendURL"`
	Timeout      time.Duration `yaml:"timeout"`
	RetryMax     int           `yaml:"retryMax"`
	RetryWaitMin time.Duration `yaml:"retryWaitMin"`
	RetryWaitMax time.Duration `yaml:"retryWaitMax"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default configuration values
const (
	DefaultAddr            = ":8080"
	DefaultBackendURL      = "http://localhost:8000/"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultRetryWaitMin    = 1 * time.Second
	DefaultRetryWaitMax    = 30 * time.Second
	DefaultLogLevel        = "info"
)

// Environment variable names
const (
	EnvAddr         = "INTELLICA_ADDR"
	EnvBackendURL   = "INTELLICA_BACKEND_URL"
	EnvProbeTimeout = "INTELLICA_PROBE_TIMEOUT"
	EnvProbeRetries = "INTELLICA_PROBE_RETRIES"
	EnvLogLevel     = "INTELLICA_LOG_LEVEL"
)

var (
	// ErrInvalidBackendURL is returned when the backend URL is not http(s).
	ErrInvalidBackendURL = errors.New("backend URL must start with http:// or https://")
	// ErrInvalidProbe is returned for negative probe timeouts or retry counts.
	ErrInvalidProbe = errors.New("probe timeout and retries must not be negative")
)

// Default returns the built-in configuration: one health check against the
// local backend, no timeout and no retries.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Probe: ProbeConfig{
			BackendURL:   DefaultBackendURL,
			RetryWaitMin: DefaultRetryWaitMin,
			RetryWaitMax: DefaultRetryWaitMax,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads the optional YAML file at path over the defaults and then
// applies environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 - path comes from the operator
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
		cfg.normalize()
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.normalize()

	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.Addr = getEnv(EnvAddr, c.Server.Addr)
	c.Probe.BackendURL = getEnv(EnvBackendURL, c.Probe.BackendURL)
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)

	timeout, err := getEnvDuration(EnvProbeTimeout, c.Probe.Timeout)
	if err != nil {
		return err
	}
	c.Probe.Timeout = timeout

	retries, err := getEnvInt(EnvProbeRetries, c.Probe.RetryMax)
	if err != nil {
		return err
	}
	c.Probe.RetryMax = retries

	return nil
}

// normalize trims surrounding whitespace from string settings.
func (c *Config) normalize() {
	c.Server.Addr = strings.TrimSpace(c.Server.Addr)
	c.Probe.BackendURL = strings.TrimSpace(c.Probe.BackendURL)
	c.Log.Level = strings.TrimSpace(c.Log.Level)
}

// Validate checks the configuration for values the status page cannot use.
func (c *Config) Validate() error {
	url := c.Probe.BackendURL
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%w: %q", ErrInvalidBackendURL, c.Probe.BackendURL)
	}
	if c.Probe.Timeout < 0 || c.Probe.RetryMax < 0 {
		return ErrInvalidProbe
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as integer or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

// getEnvDuration retrieves an environment variable as duration or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
