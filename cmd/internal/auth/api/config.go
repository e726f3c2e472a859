package authapi

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config controls the backend client.
type Config struct {
	// BaseURL is the backend origin, no trailing slash.
	BaseURL string
	// Timeout bounds one request end to end.
	Timeout time.Duration
	// MaxResponseBytes bounds how much of a response body we will read.
	MaxResponseBytes int64
	// UserAgent is sent on every request.
	UserAgent string
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:          "https://api.sketwhint.com",
		Timeout:          30 * time.Second,
		MaxResponseBytes: 1 << 20, // 1 MiB
		UserAgent:        "sketwhint-go",
	}
}

// LoadConfigFromEnv loads client config from environment variables with safe defaults.
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("SKETWHINT_API_URL")); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	cfg.Timeout = envDuration("SKETWHINT_API_TIMEOUT", cfg.Timeout)
	cfg.MaxResponseBytes = envInt64("SKETWHINT_API_MAX_RESPONSE_BYTES", cfg.MaxResponseBytes)
	if v := strings.TrimSpace(os.Getenv("SKETWHINT_API_USER_AGENT")); v != "" {
		cfg.UserAgent = v
	}

	return cfg
}

func envInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
