package otp

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config controls the verification flow timings.
type Config struct {
	// CodeDigits is the exact length of a valid code.
	CodeDigits int
	// ResendCountdown is the number of one-second ticks before resend unlocks.
	ResendCountdown int
	// GraceDelay is the pause between verified success and publishing the
	// authenticated user. Pure UX buffer; tunable.
	GraceDelay time.Duration
	// SuccessIndicatorFor is how long the transient resend confirmation shows.
	SuccessIndicatorFor time.Duration
}

// DefaultConfig returns the shipped timings.
func DefaultConfig() Config {
	return Config{
		CodeDigits:          6,
		ResendCountdown:     60,
		GraceDelay:          1500 * time.Millisecond,
		SuccessIndicatorFor: 3 * time.Second,
	}
}

// LoadConfigFromEnv loads flow timings from environment variables with safe defaults.
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ResendCountdown = envInt("SKETWHINT_OTP_RESEND_COUNTDOWN", cfg.ResendCountdown)
	cfg.GraceDelay = envDuration("SKETWHINT_OTP_GRACE_DELAY", cfg.GraceDelay)
	cfg.SuccessIndicatorFor = envDuration("SKETWHINT_OTP_SUCCESS_INDICATOR", cfg.SuccessIndicatorFor)
	return cfg
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
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
	if err != nil || d < 0 {
		return def
	}
	return d
}
