package password

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Policy controls local password validation boundaries.
type Policy struct {
	// SignInMinLength is the floor applied to sign-in and sign-up passwords.
	SignInMinLength int
	// ResetMinLength is the stricter floor applied to new passwords during reset.
	ResetMinLength int
	// MaxLength is an anti-abuse upper bound on any password we accept locally.
	MaxLength int
	// If true, enable an extra, minimal weak-pattern rejection.
	RejectVeryWeak bool
}

// Config is the single configuration surface for this package.
type Config struct {
	Policy Policy
}

// DefaultConfig returns the policy the SketWhint backend historically enforced.
func DefaultConfig() Config {
	return Config{
		Policy: Policy{
			SignInMinLength: 6,
			ResetMinLength:  8,
			MaxLength:       256,
			RejectVeryWeak:  false,
		},
	}
}

// FromEnv loads config from environment variables.
//
// Env surface:
// - SKETWHINT_PASSWORD_SIGNIN_MIN_LEN
// - SKETWHINT_PASSWORD_RESET_MIN_LEN
// - SKETWHINT_PASSWORD_MAX_LEN
// - SKETWHINT_PASSWORD_REJECT_VERY_WEAK (true/false)
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv("SKETWHINT_PASSWORD_SIGNIN_MIN_LEN"); ok {
		n, err := atoiPositiveInt(v, 1, 1024)
		if err != nil {
			return Config{}, fmt.Errorf("SKETWHINT_PASSWORD_SIGNIN_MIN_LEN: %w", err)
		}
		cfg.Policy.SignInMinLength = n
	}

	if v, ok := os.LookupEnv("SKETWHINT_PASSWORD_RESET_MIN_LEN"); ok {
		n, err := atoiPositiveInt(v, 1, 1024)
		if err != nil {
			return Config{}, fmt.Errorf("SKETWHINT_PASSWORD_RESET_MIN_LEN: %w", err)
		}
		cfg.Policy.ResetMinLength = n
	}

	if v, ok := os.LookupEnv("SKETWHINT_PASSWORD_MAX_LEN"); ok {
		n, err := atoiPositiveInt(v, 1, 4096)
		if err != nil {
			return Config{}, fmt.Errorf("SKETWHINT_PASSWORD_MAX_LEN: %w", err)
		}
		cfg.Policy.MaxLength = n
	}

	if v, ok := os.LookupEnv("SKETWHINT_PASSWORD_REJECT_VERY_WEAK"); ok {
		b, err := parseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("SKETWHINT_PASSWORD_REJECT_VERY_WEAK: %w", err)
		}
		cfg.Policy.RejectVeryWeak = b
	}

	// Final sanity.
	if cfg.Policy.SignInMinLength > cfg.Policy.MaxLength || cfg.Policy.ResetMinLength > cfg.Policy.MaxLength {
		return Config{}, fmt.Errorf(
			"password policy invalid: min(%d/%d) > max_len(%d)",
			cfg.Policy.SignInMinLength,
			cfg.Policy.ResetMinLength,
			cfg.Policy.MaxLength,
		)
	}

	return cfg, nil
}

func atoiPositiveInt(s string, minVal, maxVal int) (int, error) {
	s = strings.TrimSpace(s)
	i64, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}

	i := int(i64)
	if i < minVal || i > maxVal {
		return 0, fmt.Errorf("out of range [%d..%d]", minVal, maxVal)
	}
	return i, nil
}

func parseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "1", "true", "TRUE", "True", "yes", "YES", "Yes", "on", "ON", "On":
		return true, nil
	case "0", "false", "FALSE", "False", "no", "NO", "No", "off", "OFF", "Off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean")
	}
}
