package session

import (
	"sketwhint/cmd/security/password"
)

const resetCodeDigits = 6

// Config controls local validation policy for the orchestrator.
type Config struct {
	Passwords password.Config
}

// DefaultConfig returns the historical SketWhint policy (sign-in floor 6,
// reset floor 8).
func DefaultConfig() Config {
	return Config{Passwords: password.DefaultConfig()}
}

// LoadConfigFromEnv loads orchestrator config from environment variables.
func LoadConfigFromEnv() (Config, error) {
	pw, err := password.FromEnv()
	if err != nil {
		return Config{}, err
	}
	return Config{Passwords: pw}, nil
}
