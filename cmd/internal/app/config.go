package app

// Config contains the client runtime configuration loaded from environment
// variables. Component-level settings (API endpoint, password policy, OTP
// timers) are loaded by their own packages; this covers the app shell.
type Config struct {
	LogLevel  string
	LogFormat string // "json" or "pretty"
	LogColor  bool

	// TokenStore selects where the session token is persisted:
	// "keyring", "file", "memory", or "auto" (keyring with file fallback).
	TokenStore string

	// TokenFilePath overrides the file-store location. Empty means the
	// per-user config directory.
	TokenFilePath string

	KeyringService string
	KeyringAccount string
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		LogLevel:  EnvString("SKETWHINT_LOG_LEVEL", "info"),
		LogFormat: EnvString("SKETWHINT_LOG_FORMAT", "json"),
		LogColor:  EnvBool("SKETWHINT_LOG_COLOR", true),

		TokenStore:    EnvString("SKETWHINT_TOKEN_STORE", "auto"),
		TokenFilePath: EnvString("SKETWHINT_TOKEN_FILE", ""),

		KeyringService: EnvString("SKETWHINT_KEYRING_SERVICE", ""),
		KeyringAccount: EnvString("SKETWHINT_KEYRING_ACCOUNT", ""),
	}
}
