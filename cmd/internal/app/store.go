package app

import (
	"context"
	"fmt"

	"sketwhint/cmd/internal/tokenstore"
)

// newTokenStore selects the token persistence backend from config.
//
// "auto" probes the OS keyring with a read; if the keyring daemon is
// missing (headless Linux, CI) it falls back to the file store so sessions
// still survive restarts.
func newTokenStore(ctx context.Context, cfg Config, log Logger) (tokenstore.Store, error) {
	switch cfg.TokenStore {
	case "keyring":
		return tokenstore.NewKeyring(cfg.KeyringService, cfg.KeyringAccount), nil
	case "file":
		return newFileStore(cfg)
	case "memory":
		log.Info("tokenstore.memory")
		return tokenstore.NewMemory(), nil
	case "auto", "":
		kr := tokenstore.NewKeyring(cfg.KeyringService, cfg.KeyringAccount)
		if _, err := kr.Load(ctx); err != nil && !tokenstore.IsNotFound(err) {
			log.Warn("tokenstore.keyring.unavailable", "err", err)
			return newFileStore(cfg)
		}
		log.Info("tokenstore.keyring")
		return kr, nil
	default:
		return nil, fmt.Errorf("unknown token store %q", cfg.TokenStore)
	}
}

func newFileStore(cfg Config) (tokenstore.Store, error) {
	path := cfg.TokenFilePath
	if path == "" {
		var err error
		path, err = tokenstore.DefaultFilePath()
		if err != nil {
			return nil, err
		}
	}
	return tokenstore.NewFile(path), nil
}
