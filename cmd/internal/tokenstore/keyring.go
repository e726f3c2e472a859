package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// DefaultService is the keyring service name (application identity).
	DefaultService = "com.sketwhint.app"
	// DefaultAccount is the keyring account under which the token lives.
	DefaultAccount = "session-token"
)

// Keyring stores the token in the OS secure credential store.
type Keyring struct {
	service string
	account string
}

// NewKeyring constructs a Keyring store. Blank service/account fall back to
// the application defaults.
func NewKeyring(service, account string) *Keyring {
	if strings.TrimSpace(service) == "" {
		service = DefaultService
	}
	if strings.TrimSpace(account) == "" {
		account = DefaultAccount
	}
	return &Keyring{service: service, account: account}
}

// Save persists token, replacing any previous value.
func (k *Keyring) Save(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}
	if err := keyring.Set(k.service, k.account, token); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

// Load returns the persisted token, or ErrNotFound.
func (k *Keyring) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err := keyring.Get(k.service, k.account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("keyring get: %w", err)
	}
	if v == "" {
		return "", ErrNotFound
	}
	return v, nil
}

// Clear removes the persisted token.
func (k *Keyring) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := keyring.Delete(k.service, k.account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}
