package tokenstore

import (
	"context"
	"errors"
)

// Public, stable errors for callers.
var (
	// ErrNotFound is returned by Load when no token is persisted.
	ErrNotFound = errors.New("no stored token")

	// ErrEmptyToken is returned by Save for a blank token.
	ErrEmptyToken = errors.New("empty token")
)

// Store abstracts durable persistence of the session token.
type Store interface {
	// Save persists token, replacing any previous value.
	Save(ctx context.Context, token string) error
	// Load returns the persisted token, or ErrNotFound.
	Load(ctx context.Context) (string, error)
	// Clear removes the persisted token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// IsNotFound reports whether err represents ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
