package tokenstore

import (
	"context"
	"strings"
	"sync"
)

// Memory is an in-memory Store for tests and smoke tooling.
type Memory struct {
	mu    sync.Mutex
	token string
	set   bool

	// FailSaves makes Save return an error; used to exercise the
	// "store failures are non-fatal" contract.
	FailSaves error
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Save persists token, replacing any previous value.
func (m *Memory) Save(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves != nil {
		return m.FailSaves
	}
	m.token = token
	m.set = true
	return nil
}

// Load returns the persisted token, or ErrNotFound.
func (m *Memory) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", ErrNotFound
	}
	return m.token, nil
}

// Clear removes the persisted token.
func (m *Memory) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.set = false
	return nil
}
