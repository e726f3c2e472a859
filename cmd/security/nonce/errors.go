package nonce

import "errors"

// Public, stable errors for callers.
var (
	ErrInvalidLength = errors.New("nonce length must be positive")
)
