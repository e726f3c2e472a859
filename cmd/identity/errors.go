package identity

import (
	"errors"
	"fmt"
)

// Sentinel kinds for provider failures.
var (
	// ErrIdentityTokenMissing is returned when a provider flow completed but
	// produced no usable identity token. Treated like a local validation
	// failure: no network call is attempted.
	ErrIdentityTokenMissing = errors.New("identity token missing")

	// ErrCanceled is returned when the user dismissed the provider flow.
	ErrCanceled = errors.New("authorization canceled")
)

// OpError is a typed operation error with a stable Op + Kind contract for callers/tests.
// Kind MUST be one of the sentinel kinds when applicable. Msg may include
// human-readable context; do not include tokens or nonces.
type OpError struct {
	Op   string
	Kind error
	Msg  string
}

func (e OpError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

func (e OpError) Unwrap() error { return e.Kind }

// IsTokenMissing reports whether err represents ErrIdentityTokenMissing.
func IsTokenMissing(err error) bool { return errors.Is(err, ErrIdentityTokenMissing) }

// IsCanceled reports whether err represents ErrCanceled.
func IsCanceled(err error) bool { return errors.Is(err, ErrCanceled) }
