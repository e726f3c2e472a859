package session

import (
	"errors"
	"fmt"
	"net/http"

	"sketwhint/cmd/identity"
	authapi "sketwhint/cmd/internal/auth/api"
)

// ValidationError is a local, pre-network, deterministic rejection.
// It never causes a network call.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation %s: %s", e.Field, e.Msg)
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsInvalidCredentials reports whether err is the backend's
// invalid-credential rejection.
func IsInvalidCredentials(err error) bool {
	be, ok := authapi.AsBackendError(err)
	if !ok {
		return false
	}
	return be.Status == http.StatusUnauthorized || be.Code == "invalid_credentials"
}

// genericRetryMessage hides transport details from the user.
const genericRetryMessage = "Something went wrong. Please check your connection and try again."

// UserMessage converts an orchestrator error into presentation text.
//
// Backend messages are shown verbatim; transport failures collapse into a
// generic retry message (the original error is logged, never shown); a
// canceled provider flow produces no message at all.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Msg
	}
	if be, ok := authapi.AsBackendError(err); ok {
		return be.Message
	}
	if identity.IsCanceled(err) {
		return ""
	}
	if identity.IsTokenMissing(err) {
		return "We couldn't read your sign-in from the provider. Please try again."
	}
	return genericRetryMessage
}
