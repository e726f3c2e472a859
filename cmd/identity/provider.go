package identity

import "context"

// ProviderKind names a supported federated identity provider.
type ProviderKind string

const (
	// ProviderApple is Sign in with Apple.
	ProviderApple ProviderKind = "apple"
	// ProviderGoogle is Google Sign-In.
	ProviderGoogle ProviderKind = "google"
)

// Credentials is the normalized result of one federated authorization attempt.
//
// IdentityToken is always present on success. AccessToken is Google-only.
// HashedNonce is Apple-only and matches the nonce embedded in IdentityToken.
// Profile hints (names, email) are best-effort: Apple only discloses them on
// the very first authorization for an account.
type Credentials struct {
	Provider      ProviderKind
	IdentityToken string
	AccessToken   string
	HashedNonce   string
	GivenName     string
	FamilyName    string
	Email         string
}

// Provider abstracts a platform identity SDK behind one authorization call.
//
// Authorize blocks until the platform flow completes, the user cancels, or
// ctx is done. Implementations must return ErrIdentityTokenMissing (wrapped)
// when the flow completed without a usable identity token.
type Provider interface {
	Kind() ProviderKind
	Authorize(ctx context.Context) (Credentials, error)
}
