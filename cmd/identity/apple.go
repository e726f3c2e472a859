package identity

import (
	"context"
	"strings"

	"sketwhint/cmd/security/nonce"
)

// AppleAuthorization is what the platform SDK hands back after the user
// approves (or the flow fails).
type AppleAuthorization struct {
	IdentityToken string
	GivenName     string
	FamilyName    string
	Email         string
}

// AppleAuthorizer runs one platform authorization request carrying the hashed
// nonce. Implementations bridge to the OS SDK; tests use fakes.
type AppleAuthorizer interface {
	Authorize(ctx context.Context, hashedNonce string) (AppleAuthorization, error)
}

// AppleProvider adapts Sign in with Apple to the Provider interface.
type AppleProvider struct {
	auth AppleAuthorizer
}

// NewAppleProvider constructs an AppleProvider over the given authorizer.
func NewAppleProvider(auth AppleAuthorizer) *AppleProvider {
	return &AppleProvider{auth: auth}
}

// Kind reports ProviderApple.
func (p *AppleProvider) Kind() ProviderKind { return ProviderApple }

// Authorize generates a fresh nonce pair, runs the platform flow with the
// hashed value, and returns normalized credentials.
//
// The raw nonce is scoped to this call: the backend verifies the provider's
// signed token against the hash, so the raw value is simply dropped here,
// on cancellation, and on failure alike.
func (p *AppleProvider) Authorize(ctx context.Context) (Credentials, error) {
	if p == nil || p.auth == nil {
		return Credentials{}, OpError{Op: "identity.apple.Authorize", Kind: ErrIdentityTokenMissing, Msg: "authorizer not configured"}
	}

	pair, err := nonce.New()
	if err != nil {
		return Credentials{}, OpError{Op: "identity.apple.Authorize", Kind: err}
	}

	res, err := p.auth.Authorize(ctx, pair.Hashed)
	if err != nil {
		return Credentials{}, OpError{Op: "identity.apple.Authorize", Kind: err}
	}

	token := strings.TrimSpace(res.IdentityToken)
	if token == "" {
		return Credentials{}, OpError{Op: "identity.apple.Authorize", Kind: ErrIdentityTokenMissing}
	}

	return Credentials{
		Provider:      ProviderApple,
		IdentityToken: token,
		HashedNonce:   pair.Hashed,
		GivenName:     strings.TrimSpace(res.GivenName),
		FamilyName:    strings.TrimSpace(res.FamilyName),
		Email:         NormalizeEmail(res.Email),
	}, nil
}
