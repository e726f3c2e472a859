package identity

import (
	"context"
	"strings"
)

// GoogleAuthorization is what the platform SDK hands back for Google Sign-In.
type GoogleAuthorization struct {
	IDToken     string
	AccessToken string
	GivenName   string
	FamilyName  string
	Email       string
}

// GoogleAuthorizer runs one platform authorization request.
// No local nonce is involved: the Google SDK binds tokens to the request.
type GoogleAuthorizer interface {
	Authorize(ctx context.Context) (GoogleAuthorization, error)
}

// GoogleProvider adapts Google Sign-In to the Provider interface.
type GoogleProvider struct {
	auth GoogleAuthorizer
}

// NewGoogleProvider constructs a GoogleProvider over the given authorizer.
func NewGoogleProvider(auth GoogleAuthorizer) *GoogleProvider {
	return &GoogleProvider{auth: auth}
}

// Kind reports ProviderGoogle.
func (p *GoogleProvider) Kind() ProviderKind { return ProviderGoogle }

// Authorize runs the platform flow and relays the resulting tokens.
func (p *GoogleProvider) Authorize(ctx context.Context) (Credentials, error) {
	if p == nil || p.auth == nil {
		return Credentials{}, OpError{Op: "identity.google.Authorize", Kind: ErrIdentityTokenMissing, Msg: "authorizer not configured"}
	}

	res, err := p.auth.Authorize(ctx)
	if err != nil {
		return Credentials{}, OpError{Op: "identity.google.Authorize", Kind: err}
	}

	token := strings.TrimSpace(res.IDToken)
	if token == "" {
		return Credentials{}, OpError{Op: "identity.google.Authorize", Kind: ErrIdentityTokenMissing}
	}

	return Credentials{
		Provider:      ProviderGoogle,
		IdentityToken: token,
		AccessToken:   strings.TrimSpace(res.AccessToken),
		GivenName:     strings.TrimSpace(res.GivenName),
		FamilyName:    strings.TrimSpace(res.FamilyName),
		Email:         NormalizeEmail(res.Email),
	}, nil
}
