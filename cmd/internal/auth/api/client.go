package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Endpoint paths on the backend origin.
const (
	pathSignIn         = "/auth/signin"
	pathSignUp         = "/auth/signup"
	pathVerifyOTP      = "/auth/verify-otp"
	pathResendOTP      = "/auth/resend-otp"
	pathForgotPassword = "/auth/forgot-password"
	pathResetPassword  = "/auth/reset-password"
	pathFederated      = "/auth/oauth"
	pathProfile        = "/auth/me"
)

// Client talks to the SketWhint backend.
type Client struct {
	cfg   Config
	httpc *http.Client
	log   *slog.Logger
}

// ClientOption configures optional client dependencies.
type ClientOption func(*Client)

// WithHTTPClient overrides the default http.Client (e.g., to install a
// logging transport or a test server client).
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		if c == nil || h == nil {
			return
		}
		c.httpc = h
	}
}

// New constructs a Client from config.
func New(cfg Config, log *slog.Logger, opts ...ClientOption) *Client {
	if log == nil {
		log = slog.Default()
	}

	c := &Client{
		cfg:   cfg,
		httpc: &http.Client{Timeout: cfg.Timeout},
		log:   log,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// SignIn exchanges email+password for a user and session token.
func (c *Client) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	var out SignInResult
	err := c.post(ctx, pathSignIn, "", signInRequest{Email: email, Password: password}, &out)
	return out, err
}

// FederatedSignInParams carries a provider's normalized credentials.
type FederatedSignInParams struct {
	Provider      string
	IdentityToken string
	AccessToken   string
	HashedNonce   string
	GivenName     string
	FamilyName    string
	Email         string
}

// FederatedSignIn exchanges a provider identity token for a user and session
// token. RequestSignUp is always true: the backend creates the account on
// first federated sign-in.
func (c *Client) FederatedSignIn(ctx context.Context, p FederatedSignInParams) (SignInResult, error) {
	var out SignInResult
	err := c.post(ctx, pathFederated, "", federatedSignInRequest{
		Provider:      p.Provider,
		IdentityToken: p.IdentityToken,
		AccessToken:   p.AccessToken,
		HashedNonce:   p.HashedNonce,
		GivenName:     p.GivenName,
		FamilyName:    p.FamilyName,
		Email:         p.Email,
		RequestSignUp: true,
	}, &out)
	return out, err
}

// SignUp registers an account. No session is issued; the backend emails an OTP.
func (c *Client) SignUp(ctx context.Context, name, email, password string) (SignUpResult, error) {
	var out SignUpResult
	err := c.post(ctx, pathSignUp, "", signUpRequest{Name: name, Email: email, Password: password}, &out)
	return out, err
}

// VerifyOTP submits the emailed code.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (VerifyOTPResult, error) {
	var out VerifyOTPResult
	err := c.post(ctx, pathVerifyOTP, "", verifyOTPRequest{Email: email, Code: code}, &out)
	return out, err
}

// ResendOTP asks the backend to email a fresh code.
func (c *Client) ResendOTP(ctx context.Context, email string) (ResendOTPResult, error) {
	var out ResendOTPResult
	err := c.post(ctx, pathResendOTP, "", resendOTPRequest{Email: email}, &out)
	return out, err
}

// RequestPasswordReset asks the backend to email a reset code.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, pathForgotPassword, "", forgotPasswordRequest{Email: email}, nil)
}

// ResetPassword completes a reset with the emailed code. No session is
// issued; the caller re-authenticates afterward.
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return c.post(ctx, pathResetPassword, "", resetPasswordRequest{
		Email:       email,
		Code:        code,
		NewPassword: newPassword,
	}, nil)
}

// Profile fetches the user owning token. Used to restore a session at
// process start.
func (c *Client) Profile(ctx context.Context, token string) (User, error) {
	var out profileResponse
	if err := c.get(ctx, pathProfile, token, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

// ---- transport ----

func (c *Client) post(ctx context.Context, path, token string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return &TransportError{Op: "authapi.encode " + path, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: "authapi.request " + path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	return c.do(req, path, token, out)
}

func (c *Client) get(ctx context.Context, path, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return &TransportError{Op: "authapi.request " + path, Err: err}
	}
	return c.do(req, path, token, out)
}

func (c *Client) do(req *http.Request, path, token string, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &TransportError{Op: "authapi.do " + path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxResponseBytes))
	if err != nil {
		return &TransportError{Op: "authapi.read " + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, body, path)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Op: "authapi.decode " + path, Err: err}
	}
	return nil
}

// decodeError maps a non-2xx response to *Error when the backend sent its
// JSON envelope, or *TransportError when the body is not ours to interpret.
func decodeError(status int, body []byte, path string) error {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && strings.TrimSpace(envelope.Error.Message) != "" {
		return &Error{
			Status:  status,
			Code:    envelope.Error.Code,
			Message: envelope.Error.Message,
		}
	}
	return &TransportError{
		Op:  "authapi.status " + path,
		Err: fmt.Errorf("unexpected status %d", status),
	}
}
