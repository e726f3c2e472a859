package session

import (
	"context"
	"log/slog"
	"time"

	"sketwhint/cmd/identity"
	"sketwhint/cmd/identity/ids"
	authapi "sketwhint/cmd/internal/auth/api"
	"sketwhint/cmd/internal/tokenstore"
)

// Service coordinates every auth operation and owns the active session.
//
// At most one session is active per process; establishing a new one
// supersedes the previous. The token is persisted before authenticated state
// flips so a restart restores the session deterministically.
type Service struct {
	cfg    Config
	api    *authapi.Client
	tokens tokenstore.Store
	state  *State
	log    *slog.Logger

	// token is the active session token, mirrored from the store.
	token string
}

// NewService constructs a Service with the provided configuration, backend
// client, token store, and state store.
func NewService(cfg Config, api *authapi.Client, tokens tokenstore.Store, state *State, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	if state == nil {
		state = NewState()
	}
	return &Service{cfg: cfg, api: api, tokens: tokens, state: state, log: log}
}

// State returns the observable session state shared with screens.
func (s *Service) State() *State { return s.state }

// Token returns the active session token ("" when signed out).
func (s *Service) Token() string { return s.token }

// SignIn authenticates with email+password.
//
// Validation failures return before any network call. Backend rejections and
// transport failures leave authenticated state untouched.
func (s *Service) SignIn(ctx context.Context, email, password string) (err error) {
	defer func() { observeAttempt("signin", err) }()

	if err = s.validateSignIn(email, password); err != nil {
		return err
	}

	attempt := s.newAttemptID()
	s.log.Info("auth.signin.start", "attempt_id", attempt)

	res, err := s.api.SignIn(ctx, identity.NormalizeEmail(email), password)
	if err != nil {
		s.log.Warn("auth.signin.fail", "attempt_id", attempt, "err", err)
		return err
	}

	s.Establish(ctx, res.User, res.Session.Token)
	s.log.Info("auth.signin.ok", "attempt_id", attempt, "user_id", res.User.ID)
	return nil
}

// SignInWith runs a federated provider flow end to end: provider
// authorization, then backend exchange, then session establishment.
func (s *Service) SignInWith(ctx context.Context, p identity.Provider) (err error) {
	method := "signin_" + string(p.Kind())
	defer func() { observeAttempt(method, err) }()

	attempt := s.newAttemptID()
	s.log.Info("auth.federated.start", "attempt_id", attempt, "provider", p.Kind())

	creds, err := p.Authorize(ctx)
	if err != nil {
		s.log.Warn("auth.federated.authorize.fail", "attempt_id", attempt, "provider", p.Kind(), "err", err)
		return err
	}

	return s.signInWithCredentials(ctx, attempt, creds)
}

// SignInWithCredentials exchanges already-obtained provider credentials for
// a session. Exposed for callers that drive the platform SDK themselves.
func (s *Service) SignInWithCredentials(ctx context.Context, creds identity.Credentials) (err error) {
	method := "signin_" + string(creds.Provider)
	defer func() { observeAttempt(method, err) }()

	attempt := s.newAttemptID()
	return s.signInWithCredentials(ctx, attempt, creds)
}

func (s *Service) signInWithCredentials(ctx context.Context, attempt string, creds identity.Credentials) error {
	if creds.IdentityToken == "" {
		return identity.OpError{Op: "session.SignInWithCredentials", Kind: identity.ErrIdentityTokenMissing}
	}

	res, err := s.api.FederatedSignIn(ctx, authapi.FederatedSignInParams{
		Provider:      string(creds.Provider),
		IdentityToken: creds.IdentityToken,
		AccessToken:   creds.AccessToken,
		HashedNonce:   creds.HashedNonce,
		GivenName:     creds.GivenName,
		FamilyName:    creds.FamilyName,
		Email:         creds.Email,
	})
	if err != nil {
		s.log.Warn("auth.federated.fail", "attempt_id", attempt, "provider", creds.Provider, "err", err)
		return err
	}

	s.Establish(ctx, res.User, res.Session.Token)
	s.log.Info("auth.federated.ok", "attempt_id", attempt, "provider", creds.Provider, "user_id", res.User.ID)
	return nil
}

// SignUp registers an account. On success no session exists yet: the backend
// emailed an OTP and the caller moves to the verification step.
func (s *Service) SignUp(ctx context.Context, name, email, password, confirm string) (err error) {
	defer func() { observeAttempt("signup", err) }()

	if err = s.validateSignUp(name, email, password, confirm); err != nil {
		return err
	}

	attempt := s.newAttemptID()
	s.log.Info("auth.signup.start", "attempt_id", attempt)

	res, err := s.api.SignUp(ctx, name, identity.NormalizeEmail(email), password)
	if err != nil {
		s.log.Warn("auth.signup.fail", "attempt_id", attempt, "err", err)
		return err
	}
	if !res.Success {
		s.log.Warn("auth.signup.rejected", "attempt_id", attempt)
		return &authapi.Error{Status: 200, Code: "signup_rejected", Message: res.Message}
	}

	s.log.Info("auth.signup.ok", "attempt_id", attempt)
	return nil
}

// RequestPasswordReset asks the backend to email a reset code.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (err error) {
	defer func() { observeAttempt("reset_request", err) }()

	email = identity.NormalizeEmail(email)
	if email == "" || !validEmail(email) {
		return &ValidationError{Field: "email", Msg: "Please enter a valid email address."}
	}

	attempt := s.newAttemptID()
	if err = s.api.RequestPasswordReset(ctx, email); err != nil {
		s.log.Warn("auth.reset.request.fail", "attempt_id", attempt, "err", err)
		return err
	}
	s.log.Info("auth.reset.request.ok", "attempt_id", attempt)
	return nil
}

// ResetPassword completes a reset. It never establishes a session; the user
// re-authenticates afterward.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) (err error) {
	defer func() { observeAttempt("reset", err) }()

	if err = s.validateReset(email, code, newPassword); err != nil {
		return err
	}

	attempt := s.newAttemptID()
	if err = s.api.ResetPassword(ctx, identity.NormalizeEmail(email), code, newPassword); err != nil {
		s.log.Warn("auth.reset.fail", "attempt_id", attempt, "err", err)
		return err
	}
	s.log.Info("auth.reset.ok", "attempt_id", attempt)
	return nil
}

// SignOut clears the persisted token, the active session, and the current user.
func (s *Service) SignOut(ctx context.Context) error {
	if err := s.tokens.Clear(ctx); err != nil {
		// Non-fatal: the in-memory session still ends now; a stale persisted
		// token only means one extra backend rejection after restart.
		s.log.Error("auth.signout.clear.fail", "err", err)
	}
	s.token = ""
	s.state.set(Snapshot{})
	s.log.Info("auth.signout.ok")
	return nil
}

// Restore re-establishes a session from the persisted token at process start.
// Returns false without error when no token is stored.
func (s *Service) Restore(ctx context.Context) (bool, error) {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		if tokenstore.IsNotFound(err) {
			return false, nil
		}
		s.log.Error("auth.restore.load.fail", "err", err)
		return false, nil
	}

	user, err := s.api.Profile(ctx, token)
	if err != nil {
		if _, ok := authapi.AsBackendError(err); ok {
			// Token no longer valid; drop it so the next start is clean.
			s.log.Info("auth.restore.rejected")
			if cerr := s.tokens.Clear(ctx); cerr != nil {
				s.log.Error("auth.restore.clear.fail", "err", cerr)
			}
			return false, nil
		}
		// Transport failure: keep the token, stay signed out for now.
		s.log.Warn("auth.restore.fail", "err", err)
		return false, err
	}

	s.token = token
	s.state.set(Snapshot{Authenticated: true, User: &user})
	s.log.Info("auth.restore.ok", "user_id", user.ID)
	return true, nil
}

// Establish persists token, then publishes user as the authenticated state.
// A new session supersedes any previous one.
func (s *Service) Establish(ctx context.Context, user authapi.User, token string) {
	s.PersistToken(ctx, token)
	s.Publish(user, token)
}

// PersistToken writes token to the store. Failures are logged, never fatal:
// the in-memory session stays valid for this process and the next restart
// simply requires re-authentication.
func (s *Service) PersistToken(ctx context.Context, token string) {
	if err := s.tokens.Save(ctx, token); err != nil {
		s.log.Error("auth.token.persist.fail", "err", err)
	}
}

// Publish flips authenticated state to user without touching the store.
// Used by the OTP flow, which persists first and publishes after its UI
// grace delay.
func (s *Service) Publish(user authapi.User, token string) {
	s.token = token
	s.state.set(Snapshot{Authenticated: true, User: &user})
}

func (s *Service) newAttemptID() string {
	id, err := ids.NewULID(time.Now().UTC())
	if err != nil {
		return "unknown"
	}
	return id
}
