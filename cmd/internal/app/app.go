// Package app wires the SketWhint client runtime: config, logging, the
// backend API client, token persistence, and the auth session services,
// exposed through a small CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	authapi "sketwhint/cmd/internal/auth/api"
	"sketwhint/cmd/internal/auth/otp"
	"sketwhint/cmd/internal/auth/session"
	"sketwhint/cmd/internal/tokenstore"
)

// App is the wired client runtime.
type App struct {
	cfg Config
	log Logger

	API      *authapi.Client
	Tokens   tokenstore.Store
	Sessions *session.Service
	OTP      *otp.Controller

	out io.Writer
}

// New constructs a fully wired App from config and logger.
func New(ctx context.Context, cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel, cfg.LogFormat, cfg.LogColor)
	}

	apiCfg := authapi.LoadConfigFromEnv()
	httpc := &http.Client{
		Timeout:   apiCfg.Timeout,
		Transport: WithRequestLogging(nil, log),
	}
	client := authapi.New(apiCfg, log, authapi.WithHTTPClient(httpc))

	tokens, err := newTokenStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	sessCfg, err := session.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	sessions := session.NewService(sessCfg, client, tokens, session.NewState(), log)

	verifier := otp.NewController(otp.LoadConfigFromEnv(), client, sessions, log)

	return &App{
		cfg:      cfg,
		log:      log,
		API:      client,
		Tokens:   tokens,
		Sessions: sessions,
		OTP:      verifier,
		out:      os.Stdout,
	}, nil
}

const usage = `usage: sketwhint <command> [args]

commands:
  signin <email> <password>
  signup <name> <email> <password> <confirm>
  verify <email> <code>
  resend <email>
  reset-request <email>
  reset <email> <code> <new-password>
  signout
  whoami
`

// Run dispatches one CLI command and blocks until it completes.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}

	cmd, rest := args[0], args[1:]
	err := a.dispatch(ctx, cmd, rest)
	if err != nil {
		var ue *cliError
		if errors.As(err, &ue) {
			fmt.Fprintln(a.out, ue.msg)
		} else if msg := session.UserMessage(err); msg != "" {
			fmt.Fprintln(a.out, msg)
		}
	}
	return err
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "signin":
		if len(args) != 2 {
			return usageError("signin <email> <password>")
		}
		if err := a.Sessions.SignIn(ctx, args[0], args[1]); err != nil {
			return err
		}
		return a.printSnapshot("signed in")

	case "signup":
		if len(args) != 4 {
			return usageError("signup <name> <email> <password> <confirm>")
		}
		if err := a.Sessions.SignUp(ctx, args[0], args[1], args[2], args[3]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Account created. Check your email for a verification code.")
		a.OTP.StartResendTimer()
		return nil

	case "verify":
		if len(args) != 2 {
			return usageError("verify <email> <code>")
		}
		if err := a.OTP.VerifyOTP(ctx, args[0], args[1]); err != nil {
			return err
		}
		return a.printSnapshot("verified")

	case "resend":
		if len(args) != 1 {
			return usageError("resend <email>")
		}
		state := a.OTP.ResendState()
		if !state.CanResend {
			fmt.Fprintf(a.out, "Please wait %ds before requesting another code.\n", state.CountdownSeconds)
			return nil
		}
		if err := a.OTP.ResendOTP(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "A new code is on its way.")
		return nil

	case "reset-request":
		if len(args) != 1 {
			return usageError("reset-request <email>")
		}
		if err := a.Sessions.RequestPasswordReset(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "If that address has an account, a reset code was sent.")
		return nil

	case "reset":
		if len(args) != 3 {
			return usageError("reset <email> <code> <new-password>")
		}
		if err := a.Sessions.ResetPassword(ctx, args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Password updated. Sign in with your new password.")
		return nil

	case "signout":
		if len(args) != 0 {
			return usageError("signout")
		}
		if err := a.Sessions.SignOut(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Signed out.")
		return nil

	case "whoami":
		if len(args) != 0 {
			return usageError("whoami")
		}
		ok, err := a.Sessions.Restore(ctx)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "Not signed in.")
			return nil
		}
		return a.printSnapshot("session ok")

	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil

	default:
		return usageError(fmt.Sprintf("unknown command %q", cmd))
	}
}

func (a *App) printSnapshot(label string) error {
	snap := a.Sessions.State().Snapshot()
	if !snap.Authenticated || snap.User == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s: %s <%s>\n", label, snap.User.Name, snap.User.Email)
	return nil
}

type cliError struct{ msg string }

func (e *cliError) Error() string { return e.msg }

func usageError(want string) error {
	return &cliError{msg: "usage: sketwhint " + want}
}
