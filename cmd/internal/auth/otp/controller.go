package otp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	authapi "sketwhint/cmd/internal/auth/api"
	"sketwhint/cmd/internal/auth/session"
)

// SessionSink is what the controller needs from the session orchestrator:
// persist the token right away, publish the user after the grace delay.
type SessionSink interface {
	PersistToken(ctx context.Context, token string)
	Publish(user authapi.User, token string)
}

// ResendState is the countdown state a verification screen renders.
type ResendState struct {
	CanResend        bool
	CountdownSeconds int
	// ResendConfirmed is the transient "code sent" indicator.
	ResendConfirmed bool
}

// Controller owns one pending verification (one email).
type Controller struct {
	cfg      Config
	api      *authapi.Client
	sessions SessionSink
	clock    Clock
	log      *slog.Logger

	onChange func(ResendState)

	mu           sync.Mutex
	countdown    int
	canResend    bool
	confirmed    bool
	timerGen     uint64
	indicatorGen uint64
}

// ControllerOption configures optional controller dependencies.
type ControllerOption func(*Controller)

// WithClock overrides the system clock (tests).
func WithClock(c Clock) ControllerOption {
	return func(ctl *Controller) {
		if ctl == nil || c == nil {
			return
		}
		ctl.clock = c
	}
}

// WithOnChange registers an observer called after every resend-state change.
// Calls happen on the goroutine that made the change; keep it cheap.
func WithOnChange(fn func(ResendState)) ControllerOption {
	return func(ctl *Controller) {
		if ctl == nil || fn == nil {
			return
		}
		ctl.onChange = fn
	}
}

// NewController constructs a Controller. Resend starts unlocked; call
// StartResendTimer when the verification screen appears.
func NewController(cfg Config, api *authapi.Client, sessions SessionSink, log *slog.Logger, opts ...ControllerOption) *Controller {
	if log == nil {
		log = slog.Default()
	}

	c := &Controller{
		cfg:       cfg,
		api:       api,
		sessions:  sessions,
		clock:     SystemClock{},
		log:       log,
		canResend: true,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// ResendState returns the current countdown state.
func (c *Controller) ResendState() ResendState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ResendState{
		CanResend:        c.canResend,
		CountdownSeconds: c.countdown,
		ResendConfirmed:  c.confirmed,
	}
}

// StartResendTimer resets the countdown and locks resend until it expires.
// Starting again invalidates any previous timer; ticks from a superseded
// timer are discarded, so there is never a double decrement.
func (c *Controller) StartResendTimer() {
	c.mu.Lock()
	c.timerGen++
	gen := c.timerGen
	c.countdown = c.cfg.ResendCountdown
	c.canResend = false
	c.mu.Unlock()
	c.notify()

	go c.runCountdown(gen)
}

func (c *Controller) runCountdown(gen uint64) {
	ticker := c.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C() {
		c.mu.Lock()
		if c.timerGen != gen {
			c.mu.Unlock()
			return
		}
		c.countdown--
		if c.countdown <= 0 {
			c.countdown = 0
			c.canResend = true
			c.mu.Unlock()
			c.notify()
			return
		}
		c.mu.Unlock()
		c.notify()
	}
}

// VerifyOTP submits code for email.
//
// A code that is not exactly CodeDigits numeric digits is rejected locally
// with no network call. On verified success the token is persisted at once
// and the authenticated user is published after the grace delay.
func (c *Controller) VerifyOTP(ctx context.Context, email, code string) error {
	code = strings.TrimSpace(code)
	if len(code) != c.cfg.CodeDigits || !allDigits(code) {
		return &session.ValidationError{
			Field: "code",
			Msg:   fmt.Sprintf("The code must be exactly %d digits.", c.cfg.CodeDigits),
		}
	}

	res, err := c.api.VerifyOTP(ctx, email, code)
	if err != nil {
		c.log.Warn("otp.verify.fail", "err", err)
		return err
	}
	if !res.Success {
		c.log.Info("otp.verify.rejected")
		return &authapi.Error{Status: http.StatusOK, Code: "otp_rejected", Message: res.Message}
	}
	if res.User == nil || res.Session == nil {
		err := &authapi.TransportError{Op: "otp.verify", Err: errors.New("success without user or session")}
		c.log.Error("otp.verify.malformed", "err", err)
		return err
	}

	c.sessions.PersistToken(ctx, res.Session.Token)

	// UI grace: the verification screen shows its success tick before
	// navigation flips on the published state.
	select {
	case <-c.clock.After(c.cfg.GraceDelay):
	case <-ctx.Done():
		// The session is already persisted; publish immediately rather
		// than lose an established session to a canceled screen.
	}

	c.sessions.Publish(*res.User, res.Session.Token)
	c.log.Info("otp.verify.ok", "user_id", res.User.ID)
	return nil
}

// ResendOTP asks the backend for a fresh code. On success the countdown
// restarts and a transient confirmation shows for SuccessIndicatorFor.
func (c *Controller) ResendOTP(ctx context.Context, email string) error {
	res, err := c.api.ResendOTP(ctx, email)
	if err != nil {
		c.log.Warn("otp.resend.fail", "err", err)
		return err
	}
	if !res.Success {
		c.log.Info("otp.resend.rejected")
		return &authapi.Error{Status: http.StatusOK, Code: "otp_resend_rejected", Message: res.Message}
	}

	c.StartResendTimer()

	c.mu.Lock()
	c.indicatorGen++
	gen := c.indicatorGen
	c.confirmed = true
	c.mu.Unlock()
	c.notify()

	go func() {
		<-c.clock.After(c.cfg.SuccessIndicatorFor)
		c.mu.Lock()
		if c.indicatorGen != gen {
			c.mu.Unlock()
			return
		}
		c.confirmed = false
		c.mu.Unlock()
		c.notify()
	}()

	return nil
}

func (c *Controller) notify() {
	if c.onChange == nil {
		return
	}
	c.onChange(c.ResendState())
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
