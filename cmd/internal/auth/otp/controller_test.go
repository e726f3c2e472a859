package otp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	authapi "sketwhint/cmd/internal/auth/api"
	"sketwhint/cmd/internal/auth/session"
	"sketwhint/cmd/internal/tokenstore"
)

// ---- fakes ----

type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }
func (t *fakeTicker) Stop()               { t.stopped.Store(true) }
func (t *fakeTicker) tick()               { t.ch <- time.Time{} }

type fakeClock struct {
	mu      sync.Mutex
	tickers []*fakeTicker
	afters  []chan time.Time
}

func (f *fakeClock) Now() time.Time { return time.Unix(0, 0).UTC() }

func (f *fakeClock) After(time.Duration) <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan time.Time, 1)
	f.afters = append(f.afters, ch)
	return ch
}

func (f *fakeClock) NewTicker(time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time, 2)}
	f.tickers = append(f.tickers, t)
	return t
}

// ticker waits for the countdown goroutine to create ticker i.
func (f *fakeClock) ticker(t *testing.T, i int) *fakeTicker {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		f.mu.Lock()
		if i < len(f.tickers) {
			tk := f.tickers[i]
			f.mu.Unlock()
			return tk
		}
		f.mu.Unlock()
		if time.Now().After(deadline) {
			t.Fatalf("ticker %d never created", i)
		}
		time.Sleep(time.Millisecond)
	}
}

// fireAfter waits for After call i to be registered, then releases it.
func (f *fakeClock) fireAfter(t *testing.T, i int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		f.mu.Lock()
		if i < len(f.afters) {
			ch := f.afters[i]
			f.mu.Unlock()
			ch <- time.Time{}
			return
		}
		f.mu.Unlock()
		if time.Now().After(deadline) {
			t.Fatalf("After %d never registered", i)
		}
		time.Sleep(time.Millisecond)
	}
}

type fakeSink struct {
	mu        sync.Mutex
	persisted []string
	published []authapi.User
	events    chan string
}

func newFakeSink() *fakeSink {
	return &fakeSink{events: make(chan string, 8)}
}

func (s *fakeSink) PersistToken(_ context.Context, token string) {
	s.mu.Lock()
	s.persisted = append(s.persisted, token)
	s.mu.Unlock()
	s.events <- "persist"
}

func (s *fakeSink) Publish(user authapi.User, _ string) {
	s.mu.Lock()
	s.published = append(s.published, user)
	s.mu.Unlock()
	s.events <- "publish"
}

func (s *fakeSink) publishedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.published)
}

type countingBackend struct {
	srv  *httptest.Server
	hits atomic.Int64
	mux  *http.ServeMux
}

func newCountingBackend(t *testing.T) *countingBackend {
	t.Helper()
	b := &countingBackend{mux: http.NewServeMux()}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.hits.Add(1)
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *countingBackend) client() *authapi.Client {
	cfg := authapi.DefaultConfig()
	cfg.BaseURL = b.srv.URL
	return authapi.New(cfg, nil)
}

func waitEvent(t *testing.T, ch <-chan ResendState) ResendState {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for state change")
		return ResendState{}
	}
}

// ---- tests ----

func TestResendTimer_CountsDownToZeroAndStops(t *testing.T) {
	clock := &fakeClock{}
	states := make(chan ResendState, 128)
	b := newCountingBackend(t)

	c := NewController(DefaultConfig(), b.client(), newFakeSink(), nil,
		WithClock(clock), WithOnChange(func(s ResendState) { states <- s }))

	c.StartResendTimer()
	first := waitEvent(t, states)
	if first.CountdownSeconds != 60 || first.CanResend {
		t.Fatalf("start state=%+v want countdown=60 canResend=false", first)
	}

	tick := clock.ticker(t, 0)
	var last ResendState
	for i := 0; i < 60; i++ {
		tick.tick()
		last = waitEvent(t, states)
	}

	if last.CountdownSeconds != 0 || !last.CanResend {
		t.Fatalf("final state=%+v want countdown=0 canResend=true", last)
	}

	// Idempotent once expired: a further tick decrements nothing.
	tick.tick()
	select {
	case s := <-states:
		t.Fatalf("no state change expected after expiry, got %+v", s)
	case <-time.After(50 * time.Millisecond):
	}
	if got := c.ResendState(); got.CountdownSeconds != 0 || !got.CanResend {
		t.Fatalf("expired state mutated: %+v", got)
	}
}

func TestResendTimer_RestartLeavesOneActiveTimer(t *testing.T) {
	clock := &fakeClock{}
	states := make(chan ResendState, 128)
	b := newCountingBackend(t)

	c := NewController(DefaultConfig(), b.client(), newFakeSink(), nil,
		WithClock(clock), WithOnChange(func(s ResendState) { states <- s }))

	c.StartResendTimer()
	waitEvent(t, states) // 60

	c.StartResendTimer()
	waitEvent(t, states) // 60 again

	// A tick on the superseded timer must not decrement.
	clock.ticker(t, 0).tick()
	// A tick on the live timer decrements exactly once.
	clock.ticker(t, 1).tick()
	got := waitEvent(t, states)

	if got.CountdownSeconds != 59 {
		t.Fatalf("countdown=%d want=59 (stale timer must be inert)", got.CountdownSeconds)
	}
	select {
	case s := <-states:
		t.Fatalf("single decrement expected, got extra %+v", s)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestVerifyOTP_LocalValidationNeverHitsNetwork(t *testing.T) {
	b := newCountingBackend(t)
	c := NewController(DefaultConfig(), b.client(), newFakeSink(), nil)

	for _, code := range []string{"", "12345", "1234567", "12a456", "abcdef", "  4829"} {
		err := c.VerifyOTP(context.Background(), "jane@example.com", code)
		if !session.IsValidation(err) {
			t.Fatalf("code %q: expected ValidationError, got %v", code, err)
		}
	}
	if n := b.hits.Load(); n != 0 {
		t.Fatalf("invalid codes must not reach the network, saw %d requests", n)
	}
}

func TestVerifyOTP_PersistsThenPublishesAfterGrace(t *testing.T) {
	b := newCountingBackend(t)
	b.mux.HandleFunc("/auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "verified",
			"user":    map[string]any{"id": "u2", "email": "jane@example.com", "name": "Jane Doe"},
			"session": map[string]any{"token": "tok-2"},
		})
	})

	clock := &fakeClock{}
	sink := newFakeSink()
	c := NewController(DefaultConfig(), b.client(), sink, nil, WithClock(clock))

	done := make(chan error, 1)
	go func() { done <- c.VerifyOTP(context.Background(), "jane@example.com", "482913") }()

	// Token is persisted before the grace delay.
	if ev := <-sink.events; ev != "persist" {
		t.Fatalf("first sink event=%q want=persist", ev)
	}
	if sink.publishedCount() != 0 {
		t.Fatalf("must not publish before the grace delay elapses")
	}

	// Grace delay elapses.
	clock.fireAfter(t, 0)

	if ev := <-sink.events; ev != "publish" {
		t.Fatalf("second sink event=%q want=publish", ev)
	}
	if err := <-done; err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.persisted) != 1 || sink.persisted[0] != "tok-2" {
		t.Fatalf("persisted=%v want=[tok-2]", sink.persisted)
	}
	if len(sink.published) != 1 || sink.published[0].ID != "u2" {
		t.Fatalf("published=%v want user u2", sink.published)
	}
}

func TestVerifyOTP_BackendRejectionSurfacesMessageVerbatim(t *testing.T) {
	b := newCountingBackend(t)
	b.mux.HandleFunc("/auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "That code has expired."})
	})

	sink := newFakeSink()
	c := NewController(DefaultConfig(), b.client(), sink, nil)

	err := c.VerifyOTP(context.Background(), "jane@example.com", "482913")
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := session.UserMessage(err); got != "That code has expired." {
		t.Fatalf("message=%q want verbatim backend message", got)
	}
	if sink.publishedCount() != 0 {
		t.Fatalf("rejected verify must not publish")
	}
}

func TestVerifyOTP_TransportFailureIsGeneric(t *testing.T) {
	cfg := authapi.DefaultConfig()
	cfg.BaseURL = "http://127.0.0.1:1"
	c := NewController(DefaultConfig(), authapi.New(cfg, nil), newFakeSink(), nil)

	err := c.VerifyOTP(context.Background(), "jane@example.com", "482913")
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := session.UserMessage(err); got != "Something went wrong. Please check your connection and try again." {
		t.Fatalf("transport failures must map to the generic retry message, got %q", got)
	}
}

func TestResendOTP_RestartsTimerAndShowsTransientConfirmation(t *testing.T) {
	b := newCountingBackend(t)
	b.mux.HandleFunc("/auth/resend-otp", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "sent"})
	})

	clock := &fakeClock{}
	states := make(chan ResendState, 128)
	c := NewController(DefaultConfig(), b.client(), newFakeSink(), nil,
		WithClock(clock), WithOnChange(func(s ResendState) { states <- s }))

	if err := c.ResendOTP(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("ResendOTP: %v", err)
	}

	// Timer restart event, then confirmation event.
	timerState := waitEvent(t, states)
	if timerState.CountdownSeconds != 60 || timerState.CanResend {
		t.Fatalf("timer state=%+v want countdown=60", timerState)
	}
	confirmed := waitEvent(t, states)
	if !confirmed.ResendConfirmed {
		t.Fatalf("expected transient confirmation, got %+v", confirmed)
	}

	// Indicator auto-hides once its delay fires.
	clock.fireAfter(t, 0)
	hidden := waitEvent(t, states)
	if hidden.ResendConfirmed {
		t.Fatalf("confirmation must auto-hide, got %+v", hidden)
	}
}

func TestEndToEnd_SignUpThenVerify(t *testing.T) {
	b := newCountingBackend(t)
	b.mux.HandleFunc("/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "check your email"})
	})
	b.mux.HandleFunc("/auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["email"] != "jane@example.com" || req["code"] != "482913" {
			t.Errorf("unexpected verify request: %v", req)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "verified",
			"user":    map[string]any{"id": "u2", "email": "jane@example.com", "name": "Jane Doe"},
			"session": map[string]any{"token": "tok-2"},
		})
	})

	client := b.client()
	svc := session.NewService(session.DefaultConfig(), client, tokenstore.NewMemory(), nil, nil)

	if err := svc.SignUp(context.Background(), "Jane Doe", "jane@example.com", "pw123456", "pw123456"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if svc.State().Snapshot().Authenticated {
		t.Fatalf("no session before verification")
	}

	cfg := DefaultConfig()
	cfg.GraceDelay = time.Millisecond // keep the real clock fast
	c := NewController(cfg, client, svc, nil)

	if err := c.VerifyOTP(context.Background(), "jane@example.com", "482913"); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}

	snap := svc.State().Snapshot()
	if !snap.Authenticated || snap.User == nil || snap.User.Name != "Jane Doe" {
		t.Fatalf("unexpected snapshot after verify: %+v", snap)
	}
}
