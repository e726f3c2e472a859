// Package main provides a CI-friendly smoke test for the SketWhint auth
// backend.
//
// It validates:
//   - signin with known credentials
//   - profile fetch with the issued token
//   - error envelope shape on a bad password
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	authapi "sketwhint/cmd/internal/auth/api"
)

func main() {
	var (
		apiURL   = flag.String("url", "https://api.sketwhint.com", "Backend base URL")
		email    = flag.String("email", "", "Account email (required)")
		password = flag.String("password", "", "Account password (required)")
		timeout  = flag.Duration("timeout", 10*time.Second, "Per-step timeout")
		verbose  = flag.Bool("v", false, "Verbose output")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		fatalf("-email and -password are required")
	}
	if _, err := url.ParseRequestURI(*apiURL); err != nil {
		fatalf("invalid -url: %v", err)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := authapi.DefaultConfig()
	cfg.BaseURL = *apiURL
	cfg.Timeout = *timeout
	client := authapi.New(cfg, log)

	ctx, cancel := context.WithTimeout(context.Background(), 3*(*timeout))
	defer cancel()

	stepf("signin %s", *email)
	res, err := client.SignIn(ctx, *email, *password)
	if err != nil {
		fatalf("signin: %v", err)
	}
	if res.Session.Token == "" {
		fatalf("signin: empty session token")
	}
	okf("signin user=%s", res.User.ID)

	stepf("profile")
	user, err := client.Profile(ctx, res.Session.Token)
	if err != nil {
		fatalf("profile: %v", err)
	}
	if user.ID != res.User.ID {
		fatalf("profile: user mismatch %q != %q", user.ID, res.User.ID)
	}
	okf("profile email=%s verified=%v", user.Email, user.EmailVerified)

	stepf("bad password is rejected with an envelope")
	_, err = client.SignIn(ctx, *email, *password+"-wrong")
	if err == nil {
		fatalf("bad password accepted")
	}
	if be, ok := authapi.AsBackendError(err); ok {
		okf("rejected status=%d code=%s", be.Status, be.Code)
	} else {
		fatalf("expected backend error envelope, got: %v", err)
	}

	fmt.Println("auth smoke: PASS")
}

func stepf(format string, args ...any) {
	fmt.Printf("--> "+format+"\n", args...)
}

func okf(format string, args ...any) {
	fmt.Printf("    ok: "+format+"\n", args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "auth smoke: FAIL: "+format+"\n", args...)
	os.Exit(1)
}
