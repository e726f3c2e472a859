package password

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestValidate_TwoFloors(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name   string
		pw     string
		signIn error
		reset  error
	}{
		{name: "six chars", pw: "secret", signIn: nil, reset: ErrPasswordTooShort},
		{name: "seven chars", pw: "secret1", signIn: nil, reset: ErrPasswordTooShort},
		{name: "eight chars", pw: "pw123456", signIn: nil, reset: nil},
		{name: "five chars", pw: "short", signIn: ErrPasswordTooShort, reset: ErrPasswordTooShort},
		{name: "too long", pw: strings.Repeat("a", 300), signIn: ErrPasswordTooLong, reset: ErrPasswordTooLong},
	}

	for _, tc := range cases {
		if got := cfg.ValidateSignIn(tc.pw); !errors.Is(got, tc.signIn) {
			t.Fatalf("%s: ValidateSignIn=%v want=%v", tc.name, got, tc.signIn)
		}
		if got := cfg.ValidateReset(tc.pw); !errors.Is(got, tc.reset) {
			t.Fatalf("%s: ValidateReset=%v want=%v", tc.name, got, tc.reset)
		}
	}
}

func TestValidate_RuneCounting(t *testing.T) {
	cfg := DefaultConfig()
	// Six multibyte runes must pass the six-rune floor.
	if err := cfg.ValidateSignIn("éééééé"); err != nil {
		t.Fatalf("expected six runes to pass, got %v", err)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv := []string{
		"SKETWHINT_PASSWORD_SIGNIN_MIN_LEN",
		"SKETWHINT_PASSWORD_RESET_MIN_LEN",
		"SKETWHINT_PASSWORD_MAX_LEN",
		"SKETWHINT_PASSWORD_REJECT_VERY_WEAK",
	}
	for _, k := range clearEnv {
		_ = os.Unsetenv(k)
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}

	def := DefaultConfig()
	if cfg.Policy.SignInMinLength != def.Policy.SignInMinLength {
		t.Fatalf("sign-in min mismatch")
	}
	if cfg.Policy.ResetMinLength != def.Policy.ResetMinLength {
		t.Fatalf("reset min mismatch")
	}
}

func TestFromEnv_Override(t *testing.T) {
	t.Setenv("SKETWHINT_PASSWORD_SIGNIN_MIN_LEN", "10")
	t.Setenv("SKETWHINT_PASSWORD_RESET_MIN_LEN", "12")
	t.Setenv("SKETWHINT_PASSWORD_MAX_LEN", "200")
	t.Setenv("SKETWHINT_PASSWORD_REJECT_VERY_WEAK", "true")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}

	if cfg.Policy.SignInMinLength != 10 || cfg.Policy.ResetMinLength != 12 {
		t.Fatalf("min override failed: %+v", cfg.Policy)
	}
	if cfg.Policy.MaxLength != 200 || !cfg.Policy.RejectVeryWeak {
		t.Fatalf("policy override failed: %+v", cfg.Policy)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Setenv("SKETWHINT_PASSWORD_SIGNIN_MIN_LEN", "zero")

	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for non-integer min length")
	}
}
