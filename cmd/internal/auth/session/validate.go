package session

import (
	"strings"

	"sketwhint/cmd/identity"
)

func validEmail(email string) bool {
	return strings.Contains(email, "@")
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func (s *Service) validateSignIn(email, password string) error {
	email = identity.NormalizeEmail(email)
	if email == "" {
		return &ValidationError{Field: "email", Msg: "Please enter your email."}
	}
	if !validEmail(email) {
		return &ValidationError{Field: "email", Msg: "Please enter a valid email address."}
	}
	if password == "" {
		return &ValidationError{Field: "password", Msg: "Please enter your password."}
	}
	if err := s.cfg.Passwords.ValidateSignIn(password); err != nil {
		return &ValidationError{Field: "password", Msg: "Your password must be at least 6 characters."}
	}
	return nil
}

// validateSignUp checks fields in a fixed order:
// name -> email presence -> email validity -> password presence ->
// password length -> confirm presence -> password match.
func (s *Service) validateSignUp(name, email, password, confirm string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Msg: "Please enter your name."}
	}
	email = identity.NormalizeEmail(email)
	if email == "" {
		return &ValidationError{Field: "email", Msg: "Please enter your email."}
	}
	if !validEmail(email) {
		return &ValidationError{Field: "email", Msg: "Please enter a valid email address."}
	}
	if password == "" {
		return &ValidationError{Field: "password", Msg: "Please enter a password."}
	}
	if err := s.cfg.Passwords.ValidateSignIn(password); err != nil {
		return &ValidationError{Field: "password", Msg: "Your password must be at least 6 characters."}
	}
	if confirm == "" {
		return &ValidationError{Field: "confirmPassword", Msg: "Please confirm your password."}
	}
	if password != confirm {
		return &ValidationError{Field: "confirmPassword", Msg: "Passwords do not match."}
	}
	return nil
}

func (s *Service) validateReset(email, code, newPassword string) error {
	email = identity.NormalizeEmail(email)
	if email == "" || !validEmail(email) {
		return &ValidationError{Field: "email", Msg: "Please enter a valid email address."}
	}
	if err := validateResetCode(code); err != nil {
		return err
	}
	if err := s.cfg.Passwords.ValidateReset(newPassword); err != nil {
		return &ValidationError{Field: "newPassword", Msg: "Your new password must be at least 8 characters."}
	}
	return nil
}

func validateResetCode(code string) error {
	code = strings.TrimSpace(code)
	if len(code) != resetCodeDigits || !allDigits(code) {
		return &ValidationError{Field: "code", Msg: "The code must be exactly 6 digits."}
	}
	return nil
}
