package identity

import "strings"

// NormalizeEmail performs case-insensitive canonicalization.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeName trims a display-name hint. Provider hints may be blank and
// stay blank; the backend treats them as optional.
func NormalizeName(s string) string {
	return strings.TrimSpace(s)
}
