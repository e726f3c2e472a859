package nonce

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const (
	// DefaultLength is the raw nonce length used for Apple sign-in requests.
	DefaultLength = 32

	// charset matches what Apple's sample code accepts for raw nonces.
	charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-._"
)

// Pair holds one single-use nonce: the raw value kept in memory and the
// SHA-256 hex digest sent to the identity provider.
type Pair struct {
	Raw    string
	Hashed string
}

// New generates a Pair with a raw nonce of DefaultLength characters.
func New() (Pair, error) {
	return NewWithLength(DefaultLength)
}

// NewWithLength generates a Pair with a raw nonce of n characters.
func NewWithLength(n int) (Pair, error) {
	if n <= 0 {
		return Pair{}, ErrInvalidLength
	}

	raw, err := randomString(n)
	if err != nil {
		return Pair{}, err
	}

	return Pair{Raw: raw, Hashed: HashSHA256Hex(raw)}, nil
}

// HashSHA256Hex returns a SHA-256 hex digest of s.
func HashSHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// randomString draws n characters from charset via rejection sampling.
//
// Bytes outside the largest multiple of len(charset) below 256 are discarded
// instead of reduced modulo len(charset), which would bias low indices.
func randomString(n int) (string, error) {
	out := make([]byte, 0, n)
	// Highest byte value (exclusive) we accept: the largest multiple of
	// len(charset) that fits in a byte.
	limit := 256 - (256 % len(charset))

	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, charset[int(b)%len(charset)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
