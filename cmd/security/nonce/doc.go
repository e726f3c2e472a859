// Package nonce provides the replay-protection nonce used by Apple sign-in.
//
// It is the single source of truth for nonce generation and hashing behavior.
//
// Design goals:
//   - Raw nonces are drawn from crypto/rand over a fixed charset using
//     rejection sampling, so no byte value is favored by a modulo reduction.
//   - Stable 64-char SHA-256 hex output: the hash is what leaves the process;
//     the raw value stays in memory for the lifetime of one sign-in attempt.
package nonce
