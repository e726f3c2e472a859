// Package tokenstore persists the SketWhint session token across process restarts.
//
// Exactly one opaque token string is stored, keyed by application identity.
// Implementations:
//   - Keyring: OS secure storage (macOS Keychain, Windows Credential Manager,
//     Secret Service on Linux). The default.
//   - File: a 0600 file under the user config dir, for headless hosts and CI.
//   - Memory: tests and smoke tooling.
//
// Store failures are deliberately non-fatal to callers: a failed write leaves
// the in-memory session valid for the current process; the next restart just
// requires re-authentication.
package tokenstore
