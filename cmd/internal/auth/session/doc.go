// Package session implements the SketWhint client session orchestrator.
//
// It is the single source of truth for "is the user authenticated" and for
// the active user/session token. Screens call its operations (sign-in,
// federated sign-in, sign-up, password reset, sign-out); the orchestrator
// validates locally, calls the backend, persists the token, and publishes
// the new authenticated state through an observable State store.
//
// The backend owns every real security decision (credential checks, OTP
// issuance, token minting). Nothing here is fatal: every failure maps to a
// user-facing message and leaves the attempt retryable.
//
// Write discipline: all published-state writes flow through this package's
// operations, which serialize them. Per attempt the lifecycle is
// Idle -> Submitting -> Authenticated|Failed, with Failed returning to Idle
// on the next attempt.
package session
