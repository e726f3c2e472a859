// Package identity provides federated identity adapters for SketWhint.
//
// It decouples the session orchestrator from platform sign-in SDKs: each
// provider (Apple, Google) is a thin adapter that runs one authorization
// attempt and returns normalized Credentials, or a typed error.
//
// Apple sign-in carries a per-attempt replay-protection nonce: the SHA-256
// hex digest goes to the platform authorization request, and only the digest
// is forwarded to the backend alongside the signed identity token. The raw
// value never leaves the process and is discarded after one attempt.
package identity
