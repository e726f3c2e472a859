// Package authapi is the HTTP client for the SketWhint backend auth endpoints.
//
// It speaks the backend's JSON contract and nothing else: sign-in, sign-up,
// OTP verify/resend, password reset, federated sign-in, and profile fetch.
// All security decisions (credential verification, OTP issuance, token
// minting) happen server-side; this package only transports them.
//
// Error contract:
//   - Backend-reported failures decode into *Error (code + user-facing message).
//   - Network, timeout, and decoding failures become *TransportError.
//
// No raw *http errors escape to callers.
package authapi
