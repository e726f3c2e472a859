// Package password provides client-side password policy validation for SketWhint.
//
// It only checks what the app can decide locally before a network call:
// length bounds and an optional minimal weak-pattern rejection. Hashing and
// credential verification belong to the backend and are intentionally absent.
//
// The policy carries two minimums on purpose: sign-in accepts the historical
// 6-character floor, while password reset enforces 8 characters. The backend
// shipped with this asymmetry; unifying it is a product decision, not ours.
package password
