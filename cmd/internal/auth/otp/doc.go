// Package otp owns one pending email verification: the resend countdown and
// code submission for a sign-up confirmation.
//
// The countdown runs on a one-second ticker from an injectable Clock, so
// tests advance virtual time instead of sleeping. Restarting the countdown
// invalidates the previous timer; at most one timer is live per controller.
//
// On verified success the controller persists the session token immediately,
// waits a short configurable grace delay (UI polish, not a correctness
// requirement), then publishes the authenticated user through the session
// orchestrator.
package otp
