package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	authapi "sketwhint/cmd/internal/auth/api"
)

// Attempt outcome labels.
const (
	outcomeSuccess    = "success"
	outcomeValidation = "validation_error"
	outcomeAuth       = "auth_error"
	outcomeTransport  = "transport_error"
)

var authAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "sketwhint",
		Subsystem: "auth",
		Name:      "attempts_total",
		Help:      "Auth operations by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// observeAttempt records one finished attempt.
func observeAttempt(method string, err error) {
	outcome := outcomeSuccess
	if err != nil {
		switch {
		case IsValidation(err):
			outcome = outcomeValidation
		default:
			if _, ok := authapi.AsBackendError(err); ok {
				outcome = outcomeAuth
			} else {
				// Network, decode, and provider failures.
				outcome = outcomeTransport
			}
		}
	}
	authAttempts.WithLabelValues(method, outcome).Inc()
}
