// Package clients is the resilient HTTP client the QuoteVault terminal app
// uses to reach the API: retries with backoff, a circuit breaker, tracing
// and request ID propagation.
package clients

import "errors"

// Transport failures. The acl package turns both into domain
// UnavailableErrors.
var (
	// ErrCircuitOpen is returned without a network call while the breaker
	// is open or its half-open probes are all in flight.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last failure once every attempt
	// failed with a transport error or a 5xx.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
