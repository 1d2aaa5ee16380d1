package ratelimit

import "time"

// LimitExceededError is returned by Check when a key has used up its
// window quota. It is the only error this package produces, and it is
// always recoverable: the caller waits WaitSeconds and retries.
type LimitExceededError struct {
	// Key is the effective key that was rejected.
	Key string

	// Limit is the configured maximum per window.
	Limit int

	// Window is the configured window length.
	Window time.Duration

	// WaitSeconds is the remaining window time, rounded up to whole
	// seconds.
	WaitSeconds int

	// Message is the rendered MessageTemplate.
	Message string
}

// Error implements the error interface.
func (e *LimitExceededError) Error() string {
	return e.Message
}
