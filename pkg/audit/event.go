package audit

import "time"

// Event kinds.
const (
	// KindRateLimited records a rejected rate limit check.
	KindRateLimited = "rate_limited"

	// KindValidationRejected records input rejected by the sanitizer.
	KindValidationRejected = "validation_rejected"

	// KindRedactionFailed records a SanitizeForLogging call that degraded
	// to the failure sentinel.
	KindRedactionFailed = "redaction_failed"
)

// Event is one protection decision. Detail carries a short human-readable
// description; sensitive input is never stored here, only the category
// and the already-sanitized context.
type Event struct {
	ID     string
	Kind   string
	Key    string
	Detail string
	At     time.Time
}

// Filter narrows a Query.
type Filter struct {
	// Kind restricts results to one event kind. Empty means all kinds.
	Kind string

	// Since restricts results to events at or after this instant.
	Since time.Time

	// Limit caps the number of rows returned. Zero means the store
	// default of 100.
	Limit int
}
