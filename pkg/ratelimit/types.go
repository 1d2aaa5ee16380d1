package ratelimit

import "time"

// KeyGenerator derives the effective limiter key from the raw key and an
// optional caller-supplied context value. It allows callers to bucket
// requests by something other than the raw key (for example, tenant plus
// endpoint class).
type KeyGenerator func(key string, ctx any) string

// Config contains the limiter configuration.
type Config struct {
	// Window is the fixed counting window. Default: 1 minute.
	Window time.Duration

	// MaxRequests is the number of requests admitted per key per window.
	// Default: 60.
	MaxRequests int

	// MessageTemplate is the human-readable rejection message. The literal
	// "{waitTime}" is replaced with the whole number of seconds remaining
	// in the window. Default: see DefaultMessageTemplate.
	MessageTemplate string

	// SkipInDevelopment admits every request unconditionally when the
	// RAMPART_ENV environment variable is "development".
	SkipInDevelopment bool

	// CleanupInterval is how often the janitor sweeps expired entries.
	// Zero disables the sweep; expired entries are still replaced lazily
	// inside Check.
	CleanupInterval time.Duration

	// KeyGenerator, when set, derives the effective key for every Check
	// call. When nil the raw key is used as-is.
	KeyGenerator KeyGenerator
}

// Update carries a partial configuration change for Configure. Nil fields
// are left untouched.
type Update struct {
	Window            *time.Duration
	MaxRequests       *int
	MessageTemplate   *string
	SkipInDevelopment *bool
	CleanupInterval   *time.Duration
	KeyGenerator      KeyGenerator
}

// Status is a read-only snapshot of one key's window.
type Status struct {
	// Current is the number of requests counted in the active window.
	Current int

	// Limit is the configured maximum per window.
	Limit int

	// Remaining is how many requests are left before rejection.
	Remaining int

	// ResetAt is when the active window expires.
	ResetAt time.Time
}

// entry is one key's counter. It is replaced, not incremented, once the
// window has expired.
type entry struct {
	count   int
	resetAt time.Time
}

// Default configuration values.
const (
	DefaultWindow          = time.Minute
	DefaultMaxRequests     = 60
	DefaultCleanupInterval = 5 * time.Minute
	DefaultMessageTemplate = "rate limit exceeded, retry in {waitTime} seconds"
)

// applyDefaults fills zero-valued fields with the package defaults.
func applyDefaults(cfg Config) Config {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = DefaultMaxRequests
	}
	if cfg.MessageTemplate == "" {
		cfg.MessageTemplate = DefaultMessageTemplate
	}
	return cfg
}
