package config

import (
	"time"

	"rampart-hq/rampart/pkg/identifier"
	"rampart-hq/rampart/pkg/ratelimit"
)

// Config is the root configuration for the protection layer.
type Config struct {
	// RateLimit configures the per-key request limiter.
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// Sanitize configures input sanitization.
	Sanitize SanitizeConfig `yaml:"sanitize"`

	// Identifier configures entity identifier generation.
	Identifier IdentifierConfig `yaml:"identifier"`

	// Audit configures the protection-event audit trail.
	Audit AuditConfig `yaml:"audit"`
}

// RateLimitConfig mirrors ratelimit.Config in YAML-friendly form.
// Durations are expressed in milliseconds.
type RateLimitConfig struct {
	// WindowMS is the fixed counting window in milliseconds.
	// Default: 60000.
	WindowMS int `yaml:"window_ms"`

	// MaxRequests is the number of requests admitted per key per window.
	// Default: 60.
	MaxRequests int `yaml:"max_requests"`

	// MessageTemplate is the rejection message; "{waitTime}" is replaced
	// with the remaining seconds.
	MessageTemplate string `yaml:"message_template"`

	// SkipInDevelopment admits everything when RAMPART_ENV is
	// "development".
	SkipInDevelopment bool `yaml:"skip_in_development"`

	// CleanupIntervalMS is the janitor sweep interval in milliseconds.
	// Zero means unset (the default applies); a negative value disables
	// the sweep. Default: 300000.
	CleanupIntervalMS int `yaml:"cleanup_interval_ms"`
}

// LimiterConfig converts the section into a ratelimit.Config.
func (c RateLimitConfig) LimiterConfig() ratelimit.Config {
	return ratelimit.Config{
		Window:            time.Duration(c.WindowMS) * time.Millisecond,
		MaxRequests:       c.MaxRequests,
		MessageTemplate:   c.MessageTemplate,
		SkipInDevelopment: c.SkipInDevelopment,
		CleanupInterval:   time.Duration(c.CleanupIntervalMS) * time.Millisecond,
	}
}

// LimiterUpdate converts the section into a partial ratelimit.Update,
// used by the watcher to reconfigure a running limiter.
func (c RateLimitConfig) LimiterUpdate() ratelimit.Update {
	window := time.Duration(c.WindowMS) * time.Millisecond
	cleanup := time.Duration(c.CleanupIntervalMS) * time.Millisecond
	maxRequests := c.MaxRequests
	template := c.MessageTemplate
	skip := c.SkipInDevelopment
	return ratelimit.Update{
		Window:            &window,
		MaxRequests:       &maxRequests,
		MessageTemplate:   &template,
		SkipInDevelopment: &skip,
		CleanupInterval:   &cleanup,
	}
}

// SanitizeConfig configures the sanitizer.
type SanitizeConfig struct {
	// SensitiveFields are extra field-name fragments redacted from logs,
	// added on top of the built-in set.
	SensitiveFields []string `yaml:"sensitive_fields"`

	// MaxJSONBytes caps SanitizeJSON payloads. Zero means unlimited.
	MaxJSONBytes int `yaml:"max_json_bytes"`
}

// IdentifierConfig configures identifier generation.
type IdentifierConfig struct {
	// Prefixes maps entity types to identifier prefixes.
	Prefixes map[string]string `yaml:"prefixes"`

	// Length of the random segment. Default: 6.
	Length int `yaml:"length"`

	// Charset for the random segment. Default: A-Z0-9.
	Charset string `yaml:"charset"`

	// Separator between prefix and random segment. Default: "_".
	Separator string `yaml:"separator"`
}

// ServiceOptions converts the section into identifier.Options.
func (c IdentifierConfig) ServiceOptions() identifier.Options {
	return identifier.Options{
		Length:    c.Length,
		Charset:   c.Charset,
		Separator: c.Separator,
	}
}

// AuditConfig configures the audit trail.
type AuditConfig struct {
	// Enabled turns the audit trail on.
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file path.
	Path string `yaml:"path"`

	// RetentionDays is how long events are kept before pruning.
	// Default: 90.
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is a cron expression for scheduled pruning.
	// Default: "0 3 * * *". Empty disables scheduled pruning.
	PruneSchedule string `yaml:"prune_schedule"`

	// BufferSize is the async recorder channel size. Default: 1000.
	BufferSize int `yaml:"buffer_size"`
}
