package config

// Default values for configuration fields.
const (
	// Rate limit defaults
	DefaultRateLimitWindowMS          = 60000
	DefaultRateLimitMaxRequests       = 60
	DefaultRateLimitCleanupIntervalMS = 300000
	DefaultRateLimitMessageTemplate   = "rate limit exceeded, retry in {waitTime} seconds"

	// Identifier defaults
	DefaultIdentifierLength    = 6
	DefaultIdentifierCharset   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultIdentifierSeparator = "_"

	// Audit defaults
	DefaultAuditPath          = "data/audit.db"
	DefaultAuditRetentionDays = 90
	DefaultAuditPruneSchedule = "0 3 * * *"
	DefaultAuditBufferSize    = 1000
)

// ApplyDefaults fills zero-valued fields with the defaults above.
// Booleans and explicit zeroes with meaning (cleanup disabled via a
// negative value, unlimited JSON via zero) are left alone.
func ApplyDefaults(cfg *Config) {
	if cfg.RateLimit.WindowMS <= 0 {
		cfg.RateLimit.WindowMS = DefaultRateLimitWindowMS
	}
	if cfg.RateLimit.MaxRequests <= 0 {
		cfg.RateLimit.MaxRequests = DefaultRateLimitMaxRequests
	}
	if cfg.RateLimit.CleanupIntervalMS == 0 {
		cfg.RateLimit.CleanupIntervalMS = DefaultRateLimitCleanupIntervalMS
	}
	if cfg.RateLimit.MessageTemplate == "" {
		cfg.RateLimit.MessageTemplate = DefaultRateLimitMessageTemplate
	}

	if cfg.Identifier.Length <= 0 {
		cfg.Identifier.Length = DefaultIdentifierLength
	}
	if cfg.Identifier.Charset == "" {
		cfg.Identifier.Charset = DefaultIdentifierCharset
	}
	if cfg.Identifier.Separator == "" {
		cfg.Identifier.Separator = DefaultIdentifierSeparator
	}

	if cfg.Audit.Path == "" {
		cfg.Audit.Path = DefaultAuditPath
	}
	if cfg.Audit.RetentionDays <= 0 {
		cfg.Audit.RetentionDays = DefaultAuditRetentionDays
	}
	if cfg.Audit.PruneSchedule == "" {
		cfg.Audit.PruneSchedule = DefaultAuditPruneSchedule
	}
	if cfg.Audit.BufferSize <= 0 {
		cfg.Audit.BufferSize = DefaultAuditBufferSize
	}
}
