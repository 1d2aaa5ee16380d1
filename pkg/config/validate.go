package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate checks the configuration for internal consistency. It is
// called after defaults and environment overrides have been applied.
func Validate(cfg *Config) error {
	if cfg.RateLimit.WindowMS <= 0 {
		return fmt.Errorf("rate_limit.window_ms must be positive, got %d", cfg.RateLimit.WindowMS)
	}
	if cfg.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("rate_limit.max_requests must be positive, got %d", cfg.RateLimit.MaxRequests)
	}
	if !strings.Contains(cfg.RateLimit.MessageTemplate, "{waitTime}") {
		return fmt.Errorf("rate_limit.message_template must contain the {waitTime} placeholder")
	}

	if cfg.Sanitize.MaxJSONBytes < 0 {
		return fmt.Errorf("sanitize.max_json_bytes must not be negative, got %d", cfg.Sanitize.MaxJSONBytes)
	}

	if cfg.Identifier.Length <= 0 {
		return fmt.Errorf("identifier.length must be positive, got %d", cfg.Identifier.Length)
	}
	if cfg.Identifier.Separator == "" {
		return fmt.Errorf("identifier.separator must not be empty")
	}

	// Every prefix must have exactly one owning entity type; the reverse
	// index is case-insensitive, so prefixes differing only by case
	// collide.
	seen := make(map[string]string, len(cfg.Identifier.Prefixes))
	for entityType, prefix := range cfg.Identifier.Prefixes {
		if prefix == "" {
			return fmt.Errorf("identifier.prefixes[%s] must not be empty", entityType)
		}
		lowered := strings.ToLower(prefix)
		if owner, dup := seen[lowered]; dup {
			return fmt.Errorf("identifier prefix %q is claimed by both %q and %q", prefix, owner, entityType)
		}
		seen[lowered] = entityType
	}

	if cfg.Audit.Enabled {
		if cfg.Audit.Path == "" {
			return fmt.Errorf("audit.path must be set when audit is enabled")
		}
		if cfg.Audit.PruneSchedule != "" {
			if _, err := cron.ParseStandard(cfg.Audit.PruneSchedule); err != nil {
				return fmt.Errorf("audit.prune_schedule %q is not a valid cron expression: %w", cfg.Audit.PruneSchedule, err)
			}
		}
	}

	return nil
}
