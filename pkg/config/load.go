package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from a YAML file, applies defaults, and
// validates the result. Environment variables are not consulted; use
// LoadWithEnv for that.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from a YAML file and applies RAMPART_*
// environment variable overrides. Environment variables always take
// precedence over file values.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate the final configuration
func LoadWithEnv(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies RAMPART_SECTION_FIELD environment variables
// on top of the loaded configuration. Unparseable values are ignored.
func applyEnvOverrides(cfg *Config) {
	if v, ok := envInt("RAMPART_RATELIMIT_WINDOW_MS"); ok {
		cfg.RateLimit.WindowMS = v
	}
	if v, ok := envInt("RAMPART_RATELIMIT_MAX_REQUESTS"); ok {
		cfg.RateLimit.MaxRequests = v
	}
	if v, ok := envInt("RAMPART_RATELIMIT_CLEANUP_INTERVAL_MS"); ok {
		cfg.RateLimit.CleanupIntervalMS = v
	}
	if v := os.Getenv("RAMPART_RATELIMIT_MESSAGE_TEMPLATE"); v != "" {
		cfg.RateLimit.MessageTemplate = v
	}
	if v, ok := envBool("RAMPART_RATELIMIT_SKIP_IN_DEVELOPMENT"); ok {
		cfg.RateLimit.SkipInDevelopment = v
	}

	if v := os.Getenv("RAMPART_SANITIZE_SENSITIVE_FIELDS"); v != "" {
		fields := strings.Split(v, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		cfg.Sanitize.SensitiveFields = fields
	}
	if v, ok := envInt("RAMPART_SANITIZE_MAX_JSON_BYTES"); ok {
		cfg.Sanitize.MaxJSONBytes = v
	}

	if v, ok := envInt("RAMPART_IDENTIFIER_LENGTH"); ok {
		cfg.Identifier.Length = v
	}
	if v := os.Getenv("RAMPART_IDENTIFIER_SEPARATOR"); v != "" {
		cfg.Identifier.Separator = v
	}

	if v, ok := envBool("RAMPART_AUDIT_ENABLED"); ok {
		cfg.Audit.Enabled = v
	}
	if v := os.Getenv("RAMPART_AUDIT_PATH"); v != "" {
		cfg.Audit.Path = v
	}
	if v, ok := envInt("RAMPART_AUDIT_RETENTION_DAYS"); ok {
		cfg.Audit.RetentionDays = v
	}
	if v := os.Getenv("RAMPART_AUDIT_PRUNE_SCHEDULE"); v != "" {
		cfg.Audit.PruneSchedule = v
	}
}

// envInt reads an integer environment variable.
func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// envBool reads a boolean environment variable.
func envBool(name string) (bool, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
