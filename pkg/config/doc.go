// Package config loads and validates the protection layer configuration.
//
// Configuration is read from a YAML file, filled with defaults, then
// overridden by RAMPART_* environment variables. Environment variables
// always take precedence over file values.
//
//	cfg, err := config.LoadWithEnv("rampart.yaml")
//	limiter := ratelimit.New(cfg.RateLimit.LimiterConfig())
//
// An optional Watcher re-reads the file when it changes on disk (with
// debouncing) and hands the fresh configuration to a reload callback,
// letting a running limiter pick up new quotas without a restart.
package config
