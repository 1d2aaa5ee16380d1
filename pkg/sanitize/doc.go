// Package sanitize normalizes and validates untrusted input before it
// reaches business logic or logs.
//
// # Overview
//
// A Sanitizer instance exposes one entry point per input class:
//
//   - SanitizeHTML / SanitizeString: allowlist-based tag stripping
//   - SanitizeURL: scheme and host validation with dangerous-scheme rejection
//   - SanitizePath: lexical normalization with a path-traversal guard
//   - SanitizeJSON: size-capped parsing
//   - SanitizeNumber: numeric coercion with optional clamping
//   - SanitizeForLogging: recursive redaction of sensitive fields
//
// Construct instances explicitly and inject them where needed:
//
//	s := sanitize.New()
//	out, err := s.SanitizeURL("https://example.com/x", nil)
//
// There is no package-level singleton; isolated instances keep tests
// independent.
//
// # Failure Model
//
// Every operation fails fast with a *ValidationError, with two deliberate
// exceptions. SanitizeString in the url context soft-fails: it logs a
// warning and returns the empty string instead of an error. And
// SanitizeForLogging never fails at all - it runs on the logging hot path,
// so any internal problem degrades to the RedactionFailed sentinel.
//
// # Thread Safety
//
// Sanitizers are stateless per call except for the sensitive-field set,
// which is held behind an atomic snapshot. SetSensitiveFields is additive
// and safe to call concurrently with readers.
package sanitize
