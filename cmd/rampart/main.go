// Rampart is a request validation and resource protection toolkit.
//
// It bundles three concerns behind a small set of commands:
//   - Rate limiting configuration checks
//   - Input sanitization and log redaction
//   - Prefixed identifier generation and normalization
//
// Usage:
//
//	# Generate an identifier for an entity type
//	rampart id generate --entity project --config config.yaml
//
//	# Normalize an identifier to canonical casing
//	rampart id normalize proj_abc123 --config config.yaml
//
//	# Validate a configuration file
//	rampart config validate config.yaml
//
//	# Redact sensitive fields from a JSON document on stdin
//	cat payload.json | rampart redact
//
//	# Show version information
//	rampart version
package main

func main() {
	Execute()
}
