package sanitize

import (
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/microcosm-cc/bluemonday"
)

// Redaction markers.
const (
	// RedactedValue replaces the value of any sensitive field.
	RedactedValue = "[REDACTED]"

	// RedactionFailed is returned by SanitizeForLogging when the input
	// could not be safely cloned or traversed.
	RedactionFailed = "[REDACTION_FAILED]"
)

// defaultSensitiveFields seeds the sensitive-field set. Entries are
// matched against lowercase key fragments, so "key" covers apiKey,
// api_key and secret-key alike.
var defaultSensitiveFields = []string{
	"password", "passwd", "pwd",
	"secret", "token", "key", "apikey",
	"auth", "authorization", "credential", "credentials",
	"private", "ssn",
}

// Sanitizer validates and normalizes untrusted input. Construct with New;
// the zero value is not usable.
type Sanitizer struct {
	// sensitive holds the current sensitive-field snapshot. Writers swap
	// the whole set; readers never observe a partial update.
	sensitive atomic.Pointer[map[string]struct{}]

	// textPolicy strips every tag and attribute.
	textPolicy *bluemonday.Policy

	// htmlPolicy applies the default element allowlist.
	htmlPolicy *bluemonday.Policy

	logger *slog.Logger
}

// Option customizes a Sanitizer at construction time.
type Option func(*Sanitizer)

// WithLogger overrides the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sanitizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSensitiveFields adds field-name fragments to the initial sensitive
// set on top of the defaults.
func WithSensitiveFields(fields ...string) Option {
	return func(s *Sanitizer) {
		s.addSensitiveFields(fields)
	}
}

// New creates a Sanitizer with the default allowlist, the default
// sensitive-field set, and the process default logger.
func New(opts ...Option) *Sanitizer {
	s := &Sanitizer{
		textPolicy: bluemonday.StrictPolicy(),
		htmlPolicy: defaultHTMLPolicy(),
		logger:     slog.Default().With("component", "sanitize"),
	}

	set := make(map[string]struct{}, len(defaultSensitiveFields))
	for _, f := range defaultSensitiveFields {
		set[strings.ToLower(f)] = struct{}{}
	}
	s.sensitive.Store(&set)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetSensitiveFields adds field-name fragments to the sensitive set. The
// set only grows; fields are lowercased before insertion. Safe to call
// concurrently with SanitizeForLogging.
func (s *Sanitizer) SetSensitiveFields(fields []string) {
	s.addSensitiveFields(fields)
}

// addSensitiveFields copies the current snapshot, adds the new entries,
// and swaps the pointer.
func (s *Sanitizer) addSensitiveFields(fields []string) {
	if len(fields) == 0 {
		return
	}

	old := *s.sensitive.Load()
	next := make(map[string]struct{}, len(old)+len(fields))
	for f := range old {
		next[f] = struct{}{}
	}
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			next[f] = struct{}{}
		}
	}
	s.sensitive.Store(&next)
}

// sensitiveSet returns the current snapshot.
func (s *Sanitizer) sensitiveSet() map[string]struct{} {
	return *s.sensitive.Load()
}
