package sanitize

import (
	"net/url"
	"strings"
)

const opURL = "url"

// dangerousSchemes are rejected outright even when an upstream validator
// let them through. Checked case-insensitively against the raw input.
var dangerousSchemes = []string{"javascript:", "data:", "vbscript:"}

// defaultProtocols is the scheme allowlist applied when the caller passes
// none.
var defaultProtocols = []string{"http", "https"}

// SanitizeURL validates that input is a well-formed URL whose scheme is
// in allowedProtocols (http and https when nil) and whose host is
// present. The trimmed input is returned on success.
//
// Unlike SanitizeString in the url context, failures here are returned as
// a *ValidationError.
func (s *Sanitizer) SanitizeURL(input string, allowedProtocols []string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		rejectionsTotal.WithLabelValues(opURL).Inc()
		return "", validationErrorf(opURL, "empty url")
	}

	if len(allowedProtocols) == 0 {
		allowedProtocols = defaultProtocols
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		rejectionsTotal.WithLabelValues(opURL).Inc()
		return "", validationErrorf(opURL, "malformed url: %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		rejectionsTotal.WithLabelValues(opURL).Inc()
		return "", validationErrorf(opURL, "url must include scheme and host")
	}

	allowed := false
	for _, p := range allowedProtocols {
		if strings.EqualFold(u.Scheme, p) {
			allowed = true
			break
		}
	}
	if !allowed {
		rejectionsTotal.WithLabelValues(opURL).Inc()
		return "", validationErrorf(opURL, "scheme %q is not allowed", u.Scheme)
	}

	// Defense in depth: reject dangerous schemes by prefix even if the
	// parse above somehow admitted them.
	lowered := strings.ToLower(trimmed)
	for _, scheme := range dangerousSchemes {
		if strings.HasPrefix(lowered, scheme) {
			rejectionsTotal.WithLabelValues(opURL).Inc()
			return "", validationErrorf(opURL, "dangerous scheme %q", scheme)
		}
	}

	return trimmed, nil
}
