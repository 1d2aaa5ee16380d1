package sanitize

import (
	"unicode/utf8"

	"github.com/bytedance/sonic"
)

// previewLimit caps how much of the offending input is echoed back in
// JSON parse errors.
const previewLimit = 100

// SanitizeJSON parses a JSON document with an optional size cap.
// maxSizeBytes <= 0 means unlimited. The cap is checked against the
// UTF-8 byte length before any parsing happens, so oversized payloads
// fail cheaply with a size-specific error.
func (s *Sanitizer) SanitizeJSON(input string, maxSizeBytes int) (any, error) {
	if maxSizeBytes > 0 && len(input) > maxSizeBytes {
		rejectionsTotal.WithLabelValues(opJSON).Inc()
		return nil, validationErrorf(opJSON, "payload is %d bytes, limit is %d", len(input), maxSizeBytes)
	}

	var parsed any
	if err := sonic.UnmarshalString(input, &parsed); err != nil {
		rejectionsTotal.WithLabelValues(opJSON).Inc()
		return nil, validationErrorf(opJSON, "invalid JSON: %v (input: %s)", err, truncate(input, previewLimit))
	}

	return parsed, nil
}

// truncate shortens s to at most limit bytes, marking the cut. The cut
// backs up to a rune boundary so the preview stays valid UTF-8.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
