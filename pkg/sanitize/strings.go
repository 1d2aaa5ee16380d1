package sanitize

// Context selects how SanitizeString treats its input.
type Context string

// Supported sanitization contexts.
const (
	// ContextHTML keeps allowlisted markup.
	ContextHTML Context = "html"

	// ContextAttribute strips all markup; the output is plain text.
	ContextAttribute Context = "attribute"

	// ContextURL validates the input as an http/https URL. Failures
	// soft-fail to the empty string rather than an error.
	ContextURL Context = "url"

	// ContextText strips all markup. This is the default.
	ContextText Context = "text"

	// ContextJavaScript is categorically disallowed.
	ContextJavaScript Context = "javascript"
)

// StringOptions configures SanitizeString.
type StringOptions struct {
	// Context selects the sanitization mode. Empty means ContextText.
	Context Context

	// AllowedTags overrides the default element allowlist in the html
	// context. Ignored in every other context.
	AllowedTags []string
}

// SanitizeString cleans a string according to the requested context.
//
// The url context is the one soft-failing mode: a malformed or dangerous
// URL is logged and replaced with the empty string instead of raising an
// error. Use SanitizeURL directly when the caller needs the failure. The
// javascript context always fails regardless of input content.
func (s *Sanitizer) SanitizeString(input string, opts StringOptions) (string, error) {
	ctx := opts.Context
	if ctx == "" {
		ctx = ContextText
	}

	switch ctx {
	case ContextHTML:
		return s.SanitizeHTML(input, opts.AllowedTags), nil

	case ContextAttribute, ContextText:
		return s.textPolicy.Sanitize(input), nil

	case ContextURL:
		cleaned, err := s.SanitizeURL(input, nil)
		if err != nil {
			s.logger.Warn("url failed sanitization, replacing with empty string",
				"error", err,
			)
			rejectionsTotal.WithLabelValues(opString).Inc()
			return "", nil
		}
		return cleaned, nil

	case ContextJavaScript:
		rejectionsTotal.WithLabelValues(opString).Inc()
		return "", validationErrorf(opString, "javascript context is not allowed")

	default:
		rejectionsTotal.WithLabelValues(opString).Inc()
		return "", validationErrorf(opString, "unknown context %q", ctx)
	}
}
