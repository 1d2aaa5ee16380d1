package sanitize

import "github.com/microcosm-cc/bluemonday"

// defaultAllowedElements is the element allowlist applied when no custom
// allowlist is supplied: headings, paragraphs, links, lists, emphasis,
// tables, and preformatted code.
var defaultAllowedElements = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"p", "a", "br",
	"ul", "ol", "li",
	"em", "strong", "i", "b",
	"table", "thead", "tbody", "tr", "th", "td",
	"pre", "code", "blockquote",
}

// defaultHTMLPolicy builds the shared policy for the default allowlist.
// Links keep href and title but only over safe schemes.
func defaultHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(defaultAllowedElements...)
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowURLSchemes("http", "https")
	p.RequireParseableURLs(true)
	return p
}

// customHTMLPolicy builds a policy for a caller-supplied element
// allowlist. No attributes are allowed beyond href/title on links, and
// only when links are in the allowlist.
func customHTMLPolicy(allowed []string) *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(allowed...)
	for _, el := range allowed {
		if el == "a" {
			p.AllowAttrs("href", "title").OnElements("a")
			p.AllowURLSchemes("http", "https")
			p.RequireParseableURLs(true)
		}
	}
	return p
}

// SanitizeHTML strips every tag and attribute not in the allowlist. A
// nil allowed slice selects the default allowlist; empty or all-space
// input returns the empty string.
func (s *Sanitizer) SanitizeHTML(input string, allowed []string) string {
	if input == "" {
		return ""
	}
	if allowed == nil {
		return s.htmlPolicy.Sanitize(input)
	}
	return customHTMLPolicy(allowed).Sanitize(input)
}
