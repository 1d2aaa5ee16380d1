package identifier

import (
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
)

// Options controls the shape of generated identifiers. Zero-valued fields
// fall back to the Service defaults.
type Options struct {
	// Length of the random segment.
	Length int

	// Charset the random segment is drawn from.
	Charset string

	// Separator between prefix and random segment.
	Separator string
}

// registry is the bidirectional entity-type/prefix mapping. It is built
// wholesale and never mutated after publication; byPrefix keys are
// lowercased for case-insensitive parsing while byType preserves the
// registered casing.
type registry struct {
	byType   map[string]string
	byPrefix map[string]string
}

// Service generates and verifies prefixed identifiers. Construct with
// NewService; the zero value is not usable.
type Service struct {
	registry atomic.Pointer[registry]
	defaults Options
}

// NewService creates a Service with the given default options. Zero
// fields fall back to the package defaults (length 6, A-Z0-9, "_").
func NewService(defaults Options) *Service {
	s := &Service{defaults: fillOptions(defaults, Options{
		Length:    DefaultLength,
		Charset:   DefaultCharset,
		Separator: DefaultSeparator,
	})}
	s.registry.Store(&registry{
		byType:   map[string]string{},
		byPrefix: map[string]string{},
	})
	return s
}

// SetEntityPrefixes replaces the entity-type registry. Both directions
// are rebuilt and published in a single swap, so concurrent readers see
// either the old registry or the new one, never a mix.
func (s *Service) SetEntityPrefixes(prefixes map[string]string) {
	next := &registry{
		byType:   make(map[string]string, len(prefixes)),
		byPrefix: make(map[string]string, len(prefixes)),
	}
	for entityType, prefix := range prefixes {
		next.byType[entityType] = prefix
		next.byPrefix[strings.ToLower(prefix)] = entityType
	}
	s.registry.Store(next)
}

// Generate builds {prefix}{separator}{random}, or just the random
// segment when prefix is empty. Separator, length, and charset come from
// opts, falling back to the instance defaults.
func (s *Service) Generate(prefix string, opts Options) (string, error) {
	o := s.resolve(opts)
	random, err := RandomString(o.Length, o.Charset)
	if err != nil {
		return "", err
	}
	if prefix == "" {
		return random, nil
	}
	return prefix + o.Separator + random, nil
}

// GenerateForEntity generates an identifier using the prefix registered
// for the entity type. Unregistered types fail with
// *UnknownEntityTypeError.
func (s *Service) GenerateForEntity(entityType string, opts Options) (string, error) {
	prefix, ok := s.registry.Load().byType[entityType]
	if !ok {
		return "", &UnknownEntityTypeError{EntityType: entityType}
	}
	return s.Generate(prefix, opts)
}

// IsValid reports whether id is a well-formed identifier for the entity
// type. The prefix comparison uses the registered casing; the random
// segment is matched case-sensitively against the charset. Malformed
// input yields false, never an error.
func (s *Service) IsValid(id, entityType string, opts Options) bool {
	prefix, ok := s.registry.Load().byType[entityType]
	if !ok {
		return false
	}

	o := s.resolve(opts)
	pattern := "^" + regexp.QuoteMeta(prefix) + regexp.QuoteMeta(o.Separator) +
		"[" + charClass(o.Charset) + "]{" + strconv.Itoa(o.Length) + "}$"

	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(id)
}

// StripPrefix returns the substring after the first separator. An id
// without the separator is returned unchanged; that is not an error.
func (s *Service) StripPrefix(id, separator string) string {
	sep := separator
	if sep == "" {
		sep = s.defaults.Separator
	}
	idx := strings.Index(id, sep)
	if idx < 0 {
		return id
	}
	return id[idx+len(sep):]
}

// GetEntityType resolves the entity type owning the identifier's prefix.
// The prefix match is case-insensitive. Fails with *InvalidFormatError
// when the separator is absent and *UnknownPrefixError when the prefix is
// not registered.
func (s *Service) GetEntityType(id, separator string) (string, error) {
	sep := separator
	if sep == "" {
		sep = s.defaults.Separator
	}

	idx := strings.Index(id, sep)
	if idx < 0 {
		return "", &InvalidFormatError{ID: id, Reason: "missing separator " + strconv.Quote(sep)}
	}

	prefix := id[:idx]
	entityType, ok := s.registry.Load().byPrefix[strings.ToLower(prefix)]
	if !ok {
		return "", &UnknownPrefixError{Prefix: prefix}
	}
	return entityType, nil
}

// Normalize rewrites the identifier with the registered prefix casing and
// an uppercased random segment, joined by the canonical separator.
// Normalize is idempotent.
func (s *Service) Normalize(id, separator string) (string, error) {
	sep := separator
	if sep == "" {
		sep = s.defaults.Separator
	}

	entityType, err := s.GetEntityType(id, sep)
	if err != nil {
		return "", err
	}

	canonical := s.registry.Load().byType[entityType]
	random := s.StripPrefix(id, sep)
	return canonical + sep + strings.ToUpper(random), nil
}

// resolve merges per-call options with the instance defaults.
func (s *Service) resolve(opts Options) Options {
	return fillOptions(opts, s.defaults)
}

// fillOptions replaces zero fields in opts with the fallback values.
func fillOptions(opts, fallback Options) Options {
	if opts.Length <= 0 {
		opts.Length = fallback.Length
	}
	if opts.Charset == "" {
		opts.Charset = fallback.Charset
	}
	if opts.Separator == "" {
		opts.Separator = fallback.Separator
	}
	return opts
}

// charClass escapes the characters that are special inside a regexp
// character class.
func charClass(charset string) string {
	var b strings.Builder
	b.Grow(len(charset) + 4)
	for _, r := range charset {
		switch r {
		case '\\', ']', '^', '-':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
