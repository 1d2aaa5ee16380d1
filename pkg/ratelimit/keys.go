package ratelimit

import "strings"

// EscapeKeySegment escapes delimiter characters in a limiter key segment
// so that user-controlled identifiers containing ':' cannot collide with
// adjacent buckets.
//
// Escape rules (order matters):
//  1. '_' becomes "__" (the escape character is escaped first)
//  2. ':' becomes "_c" (the delimiter is escaped second)
//
// No two distinct inputs produce the same escaped output.
func EscapeKeySegment(s string) string {
	s = strings.ReplaceAll(s, "_", "__")
	s = strings.ReplaceAll(s, ":", "_c")
	return s
}

// ComposeKey joins escaped segments into a single limiter key. Use this
// when the key combines several caller-controlled values, for example a
// tenant and an endpoint class.
func ComposeKey(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = EscapeKeySegment(s)
	}
	return strings.Join(escaped, ":")
}
