package sanitize

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/jinzhu/copier"
)

// SanitizeForLogging deep-clones the input and replaces the value of
// every sensitive field with RedactedValue. The input itself is never
// mutated; only primitives and the redacted clone cross the boundary.
//
// Keys are split into lowercase fragments (before each uppercase letter
// and on '_'/'-'); a field is sensitive when any fragment exactly matches
// an entry in the sensitive-field set. Redacted values are not descended
// into, even when they are themselves containers.
//
// Non-container input is returned unchanged. This function never returns
// an error and never panics: cyclic structures and unclonable values
// degrade to the RedactionFailed sentinel with a diagnostic log.
func (s *Sanitizer) SanitizeForLogging(input any) (out any) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("redaction failed", "panic", r)
			redactionFailures.Inc()
			out = RedactionFailed
		}
	}()

	if input == nil {
		return nil
	}

	rv := reflect.ValueOf(input)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
	default:
		return input
	}

	// Cycles would run the clone below into the ground, and stack
	// exhaustion is not recoverable. Detect them up front.
	if hasCycle(rv, make(map[uintptr]bool)) {
		s.logger.Error("redaction failed", "reason", "cyclic structure")
		redactionFailures.Inc()
		return RedactionFailed
	}

	clone := reflect.New(rv.Type())
	if err := copier.CopyWithOption(clone.Interface(), input, copier.Option{DeepCopy: true}); err != nil {
		s.logger.Error("redaction failed", "error", err)
		redactionFailures.Inc()
		return RedactionFailed
	}

	s.redactValue(clone.Elem(), s.sensitiveSet())
	return clone.Elem().Interface()
}

// redactValue walks the cloned value, replacing sensitive map entries and
// struct fields. Caller owns the value; nothing here is shared.
func (s *Sanitizer) redactValue(v reflect.Value, sensitive map[string]struct{}) {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if !v.IsNil() {
			s.redactValue(v.Elem(), sensitive)
		}

	case reflect.Map:
		if v.IsNil() || v.Type().Key().Kind() != reflect.String {
			return
		}
		for _, key := range v.MapKeys() {
			if isSensitiveKey(key.String(), sensitive) {
				v.SetMapIndex(key, redactionFor(v.Type().Elem()))
				continue
			}
			// Map values are not addressable; redact a copy and store it
			// back when it is a container.
			elem := v.MapIndex(key)
			if containsContainer(elem) {
				tmp := reflect.New(elem.Type()).Elem()
				tmp.Set(elem)
				s.redactValue(tmp, sensitive)
				v.SetMapIndex(key, tmp)
			}
		}

	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			s.redactValue(v.Index(i), sensitive)
		}

	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			if !field.CanSet() {
				continue
			}
			if isSensitiveKey(t.Field(i).Name, sensitive) {
				marker := redactionFor(field.Type())
				if marker.Type().AssignableTo(field.Type()) {
					field.Set(marker)
				} else {
					field.Set(reflect.Zero(field.Type()))
				}
				continue
			}
			s.redactValue(field, sensitive)
		}
	}
}

// redactionFor returns the redaction marker as a value assignable to the
// given type where possible, falling back to the type's zero value.
func redactionFor(t reflect.Type) reflect.Value {
	marker := reflect.ValueOf(RedactedValue)
	if marker.Type().AssignableTo(t) {
		return marker
	}
	return reflect.Zero(t)
}

// containsContainer reports whether the value (after unwrapping
// interfaces and pointers) is worth descending into.
func containsContainer(v reflect.Value) bool {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	}
	return false
}

// hasCycle reports whether the value references itself anywhere along the
// current traversal path.
func hasCycle(v reflect.Value, path map[uintptr]bool) bool {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return false
		}
		return hasCycle(v.Elem(), path)

	case reflect.Pointer:
		if v.IsNil() {
			return false
		}
		ptr := v.Pointer()
		if path[ptr] {
			return true
		}
		path[ptr] = true
		defer delete(path, ptr)
		return hasCycle(v.Elem(), path)

	case reflect.Map:
		if v.IsNil() {
			return false
		}
		ptr := v.Pointer()
		if path[ptr] {
			return true
		}
		path[ptr] = true
		defer delete(path, ptr)
		for _, key := range v.MapKeys() {
			if hasCycle(v.MapIndex(key), path) {
				return true
			}
		}
		return false

	case reflect.Slice:
		if v.IsNil() {
			return false
		}
		ptr := v.Pointer()
		if path[ptr] {
			return true
		}
		path[ptr] = true
		defer delete(path, ptr)
		for i := 0; i < v.Len(); i++ {
			if hasCycle(v.Index(i), path) {
				return true
			}
		}
		return false

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if hasCycle(v.Index(i), path) {
				return true
			}
		}
		return false

	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if hasCycle(v.Field(i), path) {
				return true
			}
		}
		return false
	}
	return false
}

// isSensitiveKey splits the key into lowercase fragments and reports
// whether any fragment exactly matches the sensitive set.
func isSensitiveKey(key string, sensitive map[string]struct{}) bool {
	for _, fragment := range keyFragments(key) {
		if _, ok := sensitive[fragment]; ok {
			return true
		}
	}
	return false
}

// keyFragments splits a field name before each uppercase letter and on
// '_' and '-', lowercasing the result. "apiKey" becomes ["api", "key"].
func keyFragments(key string) []string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		switch {
		case r == '_' || r == '-':
			b.WriteByte(' ')
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return strings.Fields(b.String())
}
