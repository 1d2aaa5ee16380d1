package sanitize

import (
	"reflect"
	"testing"
)

// ============================================================================
// Redaction Tests
// ============================================================================

func TestSanitizeForLogging_RedactsNestedFields(t *testing.T) {
	s := New()

	input := map[string]any{
		"password": "x",
		"nested": map[string]any{
			"apiKey": "y",
			"ok":     "z",
		},
	}

	out := s.SanitizeForLogging(input)
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", out)
	}

	if m["password"] != RedactedValue {
		t.Errorf("password not redacted: %v", m["password"])
	}
	nested := m["nested"].(map[string]any)
	if nested["apiKey"] != RedactedValue {
		t.Errorf("apiKey not redacted: %v", nested["apiKey"])
	}
	if nested["ok"] != "z" {
		t.Errorf("non-sensitive field modified: %v", nested["ok"])
	}

	// The input itself is never mutated.
	if input["password"] != "x" {
		t.Error("original input was mutated")
	}
}

func TestSanitizeForLogging_KeyFragmentRules(t *testing.T) {
	s := New()

	input := map[string]any{
		"access_token": "a",
		"api-key":      "b",
		"authToken":    "c",
		"keyboard":     "not sensitive, no fragment matches",
	}

	out := s.SanitizeForLogging(input).(map[string]any)
	for _, k := range []string{"access_token", "api-key", "authToken"} {
		if out[k] != RedactedValue {
			t.Errorf("%s not redacted: %v", k, out[k])
		}
	}
	if out["keyboard"] == RedactedValue {
		t.Error("keyboard should not match any fragment")
	}
}

func TestSanitizeForLogging_DoesNotRecurseIntoRedacted(t *testing.T) {
	s := New()

	input := map[string]any{
		"credentials": map[string]any{"user": "u", "password": "p"},
	}

	out := s.SanitizeForLogging(input).(map[string]any)
	// The whole container is replaced by the marker, not walked.
	if out["credentials"] != RedactedValue {
		t.Errorf("expected container replaced with marker, got %v", out["credentials"])
	}
}

func TestSanitizeForLogging_SlicesOfMaps(t *testing.T) {
	s := New()

	input := []any{
		map[string]any{"token": "t1", "id": 1},
		map[string]any{"token": "t2", "id": 2},
	}

	out := s.SanitizeForLogging(input).([]any)
	for i, item := range out {
		m := item.(map[string]any)
		if m["token"] != RedactedValue {
			t.Errorf("element %d token not redacted", i)
		}
		if m["id"] == RedactedValue {
			t.Errorf("element %d id wrongly redacted", i)
		}
	}
}

func TestSanitizeForLogging_StructFields(t *testing.T) {
	s := New()

	type login struct {
		Username string
		Password string
	}

	out := s.SanitizeForLogging(login{Username: "u", Password: "p"})
	got, ok := out.(login)
	if !ok {
		t.Fatalf("expected login struct back, got %T", out)
	}
	if got.Password != RedactedValue {
		t.Errorf("Password field not redacted: %q", got.Password)
	}
	if got.Username != "u" {
		t.Errorf("Username modified: %q", got.Username)
	}
}

// ============================================================================
// Passthrough and Failure Tests
// ============================================================================

func TestSanitizeForLogging_NonContainerPassthrough(t *testing.T) {
	s := New()

	for _, input := range []any{nil, "a string", 42, 3.14, true} {
		out := s.SanitizeForLogging(input)
		if !reflect.DeepEqual(out, input) {
			t.Errorf("expected %v unchanged, got %v", input, out)
		}
	}
}

func TestSanitizeForLogging_CyclicInputReturnsSentinel(t *testing.T) {
	s := New()

	cyclic := map[string]any{}
	cyclic["self"] = cyclic

	out := s.SanitizeForLogging(cyclic)
	if out != RedactionFailed {
		t.Errorf("expected %q for cyclic input, got %v", RedactionFailed, out)
	}
}

func TestSanitizeForLogging_CyclicSlice(t *testing.T) {
	s := New()

	inner := []any{nil}
	inner[0] = inner

	out := s.SanitizeForLogging(inner)
	if out != RedactionFailed {
		t.Errorf("expected %q for cyclic slice, got %v", RedactionFailed, out)
	}
}

// ============================================================================
// Sensitive Field Set Tests
// ============================================================================

func TestSetSensitiveFields_Additive(t *testing.T) {
	s := New()

	input := map[string]any{"favoriteColor": "teal", "password": "p"}

	out := s.SanitizeForLogging(input).(map[string]any)
	if out["favoriteColor"] != "teal" {
		t.Fatal("favoriteColor should not be sensitive by default")
	}

	s.SetSensitiveFields([]string{"color"})

	out = s.SanitizeForLogging(input).(map[string]any)
	if out["favoriteColor"] != RedactedValue {
		t.Error("favoriteColor should be redacted after configuration")
	}
	// Defaults survive: the set only grows.
	if out["password"] != RedactedValue {
		t.Error("password should still be redacted")
	}
}
