package sanitize

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestSanitizePath_RootedTraversalGuard(t *testing.T) {
	s := New()

	_, err := s.SanitizePath("../../etc/passwd", PathOptions{RootDir: "/app"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError for traversal, got %v", err)
	}
}

func TestSanitizePath_RootedRelative(t *testing.T) {
	s := New()

	res, err := s.SanitizePath("logs/app.log", PathOptions{RootDir: "/srv/data"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Sanitized != filepath.Join("logs", "app.log") {
		t.Errorf("got %q", res.Sanitized)
	}
	if res.WasAbsolute {
		t.Error("input was relative")
	}
	if res.ConvertedToRelative {
		t.Error("nothing was converted")
	}
}

func TestSanitizePath_RootedAbsoluteInside(t *testing.T) {
	s := New()

	res, err := s.SanitizePath("/srv/data/logs/app.log", PathOptions{RootDir: "/srv/data"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Sanitized != filepath.Join("logs", "app.log") {
		t.Errorf("got %q", res.Sanitized)
	}
	if !res.WasAbsolute {
		t.Error("input was absolute")
	}
	if !res.ConvertedToRelative {
		t.Error("absolute input should be recorded as converted")
	}
}

func TestSanitizePath_RootItself(t *testing.T) {
	s := New()

	res, err := s.SanitizePath("/srv/data", PathOptions{RootDir: "/srv/data"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Sanitized != "." {
		t.Errorf("expected \".\" for the root itself, got %q", res.Sanitized)
	}
}

func TestSanitizePath_RootedAbsoluteOutside(t *testing.T) {
	s := New()

	if _, err := s.SanitizePath("/etc/passwd", PathOptions{RootDir: "/srv/data"}); err == nil {
		t.Error("expected rejection for absolute path outside root")
	}
	// Prefix collision: /srv/database is not inside /srv/data.
	if _, err := s.SanitizePath("/srv/database/x", PathOptions{RootDir: "/srv/data"}); err == nil {
		t.Error("expected rejection for sibling directory with shared prefix")
	}
}

func TestSanitizePath_UnrootedNormalizes(t *testing.T) {
	s := New()

	res, err := s.SanitizePath("a/b/../c", PathOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Sanitized != filepath.Join("a", "c") {
		t.Errorf("expected %q, got %q", filepath.Join("a", "c"), res.Sanitized)
	}
	if res.Original != "a/b/../c" {
		t.Errorf("original input not recorded: %q", res.Original)
	}
}

func TestSanitizePath_UnrootedEscapeRejected(t *testing.T) {
	s := New()

	// ../../... escapes the working directory even without an explicit root.
	if _, err := s.SanitizePath("../../../../etc/passwd", PathOptions{}); err == nil {
		t.Error("expected rejection for working-directory escape")
	}
}

func TestSanitizePath_AbsoluteRequiresOptIn(t *testing.T) {
	s := New()

	if _, err := s.SanitizePath("/tmp/x", PathOptions{}); err == nil {
		t.Error("expected rejection for absolute path without AllowAbsolute")
	}

	res, err := s.SanitizePath("/tmp/x", PathOptions{AllowAbsolute: true})
	if err != nil {
		t.Fatalf("unexpected error with AllowAbsolute: %v", err)
	}
	if res.Sanitized != filepath.Clean("/tmp/x") {
		t.Errorf("got %q", res.Sanitized)
	}
}

func TestSanitizePath_RejectsBadInput(t *testing.T) {
	s := New()

	if _, err := s.SanitizePath("", PathOptions{}); err == nil {
		t.Error("expected rejection for empty path")
	}
	if _, err := s.SanitizePath("a/b\x00c", PathOptions{}); err == nil {
		t.Error("expected rejection for NUL byte")
	}
}

func TestSanitizePath_ToPosix(t *testing.T) {
	s := New()

	res, err := s.SanitizePath("a/b/../c", PathOptions{ToPosix: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Sanitized != "a/c" {
		t.Errorf("expected posix separators, got %q", res.Sanitized)
	}
	if !res.Options.ToPosix {
		t.Error("options not echoed in result")
	}
}
