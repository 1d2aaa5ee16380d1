package config

import (
	"os"
	"testing"
	"time"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := writeConfig(t, "rate_limit:\n  max_requests: 10\n")

	w, err := NewWatcher(path, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	reloaded := make(chan *Config, 1)
	if err := w.Start(func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}); err != nil {
		t.Fatal(err)
	}

	// Give the watcher a moment to register before writing.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(path, []byte("rate_limit:\n  max_requests: 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.RateLimit.MaxRequests != 42 {
			t.Errorf("reloaded config has max_requests %d, want 42", cfg.RateLimit.MaxRequests)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_KeepsPreviousOnInvalidFile(t *testing.T) {
	path := writeConfig(t, "rate_limit:\n  max_requests: 10\n")

	w, err := NewWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	calls := make(chan struct{}, 8)
	if err := w.Start(func(*Config) { calls <- struct{}{} }); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)

	// Invalid template fails validation; the callback must not fire.
	if err := os.WriteFile(path, []byte("rate_limit:\n  message_template: broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-calls:
		t.Fatal("callback fired for invalid configuration")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StopIsClean(t *testing.T) {
	path := writeConfig(t, "rate_limit:\n  max_requests: 1\n")

	w, err := NewWatcher(path, 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(func(*Config) {}); err != nil {
		t.Fatal(err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("stop: %v", err)
	}
	// Second Stop is a no-op.
	if err := w.Stop(); err != nil {
		t.Errorf("second stop: %v", err)
	}
}
