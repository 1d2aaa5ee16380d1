package ratelimit

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// environment variable consulted by SkipInDevelopment.
const envVar = "RAMPART_ENV"

// Limiter is a fixed-window, per-key request limiter.
//
// One instance owns its entry map; keys never share state across
// instances. The zero value is not usable - construct with New.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	config  Config
	closed  bool

	// janitorStop is non-nil while the sweep goroutine is running.
	janitorStop chan struct{}
	janitorWG   sync.WaitGroup

	// reported is the key count last published to the shared gauge.
	reported int

	logger *slog.Logger
}

// New creates a limiter with the given configuration. Zero-valued fields
// fall back to package defaults. If CleanupInterval is positive a janitor
// goroutine starts immediately; callers should Close the limiter when
// done with it.
func New(cfg Config) *Limiter {
	l := &Limiter{
		entries: make(map[string]*entry),
		config:  applyDefaults(cfg),
		logger:  slog.Default().With("component", "ratelimit"),
	}
	l.startJanitorLocked()
	return l
}

// Check admits or rejects one request for the given key. The optional ctx
// value is passed through to the configured KeyGenerator and is otherwise
// unused.
//
// On rejection the returned error is a *LimitExceededError. The rejected
// request still counts against the window.
func (l *Limiter) Check(key string, ctx any) error {
	l.mu.Lock()

	effective := key
	if l.config.KeyGenerator != nil {
		effective = l.config.KeyGenerator(key, ctx)
	}

	if l.config.SkipInDevelopment && inDevelopment() {
		l.mu.Unlock()
		checksTotal.WithLabelValues(resultSkipped).Inc()
		return nil
	}

	now := time.Now()
	e, ok := l.entries[effective]
	if !ok || !now.Before(e.resetAt) {
		l.entries[effective] = &entry{count: 1, resetAt: now.Add(l.config.Window)}
		l.syncTrackedKeysLocked()
		l.mu.Unlock()
		checksTotal.WithLabelValues(resultAllowed).Inc()
		return nil
	}

	e.count++
	if e.count > l.config.MaxRequests {
		wait := int((time.Until(e.resetAt) + time.Second - 1) / time.Second)
		if wait < 1 {
			wait = 1
		}
		err := &LimitExceededError{
			Key:         effective,
			Limit:       l.config.MaxRequests,
			Window:      l.config.Window,
			WaitSeconds: wait,
			Message:     strings.ReplaceAll(l.config.MessageTemplate, "{waitTime}", strconv.Itoa(wait)),
		}
		l.mu.Unlock()
		checksTotal.WithLabelValues(resultRejected).Inc()
		rejectionsTotal.Inc()
		return err
	}

	l.mu.Unlock()
	checksTotal.WithLabelValues(resultAllowed).Inc()
	return nil
}

// Status returns a snapshot of the key's active window, or nil when the
// key has no active window. It never mutates limiter state.
func (l *Limiter) Status(key string) *Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || !time.Now().Before(e.resetAt) {
		return nil
	}

	remaining := l.config.MaxRequests - e.count
	if remaining < 0 {
		remaining = 0
	}
	return &Status{
		Current:   e.count,
		Limit:     l.config.MaxRequests,
		Remaining: remaining,
		ResetAt:   e.resetAt,
	}
}

// Configure merges the non-nil fields of the update into the live
// configuration. Existing windows keep the reset time they were opened
// with; new windows use the updated values. If CleanupInterval is present
// the janitor is restarted with the new interval.
func (l *Limiter) Configure(u Update) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if u.Window != nil {
		l.config.Window = *u.Window
	}
	if u.MaxRequests != nil {
		l.config.MaxRequests = *u.MaxRequests
	}
	if u.MessageTemplate != nil {
		l.config.MessageTemplate = *u.MessageTemplate
	}
	if u.SkipInDevelopment != nil {
		l.config.SkipInDevelopment = *u.SkipInDevelopment
	}
	if u.KeyGenerator != nil {
		l.config.KeyGenerator = u.KeyGenerator
	}
	if u.CleanupInterval != nil {
		l.config.CleanupInterval = *u.CleanupInterval
		l.stopJanitorLocked()
		if !l.closed {
			l.startJanitorLocked()
		}
	}
	l.config = applyDefaults(l.config)
}

// Reset drops every tracked entry. The configuration is untouched.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[string]*entry)
	l.syncTrackedKeysLocked()
}

// Close stops the janitor and drops every tracked entry. It is safe to
// call multiple times.
func (l *Limiter) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.stopJanitorLocked()
	l.entries = make(map[string]*entry)
	l.syncTrackedKeysLocked()
	l.mu.Unlock()

	l.janitorWG.Wait()
}

// startJanitorLocked launches the sweep goroutine. Caller must hold mu.
// No goroutine is started when the interval is zero.
func (l *Limiter) startJanitorLocked() {
	if l.config.CleanupInterval <= 0 {
		return
	}

	stop := make(chan struct{})
	l.janitorStop = stop
	l.janitorWG.Add(1)

	interval := l.config.CleanupInterval
	go func() {
		defer l.janitorWG.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				l.sweep()
			}
		}
	}()
}

// stopJanitorLocked signals the sweep goroutine to exit. Caller must hold
// mu; the goroutine is not waited on here because it may be acquiring mu
// inside sweep.
func (l *Limiter) stopJanitorLocked() {
	if l.janitorStop != nil {
		close(l.janitorStop)
		l.janitorStop = nil
	}
}

// sweep removes every expired entry. Correctness of Check never depends
// on this having run.
func (l *Limiter) sweep() {
	now := time.Now()
	removed := 0

	l.mu.Lock()
	for key, e := range l.entries {
		if !now.Before(e.resetAt) {
			delete(l.entries, key)
			removed++
		}
	}
	l.syncTrackedKeysLocked()
	l.mu.Unlock()

	if removed > 0 {
		l.logger.Debug("swept expired entries", "removed", removed)
	}
}

// syncTrackedKeysLocked publishes this limiter's key count to the shared
// gauge as a delta, so several limiter instances sum instead of
// overwriting each other. Caller must hold mu.
func (l *Limiter) syncTrackedKeysLocked() {
	n := len(l.entries)
	if n != l.reported {
		trackedKeys.Add(float64(n - l.reported))
		l.reported = n
	}
}

// inDevelopment reports whether the process runs in a development
// environment.
func inDevelopment() bool {
	return strings.EqualFold(os.Getenv(envVar), "development")
}
