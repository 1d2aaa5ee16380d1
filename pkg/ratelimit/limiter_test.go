package ratelimit

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// ============================================================================
// Window Counting Tests
// ============================================================================

func TestLimiter_AllowsUpToMax(t *testing.T) {
	l := New(Config{Window: time.Minute, MaxRequests: 3})
	defer l.Close()

	for i := 1; i <= 3; i++ {
		if err := l.Check("k", nil); err != nil {
			t.Fatalf("call %d: expected success, got %v", i, err)
		}
	}

	err := l.Check("k", nil)
	if err == nil {
		t.Fatal("expected 4th call to be rejected")
	}

	var lee *LimitExceededError
	if !errors.As(err, &lee) {
		t.Fatalf("expected *LimitExceededError, got %T", err)
	}
	if lee.Key != "k" {
		t.Errorf("expected key %q, got %q", "k", lee.Key)
	}
	if lee.Limit != 3 {
		t.Errorf("expected limit 3, got %d", lee.Limit)
	}
	if lee.WaitSeconds < 59 || lee.WaitSeconds > 60 {
		t.Errorf("expected wait near 60s, got %d", lee.WaitSeconds)
	}
}

func TestLimiter_WindowRollsOver(t *testing.T) {
	l := New(Config{Window: 50 * time.Millisecond, MaxRequests: 1})
	defer l.Close()

	if err := l.Check("k", nil); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if err := l.Check("k", nil); err == nil {
		t.Fatal("second call inside window should be rejected")
	}

	time.Sleep(60 * time.Millisecond)

	// Window expired: the entry is replaced, not carried over.
	if err := l.Check("k", nil); err != nil {
		t.Fatalf("call after rollover: %v", err)
	}
	st := l.Status("k")
	if st == nil {
		t.Fatal("expected status after rollover")
	}
	if st.Current != 1 {
		t.Errorf("expected fresh window count 1, got %d", st.Current)
	}
}

func TestLimiter_RejectedCallsStillCount(t *testing.T) {
	l := New(Config{Window: time.Minute, MaxRequests: 2})
	defer l.Close()

	l.Check("k", nil)
	l.Check("k", nil)
	l.Check("k", nil) // rejected, but counted
	l.Check("k", nil) // rejected, but counted

	st := l.Status("k")
	if st == nil {
		t.Fatal("expected status")
	}
	if st.Current != 4 {
		t.Errorf("expected count 4 after two rejections, got %d", st.Current)
	}
	if st.Remaining != 0 {
		t.Errorf("expected remaining 0, got %d", st.Remaining)
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := New(Config{Window: time.Minute, MaxRequests: 1})
	defer l.Close()

	if err := l.Check("a", nil); err != nil {
		t.Fatalf("key a: %v", err)
	}
	if err := l.Check("b", nil); err != nil {
		t.Fatalf("key b should have its own window: %v", err)
	}
	if err := l.Check("a", nil); err == nil {
		t.Fatal("key a should be exhausted")
	}
}

// ============================================================================
// Status Tests
// ============================================================================

func TestLimiter_StatusUnknownKey(t *testing.T) {
	l := New(Config{Window: time.Minute, MaxRequests: 5})
	defer l.Close()

	if st := l.Status("missing"); st != nil {
		t.Errorf("expected nil status for unknown key, got %+v", st)
	}
}

func TestLimiter_StatusDoesNotMutate(t *testing.T) {
	l := New(Config{Window: time.Minute, MaxRequests: 5})
	defer l.Close()

	l.Check("k", nil)
	for i := 0; i < 10; i++ {
		l.Status("k")
	}

	st := l.Status("k")
	if st.Current != 1 {
		t.Errorf("Status mutated the counter: got %d", st.Current)
	}
	if st.Remaining != 4 {
		t.Errorf("expected remaining 4, got %d", st.Remaining)
	}
}

func TestLimiter_StatusExpiredEntry(t *testing.T) {
	l := New(Config{Window: 20 * time.Millisecond, MaxRequests: 5})
	defer l.Close()

	l.Check("k", nil)
	time.Sleep(30 * time.Millisecond)

	// An expired window reports as absent, matching what Check would do.
	if st := l.Status("k"); st != nil {
		t.Errorf("expected nil status for expired entry, got %+v", st)
	}
}

// ============================================================================
// Message and Key Generation Tests
// ============================================================================

func TestLimiter_MessageTemplate(t *testing.T) {
	l := New(Config{
		Window:          30 * time.Second,
		MaxRequests:     1,
		MessageTemplate: "slow down, wait {waitTime}s",
	})
	defer l.Close()

	l.Check("k", nil)
	err := l.Check("k", nil)
	if err == nil {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(err.Error(), "slow down, wait 30s") {
		t.Errorf("template not rendered: %q", err.Error())
	}
}

func TestLimiter_KeyGenerator(t *testing.T) {
	l := New(Config{
		Window:      time.Minute,
		MaxRequests: 1,
		KeyGenerator: func(key string, ctx any) string {
			tenant, _ := ctx.(string)
			return ComposeKey(key, tenant)
		},
	})
	defer l.Close()

	if err := l.Check("op", "tenant-a"); err != nil {
		t.Fatalf("tenant-a: %v", err)
	}
	if err := l.Check("op", "tenant-b"); err != nil {
		t.Fatalf("tenant-b should be a separate bucket: %v", err)
	}
	if err := l.Check("op", "tenant-a"); err == nil {
		t.Fatal("tenant-a should be exhausted")
	}
}

func TestLimiter_SkipInDevelopment(t *testing.T) {
	t.Setenv(envVar, "development")

	l := New(Config{Window: time.Minute, MaxRequests: 1, SkipInDevelopment: true})
	defer l.Close()

	for i := 0; i < 10; i++ {
		if err := l.Check("k", nil); err != nil {
			t.Fatalf("call %d should be skipped in development: %v", i, err)
		}
	}
}

// ============================================================================
// Configure / Reset / Close Tests
// ============================================================================

func TestLimiter_ConfigureMerges(t *testing.T) {
	l := New(Config{Window: time.Minute, MaxRequests: 1})
	defer l.Close()

	max := 3
	l.Configure(Update{MaxRequests: &max})

	for i := 1; i <= 3; i++ {
		if err := l.Check("k", nil); err != nil {
			t.Fatalf("call %d after raise: %v", i, err)
		}
	}
	if err := l.Check("k", nil); err == nil {
		t.Fatal("expected rejection at new limit")
	}
}

func TestLimiter_ConfigureRestartsJanitor(t *testing.T) {
	l := New(Config{Window: 10 * time.Millisecond, MaxRequests: 5})
	defer l.Close()

	l.Check("k", nil)

	interval := 20 * time.Millisecond
	l.Configure(Update{CleanupInterval: &interval})

	time.Sleep(60 * time.Millisecond)

	l.mu.Lock()
	_, present := l.entries["k"]
	l.mu.Unlock()
	if present {
		t.Error("expected janitor to sweep the expired entry")
	}
}

func TestLimiter_ResetClearsEntriesOnly(t *testing.T) {
	l := New(Config{Window: time.Minute, MaxRequests: 2})
	defer l.Close()

	l.Check("k", nil)
	l.Reset()

	if st := l.Status("k"); st != nil {
		t.Error("expected entries cleared after Reset")
	}

	// Config survives: limit is still 2.
	l.Check("k", nil)
	l.Check("k", nil)
	if err := l.Check("k", nil); err == nil {
		t.Error("expected configured limit to survive Reset")
	}
}

func TestLimiter_TrackedKeysSumAcrossInstances(t *testing.T) {
	base := testutil.ToFloat64(trackedKeys)

	a := New(Config{Window: time.Minute, MaxRequests: 5})
	defer a.Close()
	b := New(Config{Window: time.Minute, MaxRequests: 5})
	defer b.Close()

	a.Check("k1", nil)
	a.Check("k2", nil)
	b.Check("k1", nil)

	if got := testutil.ToFloat64(trackedKeys) - base; got != 3 {
		t.Fatalf("expected gauge delta 3 with two limiters, got %v", got)
	}

	// One limiter resetting must not erase the other's contribution.
	a.Reset()
	if got := testutil.ToFloat64(trackedKeys) - base; got != 1 {
		t.Fatalf("expected gauge delta 1 after reset, got %v", got)
	}

	b.Close()
	if got := testutil.ToFloat64(trackedKeys) - base; got != 0 {
		t.Fatalf("expected gauge delta 0 after close, got %v", got)
	}
}

func TestLimiter_CloseIsIdempotent(t *testing.T) {
	l := New(Config{Window: time.Minute, MaxRequests: 1, CleanupInterval: time.Millisecond})

	l.Close()
	l.Close()
	l.Close()
}

// ============================================================================
// Concurrency Tests
// ============================================================================

func TestLimiter_ConcurrentChecks(t *testing.T) {
	const max = 50
	l := New(Config{Window: time.Minute, MaxRequests: max})
	defer l.Close()

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Check("shared", nil); err == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if admitted != max {
		t.Errorf("expected exactly %d admitted, got %d", max, admitted)
	}
}

func TestLimiter_ConcurrentSweepAndCheck(t *testing.T) {
	l := New(Config{
		Window:          time.Millisecond,
		MaxRequests:     5,
		CleanupInterval: time.Millisecond,
	})
	defer l.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Check("k", n)
				l.Status("k")
			}
		}(i)
	}
	wg.Wait()
}
