// Package ratelimit provides a fixed-window, per-key request limiter.
//
// # Overview
//
// The limiter tracks one counter per key inside a fixed time window. The
// first request for a key opens a window; each further request increments
// the counter. Once the counter passes the configured maximum the request
// is rejected with a LimitExceededError describing how long the caller
// should wait. When the window expires the next request replaces the
// counter rather than carrying anything over.
//
//	limiter := ratelimit.New(ratelimit.Config{
//	    Window:      time.Minute,
//	    MaxRequests: 100,
//	})
//	defer limiter.Close()
//
//	if err := limiter.Check("tenant-42", nil); err != nil {
//	    var lee *ratelimit.LimitExceededError
//	    if errors.As(err, &lee) {
//	        // Tell the caller to retry after lee.WaitSeconds.
//	    }
//	}
//
// # Counting Semantics
//
// The counter is incremented before the threshold comparison and is never
// rolled back on rejection. Repeated rejected calls inside a window keep
// counting, so a caller cannot probe the boundary for free.
//
// # Cleanup
//
// Expired entries are detected lazily inside Check, so correctness never
// depends on the background sweep. The sweep is memory hygiene only: a
// janitor goroutine removes expired entries every CleanupInterval and is
// skipped entirely when the interval is zero. Close stops the janitor and
// is safe to call more than once.
//
// # Thread Safety
//
// All operations are safe for concurrent use. The entry map and the
// configuration are guarded by a single mutex; Check performs no I/O and
// returns immediately.
package ratelimit
