package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"rampart-hq/rampart/pkg/identifier"
)

// writeTimeout bounds each background insert.
const writeTimeout = 5 * time.Second

// item is one unit of work for the writer. A nil flush means the event
// is to be stored; a non-nil flush is a drain marker the writer closes
// once every item enqueued before it has been written.
type item struct {
	event Event
	flush chan struct{}
}

// Recorder is an asynchronous front for the Store. Record never blocks:
// when the buffer is full the event is dropped and counted. One writer
// goroutine drains the buffer into the store.
type Recorder struct {
	store   *Store
	mu      sync.Mutex
	items   chan item
	closed  bool
	dropped atomic.Int64
	wg      sync.WaitGroup
	logger  *slog.Logger
}

// NewRecorder creates a recorder over the store with the given buffer
// size (minimum 1) and starts the writer goroutine.
func NewRecorder(store *Store, bufferSize int) *Recorder {
	if bufferSize < 1 {
		bufferSize = 1
	}
	r := &Recorder{
		store:  store,
		items:  make(chan item, bufferSize),
		logger: slog.Default().With("component", "audit.recorder"),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

// run drains the item channel into the store.
func (r *Recorder) run() {
	defer r.wg.Done()
	for it := range r.items {
		if it.flush != nil {
			close(it.flush)
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := r.store.Record(ctx, it.event); err != nil {
			r.logger.Warn("failed to record audit event", "kind", it.event.Kind, "error", err)
		}
		cancel()
	}
}

// Record enqueues one event, assigning an ID and timestamp when absent.
// Full buffers drop the event rather than blocking the request path, and
// a closed recorder drops everything.
func (r *Recorder) Record(ev Event) {
	if ev.ID == "" {
		ev.ID = identifier.GenerateUUID()
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	// The send and the close in Close are serialized on mu, so the
	// channel cannot be closed between the closed check and the send.
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		r.dropped.Add(1)
		return
	}
	select {
	case r.items <- item{event: ev}:
	default:
		r.dropped.Add(1)
	}
}

// RateLimited records a rejected rate limit check.
func (r *Recorder) RateLimited(key string, waitSeconds int) {
	r.Record(Event{
		Kind:   KindRateLimited,
		Key:    key,
		Detail: fmt.Sprintf("retry in %ds", waitSeconds),
	})
}

// ValidationRejected records input rejected by the sanitizer.
func (r *Recorder) ValidationRejected(op, reason string) {
	r.Record(Event{
		Kind:   KindValidationRejected,
		Key:    op,
		Detail: reason,
	})
}

// RedactionFailed records a redaction that degraded to the sentinel.
func (r *Recorder) RedactionFailed(reason string) {
	r.Record(Event{
		Kind:   KindRedactionFailed,
		Detail: reason,
	})
}

// Dropped returns how many events were discarded because the buffer was
// full.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Flush blocks until every event enqueued before the call has been
// written to the store. The recorder keeps accepting events. Flushing a
// closed recorder returns immediately.
func (r *Recorder) Flush() {
	ack := make(chan struct{})

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	// Blocking send: unlike events, a drain marker must not be dropped.
	// The writer drains without taking mu, so this always completes.
	r.items <- item{flush: ack}
	r.mu.Unlock()

	<-ack
}

// Close stops accepting events, waits for the buffer to drain, and
// returns. The store is not closed; the caller owns it. Safe to call
// multiple times.
func (r *Recorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.items)
	}
	r.mu.Unlock()
	r.wg.Wait()
}
