// Package audit records protection decisions - rate limit rejections,
// sanitizer rejections, redaction failures - in a local SQLite trail.
//
// # Overview
//
// The package has three pieces:
//
//   - Store: the SQLite-backed event store
//   - Recorder: an async, bounded front for the store that never blocks
//     the request path (events are dropped, and counted, when the buffer
//     is full); Flush forces a drain, Close drains and stops
//   - Scheduler: cron-driven retention pruning
//
// The trail is an operational log, not component state: the rate limiter
// and sanitizer remain fully in-memory and correct without it.
//
//	store, _ := audit.NewStore(audit.StoreConfig{Path: "data/audit.db"})
//	rec := audit.NewRecorder(store, 1000)
//	defer rec.Close()
//
//	rec.RateLimited("tenant-42", 30)
package audit
