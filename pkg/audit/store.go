package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// defaultQueryLimit caps Query results when the filter sets no limit.
const defaultQueryLimit = 100

// StoreConfig configures the SQLite store.
type StoreConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is how long a write waits on a locked database.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

// Store is the SQLite-backed audit event store.
type Store struct {
	db     *sql.DB
	insert *sql.Stmt
	logger *slog.Logger
}

// NewStore opens (creating if necessary) the audit database and prepares
// the schema. WAL mode is enabled for concurrent readers.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("audit: store path must not be empty")
	}
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", cfg.Path, busy.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("audit: failed to open database %q: %w", cfg.Path, err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS audit_events (
    id         TEXT PRIMARY KEY,
    kind       TEXT NOT NULL,
    key        TEXT NOT NULL,
    detail     TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_events_created_at ON audit_events(created_at);
CREATE INDEX IF NOT EXISTS idx_audit_events_kind ON audit_events(kind);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: failed to initialize schema: %w", err)
	}

	insert, err := db.Prepare(
		"INSERT INTO audit_events (id, kind, key, detail, created_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: failed to prepare insert: %w", err)
	}

	return &Store{
		db:     db,
		insert: insert,
		logger: slog.Default().With("component", "audit.store"),
	}, nil
}

// Record writes one event.
func (s *Store) Record(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	if _, err := s.insert.ExecContext(ctx, ev.ID, ev.Kind, ev.Key, ev.Detail, ev.At.UTC()); err != nil {
		return fmt.Errorf("audit: failed to record event: %w", err)
	}
	return nil
}

// Query returns events matching the filter, newest first.
func (s *Store) Query(ctx context.Context, f Filter) ([]Event, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	query := "SELECT id, kind, key, detail, created_at FROM audit_events WHERE created_at >= ?"
	args := []any{f.Since.UTC()}
	if f.Kind != "" {
		query += " AND kind = ?"
		args = append(args, f.Kind)
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("audit: query failed: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.Kind, &ev.Key, &ev.Detail, &ev.At); err != nil {
			return nil, fmt.Errorf("audit: scan failed: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Prune deletes events recorded before the cutoff and returns how many
// rows were removed.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM audit_events WHERE created_at < ?", before.UTC())
	if err != nil {
		return 0, fmt.Errorf("audit: prune failed: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("pruned audit events", "deleted", deleted)
	}
	return deleted, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.insert.Close()
	return s.db.Close()
}
