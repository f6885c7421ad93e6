package track

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrCaptureClosed is returned by operations on a closed capture store.
var ErrCaptureClosed = errors.New("capture store is closed")

// SQLiteCapture is a Provider that journals sanitized events into SQLite for
// local inspection and debugging. Only sanitized properties ever reach it, so
// the journal inherits the taxonomy's privacy guarantees.
type SQLiteCapture struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// Compile-time interface check.
var _ Provider = (*SQLiteCapture)(nil)

// CapturedEvent is one journaled event.
type CapturedEvent struct {
	ID         string
	Name       string
	Properties map[string]any
	TrackedAt  time.Time
}

// NewSQLiteCapture opens a capture journal at path.
// Use ":memory:" for testing.
func NewSQLiteCapture(path string) (*SQLiteCapture, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS captured_events (
			id TEXT PRIMARY KEY,
			event_name TEXT NOT NULL,
			properties TEXT NOT NULL,
			tracked_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_captured_events_name
		ON captured_events(event_name)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteCapture{db: db}, nil
}

// Track implements Provider.
func (c *SQLiteCapture) Track(ctx context.Context, eventName string, properties map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCaptureClosed
	}

	props, err := json.Marshal(properties)
	if err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO captured_events (id, event_name, properties, tracked_at)
		VALUES (?, ?, ?, ?)
	`, uuid.NewString(), eventName, string(props), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("capture event: %w", err)
	}
	return nil
}

// List returns the most recent events, newest first.
func (c *SQLiteCapture) List(ctx context.Context, limit int) ([]CapturedEvent, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrCaptureClosed
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT id, event_name, properties, tracked_at
		FROM captured_events
		ORDER BY tracked_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []CapturedEvent
	for rows.Next() {
		var evt CapturedEvent
		var props, trackedAt string
		if err := rows.Scan(&evt.ID, &evt.Name, &props, &trackedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(props), &evt.Properties); err != nil {
			return nil, fmt.Errorf("decode properties: %w", err)
		}
		if evt.TrackedAt, err = time.Parse(time.RFC3339Nano, trackedAt); err != nil {
			return nil, fmt.Errorf("parse timestamp: %w", err)
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}

// Count returns the number of journaled events.
func (c *SQLiteCapture) Count(ctx context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return 0, ErrCaptureClosed
	}

	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM captured_events`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// CountByName returns per-event counts.
func (c *SQLiteCapture) CountByName(ctx context.Context) (map[string]int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrCaptureClosed
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT event_name, COUNT(*)
		FROM captured_events
		GROUP BY event_name
	`)
	if err != nil {
		return nil, fmt.Errorf("count by name: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[name] = n
	}
	return out, rows.Err()
}

// Close releases the underlying database. Further calls return
// ErrCaptureClosed.
func (c *SQLiteCapture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.db.Close()
}
