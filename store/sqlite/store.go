// Package sqlite implements spool.Store on SQLite through database/sql
// and the pure-Go modernc.org/sqlite driver. Each queue's snapshot is one
// row in the spool_snapshots table, upserted whole on every save.
//
// Usage:
//
//	db, err := sql.Open("sqlite", "file:spool.db")
//	s := sqlitestore.New(db)
//	if err := s.Migrate(ctx); err != nil { ... }
//	q, _ := spool.New(cfg, spool.WithStore(s))
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // register the "sqlite" driver

	"github.com/xraph/spool"
)

// Compile-time interface check.
var _ spool.Store = (*Store)(nil)

// Store implements spool.Store backed by a SQLite database. The caller
// owns the *sql.DB lifecycle; Close never closes it.
type Store struct {
	db *sql.DB
}

// New creates a SQLite-backed snapshot store. Call Migrate before first
// use to create the snapshot table.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the snapshot table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS spool_snapshots (
	queue      TEXT PRIMARY KEY,
	items      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("spool/sqlite: migrate: %w", err)
	}
	return nil
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Load reads the snapshot row for the named queue. A missing row is an
// empty queue.
func (s *Store) Load(ctx context.Context, queue string) ([]*spool.Item, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT items FROM spool_snapshots WHERE queue = ?`, queue,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("spool/sqlite: read snapshot: %w", err)
	}

	var items []*spool.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("spool/sqlite: decode snapshot: %w", err)
	}
	return items, nil
}

// Save upserts the snapshot row for the named queue.
func (s *Store) Save(ctx context.Context, queue string, items []*spool.Item) error {
	if items == nil {
		items = []*spool.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("spool/sqlite: encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO spool_snapshots (queue, items, updated_at) VALUES (?, ?, ?)
ON CONFLICT(queue) DO UPDATE SET items = excluded.items, updated_at = excluded.updated_at`,
		queue, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("spool/sqlite: write snapshot: %w", err)
	}
	return nil
}

// Close is a no-op; the caller owns the database handle.
func (s *Store) Close() error { return nil }
