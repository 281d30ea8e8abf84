// Package bunstore implements spool.Store on PostgreSQL through the Bun
// ORM. Each queue's snapshot is one row in the spool_snapshots table,
// upserted whole on every save.
//
// Usage:
//
//	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
//	db := bun.NewDB(sqldb, pgdialect.New())
//	s := bunstore.New(db)
//	if err := s.Migrate(ctx); err != nil { ... }
//	q, _ := spool.New(cfg, spool.WithStore(s))
package bunstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/xraph/spool"
)

// Compile-time interface check.
var _ spool.Store = (*Store)(nil)

// snapshotModel is the Bun model for one queue snapshot row.
type snapshotModel struct {
	bun.BaseModel `bun:"table:spool_snapshots"`

	Queue     string    `bun:"queue,pk"`
	Items     []byte    `bun:"items,notnull,type:jsonb"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// Store implements spool.Store backed by PostgreSQL. The caller owns the
// *bun.DB lifecycle; Close never closes it.
type Store struct {
	db *bun.DB
}

// New creates a Bun-backed snapshot store. Call Migrate before first use
// to create the snapshot table.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying Bun handle.
func (s *Store) DB() *bun.DB { return s.db }

// Migrate creates the snapshot table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*snapshotModel)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("spool/bun: migrate: %w", err)
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
	m := new(snapshotModel)
	err := s.db.NewSelect().
		Model(m).
		Where("queue = ?", queue).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("spool/bun: read snapshot: %w", err)
	}

	var items []*spool.Item
	if err := json.Unmarshal(m.Items, &items); err != nil {
		return nil, fmt.Errorf("spool/bun: decode snapshot: %w", err)
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
		return fmt.Errorf("spool/bun: encode snapshot: %w", err)
	}

	m := &snapshotModel{
		Queue:     queue,
		Items:     data,
		UpdatedAt: time.Now().UTC(),
	}
	_, err = s.db.NewInsert().
		Model(m).
		On("CONFLICT (queue) DO UPDATE").
		Set("items = EXCLUDED.items").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("spool/bun: write snapshot: %w", err)
	}
	return nil
}

// Close is a no-op; the caller owns the database handle.
func (s *Store) Close() error { return nil }
