package spool

import "context"

// Store persists queue snapshots. The built-in file store (NewFileStore)
// is the default; the store/ subpackages provide memory, Redis, SQLite,
// and Postgres implementations behind the same interface.
//
// A Store never retains references to the items it is handed; it reads
// and writes snapshots on demand only.
type Store interface {
	// Load returns the persisted snapshot for the named queue, oldest
	// item first. A missing snapshot yields an empty slice and no error;
	// an unreadable or malformed one yields an error, which the queue
	// degrades to an empty buffer.
	Load(ctx context.Context, queue string) ([]*Item, error)

	// Save overwrites the named queue's snapshot with the given items.
	// Last writer wins; there is no cross-process locking.
	Save(ctx context.Context, queue string, items []*Item) error

	// Close releases any resources held by the store.
	Close() error
}
