package spool

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fileStore persists one JSON snapshot file per queue under a directory.
// The snapshot is a JSON array of payload objects, each carrying the item's
// retry counter in the reserved "_retries" field.
type fileStore struct {
	dir string
}

// NewFileStore returns a Store writing <queue>.json snapshot files under
// dir. The directory is created if absent.
func NewFileStore(dir string) (Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty snapshot directory", ErrInvalidConfig)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("spool: create snapshot directory: %w", err)
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(queue string) string {
	return filepath.Join(s.dir, queue+".json")
}

// Load reads the snapshot for the named queue. A missing file is an empty
// queue, not an error.
func (s *fileStore) Load(_ context.Context, queue string) ([]*Item, error) {
	data, err := os.ReadFile(s.path(queue))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("spool: read snapshot: %w", err)
	}

	var items []*Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("spool: decode snapshot: %w", err)
	}
	return items, nil
}

// Save overwrites the snapshot file for the named queue.
func (s *fileStore) Save(_ context.Context, queue string, items []*Item) error {
	if items == nil {
		items = []*Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("spool: encode snapshot: %w", err)
	}
	if err := os.WriteFile(s.path(queue), data, 0o644); err != nil {
		return fmt.Errorf("spool: write snapshot: %w", err)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *fileStore) Close() error { return nil }
