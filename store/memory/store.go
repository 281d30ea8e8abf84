// Package memory implements spool.Store with an in-process map. Intended
// for unit testing and development.
package memory

import (
	"context"
	"sync"

	"github.com/xraph/spool"
)

// Compile-time interface check.
var _ spool.Store = (*Store)(nil)

// Store is a fully in-memory snapshot store. Safe for concurrent use.
// Items are deep-copied on both Save and Load so later mutation of a live
// buffer never leaks into a stored snapshot.
type Store struct {
	mu    sync.RWMutex
	snaps map[string][]*spool.Item
	saves int
}

// New returns a new empty Store.
func New() *Store {
	return &Store{snaps: make(map[string][]*spool.Item)}
}

// Load returns the snapshot for the named queue, or an empty slice if none
// was saved.
func (s *Store) Load(_ context.Context, queue string) ([]*spool.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.snaps[queue]), nil
}

// Save overwrites the snapshot for the named queue.
func (s *Store) Save(_ context.Context, queue string, items []*spool.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[queue] = cloneItems(items)
	s.saves++
	return nil
}

// Close is a no-op for the memory store.
func (s *Store) Close() error { return nil }

// SaveCount returns how many times Save has been called, for asserting on
// persistence cadence in tests.
func (s *Store) SaveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func cloneItems(items []*spool.Item) []*spool.Item {
	out := make([]*spool.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
