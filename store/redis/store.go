// Package redis implements spool.Store on Redis. The whole snapshot is a
// single JSON value per queue, so writes are one SET and reads one GET.
//
// Usage:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	s := redisstore.New(client)
//	q, _ := spool.New(cfg, spool.WithStore(s))
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/xraph/spool"
)

// Compile-time interface check.
var _ spool.Store = (*Store)(nil)

// keyPrefix namespaces snapshot keys: spool:snapshot:<queue>.
const keyPrefix = "spool:snapshot:"

// Store implements spool.Store backed by Redis.
type Store struct {
	client redis.Cmdable
	logger *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Redis-backed snapshot store. The caller owns the Redis
// client lifecycle; Close never closes it.
func New(client redis.Cmdable, opts ...Option) *Store {
	s := &Store{client: client, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Client returns the underlying Redis client.
func (s *Store) Client() redis.Cmdable { return s.client }

// Ping verifies the Redis connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Load reads the snapshot for the named queue. A missing key is an empty
// queue.
func (s *Store) Load(ctx context.Context, queue string) ([]*spool.Item, error) {
	data, err := s.client.Get(ctx, keyPrefix+queue).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("spool/redis: read snapshot: %w", err)
	}

	var items []*spool.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("spool/redis: decode snapshot: %w", err)
	}
	return items, nil
}

// Save overwrites the snapshot for the named queue. Snapshots carry no
// TTL; drained queues store an empty array rather than deleting the key.
func (s *Store) Save(ctx context.Context, queue string, items []*spool.Item) error {
	if items == nil {
		items = []*spool.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("spool/redis: encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+queue, data, 0).Err(); err != nil {
		return fmt.Errorf("spool/redis: write snapshot: %w", err)
	}
	return nil
}

// Close is a no-op; the caller owns the client.
func (s *Store) Close() error { return nil }
