package spool

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultMaxRetries is the retry ceiling applied when Config.MaxRetries
// is left at zero. An item is attempted once plus this many retries
// before it is dropped.
const DefaultMaxRetries = 5

// Config holds configuration for a Queue.
type Config struct {
	// Name identifies the queue. It names the snapshot (the file store
	// writes <name>.json) and is passed to sinks alongside each payload.
	// Required.
	Name string `env:"SPOOL_NAME"`

	// Dir is the directory the default file store persists snapshots
	// under. Created if absent. Ignored when a custom store is set.
	Dir string `env:"SPOOL_DIR"`

	// PersistInterval is how often the buffer is snapshotted in addition
	// to the save performed on every accepted enqueue. Zero disables the
	// periodic snapshot.
	PersistInterval time.Duration `env:"SPOOL_PERSIST_INTERVAL"`

	// MaxSize bounds the in-memory buffer. Submissions past the bound go
	// to the discard list, never into the buffer. Zero means unbounded.
	MaxSize int `env:"SPOOL_MAX_SIZE"`

	// MaxRetries is how many delivery retries an item gets after its
	// initial attempt. Zero means DefaultMaxRetries; use a negative
	// value to disable retries entirely.
	MaxRetries int `env:"SPOOL_MAX_RETRIES"`
}

// DefaultConfig returns a Config with sensible defaults. The Name field
// must still be set by the caller.
func DefaultConfig() Config {
	return Config{
		Dir:        ".spool",
		MaxRetries: DefaultMaxRetries,
	}
}

// ConfigFromEnv builds a Config from SPOOL_* environment variables on top
// of DefaultConfig.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("spool: parse env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if c.Name == "" {
		return ErrNoQueueName
	}
	if c.PersistInterval < 0 {
		return fmt.Errorf("%w: negative persist interval %v", ErrInvalidConfig, c.PersistInterval)
	}
	if c.MaxSize < 0 {
		return fmt.Errorf("%w: negative max size %d", ErrInvalidConfig, c.MaxSize)
	}
	return nil
}

// retryCeiling resolves the effective retry budget: zero selects the
// default, negative disables retries.
func (c Config) retryCeiling() int {
	if c.MaxRetries == 0 {
		return DefaultMaxRetries
	}
	if c.MaxRetries < 0 {
		return 0
	}
	return c.MaxRetries
}
