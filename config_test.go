package spool_test

import (
	"errors"
	"testing"
	"time"

	"github.com/xraph/spool"
)

func TestDefaultConfig(t *testing.T) {
	cfg := spool.DefaultConfig()

	if cfg.MaxRetries != spool.DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", cfg.MaxRetries, spool.DefaultMaxRetries)
	}
	if cfg.Dir == "" {
		t.Error("Dir should default to a snapshot directory")
	}
	if cfg.MaxSize != 0 {
		t.Errorf("MaxSize = %d, want 0 (unbounded)", cfg.MaxSize)
	}
	if cfg.PersistInterval != 0 {
		t.Errorf("PersistInterval = %v, want 0 (disabled)", cfg.PersistInterval)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     spool.Config
		wantErr error
	}{
		{"valid", spool.Config{Name: "q"}, nil},
		{"empty name", spool.Config{}, spool.ErrNoQueueName},
		{"negative interval", spool.Config{Name: "q", PersistInterval: -time.Second}, spool.ErrInvalidConfig},
		{"negative max size", spool.Config{Name: "q", MaxSize: -1}, spool.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SPOOL_NAME", "orders")
	t.Setenv("SPOOL_DIR", "/tmp/spool-test")
	t.Setenv("SPOOL_PERSIST_INTERVAL", "30s")
	t.Setenv("SPOOL_MAX_SIZE", "100")
	t.Setenv("SPOOL_MAX_RETRIES", "3")

	cfg, err := spool.ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() error: %v", err)
	}

	if cfg.Name != "orders" {
		t.Errorf("Name = %q, want %q", cfg.Name, "orders")
	}
	if cfg.Dir != "/tmp/spool-test" {
		t.Errorf("Dir = %q, want %q", cfg.Dir, "/tmp/spool-test")
	}
	if cfg.PersistInterval != 30*time.Second {
		t.Errorf("PersistInterval = %v, want 30s", cfg.PersistInterval)
	}
	if cfg.MaxSize != 100 {
		t.Errorf("MaxSize = %d, want 100", cfg.MaxSize)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
}

func TestConfigFromEnv_RequiresName(t *testing.T) {
	t.Setenv("SPOOL_NAME", "")

	if _, err := spool.ConfigFromEnv(); !errors.Is(err, spool.ErrNoQueueName) {
		t.Errorf("ConfigFromEnv() = %v, want ErrNoQueueName", err)
	}
}
