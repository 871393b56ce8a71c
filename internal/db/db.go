package db

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/balkashynov/ceoplan/internal/config"
	"github.com/balkashynov/ceoplan/internal/logger"
)

// ErrStoreClosed is returned by every operation on a closed store
var ErrStoreClosed = errors.New("store is closed")

// Store is a flat string key-value space. Values are JSON documents owned
// by the caller; a missing key is reported with ok=false, not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Keys lists stored keys with the given prefix in ascending order
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Open sets up the configured backend, creating the data directory first
func Open(cfg config.Config) (Store, error) {
	if cfg.Store == config.StoreMemory {
		logger.Debug("using in-memory store")
		return NewMemoryStore(), nil
	}

	// Ensure the directory exists
	if err := os.MkdirAll(cfg.Home, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ceoplan directory: %w", err)
	}

	switch cfg.Store {
	case config.StoreBolt:
		logger.Debug("opening bolt store at %s", cfg.BoltPath())
		return OpenBolt(cfg.BoltPath())
	case config.StoreSQLite, "":
		logger.Debug("opening sqlite store at %s", cfg.SQLitePath())
		return OpenSQLite(cfg.SQLitePath(), cfg.SQLLog)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
