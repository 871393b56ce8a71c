// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends
const (
	StoreSQLite = "sqlite"
	StoreBolt   = "bolt"
	StoreMemory = "memory"
)

// Config holds everything the CLI needs before opening a store
type Config struct {
	Home         string        `env:"CEOPLAN_HOME"`
	Store        string        `env:"CEOPLAN_STORE" envDefault:"sqlite"`
	SaveDebounce time.Duration `env:"CEOPLAN_SAVE_DEBOUNCE" envDefault:"300ms"`
	LogLevel     string        `env:"CEOPLAN_LOG_LEVEL" envDefault:"warn"`
	SQLLog       bool          `env:"CEOPLAN_SQL_LOG" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and fills in derived defaults
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize validates the backend and resolves the data directory
func (c *Config) Normalize() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case StoreSQLite, StoreBolt, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (use sqlite, bolt or memory)", c.Store)
	}
	if c.SaveDebounce < 0 {
		return fmt.Errorf("save debounce must not be negative, got %s", c.SaveDebounce)
	}

	if strings.TrimSpace(c.Home) == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		c.Home = filepath.Join(homeDir, ".ceoplan")
	}
	return nil
}

// SQLitePath is the database file used by the sqlite backend
func (c Config) SQLitePath() string {
	return filepath.Join(c.Home, "ceoplan.db")
}

// BoltPath is the database file used by the bolt backend
func (c Config) BoltPath() string {
	return filepath.Join(c.Home, "ceoplan.bolt")
}
