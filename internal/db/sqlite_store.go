package db

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/ceoplan/internal/models"
)

// SQLiteStore keeps entries in a single gorm-managed table
type SQLiteStore struct {
	db     *gorm.DB
	closed atomic.Bool
}

// OpenSQLite opens the database file and runs migrations
func OpenSQLite(path string, logSQL bool) (*SQLiteStore, error) {
	logMode := logger.Silent // Quiet by default
	if logSQL {
		logMode = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.runMigrations(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// runMigrations creates/updates the database schema
func (s *SQLiteStore) runMigrations() error {
	return s.db.AutoMigrate(&models.Entry{})
}

func (s *SQLiteStore) conn(ctx context.Context) (*gorm.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil || s.closed.Load() {
		return nil, ErrStoreClosed
	}
	return s.db.WithContext(ctx), nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return "", false, err
	}

	var entry models.Entry
	if err := db.Where(keyIs(key)).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	entry := models.Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Where(keyIs(key)).Delete(&models.Entry{}).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var keys []string
	query := db.Model(&models.Entry{}).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}})
	if prefix != "" {
		// substr avoids LIKE wildcards inside the prefix
		query = query.Where(`substr("key", 1, ?) = ?`, len(prefix), prefix)
	}
	if err := query.Pluck("key", &keys).Error; err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

// keyIs builds a quoted equality on the key column
func keyIs(key string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil || s.closed.Swap(true) {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
