// Package planner persists daily plans, week plans, habit completions and
// the game state in a db.Store, upgrading legacy records as they are read.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/ceoplan/internal/db"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrGoalNotFound   = errors.New("goal not found")
	ErrHabitNotFound  = errors.New("habit not found")
	ErrRewardNotFound = errors.New("reward not found")
	ErrEmptyText      = errors.New("text cannot be empty")
)

// Service reads and writes planner records
type Service struct {
	store db.Store
	// Now is the clock used for dates and timestamps
	Now func() time.Time
}

// New returns a service backed by store
func New(store db.Store) *Service {
	return &Service{store: store, Now: time.Now}
}

// Store exposes the underlying key-value store
func (s *Service) Store() db.Store {
	return s.store
}

// Today is the current local date
func (s *Service) Today() string {
	return DateString(s.Now())
}

func (s *Service) timestamp() string {
	return s.Now().UTC().Format(time.RFC3339Nano)
}

func (s *Service) getRaw(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(value), ok, nil
}

func (s *Service) putJSON(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// resolveIndex finds an item by 1-based position or by a unique id prefix
func resolveIndex(ref string, n int, id func(i int) string, notFound error) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, notFound
	}
	if pos, err := strconv.Atoi(ref); err == nil {
		if pos < 1 || pos > n {
			return -1, fmt.Errorf("%w: #%d", notFound, pos)
		}
		return pos - 1, nil
	}

	match := -1
	for i := 0; i < n; i++ {
		if id(i) == ref {
			return i, nil
		}
		if strings.HasPrefix(id(i), ref) {
			if match >= 0 {
				return -1, fmt.Errorf("id prefix %q is ambiguous", ref)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %s", notFound, ref)
	}
	return match, nil
}
