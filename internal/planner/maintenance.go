package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/balkashynov/ceoplan/internal/migrate"
	"github.com/balkashynov/ceoplan/internal/models"
)

// MigrateReport summarizes an eager migration pass
type MigrateReport struct {
	Scanned    int
	Migrated   []string
	Unreadable []string
}

// MigrateAll upgrades every stored record to the current schema.
// Unreadable records are reported and left untouched.
func (s *Service) MigrateAll(ctx context.Context) (MigrateReport, error) {
	var report MigrateReport

	keys, err := s.store.Keys(ctx, "")
	if err != nil {
		return report, fmt.Errorf("failed to list keys: %w", err)
	}

	for _, key := range keys {
		raw, ok, err := s.getRaw(ctx, key)
		if err != nil {
			return report, err
		}
		if !ok {
			continue
		}

		var (
			value any
			res   migrate.Result
		)
		switch {
		case strings.HasPrefix(key, DayPrefix):
			value, res = migrate.DecodeDailyPlan(key, raw)
		case strings.HasPrefix(key, WeekPrefix):
			value, res = migrate.DecodeWeekPlan(key, raw)
		case strings.HasPrefix(key, HabitPrefix):
			value, res = migrate.DecodeHabitCompletion(key, raw)
		case key == GameStateKey:
			value, res = migrate.DecodeGameState(raw)
		default:
			continue
		}

		report.Scanned++
		switch res {
		case migrate.Absent:
			report.Unreadable = append(report.Unreadable, key)
		case migrate.Migrated:
			if err := s.putJSON(ctx, key, value); err != nil {
				return report, err
			}
			report.Migrated = append(report.Migrated, key)
		}
	}
	return report, nil
}

// Export returns every stored record keyed by its storage key. Values that
// are not valid JSON are exported as strings.
func (s *Service) Export(ctx context.Context) (map[string]json.RawMessage, error) {
	keys, err := s.store.Keys(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	out := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		raw, ok, err := s.getRaw(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if !json.Valid(raw) {
			if raw, err = json.Marshal(string(raw)); err != nil {
				return nil, err
			}
		}
		out[key] = raw
	}
	return out, nil
}

// Match ranks how a task text matched a search query
type Match int

const (
	MatchExact Match = iota
	MatchPrefix
	MatchSuffix
	MatchContains
)

// TaskHit is a task found by SearchTasks
type TaskHit struct {
	Date  string
	Index int // 1-based position in that day's plan
	Task  models.Task
	Match Match
}

// SearchTasks finds tasks across all stored days. Results are ordered by
// match quality (exact, prefix, suffix, substring), then newest day first.
// Matching is case insensitive.
func (s *Service) SearchTasks(ctx context.Context, query string) ([]TaskHit, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, ErrEmptyText
	}

	keys, err := s.store.Keys(ctx, DayPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	var hits []TaskHit
	for _, key := range keys {
		date := DateFromKey(key)
		plan, err := s.LoadDailyPlan(ctx, date)
		if err != nil {
			return nil, err
		}
		for i, task := range plan.Tasks {
			if m, ok := matchText(strings.ToLower(task.Text), q); ok {
				hits = append(hits, TaskHit{Date: date, Index: i + 1, Task: task, Match: m})
			}
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Match != hits[j].Match {
			return hits[i].Match < hits[j].Match
		}
		return hits[i].Date > hits[j].Date
	})
	return hits, nil
}

func matchText(text, q string) (Match, bool) {
	switch {
	case text == q:
		return MatchExact, true
	case strings.HasPrefix(text, q):
		return MatchPrefix, true
	case strings.HasSuffix(text, q):
		return MatchSuffix, true
	case strings.Contains(text, q):
		return MatchContains, true
	default:
		return 0, false
	}
}
