package planner

import (
	"context"
	"strings"

	"github.com/balkashynov/ceoplan/internal/logger"
	"github.com/balkashynov/ceoplan/internal/migrate"
	"github.com/balkashynov/ceoplan/internal/models"
)

// LoadHabitCompletions returns the completed habit ids for date
func (s *Service) LoadHabitCompletions(ctx context.Context, date string) (models.HabitCompletion, error) {
	key := HabitKey(date)
	empty := models.HabitCompletion{DateKey: key, Completed: []string{}}

	raw, ok, err := s.getRaw(ctx, key)
	if err != nil || !ok {
		return empty, err
	}
	hc, res := migrate.DecodeHabitCompletion(key, raw)
	if res == migrate.Absent {
		logger.Debug("discarding unreadable record %s", key)
		return empty, nil
	}
	hc.DateKey = key
	return hc, nil
}

// SetHabitCompleted marks a habit done or not done on date
func (s *Service) SetHabitCompleted(ctx context.Context, date, habitID string, done bool) (models.HabitCompletion, error) {
	hc, err := s.LoadHabitCompletions(ctx, date)
	if err != nil {
		return hc, err
	}
	if hc.Has(habitID) == done {
		return hc, nil
	}

	if done {
		hc.Completed = append(hc.Completed, habitID)
	} else {
		kept := make([]string, 0, len(hc.Completed))
		for _, id := range hc.Completed {
			if id != habitID {
				kept = append(kept, id)
			}
		}
		hc.Completed = kept
	}
	return hc, s.putJSON(ctx, hc.DateKey, hc)
}

// ToggleHabit flips a habit's completion on date and reports the new value
func (s *Service) ToggleHabit(ctx context.Context, date, habitID string) (models.HabitCompletion, bool, error) {
	hc, err := s.LoadHabitCompletions(ctx, date)
	if err != nil {
		return hc, false, err
	}
	done := !hc.Has(habitID)
	hc, err = s.SetHabitCompleted(ctx, date, habitID, done)
	return hc, done, err
}

// ResolveHabit finds a habit by 1-based position, id prefix or name
func ResolveHabit(habits []models.Habit, ref string) (int, error) {
	for i, h := range habits {
		if strings.EqualFold(h.Name, strings.TrimSpace(ref)) {
			return i, nil
		}
	}
	return resolveIndex(ref, len(habits), func(i int) string { return habits[i].ID }, ErrHabitNotFound)
}
