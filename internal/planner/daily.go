package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/balkashynov/ceoplan/internal/logger"
	"github.com/balkashynov/ceoplan/internal/migrate"
	"github.com/balkashynov/ceoplan/internal/models"
)

// NewTask holds the data needed to add a task
type NewTask struct {
	Text   string
	Pillar models.Pillar
	IsMIT  bool
	GoalID string
}

// TaskUpdate holds optional field changes; nil fields are left alone
type TaskUpdate struct {
	Text   *string
	Pillar *models.Pillar
	GoalID *string
}

// LoadDailyPlan returns the plan for date, or an empty plan if none is
// stored. Legacy records are rewritten in the current shape.
func (s *Service) LoadDailyPlan(ctx context.Context, date string) (models.DailyPlan, error) {
	key := DayKey(date)
	empty := models.DailyPlan{DateKey: key, Tasks: []models.Task{}}

	raw, ok, err := s.getRaw(ctx, key)
	if err != nil || !ok {
		return empty, err
	}

	plan, res := migrate.DecodeDailyPlan(key, raw)
	switch res {
	case migrate.Absent:
		logger.Debug("discarding unreadable record %s", key)
		return empty, nil
	case migrate.Migrated:
		if err := s.putJSON(ctx, key, plan); err != nil {
			return plan, err
		}
		logger.Info("migrated %s to the current format", key)
	}
	plan.DateKey = key
	return plan, nil
}

// SaveDailyPlan writes plan under its date key
func (s *Service) SaveDailyPlan(ctx context.Context, plan models.DailyPlan) error {
	if !strings.HasPrefix(plan.DateKey, DayPrefix) {
		return fmt.Errorf("invalid daily plan key %q", plan.DateKey)
	}
	if plan.Tasks == nil {
		plan.Tasks = []models.Task{}
	}
	if plan.CreatedAt == "" {
		plan.CreatedAt = s.timestamp()
	}
	return s.putJSON(ctx, plan.DateKey, plan)
}

// AddTask appends a task to the plan for date
func (s *Service) AddTask(ctx context.Context, date string, req NewTask) (models.Task, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return models.Task{}, ErrEmptyText
	}
	pillar := req.Pillar
	if !pillar.IsValid() {
		pillar = models.DefaultPillar
	}

	plan, err := s.LoadDailyPlan(ctx, date)
	if err != nil {
		return models.Task{}, err
	}
	task := models.Task{
		ID:     uuid.NewString(),
		Text:   text,
		Pillar: pillar,
		IsMIT:  req.IsMIT,
		GoalID: req.GoalID,
	}
	plan.Tasks = append(plan.Tasks, task)
	if err := s.SaveDailyPlan(ctx, plan); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// ResolveTask finds a task by 1-based position or id prefix
func ResolveTask(plan models.DailyPlan, ref string) (int, error) {
	return resolveIndex(ref, len(plan.Tasks), func(i int) string { return plan.Tasks[i].ID }, ErrTaskNotFound)
}

func (s *Service) updateTask(ctx context.Context, date, ref string, fn func(*models.Task) error) (models.Task, error) {
	plan, err := s.LoadDailyPlan(ctx, date)
	if err != nil {
		return models.Task{}, err
	}
	i, err := ResolveTask(plan, ref)
	if err != nil {
		return models.Task{}, err
	}
	if err := fn(&plan.Tasks[i]); err != nil {
		return models.Task{}, err
	}
	if err := s.SaveDailyPlan(ctx, plan); err != nil {
		return models.Task{}, err
	}
	return plan.Tasks[i], nil
}

// SetTaskCompleted marks a task done or not done
func (s *Service) SetTaskCompleted(ctx context.Context, date, ref string, completed bool) (models.Task, error) {
	return s.updateTask(ctx, date, ref, func(t *models.Task) error {
		t.Completed = completed
		return nil
	})
}

// ToggleTask flips a task's completion
func (s *Service) ToggleTask(ctx context.Context, date, ref string) (models.Task, error) {
	return s.updateTask(ctx, date, ref, func(t *models.Task) error {
		t.Completed = !t.Completed
		return nil
	})
}

// ToggleMIT flips a task's most-important flag
func (s *Service) ToggleMIT(ctx context.Context, date, ref string) (models.Task, error) {
	return s.updateTask(ctx, date, ref, func(t *models.Task) error {
		t.IsMIT = !t.IsMIT
		return nil
	})
}

// EditTask applies the non-nil fields of upd
func (s *Service) EditTask(ctx context.Context, date, ref string, upd TaskUpdate) (models.Task, error) {
	return s.updateTask(ctx, date, ref, func(t *models.Task) error {
		if upd.Text != nil {
			text := strings.TrimSpace(*upd.Text)
			if text == "" {
				return ErrEmptyText
			}
			t.Text = text
		}
		if upd.Pillar != nil {
			if !upd.Pillar.IsValid() {
				return fmt.Errorf("unknown pillar %q", *upd.Pillar)
			}
			t.Pillar = *upd.Pillar
		}
		if upd.GoalID != nil {
			t.GoalID = *upd.GoalID
		}
		return nil
	})
}

// RemoveTask deletes a task from the plan and returns it
func (s *Service) RemoveTask(ctx context.Context, date, ref string) (models.Task, error) {
	plan, err := s.LoadDailyPlan(ctx, date)
	if err != nil {
		return models.Task{}, err
	}
	i, err := ResolveTask(plan, ref)
	if err != nil {
		return models.Task{}, err
	}
	removed := plan.Tasks[i]
	plan.Tasks = append(plan.Tasks[:i], plan.Tasks[i+1:]...)
	if err := s.SaveDailyPlan(ctx, plan); err != nil {
		return models.Task{}, err
	}
	return removed, nil
}

// SetEnergy records the day's energy level
func (s *Service) SetEnergy(ctx context.Context, date string, energy models.Energy) error {
	if !energy.IsValid() {
		return fmt.Errorf("unknown energy level %q (use high, normal or low)", energy)
	}
	plan, err := s.LoadDailyPlan(ctx, date)
	if err != nil {
		return err
	}
	plan.Energy = energy
	return s.SaveDailyPlan(ctx, plan)
}
