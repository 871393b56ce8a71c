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

// LoadWeekPlan returns the plan stored under weekKey, or an empty plan.
// String goals are normalized in memory only.
func (s *Service) LoadWeekPlan(ctx context.Context, weekKey string) (models.WeekPlan, error) {
	empty := models.WeekPlan{WeekKey: weekKey, Goals: []models.Goal{}}

	raw, ok, err := s.getRaw(ctx, weekKey)
	if err != nil || !ok {
		return empty, err
	}
	plan, res := migrate.DecodeWeekPlan(weekKey, raw)
	if res == migrate.Absent {
		logger.Debug("discarding unreadable record %s", weekKey)
		return empty, nil
	}
	plan.WeekKey = weekKey
	return plan, nil
}

// SaveWeekPlan writes plan under its week key
func (s *Service) SaveWeekPlan(ctx context.Context, plan models.WeekPlan) error {
	if !strings.HasPrefix(plan.WeekKey, WeekPrefix) {
		return fmt.Errorf("invalid week plan key %q", plan.WeekKey)
	}
	if plan.Goals == nil {
		plan.Goals = []models.Goal{}
	}
	plan.UpdatedAt = s.timestamp()
	return s.putJSON(ctx, plan.WeekKey, plan)
}

// ResolveGoal finds a goal by 1-based position or id prefix
func ResolveGoal(plan models.WeekPlan, ref string) (int, error) {
	return resolveIndex(ref, len(plan.Goals), func(i int) string { return plan.Goals[i].ID }, ErrGoalNotFound)
}

// AddGoal appends a goal to the week
func (s *Service) AddGoal(ctx context.Context, weekKey, text string, pillar models.Pillar) (models.Goal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Goal{}, ErrEmptyText
	}
	if !pillar.IsValid() {
		pillar = migrate.LegacyGoalPillar
	}

	plan, err := s.LoadWeekPlan(ctx, weekKey)
	if err != nil {
		return models.Goal{}, err
	}
	goal := models.Goal{ID: uuid.NewString(), Text: text, Pillar: pillar}
	plan.Goals = append(plan.Goals, goal)
	if err := s.SaveWeekPlan(ctx, plan); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

// RemoveGoal deletes a goal. Tasks keep their goalId and simply stop
// resolving to a goal.
func (s *Service) RemoveGoal(ctx context.Context, weekKey, ref string) (models.Goal, error) {
	plan, err := s.LoadWeekPlan(ctx, weekKey)
	if err != nil {
		return models.Goal{}, err
	}
	i, err := ResolveGoal(plan, ref)
	if err != nil {
		return models.Goal{}, err
	}
	removed := plan.Goals[i]
	plan.Goals = append(plan.Goals[:i], plan.Goals[i+1:]...)
	if err := s.SaveWeekPlan(ctx, plan); err != nil {
		return models.Goal{}, err
	}
	return removed, nil
}

// UpdateGoalText renames a goal
func (s *Service) UpdateGoalText(ctx context.Context, weekKey, ref, text string) (models.Goal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Goal{}, ErrEmptyText
	}
	plan, err := s.LoadWeekPlan(ctx, weekKey)
	if err != nil {
		return models.Goal{}, err
	}
	i, err := ResolveGoal(plan, ref)
	if err != nil {
		return models.Goal{}, err
	}
	plan.Goals[i].Text = text
	if err := s.SaveWeekPlan(ctx, plan); err != nil {
		return models.Goal{}, err
	}
	return plan.Goals[i], nil
}
