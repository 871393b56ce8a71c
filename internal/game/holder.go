// Package game holds the live game state and persists it through a
// debounced saver.
package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/balkashynov/ceoplan/internal/debounce"
	"github.com/balkashynov/ceoplan/internal/gamify"
	"github.com/balkashynov/ceoplan/internal/logger"
	"github.com/balkashynov/ceoplan/internal/models"
)

// ErrUnknownReward is returned when a claim names a reward not in the catalog
var ErrUnknownReward = errors.New("unknown reward")

// Saver persists full game state snapshots
type Saver interface {
	SaveGameState(ctx context.Context, state models.GameState) error
}

// Holder owns the current GameState snapshot. Every mutation replaces the
// snapshot and schedules a save; reads always see the latest snapshot,
// whether or not it has been written yet.
type Holder struct {
	mu      sync.Mutex
	state   models.GameState
	saver   Saver
	saves   *debounce.Debouncer
	now     func() time.Time
	lastErr error
}

// Option configures a Holder
type Option func(*Holder)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(h *Holder) { h.now = now }
}

// WithDebounce sets the save coalescing window; zero saves synchronously
func WithDebounce(d time.Duration) Option {
	return func(h *Holder) { h.saves = debounce.New(d) }
}

// NewHolder wraps state. Saves are synchronous unless WithDebounce is given.
func NewHolder(state models.GameState, saver Saver, opts ...Option) *Holder {
	h := &Holder{
		state: state.Clone(),
		saver: saver,
		saves: debounce.New(0),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// State returns a copy of the current snapshot
func (h *Holder) State() models.GameState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Clone()
}

// LevelInfo describes progress toward the next level
func (h *Holder) LevelInfo() models.LevelInfo {
	return gamify.CalculateLevelInfo(h.State().LifetimePoints)
}

// NextReward is the next spendable reward to save up for
func (h *Holder) NextReward() *models.Reward {
	s := h.State()
	return gamify.NextReward(s.CurrentPoints, s.Rewards)
}

// UnlockedMilestones lists reached milestones that are still unclaimed
func (h *Holder) UnlockedMilestones() []models.Reward {
	s := h.State()
	return gamify.UnlockedMilestones(s.LifetimePoints, s.Rewards, gamify.ClaimedIDs(s))
}

// update applies fn to the snapshot and schedules a save when fn reports a
// change
func (h *Holder) update(fn func(models.GameState) (models.GameState, bool)) models.GameState {
	h.mu.Lock()
	next, changed := fn(h.state)
	if changed {
		h.state = next
	}
	current := h.state
	h.mu.Unlock()

	if changed {
		snapshot := current.Clone()
		h.saves.Trigger(func() { h.persist(snapshot) })
	}
	return current.Clone()
}

func (h *Holder) persist(state models.GameState) {
	if h.saver == nil {
		return
	}
	err := h.saver.SaveGameState(context.Background(), state)
	if err != nil {
		logger.Error("failed to save game state: %v", err)
	}
	h.mu.Lock()
	h.lastErr = err
	h.mu.Unlock()
}

// AwardDailyPoints re-scores a day and reconciles balances
func (h *Holder) AwardDailyPoints(in gamify.DayInput) models.PointsBreakdown {
	var breakdown models.PointsBreakdown
	h.update(func(s models.GameState) (models.GameState, bool) {
		var next models.GameState
		next, breakdown = gamify.AwardDailyPoints(s, in)
		return next, true
	})
	return breakdown
}

// AwardDay scores today's plan and habit completions. It reports false and
// leaves the state alone when date is not today, or when nothing has been
// completed and the day has never been scored.
func (h *Holder) AwardDay(date string, plan models.DailyPlan, completions models.HabitCompletion) (models.PointsBreakdown, bool) {
	today := h.now().Format(gamify.DateLayout)
	if date != today {
		return models.PointsBreakdown{}, false
	}
	day, err := time.ParseInLocation(gamify.DateLayout, date, time.Local)
	if err != nil {
		return models.PointsBreakdown{}, false
	}

	state := h.State()
	completedHabits, totalHabits := gamify.TallyHabits(state.Habits, completions.Completed, int(day.Weekday()))
	_, scored := state.PointsEntry(date)
	if !scored && plan.CompletedCount() == 0 && completedHabits == 0 {
		return models.PointsBreakdown{}, false
	}

	return h.AwardDailyPoints(gamify.DayInput{
		Date:            date,
		Tasks:           plan.Tasks,
		CompletedHabits: completedHabits,
		TotalHabits:     totalHabits,
	}), true
}

// ClaimReward spends points on a reward, or records a reached milestone.
// Denials come back as gamify's sentinel errors and leave the state as is.
func (h *Holder) ClaimReward(rewardID string) (models.Reward, error) {
	var (
		reward models.Reward
		err    error
	)
	h.update(func(s models.GameState) (models.GameState, bool) {
		var ok bool
		if reward, ok = s.FindReward(rewardID); !ok {
			err = fmt.Errorf("%w: %s", ErrUnknownReward, rewardID)
			return s, false
		}
		if err = gamify.CanClaim(s, reward); err != nil {
			return s, false
		}
		next, claimed := gamify.ClaimReward(s, reward, h.now())
		return next, claimed
	})
	return reward, err
}

// AddReward adds a reward to the catalog with a fresh id
func (h *Holder) AddReward(name, emoji string, cost int, milestone bool) (models.Reward, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Reward{}, fmt.Errorf("reward name cannot be empty")
	}
	if cost <= 0 {
		return models.Reward{}, fmt.Errorf("reward cost must be positive, got %d", cost)
	}
	reward := models.Reward{
		ID:          uuid.NewString(),
		Name:        name,
		Emoji:       emoji,
		PointCost:   cost,
		IsMilestone: milestone,
	}
	h.update(func(s models.GameState) (models.GameState, bool) {
		return gamify.AddReward(s, reward), true
	})
	return reward, nil
}

// RemoveReward drops a reward from the catalog; claim history is kept
func (h *Holder) RemoveReward(rewardID string) bool {
	removed := false
	h.update(func(s models.GameState) (models.GameState, bool) {
		if _, ok := s.FindReward(rewardID); !ok {
			return s, false
		}
		removed = true
		return gamify.RemoveReward(s, rewardID), true
	})
	return removed
}

// AddHabit adds a habit to the catalog with a fresh id
func (h *Holder) AddHabit(name, emoji string, points int, days []int) (models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, fmt.Errorf("habit name cannot be empty")
	}
	if points <= 0 {
		points = gamify.HabitPoints
	}
	if len(days) == 0 {
		return models.Habit{}, fmt.Errorf("habit needs at least one weekday")
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return models.Habit{}, fmt.Errorf("invalid weekday %d", d)
		}
	}
	habit := models.Habit{
		ID:     uuid.NewString(),
		Name:   name,
		Emoji:  emoji,
		Points: points,
		Days:   append([]int{}, days...),
	}
	h.update(func(s models.GameState) (models.GameState, bool) {
		return gamify.AddHabit(s, habit), true
	})
	return habit, nil
}

// RemoveHabit drops a habit from the catalog
func (h *Holder) RemoveHabit(habitID string) bool {
	removed := false
	h.update(func(s models.GameState) (models.GameState, bool) {
		for _, habit := range s.Habits {
			if habit.ID == habitID {
				removed = true
				return gamify.RemoveHabit(s, habitID), true
			}
		}
		return s, false
	})
	return removed
}

// Flush writes any pending snapshot and returns the last save error
func (h *Holder) Flush() error {
	h.saves.Flush()
	h.mu.Lock()
	defer h.mu.Unlock()
	err := h.lastErr
	h.lastErr = nil
	return err
}

// Close flushes and stops accepting saves
func (h *Holder) Close() error {
	err := h.Flush()
	h.saves.Stop()
	return err
}
