package gamify

import (
	"math"

	"github.com/balkashynov/ceoplan/internal/models"
)

// Scoring weights and streak multiplier bounds
const (
	TaskPoints       = 10
	MITBonus         = 15
	FrogBonus        = 10
	HabitPoints      = 5
	AllCompleteBonus = 50

	StreakStep          = 0.10
	MaxStreakMultiplier = 2.0
)

// StreakMultiplier returns 1 + streak*10%, clamped to [1, 2]
func StreakMultiplier(streak int) float64 {
	m := 1 + float64(streak)*StreakStep
	if m < 1 {
		return 1
	}
	return math.Min(m, MaxStreakMultiplier)
}

// CalculateDailyPoints scores a day's tasks and habit completions.
// The multiplier applies to the sum of all components and only the final
// total is rounded.
func CalculateDailyPoints(tasks []models.Task, streak, completedHabits, totalHabits int) models.PointsBreakdown {
	if len(tasks) == 0 && totalHabits == 0 {
		return models.PointsBreakdown{StreakMultiplier: 1}
	}
	if completedHabits < 0 {
		completedHabits = 0
	}

	var b models.PointsBreakdown
	completed := 0
	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		completed++
		b.TaskPoints += TaskPoints
		if t.IsMIT {
			b.MITBonus += MITBonus
		}
		if t.Pillar == models.PillarFrog {
			b.FrogBonus += FrogBonus
		}
	}
	b.HabitPoints = completedHabits * HabitPoints
	if len(tasks) > 0 && completed == len(tasks) {
		b.AllCompleteBonus = AllCompleteBonus
	}

	b.StreakMultiplier = StreakMultiplier(streak)
	base := b.TaskPoints + b.MITBonus + b.FrogBonus + b.HabitPoints + b.AllCompleteBonus
	b.Total = int(math.Round(float64(base) * b.StreakMultiplier))
	return b
}
