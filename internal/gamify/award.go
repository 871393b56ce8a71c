package gamify

import "github.com/balkashynov/ceoplan/internal/models"

// DayInput is everything needed to score one calendar date
type DayInput struct {
	Date            string
	Tasks           []models.Task
	CompletedHabits int
	TotalHabits     int
}

// AwardDailyPoints re-scores a day and reconciles the balances against what
// was already logged for that date. Only the difference to the logged total
// is applied, so repeated calls with unchanged input leave balances as they
// are. Lifetime points never go down.
func AwardDailyPoints(state models.GameState, in DayInput) (models.GameState, models.PointsBreakdown) {
	streak := UpdateStreak(state, in.Date)
	breakdown := CalculateDailyPoints(in.Tasks, streak.CurrentStreak, in.CompletedHabits, in.TotalHabits)

	completed := 0
	for _, t := range in.Tasks {
		if t.Completed {
			completed++
		}
	}

	next := state.Clone()
	next.CurrentStreak = streak.CurrentStreak
	next.LastActiveDate = streak.LastActiveDate

	entry := models.DailyPointsEntry{
		Date:           in.Date,
		Points:         breakdown.Total,
		TasksCompleted: completed,
		TotalTasks:     len(in.Tasks),
	}

	for i, e := range next.DailyPointsLog {
		if e.Date != in.Date {
			continue
		}
		delta := breakdown.Total - e.Points
		next.CurrentPoints += delta
		if delta > 0 {
			next.LifetimePoints += delta
		}
		next.DailyPointsLog[i] = entry
		return next, breakdown
	}

	next.DailyPointsLog = append(next.DailyPointsLog, entry)
	next.CurrentPoints += breakdown.Total
	next.LifetimePoints += breakdown.Total
	return next, breakdown
}
