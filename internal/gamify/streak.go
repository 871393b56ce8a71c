package gamify

import (
	"time"

	"github.com/balkashynov/ceoplan/internal/models"
)

// DateLayout is the YYYY-MM-DD layout used for every date string in the store
const DateLayout = "2006-01-02"

// StreakUpdate is the result of advancing a streak to a given day
type StreakUpdate struct {
	CurrentStreak  int
	LastActiveDate string
}

// CalendarDaysBetween returns the number of calendar days from a to b.
// Both must be YYYY-MM-DD strings.
func CalendarDaysBetween(a, b string) (int, error) {
	from, err := time.Parse(DateLayout, a)
	if err != nil {
		return 0, err
	}
	to, err := time.Parse(DateLayout, b)
	if err != nil {
		return 0, err
	}
	// Both parse as UTC midnight, so the difference is a whole number of days.
	return int(to.Sub(from).Hours() / 24), nil
}

// UpdateStreak advances the streak to today. Same-day calls are idempotent,
// consecutive days increment, and every other gap (including clock skew into
// the past or an unparseable last-active date) restarts at 1.
func UpdateStreak(state models.GameState, today string) StreakUpdate {
	if state.LastActiveDate == "" {
		return StreakUpdate{CurrentStreak: 1, LastActiveDate: today}
	}
	if state.LastActiveDate == today {
		return StreakUpdate{CurrentStreak: state.CurrentStreak, LastActiveDate: today}
	}

	diff, err := CalendarDaysBetween(state.LastActiveDate, today)
	if err == nil && diff == 1 {
		return StreakUpdate{CurrentStreak: state.CurrentStreak + 1, LastActiveDate: today}
	}
	return StreakUpdate{CurrentStreak: 1, LastActiveDate: today}
}
