package planner

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/ceoplan/internal/gamify"
)

// Key prefixes of the persisted key space
const (
	DayPrefix    = "dailyPlan-"
	WeekPrefix   = "weekPlan-"
	HabitPrefix  = "habits-"
	GameStateKey = "gameState"
)

// DateString formats t as a local calendar date
func DateString(t time.Time) string {
	return t.Format(gamify.DateLayout)
}

// DayKey is the daily plan key for a YYYY-MM-DD date
func DayKey(date string) string {
	return DayPrefix + date
}

// HabitKey is the habit completion key for a YYYY-MM-DD date
func HabitKey(date string) string {
	return HabitPrefix + date
}

// DateFromKey strips a daily plan or habit prefix
func DateFromKey(key string) string {
	key = strings.TrimPrefix(key, DayPrefix)
	return strings.TrimPrefix(key, HabitPrefix)
}

// WeekKey is the week plan key for the ISO week containing t, shifted by
// offset weeks. The year is the ISO week-year, so 2024-12-30 belongs to
// 2025-W01.
func WeekKey(t time.Time, offset int) string {
	year, week := t.AddDate(0, 0, 7*offset).ISOWeek()
	return fmt.Sprintf("%s%d-W%02d", WeekPrefix, year, week)
}

// WeekLabel strips the prefix from a week key
func WeekLabel(key string) string {
	return strings.TrimPrefix(key, WeekPrefix)
}

// WeekDates returns the Monday..Sunday dates of an ISO week label such as
// 2024-W20
func WeekDates(label string) ([]string, error) {
	yearStr, weekStr, ok := strings.Cut(strings.TrimPrefix(label, WeekPrefix), "-W")
	if !ok {
		return nil, fmt.Errorf("invalid week %q", label)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, fmt.Errorf("invalid week year %q", yearStr)
	}
	week, err := strconv.Atoi(weekStr)
	if err != nil || week < 1 || week > 53 {
		return nil, fmt.Errorf("invalid week number %q", weekStr)
	}

	// January 4th is always in week 1
	jan4 := time.Date(year, time.January, 4, 12, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -((int(jan4.Weekday())+6)%7)+(week-1)*7)
	if y, w := monday.ISOWeek(); y != year || w != week {
		return nil, fmt.Errorf("%d has no week %d", year, week)
	}

	dates := make([]string, 7)
	for i := range dates {
		dates[i] = DateString(monday.AddDate(0, 0, i))
	}
	return dates, nil
}
