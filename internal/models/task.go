package models

// Task represents a single item on a day's plan
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Pillar    Pillar `json:"pillar"`
	IsMIT     bool   `json:"isMIT"`
	GoalID    string `json:"goalId,omitempty"`
}

// Energy is the self-reported energy level for a day
type Energy string

const (
	EnergyHigh   Energy = "high"
	EnergyNormal Energy = "normal"
	EnergyLow    Energy = "low"
)

// IsValid reports whether e is a known energy level
func (e Energy) IsValid() bool {
	switch e {
	case EnergyHigh, EnergyNormal, EnergyLow:
		return true
	default:
		return false
	}
}

// DailyPlan is the record stored under dailyPlan-YYYY-MM-DD
type DailyPlan struct {
	DateKey   string `json:"dateKey"`
	Tasks     []Task `json:"tasks"`
	Energy    Energy `json:"energy,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// CompletedCount returns the number of completed tasks
func (p DailyPlan) CompletedCount() int {
	n := 0
	for _, t := range p.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// Goal is a weekly goal. Tasks reference goals by id only.
type Goal struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Pillar Pillar `json:"pillar"`
}

// WeekPlan is the record stored under weekPlan-YYYY-Www
type WeekPlan struct {
	WeekKey   string `json:"weekKey"`
	Goals     []Goal `json:"goals"`
	UpdatedAt string `json:"updatedAt"`
}

// HabitCompletion is the record stored under habits-YYYY-MM-DD
type HabitCompletion struct {
	DateKey   string   `json:"dateKey"`
	Completed []string `json:"completed"`
}

// Has reports whether the habit id is marked completed
func (h HabitCompletion) Has(habitID string) bool {
	for _, id := range h.Completed {
		if id == habitID {
			return true
		}
	}
	return false
}
