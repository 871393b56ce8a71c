package models

// Habit is a recurring activity scheduled on a set of weekdays (0=Sunday)
type Habit struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Emoji  string `json:"emoji"`
	Points int    `json:"points"`
	Days   []int  `json:"days"`
}

// ScheduledOn reports whether the habit is eligible on the weekday
func (h Habit) ScheduledOn(weekday int) bool {
	for _, d := range h.Days {
		if d == weekday {
			return true
		}
	}
	return false
}

// Reward is a catalog entry. Milestones are unlocked by lifetime points and
// never spend the balance.
type Reward struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	PointCost   int    `json:"pointCost"`
	IsMilestone bool   `json:"isMilestone"`
}

// ClaimedReward is a snapshot of a reward at the time it was claimed
type ClaimedReward struct {
	RewardID   string `json:"rewardId"`
	RewardName string `json:"rewardName"`
	Emoji      string `json:"emoji"`
	PointCost  int    `json:"pointCost"`
	ClaimedAt  string `json:"claimedAt"`
}

// DailyPointsEntry records the points awarded on one calendar date
type DailyPointsEntry struct {
	Date           string `json:"date"`
	Points         int    `json:"points"`
	TasksCompleted int    `json:"tasksCompleted"`
	TotalTasks     int    `json:"totalTasks"`
}

// GameState is the root aggregate stored under the gameState key
type GameState struct {
	CurrentPoints  int                `json:"currentPoints"`
	LifetimePoints int                `json:"lifetimePoints"`
	CurrentStreak  int                `json:"currentStreak"`
	LastActiveDate string             `json:"lastActiveDate"`
	ClaimedRewards []ClaimedReward    `json:"claimedRewards"`
	DailyPointsLog []DailyPointsEntry `json:"dailyPointsLog"`
	Rewards        []Reward           `json:"rewards"`
	Habits         []Habit            `json:"habits"`
}

// Clone returns a deep copy so that snapshots never share backing arrays
func (g GameState) Clone() GameState {
	out := g
	out.ClaimedRewards = append([]ClaimedReward{}, g.ClaimedRewards...)
	out.DailyPointsLog = append([]DailyPointsEntry{}, g.DailyPointsLog...)
	out.Rewards = append([]Reward{}, g.Rewards...)
	out.Habits = make([]Habit, len(g.Habits))
	for i, h := range g.Habits {
		h.Days = append([]int{}, h.Days...)
		out.Habits[i] = h
	}
	return out
}

// PointsEntry returns the log entry for date, if any
func (g GameState) PointsEntry(date string) (DailyPointsEntry, bool) {
	for _, e := range g.DailyPointsLog {
		if e.Date == date {
			return e, true
		}
	}
	return DailyPointsEntry{}, false
}

// FindReward looks up a reward in the catalog by id
func (g GameState) FindReward(id string) (Reward, bool) {
	for _, r := range g.Rewards {
		if r.ID == id {
			return r, true
		}
	}
	return Reward{}, false
}

// LevelInfo is derived from lifetime points on every read
type LevelInfo struct {
	Level       int     `json:"level"`
	Name        string  `json:"name"`
	CurrentXP   int     `json:"currentXP"`
	RequiredXP  int     `json:"requiredXP"`
	NextLevelXP int     `json:"nextLevelXP"`
	Progress    float64 `json:"progress"`
}

// PointsBreakdown exposes every component of a day's score
type PointsBreakdown struct {
	TaskPoints       int     `json:"taskPoints"`
	MITBonus         int     `json:"mitBonus"`
	FrogBonus        int     `json:"frogBonus"`
	HabitPoints      int     `json:"habitPoints"`
	AllCompleteBonus int     `json:"allCompleteBonus"`
	StreakMultiplier float64 `json:"streakMultiplier"`
	Total            int     `json:"total"`
}
