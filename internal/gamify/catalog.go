package gamify

import "github.com/balkashynov/ceoplan/internal/models"

// DefaultRewards is the catalog a fresh game state starts with
func DefaultRewards() []models.Reward {
	return []models.Reward{
		{ID: "r1", Name: "Coffee break", Emoji: "☕", PointCost: 100},
		{ID: "r2", Name: "Social media time", Emoji: "📱", PointCost: 100},
		{ID: "r3", Name: "Movie night", Emoji: "🎬", PointCost: 500},
		{ID: "r4", Name: "Takeout dinner", Emoji: "🍕", PointCost: 500},
		{ID: "r5", Name: "Spa day", Emoji: "🧖", PointCost: 2000},
		{ID: "r6", Name: "New game", Emoji: "🎮", PointCost: 2000},
		{ID: "m1", Name: "First week", Emoji: "🌟", PointCost: 300, IsMilestone: true},
		{ID: "m2", Name: "Month of hustle", Emoji: "🏅", PointCost: 3000, IsMilestone: true},
		{ID: "m3", Name: "Master", Emoji: "🏆", PointCost: 8000, IsMilestone: true},
		{ID: "m4", Name: "Legend", Emoji: "👑", PointCost: 12000, IsMilestone: true},
	}
}

// DefaultHabits is the habit catalog a fresh game state starts with
func DefaultHabits() []models.Habit {
	return []models.Habit{
		{ID: "h1", Name: "Exercise", Emoji: "🏃", Points: HabitPoints, Days: []int{1, 2, 3, 4, 5}},
		{ID: "h2", Name: "Reading", Emoji: "📖", Points: HabitPoints, Days: []int{0, 1, 2, 3, 4, 5, 6}},
		{ID: "h3", Name: "Meditation", Emoji: "🧘", Points: HabitPoints, Days: []int{0, 1, 2, 3, 4, 5, 6}},
	}
}

// NewGameState returns zero balances with the default catalogs
func NewGameState() models.GameState {
	return models.GameState{
		ClaimedRewards: []models.ClaimedReward{},
		DailyPointsLog: []models.DailyPointsEntry{},
		Rewards:        DefaultRewards(),
		Habits:         DefaultHabits(),
	}
}

// AddReward appends a reward to the catalog
func AddReward(state models.GameState, reward models.Reward) models.GameState {
	next := state.Clone()
	next.Rewards = append(next.Rewards, reward)
	return next
}

// RemoveReward drops a reward from the catalog. Claim history is untouched.
func RemoveReward(state models.GameState, rewardID string) models.GameState {
	next := state.Clone()
	kept := next.Rewards[:0]
	for _, r := range next.Rewards {
		if r.ID != rewardID {
			kept = append(kept, r)
		}
	}
	next.Rewards = kept
	return next
}

// AddHabit appends a habit to the catalog
func AddHabit(state models.GameState, habit models.Habit) models.GameState {
	next := state.Clone()
	habit.Days = append([]int{}, habit.Days...)
	next.Habits = append(next.Habits, habit)
	return next
}

// RemoveHabit drops a habit from the catalog
func RemoveHabit(state models.GameState, habitID string) models.GameState {
	next := state.Clone()
	kept := next.Habits[:0]
	for _, h := range next.Habits {
		if h.ID != habitID {
			kept = append(kept, h)
		}
	}
	next.Habits = kept
	return next
}

// HabitsForWeekday returns the habits scheduled on weekday (0=Sunday)
func HabitsForWeekday(habits []models.Habit, weekday int) []models.Habit {
	var out []models.Habit
	for _, h := range habits {
		if h.ScheduledOn(weekday) {
			out = append(out, h)
		}
	}
	return out
}

// TallyHabits counts the habits scheduled on weekday and how many of those
// are in completedIDs. Completions of unscheduled or deleted habits are
// ignored.
func TallyHabits(habits []models.Habit, completedIDs []string, weekday int) (completed, total int) {
	done := make(map[string]bool, len(completedIDs))
	for _, id := range completedIDs {
		done[id] = true
	}
	for _, h := range HabitsForWeekday(habits, weekday) {
		total++
		if done[h.ID] {
			completed++
		}
	}
	return completed, total
}
