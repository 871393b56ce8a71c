package gamify

import (
	"math"

	"github.com/balkashynov/ceoplan/internal/models"
)

// Tier is one row of the level table
type Tier struct {
	Name      string
	Threshold int
}

// Levels is ordered by ascending threshold; level number is index+1.
var Levels = []Tier{
	{Name: "Beginner", Threshold: 0},
	{Name: "Learner", Threshold: 100},
	{Name: "Doer", Threshold: 300},
	{Name: "Diligent", Threshold: 750},
	{Name: "Skilled", Threshold: 1500},
	{Name: "Experienced", Threshold: 3000},
	{Name: "Expert", Threshold: 5000},
	{Name: "Master", Threshold: 8000},
	{Name: "Legend", Threshold: 12000},
	{Name: "Elite", Threshold: 20000},
}

// CalculateLevelInfo finds the highest tier reached by lifetimePoints and the
// progress towards the next one.
func CalculateLevelInfo(lifetimePoints int) models.LevelInfo {
	idx := 0
	for i := len(Levels) - 1; i >= 0; i-- {
		if lifetimePoints >= Levels[i].Threshold {
			idx = i
			break
		}
	}

	current := Levels[idx]
	info := models.LevelInfo{
		Level:       idx + 1,
		Name:        current.Name,
		CurrentXP:   lifetimePoints - current.Threshold,
		NextLevelXP: current.Threshold,
		Progress:    1,
	}
	if idx+1 < len(Levels) {
		next := Levels[idx+1]
		info.RequiredXP = next.Threshold - current.Threshold
		info.NextLevelXP = next.Threshold
		info.Progress = math.Min(float64(info.CurrentXP)/float64(info.RequiredXP), 1)
	}
	if info.Progress < 0 {
		// negative balances only come from hand-edited records
		info.Progress = 0
	}
	return info
}
