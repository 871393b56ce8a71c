package migrate

import (
	"encoding/json"

	"github.com/balkashynov/ceoplan/internal/gamify"
	"github.com/balkashynov/ceoplan/internal/models"
)

// DecodeGameState decodes the singleton game state. Catalogs that predate a
// field are filled with the defaults; anything unreadable yields a fresh
// state.
func DecodeGameState(raw []byte) (models.GameState, Result) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return gamify.NewGameState(), Absent
	}

	var state models.GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return gamify.NewGameState(), Absent
	}

	res := Current
	if state.Rewards == nil {
		state.Rewards = gamify.DefaultRewards()
		res = Migrated
	}
	if state.Habits == nil {
		state.Habits = gamify.DefaultHabits()
		res = Migrated
	}
	if state.ClaimedRewards == nil {
		state.ClaimedRewards = []models.ClaimedReward{}
	}
	if state.DailyPointsLog == nil {
		state.DailyPointsLog = []models.DailyPointsEntry{}
	}
	return state, res
}
