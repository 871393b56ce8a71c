package migrate

import (
	"encoding/json"

	"github.com/balkashynov/ceoplan/internal/models"
)

// LegacyGoalPillar is assigned to goals upgraded from the string format
const LegacyGoalPillar = models.PillarSales

// DecodeGoals normalizes a goal list. Plain strings from the fixed
// three-slot format become goals with synthesized ids; objects pass through.
// A value that is not an array yields an empty list.
func DecodeGoals(raw json.RawMessage) []models.Goal {
	goals, _ := decodeGoals(raw)
	return goals
}

func decodeGoals(raw json.RawMessage) (goals []models.Goal, upgraded bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []models.Goal{}, len(raw) > 0 && !isNull(raw)
	}

	goals = make([]models.Goal, 0, len(items))
	for i, item := range items {
		var text string
		if err := json.Unmarshal(item, &text); err == nil {
			goals = append(goals, models.Goal{ID: LegacyGoalID(i), Text: text, Pillar: LegacyGoalPillar})
			upgraded = true
			continue
		}
		var g models.Goal
		if isNull(item) || json.Unmarshal(item, &g) != nil {
			upgraded = true
			continue
		}
		if !g.Pillar.IsValid() {
			g.Pillar = LegacyGoalPillar
			upgraded = true
		}
		goals = append(goals, g)
	}
	return goals, upgraded
}

// DecodeWeekPlan decodes the value stored under a weekPlan key. Migrated
// means the goal list was normalized; readers may use the result without
// writing it back.
func DecodeWeekPlan(key string, raw []byte) (models.WeekPlan, Result) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return models.WeekPlan{}, Absent
	}

	plan := models.WeekPlan{WeekKey: key}
	decodeString(fields["weekKey"], &plan.WeekKey)
	decodeString(fields["updatedAt"], &plan.UpdatedAt)

	var upgraded bool
	plan.Goals, upgraded = decodeGoals(fields["goals"])
	if upgraded {
		return plan, Migrated
	}
	return plan, Current
}

// DecodeHabitCompletion decodes the value stored under a habits key
func DecodeHabitCompletion(key string, raw []byte) (models.HabitCompletion, Result) {
	var hc models.HabitCompletion
	if err := json.Unmarshal(raw, &hc); err != nil {
		return models.HabitCompletion{}, Absent
	}
	if hc.DateKey == "" {
		hc.DateKey = key
	}
	if hc.Completed == nil {
		hc.Completed = []string{}
	}
	return hc, Current
}
