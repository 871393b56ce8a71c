// Package migrate upgrades persisted records to the current schema.
//
// Every decoder is total: malformed input is reported as Absent (or ok=false)
// instead of an error, and callers treat that exactly like a missing key.
package migrate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/balkashynov/ceoplan/internal/models"
)

// legacyTask covers both the current task shape and the category-based one
// that preceded pillars.
type legacyTask struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Completed    bool   `json:"completed"`
	Pillar       string `json:"pillar"`
	Category     string `json:"category"`
	IsMIT        bool   `json:"isMIT"`
	GoalID       string `json:"goalId"`
	ProjectIndex *int   `json:"projectIndex"`
}

// CategoryToPillar maps the old three-way category onto pillars
func CategoryToPillar(category string) models.Pillar {
	switch category {
	case "project":
		return models.PillarSales
	case "work":
		return models.PillarAutomation
	case "personal":
		return models.PillarLife
	default:
		return models.PillarLife
	}
}

// DecodeTask decodes one task, upgrading category-based records. A task
// without a recognised pillar is considered legacy.
func DecodeTask(raw json.RawMessage) (models.Task, bool) {
	t, _, ok := decodeTask(raw)
	return t, ok
}

func decodeTask(raw json.RawMessage) (t models.Task, upgraded bool, ok bool) {
	if isNull(raw) {
		return models.Task{}, false, false
	}
	var lt legacyTask
	if err := json.Unmarshal(raw, &lt); err != nil {
		return models.Task{}, false, false
	}

	t = models.Task{
		ID:        lt.ID,
		Text:      lt.Text,
		Completed: lt.Completed,
		IsMIT:     lt.IsMIT,
		GoalID:    lt.GoalID,
	}
	if p := models.Pillar(lt.Pillar); p.IsValid() {
		t.Pillar = p
	} else {
		t.Pillar = CategoryToPillar(lt.Category)
		upgraded = true
	}
	if t.GoalID == "" && lt.ProjectIndex != nil {
		// project slots pointed at the fixed three-goal week format
		t.GoalID = LegacyGoalID(*lt.ProjectIndex)
		upgraded = true
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
		upgraded = true
	}
	return t, upgraded, true
}

// LegacyGoalID is the id synthesized for the goal at index i of a string goal list
func LegacyGoalID(i int) string {
	return fmt.Sprintf("legacy-%d", i)
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// DecodeTasks decodes a task array, dropping elements that are not objects.
// upgraded reports whether any element changed shape while decoding.
func DecodeTasks(raw json.RawMessage) (tasks []models.Task, upgraded bool, ok bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, false
	}
	tasks = make([]models.Task, 0, len(items))
	for _, item := range items {
		t, up, ok := decodeTask(item)
		if !ok {
			upgraded = true
			continue
		}
		upgraded = upgraded || up
		tasks = append(tasks, t)
	}
	return tasks, upgraded, true
}
