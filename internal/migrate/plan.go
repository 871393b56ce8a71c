package migrate

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/balkashynov/ceoplan/internal/models"
)

// Result describes what a decoder found under a key
type Result int

const (
	// Absent means nothing usable was stored; use the default value.
	Absent Result = iota
	// Current means the record was already in the current schema.
	Current
	// Migrated means a legacy record (or legacy elements inside a current
	// record) was rewritten and the caller must persist the new shape under
	// the same key.
	Migrated
)

func (r Result) String() string {
	switch r {
	case Current:
		return "current"
	case Migrated:
		return "migrated"
	default:
		return "absent"
	}
}

// LegacyDailyPlan is the whole-day format with project slots and a parallel
// list of completed task texts.
type LegacyDailyPlan struct {
	DateKey  string `json:"dateKey"`
	Projects []struct {
		Name  string   `json:"name"`
		Tasks []string `json:"tasks"`
	} `json:"projects"`
	OtherWork      []string `json:"otherWork"`
	OtherTasks     []string `json:"otherTasks"`
	CompletedTasks []string `json:"completedTasks"`
	CreatedAt      string   `json:"createdAt"`
}

type planDecoder func(key string, raw []byte, fields map[string]json.RawMessage) (models.DailyPlan, Result)

// dailyPlanDecoders are tried in order; the first non-Absent result wins.
var dailyPlanDecoders = []planDecoder{
	decodeCurrentDailyPlan,
	decodeLegacyDailyPlan,
}

// DecodeDailyPlan decodes the value stored under a dailyPlan key
func DecodeDailyPlan(key string, raw []byte) (models.DailyPlan, Result) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return models.DailyPlan{}, Absent
	}
	for _, decode := range dailyPlanDecoders {
		if plan, res := decode(key, raw, fields); res != Absent {
			return plan, res
		}
	}
	return models.DailyPlan{}, Absent
}

func decodeCurrentDailyPlan(key string, _ []byte, fields map[string]json.RawMessage) (models.DailyPlan, Result) {
	rawTasks, ok := fields["tasks"]
	if !ok {
		return models.DailyPlan{}, Absent
	}

	res := Current
	plan := models.DailyPlan{DateKey: key, Tasks: []models.Task{}}
	if !isNull(rawTasks) {
		tasks, upgraded, ok := DecodeTasks(rawTasks)
		if !ok {
			return models.DailyPlan{}, Absent
		}
		plan.Tasks = tasks
		if upgraded {
			res = Migrated
		}
	}
	decodeString(fields["dateKey"], &plan.DateKey)
	decodeString(fields["createdAt"], &plan.CreatedAt)

	var energy string
	decodeString(fields["energy"], &energy)
	if e := models.Energy(energy); e.IsValid() {
		plan.Energy = e
	}
	return plan, res
}

func decodeLegacyDailyPlan(key string, raw []byte, fields map[string]json.RawMessage) (models.DailyPlan, Result) {
	if _, ok := fields["projects"]; !ok {
		return models.DailyPlan{}, Absent
	}
	var legacy LegacyDailyPlan
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return models.DailyPlan{}, Absent
	}
	if legacy.DateKey == "" {
		legacy.DateKey = key
	}
	return MigrateLegacyDailyPlan(legacy), Migrated
}

// MigrateLegacyDailyPlan explodes the whole-day format into a flat task
// list. Completion is matched on task text, so tasks sharing a text share
// their completion flag.
func MigrateLegacyDailyPlan(legacy LegacyDailyPlan) models.DailyPlan {
	completed := make(map[string]bool, len(legacy.CompletedTasks))
	for _, text := range legacy.CompletedTasks {
		completed[text] = true
	}

	tasks := []models.Task{}
	add := func(text string, pillar models.Pillar) {
		tasks = append(tasks, models.Task{
			ID:        uuid.NewString(),
			Text:      text,
			Completed: completed[text],
			Pillar:    pillar,
		})
	}
	for _, project := range legacy.Projects {
		for _, text := range project.Tasks {
			add(text, models.PillarSales)
		}
	}
	for _, text := range legacy.OtherWork {
		add(text, models.PillarAutomation)
	}
	for _, text := range legacy.OtherTasks {
		add(text, models.PillarLife)
	}

	return models.DailyPlan{
		DateKey:   legacy.DateKey,
		Tasks:     tasks,
		CreatedAt: legacy.CreatedAt,
	}
}

func decodeString(raw json.RawMessage, dst *string) {
	if raw == nil {
		return
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		*dst = s
	}
}
