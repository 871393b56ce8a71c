package migrate

import (
	"encoding/json"
	"testing"

	"github.com/balkashynov/ceoplan/internal/models"
)

const dayKey = "dailyPlan-2024-05-14"

func TestDecodeLegacyWholeDayPlan(t *testing.T) {
	raw := []byte(`{
		"dateKey": "dailyPlan-2024-05-14",
		"projects": [{"name": "A", "tasks": ["x", "y"]}],
		"otherWork": ["w"],
		"otherTasks": ["p"],
		"completedTasks": ["x"],
		"createdAt": "2024-05-14T07:00:00.000Z"
	}`)

	plan, res := DecodeDailyPlan(dayKey, raw)
	if res != Migrated {
		t.Fatalf("result=%v, want migrated", res)
	}
	if len(plan.Tasks) != 4 {
		t.Fatalf("tasks=%d, want 4", len(plan.Tasks))
	}

	want := []struct {
		text      string
		completed bool
		pillar    models.Pillar
	}{
		{"x", true, models.PillarSales},
		{"y", false, models.PillarSales},
		{"w", false, models.PillarAutomation},
		{"p", false, models.PillarLife},
	}
	seen := map[string]bool{}
	for i, w := range want {
		got := plan.Tasks[i]
		if got.Text != w.text || got.Completed != w.completed || got.Pillar != w.pillar {
			t.Fatalf("task %d=%+v, want %+v", i, got, w)
		}
		if got.ID == "" || seen[got.ID] {
			t.Fatalf("task %d has missing or duplicate id %q", i, got.ID)
		}
		if got.IsMIT {
			t.Fatalf("migrated task %d flagged MIT", i)
		}
		seen[got.ID] = true
	}
	if plan.CreatedAt != "2024-05-14T07:00:00.000Z" || plan.DateKey != dayKey {
		t.Fatalf("metadata not carried over: %+v", plan)
	}
}

func TestDecodeLegacyPlanMatchesCompletionByText(t *testing.T) {
	raw := []byte(`{"projects":[{"name":"A","tasks":["call"]}],"otherTasks":["call"],"completedTasks":["call"]}`)

	plan, res := DecodeDailyPlan(dayKey, raw)
	if res != Migrated {
		t.Fatalf("result=%v, want migrated", res)
	}
	for _, task := range plan.Tasks {
		if !task.Completed {
			t.Fatalf("duplicate text %q should share completion", task.Text)
		}
	}
	if plan.DateKey != dayKey {
		t.Fatalf("dateKey=%q, want key fallback", plan.DateKey)
	}
}

func TestDecodeCategoryTasks(t *testing.T) {
	raw := []byte(`{"dateKey":"dailyPlan-2024-05-14","tasks":[
		{"id":"a","text":"pitch","completed":true,"category":"project","projectIndex":1},
		{"id":"b","text":"deploy","completed":false,"category":"work"},
		{"id":"c","text":"gym","completed":false,"category":"personal"},
		{"id":"d","text":"misc","completed":false},
		{"id":"e","text":"frog","completed":false,"pillar":"frog","isMIT":true,"goalId":"g1"}
	],"createdAt":"x"}`)

	plan, res := DecodeDailyPlan(dayKey, raw)
	if res != Migrated {
		t.Fatalf("result=%v, want migrated", res)
	}

	wantPillars := []models.Pillar{
		models.PillarSales, models.PillarAutomation, models.PillarLife, models.PillarLife, models.PillarFrog,
	}
	for i, p := range wantPillars {
		if plan.Tasks[i].Pillar != p {
			t.Fatalf("task %d pillar=%q, want %q", i, plan.Tasks[i].Pillar, p)
		}
	}
	if plan.Tasks[0].GoalID != "legacy-1" {
		t.Fatalf("project index not linked to legacy goal: %q", plan.Tasks[0].GoalID)
	}
	if plan.Tasks[1].IsMIT {
		t.Fatalf("missing isMIT should default to false")
	}
	if !plan.Tasks[4].IsMIT || plan.Tasks[4].GoalID != "g1" {
		t.Fatalf("current task not passed through: %+v", plan.Tasks[4])
	}
}

func TestDecodeCurrentPlanUnchanged(t *testing.T) {
	in := models.DailyPlan{
		DateKey:   dayKey,
		Tasks:     []models.Task{{ID: "a", Text: "one", Pillar: models.PillarStrategy}},
		Energy:    models.EnergyHigh,
		CreatedAt: "2024-05-14T07:00:00Z",
	}
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	plan, res := DecodeDailyPlan(dayKey, raw)
	if res != Current {
		t.Fatalf("result=%v, want current", res)
	}
	if plan.Energy != models.EnergyHigh || len(plan.Tasks) != 1 || plan.Tasks[0] != in.Tasks[0] {
		t.Fatalf("plan=%+v", plan)
	}
}

func TestDecodeMalformedIsAbsent(t *testing.T) {
	inputs := []string{
		``,
		`{not json`,
		`null`,
		`[]`,
		`"text"`,
		`{"tasks":"nope"}`,
		`{"somethingElse":true}`,
		`{"projects":"nope"}`,
	}
	for _, in := range inputs {
		if _, res := DecodeDailyPlan(dayKey, []byte(in)); res != Absent {
			t.Fatalf("DecodeDailyPlan(%q)=%v, want absent", in, res)
		}
	}
	if _, res := DecodeWeekPlan("weekPlan-2024-W20", []byte(`{oops`)); res != Absent {
		t.Fatalf("malformed week plan not absent")
	}
	if _, res := DecodeHabitCompletion("habits-2024-05-14", []byte(`[1,2]`)); res != Absent {
		t.Fatalf("malformed habit completion not absent")
	}
}

func TestDecodeGoals(t *testing.T) {
	legacy := DecodeGoals(json.RawMessage(`["Close deal", "", "Ship v2"]`))
	if len(legacy) != 3 {
		t.Fatalf("goals=%d, want 3", len(legacy))
	}
	for i, g := range legacy {
		if g.ID != LegacyGoalID(i) || g.Pillar != models.PillarSales {
			t.Fatalf("goal %d=%+v", i, g)
		}
	}
	if legacy[2].Text != "Ship v2" {
		t.Fatalf("goal text=%q", legacy[2].Text)
	}

	objects := DecodeGoals(json.RawMessage(`[{"id":"g1","text":"Hire","pillar":"strategy"}]`))
	if len(objects) != 1 || objects[0] != (models.Goal{ID: "g1", Text: "Hire", Pillar: models.PillarStrategy}) {
		t.Fatalf("objects=%+v", objects)
	}

	if got := DecodeGoals(json.RawMessage(`{"a":1}`)); len(got) != 0 {
		t.Fatalf("non-array goals=%+v, want empty", got)
	}
	if got := DecodeGoals(nil); len(got) != 0 {
		t.Fatalf("missing goals=%+v, want empty", got)
	}
}

func TestDecodeWeekPlanStringGoals(t *testing.T) {
	raw := []byte(`{"weekKey":"weekPlan-2024-W20","goals":["a","b","c"],"updatedAt":"t"}`)
	plan, res := DecodeWeekPlan("weekPlan-2024-W20", raw)
	if res != Migrated {
		t.Fatalf("result=%v, want migrated", res)
	}
	if len(plan.Goals) != 3 || plan.Goals[1].ID != "legacy-1" {
		t.Fatalf("goals=%+v", plan.Goals)
	}

	current := []byte(`{"weekKey":"weekPlan-2024-W20","goals":[{"id":"g1","text":"a","pillar":"life"}],"updatedAt":"t"}`)
	if _, res := DecodeWeekPlan("weekPlan-2024-W20", current); res != Current {
		t.Fatalf("object goals result=%v, want current", res)
	}
}

func TestDecodeGameStateFillsDefaults(t *testing.T) {
	state, res := DecodeGameState([]byte(`{"currentPoints":40,"lifetimePoints":90,"currentStreak":2,"lastActiveDate":"2024-05-14"}`))
	if res != Migrated {
		t.Fatalf("result=%v, want migrated", res)
	}
	if state.CurrentPoints != 40 || state.LifetimePoints != 90 || state.CurrentStreak != 2 {
		t.Fatalf("balances lost: %+v", state)
	}
	if len(state.Rewards) == 0 || len(state.Habits) == 0 {
		t.Fatalf("catalogs not defaulted")
	}
	if state.ClaimedRewards == nil || state.DailyPointsLog == nil {
		t.Fatalf("lists not initialized")
	}

	fresh, res := DecodeGameState([]byte(`garbage`))
	if res != Absent || fresh.CurrentPoints != 0 || len(fresh.Rewards) == 0 {
		t.Fatalf("garbage game state=%+v (%v)", fresh, res)
	}

	kept, _ := DecodeGameState([]byte(`{"rewards":[],"habits":[]}`))
	if len(kept.Rewards) != 0 || len(kept.Habits) != 0 {
		t.Fatalf("explicitly empty catalogs replaced with defaults")
	}
}
