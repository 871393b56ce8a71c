package planner

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/balkashynov/ceoplan/internal/db"
	"github.com/balkashynov/ceoplan/internal/models"
)

const day = "2024-05-14"

func newService(t *testing.T) (*Service, *db.MemoryStore) {
	t.Helper()
	store := db.NewMemoryStore()
	s := New(store)
	s.Now = func() time.Time { return time.Date(2024, 5, 14, 9, 0, 0, 0, time.Local) }
	return s, store
}

func TestWeekKey(t *testing.T) {
	cases := []struct {
		date   time.Time
		offset int
		want   string
	}{
		{time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC), 0, "weekPlan-2024-W20"},
		{time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC), 1, "weekPlan-2024-W21"},
		{time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC), -1, "weekPlan-2024-W19"},
		{time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), 0, "weekPlan-2026-W07"},
		// ISO week-year differs from the calendar year at the boundary
		{time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), 0, "weekPlan-2025-W01"},
		{time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), 0, "weekPlan-2020-W53"},
	}
	for _, tc := range cases {
		if got := WeekKey(tc.date, tc.offset); got != tc.want {
			t.Fatalf("WeekKey(%s,%d)=%q, want %q", tc.date.Format("2006-01-02"), tc.offset, got, tc.want)
		}
	}
}

func TestWeekDates(t *testing.T) {
	dates, err := WeekDates("2025-W01")
	if err != nil {
		t.Fatalf("week dates: %v", err)
	}
	if dates[0] != "2024-12-30" || dates[6] != "2025-01-05" {
		t.Fatalf("dates=%v", dates)
	}
	if _, err := WeekDates("2021-W53"); err == nil {
		t.Fatal("2021 has no week 53")
	}
	if _, err := WeekDates("soon"); err == nil {
		t.Fatal("expected error for malformed label")
	}
}

func TestLoadDailyPlanMissingIsEmpty(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()

	plan, err := s.LoadDailyPlan(ctx, day)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if plan.DateKey != "dailyPlan-2024-05-14" || len(plan.Tasks) != 0 {
		t.Fatalf("plan=%+v", plan)
	}
	if keys, _ := store.Keys(ctx, ""); len(keys) != 0 {
		t.Fatalf("loading must not write: %v", keys)
	}
}

func TestLoadDailyPlanWritesBackLegacy(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()
	legacy := `{"dateKey":"dailyPlan-2024-05-14","projects":[{"name":"A","tasks":["x","y"]}],"otherWork":["w"],"otherTasks":["p"],"completedTasks":["x"],"createdAt":"c"}`
	if err := store.Set(ctx, DayKey(day), legacy); err != nil {
		t.Fatalf("seed: %v", err)
	}

	first, err := s.LoadDailyPlan(ctx, day)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(first.Tasks) != 4 || !first.Tasks[0].Completed {
		t.Fatalf("plan=%+v", first)
	}

	stored, _, _ := store.Get(ctx, DayKey(day))
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stored), &fields); err != nil {
		t.Fatalf("stored value: %v", err)
	}
	if _, ok := fields["projects"]; ok {
		t.Fatal("legacy shape was not replaced")
	}

	second, err := s.LoadDailyPlan(ctx, day)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	for i := range first.Tasks {
		if first.Tasks[i].ID != second.Tasks[i].ID {
			t.Fatalf("task ids changed between loads")
		}
	}
}

func TestLoadDailyPlanMalformedIsEmpty(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()
	_ = store.Set(ctx, DayKey(day), "{broken")

	plan, err := s.LoadDailyPlan(ctx, day)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(plan.Tasks) != 0 {
		t.Fatalf("plan=%+v", plan)
	}
}

func TestTaskLifecycle(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	a, err := s.AddTask(ctx, day, NewTask{Text: "  Call Acme  ", Pillar: models.PillarSales, IsMIT: true})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if a.Text != "Call Acme" || a.ID == "" || !a.IsMIT {
		t.Fatalf("task=%+v", a)
	}
	b, err := s.AddTask(ctx, day, NewTask{Text: "Gym", Pillar: "nonsense"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if b.Pillar != models.DefaultPillar {
		t.Fatalf("pillar=%q, want default", b.Pillar)
	}
	if _, err := s.AddTask(ctx, day, NewTask{Text: "   "}); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("err=%v, want ErrEmptyText", err)
	}

	done, err := s.ToggleTask(ctx, day, "1")
	if err != nil || !done.Completed || done.ID != a.ID {
		t.Fatalf("toggle: %+v %v", done, err)
	}
	undone, err := s.SetTaskCompleted(ctx, day, a.ID[:8], false)
	if err != nil || undone.Completed {
		t.Fatalf("undone: %+v %v", undone, err)
	}
	mit, err := s.ToggleMIT(ctx, day, "2")
	if err != nil || !mit.IsMIT {
		t.Fatalf("mit: %+v %v", mit, err)
	}

	text := "Leg day"
	frog := models.PillarFrog
	edited, err := s.EditTask(ctx, day, "2", TaskUpdate{Text: &text, Pillar: &frog})
	if err != nil || edited.Text != "Leg day" || edited.Pillar != models.PillarFrog {
		t.Fatalf("edit: %+v %v", edited, err)
	}

	if _, err := s.ToggleTask(ctx, day, "3"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("err=%v, want ErrTaskNotFound", err)
	}

	removed, err := s.RemoveTask(ctx, day, "1")
	if err != nil || removed.ID != a.ID {
		t.Fatalf("remove: %+v %v", removed, err)
	}
	plan, _ := s.LoadDailyPlan(ctx, day)
	if len(plan.Tasks) != 1 || plan.Tasks[0].ID != b.ID {
		t.Fatalf("plan=%+v", plan)
	}
	if plan.CreatedAt == "" {
		t.Fatal("createdAt not set on save")
	}
}

func TestSetEnergy(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	if err := s.SetEnergy(ctx, day, "sleepy"); err == nil {
		t.Fatal("expected error for unknown energy")
	}
	if err := s.SetEnergy(ctx, day, models.EnergyLow); err != nil {
		t.Fatalf("set energy: %v", err)
	}
	plan, _ := s.LoadDailyPlan(ctx, day)
	if plan.Energy != models.EnergyLow {
		t.Fatalf("energy=%q", plan.Energy)
	}
}

func TestGoals(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()
	key := WeekKey(s.Now(), 0)

	seeded := `{"weekKey":"` + key + `","goals":["Close deal","Ship v2"],"updatedAt":"t"}`
	_ = store.Set(ctx, key, seeded)

	plan, err := s.LoadWeekPlan(ctx, key)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(plan.Goals) != 2 || plan.Goals[0].ID != "legacy-0" {
		t.Fatalf("goals=%+v", plan.Goals)
	}
	if plan.Goals[1].Pillar != models.PillarSales {
		t.Fatalf("legacy goal pillar=%q", plan.Goals[1].Pillar)
	}
	if raw, _, _ := store.Get(ctx, key); raw != seeded {
		t.Fatalf("reading a week plan must not rewrite it: %q", raw)
	}

	g, err := s.AddGoal(ctx, key, "Hire", models.PillarStrategy)
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if _, err := s.UpdateGoalText(ctx, key, g.ID, "Hire a CTO"); err != nil {
		t.Fatalf("update goal: %v", err)
	}
	if _, err := s.RemoveGoal(ctx, key, "legacy-0"); err != nil {
		t.Fatalf("remove goal: %v", err)
	}
	if _, err := s.RemoveGoal(ctx, key, "9"); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("err=%v, want ErrGoalNotFound", err)
	}

	plan, _ = s.LoadWeekPlan(ctx, key)
	if len(plan.Goals) != 2 || plan.Goals[1].Text != "Hire a CTO" || plan.Goals[0].ID != "legacy-1" {
		t.Fatalf("goals=%+v", plan.Goals)
	}
}

func TestHabitCompletions(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	hc, done, err := s.ToggleHabit(ctx, day, "h1")
	if err != nil || !done || !hc.Has("h1") {
		t.Fatalf("toggle on: %+v %v %v", hc, done, err)
	}
	if _, err := s.SetHabitCompleted(ctx, day, "h1", true); err != nil {
		t.Fatalf("idempotent set: %v", err)
	}
	hc, _ = s.LoadHabitCompletions(ctx, day)
	if len(hc.Completed) != 1 {
		t.Fatalf("completed=%v", hc.Completed)
	}
	hc, done, err = s.ToggleHabit(ctx, day, "h1")
	if err != nil || done || hc.Has("h1") {
		t.Fatalf("toggle off: %+v %v %v", hc, done, err)
	}
}

func TestResolveHabit(t *testing.T) {
	habits := []models.Habit{{ID: "h1", Name: "Exercise"}, {ID: "h2", Name: "Reading"}}
	if i, err := ResolveHabit(habits, "reading"); err != nil || i != 1 {
		t.Fatalf("by name: %d %v", i, err)
	}
	if i, err := ResolveHabit(habits, "1"); err != nil || i != 0 {
		t.Fatalf("by position: %d %v", i, err)
	}
	if _, err := ResolveHabit(habits, "h"); err == nil {
		t.Fatal("ambiguous prefix should fail")
	}
	if _, err := ResolveHabit(habits, "yoga"); !errors.Is(err, ErrHabitNotFound) {
		t.Fatalf("err=%v, want ErrHabitNotFound", err)
	}
}

func TestResolveReward(t *testing.T) {
	rewards := []models.Reward{{ID: "r1", Name: "Coffee break"}, {ID: "r10", Name: "Movie night"}}
	if i, err := ResolveReward(rewards, "movie night"); err != nil || i != 1 {
		t.Fatalf("by name: %d %v", i, err)
	}
	// an exact id wins over the ambiguous prefix
	if i, err := ResolveReward(rewards, "r1"); err != nil || i != 0 {
		t.Fatalf("by id: %d %v", i, err)
	}
	if i, err := ResolveReward(rewards, "2"); err != nil || i != 1 {
		t.Fatalf("by position: %d %v", i, err)
	}
	if _, err := ResolveReward(rewards, "spa"); !errors.Is(err, ErrRewardNotFound) {
		t.Fatalf("err=%v, want ErrRewardNotFound", err)
	}
}

func TestGameStateDefaultsAndWriteBack(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()

	state, err := s.LoadGameState(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(state.Rewards) == 0 || state.CurrentPoints != 0 {
		t.Fatalf("state=%+v", state)
	}

	_ = store.Set(ctx, GameStateKey, `{"currentPoints":120,"lifetimePoints":300}`)
	state, err = s.LoadGameState(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state.CurrentPoints != 120 || len(state.Habits) == 0 {
		t.Fatalf("state=%+v", state)
	}
	raw, _, _ := store.Get(ctx, GameStateKey)
	var fields map[string]json.RawMessage
	_ = json.Unmarshal([]byte(raw), &fields)
	if _, ok := fields["rewards"]; !ok {
		t.Fatal("default catalogs were not written back")
	}
}

func TestMigrateAll(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()

	_ = store.Set(ctx, "dailyPlan-2024-05-13", `{"projects":[{"name":"A","tasks":["x"]}],"completedTasks":[]}`)
	_ = store.Set(ctx, "dailyPlan-2024-05-14", `{"tasks":[{"id":"a","text":"t","completed":false,"pillar":"life","isMIT":false}],"createdAt":"c"}`)
	_ = store.Set(ctx, "weekPlan-2024-W20", `{"goals":["g"]}`)
	_ = store.Set(ctx, "habits-2024-05-14", `nope`)
	_ = store.Set(ctx, "unrelated", `1`)

	report, err := s.MigrateAll(ctx)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if report.Scanned != 4 {
		t.Fatalf("scanned=%d, want 4", report.Scanned)
	}
	if len(report.Migrated) != 2 || report.Migrated[0] != "dailyPlan-2024-05-13" || report.Migrated[1] != "weekPlan-2024-W20" {
		t.Fatalf("migrated=%v", report.Migrated)
	}
	if len(report.Unreadable) != 1 || report.Unreadable[0] != "habits-2024-05-14" {
		t.Fatalf("unreadable=%v", report.Unreadable)
	}

	again, _ := s.MigrateAll(ctx)
	if len(again.Migrated) != 0 {
		t.Fatalf("second pass migrated %v", again.Migrated)
	}
}

func TestExport(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()
	_ = store.Set(ctx, GameStateKey, `{"currentPoints":1}`)
	_ = store.Set(ctx, "habits-2024-05-14", `not json`)

	out, err := s.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if string(out[GameStateKey]) != `{"currentPoints":1}` || string(out["habits-2024-05-14"]) != `"not json"` {
		t.Fatalf("export=%v", out)
	}
	if _, err := json.Marshal(out); err != nil {
		t.Fatalf("export not serializable: %v", err)
	}
}

func TestSearchTasksRanking(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	for _, tc := range []struct{ date, text string }{
		{"2024-05-12", "call mom"},
		{"2024-05-13", "Call"},
		{"2024-05-14", "Call Acme"},
		{"2024-05-14", "follow-up call"},
		{"2024-05-13", "recall notes"},
		{"2024-05-14", "gym"},
	} {
		if _, err := s.AddTask(ctx, tc.date, NewTask{Text: tc.text}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	hits, err := s.SearchTasks(ctx, "CALL")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := []string{"Call", "Call Acme", "call mom", "follow-up call", "recall notes"}
	if len(hits) != len(want) {
		t.Fatalf("hits=%d, want %d", len(hits), len(want))
	}
	for i, w := range want {
		if hits[i].Task.Text != w {
			t.Fatalf("hit %d=%q, want %q", i, hits[i].Task.Text, w)
		}
	}
	if hits[1].Date != "2024-05-14" || hits[1].Index != 1 {
		t.Fatalf("hit location=%s #%d", hits[1].Date, hits[1].Index)
	}
}
