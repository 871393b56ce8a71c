package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/balkashynov/ceoplan/internal/db"
	"github.com/balkashynov/ceoplan/internal/models"
	"github.com/balkashynov/ceoplan/internal/planner"
)

// run executes one CLI invocation against a bolt store in home
func run(t *testing.T, home string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--home", home, "--store", "bolt"}, args...))
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("ceoplan %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func mustContain(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAddListDone(t *testing.T) {
	home := t.TempDir()

	out := run(t, home, "add", "Call Acme #sales !mit")
	mustContain(t, out, "Added task #1", "Call Acme", "most important")

	out = run(t, home, "add", "Expense report", "--pillar", "life")
	mustContain(t, out, "Added task #2")

	out = run(t, home, "ls")
	mustContain(t, out, "★ Call Acme", "Expense report", "0/2 done")

	out = run(t, home, "done", "1")
	mustContain(t, out, "Marked as done: Call Acme", "⭐ Today")

	out = run(t, home, "status")
	mustContain(t, out, "1/2 tasks", "Balance:")
	if strings.Contains(out, "Balance: 0 pts") {
		t.Fatalf("completing a task should award points:\n%s", out)
	}
}

func TestAddOpenTaskDropsAllCompleteBonus(t *testing.T) {
	home := t.TempDir()
	run(t, home, "add", "A")
	out := run(t, home, "done", "1")
	mustContain(t, out, "Today: 66 pts")

	out = run(t, home, "add", "B")
	mustContain(t, out, "Today: 11 pts (-55), balance 11")

	out = run(t, home, "status")
	mustContain(t, out, "Balance: 11 pts", "1/2 tasks")
}

func TestRemoveCompletedHabitDropsItsPoints(t *testing.T) {
	home := t.TempDir()
	run(t, home, "habit", "add", "X")
	out := run(t, home, "habit", "done", "X")
	mustContain(t, out, "Today: 6 pts")

	out = run(t, home, "habit", "rm", "X")
	mustContain(t, out, "Removed habit", "balance 0")

	out = run(t, home, "status")
	mustContain(t, out, "Balance: 0 pts")
}

func TestAddRejectsUnknownPillar(t *testing.T) {
	home := t.TempDir()
	out := run(t, home, "add", "Write post #marketing")
	mustContain(t, out, "Error:", "Unknown pillar")

	out = run(t, home, "ls")
	mustContain(t, out, "No tasks planned")
}

func TestEditAndRemove(t *testing.T) {
	home := t.TempDir()
	run(t, home, "add", "Draft")
	out := run(t, home, "edit", "1", "Final draft", "--pillar", "frog")
	mustContain(t, out, "Updated:", "Final draft", "Frogs")

	out = run(t, home, "edit", "1")
	mustContain(t, out, "Error: nothing to change")

	out = run(t, home, "rm", "1")
	mustContain(t, out, "Removed: Final draft")

	out = run(t, home, "done", "1")
	mustContain(t, out, "Error:", "task not found")
}

func TestGoalLinkAndProgress(t *testing.T) {
	home := t.TempDir()
	out := run(t, home, "goal", "add", "Close the Acme deal", "--pillar", "sales")
	mustContain(t, out, "Added goal #1")

	out = run(t, home, "add", "Send proposal goal:1")
	mustContain(t, out, "Linked to goal")

	out = run(t, home, "goal", "ls")
	mustContain(t, out, "Close the Acme deal", "0/1 tasks")

	run(t, home, "done", "1")
	out = run(t, home, "goal", "ls")
	mustContain(t, out, "1/1 tasks")

	out = run(t, home, "goal", "ls", "--offset", "1")
	mustContain(t, out, "No goals yet")

	out = run(t, home, "add", "Orphan goal:7")
	mustContain(t, out, "Error:", "goal not found")
}

func TestRewardClaimDeniedThenAllowed(t *testing.T) {
	home := t.TempDir()

	out := run(t, home, "reward", "claim", "Coffee break")
	mustContain(t, out, "Error:", "costs 100 pts, you have 0")

	out = run(t, home, "reward", "add", "Sticker", "--cost", "1", "--emoji", "🏷️")
	mustContain(t, out, "Added reward")

	run(t, home, "add", "Anything")
	run(t, home, "done", "1")

	out = run(t, home, "reward", "claim", "sticker")
	mustContain(t, out, "Enjoy your")

	out = run(t, home, "reward", "history")
	mustContain(t, out, "Sticker")

	out = run(t, home, "reward", "claim", "Legend")
	mustContain(t, out, "Error:", "unlocks at 12000")
}

func TestHabitLifecycle(t *testing.T) {
	home := t.TempDir()

	out := run(t, home, "habit", "add", "Stretch", "--days", "all", "--emoji", "🤸")
	mustContain(t, out, "Added habit 🤸 Stretch", "daily")

	out = run(t, home, "habit", "done", "stretch")
	mustContain(t, out, "Stretch done")

	out = run(t, home, "habit", "ls")
	mustContain(t, out, "[✓] 🤸 Stretch")

	out = run(t, home, "week")
	mustContain(t, out, "Habits", "Points")

	out = run(t, home, "habit", "rm", "Stretch")
	mustContain(t, out, "Removed habit")

	out = run(t, home, "habit", "done", "stretch")
	mustContain(t, out, "Error:", "habit not found")
}

func TestEnergy(t *testing.T) {
	home := t.TempDir()
	out := run(t, home, "energy")
	mustContain(t, out, "Energy not set")

	out = run(t, home, "energy", "HIGH")
	mustContain(t, out, "Energy set to high")

	out = run(t, home, "energy", "sleepy")
	mustContain(t, out, "Error:", "unknown energy level")
}

func TestSearchRanksAcrossDays(t *testing.T) {
	home := t.TempDir()
	run(t, home, "--date", "yesterday", "add", "call")
	run(t, home, "add", "Call Acme")
	run(t, home, "add", "Follow-up call")

	out := run(t, home, "search", "call")
	mustContain(t, out, "Found 3 task(s)")
	exact := strings.Index(out, "Yesterday")
	prefix := strings.Index(out, "Call Acme")
	suffix := strings.Index(out, "Follow-up call")
	if !(exact < prefix && prefix < suffix) {
		t.Fatalf("results not ranked exact, prefix, suffix:\n%s", out)
	}
}

func TestMigrateAndExport(t *testing.T) {
	home := t.TempDir()

	store, err := db.OpenBolt(filepath.Join(home, "ceoplan.bolt"))
	if err != nil {
		t.Fatalf("open bolt: %v", err)
	}
	ctx := context.Background()
	legacy := `{"dateKey":"dailyPlan-2024-05-14","projects":[{"name":"A","tasks":["pitch"]}],"otherWork":[],"otherTasks":["gym"],"completedTasks":["gym"],"createdAt":"x"}`
	if err := store.Set(ctx, planner.DayKey("2024-05-14"), legacy); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.Set(ctx, planner.DayKey("2024-05-15"), `{broken`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	out := run(t, home, "migrate")
	mustContain(t, out, "migrated 1", "dailyPlan-2024-05-14", "unreadable", "dailyPlan-2024-05-15")

	out = run(t, home, "--date", "2024-05-14", "ls")
	mustContain(t, out, "pitch", "Sales", "gym", "1/2 done")

	file := filepath.Join(t.TempDir(), "export.json")
	out = run(t, home, "export", "--output", file)
	mustContain(t, out, "Exported")
	payload, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	mustContain(t, string(payload), `"dailyPlan-2024-05-14"`, `"dailyPlan-2024-05-15": "{broken"`)
}

func TestVersion(t *testing.T) {
	SetVersion("1.2.3", "abc", "today")
	out := run(t, t.TempDir(), "version")
	mustContain(t, out, "ceoplan 1.2.3 (commit abc")
}

func TestTextBar(t *testing.T) {
	if got := textBar(0.5, 4); got != "[##..]" {
		t.Fatalf("textBar=%q", got)
	}
	if got := textBar(2, 2); got != "[##]" {
		t.Fatalf("textBar overflow=%q", got)
	}
}

func TestWeekGridRender(t *testing.T) {
	grid := weekGrid{
		Dates:     []string{"2024-05-13", "", "", "", "", "", "2024-05-19"},
		Completed: map[models.Pillar][7]int{models.PillarSales: {2, 1}},
		Points:    [7]int{40, 12},
	}
	var out bytes.Buffer
	grid.render(&out)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("lines=%d, want header, separator, sales, habits, points:\n%s", len(lines), out.String())
	}
	mustContain(t, lines[2], "Sales", "2", "3")
	if !strings.HasSuffix(lines[4], "52") {
		t.Fatalf("points total missing: %q", lines[4])
	}
}
