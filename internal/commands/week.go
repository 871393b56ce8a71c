package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/balkashynov/ceoplan/internal/models"
	"github.com/balkashynov/ceoplan/internal/planner"
)

var dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func newWeekCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the week's completed tasks and points by day",
		Long: `Show a weekly summary of completed work grouped by pillar and day.

Example output:
  Pillar            Mon  Tue  Wed  Thu  Fri  Sat  Sun  Total
  💰 Sales            2    1    -    3    -    -    -      6
  🐸 Frogs            1    -    1    -    -    -    -      2
  Habits              2    3    3    -    -    -    -      8
  Points             41   38   22    -    -    -    -    101`,
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			key, err := a.weekKey(cmd)
			if err != nil {
				return err
			}
			grid, err := buildWeekGrid(cmd.Context(), a.planner, a.game.State(), key)
			if err != nil {
				return err
			}

			a.printf("📅 %s (%s – %s)\n\n", planner.WeekLabel(key), grid.Dates[0], grid.Dates[6])
			if grid.empty() {
				a.printf("Nothing completed this week.\n")
				return nil
			}
			grid.render(a.out)
			return nil
		}),
	}
	cmd.Flags().IntP("offset", "o", 0, "Weeks relative to the working date (-1 = last week)")
	cmd.Flags().StringP("week", "w", "", "ISO week, e.g. 2026-W07")
	return cmd
}

// weekGrid holds per-day counts for Monday..Sunday
type weekGrid struct {
	Dates     []string
	Completed map[models.Pillar][7]int
	Habits    [7]int
	Points    [7]int
}

// buildWeekGrid reads the week's daily plans, habit records and the points
// log
func buildWeekGrid(ctx context.Context, svc *planner.Service, state models.GameState, weekKey string) (weekGrid, error) {
	dates, err := planner.WeekDates(planner.WeekLabel(weekKey))
	if err != nil {
		return weekGrid{}, err
	}
	grid := weekGrid{Dates: dates, Completed: map[models.Pillar][7]int{}}

	for i, d := range dates {
		plan, err := svc.LoadDailyPlan(ctx, d)
		if err != nil {
			return weekGrid{}, err
		}
		for _, t := range plan.Tasks {
			if !t.Completed {
				continue
			}
			row := grid.Completed[t.Pillar.Info().ID]
			row[i]++
			grid.Completed[t.Pillar.Info().ID] = row
		}

		hc, err := svc.LoadHabitCompletions(ctx, d)
		if err != nil {
			return weekGrid{}, err
		}
		grid.Habits[i] = len(hc.Completed)

		if entry, ok := state.PointsEntry(d); ok {
			grid.Points[i] = entry.Points
		}
	}
	return grid, nil
}

func (g weekGrid) empty() bool {
	return len(g.Completed) == 0 && sum(g.Habits) == 0 && sum(g.Points) == 0
}

func (g weekGrid) render(w io.Writer) {
	const labelWidth = 16
	dayColumnWidth := 5
	totalColumnWidth := 7

	// Print header
	fmt.Fprintf(w, "%-*s", labelWidth, "Pillar")
	for _, name := range dayNames {
		fmt.Fprintf(w, "  %*s", dayColumnWidth-2, name)
	}
	fmt.Fprintf(w, "  %*s\n", totalColumnWidth-2, "Total")

	// Print separator
	fmt.Fprint(w, strings.Repeat("-", labelWidth))
	for range dayNames {
		fmt.Fprint(w, "  "+strings.Repeat("-", dayColumnWidth-2))
	}
	fmt.Fprintln(w, "  "+strings.Repeat("-", totalColumnWidth-2))

	row := func(label string, counts [7]int) {
		// emoji are wider than one cell, so pad by display width
		fmt.Fprint(w, label+strings.Repeat(" ", max(0, labelWidth-lipgloss.Width(label))))
		for _, n := range counts {
			if n == 0 {
				fmt.Fprintf(w, "  %*s", dayColumnWidth-2, "-")
			} else {
				fmt.Fprintf(w, "  %*d", dayColumnWidth-2, n)
			}
		}
		fmt.Fprintf(w, "  %*d\n", totalColumnWidth-2, sum(counts))
	}

	for _, p := range models.Pillars {
		counts, ok := g.Completed[p]
		if !ok {
			continue
		}
		info := p.Info()
		row(info.Emoji+" "+info.Name, counts)
	}
	row("Habits", g.Habits)
	row("Points", g.Points)
}

func sum(counts [7]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
