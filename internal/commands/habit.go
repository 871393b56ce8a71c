package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/ceoplan/internal/gamify"
	"github.com/balkashynov/ceoplan/internal/models"
	"github.com/balkashynov/ceoplan/internal/parser"
	"github.com/balkashynov/ceoplan/internal/planner"
)

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage recurring habits",
	}
	cmd.AddCommand(newHabitListCmd(), newHabitAddCmd(), newHabitRemoveCmd(), newHabitMarkCmd(true), newHabitMarkCmd(false))
	return cmd
}

func newHabitListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List habits and the day's completions",
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			state := a.game.State()
			if len(state.Habits) == 0 {
				a.printf("No habits yet. Use 'ceoplan habit add \"name\" --days mon-fri' to add one.\n")
				return nil
			}
			hc, err := a.planner.LoadHabitCompletions(cmd.Context(), a.date)
			if err != nil {
				return err
			}

			all, _ := cmd.Flags().GetBool("all")
			weekday := int(a.day().Weekday())

			a.printf("🔁 Habits for %s\n", a.dayLabel())
			shown := 0
			for i, h := range state.Habits {
				scheduled := h.ScheduledOn(weekday)
				if !scheduled && !all {
					continue
				}
				shown++
				mark := "[ ]"
				switch {
				case hc.Has(h.ID):
					mark = "[✓]"
				case !scheduled:
					mark = " - "
				}
				a.printf("%-3d %s %s %-20s +%-3d %s\n", i+1, mark, h.Emoji, h.Name, h.Points, parser.FormatWeekdays(h.Days))
			}
			if shown == 0 {
				a.printf("Nothing scheduled. Use --all to see every habit.\n")
			}

			done, total := gamify.TallyHabits(state.Habits, hc.Completed, weekday)
			a.printf("\n%d/%d done\n", done, total)
			return nil
		}),
	}
	cmd.Flags().BoolP("all", "a", false, "Include habits not scheduled on this day")
	return cmd
}

func newHabitAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a habit to the catalog",
		Long: `Add a habit scheduled on some weekdays.

Examples:
  ceoplan habit add "Exercise" --emoji 🏃 --days mon-fri
  ceoplan habit add "Reading" --days all --points 10`,
		Args: cobra.MinimumNArgs(1),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			emoji, _ := cmd.Flags().GetString("emoji")
			points, _ := cmd.Flags().GetInt("points")
			daysInput, _ := cmd.Flags().GetString("days")
			days, err := parser.ParseWeekdays(daysInput)
			if err != nil {
				return err
			}

			habit, err := a.game.AddHabit(strings.Join(args, " "), emoji, points, days)
			if err != nil {
				return err
			}
			a.printf("✅ Added habit %s %s (+%d, %s)\n", habit.Emoji, habit.Name, habit.Points, parser.FormatWeekdays(habit.Days))
			a.rescore(cmd.Context())
			return nil
		}),
	}
	cmd.Flags().StringP("emoji", "e", "✅", "Emoji shown next to the habit")
	cmd.Flags().IntP("points", "p", gamify.HabitPoints, "Points per completion")
	cmd.Flags().StringP("days", "d", "all", "Weekdays: all, weekdays, weekend, mon-fri, 1,3,5")
	return cmd
}

func newHabitRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [habit]",
		Aliases: []string{"remove"},
		Short:   "Remove a habit from the catalog",
		Args:    cobra.ExactArgs(1),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			habit, err := resolveHabit(a, args[0])
			if err != nil {
				return err
			}
			if !a.game.RemoveHabit(habit.ID) {
				return fmt.Errorf("%w: %s", planner.ErrHabitNotFound, args[0])
			}
			a.printf("🗑️  Removed habit %s %s\n", habit.Emoji, habit.Name)
			a.rescore(cmd.Context())
			return nil
		}),
	}
}

// newHabitMarkCmd builds "habit done" and "habit undone"
func newHabitMarkCmd(done bool) *cobra.Command {
	use, short := "done [habit]", "Mark a habit as done for the day"
	if !done {
		use, short = "undone [habit]", "Clear a habit's completion for the day"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			habit, err := resolveHabit(a, args[0])
			if err != nil {
				return err
			}
			if _, err := a.planner.SetHabitCompleted(cmd.Context(), a.date, habit.ID, done); err != nil {
				return err
			}
			if done {
				a.printf("✅ %s %s done\n", habit.Emoji, habit.Name)
				if !habit.ScheduledOn(int(a.day().Weekday())) {
					a.printf("Note: %s is not scheduled on this day and earns no points.\n", habit.Name)
				}
			} else {
				a.printf("↩️  %s %s cleared\n", habit.Emoji, habit.Name)
			}
			a.rescore(cmd.Context())
			return nil
		}),
	}
}

func resolveHabit(a *app, ref string) (models.Habit, error) {
	habits := a.game.State().Habits
	i, err := planner.ResolveHabit(habits, ref)
	if err != nil {
		return models.Habit{}, err
	}
	return habits[i], nil
}
