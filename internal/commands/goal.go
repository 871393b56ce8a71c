package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/ceoplan/internal/models"
	"github.com/balkashynov/ceoplan/internal/parser"
	"github.com/balkashynov/ceoplan/internal/planner"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage weekly goals",
		Long: `Manage the goals of an ISO week. The week defaults to the one containing
the working date; use --offset to move by whole weeks or --week to name one.`,
	}
	cmd.PersistentFlags().IntP("offset", "o", 0, "Weeks relative to the working date (-1 = last week)")
	cmd.PersistentFlags().StringP("week", "w", "", "ISO week, e.g. 2026-W07")
	cmd.AddCommand(newGoalListCmd(), newGoalAddCmd(), newGoalRemoveCmd(), newGoalEditCmd())
	return cmd
}

// weekKey resolves --week and --offset against the working date
func (a *app) weekKey(cmd *cobra.Command) (string, error) {
	if week, _ := cmd.Flags().GetString("week"); week != "" {
		label, err := parser.NormalizeWeek(week)
		if err != nil {
			return "", err
		}
		return planner.WeekPrefix + label, nil
	}
	offset, _ := cmd.Flags().GetInt("offset")
	return planner.WeekKey(a.day(), offset), nil
}

func newGoalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the week's goals with linked task progress",
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			key, err := a.weekKey(cmd)
			if err != nil {
				return err
			}
			plan, err := a.planner.LoadWeekPlan(cmd.Context(), key)
			if err != nil {
				return err
			}

			a.printf("🎯 Goals for %s\n", planner.WeekLabel(key))
			if len(plan.Goals) == 0 {
				a.printf("No goals yet. Use 'ceoplan goal add \"goal\"' to add one.\n")
				return nil
			}

			progress, err := goalProgress(cmd.Context(), a.planner, key)
			if err != nil {
				return err
			}
			for i, g := range plan.Goals {
				info := g.Pillar.Info()
				p := progress[g.ID]
				a.printf("%-3d %s %-40s %d/%d tasks\n", i+1, info.Emoji, g.Text, p[0], p[1])
			}
			return nil
		}),
	}
}

// goalProgress counts completed and total tasks linked to each goal over
// the days of the week
func goalProgress(ctx context.Context, svc *planner.Service, weekKey string) (map[string][2]int, error) {
	dates, err := planner.WeekDates(planner.WeekLabel(weekKey))
	if err != nil {
		return nil, err
	}
	progress := map[string][2]int{}
	for _, d := range dates {
		plan, err := svc.LoadDailyPlan(ctx, d)
		if err != nil {
			return nil, err
		}
		for _, t := range plan.Tasks {
			if t.GoalID == "" {
				continue
			}
			p := progress[t.GoalID]
			if t.Completed {
				p[0]++
			}
			p[1]++
			progress[t.GoalID] = p
		}
	}
	return progress, nil
}

func newGoalAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [goal]",
		Short: "Add a goal to the week",
		Args:  cobra.MinimumNArgs(1),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			key, err := a.weekKey(cmd)
			if err != nil {
				return err
			}
			pillar := models.PillarSales
			if p, _ := cmd.Flags().GetString("pillar"); p != "" {
				if pillar, err = parsePillarFlag(p); err != nil {
					return err
				}
			}

			goal, err := a.planner.AddGoal(cmd.Context(), key, strings.Join(args, " "), pillar)
			if err != nil {
				return err
			}
			plan, err := a.planner.LoadWeekPlan(cmd.Context(), key)
			if err != nil {
				return err
			}
			a.printf("✅ Added goal #%d for %s: %s %s\n", len(plan.Goals), planner.WeekLabel(key), goal.Pillar.Info().Emoji, goal.Text)
			return nil
		}),
	}
	cmd.Flags().StringP("pillar", "p", "", "Pillar: sales|automation|strategy|frog|life (default sales)")
	return cmd
}

func newGoalRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [goal]",
		Aliases: []string{"remove"},
		Short:   "Remove a goal from the week",
		Long:    "Remove a goal. Tasks linked to it keep their link but no longer show a goal.",
		Args:    cobra.ExactArgs(1),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			key, err := a.weekKey(cmd)
			if err != nil {
				return err
			}
			goal, err := a.planner.RemoveGoal(cmd.Context(), key, args[0])
			if err != nil {
				return err
			}
			a.printf("🗑️  Removed goal: %s\n", goal.Text)
			return nil
		}),
	}
}

func newGoalEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [goal] [new text]",
		Short: "Rename a goal",
		Args:  cobra.MinimumNArgs(2),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			key, err := a.weekKey(cmd)
			if err != nil {
				return err
			}
			goal, err := a.planner.UpdateGoalText(cmd.Context(), key, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			a.printf("✏️  Updated goal: %s\n", goal.Text)
			return nil
		}),
	}
}
