package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/ceoplan/internal/models"
	"github.com/balkashynov/ceoplan/internal/parser"
	"github.com/balkashynov/ceoplan/internal/planner"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [task description]",
		Short: "Add a task to the day's plan",
		Long: `Add a task with optional metadata.

Smart parsing: ceoplan add "Call Acme #sales !mit goal:2"

Smart parsing syntax:
  #pillar     - Pillar: sales, automation, strategy, frog, life
                (aliases: #project, #work, #personal, #auto)
  !mit or *   - Mark as most important task
  goal:N      - Link to this week's goal N (or a goal id)

Flags take precedence over the parsed values.`,
		Args: cobra.MinimumNArgs(1),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			parsed := parser.ParseTitle(strings.Join(args, " "))
			if len(parsed.Errors) > 0 {
				return errors.New(strings.Join(parsed.Errors, "; "))
			}

			req := planner.NewTask{
				Text:   parsed.Text,
				Pillar: parsed.Pillar,
				IsMIT:  parsed.IsMIT,
			}
			if p, _ := cmd.Flags().GetString("pillar"); p != "" {
				pillar, err := parsePillarFlag(p)
				if err != nil {
					return err
				}
				req.Pillar = pillar
			}
			if mit, _ := cmd.Flags().GetBool("mit"); mit {
				req.IsMIT = true
			}
			goalRef := parsed.GoalRef
			if g, _ := cmd.Flags().GetString("goal"); g != "" {
				goalRef = g
			}
			if goalRef != "" {
				goal, err := a.resolveGoal(cmd, goalRef)
				if err != nil {
					return err
				}
				req.GoalID = goal.ID
			}

			task, err := a.planner.AddTask(cmd.Context(), a.date, req)
			if err != nil {
				return err
			}
			plan, err := a.planner.LoadDailyPlan(cmd.Context(), a.date)
			if err != nil {
				return err
			}

			info := task.Pillar.Info()
			a.printf("✅ Added task #%d: %s %s\n", len(plan.Tasks), info.Emoji, task.Text)
			if task.IsMIT {
				a.printf("★ Marked as most important\n")
			}
			if task.GoalID != "" {
				a.printf("🎯 Linked to goal %s\n", shortID(task.GoalID))
			}
			a.rescore(cmd.Context())
			return nil
		}),
	}
	cmd.Flags().StringP("pillar", "p", "", "Pillar: sales|automation|strategy|frog|life")
	cmd.Flags().Bool("mit", false, "Mark as most important task")
	cmd.Flags().StringP("goal", "g", "", "Weekly goal number or id")
	return cmd
}

func parsePillarFlag(input string) (models.Pillar, error) {
	pillar, ok := models.ParsePillar(input)
	if !ok {
		return "", fmt.Errorf("unknown pillar %q (use sales, automation, strategy, frog or life)", input)
	}
	return pillar, nil
}

// resolveGoal looks a goal up in the week containing the working date
func (a *app) resolveGoal(cmd *cobra.Command, ref string) (models.Goal, error) {
	week, err := a.planner.LoadWeekPlan(cmd.Context(), planner.WeekKey(a.day(), 0))
	if err != nil {
		return models.Goal{}, err
	}
	i, err := planner.ResolveGoal(week, ref)
	if err != nil {
		return models.Goal{}, err
	}
	return week.Goals[i], nil
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the day's tasks",
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			plan, err := a.planner.LoadDailyPlan(cmd.Context(), a.date)
			if err != nil {
				return err
			}

			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}

			a.printf("📋 %s\n", a.dayLabel())
			if plan.Energy != "" {
				a.printf("Energy: %s\n", plan.Energy)
			}
			if len(plan.Tasks) == 0 {
				a.printf("No tasks planned. Use 'ceoplan add \"task description\"' to add one.\n")
				return nil
			}

			// Print table header
			a.printf("%-4s %-4s %-14s %s\n", "#", "DONE", "PILLAR", "TASK")
			a.printf("%s\n", strings.Repeat("-", 60))
			for i, task := range plan.Tasks {
				a.printf("%s\n", formatTaskRow(i+1, task))
			}
			a.printf("\n%d/%d done\n", plan.CompletedCount(), len(plan.Tasks))
			return nil
		}),
	}
	cmd.Flags().Bool("json", false, "Output the plan as JSON")
	return cmd
}

func formatTaskRow(pos int, task models.Task) string {
	return fmt.Sprintf("%-4d %s", pos, formatTask(task))
}

func formatTask(task models.Task) string {
	check := "[ ]"
	if task.Completed {
		check = "[✓]"
	}
	text := task.Text
	if task.IsMIT {
		text = "★ " + text
	}
	info := task.Pillar.Info()
	return fmt.Sprintf("%-4s %-14s %s", check, info.Emoji+" "+info.Name, text)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [task]",
		Short: "Mark a task as completed",
		Long:  "Mark a task as completed. The task is given by its number in 'ceoplan ls' or an id prefix.",
		Args:  cobra.ExactArgs(1),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			task, err := a.planner.SetTaskCompleted(cmd.Context(), a.date, args[0], true)
			if err != nil {
				return err
			}
			a.printf("✅ Marked as done: %s\n", task.Text)
			a.rescore(cmd.Context())
			return nil
		}),
	}
}

func newUndoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undone [task]",
		Short: "Mark a completed task back to open",
		Args:  cobra.ExactArgs(1),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			task, err := a.planner.SetTaskCompleted(cmd.Context(), a.date, args[0], false)
			if err != nil {
				return err
			}
			a.printf("↩️  Marked as open: %s\n", task.Text)
			a.rescore(cmd.Context())
			return nil
		}),
	}
}

func newMITCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mit [task]",
		Short: "Toggle the most-important flag of a task",
		Args:  cobra.ExactArgs(1),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			task, err := a.planner.ToggleMIT(cmd.Context(), a.date, args[0])
			if err != nil {
				return err
			}
			if task.IsMIT {
				a.printf("★ Most important: %s\n", task.Text)
			} else {
				a.printf("☆ No longer most important: %s\n", task.Text)
			}
			a.rescore(cmd.Context())
			return nil
		}),
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [task]",
		Aliases: []string{"remove"},
		Short:   "Remove a task from the day's plan",
		Args:    cobra.ExactArgs(1),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			task, err := a.planner.RemoveTask(cmd.Context(), a.date, args[0])
			if err != nil {
				return err
			}
			a.printf("🗑️  Removed: %s\n", task.Text)
			a.rescore(cmd.Context())
			return nil
		}),
	}
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [task] [new text]",
		Short: "Edit a task's text, pillar or goal",
		Long: `Edit a task. Only the given fields change.

Examples:
  ceoplan edit 2 "Call Acme about renewal"
  ceoplan edit 2 --pillar frog
  ceoplan edit 2 --goal 1
  ceoplan edit 2 --goal none`,
		Args: cobra.RangeArgs(1, 2),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			var upd planner.TaskUpdate
			if len(args) == 2 {
				text := args[1]
				upd.Text = &text
			}
			if t, _ := cmd.Flags().GetString("text"); t != "" {
				upd.Text = &t
			}
			if p, _ := cmd.Flags().GetString("pillar"); p != "" {
				pillar, err := parsePillarFlag(p)
				if err != nil {
					return err
				}
				upd.Pillar = &pillar
			}
			if g, _ := cmd.Flags().GetString("goal"); g != "" {
				goalID := ""
				if g != "none" {
					goal, err := a.resolveGoal(cmd, g)
					if err != nil {
						return err
					}
					goalID = goal.ID
				}
				upd.GoalID = &goalID
			}
			if upd.Text == nil && upd.Pillar == nil && upd.GoalID == nil {
				return fmt.Errorf("nothing to change (give new text, --pillar or --goal)")
			}

			task, err := a.planner.EditTask(cmd.Context(), a.date, args[0], upd)
			if err != nil {
				return err
			}
			a.printf("✏️  Updated: %s\n", formatTask(task))
			a.rescore(cmd.Context())
			return nil
		}),
	}
	cmd.Flags().String("text", "", "New task text")
	cmd.Flags().StringP("pillar", "p", "", "New pillar")
	cmd.Flags().StringP("goal", "g", "", "Weekly goal number or id, or 'none' to unlink")
	return cmd
}

func newEnergyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "energy [high|normal|low]",
		Short: "Show or set the day's energy level",
		Args:  cobra.MaximumNArgs(1),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if len(args) == 0 {
				plan, err := a.planner.LoadDailyPlan(cmd.Context(), a.date)
				if err != nil {
					return err
				}
				if plan.Energy == "" {
					a.printf("Energy not set for %s\n", a.dayLabel())
				} else {
					a.printf("Energy for %s: %s\n", a.dayLabel(), plan.Energy)
				}
				return nil
			}

			energy := models.Energy(strings.ToLower(args[0]))
			if err := a.planner.SetEnergy(cmd.Context(), a.date, energy); err != nil {
				return err
			}
			a.printf("⚡ Energy set to %s\n", energy)
			return nil
		}),
	}
}
