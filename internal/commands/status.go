package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/ceoplan/internal/gamify"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, points, streak and today's score",
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			state := a.game.State()
			level := a.game.LevelInfo()

			a.printf("🏆 Level %d · %s\n", level.Level, level.Name)
			a.printf("   %s %d/%d XP\n", textBar(level.Progress, 20), level.CurrentXP, level.RequiredXP)
			a.printf("⭐ Balance: %d pts (lifetime %d)\n", state.CurrentPoints, state.LifetimePoints)
			if state.CurrentStreak > 0 {
				a.printf("🔥 Streak: %d day(s), x%.1f multiplier\n", state.CurrentStreak, gamify.StreakMultiplier(state.CurrentStreak))
			} else {
				a.printf("🔥 No active streak\n")
			}

			plan, err := a.planner.LoadDailyPlan(cmd.Context(), a.date)
			if err != nil {
				return err
			}
			hc, err := a.planner.LoadHabitCompletions(cmd.Context(), a.date)
			if err != nil {
				return err
			}
			habitsDone, habitsTotal := gamify.TallyHabits(state.Habits, hc.Completed, int(a.day().Weekday()))
			a.printf("\n📋 %s: %d/%d tasks, %d/%d habits", a.dayLabel(), plan.CompletedCount(), len(plan.Tasks), habitsDone, habitsTotal)
			if entry, ok := state.PointsEntry(a.date); ok {
				a.printf(", +%d pts", entry.Points)
			}
			a.printf("\n")

			if a.isToday() && len(plan.Tasks) > 0 {
				b := gamify.CalculateDailyPoints(plan.Tasks, state.CurrentStreak, habitsDone, habitsTotal)
				a.printf("   tasks %d + MIT %d + frogs %d + habits %d + bonus %d, x%.1f = %d\n",
					b.TaskPoints, b.MITBonus, b.FrogBonus, b.HabitPoints, b.AllCompleteBonus, b.StreakMultiplier, b.Total)
			}

			if next := a.game.NextReward(); next != nil {
				if next.PointCost > state.CurrentPoints {
					a.printf("\n🎁 Next reward: %s %s, %d pts to go\n", next.Emoji, next.Name, next.PointCost-state.CurrentPoints)
				} else {
					a.printf("\n🎁 You can afford %s %s. Claim it with 'ceoplan reward claim'\n", next.Emoji, next.Name)
				}
			}
			for _, m := range a.game.UnlockedMilestones() {
				a.printf("🔓 Milestone unlocked: %s %s\n", m.Emoji, m.Name)
			}
			return nil
		}),
	}
}

// textBar is the plain-text progress bar used outside the TUI
func textBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress*float64(width) + 0.5)
	return fmt.Sprintf("[%s%s]", strings.Repeat("#", filled), strings.Repeat(".", width-filled))
}
