package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/ceoplan/internal/gamify"
	"github.com/balkashynov/ceoplan/internal/models"
	"github.com/balkashynov/ceoplan/internal/planner"
)

func newRewardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reward",
		Short: "Spend points on rewards and track milestones",
	}
	cmd.AddCommand(newRewardListCmd(), newRewardAddCmd(), newRewardRemoveCmd(), newRewardClaimCmd(), newRewardHistoryCmd())
	return cmd
}

func newRewardListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List rewards and milestones",
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			state := a.game.State()
			a.printf("⭐ Balance: %d pts (lifetime %d)\n\n", state.CurrentPoints, state.LifetimePoints)
			if len(state.Rewards) == 0 {
				a.printf("No rewards yet. Use 'ceoplan reward add \"name\" --cost 100' to add one.\n")
				return nil
			}

			a.printf("REWARDS\n")
			for i, r := range state.Rewards {
				if r.IsMilestone {
					continue
				}
				status := ""
				if state.CurrentPoints >= r.PointCost {
					status = "✓ affordable"
				}
				a.printf("%-3d %s %-24s %6d pts  %s\n", i+1, r.Emoji, r.Name, r.PointCost, status)
			}

			a.printf("\nMILESTONES\n")
			for i, r := range state.Rewards {
				if !r.IsMilestone {
					continue
				}
				status := fmt.Sprintf("%d to go", r.PointCost-state.LifetimePoints)
				switch {
				case gamify.CanClaim(state, r) == nil:
					status = "🔓 unlocked, claim it!"
				case errors.Is(gamify.CanClaim(state, r), gamify.ErrAlreadyClaimed):
					status = "✓ claimed"
				}
				a.printf("%-3d %s %-24s %6d XP   %s\n", i+1, r.Emoji, r.Name, r.PointCost, status)
			}
			return nil
		}),
	}
}

func newRewardAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a reward to the catalog",
		Long: `Add a reward. Regular rewards spend points; milestones unlock once
lifetime points reach the cost and never spend the balance.

Examples:
  ceoplan reward add "Concert tickets" --emoji 🎸 --cost 1500
  ceoplan reward add "Quarter done" --cost 5000 --milestone`,
		Args: cobra.MinimumNArgs(1),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			emoji, _ := cmd.Flags().GetString("emoji")
			cost, _ := cmd.Flags().GetInt("cost")
			milestone, _ := cmd.Flags().GetBool("milestone")

			reward, err := a.game.AddReward(strings.Join(args, " "), emoji, cost, milestone)
			if err != nil {
				return err
			}
			kind := "reward"
			if reward.IsMilestone {
				kind = "milestone"
			}
			a.printf("✅ Added %s %s %s (%d pts)\n", kind, reward.Emoji, reward.Name, reward.PointCost)
			return nil
		}),
	}
	cmd.Flags().StringP("emoji", "e", "🎁", "Emoji shown next to the reward")
	cmd.Flags().IntP("cost", "c", 100, "Point cost (lifetime points for milestones)")
	cmd.Flags().BoolP("milestone", "m", false, "Unlock by lifetime points instead of spending")
	return cmd
}

func newRewardRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [reward]",
		Aliases: []string{"remove"},
		Short:   "Remove a reward from the catalog",
		Long:    "Remove a reward. Past claims stay in the history.",
		Args:    cobra.MinimumNArgs(1),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			reward, err := resolveReward(a, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !a.game.RemoveReward(reward.ID) {
				return fmt.Errorf("%w: %s", planner.ErrRewardNotFound, reward.ID)
			}
			a.printf("🗑️  Removed reward %s %s\n", reward.Emoji, reward.Name)
			return nil
		}),
	}
}

func newRewardClaimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claim [reward]",
		Short: "Claim a reward or a reached milestone",
		Args:  cobra.MinimumNArgs(1),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			reward, err := resolveReward(a, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if _, err := a.game.ClaimReward(reward.ID); err != nil {
				state := a.game.State()
				switch {
				case errors.Is(err, gamify.ErrInsufficientPoints):
					return fmt.Errorf("%s costs %d pts, you have %d", reward.Name, reward.PointCost, state.CurrentPoints)
				case errors.Is(err, gamify.ErrMilestoneLocked):
					return fmt.Errorf("%s unlocks at %d lifetime pts, you have %d", reward.Name, reward.PointCost, state.LifetimePoints)
				}
				return err
			}

			if reward.IsMilestone {
				a.printf("🏅 Milestone claimed: %s %s\n", reward.Emoji, reward.Name)
			} else {
				a.printf("🎉 Enjoy your %s %s! Balance: %d pts\n", reward.Emoji, reward.Name, a.game.State().CurrentPoints)
			}
			return nil
		}),
	}
}

func newRewardHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show claimed rewards, newest first",
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			claimed := a.game.State().ClaimedRewards
			if len(claimed) == 0 {
				a.printf("Nothing claimed yet.\n")
				return nil
			}
			limit, _ := cmd.Flags().GetInt("limit")

			shown := 0
			for i := len(claimed) - 1; i >= 0; i-- {
				if limit > 0 && shown >= limit {
					break
				}
				c := claimed[i]
				a.printf("%-17s %s %-24s %6d pts\n", formatClaimedAt(c.ClaimedAt), c.Emoji, c.RewardName, c.PointCost)
				shown++
			}
			return nil
		}),
	}
	cmd.Flags().IntP("limit", "n", 20, "Maximum entries to show (0 = all)")
	return cmd
}

func formatClaimedAt(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("02/01/2006 15:04")
}

func resolveReward(a *app, ref string) (models.Reward, error) {
	rewards := a.game.State().Rewards
	i, err := planner.ResolveReward(rewards, ref)
	if err != nil {
		return models.Reward{}, err
	}
	return rewards[i], nil
}
