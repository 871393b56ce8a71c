package gamify

import (
	"errors"
	"sort"
	"time"

	"github.com/balkashynov/ceoplan/internal/models"
)

var (
	ErrInsufficientPoints = errors.New("not enough points")
	ErrMilestoneLocked    = errors.New("milestone not reached yet")
	ErrAlreadyClaimed     = errors.New("milestone already claimed")
)

// ClaimedIDs returns the reward ids present in the claim history
func ClaimedIDs(state models.GameState) []string {
	ids := make([]string, 0, len(state.ClaimedRewards))
	for _, c := range state.ClaimedRewards {
		ids = append(ids, c.RewardID)
	}
	return ids
}

func hasClaimed(state models.GameState, rewardID string) bool {
	for _, c := range state.ClaimedRewards {
		if c.RewardID == rewardID {
			return true
		}
	}
	return false
}

// CanClaim returns nil when the reward can be claimed, or the reason it can't
func CanClaim(state models.GameState, reward models.Reward) error {
	if reward.IsMilestone {
		if state.LifetimePoints < reward.PointCost {
			return ErrMilestoneLocked
		}
		if hasClaimed(state, reward.ID) {
			return ErrAlreadyClaimed
		}
		return nil
	}
	if state.CurrentPoints < reward.PointCost {
		return ErrInsufficientPoints
	}
	return nil
}

// ClaimReward returns the state after claiming reward at time now. The second
// return value is false, and the state returned unchanged, when the claim is
// not allowed.
func ClaimReward(state models.GameState, reward models.Reward, now time.Time) (models.GameState, bool) {
	if CanClaim(state, reward) != nil {
		return state, false
	}

	next := state.Clone()
	if !reward.IsMilestone {
		next.CurrentPoints -= reward.PointCost
	}
	next.ClaimedRewards = append(next.ClaimedRewards, models.ClaimedReward{
		RewardID:   reward.ID,
		RewardName: reward.Name,
		Emoji:      reward.Emoji,
		PointCost:  reward.PointCost,
		ClaimedAt:  now.UTC().Format(time.RFC3339Nano),
	})
	return next, true
}

// NextReward returns the cheapest non-milestone reward still out of reach, or
// the most expensive one when everything is affordable. Nil for an empty
// catalog.
func NextReward(currentPoints int, rewards []models.Reward) *models.Reward {
	var spendable []models.Reward
	for _, r := range rewards {
		if !r.IsMilestone {
			spendable = append(spendable, r)
		}
	}
	if len(spendable) == 0 {
		return nil
	}
	sort.SliceStable(spendable, func(i, j int) bool {
		return spendable[i].PointCost < spendable[j].PointCost
	})
	for _, r := range spendable {
		if r.PointCost > currentPoints {
			r := r
			return &r
		}
	}
	last := spendable[len(spendable)-1]
	return &last
}

// UnlockedMilestones returns, in catalog order, the milestones reached by
// lifetimePoints that have not been claimed yet.
func UnlockedMilestones(lifetimePoints int, rewards []models.Reward, claimedIDs []string) []models.Reward {
	claimed := make(map[string]bool, len(claimedIDs))
	for _, id := range claimedIDs {
		claimed[id] = true
	}
	var out []models.Reward
	for _, r := range rewards {
		if r.IsMilestone && lifetimePoints >= r.PointCost && !claimed[r.ID] {
			out = append(out, r)
		}
	}
	return out
}
