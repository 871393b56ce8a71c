package planner

import (
	"context"
	"strings"

	"github.com/balkashynov/ceoplan/internal/gamify"
	"github.com/balkashynov/ceoplan/internal/logger"
	"github.com/balkashynov/ceoplan/internal/migrate"
	"github.com/balkashynov/ceoplan/internal/models"
)

// LoadGameState returns the stored game state, or a fresh one with the
// default catalogs
func (s *Service) LoadGameState(ctx context.Context) (models.GameState, error) {
	raw, ok, err := s.getRaw(ctx, GameStateKey)
	if err != nil {
		return gamify.NewGameState(), err
	}
	if !ok {
		return gamify.NewGameState(), nil
	}

	state, res := migrate.DecodeGameState(raw)
	switch res {
	case migrate.Absent:
		logger.Debug("discarding unreadable record %s", GameStateKey)
	case migrate.Migrated:
		if err := s.SaveGameState(ctx, state); err != nil {
			return state, err
		}
		logger.Info("filled missing catalogs in %s", GameStateKey)
	}
	return state, nil
}

// SaveGameState writes the singleton game state
func (s *Service) SaveGameState(ctx context.Context, state models.GameState) error {
	return s.putJSON(ctx, GameStateKey, state)
}

// ResolveReward finds a reward by 1-based position, id prefix or name
func ResolveReward(rewards []models.Reward, ref string) (int, error) {
	for i, r := range rewards {
		if strings.EqualFold(r.Name, strings.TrimSpace(ref)) {
			return i, nil
		}
	}
	for i, r := range rewards {
		if r.ID == ref {
			return i, nil
		}
	}
	return resolveIndex(ref, len(rewards), func(i int) string { return rewards[i].ID }, ErrRewardNotFound)
}
