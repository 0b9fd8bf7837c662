package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/chaeyoungson/goalgirls/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
	order   []string
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	byID := make(map[string]match.Match, len(matches))
	order := make([]string, 0, len(matches))
	for _, item := range matches {
		byID[item.ID] = item
		order = append(order, item.ID)
	}

	return &MatchRepository{matches: byID, order: order}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.matches[id])
	}
	return out, nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, season int) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.order))
	for _, id := range r.order {
		if item := r.matches[id]; item.Season == season {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[matchID]
	return item, ok, nil
}

func (r *MatchRepository) UpdateScore(_ context.Context, matchID string, patch match.ScorePatch) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, fmt.Errorf("match %s does not exist", matchID)
	}

	if patch.HomeScore != nil {
		item.HomeScore = *patch.HomeScore
	}
	if patch.AwayScore != nil {
		item.AwayScore = *patch.AwayScore
	}
	if patch.PenaltyHomeScore != nil {
		v := *patch.PenaltyHomeScore
		item.PenaltyHomeScore = &v
	}
	if patch.PenaltyAwayScore != nil {
		v := *patch.PenaltyAwayScore
		item.PenaltyAwayScore = &v
	}
	if patch.Status != nil {
		item.Status = *patch.Status
	}

	r.matches[matchID] = item
	return item, nil
}
