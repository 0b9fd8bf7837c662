package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/chaeyoungson/goalgirls/internal/domain/match"
	"github.com/chaeyoungson/goalgirls/internal/domain/matchevent"
)

// MatchDetail is the full public read view of one fixture: the match row
// plus every stored event collection.
type MatchDetail struct {
	Match         match.Match
	Goals         []matchevent.Goal
	Assists       []matchevent.Assist
	Lineup        []matchevent.LineupEntry
	Substitutions []matchevent.Substitution
	Penalties     []matchevent.PenaltyAttempt
	Coaches       []matchevent.CoachAssignment
}

type MatchService struct {
	matchRepo match.Repository
	eventRepo matchevent.Repository
}

func NewMatchService(matchRepo match.Repository, eventRepo matchevent.Repository) *MatchService {
	return &MatchService{
		matchRepo: matchRepo,
		eventRepo: eventRepo,
	}
}

func (s *MatchService) List(ctx context.Context) ([]match.Match, error) {
	items, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

func (s *MatchService) ListBySeason(ctx context.Context, season int) ([]match.Match, error) {
	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}

	items, err := s.matchRepo.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("list matches by season: %w", err)
	}
	return items, nil
}

func (s *MatchService) GetDetail(ctx context.Context, matchID string) (MatchDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetDetail")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return MatchDetail{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	stored, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return MatchDetail{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return MatchDetail{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	detail := MatchDetail{Match: stored}
	if detail.Goals, err = s.eventRepo.GoalsByMatch(ctx, matchID); err != nil {
		return MatchDetail{}, fmt.Errorf("list goals: %w", err)
	}
	if detail.Assists, err = s.eventRepo.AssistsByMatch(ctx, matchID); err != nil {
		return MatchDetail{}, fmt.Errorf("list assists: %w", err)
	}
	if detail.Lineup, err = s.eventRepo.LineupByMatch(ctx, matchID); err != nil {
		return MatchDetail{}, fmt.Errorf("list lineup: %w", err)
	}
	if detail.Substitutions, err = s.eventRepo.SubstitutionsByMatch(ctx, matchID); err != nil {
		return MatchDetail{}, fmt.Errorf("list substitutions: %w", err)
	}
	if detail.Penalties, err = s.eventRepo.PenaltiesByMatch(ctx, matchID); err != nil {
		return MatchDetail{}, fmt.Errorf("list penalties: %w", err)
	}
	if detail.Coaches, err = s.eventRepo.CoachesByMatch(ctx, matchID); err != nil {
		return MatchDetail{}, fmt.Errorf("list coach assignments: %w", err)
	}

	return detail, nil
}
