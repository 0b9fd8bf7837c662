package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/chaeyoungson/goalgirls/internal/domain/player"
	"github.com/chaeyoungson/goalgirls/internal/domain/team"
)

// TeamProfile pairs a team with its current roster.
type TeamProfile struct {
	Team   team.Team
	Roster []player.Player
}

type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
}

func NewTeamService(teamRepo team.Repository, playerRepo player.Repository) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
	}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) GetProfile(ctx context.Context, teamID string) (TeamProfile, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamProfile{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	stored, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamProfile{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return TeamProfile{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	roster, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return TeamProfile{}, fmt.Errorf("list players by team: %w", err)
	}

	return TeamProfile{Team: stored, Roster: roster}, nil
}
