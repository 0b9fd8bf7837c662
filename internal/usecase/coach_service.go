package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/chaeyoungson/goalgirls/internal/domain/coach"
	"github.com/chaeyoungson/goalgirls/internal/domain/match"
	"github.com/chaeyoungson/goalgirls/internal/domain/matchevent"
)

type AssignCoachInput struct {
	TeamID  string
	CoachID string
	Role    string
}

// CoachService persists coach assignments through their own create/delete
// path. Assignments reference nothing in the other event categories, so
// they bypass the ordered submission sequence.
type CoachService struct {
	matchRepo match.Repository
	coachRepo coach.Repository
	eventRepo matchevent.Repository
}

func NewCoachService(
	matchRepo match.Repository,
	coachRepo coach.Repository,
	eventRepo matchevent.Repository,
) *CoachService {
	return &CoachService{
		matchRepo: matchRepo,
		coachRepo: coachRepo,
		eventRepo: eventRepo,
	}
}

func (s *CoachService) Assign(ctx context.Context, matchID string, input AssignCoachInput) (matchevent.CoachAssignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CoachService.Assign")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.CoachID = strings.TrimSpace(input.CoachID)
	input.Role = strings.ToUpper(strings.TrimSpace(input.Role))

	if matchID == "" || input.TeamID == "" || input.CoachID == "" {
		return matchevent.CoachAssignment{}, fmt.Errorf("%w: match_id, team_id and coach_id are required", ErrInvalidInput)
	}
	switch input.Role {
	case coach.RoleHead, coach.RoleAssistant, coach.RoleKeeper:
	default:
		return matchevent.CoachAssignment{}, fmt.Errorf("%w: unknown coach role %q", ErrInvalidInput, input.Role)
	}

	if err := s.requireMatch(ctx, matchID); err != nil {
		return matchevent.CoachAssignment{}, err
	}
	_, exists, err := s.coachRepo.GetByID(ctx, input.CoachID)
	if err != nil {
		return matchevent.CoachAssignment{}, fmt.Errorf("get coach by id: %w", err)
	}
	if !exists {
		return matchevent.CoachAssignment{}, fmt.Errorf("%w: coach=%s", ErrNotFound, input.CoachID)
	}

	record := matchevent.CoachAssignment{
		TeamID:  input.TeamID,
		CoachID: input.CoachID,
		Role:    input.Role,
	}
	created, err := s.eventRepo.CreateCoachAssignment(ctx, matchID, record)
	if err != nil {
		return matchevent.CoachAssignment{}, fmt.Errorf("create coach assignment: %w", err)
	}
	return created, nil
}

func (s *CoachService) Unassign(ctx context.Context, matchID, assignmentID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CoachService.Unassign")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	assignmentID = strings.TrimSpace(assignmentID)
	if matchID == "" || assignmentID == "" {
		return fmt.Errorf("%w: match_id and assignment_id are required", ErrInvalidInput)
	}

	if err := s.eventRepo.DeleteCoachAssignment(ctx, matchID, assignmentID); err != nil {
		return fmt.Errorf("delete coach assignment: %w", err)
	}
	return nil
}

func (s *CoachService) ListByMatch(ctx context.Context, matchID string) ([]matchevent.CoachAssignment, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	items, err := s.eventRepo.CoachesByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list coach assignments: %w", err)
	}
	return items, nil
}

func (s *CoachService) requireMatch(ctx context.Context, matchID string) error {
	_, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return nil
}
