package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/chaeyoungson/goalgirls/internal/domain/draft"
	"github.com/chaeyoungson/goalgirls/internal/domain/match"
	"github.com/chaeyoungson/goalgirls/internal/domain/matchevent"
	"github.com/chaeyoungson/goalgirls/internal/platform/logging"
)

const defaultGoalWorkers = 4

// ReadModelInvalidator drops every cached read view keyed by a match after
// its events change.
type ReadModelInvalidator interface {
	InvalidateMatch(ctx context.Context, matchID string)
}

// ResultAnnouncer pushes a submitted-result notification to the community
// feed. Announce failures never fail a submission.
type ResultAnnouncer interface {
	AnnounceResult(ctx context.Context, matchID string) error
}

// SubmitError is the terminal failure of a submission, tagged with the
// category whose write failed. Writes from earlier categories stay
// committed.
type SubmitError struct {
	Category draft.Category
	Err      error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit %s: %v", e.Category, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// SubmissionService flushes a validated draft to the backing store as the
// fixed write sequence score → goals → assists → lineups → substitutions →
// penalties, then invalidates the match's cached read views.
type SubmissionService struct {
	matchRepo   match.Repository
	eventRepo   matchevent.Repository
	invalidator ReadModelInvalidator
	announcer   ResultAnnouncer
	logger      *logging.Logger
	goalWorkers int
}

func NewSubmissionService(
	matchRepo match.Repository,
	eventRepo matchevent.Repository,
	logger *logging.Logger,
) *SubmissionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SubmissionService{
		matchRepo:   matchRepo,
		eventRepo:   eventRepo,
		logger:      logger,
		goalWorkers: defaultGoalWorkers,
	}
}

func (s *SubmissionService) SetReadModelInvalidator(invalidator ReadModelInvalidator) {
	s.invalidator = invalidator
}

func (s *SubmissionService) SetResultAnnouncer(announcer ResultAnnouncer) {
	s.announcer = announcer
}

// Submit performs the ordered write sequence for a draft that already
// passed validation. It is not idempotent: a retry after a mid-sequence
// failure re-creates the goals and assists that already succeeded, so the
// operator must inspect the store before resubmitting. There is no
// compensating rollback.
func (s *SubmissionService) Submit(ctx context.Context, matchID string, snapshot draft.Draft) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.Submit")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	if err := s.submitScore(ctx, matchID, snapshot.Score); err != nil {
		return err
	}

	goalIDs, err := s.submitGoals(ctx, matchID, snapshot.Goals)
	if err != nil {
		return err
	}

	if err := s.submitAssists(ctx, matchID, snapshot.Assists, goalIDs); err != nil {
		return err
	}

	// Lineups and substitutions are independent of the id mapping; they
	// are written after assists to keep the sequence auditable.
	for _, entry := range snapshot.Lineups {
		record := matchevent.LineupEntry{
			PlayerID:      entry.PlayerID,
			TeamID:        entry.TeamID,
			Position:      entry.Position,
			ShirtNumber:   entry.ShirtNumber,
			MinutesPlayed: entry.MinutesPlayed,
			GoalsConceded: entry.GoalsConceded,
		}
		if _, err := s.eventRepo.CreateLineupEntry(ctx, matchID, record); err != nil {
			return &SubmitError{Category: draft.CategoryLineups, Err: fmt.Errorf("create lineup entry: %w", err)}
		}
	}

	for _, sub := range snapshot.Substitutions {
		record := matchevent.Substitution{
			TeamID:      sub.TeamID,
			PlayerInID:  sub.PlayerInID,
			PlayerOutID: sub.PlayerOutID,
			Minute:      sub.Minute,
			Note:        sub.Note,
		}
		if _, err := s.eventRepo.CreateSubstitution(ctx, matchID, record); err != nil {
			return &SubmitError{Category: draft.CategorySubstitutions, Err: fmt.Errorf("create substitution: %w", err)}
		}
	}

	attempts := append([]draft.PenaltyAttempt(nil), snapshot.Penalties...)
	sort.SliceStable(attempts, func(i, j int) bool { return attempts[i].Order < attempts[j].Order })
	for _, attempt := range attempts {
		record := matchevent.PenaltyAttempt{
			TeamID:       attempt.TeamID,
			KickerID:     attempt.KickerID,
			GoalkeeperID: attempt.GoalkeeperID,
			Scored:       attempt.Scored,
			Order:        attempt.Order,
		}
		if _, err := s.eventRepo.CreatePenaltyAttempt(ctx, matchID, record); err != nil {
			return &SubmitError{Category: draft.CategoryPenalties, Err: fmt.Errorf("create penalty attempt: %w", err)}
		}
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateMatch(ctx, matchID)
	}

	if s.announcer != nil {
		if err := s.announcer.AnnounceResult(ctx, matchID); err != nil {
			s.logger.WarnContext(ctx, "result announcement failed", "match_id", matchID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "draft submitted",
		"match_id", matchID,
		"goals", len(snapshot.Goals),
		"assists", len(snapshot.Assists),
		"lineups", len(snapshot.Lineups),
		"substitutions", len(snapshot.Substitutions),
		"penalties", len(snapshot.Penalties),
	)
	return nil
}

func (s *SubmissionService) submitScore(ctx context.Context, matchID string, score draft.Score) error {
	patch := match.ScorePatch{
		HomeScore: &score.HomeScore,
		AwayScore: &score.AwayScore,
	}
	if score.PenaltyHomeScore != nil {
		patch.PenaltyHomeScore = score.PenaltyHomeScore
	}
	if score.PenaltyAwayScore != nil {
		patch.PenaltyAwayScore = score.PenaltyAwayScore
	}
	if strings.TrimSpace(score.Status) != "" {
		status := match.NormalizeStatus(score.Status)
		patch.Status = &status
	}

	if _, err := s.matchRepo.UpdateScore(ctx, matchID, patch); err != nil {
		return &SubmitError{Category: draft.CategoryScore, Err: fmt.Errorf("update match score: %w", err)}
	}
	return nil
}

// submitGoals creates every goal concurrently and returns the draft-id to
// store-id mapping. Assists cannot be written until every goal creation
// has reported back, so the whole batch is awaited here.
func (s *SubmissionService) submitGoals(ctx context.Context, matchID string, goals []draft.Goal) (map[string]string, error) {
	goalIDs := make(map[string]string, len(goals))
	if len(goals) == 0 {
		return goalIDs, nil
	}

	var mu sync.Mutex
	workers := pool.New().
		WithMaxGoroutines(s.goalWorkers).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for _, goal := range goals {
		goal := goal
		workers.Go(func(ctx context.Context) error {
			record := matchevent.Goal{
				PlayerID: goal.PlayerID,
				Minute:   goal.Minute,
				Type:     goal.Type,
				Note:     goal.Note,
			}
			created, err := s.eventRepo.CreateGoal(ctx, matchID, record)
			if err != nil {
				return fmt.Errorf("create goal: %w", err)
			}
			if strings.TrimSpace(created.ID) == "" {
				return fmt.Errorf("store returned goal without identifier")
			}

			mu.Lock()
			goalIDs[goal.DraftID] = created.ID
			mu.Unlock()
			return nil
		})
	}

	if err := workers.Wait(); err != nil {
		return nil, &SubmitError{Category: draft.CategoryGoals, Err: err}
	}
	return goalIDs, nil
}

func (s *SubmissionService) submitAssists(ctx context.Context, matchID string, assists []draft.Assist, goalIDs map[string]string) error {
	for _, assist := range assists {
		storeGoalID, ok := goalIDs[assist.GoalDraftID]
		if !ok {
			return &SubmitError{
				Category: draft.CategoryAssists,
				Err:      fmt.Errorf("%w: assist %s references goal draft id %s", ErrUnresolvedDraftRef, assist.DraftID, assist.GoalDraftID),
			}
		}

		record := matchevent.Assist{
			PlayerID: assist.PlayerID,
			GoalID:   storeGoalID,
			Note:     assist.Note,
		}
		if _, err := s.eventRepo.CreateAssist(ctx, matchID, record); err != nil {
			return &SubmitError{Category: draft.CategoryAssists, Err: fmt.Errorf("create assist: %w", err)}
		}
	}
	return nil
}
