package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chaeyoungson/goalgirls/internal/domain/draft"
	"github.com/chaeyoungson/goalgirls/internal/domain/match"
	"github.com/chaeyoungson/goalgirls/internal/domain/matchevent"
	"github.com/chaeyoungson/goalgirls/internal/infrastructure/repository/memory"
	"github.com/chaeyoungson/goalgirls/internal/platform/logging"
)

func seededMatchRepo() *memory.MatchRepository {
	return memory.NewMatchRepository([]match.Match{
		{
			ID:         "match-1",
			Season:     3,
			Episode:    1,
			HomeTeamID: "team-a",
			AwayTeamID: "team-b",
			Status:     match.StatusScheduled,
		},
	})
}

// failingEventRepo delegates to the in-memory repository but fails the
// configured operations.
type failingEventRepo struct {
	*memory.EventRepository
	failLineups bool
	failGoals   bool
}

func (r *failingEventRepo) CreateLineupEntry(ctx context.Context, matchID string, entry matchevent.LineupEntry) (matchevent.LineupEntry, error) {
	if r.failLineups {
		return matchevent.LineupEntry{}, errors.New("storage unavailable")
	}
	return r.EventRepository.CreateLineupEntry(ctx, matchID, entry)
}

func (r *failingEventRepo) CreateGoal(ctx context.Context, matchID string, goal matchevent.Goal) (matchevent.Goal, error) {
	if r.failGoals {
		return matchevent.Goal{}, errors.New("storage unavailable")
	}
	return r.EventRepository.CreateGoal(ctx, matchID, goal)
}

type recordingInvalidator struct {
	matchIDs []string
}

func (r *recordingInvalidator) InvalidateMatch(_ context.Context, matchID string) {
	r.matchIDs = append(r.matchIDs, matchID)
}

type failingAnnouncer struct {
	calls int
}

func (a *failingAnnouncer) AnnounceResult(context.Context, string) error {
	a.calls++
	return errors.New("webhook timeout")
}

func completedDraft() draft.Draft {
	return draft.Draft{
		Score: draft.Score{HomeScore: 2, AwayScore: 1, Status: match.StatusCompleted},
		Goals: []draft.Goal{
			{DraftID: "draft_g1", PlayerID: "pl-home-9", Minute: 12, Type: matchevent.GoalTypeNormal},
			{DraftID: "draft_g2", PlayerID: "pl-home-7", Minute: 40, Type: matchevent.GoalTypeFreeKick},
			{DraftID: "draft_g3", PlayerID: "pl-away-11", Minute: 77, Type: matchevent.GoalTypeNormal},
		},
		Assists: []draft.Assist{
			{DraftID: "draft_a1", PlayerID: "pl-home-8", GoalDraftID: "draft_g1"},
		},
		Lineups: []draft.LineupEntry{
			{DraftID: "draft_l1", PlayerID: "pl-home-9", TeamID: "team-a", Position: "FW", MinutesPlayed: 90},
			{DraftID: "draft_l2", PlayerID: "pl-away-11", TeamID: "team-b", Position: "FW", MinutesPlayed: 90},
		},
		Substitutions: []draft.Substitution{
			{DraftID: "draft_s1", TeamID: "team-a", PlayerInID: "pl-home-14", PlayerOutID: "pl-home-7", Minute: 60},
		},
	}
}

func TestSubmitWritesAllCategories(t *testing.T) {
	t.Parallel()

	matchRepo := seededMatchRepo()
	eventRepo := memory.NewEventRepository()
	invalidator := &recordingInvalidator{}

	svc := NewSubmissionService(matchRepo, eventRepo, logging.NewNop())
	svc.SetReadModelInvalidator(invalidator)

	if err := svc.Submit(context.Background(), "match-1", completedDraft()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	stored, _, err := matchRepo.GetByID(context.Background(), "match-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.HomeScore != 2 || stored.AwayScore != 1 {
		t.Fatalf("stored score = %d-%d, want 2-1", stored.HomeScore, stored.AwayScore)
	}
	if stored.Status != match.StatusCompleted {
		t.Fatalf("stored status = %q, want %q", stored.Status, match.StatusCompleted)
	}

	goals, _ := eventRepo.GoalsByMatch(context.Background(), "match-1")
	if len(goals) != 3 {
		t.Fatalf("stored goals = %d, want 3", len(goals))
	}
	lineups, _ := eventRepo.LineupByMatch(context.Background(), "match-1")
	if len(lineups) != 2 {
		t.Fatalf("stored lineup entries = %d, want 2", len(lineups))
	}
	subs, _ := eventRepo.SubstitutionsByMatch(context.Background(), "match-1")
	if len(subs) != 1 {
		t.Fatalf("stored substitutions = %d, want 1", len(subs))
	}

	if len(invalidator.matchIDs) != 1 || invalidator.matchIDs[0] != "match-1" {
		t.Fatalf("invalidated matches = %v, want [match-1]", invalidator.matchIDs)
	}
}

func TestSubmitAssistUsesStoreIssuedGoalID(t *testing.T) {
	t.Parallel()

	eventRepo := memory.NewEventRepository()
	svc := NewSubmissionService(seededMatchRepo(), eventRepo, logging.NewNop())

	if err := svc.Submit(context.Background(), "match-1", completedDraft()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	goals, _ := eventRepo.GoalsByMatch(context.Background(), "match-1")
	var firstGoalID string
	for _, goal := range goals {
		if goal.PlayerID == "pl-home-9" {
			firstGoalID = goal.ID
		}
	}
	if firstGoalID == "" {
		t.Fatal("goal for pl-home-9 was not stored")
	}

	assists, _ := eventRepo.AssistsByMatch(context.Background(), "match-1")
	if len(assists) != 1 {
		t.Fatalf("stored assists = %d, want 1", len(assists))
	}
	if assists[0].GoalID != firstGoalID {
		t.Fatalf("assist.GoalID = %q, want store-issued %q", assists[0].GoalID, firstGoalID)
	}
	if strings.HasPrefix(assists[0].GoalID, "draft_") {
		t.Fatalf("assist.GoalID = %q still carries a draft identifier", assists[0].GoalID)
	}
}

func TestSubmitLineupFailureKeepsEarlierWrites(t *testing.T) {
	t.Parallel()

	eventRepo := &failingEventRepo{EventRepository: memory.NewEventRepository(), failLineups: true}
	invalidator := &recordingInvalidator{}

	svc := NewSubmissionService(seededMatchRepo(), eventRepo, logging.NewNop())
	svc.SetReadModelInvalidator(invalidator)

	err := svc.Submit(context.Background(), "match-1", completedDraft())
	if err == nil {
		t.Fatal("Submit() error = nil, want lineups failure")
	}

	var submitErr *SubmitError
	if !errors.As(err, &submitErr) {
		t.Fatalf("Submit() error = %T, want *SubmitError", err)
	}
	if submitErr.Category != draft.CategoryLineups {
		t.Fatalf("SubmitError.Category = %q, want %q", submitErr.Category, draft.CategoryLineups)
	}

	// No rollback: everything written before the failing category stays.
	goals, _ := eventRepo.GoalsByMatch(context.Background(), "match-1")
	if len(goals) != 3 {
		t.Fatalf("stored goals after failure = %d, want 3", len(goals))
	}
	assists, _ := eventRepo.AssistsByMatch(context.Background(), "match-1")
	if len(assists) != 1 {
		t.Fatalf("stored assists after failure = %d, want 1", len(assists))
	}

	// Nothing after the failing category is written.
	subs, _ := eventRepo.SubstitutionsByMatch(context.Background(), "match-1")
	if len(subs) != 0 {
		t.Fatalf("stored substitutions after failure = %d, want 0", len(subs))
	}
	if len(invalidator.matchIDs) != 0 {
		t.Fatalf("invalidated matches after failure = %v, want none", invalidator.matchIDs)
	}
}

func TestSubmitGoalFailureAbortsBeforeAssists(t *testing.T) {
	t.Parallel()

	eventRepo := &failingEventRepo{EventRepository: memory.NewEventRepository(), failGoals: true}
	svc := NewSubmissionService(seededMatchRepo(), eventRepo, logging.NewNop())

	err := svc.Submit(context.Background(), "match-1", completedDraft())
	var submitErr *SubmitError
	if !errors.As(err, &submitErr) {
		t.Fatalf("Submit() error = %v, want *SubmitError", err)
	}
	if submitErr.Category != draft.CategoryGoals {
		t.Fatalf("SubmitError.Category = %q, want %q", submitErr.Category, draft.CategoryGoals)
	}

	assists, _ := eventRepo.AssistsByMatch(context.Background(), "match-1")
	if len(assists) != 0 {
		t.Fatalf("stored assists after goal failure = %d, want 0", len(assists))
	}
}

func TestSubmitUnresolvedAssistReference(t *testing.T) {
	t.Parallel()

	eventRepo := memory.NewEventRepository()
	svc := NewSubmissionService(seededMatchRepo(), eventRepo, logging.NewNop())

	snapshot := completedDraft()
	snapshot.Assists = append(snapshot.Assists, draft.Assist{
		DraftID:     "draft_a2",
		PlayerID:    "pl-home-8",
		GoalDraftID: "draft_never_created",
	})

	err := svc.Submit(context.Background(), "match-1", snapshot)
	if !errors.Is(err, ErrUnresolvedDraftRef) {
		t.Fatalf("Submit() error = %v, want ErrUnresolvedDraftRef", err)
	}

	var submitErr *SubmitError
	if !errors.As(err, &submitErr) {
		t.Fatalf("Submit() error = %T, want *SubmitError", err)
	}
	if submitErr.Category != draft.CategoryAssists {
		t.Fatalf("SubmitError.Category = %q, want %q", submitErr.Category, draft.CategoryAssists)
	}

	lineups, _ := eventRepo.LineupByMatch(context.Background(), "match-1")
	if len(lineups) != 0 {
		t.Fatalf("stored lineup entries after abort = %d, want 0", len(lineups))
	}
}

func TestSubmitPenaltiesWrittenInOrder(t *testing.T) {
	t.Parallel()

	eventRepo := memory.NewEventRepository()
	svc := NewSubmissionService(seededMatchRepo(), eventRepo, logging.NewNop())

	two := 2
	one := 1
	snapshot := draft.Draft{
		Score: draft.Score{
			HomeScore:        1,
			AwayScore:        1,
			PenaltyHomeScore: &two,
			PenaltyAwayScore: &one,
			Status:           match.StatusCompleted,
		},
		Goals: []draft.Goal{
			{DraftID: "draft_g1", PlayerID: "pl-home-9", Minute: 30, Type: matchevent.GoalTypeNormal},
			{DraftID: "draft_g2", PlayerID: "pl-away-11", Minute: 80, Type: matchevent.GoalTypeNormal},
		},
		Penalties: []draft.PenaltyAttempt{
			{DraftID: "draft_p3", TeamID: "team-a", KickerID: "pl-home-7", Scored: true, Order: 3},
			{DraftID: "draft_p1", TeamID: "team-a", KickerID: "pl-home-9", Scored: true, Order: 1},
			{DraftID: "draft_p2", TeamID: "team-b", KickerID: "pl-away-11", Scored: true, Order: 2},
		},
	}

	if err := svc.Submit(context.Background(), "match-1", snapshot); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	attempts, _ := eventRepo.PenaltiesByMatch(context.Background(), "match-1")
	if len(attempts) != 3 {
		t.Fatalf("stored attempts = %d, want 3", len(attempts))
	}
	for i, attempt := range attempts {
		if attempt.Order != i+1 {
			t.Fatalf("attempt[%d].Order = %d, want %d", i, attempt.Order, i+1)
		}
	}
}

func TestSubmitAnnouncerFailureDoesNotFailSubmission(t *testing.T) {
	t.Parallel()

	announcer := &failingAnnouncer{}
	svc := NewSubmissionService(seededMatchRepo(), memory.NewEventRepository(), logging.NewNop())
	svc.SetResultAnnouncer(announcer)

	if err := svc.Submit(context.Background(), "match-1", completedDraft()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if announcer.calls != 1 {
		t.Fatalf("announcer calls = %d, want 1", announcer.calls)
	}
}
