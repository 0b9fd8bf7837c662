package matchevent

import "context"

// Repository exposes match event persistence. Each create is atomic on its
// own and returns the stored record including the store-issued identifier;
// there is no multi-entity transaction across calls.
type Repository interface {
	CreateGoal(ctx context.Context, matchID string, goal Goal) (Goal, error)
	CreateAssist(ctx context.Context, matchID string, assist Assist) (Assist, error)
	CreateLineupEntry(ctx context.Context, matchID string, entry LineupEntry) (LineupEntry, error)
	CreateSubstitution(ctx context.Context, matchID string, sub Substitution) (Substitution, error)
	CreatePenaltyAttempt(ctx context.Context, matchID string, attempt PenaltyAttempt) (PenaltyAttempt, error)
	CreateCoachAssignment(ctx context.Context, matchID string, assignment CoachAssignment) (CoachAssignment, error)
	DeleteCoachAssignment(ctx context.Context, matchID, assignmentID string) error

	GoalsByMatch(ctx context.Context, matchID string) ([]Goal, error)
	AssistsByMatch(ctx context.Context, matchID string) ([]Assist, error)
	LineupByMatch(ctx context.Context, matchID string) ([]LineupEntry, error)
	SubstitutionsByMatch(ctx context.Context, matchID string) ([]Substitution, error)
	PenaltiesByMatch(ctx context.Context, matchID string) ([]PenaltyAttempt, error)
	CoachesByMatch(ctx context.Context, matchID string) ([]CoachAssignment, error)
}
