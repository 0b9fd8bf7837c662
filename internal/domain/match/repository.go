package match

import "context"

// Repository exposes match persistence operations. UpdateScore fails when
// the match does not exist; there is no implicit create.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	ListBySeason(ctx context.Context, season int) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	UpdateScore(ctx context.Context, matchID string, patch ScorePatch) (Match, error)
}
