package forum

import "context"

// Repository exposes forum post persistence.
type Repository interface {
	ListByTeam(ctx context.Context, teamID string, limit int) ([]Post, error)
	GetByID(ctx context.Context, postID string) (Post, bool, error)
	Create(ctx context.Context, post Post) (Post, error)
	Delete(ctx context.Context, postID string) error
}
