package coach

import "context"

// Repository exposes coach read operations.
type Repository interface {
	List(ctx context.Context) ([]Coach, error)
	GetByID(ctx context.Context, coachID string) (Coach, bool, error)
}
