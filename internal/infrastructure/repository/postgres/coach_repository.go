package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chaeyoungson/goalgirls/internal/domain/coach"
	qb "github.com/chaeyoungson/goalgirls/internal/platform/querybuilder"
)

type CoachRepository struct {
	db *sqlx.DB
}

func NewCoachRepository(db *sqlx.DB) *CoachRepository {
	return &CoachRepository{db: db}
}

func (r *CoachRepository) List(ctx context.Context) ([]coach.Coach, error) {
	query, args, err := qb.Select("*").From("coaches").
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list coaches query: %w", err)
	}

	var rows []coachTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select coaches: %w", err)
	}

	out := make([]coach.Coach, 0, len(rows))
	for _, row := range rows {
		out = append(out, coach.Coach{ID: row.PublicID, Name: row.Name})
	}
	return out, nil
}

func (r *CoachRepository) GetByID(ctx context.Context, coachID string) (coach.Coach, bool, error) {
	query, args, err := qb.Select("*").From("coaches").
		Where(qb.Eq("public_id", coachID)).
		ToSQL()
	if err != nil {
		return coach.Coach{}, false, fmt.Errorf("build get coach query: %w", err)
	}

	var row coachTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return coach.Coach{}, false, nil
		}
		return coach.Coach{}, false, fmt.Errorf("get coach: %w", err)
	}

	return coach.Coach{ID: row.PublicID, Name: row.Name}, true, nil
}
