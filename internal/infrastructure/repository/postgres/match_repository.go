package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chaeyoungson/goalgirls/internal/domain/match"
	qb "github.com/chaeyoungson/goalgirls/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func matchBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("matches")
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:               row.PublicID,
		Season:           row.Season,
		Episode:          row.Episode,
		HomeTeamID:       row.HomeTeamID,
		AwayTeamID:       row.AwayTeamID,
		KickoffAt:        row.KickoffAt,
		Venue:            row.Venue,
		HomeScore:        row.HomeScore,
		AwayScore:        row.AwayScore,
		PenaltyHomeScore: nullInt64ToIntPtr(row.PenaltyHomeScore),
		PenaltyAwayScore: nullInt64ToIntPtr(row.PenaltyAwayScore),
		Status:           row.Status,
	}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := matchBaseSelectBuilder().
		OrderBy("season", "episode", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, season int) ([]match.Match, error) {
	query, args, err := matchBaseSelectBuilder().
		Where(qb.Eq("season", season)).
		OrderBy("episode", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by season query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by season: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := matchBaseSelectBuilder().
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) UpdateScore(ctx context.Context, matchID string, patch match.ScorePatch) (match.Match, error) {
	if patch.IsZero() {
		stored, exists, err := r.GetByID(ctx, matchID)
		if err != nil {
			return match.Match{}, err
		}
		if !exists {
			return match.Match{}, fmt.Errorf("match %s does not exist", matchID)
		}
		return stored, nil
	}

	builder := qb.Update("matches").SetExpr("updated_at", "NOW()")
	if patch.HomeScore != nil {
		builder.Set("home_score", *patch.HomeScore)
	}
	if patch.AwayScore != nil {
		builder.Set("away_score", *patch.AwayScore)
	}
	if patch.PenaltyHomeScore != nil {
		builder.Set("penalty_home_score", *patch.PenaltyHomeScore)
	}
	if patch.PenaltyAwayScore != nil {
		builder.Set("penalty_away_score", *patch.PenaltyAwayScore)
	}
	if patch.Status != nil {
		builder.Set("status", *patch.Status)
	}

	query, args, err := builder.
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build update match score query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return match.Match{}, fmt.Errorf("update match score: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return match.Match{}, fmt.Errorf("update match score rows affected: %w", err)
	}
	if affected == 0 {
		return match.Match{}, fmt.Errorf("match %s does not exist", matchID)
	}

	updated, _, err := r.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	return updated, nil
}
