package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chaeyoungson/goalgirls/internal/domain/forum"
	idgen "github.com/chaeyoungson/goalgirls/internal/platform/id"
	qb "github.com/chaeyoungson/goalgirls/internal/platform/querybuilder"
)

type ForumRepository struct {
	db  *sqlx.DB
	ids idgen.Generator
}

func NewForumRepository(db *sqlx.DB) *ForumRepository {
	return &ForumRepository{db: db, ids: idgen.NewRandomGenerator("post_")}
}

func forumPostFromRow(row forumPostTableModel) forum.Post {
	return forum.Post{
		ID:        row.PublicID,
		TeamID:    row.TeamID,
		Author:    row.Author,
		Title:     row.Title,
		Body:      row.Body,
		CreatedAt: row.CreatedAt,
	}
}

func (r *ForumRepository) ListByTeam(ctx context.Context, teamID string, limit int) ([]forum.Post, error) {
	builder := qb.Select("*").From("forum_posts").
		Where(qb.Eq("team_public_id", teamID)).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list posts by team query: %w", err)
	}

	var rows []forumPostTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select posts by team: %w", err)
	}

	out := make([]forum.Post, 0, len(rows))
	for _, row := range rows {
		out = append(out, forumPostFromRow(row))
	}
	return out, nil
}

func (r *ForumRepository) GetByID(ctx context.Context, postID string) (forum.Post, bool, error) {
	query, args, err := qb.Select("*").From("forum_posts").
		Where(qb.Eq("public_id", postID)).
		ToSQL()
	if err != nil {
		return forum.Post{}, false, fmt.Errorf("build get post query: %w", err)
	}

	var row forumPostTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return forum.Post{}, false, nil
		}
		return forum.Post{}, false, fmt.Errorf("get post: %w", err)
	}

	return forumPostFromRow(row), true, nil
}

func (r *ForumRepository) Create(ctx context.Context, post forum.Post) (forum.Post, error) {
	publicID, err := r.ids.NewID()
	if err != nil {
		return forum.Post{}, fmt.Errorf("generate post id: %w", err)
	}

	query, args, err := qb.InsertInto("forum_posts").
		Columns("public_id", "team_public_id", "author", "title", "body", "created_at").
		Values(publicID, post.TeamID, post.Author, post.Title, post.Body, post.CreatedAt).
		ToSQL()
	if err != nil {
		return forum.Post{}, fmt.Errorf("build insert post query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return forum.Post{}, fmt.Errorf("insert post: %w", err)
	}

	post.ID = publicID
	return post, nil
}

func (r *ForumRepository) Delete(ctx context.Context, postID string) error {
	query, args, err := qb.DeleteFrom("forum_posts").
		Where(qb.Eq("public_id", postID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete post query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("post %s does not exist", postID)
	}
	return nil
}
