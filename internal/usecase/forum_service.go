package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chaeyoungson/goalgirls/internal/domain/forum"
	"github.com/chaeyoungson/goalgirls/internal/domain/team"
)

const (
	defaultForumPageSize = 20
	maxForumPageSize     = 100
	maxForumTitleLen     = 120
	maxForumBodyLen      = 4000
)

type CreatePostInput struct {
	TeamID string
	Author string
	Title  string
	Body   string
}

// ForumService runs the per-team visitor boards. Posts are flat; there is
// no threading and no editing, only create and delete.
type ForumService struct {
	teamRepo  team.Repository
	forumRepo forum.Repository
	now       func() time.Time
}

func NewForumService(teamRepo team.Repository, forumRepo forum.Repository) *ForumService {
	return &ForumService{
		teamRepo:  teamRepo,
		forumRepo: forumRepo,
		now:       time.Now,
	}
}

func (s *ForumService) ListByTeam(ctx context.Context, teamID string, limit int) ([]forum.Post, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultForumPageSize
	}
	if limit > maxForumPageSize {
		limit = maxForumPageSize
	}

	if err := s.requireTeam(ctx, teamID); err != nil {
		return nil, err
	}

	posts, err := s.forumRepo.ListByTeam(ctx, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("list posts by team: %w", err)
	}
	return posts, nil
}

func (s *ForumService) Create(ctx context.Context, input CreatePostInput) (forum.Post, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ForumService.Create")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.Author = strings.TrimSpace(input.Author)
	input.Title = strings.TrimSpace(input.Title)
	input.Body = strings.TrimSpace(input.Body)

	if input.TeamID == "" || input.Author == "" || input.Title == "" || input.Body == "" {
		return forum.Post{}, fmt.Errorf("%w: team_id, author, title and body are required", ErrInvalidInput)
	}
	if len(input.Title) > maxForumTitleLen {
		return forum.Post{}, fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, maxForumTitleLen)
	}
	if len(input.Body) > maxForumBodyLen {
		return forum.Post{}, fmt.Errorf("%w: body exceeds %d characters", ErrInvalidInput, maxForumBodyLen)
	}

	if err := s.requireTeam(ctx, input.TeamID); err != nil {
		return forum.Post{}, err
	}

	created, err := s.forumRepo.Create(ctx, forum.Post{
		TeamID:    input.TeamID,
		Author:    input.Author,
		Title:     input.Title,
		Body:      input.Body,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return forum.Post{}, fmt.Errorf("create post: %w", err)
	}
	return created, nil
}

func (s *ForumService) Delete(ctx context.Context, postID string) error {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return fmt.Errorf("%w: post_id is required", ErrInvalidInput)
	}

	_, exists, err := s.forumRepo.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("get post by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: post=%s", ErrNotFound, postID)
	}

	if err := s.forumRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *ForumService) requireTeam(ctx context.Context, teamID string) error {
	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return nil
}
