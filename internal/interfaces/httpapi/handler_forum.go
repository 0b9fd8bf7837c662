package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chaeyoungson/goalgirls/internal/domain/forum"
	"github.com/chaeyoungson/goalgirls/internal/usecase"
)

type forumPostDTO struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type createPostRequest struct {
	Author string `json:"author" validate:"required,max=60"`
	Title  string `json:"title" validate:"required,max=120"`
	Body   string `json:"body" validate:"required,max=4000"`
}

func forumPostToDTO(post forum.Post) forumPostDTO {
	return forumPostDTO{
		ID:        post.ID,
		TeamID:    post.TeamID,
		Author:    post.Author,
		Title:     post.Title,
		Body:      post.Body,
		CreatedAt: post.CreatedAt,
	}
}

func (h *Handler) ListTeamPosts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPosts")
	defer span.End()

	teamID := r.PathValue("teamID")
	limit := 0
	if rawLimit := strings.TrimSpace(r.URL.Query().Get("limit")); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a number", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	posts, err := h.forumService.ListByTeam(ctx, teamID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list team posts failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]forumPostDTO, 0, len(posts))
	for _, post := range posts {
		items = append(items, forumPostToDTO(post))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateTeamPost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeamPost")
	defer span.End()

	teamID := r.PathValue("teamID")
	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.forumService.Create(ctx, usecase.CreatePostInput{
		TeamID: teamID,
		Author: req.Author,
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team post failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, forumPostToDTO(created))
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePost")
	defer span.End()

	postID := r.PathValue("postID")
	if err := h.forumService.Delete(ctx, postID); err != nil {
		h.logger.WarnContext(ctx, "delete post failed", "post_id", postID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
