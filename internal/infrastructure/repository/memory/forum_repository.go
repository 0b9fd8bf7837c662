package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/chaeyoungson/goalgirls/internal/domain/forum"
)

// ForumRepository keeps posts per team, newest first.
type ForumRepository struct {
	mu          sync.RWMutex
	postsByTeam map[string][]forum.Post
	seq         uint64
}

func NewForumRepository() *ForumRepository {
	return &ForumRepository{postsByTeam: make(map[string][]forum.Post)}
}

func (r *ForumRepository) ListByTeam(_ context.Context, teamID string, limit int) ([]forum.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.postsByTeam[teamID]
	out := make([]forum.Post, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		out = append(out, items[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *ForumRepository) GetByID(_ context.Context, postID string) (forum.Post, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, items := range r.postsByTeam {
		for _, item := range items {
			if item.ID == postID {
				return item, true, nil
			}
		}
	}
	return forum.Post{}, false, nil
}

func (r *ForumRepository) Create(_ context.Context, post forum.Post) (forum.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	post.ID = fmt.Sprintf("post-%d", r.seq)
	r.postsByTeam[post.TeamID] = append(r.postsByTeam[post.TeamID], post)
	return post, nil
}

func (r *ForumRepository) Delete(_ context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for teamID, items := range r.postsByTeam {
		for i, item := range items {
			if item.ID == postID {
				r.postsByTeam[teamID] = append(items[:i:i], items[i+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("post %s does not exist", postID)
}
