package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/chaeyoungson/goalgirls/internal/domain/draft"
	"github.com/chaeyoungson/goalgirls/internal/domain/match"
	idgen "github.com/chaeyoungson/goalgirls/internal/platform/id"
)

// DraftDesk hands out the draft store for a match's editing session. One
// store per match; the model assumes a single operator edits a match at a
// time, so there is no reconciliation between sessions.
type DraftDesk struct {
	mu        sync.Mutex
	matchRepo match.Repository
	ids       idgen.Generator
	sessions  map[string]*draft.Store
}

func NewDraftDesk(matchRepo match.Repository, ids idgen.Generator) *DraftDesk {
	if ids == nil {
		ids = idgen.NewRandomGenerator("draft_")
	}
	return &DraftDesk{
		matchRepo: matchRepo,
		ids:       ids,
		sessions:  make(map[string]*draft.Store),
	}
}

// Session returns the draft store for the match, creating it on first use.
func (d *DraftDesk) Session(ctx context.Context, matchID string) (*draft.Store, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	_, exists, err := d.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	store, ok := d.sessions[matchID]
	if !ok {
		store = draft.NewStore(d.ids)
		d.sessions[matchID] = store
	}
	return store, nil
}

// Peek returns the session without creating one.
func (d *DraftDesk) Peek(matchID string) (*draft.Store, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	store, ok := d.sessions[strings.TrimSpace(matchID)]
	return store, ok
}

// Discard drops the session entirely, e.g. when the operator closes the
// entry screen. A failed submission does NOT discard: the draft stays
// intact for correction and retry.
func (d *DraftDesk) Discard(matchID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.sessions, strings.TrimSpace(matchID))
}
