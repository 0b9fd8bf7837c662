package draft

import (
	"fmt"
	"sync"

	idgen "github.com/chaeyoungson/goalgirls/internal/platform/id"
)

// Store owns the mutable draft for one match. It never talks to the
// backing store, and no operation fails: inputs are pre-validated by the
// caller's form layer and whole-draft consistency is Validate's job.
//
// The store is written by a single editing session, but reads may come
// from any request goroutine, so access is serialized internally.
type Store struct {
	mu     sync.Mutex
	ids    idgen.Generator
	seq    uint64
	draft  Draft
	subs   map[uint64]func(Draft)
	subSeq uint64
}

func NewStore(ids idgen.Generator) *Store {
	if ids == nil {
		ids = idgen.NewRandomGenerator("draft_")
	}
	return &Store{
		ids:   ids,
		draft: empty(),
		subs:  make(map[uint64]func(Draft)),
	}
}

// SetScore merges the patch into the singleton score. No validation here;
// Validate reports inconsistencies on the whole draft.
func (s *Store) SetScore(patch ScorePatch) {
	s.mu.Lock()
	if patch.HomeScore != nil {
		s.draft.Score.HomeScore = *patch.HomeScore
	}
	if patch.AwayScore != nil {
		s.draft.Score.AwayScore = *patch.AwayScore
	}
	if patch.PenaltyHomeScore != nil {
		s.draft.Score.PenaltyHomeScore = clonePtr(patch.PenaltyHomeScore)
	}
	if patch.PenaltyAwayScore != nil {
		s.draft.Score.PenaltyAwayScore = clonePtr(patch.PenaltyAwayScore)
	}
	if patch.Status != nil {
		s.draft.Score.Status = *patch.Status
	}
	s.unlockAndNotify()
}

// AddGoal appends the goal and returns its draft identifier so the caller
// can reference it immediately, e.g. to pre-fill an assist form.
func (s *Store) AddGoal(goal Goal) string {
	s.mu.Lock()
	goal.DraftID = s.nextID()
	s.draft.Goals = append(s.draft.Goals, goal)
	s.unlockAndNotify()
	return goal.DraftID
}

// RemoveGoal removes the goal and every assist referencing it. The cascade
// is reference-exact: assists pointing at other goals, dangling or not,
// are untouched.
func (s *Store) RemoveGoal(draftID string) {
	s.mu.Lock()
	s.draft.Goals = removeByDraftID(s.draft.Goals, draftID, func(g Goal) string { return g.DraftID })

	kept := s.draft.Assists[:0]
	for _, assist := range s.draft.Assists {
		if assist.GoalDraftID != draftID {
			kept = append(kept, assist)
		}
	}
	s.draft.Assists = kept
	s.unlockAndNotify()
}

func (s *Store) AddAssist(assist Assist) string {
	s.mu.Lock()
	assist.DraftID = s.nextID()
	s.draft.Assists = append(s.draft.Assists, assist)
	s.unlockAndNotify()
	return assist.DraftID
}

func (s *Store) RemoveAssist(draftID string) {
	s.mu.Lock()
	s.draft.Assists = removeByDraftID(s.draft.Assists, draftID, func(a Assist) string { return a.DraftID })
	s.unlockAndNotify()
}

func (s *Store) AddLineup(entry LineupEntry) string {
	s.mu.Lock()
	entry.DraftID = s.nextID()
	s.draft.Lineups = append(s.draft.Lineups, entry)
	s.unlockAndNotify()
	return entry.DraftID
}

func (s *Store) RemoveLineup(draftID string) {
	s.mu.Lock()
	s.draft.Lineups = removeByDraftID(s.draft.Lineups, draftID, func(e LineupEntry) string { return e.DraftID })
	s.unlockAndNotify()
}

func (s *Store) AddSubstitution(sub Substitution) string {
	s.mu.Lock()
	sub.DraftID = s.nextID()
	s.draft.Substitutions = append(s.draft.Substitutions, sub)
	s.unlockAndNotify()
	return sub.DraftID
}

func (s *Store) RemoveSubstitution(draftID string) {
	s.mu.Lock()
	s.draft.Substitutions = removeByDraftID(s.draft.Substitutions, draftID, func(sub Substitution) string { return sub.DraftID })
	s.unlockAndNotify()
}

func (s *Store) AddPenalty(attempt PenaltyAttempt) string {
	s.mu.Lock()
	attempt.DraftID = s.nextID()
	s.draft.Penalties = append(s.draft.Penalties, attempt)
	s.unlockAndNotify()
	return attempt.DraftID
}

func (s *Store) RemovePenalty(draftID string) {
	s.mu.Lock()
	s.draft.Penalties = removeByDraftID(s.draft.Penalties, draftID, func(p PenaltyAttempt) string { return p.DraftID })
	s.unlockAndNotify()
}

func (s *Store) AddCoach(assignment CoachAssignment) string {
	s.mu.Lock()
	assignment.DraftID = s.nextID()
	s.draft.Coaches = append(s.draft.Coaches, assignment)
	s.unlockAndNotify()
	return assignment.DraftID
}

func (s *Store) RemoveCoach(draftID string) {
	s.mu.Lock()
	s.draft.Coaches = removeByDraftID(s.draft.Coaches, draftID, func(c CoachAssignment) string { return c.DraftID })
	s.unlockAndNotify()
}

// Reset replaces the draft with a fresh empty one.
func (s *Store) Reset() {
	s.mu.Lock()
	s.draft = empty()
	s.unlockAndNotify()
}

// Snapshot returns a deep copy of the current draft. Mutating the returned
// value has no effect on the store.
func (s *Store) Snapshot() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.clone()
}

// Subscribe registers fn to run with a fresh snapshot after every
// mutation. The returned function cancels the subscription.
func (s *Store) Subscribe(fn func(Draft)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subSeq++
	key := s.subSeq
	s.subs[key] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, key)
	}
}

// unlockAndNotify releases the store lock, then delivers the snapshot so
// subscribers may call back into the store.
func (s *Store) unlockAndNotify() {
	snapshot := s.draft.clone()
	subs := make([]func(Draft), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

func (s *Store) nextID() string {
	s.seq++
	id, err := s.ids.NewID()
	if err != nil {
		// Draft ids only need to be unique within this store.
		return fmt.Sprintf("draft-seq-%d", s.seq)
	}
	return id
}

func removeByDraftID[T any](items []T, draftID string, key func(T) string) []T {
	kept := items[:0]
	for _, item := range items {
		if key(item) != draftID {
			kept = append(kept, item)
		}
	}
	return kept
}
