package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/chaeyoungson/goalgirls/internal/domain/matchevent"
)

// EventRepository keeps match events per match, insertion-ordered. Store
// identifiers are sequential per entity kind so tests can assert on them.
type EventRepository struct {
	mu            sync.RWMutex
	goals         map[string][]matchevent.Goal
	assists       map[string][]matchevent.Assist
	lineups       map[string][]matchevent.LineupEntry
	substitutions map[string][]matchevent.Substitution
	penalties     map[string][]matchevent.PenaltyAttempt
	coaches       map[string][]matchevent.CoachAssignment
	seq           uint64
}

func NewEventRepository() *EventRepository {
	return &EventRepository{
		goals:         make(map[string][]matchevent.Goal),
		assists:       make(map[string][]matchevent.Assist),
		lineups:       make(map[string][]matchevent.LineupEntry),
		substitutions: make(map[string][]matchevent.Substitution),
		penalties:     make(map[string][]matchevent.PenaltyAttempt),
		coaches:       make(map[string][]matchevent.CoachAssignment),
	}
}

func (r *EventRepository) nextID(kind string) string {
	r.seq++
	return fmt.Sprintf("%s-%d", kind, r.seq)
}

func (r *EventRepository) CreateGoal(_ context.Context, matchID string, goal matchevent.Goal) (matchevent.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	goal.ID = r.nextID("g")
	goal.MatchID = matchID
	r.goals[matchID] = append(r.goals[matchID], goal)
	return goal, nil
}

func (r *EventRepository) CreateAssist(_ context.Context, matchID string, assist matchevent.Assist) (matchevent.Assist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	assist.ID = r.nextID("a")
	assist.MatchID = matchID
	r.assists[matchID] = append(r.assists[matchID], assist)
	return assist, nil
}

func (r *EventRepository) CreateLineupEntry(_ context.Context, matchID string, entry matchevent.LineupEntry) (matchevent.LineupEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = r.nextID("l")
	entry.MatchID = matchID
	r.lineups[matchID] = append(r.lineups[matchID], entry)
	return entry, nil
}

func (r *EventRepository) CreateSubstitution(_ context.Context, matchID string, sub matchevent.Substitution) (matchevent.Substitution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub.ID = r.nextID("s")
	sub.MatchID = matchID
	r.substitutions[matchID] = append(r.substitutions[matchID], sub)
	return sub, nil
}

func (r *EventRepository) CreatePenaltyAttempt(_ context.Context, matchID string, attempt matchevent.PenaltyAttempt) (matchevent.PenaltyAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	attempt.ID = r.nextID("p")
	attempt.MatchID = matchID
	r.penalties[matchID] = append(r.penalties[matchID], attempt)
	return attempt, nil
}

func (r *EventRepository) CreateCoachAssignment(_ context.Context, matchID string, assignment matchevent.CoachAssignment) (matchevent.CoachAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	assignment.ID = r.nextID("c")
	assignment.MatchID = matchID
	r.coaches[matchID] = append(r.coaches[matchID], assignment)
	return assignment, nil
}

func (r *EventRepository) DeleteCoachAssignment(_ context.Context, matchID, assignmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.coaches[matchID]
	for i, item := range items {
		if item.ID == assignmentID {
			r.coaches[matchID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("coach assignment %s does not exist", assignmentID)
}

func (r *EventRepository) GoalsByMatch(_ context.Context, matchID string) ([]matchevent.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]matchevent.Goal(nil), r.goals[matchID]...), nil
}

func (r *EventRepository) AssistsByMatch(_ context.Context, matchID string) ([]matchevent.Assist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]matchevent.Assist(nil), r.assists[matchID]...), nil
}

func (r *EventRepository) LineupByMatch(_ context.Context, matchID string) ([]matchevent.LineupEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]matchevent.LineupEntry(nil), r.lineups[matchID]...), nil
}

func (r *EventRepository) SubstitutionsByMatch(_ context.Context, matchID string) ([]matchevent.Substitution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]matchevent.Substitution(nil), r.substitutions[matchID]...), nil
}

func (r *EventRepository) PenaltiesByMatch(_ context.Context, matchID string) ([]matchevent.PenaltyAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]matchevent.PenaltyAttempt(nil), r.penalties[matchID]...), nil
}

func (r *EventRepository) CoachesByMatch(_ context.Context, matchID string) ([]matchevent.CoachAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]matchevent.CoachAssignment(nil), r.coaches[matchID]...), nil
}
