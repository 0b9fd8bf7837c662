// Package cache wraps the domain repositories with read-through caching.
// Writes pass straight to the underlying repository and drop the keys they
// make stale.
package cache

import (
	"context"
	"strconv"

	"github.com/chaeyoungson/goalgirls/internal/domain/match"
	"github.com/chaeyoungson/goalgirls/internal/domain/matchevent"
	"github.com/chaeyoungson/goalgirls/internal/domain/team"
	basecache "github.com/chaeyoungson/goalgirls/internal/platform/cache"
)

const statsPrefix = "stats:"

func matchEventsPrefix(matchID string) string {
	return "match-events:" + matchID + ":"
}

// Invalidator drops every cached read view derived from one match. The
// submission path calls this once after its final write.
type Invalidator struct {
	cache *basecache.Store
}

func NewInvalidator(cache *basecache.Store) *Invalidator {
	return &Invalidator{cache: cache}
}

func (i *Invalidator) InvalidateMatch(ctx context.Context, matchID string) {
	i.cache.DeletePrefix(ctx, matchEventsPrefix(matchID))
	i.cache.Delete(ctx, "match:id:"+matchID)
	i.cache.DeletePrefix(ctx, "match:list")
	i.cache.DeletePrefix(ctx, statsPrefix)
}

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	v, err := r.cache.GetOrLoad(ctx, "match:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, season int) ([]match.Match, error) {
	key := "match:list:season:" + strconv.Itoa(season)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, season)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	key := "match:id:" + matchID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatchByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatchByID)
	return cached.value, cached.exists, nil
}

func (r *MatchRepository) UpdateScore(ctx context.Context, matchID string, patch match.ScorePatch) (match.Match, error) {
	updated, err := r.next.UpdateScore(ctx, matchID, patch)
	if err != nil {
		return match.Match{}, err
	}

	r.cache.Delete(ctx, "match:id:"+matchID)
	r.cache.DeletePrefix(ctx, "match:list")
	r.cache.DeletePrefix(ctx, statsPrefix)
	return updated, nil
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}

// EventRepository caches the per-match event lists. Creates invalidate only
// the list they extend; the submission path runs a full match invalidation
// at the end anyway.
type EventRepository struct {
	next  matchevent.Repository
	cache *basecache.Store
}

func NewEventRepository(next matchevent.Repository, cache *basecache.Store) *EventRepository {
	return &EventRepository{next: next, cache: cache}
}

func (r *EventRepository) CreateGoal(ctx context.Context, matchID string, goal matchevent.Goal) (matchevent.Goal, error) {
	created, err := r.next.CreateGoal(ctx, matchID, goal)
	if err != nil {
		return matchevent.Goal{}, err
	}
	r.cache.Delete(ctx, matchEventsPrefix(matchID)+"goals")
	return created, nil
}

func (r *EventRepository) CreateAssist(ctx context.Context, matchID string, assist matchevent.Assist) (matchevent.Assist, error) {
	created, err := r.next.CreateAssist(ctx, matchID, assist)
	if err != nil {
		return matchevent.Assist{}, err
	}
	r.cache.Delete(ctx, matchEventsPrefix(matchID)+"assists")
	return created, nil
}

func (r *EventRepository) CreateLineupEntry(ctx context.Context, matchID string, entry matchevent.LineupEntry) (matchevent.LineupEntry, error) {
	created, err := r.next.CreateLineupEntry(ctx, matchID, entry)
	if err != nil {
		return matchevent.LineupEntry{}, err
	}
	r.cache.Delete(ctx, matchEventsPrefix(matchID)+"lineup")
	return created, nil
}

func (r *EventRepository) CreateSubstitution(ctx context.Context, matchID string, sub matchevent.Substitution) (matchevent.Substitution, error) {
	created, err := r.next.CreateSubstitution(ctx, matchID, sub)
	if err != nil {
		return matchevent.Substitution{}, err
	}
	r.cache.Delete(ctx, matchEventsPrefix(matchID)+"substitutions")
	return created, nil
}

func (r *EventRepository) CreatePenaltyAttempt(ctx context.Context, matchID string, attempt matchevent.PenaltyAttempt) (matchevent.PenaltyAttempt, error) {
	created, err := r.next.CreatePenaltyAttempt(ctx, matchID, attempt)
	if err != nil {
		return matchevent.PenaltyAttempt{}, err
	}
	r.cache.Delete(ctx, matchEventsPrefix(matchID)+"penalties")
	return created, nil
}

func (r *EventRepository) CreateCoachAssignment(ctx context.Context, matchID string, assignment matchevent.CoachAssignment) (matchevent.CoachAssignment, error) {
	created, err := r.next.CreateCoachAssignment(ctx, matchID, assignment)
	if err != nil {
		return matchevent.CoachAssignment{}, err
	}
	r.cache.Delete(ctx, matchEventsPrefix(matchID)+"coaches")
	return created, nil
}

func (r *EventRepository) DeleteCoachAssignment(ctx context.Context, matchID, assignmentID string) error {
	if err := r.next.DeleteCoachAssignment(ctx, matchID, assignmentID); err != nil {
		return err
	}
	r.cache.Delete(ctx, matchEventsPrefix(matchID)+"coaches")
	return nil
}

func (r *EventRepository) GoalsByMatch(ctx context.Context, matchID string) ([]matchevent.Goal, error) {
	key := matchEventsPrefix(matchID) + "goals"
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GoalsByMatch(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return append([]matchevent.Goal(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]matchevent.Goal)
	return append([]matchevent.Goal(nil), items...), nil
}

func (r *EventRepository) AssistsByMatch(ctx context.Context, matchID string) ([]matchevent.Assist, error) {
	key := matchEventsPrefix(matchID) + "assists"
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.AssistsByMatch(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return append([]matchevent.Assist(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]matchevent.Assist)
	return append([]matchevent.Assist(nil), items...), nil
}

func (r *EventRepository) LineupByMatch(ctx context.Context, matchID string) ([]matchevent.LineupEntry, error) {
	key := matchEventsPrefix(matchID) + "lineup"
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.LineupByMatch(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return append([]matchevent.LineupEntry(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]matchevent.LineupEntry)
	return append([]matchevent.LineupEntry(nil), items...), nil
}

func (r *EventRepository) SubstitutionsByMatch(ctx context.Context, matchID string) ([]matchevent.Substitution, error) {
	key := matchEventsPrefix(matchID) + "substitutions"
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.SubstitutionsByMatch(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return append([]matchevent.Substitution(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]matchevent.Substitution)
	return append([]matchevent.Substitution(nil), items...), nil
}

func (r *EventRepository) PenaltiesByMatch(ctx context.Context, matchID string) ([]matchevent.PenaltyAttempt, error) {
	key := matchEventsPrefix(matchID) + "penalties"
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.PenaltiesByMatch(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return append([]matchevent.PenaltyAttempt(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]matchevent.PenaltyAttempt)
	return append([]matchevent.PenaltyAttempt(nil), items...), nil
}

func (r *EventRepository) CoachesByMatch(ctx context.Context, matchID string) ([]matchevent.CoachAssignment, error) {
	key := matchEventsPrefix(matchID) + "coaches"
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.CoachesByMatch(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return append([]matchevent.CoachAssignment(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]matchevent.CoachAssignment)
	return append([]matchevent.CoachAssignment(nil), items...), nil
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := "team:id:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}
