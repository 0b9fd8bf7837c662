package cache

import (
	"context"
	"testing"
	"time"

	"github.com/chaeyoungson/goalgirls/internal/domain/match"
	"github.com/chaeyoungson/goalgirls/internal/domain/matchevent"
	"github.com/chaeyoungson/goalgirls/internal/infrastructure/repository/memory"
	basecache "github.com/chaeyoungson/goalgirls/internal/platform/cache"
)

func TestInvalidateMatchDropsDerivedViews(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := basecache.NewStore(time.Minute)

	matchRepo := NewMatchRepository(memory.NewMatchRepository([]match.Match{
		{ID: "match-1", Season: 3, Status: match.StatusScheduled},
	}), store)
	eventRepo := NewEventRepository(memory.NewEventRepository(), store)

	if _, _, err := matchRepo.GetByID(ctx, "match-1"); err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if _, err := eventRepo.GoalsByMatch(ctx, "match-1"); err != nil {
		t.Fatalf("GoalsByMatch() error = %v", err)
	}
	store.Set(ctx, "stats:standings:3", []struct{}{})

	if _, ok := store.Get(ctx, "match:id:match-1"); !ok {
		t.Fatal("match row was not cached")
	}
	if _, ok := store.Get(ctx, "match-events:match-1:goals"); !ok {
		t.Fatal("goal list was not cached")
	}

	NewInvalidator(store).InvalidateMatch(ctx, "match-1")

	for _, key := range []string{"match:id:match-1", "match-events:match-1:goals", "stats:standings:3"} {
		if _, ok := store.Get(ctx, key); ok {
			t.Fatalf("key %q survived invalidation", key)
		}
	}
}

func TestCreateGoalDropsCachedGoalList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := basecache.NewStore(time.Minute)
	eventRepo := NewEventRepository(memory.NewEventRepository(), store)

	if _, err := eventRepo.GoalsByMatch(ctx, "match-1"); err != nil {
		t.Fatalf("GoalsByMatch() error = %v", err)
	}
	if _, err := eventRepo.CreateGoal(ctx, "match-1", matchevent.Goal{PlayerID: "pl-1", Minute: 5, Type: matchevent.GoalTypeNormal}); err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	goals, err := eventRepo.GoalsByMatch(ctx, "match-1")
	if err != nil {
		t.Fatalf("GoalsByMatch() error = %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("goals after create = %d, want 1 (stale cache served)", len(goals))
	}
}
