package draft

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type seqGenerator struct {
	n int
}

func (g *seqGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("d-%d", g.n), nil
}

func TestStore_AddGoalReturnsDraftID(t *testing.T) {
	t.Parallel()

	store := NewStore(&seqGenerator{})

	first := store.AddGoal(Goal{PlayerID: "p-1", Minute: 12, Type: "NORMAL"})
	second := store.AddGoal(Goal{PlayerID: "p-2", Minute: 30, Type: "NORMAL"})

	require.NotEmpty(t, first)
	require.NotEqual(t, first, second)

	snap := store.Snapshot()
	require.Len(t, snap.Goals, 2)
	require.Equal(t, first, snap.Goals[0].DraftID)
}

func TestStore_RemoveGoalCascadesToItsAssistsOnly(t *testing.T) {
	t.Parallel()

	store := NewStore(&seqGenerator{})
	g1 := store.AddGoal(Goal{PlayerID: "p-1", Minute: 5, Type: "NORMAL"})
	g2 := store.AddGoal(Goal{PlayerID: "p-2", Minute: 50, Type: "FREE_KICK"})
	store.AddAssist(Assist{PlayerID: "p-3", GoalDraftID: g1})
	store.AddAssist(Assist{PlayerID: "p-4", GoalDraftID: g1})
	kept := store.AddAssist(Assist{PlayerID: "p-5", GoalDraftID: g2})
	danglingKept := store.AddAssist(Assist{PlayerID: "p-6", GoalDraftID: "never-created"})

	store.RemoveGoal(g1)

	snap := store.Snapshot()
	require.Len(t, snap.Goals, 1)
	require.Equal(t, g2, snap.Goals[0].DraftID)

	// The cascade is exact: only assists referencing the removed goal go.
	require.Len(t, snap.Assists, 2)
	require.Equal(t, kept, snap.Assists[0].DraftID)
	require.Equal(t, danglingKept, snap.Assists[1].DraftID)

	for _, assist := range snap.Assists {
		require.NotEqual(t, g1, assist.GoalDraftID)
	}
}

func TestStore_SetScoreMergesPartialPatch(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	home, away := 2, 1
	status := "COMPLETED"
	store.SetScore(ScorePatch{HomeScore: &home, AwayScore: &away, Status: &status})

	penHome, penAway := 4, 3
	store.SetScore(ScorePatch{PenaltyHomeScore: &penHome, PenaltyAwayScore: &penAway})

	snap := store.Snapshot()
	require.Equal(t, 2, snap.Score.HomeScore)
	require.Equal(t, 1, snap.Score.AwayScore)
	require.Equal(t, "COMPLETED", snap.Score.Status)
	require.NotNil(t, snap.Score.PenaltyHomeScore)
	require.Equal(t, 4, *snap.Score.PenaltyHomeScore)
	require.NotNil(t, snap.Score.PenaltyAwayScore)
	require.Equal(t, 3, *snap.Score.PenaltyAwayScore)
}

func TestStore_SnapshotIsDetached(t *testing.T) {
	t.Parallel()

	store := NewStore(&seqGenerator{})
	store.AddGoal(Goal{PlayerID: "p-1", Minute: 10, Type: "NORMAL"})

	snap := store.Snapshot()
	snap.Goals[0].PlayerID = "tampered"
	snap.Goals = append(snap.Goals, Goal{DraftID: "forged"})

	fresh := store.Snapshot()
	require.Len(t, fresh.Goals, 1)
	require.Equal(t, "p-1", fresh.Goals[0].PlayerID)
}

func TestStore_ResetRestoresEmptyDraft(t *testing.T) {
	t.Parallel()

	store := NewStore(&seqGenerator{})
	home := 3
	store.SetScore(ScorePatch{HomeScore: &home})
	store.AddGoal(Goal{PlayerID: "p-1", Minute: 1, Type: "NORMAL"})
	store.AddLineup(LineupEntry{PlayerID: "p-1", TeamID: "t-1", Position: "FW", MinutesPlayed: 80})
	store.AddSubstitution(Substitution{TeamID: "t-1", PlayerInID: "p-2", PlayerOutID: "p-1", Minute: 60})
	store.AddPenalty(PenaltyAttempt{TeamID: "t-1", KickerID: "p-1", GoalkeeperID: "p-9", Scored: true, Order: 1})
	store.AddCoach(CoachAssignment{TeamID: "t-1", CoachID: "c-1", Role: "HEAD"})

	store.Reset()

	snap := store.Snapshot()
	require.Equal(t, 0, snap.Score.HomeScore)
	require.Empty(t, snap.Goals)
	require.Empty(t, snap.Assists)
	require.Empty(t, snap.Lineups)
	require.Empty(t, snap.Substitutions)
	require.Empty(t, snap.Penalties)
	require.Empty(t, snap.Coaches)
}

func TestStore_RemoveIsDraftIDExact(t *testing.T) {
	t.Parallel()

	store := NewStore(&seqGenerator{})
	l1 := store.AddLineup(LineupEntry{PlayerID: "p-1", TeamID: "t-1", Position: "GK", MinutesPlayed: 90})
	l2 := store.AddLineup(LineupEntry{PlayerID: "p-2", TeamID: "t-1", Position: "DF", MinutesPlayed: 90})

	store.RemoveLineup(l1)

	snap := store.Snapshot()
	require.Len(t, snap.Lineups, 1)
	require.Equal(t, l2, snap.Lineups[0].DraftID)
}

func TestStore_SubscribeReceivesSnapshots(t *testing.T) {
	t.Parallel()

	store := NewStore(&seqGenerator{})
	var seen []int
	cancel := store.Subscribe(func(d Draft) {
		seen = append(seen, len(d.Goals))
	})

	store.AddGoal(Goal{PlayerID: "p-1", Minute: 1, Type: "NORMAL"})
	store.AddGoal(Goal{PlayerID: "p-2", Minute: 2, Type: "NORMAL"})
	cancel()
	store.AddGoal(Goal{PlayerID: "p-3", Minute: 3, Type: "NORMAL"})

	require.Equal(t, []int{1, 2}, seen)
}
