package draft

import (
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestValidate_CompleteDraftIsValid(t *testing.T) {
	t.Parallel()

	d := Draft{
		Score: Score{HomeScore: 2, AwayScore: 1, Status: "COMPLETED"},
		Goals: []Goal{
			{DraftID: "g-1", PlayerID: "home-1", Minute: 11, Type: "NORMAL"},
			{DraftID: "g-2", PlayerID: "home-2", Minute: 44, Type: "NORMAL"},
			{DraftID: "g-3", PlayerID: "away-1", Minute: 70, Type: "NORMAL"},
		},
	}

	result := Validate(d)
	if !result.Valid {
		t.Fatalf("expected valid draft, got errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no error categories, got %v", result.Errors)
	}
}

func TestValidate_GoalCountMismatch(t *testing.T) {
	t.Parallel()

	d := Draft{Score: Score{HomeScore: 1, AwayScore: 0}}

	result := Validate(d)
	if result.Valid {
		t.Fatal("expected invalid draft")
	}
	if len(result.Errors[CategoryGoals]) != 1 {
		t.Fatalf("expected one goals error, got %v", result.Errors)
	}
}

func TestValidate_GoalCountMatchReportsNothing(t *testing.T) {
	t.Parallel()

	d := Draft{
		Score: Score{HomeScore: 1, AwayScore: 1},
		Goals: []Goal{
			{DraftID: "g-1", PlayerID: "p-1", Minute: 9, Type: "OWN_GOAL"},
			{DraftID: "g-2", PlayerID: "p-2", Minute: 88, Type: "PENALTY"},
		},
	}

	result := Validate(d)
	if msgs := result.Errors[CategoryGoals]; len(msgs) != 0 {
		t.Fatalf("expected no goals errors, got %v", msgs)
	}
}

func TestValidate_DanglingAssistsPoolIntoOneMessage(t *testing.T) {
	t.Parallel()

	d := Draft{
		Score: Score{HomeScore: 1, AwayScore: 0},
		Goals: []Goal{{DraftID: "g-1", PlayerID: "p-1", Minute: 20, Type: "NORMAL"}},
		Assists: []Assist{
			{DraftID: "a-1", PlayerID: "p-2", GoalDraftID: "g-2"},
			{DraftID: "a-2", PlayerID: "p-3", GoalDraftID: "g-3"},
		},
	}

	result := Validate(d)
	if result.Valid {
		t.Fatal("expected invalid draft")
	}
	if msgs := result.Errors[CategoryAssists]; len(msgs) != 1 {
		t.Fatalf("expected exactly one pooled assists message, got %v", msgs)
	}
}

func TestValidate_AssistReferencingExistingGoalIsFine(t *testing.T) {
	t.Parallel()

	d := Draft{
		Score:   Score{HomeScore: 1, AwayScore: 0},
		Goals:   []Goal{{DraftID: "g-1", PlayerID: "p-1", Minute: 20, Type: "NORMAL"}},
		Assists: []Assist{{DraftID: "a-1", PlayerID: "p-2", GoalDraftID: "g-1"}},
	}

	if result := Validate(d); !result.Valid {
		t.Fatalf("expected valid draft, got %v", result.Errors)
	}
}

func TestValidate_PenaltyScoresWithoutAttempts(t *testing.T) {
	t.Parallel()

	d := Draft{
		Score: Score{
			HomeScore:        0,
			AwayScore:        0,
			PenaltyHomeScore: intPtr(4),
			PenaltyAwayScore: intPtr(3),
		},
	}

	result := Validate(d)
	if len(result.Errors[CategoryPenalties]) != 1 {
		t.Fatalf("expected penalties error, got %v", result.Errors)
	}
}

func TestValidate_PenaltyScoredCountAgainstPooledTotal(t *testing.T) {
	t.Parallel()

	base := Draft{
		Score: Score{
			HomeScore:        1,
			AwayScore:        1,
			PenaltyHomeScore: intPtr(2),
			PenaltyAwayScore: intPtr(1),
		},
		Goals: []Goal{
			{DraftID: "g-1", PlayerID: "p-1", Minute: 10, Type: "NORMAL"},
			{DraftID: "g-2", PlayerID: "p-2", Minute: 80, Type: "NORMAL"},
		},
		Penalties: []PenaltyAttempt{
			{DraftID: "pk-1", TeamID: "t-1", KickerID: "p-1", GoalkeeperID: "p-9", Scored: true, Order: 1},
			{DraftID: "pk-2", TeamID: "t-2", KickerID: "p-3", GoalkeeperID: "p-8", Scored: true, Order: 2},
			{DraftID: "pk-3", TeamID: "t-1", KickerID: "p-4", GoalkeeperID: "p-9", Scored: false, Order: 3},
			{DraftID: "pk-4", TeamID: "t-1", KickerID: "p-5", GoalkeeperID: "p-9", Scored: true, Order: 4},
		},
	}

	if result := Validate(base); !result.Valid {
		t.Fatalf("expected valid shootout, got %v", result.Errors)
	}

	short := base.clone()
	short.Penalties[3].Scored = false
	result := Validate(short)
	if len(result.Errors[CategoryPenalties]) != 1 {
		t.Fatalf("expected penalties count error, got %v", result.Errors)
	}
}

func TestValidate_OneSidedPenaltyScore(t *testing.T) {
	t.Parallel()

	d := Draft{Score: Score{PenaltyHomeScore: intPtr(3)}}

	result := Validate(d)
	if len(result.Errors[CategoryScore]) != 1 {
		t.Fatalf("expected score error, got %v", result.Errors)
	}
}

func TestValidate_NegativeScore(t *testing.T) {
	t.Parallel()

	d := Draft{Score: Score{HomeScore: -1, AwayScore: 1}}

	result := Validate(d)
	if len(result.Errors[CategoryScore]) != 1 {
		t.Fatalf("expected score error, got %v", result.Errors)
	}
}

func TestValidate_IsDeterministic(t *testing.T) {
	t.Parallel()

	d := Draft{
		Score: Score{HomeScore: 2, AwayScore: 0, PenaltyHomeScore: intPtr(1)},
		Goals: []Goal{{DraftID: "g-1", PlayerID: "p-1", Minute: 3, Type: "NORMAL"}},
		Assists: []Assist{
			{DraftID: "a-1", PlayerID: "p-2", GoalDraftID: "gone"},
		},
	}

	first := Validate(d)
	second := Validate(d)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("validate is not deterministic:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestValidate_ReportsAllCategoriesAtOnce(t *testing.T) {
	t.Parallel()

	d := Draft{
		Score:   Score{HomeScore: -2, AwayScore: 1},
		Assists: []Assist{{DraftID: "a-1", PlayerID: "p-1", GoalDraftID: "missing"}},
	}

	result := Validate(d)
	if result.Valid {
		t.Fatal("expected invalid draft")
	}
	for _, category := range []Category{CategoryScore, CategoryGoals, CategoryAssists} {
		if len(result.Errors[category]) == 0 {
			t.Fatalf("expected %s errors, got %v", category, result.Errors)
		}
	}
}
