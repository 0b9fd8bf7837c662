package draft

import "fmt"

type Category string

const (
	CategoryScore         Category = "score"
	CategoryGoals         Category = "goals"
	CategoryAssists       Category = "assists"
	CategoryLineups       Category = "lineups"
	CategorySubstitutions Category = "substitutions"
	CategoryPenalties     Category = "penalties"
)

// Result is the outcome of validating a whole draft. Valid is true iff no
// category collected a message.
type Result struct {
	Valid  bool
	Errors map[Category][]string
}

// Validate checks a draft snapshot for internal consistency. It is pure
// and deterministic, so callers may run it after every mutation. All
// checks run; nothing short-circuits, so the operator sees every problem
// at once.
func Validate(d Draft) Result {
	errs := make(map[Category][]string)
	report := func(category Category, msg string) {
		errs[category] = append(errs[category], msg)
	}

	if d.Score.HomeScore < 0 || d.Score.AwayScore < 0 {
		report(CategoryScore, "scores cannot be negative")
	}
	if (d.Score.PenaltyHomeScore == nil) != (d.Score.PenaltyAwayScore == nil) {
		report(CategoryScore, "penalty scores must be set for both sides or neither")
	}

	scoreTotal := d.Score.HomeScore + d.Score.AwayScore
	if len(d.Goals) != scoreTotal {
		report(CategoryGoals, fmt.Sprintf("recorded %d goal(s) but the score totals %d", len(d.Goals), scoreTotal))
	}

	goalIDs := make(map[string]struct{}, len(d.Goals))
	for _, goal := range d.Goals {
		goalIDs[goal.DraftID] = struct{}{}
	}
	dangling := 0
	for _, assist := range d.Assists {
		if _, ok := goalIDs[assist.GoalDraftID]; !ok {
			dangling++
		}
	}
	if dangling > 0 {
		// One pooled message regardless of how many assists dangle.
		report(CategoryAssists, "one or more assists reference a goal that is not in the draft")
	}

	if d.Score.PenaltyHomeScore != nil && d.Score.PenaltyAwayScore != nil {
		if len(d.Penalties) == 0 {
			report(CategoryPenalties, "penalty scores are set but no shootout attempts are recorded")
		} else {
			scored := 0
			for _, attempt := range d.Penalties {
				if attempt.Scored {
					scored++
				}
			}
			// The shootout is one pooled attempt list, so the check is
			// against the combined total, not per side.
			penaltyTotal := *d.Score.PenaltyHomeScore + *d.Score.PenaltyAwayScore
			if scored != penaltyTotal {
				report(CategoryPenalties, fmt.Sprintf("%d scored attempt(s) but penalty scores total %d", scored, penaltyTotal))
			}
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
