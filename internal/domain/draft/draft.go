// Package draft holds the in-memory, not-yet-persisted record of one
// match's events while an operator enters results. Entities carry
// client-generated draft identifiers that stand in for store identifiers
// until the draft is submitted.
package draft

// Score is the draft's singleton result line. Penalty scores are either
// both set or both nil.
type Score struct {
	HomeScore        int
	AwayScore        int
	PenaltyHomeScore *int
	PenaltyAwayScore *int
	Status           string
}

// ScorePatch merges into the draft Score; nil fields are left unchanged.
type ScorePatch struct {
	HomeScore        *int
	AwayScore        *int
	PenaltyHomeScore *int
	PenaltyAwayScore *int
	Status           *string
}

type Goal struct {
	DraftID  string
	PlayerID string
	Minute   int
	Type     string
	Note     string
}

// Assist references its goal by draft identifier; the goal must live in
// the same draft for the assist to be valid.
type Assist struct {
	DraftID     string
	PlayerID    string
	GoalDraftID string
	Note        string
}

type LineupEntry struct {
	DraftID       string
	PlayerID      string
	TeamID        string
	Position      string
	ShirtNumber   *int
	MinutesPlayed int
	GoalsConceded *int
}

type Substitution struct {
	DraftID     string
	TeamID      string
	PlayerInID  string
	PlayerOutID string
	Minute      int
	Note        string
}

type PenaltyAttempt struct {
	DraftID      string
	TeamID       string
	KickerID     string
	GoalkeeperID string
	Scored       bool
	Order        int
}

type CoachAssignment struct {
	DraftID string
	TeamID  string
	CoachID string
	Role    string
}

// Draft is the aggregate root: the singleton score plus every event
// collection, each insertion-ordered and keyed by draft identifier.
type Draft struct {
	Score         Score
	Goals         []Goal
	Assists       []Assist
	Lineups       []LineupEntry
	Substitutions []Substitution
	Penalties     []PenaltyAttempt
	Coaches       []CoachAssignment
}

func empty() Draft {
	return Draft{Score: Score{Status: "SCHEDULED"}}
}

func (d Draft) clone() Draft {
	out := d
	out.Score.PenaltyHomeScore = clonePtr(d.Score.PenaltyHomeScore)
	out.Score.PenaltyAwayScore = clonePtr(d.Score.PenaltyAwayScore)
	out.Goals = append([]Goal(nil), d.Goals...)
	out.Assists = append([]Assist(nil), d.Assists...)
	out.Lineups = make([]LineupEntry, 0, len(d.Lineups))
	for _, entry := range d.Lineups {
		entry.ShirtNumber = clonePtr(entry.ShirtNumber)
		entry.GoalsConceded = clonePtr(entry.GoalsConceded)
		out.Lineups = append(out.Lineups, entry)
	}
	out.Substitutions = append([]Substitution(nil), d.Substitutions...)
	out.Penalties = append([]PenaltyAttempt(nil), d.Penalties...)
	out.Coaches = append([]CoachAssignment(nil), d.Coaches...)
	return out
}

func clonePtr(v *int) *int {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
