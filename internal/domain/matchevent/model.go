package matchevent

const (
	GoalTypeNormal   = "NORMAL"
	GoalTypePenalty  = "PENALTY"
	GoalTypeFreeKick = "FREE_KICK"
	GoalTypeOwnGoal  = "OWN_GOAL"
)

var AllGoalTypes = map[string]struct{}{
	GoalTypeNormal:   {},
	GoalTypePenalty:  {},
	GoalTypeFreeKick: {},
	GoalTypeOwnGoal:  {},
}

// Goal is a persisted goal event. ID is issued by the backing store on
// creation and is empty on input.
type Goal struct {
	ID       string
	MatchID  string
	PlayerID string
	Minute   int
	Type     string
	Note     string
}

// Assist credits a player for a stored goal. GoalID must reference a goal
// that already exists in the store.
type Assist struct {
	ID       string
	MatchID  string
	PlayerID string
	GoalID   string
	Note     string
}

// LineupEntry records one player's participation. GoalsConceded is only
// meaningful for goalkeepers.
type LineupEntry struct {
	ID            string
	MatchID       string
	PlayerID      string
	TeamID        string
	Position      string
	ShirtNumber   *int
	MinutesPlayed int
	GoalsConceded *int
}

type Substitution struct {
	ID          string
	MatchID     string
	TeamID      string
	PlayerInID  string
	PlayerOutID string
	Minute      int
	Note        string
}

// PenaltyAttempt is one kick of a shootout. Order is the 1-based position
// in the pooled attempt sequence, unique per match.
type PenaltyAttempt struct {
	ID           string
	MatchID      string
	TeamID       string
	KickerID     string
	GoalkeeperID string
	Scored       bool
	Order        int
}

type CoachAssignment struct {
	ID      string
	MatchID string
	TeamID  string
	CoachID string
	Role    string
}
