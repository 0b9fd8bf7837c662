package match

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
	StatusPostponed = "POSTPONED"
)

// Match is one fixture between two league teams. Penalty scores are only
// set when the match went to a shootout; both are set together.
type Match struct {
	ID               string
	Season           int
	Episode          int
	HomeTeamID       string
	AwayTeamID       string
	KickoffAt        time.Time
	Venue            string
	HomeScore        int
	AwayScore        int
	PenaltyHomeScore *int
	PenaltyAwayScore *int
	Status           string
}

// ScorePatch is a partial update of a match's result fields. Nil fields are
// left unchanged.
type ScorePatch struct {
	HomeScore        *int
	AwayScore        *int
	PenaltyHomeScore *int
	PenaltyAwayScore *int
	Status           *string
}

func (p ScorePatch) IsZero() bool {
	return p.HomeScore == nil && p.AwayScore == nil &&
		p.PenaltyHomeScore == nil && p.PenaltyAwayScore == nil &&
		p.Status == nil
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsValidStatus(value string) bool {
	switch NormalizeStatus(value) {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusPostponed:
		return true
	default:
		return false
	}
}

func IsCompletedStatus(value string) bool {
	return NormalizeStatus(value) == StatusCompleted
}
