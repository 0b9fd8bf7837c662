package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID               int64         `db:"id"`
	PublicID         string        `db:"public_id"`
	Season           int           `db:"season"`
	Episode          int           `db:"episode"`
	HomeTeamID       string        `db:"home_team_public_id"`
	AwayTeamID       string        `db:"away_team_public_id"`
	KickoffAt        time.Time     `db:"kickoff_at"`
	Venue            string        `db:"venue"`
	HomeScore        int           `db:"home_score"`
	AwayScore        int           `db:"away_score"`
	PenaltyHomeScore sql.NullInt64 `db:"penalty_home_score"`
	PenaltyAwayScore sql.NullInt64 `db:"penalty_away_score"`
	Status           string        `db:"status"`
	CreatedAt        time.Time     `db:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at"`
}

type goalTableModel struct {
	ID       int64  `db:"id"`
	PublicID string `db:"public_id"`
	MatchID  string `db:"match_public_id"`
	PlayerID string `db:"player_public_id"`
	Minute   int    `db:"minute"`
	Type     string `db:"goal_type"`
	Note     string `db:"note"`
}

type assistTableModel struct {
	ID       int64  `db:"id"`
	PublicID string `db:"public_id"`
	MatchID  string `db:"match_public_id"`
	PlayerID string `db:"player_public_id"`
	GoalID   string `db:"goal_public_id"`
	Note     string `db:"note"`
}

type lineupEntryTableModel struct {
	ID            int64         `db:"id"`
	PublicID      string        `db:"public_id"`
	MatchID       string        `db:"match_public_id"`
	PlayerID      string        `db:"player_public_id"`
	TeamID        string        `db:"team_public_id"`
	Position      string        `db:"position"`
	ShirtNumber   sql.NullInt64 `db:"shirt_number"`
	MinutesPlayed int           `db:"minutes_played"`
	GoalsConceded sql.NullInt64 `db:"goals_conceded"`
}

type substitutionTableModel struct {
	ID          int64  `db:"id"`
	PublicID    string `db:"public_id"`
	MatchID     string `db:"match_public_id"`
	TeamID      string `db:"team_public_id"`
	PlayerInID  string `db:"player_in_public_id"`
	PlayerOutID string `db:"player_out_public_id"`
	Minute      int    `db:"minute"`
	Note        string `db:"note"`
}

type penaltyAttemptTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	MatchID      string         `db:"match_public_id"`
	TeamID       string         `db:"team_public_id"`
	KickerID     string         `db:"kicker_public_id"`
	GoalkeeperID sql.NullString `db:"goalkeeper_public_id"`
	Scored       bool           `db:"scored"`
	AttemptOrder int            `db:"attempt_order"`
}

type coachAssignmentTableModel struct {
	ID       int64  `db:"id"`
	PublicID string `db:"public_id"`
	MatchID  string `db:"match_public_id"`
	TeamID   string `db:"team_public_id"`
	CoachID  string `db:"coach_public_id"`
	Role     string `db:"role"`
}

type teamTableModel struct {
	ID       int64  `db:"id"`
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
	Short    string `db:"short_name"`
	Captain  string `db:"captain"`
}

type playerTableModel struct {
	ID          int64  `db:"id"`
	PublicID    string `db:"public_id"`
	TeamID      string `db:"team_public_id"`
	Name        string `db:"name"`
	Position    string `db:"position"`
	ShirtNumber int    `db:"shirt_number"`
}

type coachTableModel struct {
	ID       int64  `db:"id"`
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
}

type forumPostTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	TeamID    string    `db:"team_public_id"`
	Author    string    `db:"author"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}
