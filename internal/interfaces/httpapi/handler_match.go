package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chaeyoungson/goalgirls/internal/domain/match"
	"github.com/chaeyoungson/goalgirls/internal/domain/matchevent"
	"github.com/chaeyoungson/goalgirls/internal/usecase"
)

type matchDTO struct {
	ID               string    `json:"id"`
	Season           int       `json:"season"`
	Episode          int       `json:"episode"`
	HomeTeamID       string    `json:"home_team_id"`
	AwayTeamID       string    `json:"away_team_id"`
	KickoffAt        time.Time `json:"kickoff_at"`
	Venue            string    `json:"venue"`
	HomeScore        int       `json:"home_score"`
	AwayScore        int       `json:"away_score"`
	PenaltyHomeScore *int      `json:"penalty_home_score,omitempty"`
	PenaltyAwayScore *int      `json:"penalty_away_score,omitempty"`
	Status           string    `json:"status"`
}

type goalDTO struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	Minute   int    `json:"minute"`
	Type     string `json:"type"`
	Note     string `json:"note,omitempty"`
}

type assistDTO struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	GoalID   string `json:"goal_id"`
	Note     string `json:"note,omitempty"`
}

type lineupEntryDTO struct {
	ID            string `json:"id"`
	PlayerID      string `json:"player_id"`
	TeamID        string `json:"team_id"`
	Position      string `json:"position"`
	ShirtNumber   *int   `json:"shirt_number,omitempty"`
	MinutesPlayed int    `json:"minutes_played"`
	GoalsConceded *int   `json:"goals_conceded,omitempty"`
}

type substitutionDTO struct {
	ID          string `json:"id"`
	TeamID      string `json:"team_id"`
	PlayerInID  string `json:"player_in_id"`
	PlayerOutID string `json:"player_out_id"`
	Minute      int    `json:"minute"`
	Note        string `json:"note,omitempty"`
}

type penaltyAttemptDTO struct {
	ID           string `json:"id"`
	TeamID       string `json:"team_id"`
	KickerID     string `json:"kicker_id"`
	GoalkeeperID string `json:"goalkeeper_id,omitempty"`
	Scored       bool   `json:"scored"`
	Order        int    `json:"order"`
}

type coachAssignmentDTO struct {
	ID      string `json:"id"`
	TeamID  string `json:"team_id"`
	CoachID string `json:"coach_id"`
	Role    string `json:"role"`
}

type matchDetailDTO struct {
	Match         matchDTO             `json:"match"`
	Goals         []goalDTO            `json:"goals"`
	Assists       []assistDTO          `json:"assists"`
	Lineup        []lineupEntryDTO     `json:"lineup"`
	Substitutions []substitutionDTO    `json:"substitutions"`
	Penalties     []penaltyAttemptDTO  `json:"penalties"`
	Coaches       []coachAssignmentDTO `json:"coaches"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:               m.ID,
		Season:           m.Season,
		Episode:          m.Episode,
		HomeTeamID:       m.HomeTeamID,
		AwayTeamID:       m.AwayTeamID,
		KickoffAt:        m.KickoffAt,
		Venue:            m.Venue,
		HomeScore:        m.HomeScore,
		AwayScore:        m.AwayScore,
		PenaltyHomeScore: m.PenaltyHomeScore,
		PenaltyAwayScore: m.PenaltyAwayScore,
		Status:           m.Status,
	}
}

func matchDetailToDTO(detail usecase.MatchDetail) matchDetailDTO {
	out := matchDetailDTO{
		Match:         matchToDTO(detail.Match),
		Goals:         make([]goalDTO, 0, len(detail.Goals)),
		Assists:       make([]assistDTO, 0, len(detail.Assists)),
		Lineup:        make([]lineupEntryDTO, 0, len(detail.Lineup)),
		Substitutions: make([]substitutionDTO, 0, len(detail.Substitutions)),
		Penalties:     make([]penaltyAttemptDTO, 0, len(detail.Penalties)),
		Coaches:       make([]coachAssignmentDTO, 0, len(detail.Coaches)),
	}
	for _, goal := range detail.Goals {
		out.Goals = append(out.Goals, goalDTO{
			ID:       goal.ID,
			PlayerID: goal.PlayerID,
			Minute:   goal.Minute,
			Type:     goal.Type,
			Note:     goal.Note,
		})
	}
	for _, assist := range detail.Assists {
		out.Assists = append(out.Assists, assistDTO{
			ID:       assist.ID,
			PlayerID: assist.PlayerID,
			GoalID:   assist.GoalID,
			Note:     assist.Note,
		})
	}
	for _, entry := range detail.Lineup {
		out.Lineup = append(out.Lineup, lineupEntryDTO{
			ID:            entry.ID,
			PlayerID:      entry.PlayerID,
			TeamID:        entry.TeamID,
			Position:      entry.Position,
			ShirtNumber:   entry.ShirtNumber,
			MinutesPlayed: entry.MinutesPlayed,
			GoalsConceded: entry.GoalsConceded,
		})
	}
	for _, sub := range detail.Substitutions {
		out.Substitutions = append(out.Substitutions, substitutionDTO{
			ID:          sub.ID,
			TeamID:      sub.TeamID,
			PlayerInID:  sub.PlayerInID,
			PlayerOutID: sub.PlayerOutID,
			Minute:      sub.Minute,
			Note:        sub.Note,
		})
	}
	for _, attempt := range detail.Penalties {
		out.Penalties = append(out.Penalties, penaltyAttemptToDTO(attempt))
	}
	for _, assignment := range detail.Coaches {
		out.Coaches = append(out.Coaches, coachAssignmentDTO{
			ID:      assignment.ID,
			TeamID:  assignment.TeamID,
			CoachID: assignment.CoachID,
			Role:    assignment.Role,
		})
	}
	return out
}

func penaltyAttemptToDTO(attempt matchevent.PenaltyAttempt) penaltyAttemptDTO {
	return penaltyAttemptDTO{
		ID:           attempt.ID,
		TeamID:       attempt.TeamID,
		KickerID:     attempt.KickerID,
		GoalkeeperID: attempt.GoalkeeperID,
		Scored:       attempt.Scored,
		Order:        attempt.Order,
	}
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	var (
		matches []match.Match
		err     error
	)
	if rawSeason := strings.TrimSpace(r.URL.Query().Get("season")); rawSeason != "" {
		season, parseErr := strconv.Atoi(rawSeason)
		if parseErr != nil {
			writeError(ctx, w, fmt.Errorf("%w: season must be a number", usecase.ErrInvalidInput))
			return
		}
		matches, err = h.matchService.ListBySeason(ctx, season)
	} else {
		matches, err = h.matchService.List(ctx)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatchDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchDetail")
	defer span.End()

	matchID := r.PathValue("matchID")
	detail, err := h.matchService.GetDetail(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match detail failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchDetailToDTO(detail))
}
