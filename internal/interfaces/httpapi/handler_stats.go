package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chaeyoungson/goalgirls/internal/usecase"
)

type standingDTO struct {
	TeamID       string `json:"team_id"`
	TeamName     string `json:"team_name"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Points       int    `json:"points"`
}

type topScorerDTO struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	TeamID     string `json:"team_id"`
	Goals      int    `json:"goals"`
	Assists    int    `json:"assists"`
}

type headToHeadDTO struct {
	TeamAID   string `json:"team_a_id"`
	TeamBID   string `json:"team_b_id"`
	Played    int    `json:"played"`
	TeamAWins int    `json:"team_a_wins"`
	TeamBWins int    `json:"team_b_wins"`
	Draws     int    `json:"draws"`
	GoalsA    int    `json:"goals_a"`
	GoalsB    int    `json:"goals_b"`
}

type episodeDTO struct {
	Season     int       `json:"season"`
	Episode    int       `json:"episode"`
	Title      string    `json:"title"`
	AirsAt     time.Time `json:"airs_at"`
	ChannelTag string    `json:"channel_tag,omitempty"`
}

func seasonFromPath(r *http.Request) (int, error) {
	season, err := strconv.Atoi(r.PathValue("season"))
	if err != nil {
		return 0, fmt.Errorf("%w: season must be a number", usecase.ErrInvalidInput)
	}
	return season, nil
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	season, err := seasonFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.statsService.Standings(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingDTO{
			TeamID:       row.TeamID,
			TeamName:     row.TeamName,
			Played:       row.Played,
			Wins:         row.Wins,
			Draws:        row.Draws,
			Losses:       row.Losses,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			GoalDiff:     row.GoalDiff,
			Points:       row.Points,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTopScorers")
	defer span.End()

	season, err := seasonFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	limit := 0
	if rawLimit := strings.TrimSpace(r.URL.Query().Get("limit")); rawLimit != "" {
		limit, err = strconv.Atoi(rawLimit)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a number", usecase.ErrInvalidInput))
			return
		}
	}

	scorers, err := h.statsService.TopScorers(ctx, season, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get top scorers failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]topScorerDTO, 0, len(scorers))
	for _, scorer := range scorers {
		items = append(items, topScorerDTO{
			PlayerID:   scorer.PlayerID,
			PlayerName: scorer.PlayerName,
			TeamID:     scorer.TeamID,
			Goals:      scorer.Goals,
			Assists:    scorer.Assists,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamForm")
	defer span.End()

	teamID := r.PathValue("teamID")
	size := 0
	if rawSize := strings.TrimSpace(r.URL.Query().Get("size")); rawSize != "" {
		parsed, err := strconv.Atoi(rawSize)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: size must be a number", usecase.ErrInvalidInput))
			return
		}
		size = parsed
	}

	form, err := h.statsService.RecentForm(ctx, teamID, size)
	if err != nil {
		h.logger.WarnContext(ctx, "get team form failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"team_id": teamID,
		"form":    form,
	})
}

func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHeadToHead")
	defer span.End()

	teamAID := r.URL.Query().Get("team_a")
	teamBID := r.URL.Query().Get("team_b")
	record, err := h.statsService.HeadToHeadRecord(ctx, teamAID, teamBID)
	if err != nil {
		h.logger.WarnContext(ctx, "get head-to-head failed", "team_a", teamAID, "team_b", teamBID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, headToHeadDTO{
		TeamAID:   record.TeamAID,
		TeamBID:   record.TeamBID,
		Played:    record.Played,
		TeamAWins: record.TeamAWins,
		TeamBWins: record.TeamBWins,
		Draws:     record.Draws,
		GoalsA:    record.GoalsA,
		GoalsB:    record.GoalsB,
	})
}

func (h *Handler) ListEpisodes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEpisodes")
	defer span.End()

	season, err := seasonFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	episodes, err := h.episodeService.ListBySeason(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "list episodes failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]episodeDTO, 0, len(episodes))
	for _, episode := range episodes {
		items = append(items, episodeDTO{
			Season:     episode.Season,
			Episode:    episode.Episode,
			Title:      episode.Title,
			AirsAt:     episode.AirsAt,
			ChannelTag: episode.ChannelTag,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
