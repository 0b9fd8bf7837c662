package httpapi

import (
	"net/http"

	"github.com/chaeyoungson/goalgirls/internal/domain/player"
	"github.com/chaeyoungson/goalgirls/internal/domain/team"
)

type teamDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Short   string `json:"short"`
	Captain string `json:"captain"`
}

type playerDTO struct {
	ID          string `json:"id"`
	TeamID      string `json:"team_id"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	ShirtNumber int    `json:"shirt_number"`
}

type teamProfileDTO struct {
	Team   teamDTO     `json:"team"`
	Roster []playerDTO `json:"roster"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:      t.ID,
		Name:    t.Name,
		Short:   t.Short,
		Captain: t.Captain,
	}
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:          p.ID,
		TeamID:      p.TeamID,
		Name:        p.Name,
		Position:    string(p.Position),
		ShirtNumber: p.ShirtNumber,
	}
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamProfile")
	defer span.End()

	teamID := r.PathValue("teamID")
	profile, err := h.teamService.GetProfile(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team profile failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := teamProfileDTO{
		Team:   teamToDTO(profile.Team),
		Roster: make([]playerDTO, 0, len(profile.Roster)),
	}
	for _, p := range profile.Roster {
		out.Roster = append(out.Roster, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.playerService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	stored, err := h.playerService.GetByID(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(stored))
}
