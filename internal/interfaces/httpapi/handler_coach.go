package httpapi

import (
	"net/http"

	"github.com/chaeyoungson/goalgirls/internal/usecase"
)

type assignCoachRequest struct {
	TeamID  string `json:"team_id" validate:"required"`
	CoachID string `json:"coach_id" validate:"required"`
	Role    string `json:"role" validate:"required"`
}

func (h *Handler) ListMatchCoaches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchCoaches")
	defer span.End()

	matchID := r.PathValue("matchID")
	assignments, err := h.coachService.ListByMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match coaches failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]coachAssignmentDTO, 0, len(assignments))
	for _, assignment := range assignments {
		items = append(items, coachAssignmentDTO{
			ID:      assignment.ID,
			TeamID:  assignment.TeamID,
			CoachID: assignment.CoachID,
			Role:    assignment.Role,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AssignCoach(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignCoach")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req assignCoachRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.coachService.Assign(ctx, matchID, usecase.AssignCoachInput{
		TeamID:  req.TeamID,
		CoachID: req.CoachID,
		Role:    req.Role,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "assign coach failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, coachAssignmentDTO{
		ID:      created.ID,
		TeamID:  created.TeamID,
		CoachID: created.CoachID,
		Role:    created.Role,
	})
}

func (h *Handler) UnassignCoach(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnassignCoach")
	defer span.End()

	matchID := r.PathValue("matchID")
	assignmentID := r.PathValue("assignmentID")
	if err := h.coachService.Unassign(ctx, matchID, assignmentID); err != nil {
		h.logger.WarnContext(ctx, "unassign coach failed", "match_id", matchID, "assignment_id", assignmentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
