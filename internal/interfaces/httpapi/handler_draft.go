package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/chaeyoungson/goalgirls/internal/domain/coach"
	"github.com/chaeyoungson/goalgirls/internal/domain/draft"
	"github.com/chaeyoungson/goalgirls/internal/domain/match"
	"github.com/chaeyoungson/goalgirls/internal/domain/matchevent"
	"github.com/chaeyoungson/goalgirls/internal/usecase"
)

type draftScoreDTO struct {
	HomeScore        int    `json:"home_score"`
	AwayScore        int    `json:"away_score"`
	PenaltyHomeScore *int   `json:"penalty_home_score,omitempty"`
	PenaltyAwayScore *int   `json:"penalty_away_score,omitempty"`
	Status           string `json:"status"`
}

type draftGoalDTO struct {
	DraftID  string `json:"draft_id"`
	PlayerID string `json:"player_id"`
	Minute   int    `json:"minute"`
	Type     string `json:"type"`
	Note     string `json:"note,omitempty"`
}

type draftAssistDTO struct {
	DraftID     string `json:"draft_id"`
	PlayerID    string `json:"player_id"`
	GoalDraftID string `json:"goal_draft_id"`
	Note        string `json:"note,omitempty"`
}

type draftLineupEntryDTO struct {
	DraftID       string `json:"draft_id"`
	PlayerID      string `json:"player_id"`
	TeamID        string `json:"team_id"`
	Position      string `json:"position"`
	ShirtNumber   *int   `json:"shirt_number,omitempty"`
	MinutesPlayed int    `json:"minutes_played"`
	GoalsConceded *int   `json:"goals_conceded,omitempty"`
}

type draftSubstitutionDTO struct {
	DraftID     string `json:"draft_id"`
	TeamID      string `json:"team_id"`
	PlayerInID  string `json:"player_in_id"`
	PlayerOutID string `json:"player_out_id"`
	Minute      int    `json:"minute"`
	Note        string `json:"note,omitempty"`
}

type draftPenaltyAttemptDTO struct {
	DraftID      string `json:"draft_id"`
	TeamID       string `json:"team_id"`
	KickerID     string `json:"kicker_id"`
	GoalkeeperID string `json:"goalkeeper_id,omitempty"`
	Scored       bool   `json:"scored"`
	Order        int    `json:"order"`
}

type draftCoachAssignmentDTO struct {
	DraftID string `json:"draft_id"`
	TeamID  string `json:"team_id"`
	CoachID string `json:"coach_id"`
	Role    string `json:"role"`
}

type draftValidationDTO struct {
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// draftStateDTO is returned by every draft endpoint so the entry screen
// can re-render the whole form and its validation panel from one payload.
type draftStateDTO struct {
	MatchID       string                    `json:"match_id"`
	Score         draftScoreDTO             `json:"score"`
	Goals         []draftGoalDTO            `json:"goals"`
	Assists       []draftAssistDTO          `json:"assists"`
	Lineup        []draftLineupEntryDTO     `json:"lineup"`
	Substitutions []draftSubstitutionDTO    `json:"substitutions"`
	Penalties     []draftPenaltyAttemptDTO  `json:"penalties"`
	Coaches       []draftCoachAssignmentDTO `json:"coaches"`
	Validation    draftValidationDTO        `json:"validation"`
}

func draftStateToDTO(matchID string, snapshot draft.Draft) draftStateDTO {
	result := draft.Validate(snapshot)

	out := draftStateDTO{
		MatchID: matchID,
		Score: draftScoreDTO{
			HomeScore:        snapshot.Score.HomeScore,
			AwayScore:        snapshot.Score.AwayScore,
			PenaltyHomeScore: snapshot.Score.PenaltyHomeScore,
			PenaltyAwayScore: snapshot.Score.PenaltyAwayScore,
			Status:           snapshot.Score.Status,
		},
		Goals:         make([]draftGoalDTO, 0, len(snapshot.Goals)),
		Assists:       make([]draftAssistDTO, 0, len(snapshot.Assists)),
		Lineup:        make([]draftLineupEntryDTO, 0, len(snapshot.Lineups)),
		Substitutions: make([]draftSubstitutionDTO, 0, len(snapshot.Substitutions)),
		Penalties:     make([]draftPenaltyAttemptDTO, 0, len(snapshot.Penalties)),
		Coaches:       make([]draftCoachAssignmentDTO, 0, len(snapshot.Coaches)),
		Validation:    draftValidationDTO{Valid: result.Valid},
	}
	if len(result.Errors) > 0 {
		out.Validation.Errors = make(map[string][]string, len(result.Errors))
		for category, messages := range result.Errors {
			out.Validation.Errors[string(category)] = messages
		}
	}

	for _, goal := range snapshot.Goals {
		out.Goals = append(out.Goals, draftGoalDTO{
			DraftID:  goal.DraftID,
			PlayerID: goal.PlayerID,
			Minute:   goal.Minute,
			Type:     goal.Type,
			Note:     goal.Note,
		})
	}
	for _, assist := range snapshot.Assists {
		out.Assists = append(out.Assists, draftAssistDTO{
			DraftID:     assist.DraftID,
			PlayerID:    assist.PlayerID,
			GoalDraftID: assist.GoalDraftID,
			Note:        assist.Note,
		})
	}
	for _, entry := range snapshot.Lineups {
		out.Lineup = append(out.Lineup, draftLineupEntryDTO{
			DraftID:       entry.DraftID,
			PlayerID:      entry.PlayerID,
			TeamID:        entry.TeamID,
			Position:      entry.Position,
			ShirtNumber:   entry.ShirtNumber,
			MinutesPlayed: entry.MinutesPlayed,
			GoalsConceded: entry.GoalsConceded,
		})
	}
	for _, sub := range snapshot.Substitutions {
		out.Substitutions = append(out.Substitutions, draftSubstitutionDTO{
			DraftID:     sub.DraftID,
			TeamID:      sub.TeamID,
			PlayerInID:  sub.PlayerInID,
			PlayerOutID: sub.PlayerOutID,
			Minute:      sub.Minute,
			Note:        sub.Note,
		})
	}
	for _, attempt := range snapshot.Penalties {
		out.Penalties = append(out.Penalties, draftPenaltyAttemptDTO{
			DraftID:      attempt.DraftID,
			TeamID:       attempt.TeamID,
			KickerID:     attempt.KickerID,
			GoalkeeperID: attempt.GoalkeeperID,
			Scored:       attempt.Scored,
			Order:        attempt.Order,
		})
	}
	for _, assignment := range snapshot.Coaches {
		out.Coaches = append(out.Coaches, draftCoachAssignmentDTO{
			DraftID: assignment.DraftID,
			TeamID:  assignment.TeamID,
			CoachID: assignment.CoachID,
			Role:    assignment.Role,
		})
	}
	return out
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type setDraftScoreRequest struct {
	HomeScore        *int    `json:"home_score" validate:"omitempty,gte=0"`
	AwayScore        *int    `json:"away_score" validate:"omitempty,gte=0"`
	PenaltyHomeScore *int    `json:"penalty_home_score" validate:"omitempty,gte=0"`
	PenaltyAwayScore *int    `json:"penalty_away_score" validate:"omitempty,gte=0"`
	Status           *string `json:"status"`
}

type addDraftGoalRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Minute   int    `json:"minute" validate:"gte=0,lte=130"`
	Type     string `json:"type" validate:"required"`
	Note     string `json:"note" validate:"omitempty,max=500"`
}

// normalizeGoalType folds input to the canonical matchevent constants so
// downstream comparisons (own-goal exclusion in the scorer board) match.
func normalizeGoalType(value string) (string, bool) {
	goalType := strings.ToUpper(strings.TrimSpace(value))
	_, ok := matchevent.AllGoalTypes[goalType]
	return goalType, ok
}

type addDraftAssistRequest struct {
	PlayerID    string `json:"player_id" validate:"required"`
	GoalDraftID string `json:"goal_draft_id" validate:"required"`
	Note        string `json:"note" validate:"omitempty,max=500"`
}

type addDraftLineupEntryRequest struct {
	PlayerID      string `json:"player_id" validate:"required"`
	TeamID        string `json:"team_id" validate:"required"`
	Position      string `json:"position" validate:"required"`
	ShirtNumber   *int   `json:"shirt_number" validate:"omitempty,gte=1,lte=99"`
	MinutesPlayed int    `json:"minutes_played" validate:"gte=0,lte=130"`
	GoalsConceded *int   `json:"goals_conceded" validate:"omitempty,gte=0"`
}

type addDraftSubstitutionRequest struct {
	TeamID      string `json:"team_id" validate:"required"`
	PlayerInID  string `json:"player_in_id" validate:"required"`
	PlayerOutID string `json:"player_out_id" validate:"required,nefield=PlayerInID"`
	Minute      int    `json:"minute" validate:"gte=0,lte=130"`
	Note        string `json:"note" validate:"omitempty,max=500"`
}

type addDraftPenaltyRequest struct {
	TeamID       string `json:"team_id" validate:"required"`
	KickerID     string `json:"kicker_id" validate:"required"`
	GoalkeeperID string `json:"goalkeeper_id" validate:"omitempty"`
	Scored       bool   `json:"scored"`
	Order        int    `json:"order" validate:"gte=1"`
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraft")
	defer span.End()

	matchID := r.PathValue("matchID")
	store, err := h.draftDesk.Session(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftStateToDTO(matchID, store.Snapshot()))
}

func (h *Handler) SetDraftScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetDraftScore")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req setDraftScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	status := req.Status
	if status != nil {
		normalized := match.NormalizeStatus(*status)
		if !match.IsValidStatus(normalized) {
			writeError(ctx, w, fmt.Errorf("%w: unknown match status %q", usecase.ErrInvalidInput, *status))
			return
		}
		status = &normalized
	}

	store, err := h.draftDesk.Session(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	store.SetScore(draft.ScorePatch{
		HomeScore:        req.HomeScore,
		AwayScore:        req.AwayScore,
		PenaltyHomeScore: req.PenaltyHomeScore,
		PenaltyAwayScore: req.PenaltyAwayScore,
		Status:           status,
	})
	writeSuccess(ctx, w, http.StatusOK, draftStateToDTO(matchID, store.Snapshot()))
}

func (h *Handler) AddDraftGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddDraftGoal")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req addDraftGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	goalType, ok := normalizeGoalType(req.Type)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown goal type %q", usecase.ErrInvalidInput, req.Type))
		return
	}

	store, err := h.draftDesk.Session(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	draftID := store.AddGoal(draft.Goal{
		PlayerID: req.PlayerID,
		Minute:   req.Minute,
		Type:     goalType,
		Note:     req.Note,
	})
	writeSuccess(ctx, w, http.StatusCreated, map[string]any{
		"draft_id": draftID,
		"draft":    draftStateToDTO(matchID, store.Snapshot()),
	})
}

func (h *Handler) RemoveDraftGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveDraftGoal")
	defer span.End()

	matchID := r.PathValue("matchID")
	store, err := h.draftDesk.Session(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	store.RemoveGoal(r.PathValue("draftID"))
	writeSuccess(ctx, w, http.StatusOK, draftStateToDTO(matchID, store.Snapshot()))
}

func (h *Handler) AddDraftAssist(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddDraftAssist")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req addDraftAssistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	store, err := h.draftDesk.Session(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	draftID := store.AddAssist(draft.Assist{
		PlayerID:    req.PlayerID,
		GoalDraftID: req.GoalDraftID,
		Note:        req.Note,
	})
	writeSuccess(ctx, w, http.StatusCreated, map[string]any{
		"draft_id": draftID,
		"draft":    draftStateToDTO(matchID, store.Snapshot()),
	})
}

func (h *Handler) RemoveDraftAssist(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveDraftAssist")
	defer span.End()

	matchID := r.PathValue("matchID")
	store, err := h.draftDesk.Session(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	store.RemoveAssist(r.PathValue("draftID"))
	writeSuccess(ctx, w, http.StatusOK, draftStateToDTO(matchID, store.Snapshot()))
}

func (h *Handler) AddDraftLineupEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddDraftLineupEntry")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req addDraftLineupEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	store, err := h.draftDesk.Session(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	draftID := store.AddLineup(draft.LineupEntry{
		PlayerID:      req.PlayerID,
		TeamID:        req.TeamID,
		Position:      req.Position,
		ShirtNumber:   req.ShirtNumber,
		MinutesPlayed: req.MinutesPlayed,
		GoalsConceded: req.GoalsConceded,
	})
	writeSuccess(ctx, w, http.StatusCreated, map[string]any{
		"draft_id": draftID,
		"draft":    draftStateToDTO(matchID, store.Snapshot()),
	})
}

func (h *Handler) RemoveDraftLineupEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveDraftLineupEntry")
	defer span.End()

	matchID := r.PathValue("matchID")
	store, err := h.draftDesk.Session(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	store.RemoveLineup(r.PathValue("draftID"))
	writeSuccess(ctx, w, http.StatusOK, draftStateToDTO(matchID, store.Snapshot()))
}

func (h *Handler) AddDraftSubstitution(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddDraftSubstitution")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req addDraftSubstitutionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	store, err := h.draftDesk.Session(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	draftID := store.AddSubstitution(draft.Substitution{
		TeamID:      req.TeamID,
		PlayerInID:  req.PlayerInID,
		PlayerOutID: req.PlayerOutID,
		Minute:      req.Minute,
		Note:        req.Note,
	})
	writeSuccess(ctx, w, http.StatusCreated, map[string]any{
		"draft_id": draftID,
		"draft":    draftStateToDTO(matchID, store.Snapshot()),
	})
}

func (h *Handler) RemoveDraftSubstitution(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveDraftSubstitution")
	defer span.End()

	matchID := r.PathValue("matchID")
	store, err := h.draftDesk.Session(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	store.RemoveSubstitution(r.PathValue("draftID"))
	writeSuccess(ctx, w, http.StatusOK, draftStateToDTO(matchID, store.Snapshot()))
}

func (h *Handler) AddDraftPenalty(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddDraftPenalty")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req addDraftPenaltyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	store, err := h.draftDesk.Session(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	draftID := store.AddPenalty(draft.PenaltyAttempt{
		TeamID:       req.TeamID,
		KickerID:     req.KickerID,
		GoalkeeperID: req.GoalkeeperID,
		Scored:       req.Scored,
		Order:        req.Order,
	})
	writeSuccess(ctx, w, http.StatusCreated, map[string]any{
		"draft_id": draftID,
		"draft":    draftStateToDTO(matchID, store.Snapshot()),
	})
}

func (h *Handler) RemoveDraftPenalty(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveDraftPenalty")
	defer span.End()

	matchID := r.PathValue("matchID")
	store, err := h.draftDesk.Session(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	store.RemovePenalty(r.PathValue("draftID"))
	writeSuccess(ctx, w, http.StatusOK, draftStateToDTO(matchID, store.Snapshot()))
}

type addDraftCoachRequest struct {
	TeamID  string `json:"team_id" validate:"required"`
	CoachID string `json:"coach_id" validate:"required"`
	Role    string `json:"role" validate:"required"`
}

func (h *Handler) AddDraftCoach(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddDraftCoach")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req addDraftCoachRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	switch role {
	case coach.RoleHead, coach.RoleAssistant, coach.RoleKeeper:
	default:
		writeError(ctx, w, fmt.Errorf("%w: unknown coach role %q", usecase.ErrInvalidInput, req.Role))
		return
	}

	store, err := h.draftDesk.Session(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	draftID := store.AddCoach(draft.CoachAssignment{
		TeamID:  req.TeamID,
		CoachID: req.CoachID,
		Role:    role,
	})
	writeSuccess(ctx, w, http.StatusCreated, map[string]any{
		"draft_id": draftID,
		"draft":    draftStateToDTO(matchID, store.Snapshot()),
	})
}

func (h *Handler) RemoveDraftCoach(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveDraftCoach")
	defer span.End()

	matchID := r.PathValue("matchID")
	store, err := h.draftDesk.Session(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	store.RemoveCoach(r.PathValue("draftID"))
	writeSuccess(ctx, w, http.StatusOK, draftStateToDTO(matchID, store.Snapshot()))
}

func (h *Handler) ResetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetDraft")
	defer span.End()

	matchID := r.PathValue("matchID")
	store, err := h.draftDesk.Session(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	store.Reset()
	writeSuccess(ctx, w, http.StatusOK, draftStateToDTO(matchID, store.Snapshot()))
}

func (h *Handler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.DiscardDraft")
	defer span.End()

	h.draftDesk.Discard(r.PathValue("matchID"))
	w.WriteHeader(http.StatusNoContent)
}

// SubmitDraft validates the current snapshot and, only if it is fully
// consistent, flushes it to the backing store. A failed submission keeps
// the draft session alive so the operator can correct and retry; a
// successful one discards it.
func (h *Handler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitDraft")
	defer span.End()

	matchID := r.PathValue("matchID")
	store, ok := h.draftDesk.Peek(matchID)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: no draft session for match %s", usecase.ErrNotFound, matchID))
		return
	}

	snapshot := store.Snapshot()
	if result := draft.Validate(snapshot); !result.Valid {
		writeValidationFailure(ctx, w, result)
		return
	}

	if err := h.submissionService.Submit(ctx, matchID, snapshot); err != nil {
		h.logger.ErrorContext(ctx, "draft submission failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	// Staged coach assignments persist through their own path; they carry
	// no cross-entity references, so a failure never aborts the submission
	// and the assignment can be re-created via the coach endpoints.
	for _, assignment := range snapshot.Coaches {
		_, err := h.coachService.Assign(ctx, matchID, usecase.AssignCoachInput{
			TeamID:  assignment.TeamID,
			CoachID: assignment.CoachID,
			Role:    assignment.Role,
		})
		if err != nil {
			h.logger.WarnContext(ctx, "staged coach assignment failed",
				"match_id", matchID, "coach_id", assignment.CoachID, "error", err)
		}
	}

	h.draftDesk.Discard(matchID)
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"match_id":  matchID,
		"submitted": true,
	})
}
