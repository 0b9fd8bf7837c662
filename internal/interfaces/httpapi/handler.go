package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/chaeyoungson/goalgirls/internal/platform/logging"
	"github.com/chaeyoungson/goalgirls/internal/usecase"
)

type Handler struct {
	matchService      *usecase.MatchService
	teamService       *usecase.TeamService
	playerService     *usecase.PlayerService
	statsService      *usecase.StatsService
	forumService      *usecase.ForumService
	coachService      *usecase.CoachService
	episodeService    *usecase.EpisodeService
	draftDesk         *usecase.DraftDesk
	submissionService *usecase.SubmissionService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	statsService *usecase.StatsService,
	forumService *usecase.ForumService,
	coachService *usecase.CoachService,
	episodeService *usecase.EpisodeService,
	draftDesk *usecase.DraftDesk,
	submissionService *usecase.SubmissionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:      matchService,
		teamService:       teamService,
		playerService:     playerService,
		statsService:      statsService,
		forumService:      forumService,
		coachService:      coachService,
		episodeService:    episodeService,
		draftDesk:         draftDesk,
		submissionService: submissionService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
