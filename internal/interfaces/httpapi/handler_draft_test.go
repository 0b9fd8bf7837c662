package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/chaeyoungson/goalgirls/internal/domain/matchevent"
	"github.com/chaeyoungson/goalgirls/internal/infrastructure/repository/memory"
	"github.com/chaeyoungson/goalgirls/internal/platform/cache"
	idgen "github.com/chaeyoungson/goalgirls/internal/platform/id"
	"github.com/chaeyoungson/goalgirls/internal/platform/logging"
	"github.com/chaeyoungson/goalgirls/internal/usecase"
)

const testAdminToken = "entry-desk-token"

type draftTestEnv struct {
	router    http.Handler
	matchRepo *memory.MatchRepository
	eventRepo *memory.EventRepository
}

func newDraftTestEnv(t *testing.T) *draftTestEnv {
	t.Helper()

	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	eventRepo := memory.NewEventRepository()
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	coachRepo := memory.NewCoachRepository(memory.SeedCoaches())
	forumRepo := memory.NewForumRepository()

	logger := logging.NewNop()

	handler := NewHandler(
		usecase.NewMatchService(matchRepo, eventRepo),
		usecase.NewTeamService(teamRepo, playerRepo),
		usecase.NewPlayerService(playerRepo),
		usecase.NewStatsService(matchRepo, eventRepo, teamRepo, playerRepo, cache.NewStore(0), logger),
		usecase.NewForumService(teamRepo, forumRepo),
		usecase.NewCoachService(matchRepo, coachRepo, eventRepo),
		usecase.NewEpisodeService(nil),
		usecase.NewDraftDesk(matchRepo, idgen.NewRandomGenerator("draft_")),
		usecase.NewSubmissionService(matchRepo, eventRepo, logger),
		logger,
	)

	return &draftTestEnv{
		router:    NewRouter(handler, logger, []string{"*"}, testAdminToken),
		matchRepo: matchRepo,
		eventRepo: eventRepo,
	}
}

func (env *draftTestEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("X-Admin-Token", testAdminToken)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func envelopeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	data, ok := decodeEnvelope(t, rec)["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got body %s", rec.Body.String())
	}
	return data
}

func TestDraftEndpoints_RequireAdminToken(t *testing.T) {
	env := newDraftTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/internal/admin/matches/match-s3e01/draft", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}
}

func TestGetDraft_UnknownMatch(t *testing.T) {
	env := newDraftTestEnv(t)

	rec := env.do(t, http.MethodGet, "/internal/admin/matches/match-s9e99/draft", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestGetDraft_NewSessionStartsEmptyAndValid(t *testing.T) {
	env := newDraftTestEnv(t)

	rec := env.do(t, http.MethodGet, "/internal/admin/matches/match-s3e01/draft", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data := envelopeData(t, rec)
	if got, _ := data["match_id"].(string); got != "match-s3e01" {
		t.Fatalf("expected match_id match-s3e01, got %v", data["match_id"])
	}
	validation, ok := data["validation"].(map[string]any)
	if !ok {
		t.Fatalf("expected validation object, got %v", data["validation"])
	}
	if valid, _ := validation["valid"].(bool); !valid {
		t.Fatalf("expected empty draft to be valid, got %v", validation)
	}
}

func TestSetDraftScore_MismatchedGoalsFlagged(t *testing.T) {
	env := newDraftTestEnv(t)

	rec := env.do(t, http.MethodPut, "/internal/admin/matches/match-s3e01/draft/score",
		`{"home_score":1,"away_score":0,"status":"COMPLETED"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data := envelopeData(t, rec)
	validation, _ := data["validation"].(map[string]any)
	if valid, _ := validation["valid"].(bool); valid {
		t.Fatal("expected draft with score 1-0 and no goals to be invalid")
	}
	errs, _ := validation["errors"].(map[string]any)
	if _, ok := errs["goals"]; !ok {
		t.Fatalf("expected goals category error, got %v", errs)
	}
}

func TestRemoveDraftGoal_CascadesAssists(t *testing.T) {
	env := newDraftTestEnv(t)

	rec := env.do(t, http.MethodPost, "/internal/admin/matches/match-s3e01/draft/goals",
		`{"player_id":"pl-wld-02","minute":55,"type":"NORMAL"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	goalDraftID, _ := envelopeData(t, rec)["draft_id"].(string)
	if goalDraftID == "" {
		t.Fatal("expected draft_id for created goal")
	}

	rec = env.do(t, http.MethodPost, "/internal/admin/matches/match-s3e01/draft/assists",
		`{"player_id":"pl-wld-03","goal_draft_id":"`+goalDraftID+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodDelete, "/internal/admin/matches/match-s3e01/draft/goals/"+goalDraftID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data := envelopeData(t, rec)
	if goals, _ := data["goals"].([]any); len(goals) != 0 {
		t.Fatalf("expected no goals after removal, got %v", data["goals"])
	}
	if assists, _ := data["assists"].([]any); len(assists) != 0 {
		t.Fatalf("expected assists removed with their goal, got %v", data["assists"])
	}
}

func TestAddDraftGoal_RejectsUnknownType(t *testing.T) {
	env := newDraftTestEnv(t)

	for _, goalType := range []string{"BICYCLE_KICK", "OPEN_PLAY"} {
		rec := env.do(t, http.MethodPost, "/internal/admin/matches/match-s3e01/draft/goals",
			`{"player_id":"pl-wld-02","minute":55,"type":"`+goalType+`"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("type %s: expected status 400, got %d: %s", goalType, rec.Code, rec.Body.String())
		}
	}
}

func TestAddDraftGoal_NormalizesTypeToCanonical(t *testing.T) {
	env := newDraftTestEnv(t)

	rec := env.do(t, http.MethodPost, "/internal/admin/matches/match-s3e01/draft/goals",
		`{"player_id":"pl-wld-04","minute":80,"type":"own_goal"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	draftState, _ := envelopeData(t, rec)["draft"].(map[string]any)
	goals, _ := draftState["goals"].([]any)
	if len(goals) != 1 {
		t.Fatalf("expected 1 staged goal, got %v", draftState["goals"])
	}
	goal, _ := goals[0].(map[string]any)
	if got, _ := goal["type"].(string); got != "OWN_GOAL" {
		t.Fatalf("expected canonical type OWN_GOAL, got %v", goal["type"])
	}
}

// A lowercase own goal entered at the boundary must land in the store as
// the canonical constant, or the scorer board would credit the own-goal
// scorer.
func TestSubmitDraft_OwnGoalStoredCanonical(t *testing.T) {
	env := newDraftTestEnv(t)
	const matchID = "match-s3e01"
	base := "/internal/admin/matches/" + matchID + "/draft"

	rec := env.do(t, http.MethodPut, base+"/score",
		`{"home_score":0,"away_score":1,"status":"completed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set score: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodPost, base+"/goals",
		`{"player_id":"pl-wld-04","minute":80,"type":"own_goal"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add goal: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodPost, base+"/submit", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	goals, err := env.eventRepo.GoalsByMatch(context.Background(), matchID)
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(goals) != 1 || goals[0].Type != matchevent.GoalTypeOwnGoal {
		t.Fatalf("expected stored OWN_GOAL, got %+v", goals)
	}
}

func TestSetDraftScore_RejectsUnknownStatus(t *testing.T) {
	env := newDraftTestEnv(t)

	rec := env.do(t, http.MethodPut, "/internal/admin/matches/match-s3e01/draft/score",
		`{"status":"LIVE"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSetDraftScore_NormalizesStatus(t *testing.T) {
	env := newDraftTestEnv(t)

	rec := env.do(t, http.MethodPut, "/internal/admin/matches/match-s3e01/draft/score",
		`{"status":"postponed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data := envelopeData(t, rec)
	score, _ := data["score"].(map[string]any)
	if got, _ := score["status"].(string); got != "POSTPONED" {
		t.Fatalf("expected status POSTPONED, got %v", score["status"])
	}
}

func TestDraftCoaches_StagedAndFlushedOnSubmit(t *testing.T) {
	env := newDraftTestEnv(t)
	const matchID = "match-s3e01"
	base := "/internal/admin/matches/" + matchID + "/draft"

	rec := env.do(t, http.MethodPost, base+"/coaches",
		`{"team_id":"team-wildcats","coach_id":"coach-01","role":"head"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add coach: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	draftState, _ := envelopeData(t, rec)["draft"].(map[string]any)
	coaches, _ := draftState["coaches"].([]any)
	if len(coaches) != 1 {
		t.Fatalf("expected 1 staged coach, got %v", draftState["coaches"])
	}
	staged, _ := coaches[0].(map[string]any)
	if got, _ := staged["role"].(string); got != "HEAD" {
		t.Fatalf("expected canonical role HEAD, got %v", staged["role"])
	}

	rec = env.do(t, http.MethodPost, base+"/submit", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	assignments, err := env.eventRepo.CoachesByMatch(context.Background(), matchID)
	if err != nil {
		t.Fatalf("list coach assignments: %v", err)
	}
	if len(assignments) != 1 || assignments[0].Role != "HEAD" || assignments[0].CoachID != "coach-01" {
		t.Fatalf("expected flushed HEAD assignment for coach-01, got %+v", assignments)
	}
}

func TestAddDraftCoach_RejectsUnknownRole(t *testing.T) {
	env := newDraftTestEnv(t)

	rec := env.do(t, http.MethodPost, "/internal/admin/matches/match-s3e01/draft/coaches",
		`{"team_id":"team-wildcats","coach_id":"coach-01","role":"MASCOT"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSubmitDraft_NoSession(t *testing.T) {
	env := newDraftTestEnv(t)

	rec := env.do(t, http.MethodPost, "/internal/admin/matches/match-s3e01/draft/submit", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSubmitDraft_InvalidDraftKeepsSession(t *testing.T) {
	env := newDraftTestEnv(t)

	rec := env.do(t, http.MethodPut, "/internal/admin/matches/match-s3e01/draft/score",
		`{"home_score":2,"away_score":0,"status":"COMPLETED"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/internal/admin/matches/match-s3e01/draft/submit", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", rec.Code, rec.Body.String())
	}
	errorObj, _ := decodeEnvelope(t, rec)["error"].(map[string]any)
	if got, _ := errorObj["status"].(string); got != "FAILED_PRECONDITION" {
		t.Fatalf("expected FAILED_PRECONDITION, got %v", errorObj["status"])
	}

	// The session survives a rejected submission, so the score is intact.
	rec = env.do(t, http.MethodGet, "/internal/admin/matches/match-s3e01/draft", "")
	data := envelopeData(t, rec)
	score, _ := data["score"].(map[string]any)
	if got, _ := score["home_score"].(float64); got != 2 {
		t.Fatalf("expected home_score 2 after rejected submit, got %v", score["home_score"])
	}
}

func TestSubmitDraft_FlushesEventsAndDiscardsSession(t *testing.T) {
	env := newDraftTestEnv(t)
	const matchID = "match-s3e01"
	base := "/internal/admin/matches/" + matchID + "/draft"

	rec := env.do(t, http.MethodPut, base+"/score",
		`{"home_score":1,"away_score":0,"status":"COMPLETED"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set score: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, base+"/goals",
		`{"player_id":"pl-wld-02","minute":55,"type":"NORMAL"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add goal: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	goalDraftID, _ := envelopeData(t, rec)["draft_id"].(string)

	rec = env.do(t, http.MethodPost, base+"/assists",
		`{"player_id":"pl-wld-03","goal_draft_id":"`+goalDraftID+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add assist: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, base+"/lineup",
		`{"player_id":"pl-wld-01","team_id":"team-wildcats","position":"GK","shirt_number":1,"minutes_played":90,"goals_conceded":0}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add lineup entry: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, base+"/substitutions",
		`{"team_id":"team-wildcats","player_in_id":"pl-wld-04","player_out_id":"pl-wld-03","minute":70}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add substitution: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, base+"/submit", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := envelopeData(t, rec)
	if submitted, _ := data["submitted"].(bool); !submitted {
		t.Fatalf("expected submitted=true, got %v", data)
	}

	ctx := context.Background()

	updated, found, err := env.matchRepo.GetByID(ctx, matchID)
	if err != nil || !found {
		t.Fatalf("load match after submit: found=%v err=%v", found, err)
	}
	if updated.HomeScore != 1 || updated.AwayScore != 0 {
		t.Fatalf("expected score 1-0 persisted, got %d-%d", updated.HomeScore, updated.AwayScore)
	}

	goals, err := env.eventRepo.GoalsByMatch(ctx, matchID)
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("expected 1 stored goal, got %d", len(goals))
	}
	if strings.HasPrefix(goals[0].ID, "draft_") {
		t.Fatalf("stored goal kept its draft id: %s", goals[0].ID)
	}

	assists, err := env.eventRepo.AssistsByMatch(ctx, matchID)
	if err != nil {
		t.Fatalf("list assists: %v", err)
	}
	if len(assists) != 1 {
		t.Fatalf("expected 1 stored assist, got %d", len(assists))
	}
	if assists[0].GoalID != goals[0].ID {
		t.Fatalf("expected assist to reference stored goal %s, got %s", goals[0].ID, assists[0].GoalID)
	}

	// A successful submission discards the session.
	rec = env.do(t, http.MethodPost, base+"/submit", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on resubmit, got %d", rec.Code)
	}
}

func TestDiscardDraft(t *testing.T) {
	env := newDraftTestEnv(t)

	rec := env.do(t, http.MethodPut, "/internal/admin/matches/match-s3e02/draft/score",
		`{"home_score":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/internal/admin/matches/match-s3e02/draft", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}

	// Next access starts fresh.
	rec = env.do(t, http.MethodGet, "/internal/admin/matches/match-s3e02/draft", "")
	data := envelopeData(t, rec)
	score, _ := data["score"].(map[string]any)
	if got, _ := score["home_score"].(float64); got != 0 {
		t.Fatalf("expected fresh draft after discard, got home_score %v", score["home_score"])
	}
}
