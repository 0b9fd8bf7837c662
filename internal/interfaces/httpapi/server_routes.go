package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /api/v1/matches/{matchID}", handler.GetMatchDetail)
	mux.HandleFunc("GET /api/v1/seasons/{season}/standings", handler.GetStandings)
	mux.HandleFunc("GET /api/v1/seasons/{season}/topscorers", handler.GetTopScorers)
	mux.HandleFunc("GET /api/v1/seasons/{season}/episodes", handler.ListEpisodes)
	mux.HandleFunc("GET /api/v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /api/v1/teams/{teamID}", handler.GetTeamProfile)
	mux.HandleFunc("GET /api/v1/teams/{teamID}/form", handler.GetTeamForm)
	mux.HandleFunc("GET /api/v1/teams/{teamID}/posts", handler.ListTeamPosts)
	mux.HandleFunc("POST /api/v1/teams/{teamID}/posts", handler.CreateTeamPost)
	mux.HandleFunc("GET /api/v1/head-to-head", handler.GetHeadToHead)
	mux.HandleFunc("GET /api/v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /api/v1/players/{playerID}", handler.GetPlayer)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAdminToken(adminToken, h)
	}

	mux.Handle("GET /internal/admin/matches/{matchID}/draft", admin(handler.GetDraft))
	mux.Handle("PUT /internal/admin/matches/{matchID}/draft/score", admin(handler.SetDraftScore))
	mux.Handle("POST /internal/admin/matches/{matchID}/draft/goals", admin(handler.AddDraftGoal))
	mux.Handle("DELETE /internal/admin/matches/{matchID}/draft/goals/{draftID}", admin(handler.RemoveDraftGoal))
	mux.Handle("POST /internal/admin/matches/{matchID}/draft/assists", admin(handler.AddDraftAssist))
	mux.Handle("DELETE /internal/admin/matches/{matchID}/draft/assists/{draftID}", admin(handler.RemoveDraftAssist))
	mux.Handle("POST /internal/admin/matches/{matchID}/draft/lineup", admin(handler.AddDraftLineupEntry))
	mux.Handle("DELETE /internal/admin/matches/{matchID}/draft/lineup/{draftID}", admin(handler.RemoveDraftLineupEntry))
	mux.Handle("POST /internal/admin/matches/{matchID}/draft/substitutions", admin(handler.AddDraftSubstitution))
	mux.Handle("DELETE /internal/admin/matches/{matchID}/draft/substitutions/{draftID}", admin(handler.RemoveDraftSubstitution))
	mux.Handle("POST /internal/admin/matches/{matchID}/draft/penalties", admin(handler.AddDraftPenalty))
	mux.Handle("DELETE /internal/admin/matches/{matchID}/draft/penalties/{draftID}", admin(handler.RemoveDraftPenalty))
	mux.Handle("POST /internal/admin/matches/{matchID}/draft/coaches", admin(handler.AddDraftCoach))
	mux.Handle("DELETE /internal/admin/matches/{matchID}/draft/coaches/{draftID}", admin(handler.RemoveDraftCoach))
	mux.Handle("POST /internal/admin/matches/{matchID}/draft/reset", admin(handler.ResetDraft))
	mux.Handle("DELETE /internal/admin/matches/{matchID}/draft", admin(handler.DiscardDraft))
	mux.Handle("POST /internal/admin/matches/{matchID}/draft/submit", admin(handler.SubmitDraft))

	mux.Handle("GET /internal/admin/matches/{matchID}/coaches", admin(handler.ListMatchCoaches))
	mux.Handle("POST /internal/admin/matches/{matchID}/coaches", admin(handler.AssignCoach))
	mux.Handle("DELETE /internal/admin/matches/{matchID}/coaches/{assignmentID}", admin(handler.UnassignCoach))
	mux.Handle("DELETE /internal/admin/posts/{postID}", admin(handler.DeletePost))
}
