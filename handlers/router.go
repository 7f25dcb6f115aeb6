package handlers

import (
	"net/http"

	"pickem-app-go/middleware"

	"github.com/gorilla/mux"
)

// Router wires the API routes
type Router struct {
	Auth        *AuthHandler
	Scores      *ScoreHandler
	Picks       *PickHandler
	Games       *GameHandler
	AuthMW      *middleware.AuthMiddleware
	BehindProxy bool
}

// Handler builds the mux router
func (rt Router) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)
	r.Use(middleware.SecurityHeaders(rt.BehindProxy))

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", rt.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/weekly-scores", rt.Scores.WeeklyScores).Methods(http.MethodGet)
	api.HandleFunc("/weekly-scores/stored", rt.Scores.StoredScores).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", rt.Scores.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/results", rt.Scores.Results).Methods(http.MethodGet)
	api.Handle("/games", rt.AuthMW.OptionalAuth(http.HandlerFunc(rt.Games.ListGames))).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(rt.AuthMW.RequireAuth)
	protected.HandleFunc("/me", rt.Auth.Me).Methods(http.MethodGet)
	protected.HandleFunc("/picks", rt.Picks.GetPicks).Methods(http.MethodGet)
	protected.HandleFunc("/picks", rt.Picks.SubmitPicks).Methods(http.MethodPost)
	protected.HandleFunc("/picks/validate", rt.Picks.ValidatePick).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no such route")
	})
	return r
}
