package handlers

import (
	"net/http"

	"pickem-app-go/interfaces"
	"pickem-app-go/logging"
	"pickem-app-go/models"
)

// ScoreHandler serves weekly scores and season standings
type ScoreHandler struct {
	scoring interfaces.ScoringService
	logger  *logging.Logger
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoring interfaces.ScoringService) *ScoreHandler {
	return &ScoreHandler{
		scoring: scoring,
		logger:  logging.WithPrefix("ScoreHandler"),
	}
}

// WeeklyScores handles GET /api/weekly-scores?week=N[&submitted_only=true].
// Every member is listed, plus any other user with picks that week. With
// submitted_only only users with at least one counted pick remain.
func (h *ScoreHandler) WeeklyScores(w http.ResponseWriter, r *http.Request) {
	week, err := parseWeek(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	report, err := h.scoring.WeekReport(r.Context(), week)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if queryBool(r, "submitted_only") {
		report.Scores = report.Submitted()
	}
	writeJSON(w, http.StatusOK, report)
}

type storedScoresResponse struct {
	Week   int                        `json:"week"`
	Scores []models.StoredWeeklyScore `json:"scores"`
}

// StoredScores handles GET /api/weekly-scores/stored?week=N, the rows last
// written by a recalculation
func (h *ScoreHandler) StoredScores(w http.ResponseWriter, r *http.Request) {
	week, err := parseWeek(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	rows, err := h.scoring.StoredScores(r.Context(), week)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if rows == nil {
		rows = []models.StoredWeeklyScore{}
	}
	writeJSON(w, http.StatusOK, storedScoresResponse{Week: week, Scores: rows})
}

// Results handles GET /api/results?week=N, the week's final scores with
// the side that covered each spread
func (h *ScoreHandler) Results(w http.ResponseWriter, r *http.Request) {
	week, err := parseWeek(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	results, err := h.scoring.WeekResults(r.Context(), week)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

type leaderboardResponse struct {
	Entries []models.LeaderboardEntry `json:"entries"`
}

// Leaderboard handles GET /api/leaderboard
func (h *ScoreHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scoring.Leaderboard(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{Entries: entries})
}
