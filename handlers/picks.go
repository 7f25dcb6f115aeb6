package handlers

import (
	"net/http"

	"pickem-app-go/interfaces"
	"pickem-app-go/logging"
	"pickem-app-go/middleware"
	"pickem-app-go/models"
	"pickem-app-go/services"
)

// PickHandler serves the pick workflow for the authenticated member
type PickHandler struct {
	picks     interfaces.PickService
	validator *requestValidator
	logger    *logging.Logger
}

// NewPickHandler creates a new pick handler
func NewPickHandler(picks interfaces.PickService) *PickHandler {
	return &PickHandler{
		picks:     picks,
		validator: newRequestValidator(),
		logger:    logging.WithPrefix("PickHandler"),
	}
}

type validatePickRequest struct {
	Week    int              `json:"week" validate:"required,min=1"`
	Current models.Selection `json:"current"`
	GameID  string           `json:"gameId" validate:"omitempty,max=64"`
	Team    string           `json:"team" validate:"required_if=Lock false,max=64"`
	Lock    bool             `json:"lock"`
}

type validatePickResponse struct {
	Accepted     bool                   `json:"accepted"`
	Reason       models.RejectionReason `json:"reason,omitempty"`
	Message      string                 `json:"message,omitempty"`
	ResultingSet models.Selection       `json:"resultingSet"`
}

type pickItem struct {
	GameID string `json:"gameId" validate:"required,max=64"`
	Team   string `json:"team" validate:"required,max=64"`
	Lock   bool   `json:"lock"`
}

type submitPicksRequest struct {
	Week     int        `json:"week" validate:"required,min=1"`
	Picks    []pickItem `json:"picks" validate:"max=32,dive"`
	Revision *int64     `json:"revision,omitempty" validate:"omitempty,min=0"`
}

type submitPicksResponse struct {
	Accepted bool                `json:"accepted"`
	Picks    *models.WeeklyPicks `json:"picks"`
}

type userPicksResponse struct {
	Week      int                 `json:"week"`
	Rules     models.WeekRules    `json:"rules"`
	Selection models.Selection    `json:"selection"`
	Picks     []models.PickReview `json:"picks"`
	Revision  int64               `json:"revision"`
}

// GetPicks handles GET /api/picks?week=N
func (h *PickHandler) GetPicks(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	week, err := parseWeek(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	doc, err := h.picks.GetUserPicks(r.Context(), user.Email, week)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	reviews, err := h.picks.ReviewPicks(r.Context(), week, doc.Picks)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, userPicksResponse{
		Week:      week,
		Rules:     h.picks.RulesForWeek(week),
		Selection: doc.Selection(),
		Picks:     reviews,
		Revision:  doc.Revision,
	})
}

// ValidatePick handles POST /api/picks/validate. It applies one toggle or lock
// change to the client-held selection and stores nothing.
func (h *PickHandler) ValidatePick(w http.ResponseWriter, r *http.Request) {
	var req validatePickRequest
	if !h.validator.decode(w, r, &req) {
		return
	}

	change := services.Change{GameID: req.GameID, Team: req.Team, Lock: req.Lock}
	decision, err := h.picks.ValidateChange(r.Context(), req.Week, req.Current, change)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	resp := validatePickResponse{
		Accepted:     decision.Accepted,
		Reason:       decision.Reason,
		ResultingSet: decision.Selection,
	}
	if !decision.Accepted {
		resp.Message = decision.Reason.Message()
	}
	writeJSON(w, http.StatusOK, resp)
}

// SubmitPicks handles POST /api/picks, the final submission for a week
func (h *PickHandler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	var req submitPicksRequest
	if !h.validator.decode(w, r, &req) {
		return
	}

	picks := make([]models.Pick, 0, len(req.Picks))
	for _, p := range req.Picks {
		picks = append(picks, models.Pick{
			UserID:       user.Email,
			GameID:       p.GameID,
			SelectedTeam: models.NormalizeTeam(p.Team),
			IsLock:       p.Lock,
		})
	}

	decision, doc, err := h.picks.SubmitPicks(r.Context(), services.Submission{
		UserID:   user.Email,
		Week:     req.Week,
		Picks:    picks,
		Revision: req.Revision,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if !decision.Accepted {
		writeRejection(w, decision.Reason)
		return
	}

	writeJSON(w, http.StatusOK, submitPicksResponse{Accepted: true, Picks: doc})
}
