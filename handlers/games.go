package handlers

import (
	"net/http"
	"time"

	"pickem-app-go/interfaces"
	"pickem-app-go/logging"
	"pickem-app-go/middleware"
	"pickem-app-go/models"
)

// GameHandler lists the schedule members pick from
type GameHandler struct {
	picks  interfaces.PickService
	loc    *time.Location
	logger *logging.Logger
}

// NewGameHandler creates a new game handler. loc is the league calendar used for slots.
func NewGameHandler(picks interfaces.PickService, loc *time.Location) *GameHandler {
	return &GameHandler{
		picks:  picks,
		loc:    loc,
		logger: logging.WithPrefix("GameHandler"),
	}
}

type gameView struct {
	models.Game
	Slot   models.Slot `json:"slot"`
	Spread string      `json:"spreadDisplay"`
	MyPick string      `json:"myPick,omitempty"` // signed-in member's team
	MyLock bool        `json:"myLock,omitempty"`
}

type gamesResponse struct {
	Week  int              `json:"week"`
	Rules models.WeekRules `json:"rules"`
	Games []gameView       `json:"games"`
}

// ListGames handles GET /api/games?week=N[&open_only=true]. With open_only,
// games that have kicked off are hidden. A signed-in member also sees their
// stored picks marked.
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	week, err := parseWeek(r)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	games, err := h.picks.WeekGames(r.Context(), week, queryBool(r, "open_only"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	var mine models.Selection
	if user := middleware.GetUserFromContext(r); user != nil {
		doc, err := h.picks.GetUserPicks(r.Context(), user.Email, week)
		if err != nil {
			h.logger.Warnf("Listing week %d without %s's picks: %v", week, user.Email, err)
		} else {
			mine = doc.Selection()
		}
	}

	rules := h.picks.RulesForWeek(week)
	views := make([]gameView, 0, len(games))
	for i := range games {
		views = append(views, gameView{
			Game:   games[i],
			Slot:   rules.SlotFor(games[i].Kickoff, h.loc),
			Spread: games[i].FormatSpread(),
			MyPick: mine.Picks[games[i].ID],
			MyLock: mine.Lock != "" && mine.Lock == games[i].ID,
		})
	}

	writeJSON(w, http.StatusOK, gamesResponse{Week: week, Rules: rules, Games: views})
}
