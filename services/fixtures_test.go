package services

import (
	"time"

	"pickem-app-go/models"

	"github.com/itbasis/go-clock"
)

var pacific = mustLocation("America/Los_Angeles")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Week 1 of the 2025 season in league-local time
var (
	thursdayKickoff = time.Date(2025, 9, 4, 17, 20, 0, 0, pacific)
	sundayEarly     = time.Date(2025, 9, 7, 10, 0, 0, 0, pacific)
	sundayLate      = time.Date(2025, 9, 7, 13, 25, 0, 0, pacific)
	sundayNight     = time.Date(2025, 9, 7, 17, 20, 0, 0, pacific)
	mondayKickoff   = time.Date(2025, 9, 8, 17, 15, 0, 0, pacific)
	beforeWeekOne   = time.Date(2025, 9, 3, 12, 0, 0, 0, pacific)
)

func weekOneGames() []models.Game {
	return []models.Game{
		{ID: "thu", Week: 1, Home: "PHI", Away: "DAL", Spread: -7, Kickoff: thursdayKickoff},
		{ID: "thu2", Week: 1, Home: "LAC", Away: "KC", Spread: 3, Kickoff: thursdayKickoff.Add(3 * time.Hour)},
		{ID: "sun1", Week: 1, Home: "ATL", Away: "TB", Spread: 1.5, Kickoff: sundayEarly},
		{ID: "sun2", Week: 1, Home: "CLE", Away: "CIN", Spread: 5.5, Kickoff: sundayEarly},
		{ID: "sun3", Week: 1, Home: "DEN", Away: "TEN", Spread: -8, Kickoff: sundayLate},
		{ID: "sun4", Week: 1, Home: "GB", Away: "DET", Spread: 2.5, Kickoff: sundayLate},
		{ID: "snf", Week: 1, Home: "BUF", Away: "BAL", Spread: -1, Kickoff: sundayNight},
		{ID: "mon", Week: 1, Home: "CHI", Away: "MIN", Spread: 1, Kickoff: mondayKickoff},
	}
}

func mockClockAt(at time.Time) *clock.Mock {
	c := clock.NewMock()
	c.Set(at)
	return c
}

func selection(lock string, picks map[string]string) models.Selection {
	sel := models.NewSelection()
	for gameID, team := range picks {
		sel.Picks[gameID] = team
	}
	sel.Lock = lock
	return sel
}
