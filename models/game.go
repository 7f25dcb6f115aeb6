package models

import (
	"fmt"
	"strings"
	"time"
)

// Game represents one scheduled matchup in a pool week
type Game struct {
	ID      string    `json:"id" bson:"_id"`
	Week    int       `json:"week" bson:"week"`
	Home    string    `json:"home" bson:"home"`
	Away    string    `json:"away" bson:"away"`
	Spread  float64   `json:"spread" bson:"spread"` // Added to the home score (negative = home team favored)
	Kickoff time.Time `json:"kickoff" bson:"kickoff"`
}

// HasStarted returns true if kickoff is at or before now
func (g *Game) HasStarted(now time.Time) bool {
	return !g.Kickoff.After(now)
}

// HasTeam reports whether team names either side of the game (names are trimmed first)
func (g *Game) HasTeam(team string) bool {
	t := NormalizeTeam(team)
	return t != "" && (t == NormalizeTeam(g.Home) || t == NormalizeTeam(g.Away))
}

// Description returns "AWAY @ HOME"
func (g *Game) Description() string {
	return fmt.Sprintf("%s @ %s", NormalizeTeam(g.Away), NormalizeTeam(g.Home))
}

// FormatSpread returns the home spread for display
func (g *Game) FormatSpread() string {
	if g.Spread > 0 {
		return fmt.Sprintf("+%.1f", g.Spread)
	} else if g.Spread < 0 {
		return fmt.Sprintf("%.1f", g.Spread)
	}
	return "PK" // Pick 'em
}

// Result is the official final score for a game
type Result struct {
	Week      int    `json:"week" bson:"week"`
	Home      string `json:"home" bson:"home"`
	Away      string `json:"away" bson:"away"`
	HomeScore int    `json:"homeScore" bson:"homeScore"`
	AwayScore int    `json:"awayScore" bson:"awayScore"`
}

// NormalizeTeam trims whitespace from a team name before comparison
func NormalizeTeam(team string) string {
	return strings.TrimSpace(team)
}

// matchupKey identifies a (week, home, away) triple after normalization
type matchupKey struct {
	week int
	home string
	away string
}

// ResultIndex matches results to games in either home/away orientation
type ResultIndex struct {
	byKey   map[matchupKey]*Result
	matched map[*Result]bool
}

// NewResultIndex indexes results by (week, home, away)
func NewResultIndex(results []Result) *ResultIndex {
	idx := &ResultIndex{
		byKey:   make(map[matchupKey]*Result, len(results)),
		matched: make(map[*Result]bool, len(results)),
	}
	for i := range results {
		r := &results[i]
		key := matchupKey{week: r.Week, home: NormalizeTeam(r.Home), away: NormalizeTeam(r.Away)}
		if _, exists := idx.byKey[key]; exists {
			continue // at most one result per game, first one wins
		}
		idx.byKey[key] = r
	}
	return idx
}

// Lookup finds the result for a game, trying the stored orientation first and then
// the mirrored one. The returned result is always oriented to the game.
func (idx *ResultIndex) Lookup(game *Game) (Result, bool) {
	home, away := NormalizeTeam(game.Home), NormalizeTeam(game.Away)

	if r, ok := idx.byKey[matchupKey{week: game.Week, home: home, away: away}]; ok {
		idx.matched[r] = true
		return Result{Week: r.Week, Home: home, Away: away, HomeScore: r.HomeScore, AwayScore: r.AwayScore}, true
	}

	if r, ok := idx.byKey[matchupKey{week: game.Week, home: away, away: home}]; ok {
		idx.matched[r] = true
		return Result{Week: r.Week, Home: home, Away: away, HomeScore: r.AwayScore, AwayScore: r.HomeScore}, true
	}

	return Result{}, false
}

// Unmatched counts indexed results for a week that no Lookup has claimed
func (idx *ResultIndex) Unmatched(week int) int {
	count := 0
	for key, r := range idx.byKey {
		if key.week == week && !idx.matched[r] {
			count++
		}
	}
	return count
}
