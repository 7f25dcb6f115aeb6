package models

// CoveringSide is the side that wins once the spread is applied
type CoveringSide string

const (
	SideHome       CoveringSide = "HOME"
	SideAway       CoveringSide = "AWAY"
	SidePush       CoveringSide = "PUSH"
	SideUnresolved CoveringSide = "UNRESOLVED"
)

// Outcome is the spread-adjusted result of one game
type Outcome struct {
	Side CoveringSide `json:"coveringSide"`
	Team string       `json:"coveringTeam,omitempty"` // empty on PUSH and UNRESOLVED
	home string
	away string
}

// IsResolved returns true once a final result has been applied
func (o Outcome) IsResolved() bool {
	return o.Side != SideUnresolved && o.Side != ""
}

// Covers reports whether a pick on team is correct for this outcome.
// On a push both teams cover.
func (o Outcome) Covers(team string) bool {
	t := NormalizeTeam(team)
	switch o.Side {
	case SideHome:
		return t == o.home
	case SideAway:
		return t == o.away
	case SidePush:
		return t == o.home || t == o.away
	default:
		return false
	}
}

// Unresolved is the outcome for a game without a result
func Unresolved() Outcome {
	return Outcome{Side: SideUnresolved}
}

// Resolve applies the home spread to the final score:
// home + spread > away covers HOME, < away covers AWAY, equal is a PUSH.
func Resolve(game *Game, result *Result) Outcome {
	if game == nil || result == nil {
		return Unresolved()
	}

	home, away := NormalizeTeam(game.Home), NormalizeTeam(game.Away)
	adjustedHome := float64(result.HomeScore) + game.Spread
	awayScore := float64(result.AwayScore)

	switch {
	case adjustedHome > awayScore:
		return Outcome{Side: SideHome, Team: home, home: home, away: away}
	case adjustedHome < awayScore:
		return Outcome{Side: SideAway, Team: away, home: home, away: away}
	default:
		return Outcome{Side: SidePush, home: home, away: away}
	}
}

// ResultReport is a final score oriented to its scheduled game, with the
// spread outcome
type ResultReport struct {
	Result
	GameID  string  `json:"gameId"`
	Spread  float64 `json:"spread"`
	Outcome Outcome `json:"outcome"`
}

// WeekResults lists a week's final scores in kickoff order
type WeekResults struct {
	Week      int            `json:"week"`
	Results   []ResultReport `json:"results"`
	Unmatched int            `json:"unmatchedResults"` // results that fit no scheduled game
}
