package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeeklyScore is one member's computed result for a week
type WeeklyScore struct {
	UserID        string `json:"userId" bson:"user_id"`
	Week          int    `json:"week" bson:"week"`
	Correct       int    `json:"correct" bson:"correct"`             // correct non-lock picks
	LockCorrect   int    `json:"lockCorrect" bson:"lock_correct"`     // correct (or pushed) lock picks
	LockIncorrect int    `json:"lockIncorrect" bson:"lock_incorrect"` // missed lock picks
	PerfectBonus  int    `json:"perfectBonus" bson:"perfect_bonus"`
	WeeklyPoints  int    `json:"weeklyPoints" bson:"weekly_points"`
	Retained      int    `json:"retained" bson:"retained"` // picks kept after slot caps
	Resolved      int    `json:"resolved" bson:"resolved"` // retained picks with a final result
	Pending       int    `json:"pending" bson:"pending"`   // retained picks still waiting on a result
}

// TotalCorrect returns correct picks including locks
func (ws *WeeklyScore) TotalCorrect() int {
	return ws.Correct + ws.LockCorrect
}

// LockBonus returns the bonus earned on top of the base point for correct locks
func (ws *WeeklyScore) LockBonus() int {
	return ws.LockCorrect * LockBonusPoints
}

// CalculatePoints applies 1 per correct pick, 3 per correct lock (1 base + 2 bonus),
// -2 per missed lock, plus any perfect-week bonus
func (ws *WeeklyScore) CalculatePoints() int {
	return ws.Correct*CorrectPickPoints +
		ws.LockCorrect*CorrectPickPoints + ws.LockBonus() +
		ws.LockIncorrect*LockMissPenalty +
		ws.PerfectBonus
}

// HasSubmitted reports whether the member had any pick counted this week
func (ws *WeeklyScore) HasSubmitted() bool {
	return ws.Retained > 0
}

// IsComplete returns true when every retained pick has a result
func (ws *WeeklyScore) IsComplete() bool {
	return ws.Pending == 0
}

// DataWarnings counts records skipped because the snapshot was inconsistent
type DataWarnings struct {
	OrphanPicks      int `json:"orphanPicks"`      // pick references a game not in the snapshot
	UnmatchedResults int `json:"unmatchedResults"` // result matches no game of the week
	DuplicatePicks   int `json:"duplicatePicks"`   // extra rows for the same (user, game)
	InvalidTeams     int `json:"invalidTeams"`     // selected team is neither side of the game
	ExtraLocks       int `json:"extraLocks"`       // more than one lock among retained picks
	DroppedOverCap   int `json:"droppedOverCap"`   // picks beyond the slot caps, not scored
}

// Total returns the number of integrity problems (over-cap drops are rule enforcement, not drift)
func (w DataWarnings) Total() int {
	return w.OrphanPicks + w.UnmatchedResults + w.DuplicatePicks + w.InvalidTeams + w.ExtraLocks
}

// WeekReport is the scoring output for one week
type WeekReport struct {
	Week     int           `json:"week"`
	Rules    string        `json:"rules"`
	Scores   []WeeklyScore `json:"scores"`
	Warnings DataWarnings  `json:"warnings"`
}

// Submitted returns only the scores of members with at least one retained pick
func (r *WeekReport) Submitted() []WeeklyScore {
	out := make([]WeeklyScore, 0, len(r.Scores))
	for _, s := range r.Scores {
		if s.HasSubmitted() {
			out = append(out, s)
		}
	}
	return out
}

// ScoreFor returns the score for a user
func (r *WeekReport) ScoreFor(userID string) (WeeklyScore, bool) {
	for _, s := range r.Scores {
		if s.UserID == userID {
			return s, true
		}
	}
	return WeeklyScore{}, false
}

// StoredWeeklyScore is a persisted score row
type StoredWeeklyScore struct {
	WeeklyScore `bson:",inline"`
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// LeaderboardEntry is one ranked row of the season standings
type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	UserID       string `json:"userId"`
	DisplayName  string `json:"displayName"`
	TotalCorrect int    `json:"totalCorrect"`
	TotalPoints  int    `json:"totalPoints"`
	WeeksPlayed  int    `json:"weeksPlayed"`
}
