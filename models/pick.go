package models

import (
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pick represents one member's against-the-spread selection for one game
type Pick struct {
	UserID       string    `json:"userId" bson:"user_id"`
	GameID       string    `json:"gameId" bson:"game_id"`
	SelectedTeam string    `json:"selectedTeam" bson:"selected_team"`
	IsLock       bool      `json:"isLock" bson:"is_lock"`
	SubmittedAt  time.Time `json:"submittedAt" bson:"submitted_at"`
}

// PickReview is a stored pick as scoring will treat it: its slot, whether it
// fits the caps, and whether it is the lock that counts
type PickReview struct {
	Pick
	Slot         Slot            `json:"slot,omitempty"`
	Counted      bool            `json:"counted"`
	CountsAsLock bool            `json:"countsAsLock"`
	Reason       RejectionReason `json:"reason,omitempty"` // cap that dropped the pick
	Warning      string          `json:"warning,omitempty"`
}

// Selection is a member's set of picks for a week: game ID -> team, plus the lock
type Selection struct {
	Picks map[string]string `json:"picks"`
	Lock  string            `json:"lock,omitempty"`
}

// NewSelection returns an empty selection
func NewSelection() Selection {
	return Selection{Picks: make(map[string]string)}
}

// Clone returns a deep copy so callers can mutate without touching the original
func (s Selection) Clone() Selection {
	out := Selection{Picks: make(map[string]string, len(s.Picks)), Lock: s.Lock}
	for gameID, team := range s.Picks {
		out.Picks[gameID] = team
	}
	return out
}

// Len returns the number of picks
func (s Selection) Len() int {
	return len(s.Picks)
}

// Has reports whether the selection contains a pick on gameID
func (s Selection) Has(gameID string) bool {
	_, ok := s.Picks[gameID]
	return ok
}

// GameIDs returns the picked game IDs in sorted order
func (s Selection) GameIDs() []string {
	ids := make([]string, 0, len(s.Picks))
	for gameID := range s.Picks {
		ids = append(ids, gameID)
	}
	sort.Strings(ids)
	return ids
}

// ToPicks expands the selection into Pick rows for userID, stamped with at
func (s Selection) ToPicks(userID string, at time.Time) []Pick {
	picks := make([]Pick, 0, len(s.Picks))
	for _, gameID := range s.GameIDs() {
		picks = append(picks, Pick{
			UserID:       userID,
			GameID:       gameID,
			SelectedTeam: NormalizeTeam(s.Picks[gameID]),
			IsLock:       gameID == s.Lock,
			SubmittedAt:  at,
		})
	}
	return picks
}

// SelectionFromPicks folds Pick rows into a selection. Later rows for the same game
// replace earlier ones. Returns the number of rows flagged as a lock so callers can
// detect more than one.
func SelectionFromPicks(picks []Pick) (Selection, int) {
	sel := NewSelection()
	for _, p := range picks {
		sel.Picks[p.GameID] = NormalizeTeam(p.SelectedTeam)
	}

	locks := 0
	for _, p := range picks {
		if p.IsLock && sel.Picks[p.GameID] == NormalizeTeam(p.SelectedTeam) {
			locks++
			if sel.Lock == "" {
				sel.Lock = p.GameID
			}
		}
	}
	return sel, locks
}

// ErrRevisionMismatch is returned by storage when a WeeklyPicks write loses a
// race with another write for the same (user, week)
var ErrRevisionMismatch = errors.New("weekly picks revision mismatch")

// WeeklyPicks is the stored document holding one member's picks for one week.
// Revision increases on every successful write and guards concurrent submissions.
type WeeklyPicks struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"userId"`
	Week      int                `bson:"week" json:"week"`
	Picks     []Pick             `bson:"picks" json:"picks"`
	Revision  int64              `bson:"revision" json:"revision"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Selection returns the document's picks as a selection
func (wp *WeeklyPicks) Selection() Selection {
	if wp == nil {
		return NewSelection()
	}
	sel, _ := SelectionFromPicks(wp.Picks)
	return sel
}
