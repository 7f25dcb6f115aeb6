package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSelection_CloneIsIndependent(t *testing.T) {
	sel := NewSelection()
	sel.Picks["g1"] = "KC"
	sel.Lock = "g1"

	clone := sel.Clone()
	clone.Picks["g2"] = "BUF"
	clone.Lock = "g2"

	assert.Equal(t, 1, sel.Len())
	assert.Equal(t, "g1", sel.Lock)
	assert.Equal(t, 2, clone.Len())
}

func TestSelection_ToPicks(t *testing.T) {
	at := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	sel := Selection{Picks: map[string]string{"g2": " BUF ", "g1": "KC"}, Lock: "g2"}

	picks := sel.ToPicks("a@example.com", at)

	assert.Equal(t, []Pick{
		{UserID: "a@example.com", GameID: "g1", SelectedTeam: "KC", SubmittedAt: at},
		{UserID: "a@example.com", GameID: "g2", SelectedTeam: "BUF", IsLock: true, SubmittedAt: at},
	}, picks)
}

func TestSelectionFromPicks(t *testing.T) {
	sel, locks := SelectionFromPicks([]Pick{
		{GameID: "g1", SelectedTeam: "KC", IsLock: true},
		{GameID: "g2", SelectedTeam: "BUF"},
		{GameID: "g3", SelectedTeam: "DAL", IsLock: true},
	})

	assert.Equal(t, map[string]string{"g1": "KC", "g2": "BUF", "g3": "DAL"}, sel.Picks)
	assert.Equal(t, "g1", sel.Lock)
	assert.Equal(t, 2, locks)
}

func TestWeeklyPicks_SelectionOnNil(t *testing.T) {
	var doc *WeeklyPicks
	sel := doc.Selection()

	assert.NotNil(t, sel.Picks)
	assert.Equal(t, 0, sel.Len())
}

func TestWeeklyScore_CalculatePoints(t *testing.T) {
	tests := []struct {
		name  string
		score WeeklyScore
		want  int
	}{
		{"perfect week with correct lock", WeeklyScore{Correct: 4, LockCorrect: 1, PerfectBonus: 3}, 10},
		{"missed lock", WeeklyScore{Correct: 3, LockIncorrect: 1}, 1},
		{"nothing correct", WeeklyScore{}, 0},
		{"only a missed lock goes negative", WeeklyScore{LockIncorrect: 1}, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.score.CalculatePoints())
		})
	}
}

func TestWeeklyScore_LockBonus(t *testing.T) {
	ws := WeeklyScore{Correct: 2, LockCorrect: 1}
	assert.Equal(t, 2, ws.LockBonus())
	assert.Equal(t, ws.Correct+ws.LockCorrect+ws.LockBonus(), ws.CalculatePoints())
}

func TestUser_PasswordAndDisplayName(t *testing.T) {
	u := &User{Email: "pat@example.com"}
	assert.NoError(t, u.HashPassword("hunter22"))

	assert.True(t, u.CheckPassword("hunter22"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.Equal(t, "pat@example.com", u.DisplayName())

	u.Username = "Pat"
	assert.Equal(t, Member{UserID: "pat@example.com", DisplayName: "Pat"}, u.AsMember())
	assert.Empty(t, u.ToSafeUser().Password)
}
