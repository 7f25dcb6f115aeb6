package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		spread    float64
		homeScore int
		awayScore int
		wantSide  CoveringSide
		wantTeam  string
	}{
		{"favored home wins by exactly the spread is a push", -3, 20, 17, SidePush, ""},
		{"favored home covers", -3, 24, 17, SideHome, "KC"},
		{"favored home wins but does not cover", -7, 20, 17, SideAway, "BUF"},
		{"underdog home loses but covers", 3.5, 20, 23, SideHome, "KC"},
		{"underdog home loses by more than spread", 3.5, 10, 24, SideAway, "BUF"},
		{"pick em decided straight up", 0, 21, 24, SideAway, "BUF"},
		{"pick em tie is a push", 0, 17, 17, SidePush, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &Game{ID: "g1", Week: 1, Home: "KC", Away: "BUF", Spread: tt.spread}
			result := &Result{Week: 1, Home: "KC", Away: "BUF", HomeScore: tt.homeScore, AwayScore: tt.awayScore}

			out := Resolve(game, result)
			assert.Equal(t, tt.wantSide, out.Side)
			assert.Equal(t, tt.wantTeam, out.Team)
			assert.True(t, out.IsResolved())
		})
	}
}

func TestOutcome_Covers(t *testing.T) {
	game := &Game{Home: "KC", Away: "BUF", Spread: -3}

	push := Resolve(game, &Result{HomeScore: 20, AwayScore: 17})
	assert.True(t, push.Covers("KC"))
	assert.True(t, push.Covers("BUF"))
	assert.False(t, push.Covers("DEN"))

	home := Resolve(game, &Result{HomeScore: 30, AwayScore: 17})
	assert.True(t, home.Covers("KC"))
	assert.True(t, home.Covers("  KC "), "team names are trimmed")
	assert.False(t, home.Covers("BUF"))

	assert.False(t, Unresolved().Covers("KC"))
	assert.False(t, Unresolved().IsResolved())
}

func TestResolve_MissingInput(t *testing.T) {
	game := &Game{Home: "KC", Away: "BUF"}
	assert.Equal(t, SideUnresolved, Resolve(game, nil).Side)
	assert.Equal(t, SideUnresolved, Resolve(nil, &Result{}).Side)
}

func TestResolve_TrimsGameTeamNames(t *testing.T) {
	game := &Game{Home: " KC", Away: "BUF ", Spread: -1}
	out := Resolve(game, &Result{HomeScore: 10, AwayScore: 3})

	assert.Equal(t, "KC", out.Team)
	assert.True(t, out.Covers("KC"))
}

func TestResultIndex_Lookup(t *testing.T) {
	results := []Result{
		{Week: 1, Home: "KC", Away: "BUF", HomeScore: 24, AwayScore: 20},
		{Week: 1, Home: "DAL", Away: "PHI", HomeScore: 13, AwayScore: 27}, // stored mirrored
		{Week: 2, Home: "KC", Away: "BUF", HomeScore: 3, AwayScore: 6},
	}
	idx := NewResultIndex(results)

	t.Run("identity match", func(t *testing.T) {
		r, ok := idx.Lookup(&Game{Week: 1, Home: "KC", Away: "BUF"})
		require.True(t, ok)
		assert.Equal(t, 24, r.HomeScore)
		assert.Equal(t, 20, r.AwayScore)
	})

	t.Run("mirrored record is reoriented to the game", func(t *testing.T) {
		r, ok := idx.Lookup(&Game{Week: 1, Home: "PHI", Away: "DAL"})
		require.True(t, ok)
		assert.Equal(t, "PHI", r.Home)
		assert.Equal(t, 27, r.HomeScore)
		assert.Equal(t, 13, r.AwayScore)
	})

	t.Run("whitespace in game names", func(t *testing.T) {
		r, ok := idx.Lookup(&Game{Week: 2, Home: "KC ", Away: " BUF"})
		require.True(t, ok)
		assert.Equal(t, 3, r.HomeScore)
	})

	t.Run("different week does not match", func(t *testing.T) {
		_, ok := idx.Lookup(&Game{Week: 3, Home: "KC", Away: "BUF"})
		assert.False(t, ok)
	})
}

func TestResultIndex_Unmatched(t *testing.T) {
	idx := NewResultIndex([]Result{
		{Week: 1, Home: "KC", Away: "BUF"},
		{Week: 1, Home: "NYJ", Away: "NE"},
		{Week: 2, Home: "SF", Away: "LA"},
	})

	assert.Equal(t, 2, idx.Unmatched(1))

	_, _ = idx.Lookup(&Game{Week: 1, Home: "BUF", Away: "KC"})
	assert.Equal(t, 1, idx.Unmatched(1))
	assert.Equal(t, 1, idx.Unmatched(2))
}

func TestResultIndex_FirstResultWins(t *testing.T) {
	idx := NewResultIndex([]Result{
		{Week: 1, Home: "KC", Away: "BUF", HomeScore: 1, AwayScore: 0},
		{Week: 1, Home: " KC", Away: "BUF", HomeScore: 99, AwayScore: 0},
	})

	r, ok := idx.Lookup(&Game{Week: 1, Home: "KC", Away: "BUF"})
	require.True(t, ok)
	assert.Equal(t, 1, r.HomeScore)
	assert.Equal(t, 0, idx.Unmatched(1))
}
