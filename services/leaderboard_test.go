package services

import (
	"testing"

	"pickem-app-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func played(userID string, week, correct, points int) models.WeeklyScore {
	return models.WeeklyScore{UserID: userID, Week: week, Correct: correct, WeeklyPoints: points, Retained: correct}
}

func userOrder(entries []models.LeaderboardEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.UserID)
	}
	return out
}

func TestAggregateLeaderboard_PointsThenCorrect(t *testing.T) {
	members := []models.Member{
		{UserID: "u1", DisplayName: "One"},
		{UserID: "u2", DisplayName: "Two"},
		{UserID: "u3", DisplayName: "Three"},
	}
	reports := []models.WeekReport{
		{Week: 1, Scores: []models.WeeklyScore{played("u1", 1, 2, 6), played("u2", 1, 3, 4), played("u3", 1, 4, 4)}},
		{Week: 2, Scores: []models.WeeklyScore{played("u1", 2, 2, 4), played("u2", 2, 2, 6), played("u3", 2, 3, 3)}},
	}

	entries := AggregateLeaderboard(members, reports)

	require.Len(t, entries, 3)
	assert.Equal(t, []string{"u2", "u1", "u3"}, userOrder(entries))

	assert.Equal(t, models.LeaderboardEntry{Rank: 1, UserID: "u2", DisplayName: "Two", TotalCorrect: 5, TotalPoints: 10, WeeksPlayed: 2}, entries[0])
	assert.Equal(t, models.LeaderboardEntry{Rank: 2, UserID: "u1", DisplayName: "One", TotalCorrect: 4, TotalPoints: 10, WeeksPlayed: 2}, entries[1])
	assert.Equal(t, models.LeaderboardEntry{Rank: 3, UserID: "u3", DisplayName: "Three", TotalCorrect: 7, TotalPoints: 7, WeeksPlayed: 2}, entries[2])
}

func TestAggregateLeaderboard_ExactTiesKeepEncounterOrder(t *testing.T) {
	members := []models.Member{{UserID: "c"}, {UserID: "a"}, {UserID: "b"}}
	reports := []models.WeekReport{
		{Week: 1, Scores: []models.WeeklyScore{played("a", 1, 3, 3), played("b", 1, 3, 3), played("c", 1, 3, 3)}},
	}

	entries := AggregateLeaderboard(members, reports)

	assert.Equal(t, []string{"c", "a", "b"}, userOrder(entries))
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank, "tied entries still get distinct ranks")
	}
}

func TestAggregateLeaderboard_UnknownUsersAndIdleMembers(t *testing.T) {
	members := []models.Member{{UserID: "idle", DisplayName: "Idle"}}
	reports := []models.WeekReport{
		{Week: 1, Scores: []models.WeeklyScore{played("ghost", 1, 1, 1), {UserID: "idle", Week: 1}}},
		{Week: 2, Scores: []models.WeeklyScore{played("ghost", 2, 0, -2)}},
	}

	entries := AggregateLeaderboard(members, reports)

	require.Len(t, entries, 2)
	assert.Equal(t, []string{"idle", "ghost"}, userOrder(entries), "zero points ranks above minus")

	assert.Equal(t, "ghost", entries[1].DisplayName, "users without a profile are shown by ID")
	assert.Equal(t, -1, entries[1].TotalPoints)
	assert.Equal(t, 1, entries[1].TotalCorrect)
	assert.Equal(t, 1, entries[1].WeeksPlayed, "a week with no retained picks is not played")
	assert.Equal(t, 0, entries[0].WeeksPlayed)
}

func TestAggregateLeaderboard_Empty(t *testing.T) {
	entries := AggregateLeaderboard(nil, nil)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
