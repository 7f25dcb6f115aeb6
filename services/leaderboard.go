package services

import (
	"sort"

	"pickem-app-go/models"
)

// AggregateLeaderboard sums weekly scores into season standings.
//
// Entries are ordered by total points, then total correct picks, both
// descending. Remaining ties keep encounter order: members in the order
// given, then users missing from members in the order they first appear in
// reports. Rank is the 1-based position, so tied entries still get distinct
// ranks.
func AggregateLeaderboard(members []models.Member, reports []models.WeekReport) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(members))
	index := make(map[string]int, len(members))

	add := func(userID, displayName string) int {
		if i, ok := index[userID]; ok {
			return i
		}
		if displayName == "" {
			displayName = userID
		}
		entries = append(entries, models.LeaderboardEntry{UserID: userID, DisplayName: displayName})
		index[userID] = len(entries) - 1
		return len(entries) - 1
	}

	for _, m := range members {
		add(m.UserID, m.DisplayName)
	}

	for _, report := range reports {
		for _, score := range report.Scores {
			i := add(score.UserID, "")
			entries[i].TotalPoints += score.WeeklyPoints
			entries[i].TotalCorrect += score.TotalCorrect()
			if score.HasSubmitted() {
				entries[i].WeeksPlayed++
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].TotalCorrect > entries[j].TotalCorrect
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
