package services

import (
	"sort"
	"time"

	"pickem-app-go/models"
)

// WeekSnapshot is everything needed to score one week, already fetched
type WeekSnapshot struct {
	Week     int
	Rules    models.WeekRules
	Location *time.Location // calendar used to bucket picks into slots
	Games    []models.Game
	Results  []models.Result
	Picks    []models.Pick
	Members  []models.Member // always reported, even without picks
}

// scoredPick is a deduplicated pick joined to its game
type scoredPick struct {
	pick  models.Pick
	game  *models.Game
	order int
}

// ScoreWeek computes every member's WeeklyScore for snap.Week. It has no side
// effects and reads no clock: the same snapshot always yields the same report.
//
// Scores are listed for each member in snap.Members order, followed by any
// other user with a pick on a game of the week in order of first appearance.
// Records that do not fit the snapshot are skipped and counted in Warnings.
func ScoreWeek(snap WeekSnapshot) models.WeekReport {
	report := models.WeekReport{
		Week:   snap.Week,
		Rules:  snap.Rules.Name,
		Scores: []models.WeeklyScore{},
	}

	games := make(map[string]*models.Game, len(snap.Games))
	for i := range snap.Games {
		g := &snap.Games[i]
		if _, exists := games[g.ID]; !exists {
			games[g.ID] = g
		}
	}

	// Resolve every game of the week up front so unmatched results can be counted
	index := models.NewResultIndex(snap.Results)
	outcomes := make(map[string]models.Outcome)
	for _, id := range sortedGameIDs(games) {
		g := games[id]
		if g.Week != snap.Week {
			continue
		}
		if result, ok := index.Lookup(g); ok {
			outcomes[id] = models.Resolve(g, &result)
		} else {
			outcomes[id] = models.Unresolved()
		}
	}
	report.Warnings.UnmatchedResults = index.Unmatched(snap.Week)

	userOrder, byUser := collectPicks(snap, games, &report.Warnings)

	for _, userID := range userOrder {
		score := scoreUser(snap, userID, byUser[userID], outcomes, &report.Warnings)
		report.Scores = append(report.Scores, score)
	}

	return report
}

// collectPicks keeps the last-written pick per (user, game) on games of the
// target week and groups them by user.
func collectPicks(snap WeekSnapshot, games map[string]*models.Game, warnings *models.DataWarnings) ([]string, map[string][]scoredPick) {
	type pickKey struct{ user, game string }

	latest := make(map[pickKey]scoredPick)
	var keyOrder []pickKey

	for i, p := range snap.Picks {
		g, ok := games[p.GameID]
		if !ok {
			warnings.OrphanPicks++
			continue
		}
		if g.Week != snap.Week {
			continue
		}

		key := pickKey{user: p.UserID, game: p.GameID}
		prev, seen := latest[key]
		if !seen {
			keyOrder = append(keyOrder, key)
			latest[key] = scoredPick{pick: p, game: g, order: i}
			continue
		}

		warnings.DuplicatePicks++
		if !p.SubmittedAt.Before(prev.pick.SubmittedAt) {
			latest[key] = scoredPick{pick: p, game: g, order: i}
		}
	}

	var order []string
	known := make(map[string]bool)
	for _, m := range snap.Members {
		if !known[m.UserID] {
			known[m.UserID] = true
			order = append(order, m.UserID)
		}
	}

	byUser := make(map[string][]scoredPick)
	for _, key := range keyOrder {
		sp := latest[key]
		if !sp.game.HasTeam(sp.pick.SelectedTeam) {
			warnings.InvalidTeams++
			continue
		}
		if !known[key.user] {
			known[key.user] = true
			order = append(order, key.user)
		}
		byUser[key.user] = append(byUser[key.user], sp)
	}

	return order, byUser
}

// cappedPick is a scored pick after the slot caps and the single-lock rule
type cappedPick struct {
	scoredPick
	slot      models.Slot
	counted   bool
	lock      bool // the lock that counts this week
	extraLock bool // flagged as a lock beyond MaxLocks, scored as a plain pick
	dropped   models.RejectionReason
}

// applyCaps walks picks earliest submission first (then kickoff, then game ID)
// and marks which ones fit the week's slot caps. Picks is reordered in place.
func applyCaps(rules models.WeekRules, loc *time.Location, picks []scoredPick) []cappedPick {
	sort.SliceStable(picks, func(i, j int) bool {
		a, b := picks[i], picks[j]
		if !a.pick.SubmittedAt.Equal(b.pick.SubmittedAt) {
			return a.pick.SubmittedAt.Before(b.pick.SubmittedAt)
		}
		if !a.game.Kickoff.Equal(b.game.Kickoff) {
			return a.game.Kickoff.Before(b.game.Kickoff)
		}
		return a.game.ID < b.game.ID
	})

	var counts models.SlotCounts
	locksUsed := 0
	out := make([]cappedPick, 0, len(picks))

	for _, sp := range picks {
		cp := cappedPick{scoredPick: sp, slot: rules.SlotFor(sp.game.Kickoff, loc)}
		switch {
		case counts.Total() >= rules.MaxTotal:
			cp.dropped = models.ReasonTotalCapExceeded
		case counts.Get(cp.slot) >= rules.CapFor(cp.slot):
			cp.dropped = slotCapReason(cp.slot)
		}
		if cp.dropped != "" {
			out = append(out, cp)
			continue
		}

		counts.Add(cp.slot)
		cp.counted = true
		if sp.pick.IsLock {
			if locksUsed < rules.MaxLocks {
				cp.lock = true
				locksUsed++
			} else {
				cp.extraLock = true
			}
		}
		out = append(out, cp)
	}
	return out
}

func slotCapReason(slot models.Slot) models.RejectionReason {
	switch slot {
	case models.SlotThursday:
		return models.ReasonThursdayCapExceeded
	case models.SlotMonday:
		return models.ReasonMondayCapExceeded
	default:
		return models.ReasonFlexCapExceeded
	}
}

// scoreUser applies slot caps, the single-lock rule and the point table to one
// user's picks for the week.
func scoreUser(snap WeekSnapshot, userID string, picks []scoredPick, outcomes map[string]models.Outcome, warnings *models.DataWarnings) models.WeeklyScore {
	score := models.WeeklyScore{UserID: userID, Week: snap.Week}
	rules := snap.Rules

	for _, cp := range applyCaps(rules, snap.Location, picks) {
		if !cp.counted {
			warnings.DroppedOverCap++
			continue
		}
		score.Retained++
		if cp.extraLock {
			warnings.ExtraLocks++
		}

		outcome := outcomes[cp.game.ID]
		if !outcome.IsResolved() {
			score.Pending++
			continue
		}
		score.Resolved++

		correct := outcome.Covers(cp.pick.SelectedTeam)
		switch {
		case cp.lock && correct:
			score.LockCorrect++
		case cp.lock:
			score.LockIncorrect++
		case correct:
			score.Correct++
		}
	}

	if rules.PerfectWeekPicks > 0 &&
		score.Resolved == rules.PerfectWeekPicks &&
		score.TotalCorrect() == score.Resolved {
		score.PerfectBonus = rules.PerfectWeekBonus
	}
	score.WeeklyPoints = score.CalculatePoints()

	return score
}

// ReviewWeekPicks reports how one member's stored picks for a week will be scored.
// Counted picks come first in the order they claim slots, followed by picks
// the caps drop, then picks that cannot be scored at all.
func ReviewWeekPicks(rules models.WeekRules, loc *time.Location, games []models.Game, picks []models.Pick) []models.PickReview {
	byID := make(map[string]*models.Game, len(games))
	for i := range games {
		if _, exists := byID[games[i].ID]; !exists {
			byID[games[i].ID] = &games[i]
		}
	}

	var scorable []scoredPick
	var skipped []models.PickReview
	for i, p := range picks {
		g, ok := byID[p.GameID]
		switch {
		case !ok:
			skipped = append(skipped, models.PickReview{Pick: p, Warning: "Game is not on this week's schedule."})
		case !g.HasTeam(p.SelectedTeam):
			skipped = append(skipped, models.PickReview{Pick: p, Warning: "Team is not playing in this game."})
		default:
			scorable = append(scorable, scoredPick{pick: p, game: g, order: i})
		}
	}

	capped := applyCaps(rules, loc, scorable)
	reviews := make([]models.PickReview, 0, len(picks))
	for _, counted := range []bool{true, false} {
		for _, cp := range capped {
			if cp.counted != counted {
				continue
			}
			r := models.PickReview{
				Pick:         cp.pick,
				Slot:         cp.slot,
				Counted:      cp.counted,
				CountsAsLock: cp.lock,
				Reason:       cp.dropped,
			}
			switch {
			case cp.dropped != "":
				r.Warning = cp.dropped.Message() + " This pick will not be scored."
			case cp.extraLock:
				r.Warning = "Only one lock counts. Scored as a regular pick."
			}
			reviews = append(reviews, r)
		}
	}
	return append(reviews, skipped...)
}

func sortedGameIDs(games map[string]*models.Game) []string {
	ids := make([]string, 0, len(games))
	for id := range games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
