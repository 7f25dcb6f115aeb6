package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"pickem-app-go/logging"
	"pickem-app-go/models"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidWeek is returned for week numbers below 1
	ErrInvalidWeek = errors.New("week must be 1 or greater")

	// ErrNoScoreStore means the service was built without a weekly score store
	ErrNoScoreStore = errors.New("no weekly score store configured")
)

// ScoringService loads week snapshots from storage and runs them through the
// scoring engine. It owns no scoring logic of its own.
type ScoringService struct {
	games   GameStore
	results ResultStore
	picks   WeeklyPicksStore
	users   UserStore
	scores  WeeklyScoreStore
	rules   models.RuleBook
	loc     *time.Location
	cache   LeaderboardCache
	logger  *logging.Logger
}

// NewScoringService creates a new scoring service. scores and cache may be nil.
func NewScoringService(games GameStore, results ResultStore, picks WeeklyPicksStore, users UserStore,
	scores WeeklyScoreStore, rules models.RuleBook, loc *time.Location, cache LeaderboardCache) *ScoringService {
	return &ScoringService{
		games:   games,
		results: results,
		picks:   picks,
		users:   users,
		scores:  scores,
		rules:   rules,
		loc:     loc,
		cache:   cache,
		logger:  logging.WithPrefix("ScoringService"),
	}
}

// Members returns every pool member
func (s *ScoringService) Members(ctx context.Context) ([]models.Member, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	members := make([]models.Member, 0, len(users))
	for i := range users {
		members = append(members, users[i].AsMember())
	}
	return members, nil
}

// LoadSnapshot fetches the games, results and picks of a week concurrently
func (s *ScoringService) LoadSnapshot(ctx context.Context, week int, members []models.Member) (WeekSnapshot, error) {
	if week < 1 {
		return WeekSnapshot{}, fmt.Errorf("%w: %d", ErrInvalidWeek, week)
	}

	snap := WeekSnapshot{
		Week:     week,
		Rules:    s.rules.ForWeek(week),
		Location: s.loc,
		Members:  members,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		games, err := s.games.FindByWeek(gctx, week)
		if err != nil {
			return fmt.Errorf("failed to load games for week %d: %w", week, err)
		}
		snap.Games = games
		return nil
	})
	g.Go(func() error {
		results, err := s.results.FindByWeek(gctx, week)
		if err != nil {
			return fmt.Errorf("failed to load results for week %d: %w", week, err)
		}
		snap.Results = results
		return nil
	})
	g.Go(func() error {
		docs, err := s.picks.FindAllByWeek(gctx, week)
		if err != nil {
			return fmt.Errorf("failed to load picks for week %d: %w", week, err)
		}
		snap.Picks = flattenWeeklyPicks(docs)
		return nil
	})

	if err := g.Wait(); err != nil {
		return WeekSnapshot{}, err
	}
	return snap, nil
}

// flattenWeeklyPicks turns per-user documents into pick rows owned by the document's user
func flattenWeeklyPicks(docs []*models.WeeklyPicks) []models.Pick {
	var picks []models.Pick
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, p := range doc.Picks {
			p.UserID = doc.UserID
			picks = append(picks, p)
		}
	}
	return picks
}

// WeekReport scores one week for every member
func (s *ScoringService) WeekReport(ctx context.Context, week int) (models.WeekReport, error) {
	members, err := s.Members(ctx)
	if err != nil {
		return models.WeekReport{}, err
	}

	snap, err := s.LoadSnapshot(ctx, week, members)
	if err != nil {
		return models.WeekReport{}, err
	}

	report := ScoreWeek(snap)
	s.logWarnings(report)
	return report, nil
}

func (s *ScoringService) logWarnings(report models.WeekReport) {
	w := report.Warnings
	if w.Total() > 0 {
		s.logger.WithFields(logging.Fields{
			"week":       report.Week,
			"orphans":    w.OrphanPicks,
			"unmatched":  w.UnmatchedResults,
			"duplicates": w.DuplicatePicks,
			"badTeams":   w.InvalidTeams,
			"extraLocks": w.ExtraLocks,
		}).Warnf("Skipped inconsistent records while scoring")
	}
	if w.DroppedOverCap > 0 {
		s.logger.Infof("Week %d: %d picks over the slot caps were not scored", report.Week, w.DroppedOverCap)
	}
}

// Leaderboard returns season standings over every week that has games.
// Standings are served from the cache when present.
func (s *ScoringService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var gen uint64
	cacheable := false
	if s.cache != nil {
		entries, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warnf("Leaderboard cache read failed: %v", err)
		} else if ok {
			return entries, nil
		}

		// Read before loading so a write during the rebuild discards the result
		if gen, err = s.cache.Generation(ctx); err != nil {
			s.logger.Warnf("Leaderboard cache generation read failed: %v", err)
		} else {
			cacheable = true
		}
	}

	members, err := s.Members(ctx)
	if err != nil {
		return nil, err
	}

	weeks, err := s.games.FindWeeks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list weeks: %w", err)
	}

	reports := make([]models.WeekReport, len(weeks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, week := range weeks {
		i, week := i, week
		g.Go(func() error {
			snap, err := s.LoadSnapshot(gctx, week, members)
			if err != nil {
				return err
			}
			reports[i] = ScoreWeek(snap)
			s.logWarnings(reports[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := AggregateLeaderboard(members, reports)

	if cacheable {
		stored, err := s.cache.Set(ctx, gen, entries)
		if err != nil {
			s.logger.Warnf("Leaderboard cache write failed: %v", err)
		} else if !stored {
			s.logger.Debugf("Standings changed while rebuilding, not caching")
		}
	}
	return entries, nil
}

// WeekResults returns the week's final scores joined to their games. Games
// without a result yet are left out.
func (s *ScoringService) WeekResults(ctx context.Context, week int) (models.WeekResults, error) {
	if week < 1 {
		return models.WeekResults{}, fmt.Errorf("%w: %d", ErrInvalidWeek, week)
	}

	var games []models.Game
	var results []models.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if games, err = s.games.FindByWeek(gctx, week); err != nil {
			return fmt.Errorf("failed to load games for week %d: %w", week, err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if results, err = s.results.FindByWeek(gctx, week); err != nil {
			return fmt.Errorf("failed to load results for week %d: %w", week, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.WeekResults{}, err
	}

	sort.SliceStable(games, func(i, j int) bool {
		if !games[i].Kickoff.Equal(games[j].Kickoff) {
			return games[i].Kickoff.Before(games[j].Kickoff)
		}
		return games[i].ID < games[j].ID
	})

	out := models.WeekResults{Week: week, Results: []models.ResultReport{}}
	index := models.NewResultIndex(results)
	for i := range games {
		game := &games[i]
		result, ok := index.Lookup(game)
		if !ok {
			continue
		}
		out.Results = append(out.Results, models.ResultReport{
			Result:  result,
			GameID:  game.ID,
			Spread:  game.Spread,
			Outcome: models.Resolve(game, &result),
		})
	}
	out.Unmatched = index.Unmatched(week)
	return out, nil
}

// InvalidateStandings drops cached standings after picks or results change
func (s *ScoringService) InvalidateStandings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warnf("Leaderboard cache invalidation failed: %v", err)
	}
}

// RecalculateAndStore scores a week and upserts a row per reported user
func (s *ScoringService) RecalculateAndStore(ctx context.Context, week int) (models.WeekReport, error) {
	if s.scores == nil {
		return models.WeekReport{}, ErrNoScoreStore
	}

	report, err := s.WeekReport(ctx, week)
	if err != nil {
		return models.WeekReport{}, err
	}

	if err := s.scores.UpsertMany(ctx, report.Scores); err != nil {
		return models.WeekReport{}, fmt.Errorf("failed to store week %d scores: %w", week, err)
	}

	s.logger.Infof("Stored %d score rows for week %d", len(report.Scores), week)
	s.InvalidateStandings(ctx)
	return report, nil
}

// StoredScores returns the rows last persisted for a week, highest points first
func (s *ScoringService) StoredScores(ctx context.Context, week int) ([]models.StoredWeeklyScore, error) {
	if week < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeek, week)
	}
	if s.scores == nil {
		return nil, ErrNoScoreStore
	}

	rows, err := s.scores.FindByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored scores for week %d: %w", week, err)
	}
	return rows, nil
}
