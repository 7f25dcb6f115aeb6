package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"pickem-app-go/logging"
	"pickem-app-go/models"

	"github.com/itbasis/go-clock"
)

var (
	// ErrSubmissionConflict means another write for the same (user, week) landed
	// first. Callers retry against a fresh snapshot.
	ErrSubmissionConflict = errors.New("picks were changed by another submission")

	// ErrEmptySubmission rejects a final submission without any picks
	ErrEmptySubmission = errors.New("select at least one game")
)

// StandingsInvalidator is notified after picks change
type StandingsInvalidator interface {
	InvalidateStandings(ctx context.Context)
}

// Change is one interactive edit to a client-held selection
type Change struct {
	GameID string
	Team   string // ignored for lock changes
	Lock   bool   // true moves or clears the lock instead of toggling a pick
}

// Submission is a member's final pick set for a week
type Submission struct {
	UserID string
	Week   int
	Picks  []models.Pick
	// Revision, when set, is the stored revision the client last saw.
	// A mismatch is reported as a conflict.
	Revision *int64
}

// PickService runs the pick submission workflow: fresh snapshot, validation,
// optimistic write
type PickService struct {
	games     GameStore
	picks     WeeklyPicksStore
	rules     models.RuleBook
	loc       *time.Location
	clock     clock.Clock
	standings StandingsInvalidator
	logger    *logging.Logger
}

// NewPickService creates a new pick service. standings may be nil.
func NewPickService(games GameStore, picks WeeklyPicksStore, rules models.RuleBook, loc *time.Location,
	clk clock.Clock, standings StandingsInvalidator) *PickService {
	return &PickService{
		games:     games,
		picks:     picks,
		rules:     rules,
		loc:       loc,
		clock:     clk,
		standings: standings,
		logger:    logging.WithPrefix("PickService"),
	}
}

// validatorForWeek builds a validator over a freshly loaded game list
func (s *PickService) validatorForWeek(ctx context.Context, week int) (*PickValidator, error) {
	if week < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeek, week)
	}

	games, err := s.games.FindByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load games for week %d: %w", week, err)
	}
	return NewPickValidator(s.clock, s.loc, s.rules.ForWeek(week), games), nil
}

// RulesForWeek returns the rules in force for a week
func (s *PickService) RulesForWeek(week int) models.WeekRules {
	return s.rules.ForWeek(week)
}

// GetUserPicks returns the member's stored picks, or an empty document at
// revision 0 if nothing was submitted yet
func (s *PickService) GetUserPicks(ctx context.Context, userID string, week int) (*models.WeeklyPicks, error) {
	if week < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeek, week)
	}

	doc, err := s.picks.FindByUserAndWeek(ctx, userID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load picks: %w", err)
	}
	if doc == nil {
		doc = &models.WeeklyPicks{UserID: userID, Week: week, Picks: []models.Pick{}}
	}
	return doc, nil
}

// ReviewPicks marks which of a member's stored picks the scoring caps keep
func (s *PickService) ReviewPicks(ctx context.Context, week int, picks []models.Pick) ([]models.PickReview, error) {
	if week < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeek, week)
	}

	games, err := s.games.FindByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load games for week %d: %w", week, err)
	}
	return ReviewWeekPicks(s.rules.ForWeek(week), s.loc, games, picks), nil
}

// WeekGames lists a week's games in kickoff order. With openOnly, games that
// have already kicked off are left out.
func (s *PickService) WeekGames(ctx context.Context, week int, openOnly bool) ([]models.Game, error) {
	if week < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeek, week)
	}

	games, err := s.games.FindByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load games for week %d: %w", week, err)
	}

	now := s.clock.Now()
	out := make([]models.Game, 0, len(games))
	for _, g := range games {
		if openOnly && g.HasStarted(now) {
			continue
		}
		out = append(out, g)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Kickoff.Equal(out[j].Kickoff) {
			return out[i].Kickoff.Before(out[j].Kickoff)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ValidateChange applies one interactive edit to current without storing anything
func (s *PickService) ValidateChange(ctx context.Context, week int, current models.Selection, change Change) (Decision, error) {
	v, err := s.validatorForWeek(ctx, week)
	if err != nil {
		return Decision{}, err
	}
	if current.Picks == nil {
		current = models.NewSelection()
	}

	if change.Lock {
		return v.SetLock(current, change.GameID)
	}
	return v.Toggle(current, change.GameID, change.Team)
}

// SubmitPicks validates a final submission against the stored picks and the
// current instant, then replaces the stored set. A rejected submission is
// returned as a Decision with a nil error.
func (s *PickService) SubmitPicks(ctx context.Context, sub Submission) (Decision, *models.WeeklyPicks, error) {
	if len(sub.Picks) == 0 {
		return Decision{}, nil, ErrEmptySubmission
	}

	v, err := s.validatorForWeek(ctx, sub.Week)
	if err != nil {
		return Decision{}, nil, err
	}

	stored, err := s.picks.FindByUserAndWeek(ctx, sub.UserID, sub.Week)
	if err != nil {
		return Decision{}, nil, fmt.Errorf("failed to load picks: %w", err)
	}

	var expected int64
	if stored != nil {
		expected = stored.Revision
	}
	if sub.Revision != nil && *sub.Revision != expected {
		return Decision{}, nil, fmt.Errorf("%w: have revision %d, stored %d", ErrSubmissionConflict, *sub.Revision, expected)
	}

	decision, err := v.ValidateSubmission(stored.Selection(), sub.Picks)
	if err != nil {
		return Decision{}, nil, err
	}
	if !decision.Accepted {
		s.logger.Debugf("Rejected week %d submission for %s: %s", sub.Week, sub.UserID, decision.Reason)
		return decision, stored, nil
	}

	now := s.clock.Now()
	doc := &models.WeeklyPicks{
		UserID:    sub.UserID,
		Week:      sub.Week,
		Picks:     keepSubmittedAt(decision.Selection.ToPicks(sub.UserID, now), stored),
		Revision:  expected + 1,
		UpdatedAt: now,
	}
	if stored != nil {
		doc.ID = stored.ID
		doc.CreatedAt = stored.CreatedAt
	} else {
		doc.CreatedAt = now
	}

	if err := s.picks.Replace(ctx, doc, expected); err != nil {
		if errors.Is(err, models.ErrRevisionMismatch) {
			s.logger.Warnf("Lost submission race for %s week %d at revision %d", sub.UserID, sub.Week, expected)
			return Decision{}, nil, fmt.Errorf("%w: %v", ErrSubmissionConflict, err)
		}
		return Decision{}, nil, fmt.Errorf("failed to store picks: %w", err)
	}

	s.logger.Infof("Stored %d picks for %s week %d (revision %d)", len(doc.Picks), sub.UserID, sub.Week, doc.Revision)
	if s.standings != nil {
		s.standings.InvalidateStandings(ctx)
	}
	return decision, doc, nil
}

// keepSubmittedAt carries the original timestamp over for picks that did not change
func keepSubmittedAt(picks []models.Pick, stored *models.WeeklyPicks) []models.Pick {
	if stored == nil {
		return picks
	}

	prev := make(map[string]models.Pick, len(stored.Picks))
	for _, p := range stored.Picks {
		prev[p.GameID] = p
	}
	for i, p := range picks {
		if old, ok := prev[p.GameID]; ok && models.NormalizeTeam(old.SelectedTeam) == p.SelectedTeam && !old.SubmittedAt.IsZero() {
			picks[i].SubmittedAt = old.SubmittedAt
		}
	}
	return picks
}
