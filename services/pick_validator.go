package services

import (
	"errors"
	"fmt"
	"time"

	"pickem-app-go/models"

	"github.com/itbasis/go-clock"
)

// Malformed input, as opposed to a rule rejection
var (
	ErrUnknownGame   = errors.New("game is not scheduled for this week")
	ErrInvalidTeam   = errors.New("team is not playing in this game")
	ErrDuplicatePick = errors.New("game appears more than once in submission")
)

// Decision is the outcome of a validation call. On rejection Selection is the
// unchanged input set.
type Decision struct {
	Accepted  bool                   `json:"accepted"`
	Reason    models.RejectionReason `json:"reason,omitempty"`
	Selection models.Selection       `json:"resultingSet"`
}

func accept(sel models.Selection) Decision {
	return Decision{Accepted: true, Selection: sel}
}

func reject(reason models.RejectionReason, sel models.Selection) Decision {
	return Decision{Accepted: false, Reason: reason, Selection: sel}
}

// PickValidator applies one week's rules to pick selections. It is built from
// a snapshot of the week's games and reads the current time from its clock
// on every call so kickoff cutoffs are never cached.
type PickValidator struct {
	clock clock.Clock
	loc   *time.Location
	rules models.WeekRules
	games map[string]*models.Game
}

// NewPickValidator creates a validator for one week's games
func NewPickValidator(clk clock.Clock, loc *time.Location, rules models.WeekRules, games []models.Game) *PickValidator {
	byID := make(map[string]*models.Game, len(games))
	for i := range games {
		byID[games[i].ID] = &games[i]
	}
	return &PickValidator{
		clock: clk,
		loc:   loc,
		rules: rules,
		games: byID,
	}
}

// Rules returns the rules this validator enforces
func (v *PickValidator) Rules() models.WeekRules {
	return v.rules
}

func (v *PickValidator) lookup(gameID string) (*models.Game, error) {
	g, ok := v.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, gameID)
	}
	return g, nil
}

// checkPicks fails on a pick for a game outside this week or a team not playing in it
func (v *PickValidator) checkPicks(sel models.Selection) error {
	for _, gameID := range sel.GameIDs() {
		g, err := v.lookup(gameID)
		if err != nil {
			return err
		}
		if !g.HasTeam(sel.Picks[gameID]) {
			return fmt.Errorf("%w: %q in %s", ErrInvalidTeam, sel.Picks[gameID], g.Description())
		}
	}
	return nil
}

// danglingLock reports a lock that names no selected game
func danglingLock(sel models.Selection) bool {
	return sel.Lock != "" && !sel.Has(sel.Lock)
}

// Counts tallies a selection per slot. Games not in this week are ignored.
func (v *PickValidator) Counts(sel models.Selection) models.SlotCounts {
	var counts models.SlotCounts
	for gameID := range sel.Picks {
		if g, ok := v.games[gameID]; ok {
			counts.Add(v.rules.SlotFor(g.Kickoff, v.loc))
		}
	}
	return counts
}

// Toggle applies one interactive pick action to current:
//   - a new game is added,
//   - the other side of an already picked game replaces the pick,
//   - the same (game, team) again removes it, along with its lock.
//
// The client-held current set is checked first: unknown games are an error
// and a lock outside the selection is rejected. The resulting set must
// satisfy every cap or the action is rejected and current is returned
// untouched.
func (v *PickValidator) Toggle(current models.Selection, gameID, team string) (Decision, error) {
	if err := v.checkPicks(current); err != nil {
		return Decision{}, err
	}
	if danglingLock(current) {
		return reject(models.ReasonLockNotInSelection, current), nil
	}

	g, err := v.lookup(gameID)
	if err != nil {
		return Decision{}, err
	}
	team = models.NormalizeTeam(team)
	if !g.HasTeam(team) {
		return Decision{}, fmt.Errorf("%w: %q in %s", ErrInvalidTeam, team, g.Description())
	}

	if g.HasStarted(v.clock.Now()) {
		return reject(models.ReasonGameAlreadyStarted, current), nil
	}

	next := current.Clone()
	if existing, ok := next.Picks[gameID]; ok && existing == team {
		delete(next.Picks, gameID)
		if next.Lock == gameID {
			next.Lock = ""
		}
		return accept(next), nil
	}

	next.Picks[gameID] = team
	if reason, bad := v.rules.Violation(v.Counts(next)); bad {
		return reject(reason, current), nil
	}
	return accept(next), nil
}

// SetLock moves the lock to gameID. Passing the current lock or an empty ID
// clears it. A lock on a game that has kicked off can neither be moved nor
// cleared. A current lock outside the selection can only be cleared.
func (v *PickValidator) SetLock(current models.Selection, gameID string) (Decision, error) {
	if err := v.checkPicks(current); err != nil {
		return Decision{}, err
	}
	if danglingLock(current) && gameID != "" {
		return reject(models.ReasonLockNotInSelection, current), nil
	}

	now := v.clock.Now()

	if current.Lock != "" && !danglingLock(current) {
		if locked, ok := v.games[current.Lock]; ok && locked.HasStarted(now) {
			return reject(models.ReasonGameAlreadyStarted, current), nil
		}
	}

	next := current.Clone()
	if gameID == "" || gameID == current.Lock {
		next.Lock = ""
		return accept(next), nil
	}

	if v.rules.MaxLocks < 1 {
		return reject(models.ReasonLockCapExceeded, current), nil
	}
	if !current.Has(gameID) {
		return reject(models.ReasonLockNotInSelection, current), nil
	}

	g, err := v.lookup(gameID)
	if err != nil {
		return Decision{}, err
	}
	if g.HasStarted(now) {
		return reject(models.ReasonGameAlreadyStarted, current), nil
	}

	next.Lock = gameID
	return accept(next), nil
}

// ValidateSet checks a complete selection against the caps, then the lock.
// Kickoff times are not considered here.
func (v *PickValidator) ValidateSet(sel models.Selection) (Decision, error) {
	if err := v.checkPicks(sel); err != nil {
		return Decision{}, err
	}

	if reason, bad := v.rules.Violation(v.Counts(sel)); bad {
		return reject(reason, sel), nil
	}

	if sel.Lock != "" {
		if v.rules.MaxLocks < 1 {
			return reject(models.ReasonLockCapExceeded, sel), nil
		}
		if !sel.Has(sel.Lock) {
			return reject(models.ReasonLockNotInSelection, sel), nil
		}
	}

	return accept(sel), nil
}

// BuildSelection folds a bulk pick list into a selection. It fails on a game
// listed twice and returns how many picks were flagged as the lock.
func BuildSelection(picks []models.Pick) (models.Selection, int, error) {
	seen := make(map[string]bool, len(picks))
	for _, p := range picks {
		if seen[p.GameID] {
			return models.Selection{}, 0, fmt.Errorf("%w: %s", ErrDuplicatePick, p.GameID)
		}
		seen[p.GameID] = true
	}
	sel, locks := models.SelectionFromPicks(picks)
	return sel, locks, nil
}

// ValidateSubmission checks a final bulk submission against the member's
// stored selection at the current instant.
//
// Picks on games that have kicked off are frozen: they are carried over even
// when the submission omits them, and any attempt to add, switch or re-lock
// them is rejected. Everything else in stored is replaced by incoming. The
// merged set must then pass ValidateSet.
func (v *PickValidator) ValidateSubmission(stored models.Selection, incoming []models.Pick) (Decision, error) {
	sel, locks, err := BuildSelection(incoming)
	if err != nil {
		return Decision{}, err
	}
	if err := v.checkPicks(sel); err != nil {
		return Decision{}, err
	}
	if locks > v.rules.MaxLocks {
		return reject(models.ReasonLockCapExceeded, stored), nil
	}

	now := v.clock.Now()
	started := func(gameID string) bool {
		g, ok := v.games[gameID]
		return ok && g.HasStarted(now)
	}

	for gameID, team := range sel.Picks {
		if !started(gameID) {
			continue
		}
		if prev, ok := stored.Picks[gameID]; !ok || prev != team {
			return reject(models.ReasonGameAlreadyStarted, stored), nil
		}
	}

	for gameID, team := range stored.Picks {
		if started(gameID) {
			sel.Picks[gameID] = team
		}
	}

	switch {
	case stored.Lock != "" && started(stored.Lock):
		if sel.Lock != "" && sel.Lock != stored.Lock {
			return reject(models.ReasonGameAlreadyStarted, stored), nil
		}
		sel.Lock = stored.Lock
	case sel.Lock != "" && started(sel.Lock):
		return reject(models.ReasonGameAlreadyStarted, stored), nil
	}

	d, err := v.ValidateSet(sel)
	if err != nil {
		return Decision{}, err
	}
	if !d.Accepted {
		d.Selection = stored
	}
	return d, nil
}
