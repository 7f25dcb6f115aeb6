package models

import "time"

// RejectionReason is the machine-readable code for a refused pick change
type RejectionReason string

const (
	ReasonTotalCapExceeded    RejectionReason = "TOTAL_CAP_EXCEEDED"
	ReasonThursdayCapExceeded RejectionReason = "THURSDAY_CAP_EXCEEDED"
	ReasonMondayCapExceeded   RejectionReason = "MONDAY_CAP_EXCEEDED"
	ReasonFlexCapExceeded     RejectionReason = "FLEX_CAP_EXCEEDED"
	ReasonLockNotInSelection  RejectionReason = "LOCK_NOT_IN_SELECTION"
	ReasonLockCapExceeded     RejectionReason = "LOCK_CAP_EXCEEDED"
	ReasonGameAlreadyStarted  RejectionReason = "GAME_ALREADY_STARTED"
)

// Message returns the user-facing explanation for a rejection
func (r RejectionReason) Message() string {
	switch r {
	case ReasonTotalCapExceeded:
		return "You can only pick up to 5 games total."
	case ReasonThursdayCapExceeded:
		return "Only 1 Thursday pick allowed."
	case ReasonMondayCapExceeded:
		return "Only 1 Monday pick allowed."
	case ReasonFlexCapExceeded:
		return "Too many flex picks for this week."
	case ReasonLockNotInSelection:
		return "Your lock must be one of your selected picks."
	case ReasonLockCapExceeded:
		return "Only one pick can be your lock."
	case ReasonGameAlreadyStarted:
		return "That game has already kicked off."
	default:
		return string(r)
	}
}

// WeekRules holds the per-week pick caps
type WeekRules struct {
	Name             string `json:"name"`
	MaxTotal         int    `json:"maxTotal"`
	MaxThursday      int    `json:"maxThursday"`
	MaxMonday        int    `json:"maxMonday"`
	MaxFlex          int    `json:"maxFlex"`
	MaxLocks         int    `json:"maxLocks"`
	SpecialSlots     bool   `json:"specialSlots"` // false folds Thursday/Monday games into flex
	PerfectWeekPicks int    `json:"perfectWeekPicks"`
	PerfectWeekBonus int    `json:"perfectWeekBonus"`
}

// Scoring constants shared by every rule set
const (
	CorrectPickPoints = 1
	LockBonusPoints   = 2
	LockMissPenalty   = -2
)

// DefaultWeekRules is 1 Thursday, 1 Monday, 3 flex, 5 total, 1 lock
func DefaultWeekRules() WeekRules {
	return WeekRules{
		Name:             "standard",
		MaxTotal:         5,
		MaxThursday:      1,
		MaxMonday:        1,
		MaxFlex:          3,
		MaxLocks:         1,
		SpecialSlots:     true,
		PerfectWeekPicks: 5,
		PerfectWeekBonus: 3,
	}
}

// FinalWeekRules drops the Thursday/Monday slots and allows 5 flex picks
func FinalWeekRules() WeekRules {
	return WeekRules{
		Name:             "final-week",
		MaxTotal:         5,
		MaxFlex:          5,
		MaxLocks:         1,
		SpecialSlots:     false,
		PerfectWeekPicks: 5,
		PerfectWeekBonus: 3,
	}
}

// SlotFor classifies a kickoff under these rules
func (r WeekRules) SlotFor(kickoff time.Time, loc *time.Location) Slot {
	if !r.SpecialSlots {
		return SlotFlex
	}
	return ClassifySlot(kickoff, loc)
}

// CapFor returns the cap for a slot
func (r WeekRules) CapFor(slot Slot) int {
	switch slot {
	case SlotThursday:
		return r.MaxThursday
	case SlotMonday:
		return r.MaxMonday
	default:
		return r.MaxFlex
	}
}

// SlotCounts tallies picks per slot
type SlotCounts struct {
	Thursday int `json:"thursday"`
	Monday   int `json:"monday"`
	Flex     int `json:"flex"`
}

// Add increments the count for a slot
func (c *SlotCounts) Add(slot Slot) {
	switch slot {
	case SlotThursday:
		c.Thursday++
	case SlotMonday:
		c.Monday++
	default:
		c.Flex++
	}
}

// Get returns the count for a slot
func (c SlotCounts) Get(slot Slot) int {
	switch slot {
	case SlotThursday:
		return c.Thursday
	case SlotMonday:
		return c.Monday
	default:
		return c.Flex
	}
}

// Total returns the sum across slots
func (c SlotCounts) Total() int {
	return c.Thursday + c.Monday + c.Flex
}

// Violation returns the first cap these counts break, checked total first,
// then Thursday, Monday and flex.
func (r WeekRules) Violation(c SlotCounts) (RejectionReason, bool) {
	switch {
	case c.Total() > r.MaxTotal:
		return ReasonTotalCapExceeded, true
	case c.Thursday > r.MaxThursday:
		return ReasonThursdayCapExceeded, true
	case c.Monday > r.MaxMonday:
		return ReasonMondayCapExceeded, true
	case c.Flex > r.MaxFlex:
		return ReasonFlexCapExceeded, true
	}
	return "", false
}

// RuleBook picks the rule set for a week
type RuleBook struct {
	Default   WeekRules
	Overrides map[int]WeekRules
}

// NewRuleBook returns default rules for every week and final-week rules for finalWeek.
// A finalWeek below 1 disables the override.
func NewRuleBook(finalWeek int) RuleBook {
	book := RuleBook{
		Default:   DefaultWeekRules(),
		Overrides: make(map[int]WeekRules),
	}
	if finalWeek >= 1 {
		book.Overrides[finalWeek] = FinalWeekRules()
	}
	return book
}

// ForWeek returns the rules in force for week
func (b RuleBook) ForWeek(week int) WeekRules {
	if rules, ok := b.Overrides[week]; ok {
		return rules
	}
	return b.Default
}
