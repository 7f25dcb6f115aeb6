package models

import "time"

// Slot is the pick-allocation category a game belongs to
type Slot string

const (
	SlotThursday Slot = "THURSDAY"
	SlotMonday   Slot = "MONDAY"
	SlotFlex     Slot = "FLEX"
)

// ClassifySlot maps a kickoff to its slot using the weekday in loc (the league's
// local calendar, not UTC). A nil loc means time.Local.
func ClassifySlot(kickoff time.Time, loc *time.Location) Slot {
	if loc == nil {
		loc = time.Local
	}

	switch kickoff.In(loc).Weekday() {
	case time.Thursday:
		return SlotThursday
	case time.Monday:
		return SlotMonday
	default:
		return SlotFlex
	}
}
