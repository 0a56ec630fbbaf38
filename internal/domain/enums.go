package domain

import (
	"strings"
	"time"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// WeekDays is the canonical Monday-first column order.
var WeekDays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DayOffset returns the position of day in WeekDays, which is also the
// number of days after a week's start date on which that day falls.
func DayOffset(day DayOfWeek) (int, bool) {
	for i, d := range WeekDays {
		if d == day {
			return i, true
		}
	}
	return 0, false
}

// ParseDayOfWeek accepts canonical tokens in any letter case, plus the
// three-letter English abbreviations.
func ParseDayOfWeek(s string) (DayOfWeek, bool) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for _, d := range WeekDays {
		if string(d) == up || string(d)[:3] == up {
			return d, true
		}
	}
	return DayOfWeek(s), false
}

func (d DayOfWeek) Valid() bool {
	_, ok := DayOffset(d)
	return ok
}

// Weekday converts a canonical day to its time.Weekday.
func (d DayOfWeek) Weekday() (time.Weekday, bool) {
	off, ok := DayOffset(d)
	if !ok {
		return 0, false
	}
	return time.Weekday((off + 1) % 7), true
}

type SessionStatus string

const (
	SessionActive    SessionStatus = "ACTIVE"
	SessionPending   SessionStatus = "PENDING"
	SessionRejected  SessionStatus = "REJECTED"
	SessionCancelled SessionStatus = "CANCELLED"
)

// ValidSessionStatuses is the canonical set of accepted status strings.
var ValidSessionStatuses = map[string]bool{
	"ACTIVE": true, "PENDING": true, "REJECTED": true, "CANCELLED": true,
}
