package domain

import (
	"fmt"
	"slices"
	"time"
)

// Session is one scheduled occupation of a room: a contiguous range of
// lesson periods on one weekday, recurring every week of its semester.
type Session struct {
	ID          string
	SemesterID  string
	DayOfWeek   DayOfWeek
	StartPeriod int
	EndPeriod   int
	RoomName    string
	Status      SessionStatus

	// Dates on which the otherwise-recurring session does not take place.
	CancellationDates []Date

	CourseName string
	Instructor string
	Note       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the structural invariants of a session.
func (s *Session) Validate() error {
	if s.RoomName == "" {
		return fmt.Errorf("room is required")
	}
	if !s.DayOfWeek.Valid() {
		return fmt.Errorf("day of week %q is not one of MONDAY..SUNDAY", s.DayOfWeek)
	}
	if s.StartPeriod < 1 {
		return fmt.Errorf("start period must be at least 1, got %d", s.StartPeriod)
	}
	if s.EndPeriod < s.StartPeriod {
		return fmt.Errorf("end period %d is before start period %d", s.EndPeriod, s.StartPeriod)
	}
	if s.Status != "" && !ValidSessionStatuses[string(s.Status)] {
		return fmt.Errorf("unknown status %q", s.Status)
	}
	return nil
}

// SpanLength is the number of periods the session occupies.
func (s *Session) SpanLength() int {
	return s.EndPeriod - s.StartPeriod + 1
}

// CoversPeriod reports whether period lies in [StartPeriod, EndPeriod].
func (s *Session) CoversPeriod(period int) bool {
	return s.StartPeriod <= period && period <= s.EndPeriod
}

// OverlapsPeriods reports whether the period ranges of s and o intersect.
func (s *Session) OverlapsPeriods(o *Session) bool {
	return s.StartPeriod <= o.EndPeriod && o.StartPeriod <= s.EndPeriod
}

// CancelledOn reports whether d is one of the session's cancellation dates.
func (s *Session) CancelledOn(d Date) bool {
	return slices.Contains(s.CancellationDates, d)
}

// Approve moves a pending session to ACTIVE.
func (s *Session) Approve(now time.Time) error {
	if s.Status != SessionPending {
		return fmt.Errorf("cannot approve session in status %s", s.Status)
	}
	s.Status = SessionActive
	s.UpdatedAt = now
	return nil
}

// Reject moves a pending session to REJECTED.
func (s *Session) Reject(now time.Time) error {
	if s.Status != SessionPending {
		return fmt.Errorf("cannot reject session in status %s", s.Status)
	}
	s.Status = SessionRejected
	s.UpdatedAt = now
	return nil
}

// Cancel withdraws an active session for the rest of the semester.
func (s *Session) Cancel(now time.Time) error {
	if s.Status != SessionActive {
		return fmt.Errorf("cannot cancel session in status %s", s.Status)
	}
	s.Status = SessionCancelled
	s.UpdatedAt = now
	return nil
}

// AddCancellation records d as a cancellation date. It returns false when d
// was already recorded.
func (s *Session) AddCancellation(d Date) bool {
	if s.CancelledOn(d) {
		return false
	}
	s.CancellationDates = append(s.CancellationDates, d)
	slices.SortFunc(s.CancellationDates, Date.Compare)
	return true
}

// RemoveCancellation drops d from the cancellation dates. It returns false
// when d was not recorded.
func (s *Session) RemoveCancellation(d Date) bool {
	i := slices.Index(s.CancellationDates, d)
	if i < 0 {
		return false
	}
	s.CancellationDates = slices.Delete(s.CancellationDates, i, i+1)
	return true
}
