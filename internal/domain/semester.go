package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Week is a seven-day span; End is always Start plus six days.
type Week struct {
	Start Date
	End   Date
}

// Contains reports whether d lies in [Start, End].
func (w Week) Contains(d Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// DateOf returns the concrete date on which day falls in this week.
func (w Week) DateOf(day DayOfWeek) (Date, bool) {
	off, ok := DayOffset(day)
	if !ok {
		return Date{}, false
	}
	return w.Start.AddDays(off), true
}

func (w Week) String() string {
	return w.Start.String() + " - " + w.End.String()
}

type Semester struct {
	ID             string
	Name           string
	FirstWeekStart Date
	LastWeekEnd    Date
	CreatedAt      time.Time
}

// Contains reports whether d falls between the semester bounds.
func (s *Semester) Contains(d Date) bool {
	return !d.Before(s.FirstWeekStart) && !d.After(s.LastWeekEnd)
}

type Room struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// LessonTime maps a lesson period to its wall-clock bounds. It is used for
// display only.
type LessonTime struct {
	Number    int
	StartTime string
	EndTime   string
}

// Validate checks the period number and that both times are HH:MM with
// StartTime before EndTime.
func (l *LessonTime) Validate() error {
	if l.Number < 1 {
		return fmt.Errorf("lesson number must be at least 1, got %d", l.Number)
	}
	if !clockPattern.MatchString(l.StartTime) {
		return fmt.Errorf("lesson %d: start time %q must be HH:MM", l.Number, l.StartTime)
	}
	if !clockPattern.MatchString(l.EndTime) {
		return fmt.Errorf("lesson %d: end time %q must be HH:MM", l.Number, l.EndTime)
	}
	if l.EndTime <= l.StartTime {
		return fmt.Errorf("lesson %d: end time %s must be after start time %s", l.Number, l.EndTime, l.StartTime)
	}
	return nil
}

// DefaultLessonTimes builds n consecutive 45-minute periods starting at
// 07:00 with a five-minute gap between periods.
func DefaultLessonTimes(n int) []LessonTime {
	lessons := make([]LessonTime, 0, n)
	start := 7 * 60
	for i := 1; i <= n; i++ {
		end := start + 45
		lessons = append(lessons, LessonTime{
			Number:    i,
			StartTime: fmt.Sprintf("%02d:%02d", start/60, start%60),
			EndTime:   fmt.Sprintf("%02d:%02d", end/60, end%60),
		})
		start = end + 5
	}
	return lessons
}
