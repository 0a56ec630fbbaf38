package contract

import (
	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/timetable"
)

// GridRequest selects the week and rooms to render. WeekNumber (1-based)
// wins over WeekStart; when both are unset the week containing Today is used,
// falling back to the semester's first week.
type GridRequest struct {
	SemesterID string
	WeekNumber int
	WeekStart  *domain.Date
	Rooms      []string
	Today      domain.Date
}

func NewGridRequest(semesterID string, today domain.Date) GridRequest {
	return GridRequest{SemesterID: semesterID, Today: today}
}

type GridResponse struct {
	Semester   domain.Semester
	Weeks      []domain.Week
	Week       domain.Week
	WeekNumber int
	// InSemester is false when the week was chosen by the first-week
	// fallback because Today lies outside every week.
	InSemester bool
	Grid       *timetable.Grid
	Lessons    []domain.LessonTime
	DayLabels  []string
}

// LessonFor returns the lesson time of a period, if one is configured.
func (r *GridResponse) LessonFor(period int) (domain.LessonTime, bool) {
	for _, l := range r.Lessons {
		if l.Number == period {
			return l, true
		}
	}
	return domain.LessonTime{}, false
}

type GridErrorCode string

const (
	ErrNoWeeks        GridErrorCode = "NO_WEEKS"
	ErrWeekOutOfRange GridErrorCode = "WEEK_OUT_OF_RANGE"
	ErrWeekNotInRange GridErrorCode = "WEEK_START_NOT_FOUND"
	ErrUnknownRoom    GridErrorCode = "UNKNOWN_ROOM"
)

type GridError struct {
	Code    GridErrorCode
	Message string
}

func (e *GridError) Error() string {
	return string(e.Code) + ": " + e.Message
}
