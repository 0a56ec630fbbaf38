package testutil

import (
	"time"

	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/google/uuid"
)

// NewTestSemester builds a semester running from first to last (dd/MM/yyyy).
func NewTestSemester(name, first, last string) *domain.Semester {
	return &domain.Semester{
		ID:             uuid.New().String(),
		Name:           name,
		FirstWeekStart: domain.MustParseDate(first),
		LastWeekEnd:    domain.MustParseDate(last),
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
}

func NewTestRoom(name string) *domain.Room {
	return &domain.Room{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

type SessionOption func(*domain.Session)

func WithStatus(s domain.SessionStatus) SessionOption {
	return func(sess *domain.Session) {
		sess.Status = s
	}
}

func WithCancellations(dates ...string) SessionOption {
	return func(sess *domain.Session) {
		for _, d := range dates {
			sess.CancellationDates = append(sess.CancellationDates, domain.MustParseDate(d))
		}
	}
}

func WithCourse(course, instructor string) SessionOption {
	return func(sess *domain.Session) {
		sess.CourseName = course
		sess.Instructor = instructor
	}
}

func WithID(id string) SessionOption {
	return func(sess *domain.Session) {
		sess.ID = id
	}
}

// NewTestSession builds an ACTIVE session in room on day covering periods
// start..end.
func NewTestSession(semesterID, room string, day domain.DayOfWeek, start, end int, opts ...SessionOption) *domain.Session {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.Session{
		ID:          uuid.New().String(),
		SemesterID:  semesterID,
		DayOfWeek:   day,
		StartPeriod: start,
		EndPeriod:   end,
		RoomName:    room,
		Status:      domain.SessionActive,
		CourseName:  "Course",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
