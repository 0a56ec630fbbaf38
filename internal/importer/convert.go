package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/google/uuid"
)

// Timetable is a converted import, ready for persistence. Sessions carry
// RoomName references to Rooms.
type Timetable struct {
	Semester *domain.Semester
	Rooms    []string
	Lessons  []domain.LessonTime
	Sessions []*domain.Session
}

// Convert turns a validated schema into domain objects. Imported sessions
// without a status are ACTIVE, since an imported timetable is already
// agreed. Call ValidateTimetableSchema first.
func Convert(schema *TimetableSchema) (*Timetable, error) {
	now := time.Now().UTC().Truncate(time.Second)

	first, err := domain.ParseDate("semester.first_week_start", schema.Semester.FirstWeekStart)
	if err != nil {
		return nil, err
	}
	last, err := domain.ParseDate("semester.last_week_end", schema.Semester.LastWeekEnd)
	if err != nil {
		return nil, err
	}

	semester := &domain.Semester{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(schema.Semester.Name),
		FirstWeekStart: first,
		LastWeekEnd:    last,
		CreatedAt:      now,
	}

	rooms := make([]string, 0, len(schema.Rooms))
	for _, r := range schema.Rooms {
		rooms = append(rooms, strings.TrimSpace(r))
	}

	lessons := make([]domain.LessonTime, 0, len(schema.Lessons))
	for _, l := range schema.Lessons {
		lessons = append(lessons, domain.LessonTime{Number: l.Number, StartTime: l.Start, EndTime: l.End})
	}

	sessions := make([]*domain.Session, 0, len(schema.Sessions))
	for i, s := range schema.Sessions {
		day, ok := domain.ParseDayOfWeek(s.Day)
		if !ok {
			return nil, fmt.Errorf("sessions[%d]: unknown day %q", i, s.Day)
		}
		status := domain.SessionActive
		if s.Status != "" {
			status = domain.SessionStatus(strings.ToUpper(s.Status))
		}
		sess := &domain.Session{
			ID:          uuid.New().String(),
			SemesterID:  semester.ID,
			DayOfWeek:   day,
			StartPeriod: s.StartPeriod,
			EndPeriod:   s.EndPeriod,
			RoomName:    strings.TrimSpace(s.Room),
			Status:      status,
			CourseName:  strings.TrimSpace(s.Course),
			Instructor:  s.Instructor,
			Note:        s.Note,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		for j, raw := range s.CancelledOn {
			d, err := domain.ParseDate(fmt.Sprintf("sessions[%d].cancelled_on[%d]", i, j), raw)
			if err != nil {
				return nil, err
			}
			sess.AddCancellation(d)
		}
		sessions = append(sessions, sess)
	}

	return &Timetable{
		Semester: semester,
		Rooms:    rooms,
		Lessons:  lessons,
		Sessions: sessions,
	}, nil
}
