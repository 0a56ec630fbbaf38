package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/timetable"
)

// ValidateTimetableSchema checks the schema before conversion and returns
// every problem found.
func ValidateTimetableSchema(schema *TimetableSchema) []error {
	var errs []error

	errs = append(errs, validateSemester(&schema.Semester)...)

	rooms := make(map[string]bool)
	errs = append(errs, validateRooms(schema.Rooms, rooms)...)
	errs = append(errs, validateLessons(schema.Lessons)...)

	// Without valid bounds cancellation dates are only checked for format;
	// the semester errors above already fail the import.
	weeks, boundsErr := timetable.ComputeWeeksFromStrings(schema.Semester.FirstWeekStart, schema.Semester.LastWeekEnd)
	for i := range schema.Sessions {
		errs = append(errs, validateSession(i, &schema.Sessions[i], rooms, weeks, boundsErr == nil)...)
	}
	return errs
}

func validateSemester(s *SemesterImport) []error {
	var errs []error
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, fmt.Errorf("semester.name is required"))
	}
	first, firstErr := domain.ParseDate("semester.first_week_start", s.FirstWeekStart)
	if firstErr != nil {
		errs = append(errs, firstErr)
	}
	last, lastErr := domain.ParseDate("semester.last_week_end", s.LastWeekEnd)
	if lastErr != nil {
		errs = append(errs, lastErr)
	}
	if firstErr == nil && lastErr == nil && last.Before(first) {
		errs = append(errs, fmt.Errorf("semester.last_week_end %s is before first_week_start %s", last, first))
	}
	return errs
}

func validateRooms(names []string, seen map[string]bool) []error {
	var errs []error
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			errs = append(errs, fmt.Errorf("rooms[%d]: name is required", i))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("rooms[%d]: duplicate room %q", i, name))
		}
		seen[name] = true
	}
	return errs
}

func validateLessons(lessons []LessonImport) []error {
	var errs []error
	numbers := make(map[int]bool)
	for i, l := range lessons {
		lt := domain.LessonTime{Number: l.Number, StartTime: l.Start, EndTime: l.End}
		if err := lt.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("lessons[%d]: %w", i, err))
		}
		if numbers[l.Number] {
			errs = append(errs, fmt.Errorf("lessons[%d]: duplicate lesson number %d", i, l.Number))
		}
		numbers[l.Number] = true
	}
	return errs
}

func validateSession(i int, s *SessionImport, rooms map[string]bool, weeks []domain.Week, checkDates bool) []error {
	var errs []error
	prefix := fmt.Sprintf("sessions[%d]", i)

	room := strings.TrimSpace(s.Room)
	if room == "" {
		errs = append(errs, fmt.Errorf("%s.room is required", prefix))
	} else if !rooms[room] {
		errs = append(errs, fmt.Errorf("%s.room %q is not declared in rooms", prefix, room))
	}

	day, dayOK := domain.ParseDayOfWeek(s.Day)
	if !dayOK {
		errs = append(errs, fmt.Errorf("%s.day: unknown day %q", prefix, s.Day))
	}
	if s.StartPeriod < 1 {
		errs = append(errs, fmt.Errorf("%s.start_period must be at least 1, got %d", prefix, s.StartPeriod))
	}
	if s.EndPeriod < s.StartPeriod {
		errs = append(errs, fmt.Errorf("%s.end_period %d is before start_period %d", prefix, s.EndPeriod, s.StartPeriod))
	}
	if s.Status != "" && !domain.ValidSessionStatuses[strings.ToUpper(s.Status)] {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, s.Status))
	}
	if strings.TrimSpace(s.Course) == "" {
		errs = append(errs, fmt.Errorf("%s.course is required", prefix))
	}

	for j, raw := range s.CancelledOn {
		field := fmt.Sprintf("%s.cancelled_on[%d]", prefix, j)
		date, err := domain.ParseDate(field, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !checkDates {
			continue
		}
		wi, inSemester := timetable.WeekContaining(weeks, date)
		if !inSemester {
			errs = append(errs, fmt.Errorf("%s: %s is outside the semester", field, date))
			continue
		}
		// The grid shows the session on the week's start plus the day
		// offset, which is not the calendar weekday when the semester
		// starts midweek.
		if _, onDay := timetable.OccurrenceOn(weeks, day, date); dayOK && !onDay {
			want, _ := weeks[wi].DateOf(day)
			errs = append(errs, fmt.Errorf("%s: %s is not a %s occurrence (week %d has it on %s)", field, date, day, wi+1, want))
		}
	}
	return errs
}
