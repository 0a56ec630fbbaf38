package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/labtable/internal/domain"
)

func FormatSemesterList(semesters []*domain.Semester) string {
	rows := make([][]string, 0, len(semesters))
	for _, s := range semesters {
		rows = append(rows, []string{
			Dim(shortID(s.ID)),
			Bold(s.Name),
			s.FirstWeekStart.String(),
			s.LastWeekEnd.String(),
		})
	}
	return RenderTable([]string{"ID", "NAME", "FIRST WEEK", "LAST DAY"}, rows)
}

// FormatWeekList numbers the weeks from 1 and marks current, a 0-based
// index; pass -1 to mark none.
func FormatWeekList(weeks []domain.Week, current int) string {
	rows := make([][]string, 0, len(weeks))
	for i, w := range weeks {
		marker := ""
		if i == current {
			marker = StyleGreen.Render("◀ current")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			w.Start.String(),
			w.End.String(),
			marker,
		})
	}
	return RenderTable([]string{"WEEK", "START", "END", ""}, rows)
}

func FormatRoomList(rooms []*domain.Room) string {
	rows := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		rows = append(rows, []string{Bold(r.Name), Dim(shortID(r.ID))})
	}
	return RenderTable([]string{"ROOM", "ID"}, rows)
}

func FormatLessonList(lessons []domain.LessonTime) string {
	rows := make([][]string, 0, len(lessons))
	for _, l := range lessons {
		rows = append(rows, []string{fmt.Sprintf("%d", l.Number), l.StartTime, l.EndTime})
	}
	return RenderTable([]string{"PERIOD", "START", "END"}, rows)
}

func FormatSessionList(sessions []domain.Session) string {
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			Dim(shortID(s.ID)),
			s.RoomName,
			string(s.DayOfWeek),
			fmt.Sprintf("%d-%d", s.StartPeriod, s.EndPeriod),
			s.CourseName,
			s.Instructor,
			StatusBadge(s.Status),
			cancellationSummary(s.CancellationDates),
		})
	}
	return RenderTable([]string{"ID", "ROOM", "DAY", "PERIODS", "COURSE", "INSTRUCTOR", "STATUS", "CANCELLED ON"}, rows)
}

// FormatSession renders one session in detail.
func FormatSession(s *domain.Session) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-12s", label)), value)
	}
	line("ID", s.ID)
	line("Course", Bold(s.CourseName))
	if s.Instructor != "" {
		line("Instructor", s.Instructor)
	}
	line("Room", s.RoomName)
	line("When", fmt.Sprintf("%s, periods %d-%d", s.DayOfWeek, s.StartPeriod, s.EndPeriod))
	line("Status", StatusBadge(s.Status))
	if len(s.CancellationDates) > 0 {
		line("Cancelled", cancellationSummary(s.CancellationDates))
	}
	if s.Note != "" {
		line("Note", s.Note)
	}
	return b.String()
}

func cancellationSummary(dates []domain.Date) string {
	if len(dates) == 0 {
		return ""
	}
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}
