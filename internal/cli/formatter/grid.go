package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/labtable/internal/contract"
	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/timetable"
)

const maxCellWidth = 22

// RenderGrid renders the week grid as one table per room. Merged cells are
// drawn once at their first period with the span they cover; the periods
// below show a continuation mark.
func RenderGrid(resp *contract.GridResponse) string {
	var b strings.Builder
	b.WriteString(WeekTitle(resp))
	b.WriteString("\n")
	if !resp.InSemester {
		b.WriteString(StyleYellow.Render("Today is outside the semester, showing the first week."))
		b.WriteString("\n")
	}

	g := resp.Grid
	if len(g.Rooms) == 0 {
		b.WriteString("\n")
		b.WriteString(Dim("No rooms configured."))
		b.WriteString("\n")
		return b.String()
	}

	headers := make([]string, 0, len(g.Days)+1)
	headers = append(headers, "Period")
	for i, day := range g.Days {
		label := string(day)
		if i < len(resp.DayLabels) {
			label = resp.DayLabels[i]
		}
		if date, ok := g.Week.DateOf(day); ok {
			label += " " + shortDate(date)
		}
		headers = append(headers, label)
	}

	for _, room := range g.Rooms {
		b.WriteString("\n")
		b.WriteString(Header(room))
		b.WriteString("\n")

		var rows [][]string
		for _, r := range g.RoomRows(room) {
			row := make([]string, 0, len(r.Cells)+1)
			row = append(row, periodLabel(resp, r.Period))
			for _, c := range r.Cells {
				row = append(row, renderCell(c))
			}
			rows = append(rows, row)
		}
		b.WriteString(RenderTable(headers, rows))
	}
	return b.String()
}

// WeekTitle renders "Semester · Week n/N · dd/MM/yyyy - dd/MM/yyyy".
func WeekTitle(resp *contract.GridResponse) string {
	sep := Dim("·")
	return fmt.Sprintf("%s %s %s %s %s",
		Bold(resp.Semester.Name),
		sep,
		StyleHeader.Render(fmt.Sprintf("Week %d/%d", resp.WeekNumber, len(resp.Weeks))),
		sep,
		Dim(resp.Week.String()),
	)
}

// RenderDiagnostics lists grid anomalies in a box, or returns "" when
// there are none.
func RenderDiagnostics(diags []timetable.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = StyleYellow.Render("! ") + d.String()
	}
	return RenderBox("Diagnostics", strings.Join(lines, "\n"))
}

func renderCell(c timetable.Cell) string {
	switch c.Kind {
	case timetable.CellOccupied:
		s := c.Session
		name := s.CourseName
		if name == "" {
			name = shortID(s.ID)
		}
		name = truncate(name, maxCellWidth-6)
		span := fmt.Sprintf("p%d", c.SpanStart)
		if c.SpanLength > 1 {
			span = fmt.Sprintf("p%d-%d", c.SpanStart, c.SpanStart+c.SpanLength-1)
		}
		if s.Status == domain.SessionCancelled {
			return StylePurple.Render(name+" ✗") + " " + Dim(span)
		}
		return StyleGreen.Render(name) + " " + Dim(span)
	case timetable.CellContinuation:
		return Dim("┆")
	default:
		return Dim("·")
	}
}

func periodLabel(resp *contract.GridResponse, period int) string {
	num := StyleBlue.Render(fmt.Sprintf("%2d", period))
	if l, ok := resp.LessonFor(period); ok {
		return num + " " + Dim(l.StartTime+"-"+l.EndTime)
	}
	return num
}

func shortDate(d domain.Date) string {
	return fmt.Sprintf("%02d/%02d", d.Day, int(d.Month))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
