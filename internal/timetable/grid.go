package timetable

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/labtable/internal/domain"
)

type CellKind int

const (
	CellEmpty CellKind = iota
	CellOccupied
	// CellContinuation marks a cell covered by an Occupied cell in an
	// earlier period of the same room and day. Renderers merge it into that
	// cell instead of drawing it.
	CellContinuation
)

func (k CellKind) String() string {
	switch k {
	case CellOccupied:
		return "occupied"
	case CellContinuation:
		return "continuation"
	default:
		return "empty"
	}
}

type Cell struct {
	Day  domain.DayOfWeek
	Date domain.Date
	Kind CellKind

	// Session is set only on Occupied cells.
	Session *domain.Session

	// SpanStart is the period where the merged cell begins; SpanLength is
	// the number of grid rows it covers. Both are zero on Empty cells.
	SpanStart  int
	SpanLength int
}

// Row holds one cell per displayed day for a single room and period.
type Row struct {
	Room   string
	Period int
	Cells  []Cell
}

// Visible returns the cells a renderer draws, dropping continuations.
func (r Row) Visible() []Cell {
	out := make([]Cell, 0, len(r.Cells))
	for _, c := range r.Cells {
		if c.Kind != CellContinuation {
			out = append(out, c)
		}
	}
	return out
}

type DiagnosticKind string

const (
	DiagOverlap    DiagnosticKind = "overlap"
	DiagUnknownDay DiagnosticKind = "unknown_day"
)

// Diagnostic reports a data anomaly that the grid absorbed instead of
// failing on.
type Diagnostic struct {
	Kind       DiagnosticKind
	Room       string
	Day        domain.DayOfWeek
	Period     int
	Date       domain.Date
	SessionIDs []string
	Chosen     string
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagOverlap:
		return fmt.Sprintf("overlap in %s on %s %s period %d: sessions %s, showing %s",
			d.Room, d.Day, d.Date, d.Period, strings.Join(d.SessionIDs, ", "), d.Chosen)
	case DiagUnknownDay:
		return fmt.Sprintf("session %s in %s has unknown day %q and was not placed",
			strings.Join(d.SessionIDs, ", "), d.Room, d.Day)
	default:
		return string(d.Kind)
	}
}

// GridInput is the snapshot a grid is built from.
type GridInput struct {
	Rooms    []string
	Periods  []int
	Days     []domain.DayOfWeek // defaults to domain.WeekDays
	Sessions []domain.Session
	Week     domain.Week
}

type Grid struct {
	Week        domain.Week
	Rooms       []string
	Periods     []int
	Days        []domain.DayOfWeek
	Rows        []Row
	Diagnostics []Diagnostic
}

// Cell returns the cell at (room, day, period).
func (g *Grid) Cell(room string, day domain.DayOfWeek, period int) (Cell, bool) {
	di := slices.Index(g.Days, day)
	if di < 0 {
		return Cell{}, false
	}
	for _, r := range g.Rows {
		if r.Room == room && r.Period == period {
			return r.Cells[di], true
		}
	}
	return Cell{}, false
}

// RoomRows returns the rows of one room, in period order.
func (g *Grid) RoomRows(room string) []Row {
	var out []Row
	for _, r := range g.Rows {
		if r.Room == room {
			out = append(out, r)
		}
	}
	return out
}

// OccupiedCount returns the number of Occupied cells.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, r := range g.Rows {
		for _, c := range r.Cells {
			if c.Kind == CellOccupied {
				n++
			}
		}
	}
	return n
}

// BuildGrid assembles the grid for in.Week. Rows run room-outer,
// period-inner, each with one cell per day. A session is drawn once at its
// first visible period and spans down to its last one; the cells it covers
// below become continuations. When sessions overlap the lowest ID wins and
// the clash is recorded in Diagnostics.
func BuildGrid(in GridInput) *Grid {
	days := in.Days
	if len(days) == 0 {
		days = domain.WeekDays
	}
	periods := slices.Clone(in.Periods)
	slices.Sort(periods)
	periods = slices.Compact(periods)

	g := &Grid{
		Week:    in.Week,
		Rooms:   slices.Clone(in.Rooms),
		Periods: periods,
		Days:    slices.Clone(days),
		Rows:    make([]Row, 0, len(in.Rooms)*len(periods)),
	}
	idx := NewSessionIndex(in.Sessions)

	for _, room := range g.Rooms {
		columns := make([][]Cell, len(days))
		for di, day := range days {
			var cells []Cell
			cells, g.Diagnostics = buildColumn(idx, room, day, in.Week, periods, g.Diagnostics)
			columns[di] = cells
		}
		for pi, period := range periods {
			row := Row{Room: room, Period: period, Cells: make([]Cell, len(days))}
			for di := range days {
				row.Cells[di] = columns[di][pi]
			}
			g.Rows = append(g.Rows, row)
		}
	}

	for _, s := range idx.Unknown() {
		g.Diagnostics = append(g.Diagnostics, Diagnostic{
			Kind:       DiagUnknownDay,
			Room:       s.RoomName,
			Day:        s.DayOfWeek,
			SessionIDs: []string{s.ID},
		})
	}
	slices.SortStableFunc(g.Diagnostics, compareDiagnostics)
	return g
}

// compareDiagnostics orders by room, day offset, then period. Unknown days
// sort after Sunday.
func compareDiagnostics(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.Room, b.Room),
		cmp.Compare(dayRank(a.Day), dayRank(b.Day)),
		cmp.Compare(a.Period, b.Period),
	)
}

func dayRank(day domain.DayOfWeek) int {
	if off, ok := domain.DayOffset(day); ok {
		return off
	}
	return len(domain.WeekDays)
}

// buildColumn walks one room/day column top to bottom.
func buildColumn(idx *Index, room string, day domain.DayOfWeek, week domain.Week, periods []int, diags []Diagnostic) ([]Cell, []Diagnostic) {
	cells := make([]Cell, len(periods))
	date, ok := week.DateOf(day)
	if !ok {
		for pi := range cells {
			cells[pi] = Cell{Day: day, Kind: CellEmpty}
		}
		return cells, diags
	}

	var cover *domain.Session
	coverEnd, coverStart := 0, 0

	for pi, period := range periods {
		found := idx.Occupying(day, period, room, date)
		cell := Cell{Day: day, Date: date, Kind: CellEmpty}

		if cover != nil && period <= coverEnd {
			cell.Kind = CellContinuation
			cell.SpanStart = coverStart
			if others := withoutID(found, cover.ID); len(others) > 0 {
				diags = append(diags, overlapDiagnostic(room, day, period, date, append([]domain.Session{*cover}, others...), cover.ID))
			}
			cells[pi] = cell
			continue
		}

		if len(found) > 0 {
			chosen := lowestID(found)
			if len(found) > 1 {
				diags = append(diags, overlapDiagnostic(room, day, period, date, found, chosen.ID))
			}
			end := min(chosen.EndPeriod, periods[len(periods)-1])
			cell.Kind = CellOccupied
			cell.Session = &chosen
			cell.SpanStart = period
			cell.SpanLength = countPeriods(periods[pi:], end)
			cover, coverStart, coverEnd = &chosen, period, end
		}
		cells[pi] = cell
	}
	return cells, diags
}

// countPeriods counts leading entries of sorted periods that are <= end.
func countPeriods(periods []int, end int) int {
	n := 0
	for _, p := range periods {
		if p > end {
			break
		}
		n++
	}
	return n
}

func lowestID(sessions []domain.Session) domain.Session {
	return slices.MinFunc(sessions, func(a, b domain.Session) int {
		return cmp.Compare(a.ID, b.ID)
	})
}

func withoutID(sessions []domain.Session, id string) []domain.Session {
	var out []domain.Session
	for _, s := range sessions {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

func overlapDiagnostic(room string, day domain.DayOfWeek, period int, date domain.Date, sessions []domain.Session, chosen string) Diagnostic {
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	slices.Sort(ids)
	return Diagnostic{
		Kind:       DiagOverlap,
		Room:       room,
		Day:        day,
		Period:     period,
		Date:       date,
		SessionIDs: ids,
		Chosen:     chosen,
	}
}
