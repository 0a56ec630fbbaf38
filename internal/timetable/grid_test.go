package timetable

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func periodsUpTo(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func weekOf(start string) domain.Week {
	s := d(start)
	return domain.Week{Start: s, End: s.AddDays(6)}
}

func TestBuildGrid_MergesSpan(t *testing.T) {
	g := BuildGrid(GridInput{
		Rooms:    []string{"A101", "B202"},
		Periods:  periodsUpTo(16),
		Sessions: []domain.Session{session("s1", "A101", domain.Monday, 3, 5)},
		Week:     weekOf("06/01/2025"),
	})

	require.Len(t, g.Rows, 32)
	assert.Equal(t, 1, g.OccupiedCount())
	assert.Empty(t, g.Diagnostics)

	start, ok := g.Cell("A101", domain.Monday, 3)
	require.True(t, ok)
	assert.Equal(t, CellOccupied, start.Kind)
	assert.Equal(t, 3, start.SpanStart)
	assert.Equal(t, 3, start.SpanLength)
	require.NotNil(t, start.Session)
	assert.Equal(t, "s1", start.Session.ID)
	assert.Equal(t, d("06/01/2025"), start.Date)

	for _, p := range []int{4, 5} {
		c, _ := g.Cell("A101", domain.Monday, p)
		assert.Equal(t, CellContinuation, c.Kind, "period %d", p)
		assert.Nil(t, c.Session)
		assert.Equal(t, 3, c.SpanStart)
	}

	for _, room := range g.Rooms {
		for _, day := range domain.WeekDays {
			for _, p := range g.Periods {
				if room == "A101" && day == domain.Monday && p >= 3 && p <= 5 {
					continue
				}
				c, _ := g.Cell(room, day, p)
				assert.Equal(t, CellEmpty, c.Kind, "room=%s day=%s period=%d", room, day, p)
			}
		}
	}
}

func TestBuildGrid_RowOrderAndVisibleCells(t *testing.T) {
	g := BuildGrid(GridInput{
		Rooms:    []string{"B202", "A101"},
		Periods:  []int{3, 1, 2, 2},
		Sessions: []domain.Session{session("s1", "B202", domain.Tuesday, 1, 2)},
		Week:     weekOf("06/01/2025"),
	})

	var order []string
	for _, r := range g.Rows {
		order = append(order, fmt.Sprintf("%s/%d", r.Room, r.Period))
		require.Len(t, r.Cells, 7)
	}
	assert.Equal(t, []string{"B202/1", "B202/2", "B202/3", "A101/1", "A101/2", "A101/3"}, order)

	assert.Len(t, g.Rows[0].Visible(), 7)
	assert.Len(t, g.Rows[1].Visible(), 6, "continuation is dropped")
	assert.Equal(t, domain.Tuesday, g.Rows[0].Cells[1].Day)
	assert.Equal(t, d("07/01/2025"), g.Rows[0].Cells[1].Date)
}

func TestBuildGrid_CancellationIsWeekDependent(t *testing.T) {
	s := session("s1", "A101", domain.Monday, 1, 2)
	s.CancellationDates = []domain.Date{d("06/01/2025")}
	in := GridInput{
		Rooms:    []string{"A101"},
		Periods:  periodsUpTo(4),
		Sessions: []domain.Session{s},
	}

	in.Week = weekOf("06/01/2025")
	assert.Equal(t, 0, BuildGrid(in).OccupiedCount())

	in.Week = weekOf("13/01/2025")
	g := BuildGrid(in)
	assert.Equal(t, 1, g.OccupiedCount())
	c, _ := g.Cell("A101", domain.Monday, 1)
	assert.Equal(t, CellOccupied, c.Kind)
}

func TestBuildGrid_PendingAndRejectedNeverShown(t *testing.T) {
	pending := session("p", "A101", domain.Monday, 1, 4)
	pending.Status = domain.SessionPending
	rejected := session("r", "A101", domain.Friday, 2, 3)
	rejected.Status = domain.SessionRejected

	for _, start := range []string{"06/01/2025", "13/01/2025", "20/01/2025"} {
		g := BuildGrid(GridInput{
			Rooms:    []string{"A101"},
			Periods:  periodsUpTo(16),
			Sessions: []domain.Session{pending, rejected},
			Week:     weekOf(start),
		})
		assert.Equal(t, 0, g.OccupiedCount(), "week %s", start)
	}
}

func TestBuildGrid_OverlapPicksLowestIDAndReports(t *testing.T) {
	g := BuildGrid(GridInput{
		Rooms:   []string{"A101"},
		Periods: periodsUpTo(6),
		Sessions: []domain.Session{
			session("s9", "A101", domain.Wednesday, 2, 3),
			session("s1", "A101", domain.Wednesday, 2, 4),
		},
		Week: weekOf("06/01/2025"),
	})

	c, _ := g.Cell("A101", domain.Wednesday, 2)
	require.Equal(t, CellOccupied, c.Kind)
	assert.Equal(t, "s1", c.Session.ID)
	assert.Equal(t, 3, c.SpanLength)

	require.Len(t, g.Diagnostics, 2, "one per clashing cell")
	diag := g.Diagnostics[0]
	assert.Equal(t, DiagOverlap, diag.Kind)
	assert.Equal(t, []string{"s1", "s9"}, diag.SessionIDs)
	assert.Equal(t, "s1", diag.Chosen)
	assert.Equal(t, 2, diag.Period)
	assert.Equal(t, d("08/01/2025"), diag.Date)
	assert.Equal(t, 3, g.Diagnostics[1].Period)
	assert.Contains(t, diag.String(), "overlap in A101")
}

func TestBuildGrid_OverlapStartingInsideSpan(t *testing.T) {
	g := BuildGrid(GridInput{
		Rooms:   []string{"A101"},
		Periods: periodsUpTo(6),
		Sessions: []domain.Session{
			session("b", "A101", domain.Monday, 1, 3),
			session("a", "A101", domain.Monday, 3, 5),
		},
		Week: weekOf("06/01/2025"),
	})

	first, _ := g.Cell("A101", domain.Monday, 1)
	assert.Equal(t, "b", first.Session.ID)
	assert.Equal(t, 3, first.SpanLength)

	covered, _ := g.Cell("A101", domain.Monday, 3)
	assert.Equal(t, CellContinuation, covered.Kind)

	tail, _ := g.Cell("A101", domain.Monday, 4)
	require.Equal(t, CellOccupied, tail.Kind, "remainder of the clipped session is still drawn")
	assert.Equal(t, "a", tail.Session.ID)
	assert.Equal(t, 2, tail.SpanLength)

	require.Len(t, g.Diagnostics, 1)
	assert.Equal(t, 3, g.Diagnostics[0].Period)
	assert.Equal(t, "b", g.Diagnostics[0].Chosen)
}

func TestBuildGrid_SpanClippedToLastPeriod(t *testing.T) {
	g := BuildGrid(GridInput{
		Rooms:    []string{"A101"},
		Periods:  periodsUpTo(4),
		Sessions: []domain.Session{session("s1", "A101", domain.Monday, 3, 8)},
		Week:     weekOf("06/01/2025"),
	})
	c, _ := g.Cell("A101", domain.Monday, 3)
	assert.Equal(t, 2, c.SpanLength)
}

func TestBuildGrid_SessionStartingBeforeFirstPeriod(t *testing.T) {
	g := BuildGrid(GridInput{
		Rooms:    []string{"A101"},
		Periods:  []int{3, 4, 5, 6},
		Sessions: []domain.Session{session("s1", "A101", domain.Monday, 1, 4)},
		Week:     weekOf("06/01/2025"),
	})
	c, _ := g.Cell("A101", domain.Monday, 3)
	require.Equal(t, CellOccupied, c.Kind)
	assert.Equal(t, 3, c.SpanStart)
	assert.Equal(t, 2, c.SpanLength)
}

func TestBuildGrid_UnknownDayIsReported(t *testing.T) {
	g := BuildGrid(GridInput{
		Rooms:    []string{"A101"},
		Periods:  periodsUpTo(2),
		Sessions: []domain.Session{session("x", "A101", domain.DayOfWeek("Thứ Hai"), 1, 1)},
		Week:     weekOf("06/01/2025"),
	})
	assert.Equal(t, 0, g.OccupiedCount())
	require.Len(t, g.Diagnostics, 1)
	assert.Equal(t, DiagUnknownDay, g.Diagnostics[0].Kind)
	assert.Equal(t, []string{"x"}, g.Diagnostics[0].SessionIDs)
}

func TestBuildGrid_Deterministic(t *testing.T) {
	sessions := []domain.Session{
		session("c", "B202", domain.Friday, 1, 2),
		session("a", "A101", domain.Monday, 1, 3),
		session("b", "A101", domain.Monday, 2, 2),
		session("d", "C303", domain.Sunday, 5, 9),
	}
	in := GridInput{
		Rooms:    []string{"A101", "B202", "C303"},
		Periods:  periodsUpTo(10),
		Sessions: sessions,
		Week:     weekOf("06/01/2025"),
	}
	first := BuildGrid(in)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, BuildGrid(in))
	}
}

func TestBuildGrid_DoesNotMutateInput(t *testing.T) {
	sessions := []domain.Session{session("a", "A101", domain.Monday, 1, 2)}
	periods := []int{2, 1}
	BuildGrid(GridInput{Rooms: []string{"A101"}, Periods: periods, Sessions: sessions, Week: weekOf("06/01/2025")})
	assert.Equal(t, []int{2, 1}, periods)
	assert.Equal(t, "a", sessions[0].ID)
}

func TestBuildGrid_DiagnosticsSorted(t *testing.T) {
	g := BuildGrid(GridInput{
		Rooms:   []string{"C303", "A101", "B202"},
		Periods: periodsUpTo(4),
		Sessions: []domain.Session{
			session("c2", "C303", domain.Monday, 1, 1),
			session("c1", "C303", domain.Monday, 1, 1),
			session("x", "A101", domain.DayOfWeek("HOLIDAY"), 1, 1),
			session("a4", "A101", domain.Friday, 2, 2),
			session("a3", "A101", domain.Friday, 2, 2),
			session("a2", "A101", domain.Tuesday, 4, 4),
			session("a1", "A101", domain.Tuesday, 4, 4),
			session("b2", "B202", domain.Sunday, 3, 3),
			session("b1", "B202", domain.Sunday, 3, 3),
		},
		Week: weekOf("06/01/2025"),
	})

	var got []string
	for _, diag := range g.Diagnostics {
		got = append(got, fmt.Sprintf("%s/%s/%d/%s", diag.Room, diag.Day, diag.Period, diag.Kind))
	}
	assert.Equal(t, []string{
		"A101/TUESDAY/4/overlap",
		"A101/FRIDAY/2/overlap",
		"A101/HOLIDAY/0/unknown_day",
		"B202/SUNDAY/3/overlap",
		"C303/MONDAY/1/overlap",
	}, got)
}
