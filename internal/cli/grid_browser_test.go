package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/labtable/internal/contract"
	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBrowserDriver(t *testing.T, app *App, req contract.GridRequest) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newGridBrowser(context.Background(), app.Grid, req),
		teatest.WithSize(160, 60), teatest.WithCmdTimeout(2*time.Second))
	d.DrainInit()
	return d
}

func browserOf(t *testing.T, d *teatest.Driver) *gridBrowser {
	t.Helper()
	b, ok := d.Model.(*gridBrowser)
	require.True(t, ok)
	return b
}

func TestGridBrowser_OpensOnCurrentWeek(t *testing.T) {
	app := testApp(t)
	semID := seedCLI(t, app)
	mustExecute(t, app, "session", "add", "--semester", semID, "--room", "A101",
		"--day", "wed", "--start", "1", "--end", "2", "--course", "Networks", "--status", "ACTIVE")

	d := newBrowserDriver(t, app, contract.NewGridRequest(semID, app.today()))

	view := d.View()
	assert.Contains(t, view, "Week 2/20")
	assert.Contains(t, view, "Networks p1-2")
	assert.Contains(t, view, "next week")
	assert.NotContains(t, view, "Loading")
}

func TestGridBrowser_PagesThroughWeeks(t *testing.T) {
	app := testApp(t)
	semID := seedCLI(t, app)
	d := newBrowserDriver(t, app, contract.NewGridRequest(semID, app.today()))

	d.PressRight()
	assert.Contains(t, d.View(), "Week 3/20")
	d.PressKey('l')
	assert.Contains(t, d.View(), "Week 4/20")
	d.PressLeft()
	d.PressKey('h')
	assert.Contains(t, d.View(), "Week 2/20")

	d.PressKey('h')
	assert.Contains(t, d.View(), "Week 1/20")
	d.PressKey('h')
	assert.Contains(t, d.View(), "Week 1/20", "no week before the first")
	assert.Equal(t, 1, browserOf(t, d).week)

	d.PressKey('t')
	assert.Contains(t, d.View(), "Week 2/20")
}

func TestGridBrowser_StopsAtLastWeek(t *testing.T) {
	app := testApp(t)
	semID := seedCLI(t, app)
	req := contract.NewGridRequest(semID, app.today())
	req.WeekNumber = 20
	d := newBrowserDriver(t, app, req)

	assert.Contains(t, d.View(), "Week 20/20")
	seq := browserOf(t, d).seq
	d.PressRight()
	assert.Equal(t, seq, browserOf(t, d).seq, "no request past the last week")
}

func TestGridBrowser_DropsStaleResponses(t *testing.T) {
	app := testApp(t)
	semID := seedCLI(t, app)
	d := newBrowserDriver(t, app, contract.NewGridRequest(semID, app.today()))

	toWeek3 := d.Update(tea.KeyMsg{Type: tea.KeyRight})
	toWeek4 := d.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, toWeek3)
	require.NotNil(t, toWeek4)
	assert.Contains(t, d.View(), "Loading")

	d.Run(toWeek4)
	assert.Contains(t, d.View(), "Week 4/20")

	d.Run(toWeek3)
	assert.Contains(t, d.View(), "Week 4/20", "late answer for week 3 is ignored")
	assert.Equal(t, 4, browserOf(t, d).week)
}

type flakyGrid struct {
	failFor int
	real    func(context.Context, contract.GridRequest) (*contract.GridResponse, error)
}

func (f *flakyGrid) BuildWeekGrid(ctx context.Context, req contract.GridRequest) (*contract.GridResponse, error) {
	if req.WeekNumber == f.failFor {
		return nil, errors.New("database is locked")
	}
	return f.real(ctx, req)
}

func TestGridBrowser_ErrorKeepsLastGrid(t *testing.T) {
	app := testApp(t)
	semID := seedCLI(t, app)
	grid := &flakyGrid{failFor: 3, real: app.Grid.BuildWeekGrid}
	d := teatest.New(t, newGridBrowser(context.Background(), grid, contract.NewGridRequest(semID, app.today())),
		teatest.WithSize(160, 60), teatest.WithCmdTimeout(2*time.Second))
	d.DrainInit()

	d.PressRight()
	view := d.View()
	assert.Contains(t, view, "Error: database is locked")
	assert.Contains(t, view, "Week 2/20", "previous grid stays on screen")

	d.PressRight()
	view = d.View()
	assert.NotContains(t, view, "Error")
	assert.Contains(t, view, "Week 4/20")
}

func TestGridBrowser_HelpAndQuit(t *testing.T) {
	app := testApp(t)
	semID := seedCLI(t, app)
	d := newBrowserDriver(t, app, contract.NewGridRequest(semID, app.today()))

	assert.NotContains(t, d.View(), "scroll")
	d.PressKey('?')
	assert.Contains(t, d.View(), "scroll")
	d.PressKey('?')
	assert.NotContains(t, d.View(), "scroll")

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestGridBrowser_EscQuits(t *testing.T) {
	app := testApp(t)
	semID := seedCLI(t, app)
	d := newBrowserDriver(t, app, contract.NewGridRequest(semID, domain.MustParseDate("01/01/2030")))

	assert.Contains(t, d.View(), "outside the semester")
	d.PressEsc()
	assert.True(t, d.Quitting)
}
