package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/repository"
	"github.com/alexanderramin/labtable/internal/service"
	"github.com/alexanderramin/labtable/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires real services over an in-memory database. Today is fixed
// to Wednesday 10/09/2025, inside week 2 of the seeded semester.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	semesters := repository.NewSQLiteSemesterRepo(database)
	rooms := repository.NewSQLiteRoomRepo(database)
	lessons := repository.NewSQLiteLessonTimeRepo(database)
	sessions := repository.NewSQLiteSessionRepo(database)

	return &App{
		Semesters:     service.NewSemesterService(semesters),
		Rooms:         service.NewRoomService(rooms),
		Lessons:       service.NewLessonService(lessons, uow),
		Sessions:      service.NewSessionService(sessions, semesters, rooms, uow),
		Grid:          service.NewGridService(semesters, rooms, lessons, sessions, service.GridOptions{Periods: 6}),
		Import:        service.NewImportService(uow),
		Today:         func() domain.Date { return domain.MustParseDate("10/09/2025") },
		IsInteractive: func() bool { return false },
	}
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func mustExecute(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, "labtable %v\n%s", args, out)
	return out
}

// seedCLI creates the autumn semester and rooms A101 and B202 through the
// commands themselves.
func seedCLI(t *testing.T, app *App) string {
	t.Helper()
	mustExecute(t, app, "semester", "add", "--name", "HK1 2025", "--first", "01/09/2025", "--last", "18/01/2026")
	mustExecute(t, app, "room", "add", "A101", "B202")
	sems, err := app.Semesters.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sems, 1)
	return sems[0].ID
}

func onlySession(t *testing.T, app *App, semID string) domain.Session {
	t.Helper()
	sessions, err := app.Sessions.List(context.Background(), semID, "")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	return sessions[0]
}

func TestSemesterCommands(t *testing.T) {
	app := testApp(t)

	out := mustExecute(t, app, "semester", "add", "--name", "HK1 2025", "--first", "01/09/2025", "--last", "18/01/2026")
	assert.Contains(t, out, "Created semester HK1 2025")
	assert.Contains(t, out, "(20 weeks)")

	out = mustExecute(t, app, "semester", "list")
	assert.Contains(t, out, "HK1 2025")
	assert.Contains(t, out, "01/09/2025")
	assert.Contains(t, out, "18/01/2026")

	out = mustExecute(t, app, "semester", "weeks", "hk1 2025")
	assert.Contains(t, out, "08/09/2025")
	assert.Contains(t, out, "◀ current")

	out = mustExecute(t, app, "semester", "weeks", "HK1 2025", "--today", "01/03/2026")
	assert.NotContains(t, out, "◀ current")
	assert.Contains(t, out, "01/03/2026 is outside the semester.")

	mustExecute(t, app, "semester", "remove", "HK1 2025")
	out = mustExecute(t, app, "semester", "list")
	assert.Contains(t, out, "No semesters found.")
}

func TestSemesterAdd_Errors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "semester", "add", "--name", "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")

	_, err = executeCmd(t, app, "semester", "add", "--name", "X", "--first", "2025-09-01", "--last", "18/01/2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first")

	_, err = executeCmd(t, app, "semester", "add", "--name", "X", "--first", "18/01/2026", "--last", "01/09/2025")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestRoomCommands(t *testing.T) {
	app := testApp(t)

	out := mustExecute(t, app, "room", "list")
	assert.Contains(t, out, "No rooms found.")

	out = mustExecute(t, app, "room", "add", "A101", "B202")
	assert.Contains(t, out, "Created room A101")
	assert.Contains(t, out, "Created room B202")

	_, err := executeCmd(t, app, "room", "add", "A101")
	assert.ErrorIs(t, err, service.ErrConflict)

	mustExecute(t, app, "room", "rename", "B202", "C303")
	out = mustExecute(t, app, "room", "list")
	assert.Contains(t, out, "C303")
	assert.NotContains(t, out, "B202")

	mustExecute(t, app, "room", "remove", "C303")
	out = mustExecute(t, app, "room", "list")
	assert.NotContains(t, out, "C303")
}

func TestRoomRemove_InUse(t *testing.T) {
	app := testApp(t)
	seedCLI(t, app)
	mustExecute(t, app, "session", "add", "--semester", "HK1 2025", "--room", "A101",
		"--day", "mon", "--start", "1", "--end", "2", "--course", "Networks")

	_, err := executeCmd(t, app, "room", "remove", "A101")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still used by sessions")
}

func TestLessonCommands(t *testing.T) {
	app := testApp(t)

	out := mustExecute(t, app, "lesson", "list")
	assert.Contains(t, out, "No lesson times configured.")

	out = mustExecute(t, app, "lesson", "seed", "--count", "3")
	assert.Contains(t, out, "07:00")

	out = mustExecute(t, app, "lesson", "set", "2", "08:00", "08:45")
	assert.Contains(t, out, "Period 2: 08:00-08:45")

	mustExecute(t, app, "lesson", "remove", "3")
	lessons, err := app.Lessons.List(context.Background())
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, "08:00", lessons[1].StartTime)

	_, err = executeCmd(t, app, "lesson", "set", "0", "08:00", "08:45")
	assert.Error(t, err)
	_, err = executeCmd(t, app, "lesson", "set", "4", "9am", "08:45")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = executeCmd(t, app, "lesson", "seed", "--count", "40")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestSessionAdd_DefaultsToPending(t *testing.T) {
	app := testApp(t)
	semID := seedCLI(t, app)

	out := mustExecute(t, app, "session", "add", "--semester", "HK1 2025", "--room", "A101",
		"--day", "Monday", "--start", "1", "--end", "3", "--course", "Networks", "--instructor", "Dr. Lan")
	assert.Contains(t, out, "Created session")
	assert.Contains(t, out, "PENDING")

	s := onlySession(t, app, semID)
	assert.Equal(t, domain.SessionPending, s.Status)
	assert.Equal(t, domain.Monday, s.DayOfWeek)
	assert.Equal(t, "Dr. Lan", s.Instructor)

	out = mustExecute(t, app, "session", "show", s.ID[:8])
	assert.Contains(t, out, "Networks")
	assert.Contains(t, out, "periods 1-3")
}

func TestSessionAdd_MissingFlagsWhenNotInteractive(t *testing.T) {
	app := testApp(t)
	seedCLI(t, app)

	_, err := executeCmd(t, app, "session", "add", "--semester", "HK1 2025", "--room", "A101", "--day", "tue")
	require.Error(t, err)
	assert.Equal(t, "missing required flags: --start, --end, --course", err.Error())
}

func TestSessionAdd_Validation(t *testing.T) {
	app := testApp(t)
	seedCLI(t, app)

	_, err := executeCmd(t, app, "session", "add", "--semester", "HK1 2025", "--room", "A101",
		"--day", "someday", "--start", "1", "--end", "2", "--course", "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown day")

	_, err = executeCmd(t, app, "session", "add", "--semester", "HK1 2025", "--room", "Z999",
		"--day", "mon", "--start", "1", "--end", "2", "--course", "X")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = executeCmd(t, app, "session", "add", "--semester", "HK1 2025", "--room", "A101",
		"--day", "mon", "--start", "4", "--end", "2", "--course", "X")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestSessionAdd_ActiveOverlapNeedsForce(t *testing.T) {
	app := testApp(t)
	seedCLI(t, app)
	args := []string{"session", "add", "--semester", "HK1 2025", "--room", "A101",
		"--day", "wed", "--start", "2", "--end", "4", "--course", "OS", "--status", "active"}
	mustExecute(t, app, args...)

	_, err := executeCmd(t, app, args...)
	require.ErrorIs(t, err, service.ErrConflict)
	assert.Contains(t, err.Error(), "--force")

	mustExecute(t, app, append(args, "--force")...)
}

func TestSessionLifecycle(t *testing.T) {
	app := testApp(t)
	semID := seedCLI(t, app)
	mustExecute(t, app, "session", "add", "--semester", "HK1 2025", "--room", "A101",
		"--day", "mon", "--start", "1", "--end", "2", "--course", "Networks")
	id := onlySession(t, app, semID).ID

	out := mustExecute(t, app, "session", "approve", id[:8])
	assert.Contains(t, out, "ACTIVE")

	out = mustExecute(t, app, "session", "cancel-on", id, "08/09/2025")
	assert.Contains(t, out, "cancelled on: 08/09/2025")

	_, err := executeCmd(t, app, "session", "cancel-on", id, "09/09/2025")
	assert.ErrorIs(t, err, service.ErrInvalidInput, "not a Monday")

	out = mustExecute(t, app, "session", "restore", id, "08/09/2025")
	assert.Contains(t, out, "cancelled on: none")

	out = mustExecute(t, app, "session", "cancel", id)
	assert.Contains(t, out, "CANCELLED")

	_, err = executeCmd(t, app, "session", "approve", id)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	mustExecute(t, app, "session", "remove", id)
	out = mustExecute(t, app, "session", "list")
	assert.Contains(t, out, "No sessions found.")
}

func TestSessionReject(t *testing.T) {
	app := testApp(t)
	semID := seedCLI(t, app)
	mustExecute(t, app, "session", "add", "--semester", "HK1 2025", "--room", "B202",
		"--day", "fri", "--start", "1", "--end", "1", "--course", "DB")
	id := onlySession(t, app, semID).ID

	out := mustExecute(t, app, "session", "reject", id)
	assert.Contains(t, out, "REJECTED")
}

func TestSessionList_RoomFilter(t *testing.T) {
	app := testApp(t)
	seedCLI(t, app)
	mustExecute(t, app, "session", "add", "--semester", "HK1 2025", "--room", "A101",
		"--day", "mon", "--start", "1", "--end", "2", "--course", "Networks")
	mustExecute(t, app, "session", "add", "--semester", "HK1 2025", "--room", "B202",
		"--day", "tue", "--start", "1", "--end", "2", "--course", "Compilers")

	out := mustExecute(t, app, "session", "list", "--room", "B202")
	assert.Contains(t, out, "Compilers")
	assert.NotContains(t, out, "Networks")
}

func TestSessionShow_UnknownID(t *testing.T) {
	app := testApp(t)
	seedCLI(t, app)

	_, err := executeCmd(t, app, "session", "show", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestGridCommand(t *testing.T) {
	app := testApp(t)
	seedCLI(t, app)
	mustExecute(t, app, "session", "add", "--semester", "HK1 2025", "--room", "A101",
		"--day", "mon", "--start", "1", "--end", "3", "--course", "Networks", "--status", "ACTIVE")
	mustExecute(t, app, "session", "add", "--semester", "HK1 2025", "--room", "B202",
		"--day", "tue", "--start", "2", "--end", "2", "--course", "Hidden")

	out := mustExecute(t, app, "grid")
	assert.Contains(t, out, "HK1 2025")
	assert.Contains(t, out, "Week 2/20")
	assert.Contains(t, out, "08/09/2025 - 14/09/2025")
	assert.Contains(t, out, "Monday 08/09")
	assert.Contains(t, out, "Networks p1-3")
	assert.Contains(t, out, "B202")
	assert.NotContains(t, out, "Hidden", "pending sessions are not drawn")
	assert.NotContains(t, out, "outside the semester")

	out = mustExecute(t, app, "grid", "--week", "5", "--room", "B202")
	assert.Contains(t, out, "Week 5/20")
	assert.NotContains(t, out, "Networks")

	out = mustExecute(t, app, "grid", "--start", "15/09/2025")
	assert.Contains(t, out, "Week 3/20")

	out = mustExecute(t, app, "grid", "--today", "01/06/2026")
	assert.Contains(t, out, "Week 1/20")
	assert.Contains(t, out, "outside the semester")
}

func TestGridCommand_Cancellation(t *testing.T) {
	app := testApp(t)
	semID := seedCLI(t, app)
	mustExecute(t, app, "session", "add", "--semester", "HK1 2025", "--room", "A101",
		"--day", "mon", "--start", "1", "--end", "2", "--course", "Networks", "--status", "ACTIVE")
	id := onlySession(t, app, semID).ID
	mustExecute(t, app, "session", "cancel-on", id, "08/09/2025")

	out := mustExecute(t, app, "grid")
	assert.NotContains(t, out, "Networks")

	out = mustExecute(t, app, "grid", "--week", "3")
	assert.Contains(t, out, "Networks p1-2")
}

func TestGridCommand_Errors(t *testing.T) {
	app := testApp(t)
	seedCLI(t, app)

	_, err := executeCmd(t, app, "grid", "--week", "2", "--start", "08/09/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")

	_, err = executeCmd(t, app, "grid", "--week", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEEK_OUT_OF_RANGE")

	_, err = executeCmd(t, app, "grid", "--start", "09/09/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEEK_START_NOT_FOUND")

	_, err = executeCmd(t, app, "grid", "--room", "Z999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNKNOWN_ROOM")

	_, err = executeCmd(t, app, "grid", "--browse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestGridCommand_NeedsSemesterWhenAmbiguous(t *testing.T) {
	app := testApp(t)
	mustExecute(t, app, "semester", "add", "--name", "Spring", "--first", "02/02/2026", "--last", "31/05/2026")
	mustExecute(t, app, "semester", "add", "--name", "Summer", "--first", "01/06/2026", "--last", "31/07/2026")

	_, err := executeCmd(t, app, "grid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--semester is required")

	out := mustExecute(t, app, "grid", "--semester", "summer")
	assert.Contains(t, out, "Summer")
}

func TestGridCommand_BrowseRunsProgram(t *testing.T) {
	app := testApp(t)
	seedCLI(t, app)
	app.IsInteractive = func() bool { return true }
	var got tea.Model
	app.RunProgram = func(m tea.Model) error {
		got = m
		return nil
	}

	mustExecute(t, app, "grid", "--browse", "--week", "4")
	b, ok := got.(*gridBrowser)
	require.True(t, ok)
	assert.Equal(t, 4, b.base.WeekNumber)
}

const importYAML = `semester:
  name: HK2 2026
  first_week_start: 02/02/2026
  last_week_end: 31/05/2026
rooms: [A101, Lab 3]
lessons:
  - {number: 1, start: "07:00", end: "07:45"}
  - {number: 2, start: "07:50", end: "08:35"}
sessions:
  - room: Lab 3
    day: THU
    start_period: 1
    end_period: 2
    course: Robotics
    cancelled_on: [05/02/2026]
`

func TestImportCommand(t *testing.T) {
	app := testApp(t)
	mustExecute(t, app, "room", "add", "A101")

	path := filepath.Join(t.TempDir(), "hk2.yaml")
	require.NoError(t, os.WriteFile(path, []byte(importYAML), 0o644))

	out := mustExecute(t, app, "import", path)
	assert.Contains(t, out, "Imported semester HK2 2026")
	assert.Contains(t, out, "1 created, 1 reused")
	assert.Contains(t, out, "lessons:  2")
	assert.Contains(t, out, "sessions: 1")

	out = mustExecute(t, app, "grid", "--semester", "HK2 2026", "--week", "2")
	assert.Contains(t, out, "Robotics p1-2")
	assert.Contains(t, out, "07:00-07:45")
}

func TestImportCommand_InvalidFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"semester": {"name": ""}, "rooms": []}`), 0o644))

	_, err := executeCmd(t, app, "import", path)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = executeCmd(t, app, "import", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
