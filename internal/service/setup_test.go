package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/repository"
	"github.com/alexanderramin/labtable/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db        *sql.DB
	semesters *repository.SQLiteSemesterRepo
	rooms     *repository.SQLiteRoomRepo
	lessons   *repository.SQLiteLessonTimeRepo
	sessions  *repository.SQLiteSessionRepo

	semesterSvc SemesterService
	roomSvc     RoomService
	lessonSvc   LessonService
	sessionSvc  SessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	env := &testEnv{
		db:        database,
		semesters: repository.NewSQLiteSemesterRepo(database),
		rooms:     repository.NewSQLiteRoomRepo(database),
		lessons:   repository.NewSQLiteLessonTimeRepo(database),
		sessions:  repository.NewSQLiteSessionRepo(database),
	}
	env.semesterSvc = NewSemesterService(env.semesters)
	env.roomSvc = NewRoomService(env.rooms)
	env.lessonSvc = NewLessonService(env.lessons, uow)
	env.sessionSvc = NewSessionService(env.sessions, env.semesters, env.rooms, uow)
	return env
}

// seedSemester creates the 2025 autumn semester (01/09/2025, a Monday, to
// 18/01/2026) and the given rooms.
func (e *testEnv) seedSemester(t *testing.T, rooms ...string) *domain.Semester {
	t.Helper()
	ctx := context.Background()
	sem := testutil.NewTestSemester("HK1 2025", "01/09/2025", "18/01/2026")
	require.NoError(t, e.semesters.Create(ctx, sem))
	for _, name := range rooms {
		require.NoError(t, e.rooms.Create(ctx, testutil.NewTestRoom(name)))
	}
	return sem
}

func (e *testEnv) seedSession(t *testing.T, s *domain.Session) *domain.Session {
	t.Helper()
	require.NoError(t, e.sessions.Create(context.Background(), s))
	return s
}

func newSession(semesterID, room string, day domain.DayOfWeek, start, end int, opts ...testutil.SessionOption) *domain.Session {
	return testutil.NewTestSession(semesterID, room, day, start, end, opts...)
}
