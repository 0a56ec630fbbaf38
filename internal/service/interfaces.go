package service

import (
	"context"

	"github.com/alexanderramin/labtable/internal/contract"
	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/importer"
)

type SemesterService interface {
	Create(ctx context.Context, s *domain.Semester) error
	GetByID(ctx context.Context, id string) (*domain.Semester, error)
	List(ctx context.Context) ([]*domain.Semester, error)
	Delete(ctx context.Context, id string) error
	Weeks(ctx context.Context, id string) ([]domain.Week, error)
	// CurrentWeek returns the week containing today and its 1-based number.
	// When today is outside the semester it returns week 1 and false.
	CurrentWeek(ctx context.Context, id string, today domain.Date) (domain.Week, int, bool, error)
}

type RoomService interface {
	Create(ctx context.Context, name string) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
	Rename(ctx context.Context, oldName, newName string) error
	Delete(ctx context.Context, name string) error
}

type LessonService interface {
	Set(ctx context.Context, l domain.LessonTime) error
	List(ctx context.Context) ([]domain.LessonTime, error)
	Delete(ctx context.Context, number int) error
	SeedDefaults(ctx context.Context, n int) ([]domain.LessonTime, error)
}

// CreateOptions control how a new session is admitted.
type CreateOptions struct {
	// Force skips the overlap check for sessions created as ACTIVE.
	Force bool
}

type SessionService interface {
	Create(ctx context.Context, s *domain.Session, opts CreateOptions) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context, semesterID, room string) ([]domain.Session, error)
	Approve(ctx context.Context, id string, force bool) (*domain.Session, error)
	Reject(ctx context.Context, id string) (*domain.Session, error)
	Cancel(ctx context.Context, id string) (*domain.Session, error)
	CancelOn(ctx context.Context, id string, date domain.Date) (*domain.Session, error)
	Restore(ctx context.Context, id string, date domain.Date) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type GridService interface {
	BuildWeekGrid(ctx context.Context, req contract.GridRequest) (*contract.GridResponse, error)
}

// ImportResult holds the outcome of a timetable import.
type ImportResult struct {
	Semester     *domain.Semester
	RoomsCreated int
	RoomsReused  int
	LessonCount  int
	SessionCount int
}

type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.TimetableSchema) (*ImportResult, error)
}
