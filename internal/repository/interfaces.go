package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/labtable/internal/domain"
)

var ErrNotFound = errors.New("not found")

type SemesterRepo interface {
	Create(ctx context.Context, s *domain.Semester) error
	GetByID(ctx context.Context, id string) (*domain.Semester, error)
	List(ctx context.Context) ([]*domain.Semester, error)
	Delete(ctx context.Context, id string) error
}

type RoomRepo interface {
	Create(ctx context.Context, r *domain.Room) error
	GetByName(ctx context.Context, name string) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

type LessonTimeRepo interface {
	Upsert(ctx context.Context, l *domain.LessonTime) error
	List(ctx context.Context) ([]domain.LessonTime, error)
	Delete(ctx context.Context, number int) error
}

// SessionFilter narrows ListBySemester. Empty fields match everything.
type SessionFilter struct {
	RoomName  string
	DayOfWeek domain.DayOfWeek
	Status    domain.SessionStatus
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	ListBySemester(ctx context.Context, semesterID string, filter SessionFilter) ([]domain.Session, error)
	Update(ctx context.Context, s *domain.Session) error
	// SetCancellations replaces the session's cancellation dates.
	SetCancellations(ctx context.Context, sessionID string, dates []domain.Date) error
	Delete(ctx context.Context, id string) error
}
