package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/repository"
	"github.com/alexanderramin/labtable/internal/timetable"
)

type semesterService struct {
	semesters repository.SemesterRepo
	observer  UseCaseObserver
}

func NewSemesterService(semesters repository.SemesterRepo, observers ...UseCaseObserver) SemesterService {
	return &semesterService{semesters: semesters, observer: useCaseObserverOrNoop(observers)}
}

func (s *semesterService) Create(ctx context.Context, sem *domain.Semester) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"name": sem.Name}
	defer observe(ctx, s.observer, "semester.create", startedAt, fields, &err)

	sem.Name = normalizeName(sem.Name)
	if sem.Name == "" {
		return invalidInput("semester name is required")
	}
	if sem.FirstWeekStart.IsZero() || sem.LastWeekEnd.IsZero() {
		return invalidInput("semester %q needs both first week start and last week end", sem.Name)
	}
	if sem.LastWeekEnd.Before(sem.FirstWeekStart) {
		return invalidInput("last week end %s is before first week start %s", sem.LastWeekEnd, sem.FirstWeekStart)
	}
	if sem.ID == "" {
		sem.ID = newID()
	}
	if sem.CreatedAt.IsZero() {
		sem.CreatedAt = nowUTC()
	}
	fields["semester_id"] = sem.ID
	return s.semesters.Create(ctx, sem)
}

func (s *semesterService) GetByID(ctx context.Context, id string) (*domain.Semester, error) {
	return s.semesters.GetByID(ctx, id)
}

func (s *semesterService) List(ctx context.Context) ([]*domain.Semester, error) {
	return s.semesters.List(ctx)
}

func (s *semesterService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "semester.delete", startedAt, map[string]any{"semester_id": id}, &err)
	return s.semesters.Delete(ctx, id)
}

func (s *semesterService) Weeks(ctx context.Context, id string) ([]domain.Week, error) {
	sem, err := s.semesters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return timetable.ComputeWeeks(sem.FirstWeekStart, sem.LastWeekEnd), nil
}

func (s *semesterService) CurrentWeek(ctx context.Context, id string, today domain.Date) (domain.Week, int, bool, error) {
	weeks, err := s.Weeks(ctx, id)
	if err != nil {
		return domain.Week{}, 0, false, err
	}
	if len(weeks) == 0 {
		return domain.Week{}, 0, false, fmt.Errorf("semester %s has no weeks", id)
	}
	i, inSemester := currentWeekIndex(weeks, today)
	return weeks[i], i + 1, inSemester, nil
}
