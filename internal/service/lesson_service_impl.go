package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/labtable/internal/db"
	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/repository"
)

type lessonService struct {
	lessons  repository.LessonTimeRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewLessonService(lessons repository.LessonTimeRepo, uow db.UnitOfWork, observers ...UseCaseObserver) LessonService {
	return &lessonService{lessons: lessons, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *lessonService) Set(ctx context.Context, l domain.LessonTime) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "lesson.set", startedAt, map[string]any{"number": l.Number}, &err)

	if err := l.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.lessons.Upsert(ctx, &l)
}

func (s *lessonService) List(ctx context.Context) ([]domain.LessonTime, error) {
	return s.lessons.List(ctx)
}

func (s *lessonService) Delete(ctx context.Context, number int) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "lesson.delete", startedAt, map[string]any{"number": number}, &err)
	return s.lessons.Delete(ctx, number)
}

// SeedDefaults writes the standard n-period day, replacing existing
// entries with the same numbers.
func (s *lessonService) SeedDefaults(ctx context.Context, n int) (lessons []domain.LessonTime, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "lesson.seed_defaults", startedAt, map[string]any{"count": n}, &err)

	if n < 1 || n > 16 {
		return nil, invalidInput("default lesson count must be between 1 and 16, got %d", n)
	}
	lessons = domain.DefaultLessonTimes(n)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteLessonTimeRepo(tx)
		for i := range lessons {
			if err := repo.Upsert(ctx, &lessons[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seeding lesson times: %w", err)
	}
	return lessons, nil
}
