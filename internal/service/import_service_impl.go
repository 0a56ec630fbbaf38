package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/labtable/internal/db"
	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/importer"
	"github.com/alexanderramin/labtable/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, path string) (result *ImportResult, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "import.file", startedAt, map[string]any{"path": path}, &err)

	schema, err := importer.LoadTimetableSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema validates and stores a timetable in one transaction. Rooms
// that already exist by name are reused; lesson times are upserted.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.TimetableSchema) (result *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"semester": schema.Semester.Name}
	defer observe(ctx, s.observer, "import.schema", startedAt, fields, &err)

	if errs := importer.ValidateTimetableSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, errors.Join(errs...))
	}
	tt, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import: %w", err)
	}

	result = &ImportResult{
		Semester:     tt.Semester,
		LessonCount:  len(tt.Lessons),
		SessionCount: len(tt.Sessions),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSemesterRepo(tx).Create(ctx, tt.Semester); err != nil {
			return err
		}

		roomRepo := repository.NewSQLiteRoomRepo(tx)
		for _, name := range tt.Rooms {
			_, err := roomRepo.GetByName(ctx, name)
			switch {
			case err == nil:
				result.RoomsReused++
				continue
			case !errors.Is(err, repository.ErrNotFound):
				return err
			}
			room := &domain.Room{ID: newID(), Name: name, CreatedAt: tt.Semester.CreatedAt}
			if err := roomRepo.Create(ctx, room); err != nil {
				return err
			}
			result.RoomsCreated++
		}

		lessonRepo := repository.NewSQLiteLessonTimeRepo(tx)
		for i := range tt.Lessons {
			if err := lessonRepo.Upsert(ctx, &tt.Lessons[i]); err != nil {
				return err
			}
		}

		sessionRepo := repository.NewSQLiteSessionRepo(tx)
		for _, sess := range tt.Sessions {
			if err := sessionRepo.Create(ctx, sess); err != nil {
				return fmt.Errorf("session %s %s %d-%d: %w", sess.RoomName, sess.DayOfWeek, sess.StartPeriod, sess.EndPeriod, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing timetable: %w", err)
	}
	fields["semester_id"] = tt.Semester.ID
	fields["sessions"] = result.SessionCount
	return result, nil
}
