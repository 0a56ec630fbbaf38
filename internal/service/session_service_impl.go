package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/labtable/internal/db"
	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/repository"
	"github.com/alexanderramin/labtable/internal/timetable"
)

type sessionService struct {
	sessions  repository.SessionRepo
	semesters repository.SemesterRepo
	rooms     repository.RoomRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewSessionService(
	sessions repository.SessionRepo,
	semesters repository.SemesterRepo,
	rooms repository.RoomRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) SessionService {
	return &sessionService{
		sessions:  sessions,
		semesters: semesters,
		rooms:     rooms,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Create stores a new session. Status defaults to PENDING; an ACTIVE
// session must not overlap another ACTIVE one unless opts.Force is set.
func (s *sessionService) Create(ctx context.Context, sess *domain.Session, opts CreateOptions) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"room": sess.RoomName, "day": string(sess.DayOfWeek)}
	defer observe(ctx, s.observer, "session.create", startedAt, fields, &err)

	if sess.Status == "" {
		sess.Status = domain.SessionPending
	}
	if err := sess.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	sem, err := s.semesters.GetByID(ctx, sess.SemesterID)
	if err != nil {
		return err
	}
	if _, err := s.rooms.GetByName(ctx, sess.RoomName); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalidInput("room %q does not exist", sess.RoomName)
		}
		return err
	}
	for _, d := range sess.CancellationDates {
		if err := checkCancellationDate(sem, sess, d); err != nil {
			return err
		}
	}

	if sess.ID == "" {
		sess.ID = newID()
	}
	fields["session_id"] = sess.ID
	if sess.Status == domain.SessionActive && !opts.Force {
		if err := s.checkOverlap(ctx, sess); err != nil {
			return err
		}
	}

	now := nowUTC()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	sess.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSessionRepo(tx).Create(ctx, sess)
	})
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *sessionService) List(ctx context.Context, semesterID, room string) ([]domain.Session, error) {
	if _, err := s.semesters.GetByID(ctx, semesterID); err != nil {
		return nil, err
	}
	return s.sessions.ListBySemester(ctx, semesterID, repository.SessionFilter{RoomName: room})
}

func (s *sessionService) Approve(ctx context.Context, id string, force bool) (*domain.Session, error) {
	return s.transition(ctx, "session.approve", id, func(sess *domain.Session, now time.Time) error {
		if err := sess.Approve(now); err != nil {
			return err
		}
		if force {
			return nil
		}
		return s.checkOverlap(ctx, sess)
	})
}

func (s *sessionService) Reject(ctx context.Context, id string) (*domain.Session, error) {
	return s.transition(ctx, "session.reject", id, func(sess *domain.Session, now time.Time) error {
		return sess.Reject(now)
	})
}

func (s *sessionService) Cancel(ctx context.Context, id string) (*domain.Session, error) {
	return s.transition(ctx, "session.cancel", id, func(sess *domain.Session, now time.Time) error {
		return sess.Cancel(now)
	})
}

func (s *sessionService) transition(ctx context.Context, name, id string, apply func(*domain.Session, time.Time) error) (sess *domain.Session, err error) {
	startedAt := time.Now()
	fields := map[string]any{"session_id": id}
	defer observe(ctx, s.observer, name, startedAt, fields, &err)

	sess, err = s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fields["from"] = string(sess.Status)
	if err := apply(sess, nowUTC()); err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	fields["to"] = string(sess.Status)
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// CancelOn skips a single occurrence of the session.
func (s *sessionService) CancelOn(ctx context.Context, id string, date domain.Date) (*domain.Session, error) {
	return s.editCancellations(ctx, "session.cancel_on", id, date, func(sess *domain.Session) error {
		if !sess.AddCancellation(date) {
			return invalidInput("session %s is already cancelled on %s", sess.ID, date)
		}
		return nil
	})
}

// Restore undoes CancelOn for one date.
func (s *sessionService) Restore(ctx context.Context, id string, date domain.Date) (*domain.Session, error) {
	return s.editCancellations(ctx, "session.restore", id, date, func(sess *domain.Session) error {
		if !sess.RemoveCancellation(date) {
			return invalidInput("session %s is not cancelled on %s", sess.ID, date)
		}
		return nil
	})
}

func (s *sessionService) editCancellations(ctx context.Context, name, id string, date domain.Date, edit func(*domain.Session) error) (sess *domain.Session, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, name, startedAt, map[string]any{"session_id": id, "date": date.String()}, &err)

	sess, err = s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sem, err := s.semesters.GetByID(ctx, sess.SemesterID)
	if err != nil {
		return nil, err
	}
	if err := checkCancellationDate(sem, sess, date); err != nil {
		return nil, err
	}
	if err := edit(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = nowUTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteSessionRepo(tx)
		if err := repo.SetCancellations(ctx, sess.ID, sess.CancellationDates); err != nil {
			return err
		}
		return repo.Update(ctx, sess)
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "session.delete", startedAt, map[string]any{"session_id": id}, &err)
	return s.sessions.Delete(ctx, id)
}

// checkOverlap reports the ACTIVE sessions in the same semester, room and
// day whose periods intersect sess.
func (s *sessionService) checkOverlap(ctx context.Context, sess *domain.Session) error {
	others, err := s.sessions.ListBySemester(ctx, sess.SemesterID, repository.SessionFilter{
		RoomName:  sess.RoomName,
		DayOfWeek: sess.DayOfWeek,
		Status:    domain.SessionActive,
	})
	if err != nil {
		return err
	}
	var ids []string
	for i := range others {
		if others[i].ID != sess.ID && others[i].OverlapsPeriods(sess) {
			ids = append(ids, others[i].ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return &ConflictError{
		SessionID:   sess.ID,
		Room:        sess.RoomName,
		Day:         string(sess.DayOfWeek),
		ConflictIDs: ids,
	}
}

// checkCancellationDate accepts only dates on which the grid shows the
// session: its column date in one of the semester's weeks.
func checkCancellationDate(sem *domain.Semester, sess *domain.Session, d domain.Date) error {
	weeks := timetable.ComputeWeeks(sem.FirstWeekStart, sem.LastWeekEnd)
	i, ok := timetable.WeekContaining(weeks, d)
	if !ok {
		return invalidInput("%s is outside semester %s (%s - %s)", d, sem.Name, sem.FirstWeekStart, sem.LastWeekEnd)
	}
	if _, ok := timetable.OccurrenceOn(weeks, sess.DayOfWeek, d); !ok {
		want, _ := weeks[i].DateOf(sess.DayOfWeek)
		return invalidInput("session %s runs on %s, which is %s in week %d, not %s", sess.ID, sess.DayOfWeek, want, i+1, d)
	}
	return nil
}
