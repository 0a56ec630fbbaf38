package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/alexanderramin/labtable/internal/contract"
	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/repository"
	"github.com/alexanderramin/labtable/internal/timetable"
)

// GridOptions configure grid assembly.
type GridOptions struct {
	// Locale selects the day labels (BCP 47).
	Locale string
	// Periods is the number of periods per day used when no lesson times
	// are configured.
	Periods int
	// Logger receives grid diagnostics at WARN. Nil discards them.
	Logger *slog.Logger
}

type gridService struct {
	semesters  repository.SemesterRepo
	rooms      repository.RoomRepo
	lessons    repository.LessonTimeRepo
	sessions   repository.SessionRepo
	opts       GridOptions
	translator *timetable.Translator
	observer   UseCaseObserver
}

func NewGridService(
	semesters repository.SemesterRepo,
	rooms repository.RoomRepo,
	lessons repository.LessonTimeRepo,
	sessions repository.SessionRepo,
	opts GridOptions,
	observers ...UseCaseObserver,
) GridService {
	if opts.Periods <= 0 {
		opts.Periods = 16
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &gridService{
		semesters:  semesters,
		rooms:      rooms,
		lessons:    lessons,
		sessions:   sessions,
		opts:       opts,
		translator: timetable.NewTranslator(opts.Locale),
		observer:   useCaseObserverOrNoop(observers),
	}
}

// BuildWeekGrid reads a fresh snapshot of the semester and renders the
// selected week.
func (s *gridService) BuildWeekGrid(ctx context.Context, req contract.GridRequest) (resp *contract.GridResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"semester_id": req.SemesterID}
	defer observe(ctx, s.observer, "grid.build_week", startedAt, fields, &err)

	sem, err := s.semesters.GetByID(ctx, req.SemesterID)
	if err != nil {
		return nil, err
	}
	weeks := timetable.ComputeWeeks(sem.FirstWeekStart, sem.LastWeekEnd)
	idx, inSemester, err := selectWeek(weeks, req)
	if err != nil {
		return nil, err
	}
	week := weeks[idx]
	fields["week"] = idx + 1

	rooms, err := s.roomNames(ctx, req.Rooms)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListBySemester(ctx, sem.ID, repository.SessionFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}
	lessons, err := s.lessons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading lesson times: %w", err)
	}

	grid := timetable.BuildGrid(timetable.GridInput{
		Rooms:    rooms,
		Periods:  s.periods(lessons),
		Days:     domain.WeekDays,
		Sessions: sessions,
		Week:     week,
	})
	fields["diagnostics"] = len(grid.Diagnostics)
	for _, d := range grid.Diagnostics {
		s.opts.Logger.WarnContext(ctx, "grid_diagnostic",
			"kind", string(d.Kind),
			"room", d.Room,
			"day", string(d.Day),
			"period", d.Period,
			"sessions", d.SessionIDs,
			"detail", d.String(),
		)
	}

	return &contract.GridResponse{
		Semester:   *sem,
		Weeks:      weeks,
		Week:       week,
		WeekNumber: idx + 1,
		InSemester: inSemester,
		Grid:       grid,
		Lessons:    lessons,
		DayLabels:  s.translator.DisplayOrder(),
	}, nil
}

func selectWeek(weeks []domain.Week, req contract.GridRequest) (int, bool, error) {
	if len(weeks) == 0 {
		return 0, false, &contract.GridError{Code: contract.ErrNoWeeks, Message: "semester has no weeks"}
	}
	switch {
	case req.WeekNumber != 0:
		if req.WeekNumber < 1 || req.WeekNumber > len(weeks) {
			return 0, false, &contract.GridError{
				Code:    contract.ErrWeekOutOfRange,
				Message: fmt.Sprintf("week %d is outside 1..%d", req.WeekNumber, len(weeks)),
			}
		}
		return req.WeekNumber - 1, true, nil
	case req.WeekStart != nil:
		i, ok := timetable.WeekStartingOn(weeks, *req.WeekStart)
		if !ok {
			return 0, false, &contract.GridError{
				Code:    contract.ErrWeekNotInRange,
				Message: fmt.Sprintf("no week starts on %s", *req.WeekStart),
			}
		}
		return i, true, nil
	}
	i, inSemester := currentWeekIndex(weeks, req.Today)
	return i, inSemester, nil
}

// currentWeekIndex resolves today's week with ResolveCurrentWeek and
// reports whether today lies inside it rather than in the first-week
// fallback. weeks must not be empty.
func currentWeekIndex(weeks []domain.Week, today domain.Date) (int, bool) {
	week, _ := timetable.ResolveCurrentWeek(weeks, today)
	i, _ := timetable.WeekStartingOn(weeks, week.Start)
	_, inSemester := timetable.WeekContaining(weeks, today)
	return i, inSemester
}

func (s *gridService) roomNames(ctx context.Context, filter []string) ([]string, error) {
	all, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading rooms: %w", err)
	}
	names := make([]string, len(all))
	for i, r := range all {
		names[i] = r.Name
	}
	if len(filter) == 0 {
		return names, nil
	}
	out := make([]string, 0, len(filter))
	for _, want := range filter {
		if !slices.Contains(names, want) {
			return nil, &contract.GridError{Code: contract.ErrUnknownRoom, Message: fmt.Sprintf("room %q does not exist", want)}
		}
		if !slices.Contains(out, want) {
			out = append(out, want)
		}
	}
	return out, nil
}

func (s *gridService) periods(lessons []domain.LessonTime) []int {
	if len(lessons) > 0 {
		out := make([]int, len(lessons))
		for i, l := range lessons {
			out[i] = l.Number
		}
		return out
	}
	out := make([]int, s.opts.Periods)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
