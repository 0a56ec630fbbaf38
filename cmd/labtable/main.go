package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alexanderramin/labtable/internal/cli"
	"github.com/alexanderramin/labtable/internal/config"
	"github.com/alexanderramin/labtable/internal/db"
	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/repository"
	"github.com/alexanderramin/labtable/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	semesterRepo := repository.NewSQLiteSemesterRepo(database)
	roomRepo := repository.NewSQLiteRoomRepo(database)
	lessonRepo := repository.NewSQLiteLessonTimeRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Semesters: service.NewSemesterService(semesterRepo, observer),
		Rooms:     service.NewRoomService(roomRepo, observer),
		Lessons:   service.NewLessonService(lessonRepo, uow, observer),
		Sessions:  service.NewSessionService(sessionRepo, semesterRepo, roomRepo, uow, observer),
		Grid: service.NewGridService(semesterRepo, roomRepo, lessonRepo, sessionRepo, service.GridOptions{
			Locale:  cfg.Locale,
			Periods: cfg.Periods,
			Logger:  gridLogger(cfg, os.Stderr),
		}, observer),
		Import: service.NewImportService(uow, observer),

		Today: func() domain.Date { return cfg.Today(time.Now()) },
	}

	// Forms and the week browser need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// gridLogger returns the sink for grid diagnostics. The grid command already
// prints them, so they are only logged alongside the use-case trace.
func gridLogger(cfg config.Config, w io.Writer) *slog.Logger {
	if !cfg.LogUseCases {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
