package cli

import (
	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the services and environment hooks used by CLI commands.
type App struct {
	Semesters service.SemesterService
	Rooms     service.RoomService
	Lessons   service.LessonService
	Sessions  service.SessionService
	Grid      service.GridService
	Import    service.ImportService

	// Today returns the current calendar date in the configured zone.
	Today func() domain.Date
	// IsInteractive reports whether stdin is a terminal; forms and the
	// week browser are only offered when it is.
	IsInteractive func() bool
	// RunProgram runs a full-screen bubbletea model.
	RunProgram func(m tea.Model) error
}

func (a *App) today() domain.Date {
	if a.Today == nil {
		return domain.Today(timeNow(), nil)
	}
	return a.Today()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewRootCmd creates the top-level "labtable" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "labtable",
		Short:         "Weekly room timetable for lab sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSemesterCmd(app),
		newRoomCmd(app),
		newLessonCmd(app),
		newSessionCmd(app),
		newGridCmd(app),
		newImportCmd(app),
	)

	return root
}
