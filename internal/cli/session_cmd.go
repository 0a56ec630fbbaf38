package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/labtable/internal/cli/formatter"
	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/service"
	"github.com/alexanderramin/labtable/internal/timetable"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage lab sessions",
	}

	cmd.AddCommand(
		newSessionAddCmd(app),
		newSessionListCmd(app),
		newSessionShowCmd(app),
		newSessionTransitionCmd(app, "approve", "Approve a pending session", func(ctx context.Context, id string, force bool) (*domain.Session, error) {
			return app.Sessions.Approve(ctx, id, force)
		}),
		newSessionTransitionCmd(app, "reject", "Reject a pending session", func(ctx context.Context, id string, _ bool) (*domain.Session, error) {
			return app.Sessions.Reject(ctx, id)
		}),
		newSessionTransitionCmd(app, "cancel", "Withdraw an active session for the rest of the semester", func(ctx context.Context, id string, _ bool) (*domain.Session, error) {
			return app.Sessions.Cancel(ctx, id)
		}),
		newSessionDateCmd(app, "cancel-on", "Skip one occurrence of a session", func(ctx context.Context, id string, d domain.Date) (*domain.Session, error) {
			return app.Sessions.CancelOn(ctx, id, d)
		}),
		newSessionDateCmd(app, "restore", "Undo a cancellation for one date", func(ctx context.Context, id string, d domain.Date) (*domain.Session, error) {
			return app.Sessions.Restore(ctx, id, d)
		}),
		newSessionRemoveCmd(app),
	)

	return cmd
}

// sessionInput holds the raw session fields collected from flags or the
// interactive form.
type sessionInput struct {
	Semester   string
	Room       string
	Day        string
	Start      string
	End        string
	Course     string
	Instructor string
	Note       string
	Status     string
}

// missing lists the required fields that are still empty.
func (in *sessionInput) missing() []string {
	var out []string
	for _, f := range []struct{ name, value string }{
		{"semester", in.Semester},
		{"room", in.Room},
		{"day", in.Day},
		{"start", in.Start},
		{"end", in.End},
		{"course", in.Course},
	} {
		if strings.TrimSpace(f.value) == "" {
			out = append(out, f.name)
		}
	}
	return out
}

// toSession parses the collected fields into a session.
func (in *sessionInput) toSession(semesterID string) (*domain.Session, error) {
	day, ok := timetable.ParseDayInput(in.Day)
	if !ok {
		return nil, fmt.Errorf("unknown day %q", in.Day)
	}
	start, err := parsePeriod(in.Start)
	if err != nil {
		return nil, err
	}
	end, err := parsePeriod(in.End)
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		SemesterID:  semesterID,
		RoomName:    strings.TrimSpace(in.Room),
		DayOfWeek:   day,
		StartPeriod: start,
		EndPeriod:   end,
		Status:      domain.SessionStatus(strings.ToUpper(in.Status)),
		CourseName:  strings.TrimSpace(in.Course),
		Instructor:  in.Instructor,
		Note:        in.Note,
	}, nil
}

func newSessionAddCmd(app *App) *cobra.Command {
	var in sessionInput
	var day dayFlag
	var start, end int
	var force bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Request a session (PENDING unless --status is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if day.value != "" {
				in.Day = string(day.value)
			}
			if start > 0 {
				in.Start = strconv.Itoa(start)
			}
			if end > 0 {
				in.End = strconv.Itoa(end)
			}

			if missing := in.missing(); len(missing) > 0 {
				if !app.interactive() {
					return fmt.Errorf("missing required flags: --%s", strings.Join(missing, ", --"))
				}
				if err := sessionForm(ctx, app, &in).Run(); err != nil {
					return err
				}
			}

			semID, err := resolveSemesterID(ctx, app, in.Semester)
			if err != nil {
				return err
			}
			sess, err := in.toSession(semID)
			if err != nil {
				return err
			}
			if err := app.Sessions.Create(ctx, sess, service.CreateOptions{Force: force}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created session %s %s\n", formatter.Dim(sess.ID), formatter.StatusBadge(sess.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Semester, "semester", "", "Semester ID or name")
	cmd.Flags().StringVar(&in.Room, "room", "", "Room name")
	cmd.Flags().Var(&day, "day", "Day of week (MONDAY..SUNDAY or MON..SUN)")
	cmd.Flags().IntVar(&start, "start", 0, "First period")
	cmd.Flags().IntVar(&end, "end", 0, "Last period")
	cmd.Flags().StringVar(&in.Course, "course", "", "Course name")
	cmd.Flags().StringVar(&in.Instructor, "instructor", "", "Instructor")
	cmd.Flags().StringVar(&in.Note, "note", "", "Free-form note")
	cmd.Flags().StringVar(&in.Status, "status", "", "Initial status (PENDING or ACTIVE)")
	cmd.Flags().BoolVar(&force, "force", false, "Allow an ACTIVE session to overlap others")

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var semester, room string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the sessions of a semester",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var semID string
			var err error
			if semester == "" {
				semID, err = defaultSemesterID(ctx, app)
			} else {
				semID, err = resolveSemesterID(ctx, app, semester)
			}
			if err != nil {
				return err
			}
			sessions, err := app.Sessions.List(ctx, semID, room)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionList(sessions))
			return nil
		},
	}

	cmd.Flags().StringVar(&semester, "semester", "", "Semester ID or name")
	cmd.Flags().StringVar(&room, "room", "", "Only sessions in this room")
	return cmd
}

func newSessionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			sess, err := app.Sessions.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSession(sess))
			return nil
		},
	}
}

type transitionFunc func(ctx context.Context, id string, force bool) (*domain.Session, error)

func newSessionTransitionCmd(app *App, use, short string, apply transitionFunc) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			sess, err := apply(cmd.Context(), id, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %s is now %s\n", formatter.Dim(sess.ID), formatter.StatusBadge(sess.Status))
			return nil
		},
	}

	if use == "approve" {
		cmd.Flags().BoolVar(&force, "force", false, "Approve even if it overlaps active sessions")
	}
	return cmd
}

type dateEditFunc func(ctx context.Context, id string, date domain.Date) (*domain.Session, error)

func newSessionDateCmd(app *App, use, short string, apply dateEditFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID DATE",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := domain.ParseDate("date", args[1])
			if err != nil {
				return err
			}
			id, err := resolveSessionID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			sess, err := apply(cmd.Context(), id, date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %s cancelled on: %s\n",
				formatter.Dim(sess.ID), orNone(formatDates(sess.CancellationDates)))
			return nil
		},
	}
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSessionID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Sessions.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session %s\n", id)
			return nil
		},
	}
}

func formatDates(dates []domain.Date) string {
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
