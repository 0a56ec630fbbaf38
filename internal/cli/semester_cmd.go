package cli

import (
	"fmt"

	"github.com/alexanderramin/labtable/internal/cli/formatter"
	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/timetable"
	"github.com/spf13/cobra"
)

func newSemesterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "semester",
		Short: "Manage semesters",
	}

	cmd.AddCommand(
		newSemesterAddCmd(app),
		newSemesterListCmd(app),
		newSemesterWeeksCmd(app),
		newSemesterRemoveCmd(app),
	)

	return cmd
}

func newSemesterAddCmd(app *App) *cobra.Command {
	var name string
	var first, last *dateFlag

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a semester",
		RunE: func(cmd *cobra.Command, args []string) error {
			sem := &domain.Semester{
				Name:           name,
				FirstWeekStart: first.value,
				LastWeekEnd:    last.value,
			}
			if err := app.Semesters.Create(cmd.Context(), sem); err != nil {
				return err
			}
			weeks := timetable.ComputeWeeks(sem.FirstWeekStart, sem.LastWeekEnd)
			fmt.Fprintf(cmd.OutOrStdout(), "Created semester %s %s (%d weeks)\n",
				formatter.Bold(sem.Name), formatter.Dim(sem.ID), len(weeks))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Semester name")
	first = addDateFlag(cmd, "first", "First day of the first week")
	last = addDateFlag(cmd, "last", "Last day of the semester")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")

	return cmd
}

func newSemesterListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List semesters",
		RunE: func(cmd *cobra.Command, args []string) error {
			semesters, err := app.Semesters.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(semesters) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No semesters found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSemesterList(semesters))
			return nil
		},
	}
}

func newSemesterWeeksCmd(app *App) *cobra.Command {
	var today *dateFlag

	cmd := &cobra.Command{
		Use:   "weeks SEMESTER",
		Short: "List the weeks of a semester and mark the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSemesterID(ctx, app, args[0])
			if err != nil {
				return err
			}
			weeks, err := app.Semesters.Weeks(ctx, id)
			if err != nil {
				return err
			}
			day := app.today()
			if today.set {
				day = today.value
			}
			current := -1
			if i, ok := timetable.WeekContaining(weeks, day); ok {
				current = i
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeekList(weeks, current))
			if current < 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("%s is outside the semester.", day)))
			}
			return nil
		},
	}

	today = addDateFlag(cmd, "today", "Reference date instead of today")
	return cmd
}

func newSemesterRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SEMESTER",
		Short: "Delete a semester and all of its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSemesterID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Semesters.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed semester %s\n", id)
			return nil
		},
	}
}
