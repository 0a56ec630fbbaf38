package cli

import (
	"fmt"

	"github.com/alexanderramin/labtable/internal/cli/formatter"
	"github.com/alexanderramin/labtable/internal/contract"
	"github.com/spf13/cobra"
)

func newGridCmd(app *App) *cobra.Command {
	var semester string
	var week int
	var rooms []string
	var browse bool
	var start, today *dateFlag

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Show the weekly room grid",
		Long: `Show the weekly room grid of a semester.

Without --week or --start the week containing today is shown, or the first
week when today is outside the semester. --browse opens an interactive
browser (←/h previous, →/l next, t current week, q quit).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if week != 0 && start.set {
				return fmt.Errorf("--week and --start are mutually exclusive")
			}

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

			day := app.today()
			if today.set {
				day = today.value
			}
			req := contract.NewGridRequest(semID, day)
			req.WeekNumber = week
			req.WeekStart = start.Ptr()
			req.Rooms = rooms

			if browse {
				if !app.interactive() {
					return fmt.Errorf("--browse needs an interactive terminal")
				}
				return app.runProgram(newGridBrowser(ctx, app.Grid, req))
			}

			resp, err := app.Grid.BuildWeekGrid(ctx, req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.RenderGrid(resp))
			if diag := formatter.RenderDiagnostics(resp.Grid.Diagnostics); diag != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, diag)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&semester, "semester", "", "Semester ID or name (default: the one containing today)")
	cmd.Flags().IntVar(&week, "week", 0, "Week number, starting at 1")
	start = addDateFlag(cmd, "start", "Start date of the week to show")
	today = addDateFlag(cmd, "today", "Reference date instead of today")
	cmd.Flags().StringSliceVar(&rooms, "room", nil, "Only these rooms (repeatable)")
	cmd.Flags().BoolVar(&browse, "browse", false, "Open the interactive week browser")

	return cmd
}
