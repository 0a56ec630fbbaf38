package cli

import (
	"fmt"

	"github.com/alexanderramin/labtable/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a semester timetable from JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported semester %s %s\n", formatter.Bold(result.Semester.Name), formatter.Dim(result.Semester.ID))
			fmt.Fprintf(out, "  rooms:    %d created, %d reused\n", result.RoomsCreated, result.RoomsReused)
			fmt.Fprintf(out, "  lessons:  %d\n", result.LessonCount)
			fmt.Fprintf(out, "  sessions: %d\n", result.SessionCount)
			return nil
		},
	}
}
