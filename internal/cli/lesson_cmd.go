package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/labtable/internal/cli/formatter"
	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/spf13/cobra"
)

func newLessonCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Manage lesson period times",
	}

	cmd.AddCommand(
		newLessonSetCmd(app),
		newLessonListCmd(app),
		newLessonRemoveCmd(app),
		newLessonSeedCmd(app),
	)

	return cmd
}

func parsePeriod(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid period %q: must be a positive integer", s)
	}
	return n, nil
}

func newLessonSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set PERIOD START END",
		Short: "Set the clock times of a period (HH:MM)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parsePeriod(args[0])
			if err != nil {
				return err
			}
			l := domain.LessonTime{Number: n, StartTime: args[1], EndTime: args[2]}
			if err := app.Lessons.Set(cmd.Context(), l); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Period %d: %s-%s\n", n, l.StartTime, l.EndTime)
			return nil
		},
	}
}

func newLessonListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List lesson times",
		RunE: func(cmd *cobra.Command, args []string) error {
			lessons, err := app.Lessons.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(lessons) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No lesson times configured. Run 'labtable lesson seed' for a standard day.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLessonList(lessons))
			return nil
		},
	}
}

func newLessonRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PERIOD",
		Short: "Remove the times of a period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parsePeriod(args[0])
			if err != nil {
				return err
			}
			if err := app.Lessons.Delete(cmd.Context(), n); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed period %d\n", n)
			return nil
		},
	}
}

func newLessonSeedCmd(app *App) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a standard day of 45-minute periods from 07:00",
		RunE: func(cmd *cobra.Command, args []string) error {
			lessons, err := app.Lessons.SeedDefaults(cmd.Context(), count)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLessonList(lessons))
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 12, "Number of periods (1-16)")
	return cmd
}
