package cli

import (
	"fmt"

	"github.com/alexanderramin/labtable/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRoomCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Manage rooms",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add NAME...",
			Short: "Create one or more rooms",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, name := range args {
					room, err := app.Rooms.Create(cmd.Context(), name)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Created room %s\n", formatter.Bold(room.Name))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List rooms",
			RunE: func(cmd *cobra.Command, args []string) error {
				rooms, err := app.Rooms.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(rooms) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No rooms found.")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoomList(rooms))
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename OLD NEW",
			Short: "Rename a room; its sessions follow",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Rooms.Rename(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed room %s to %s\n", args[0], formatter.Bold(args[1]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove NAME",
			Short: "Delete an unused room",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Rooms.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed room %s\n", args[0])
				return nil
			},
		},
	)

	return cmd
}
