package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewNewCmd creates the new command.
func NewNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create a room",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return writeCommandError(cmd, fmt.Errorf("room name cannot be empty"))
			}

			client, err := ctx.APIClient()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			room, err := client.CreateRoom(cmd.Context(), name)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(room)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created room %s (%s)\n", room.Name, room.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Join it with: %s chat %s\n", AppName, room.ID)
			return nil
		},
	}
}
