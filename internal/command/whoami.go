package command

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			client, err := ctx.APIClient()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			profile, err := client.GetProfile(cmd.Context())
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(profile)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) @ %s\n", profile.Nickname, profile.ID, ctx.Session.ServerURL)
			return nil
		},
	}
}
