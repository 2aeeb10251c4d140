package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hansol-io/banter/internal/auth"
)

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate and remove stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			if ctx.Session == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}

			// Best effort: the local session is cleared even if the server
			// is unreachable.
			if client, err := ctx.APIClient(); err == nil {
				if err := client.Logout(cmd.Context()); err != nil {
					ctx.Logger.Warn().Err(err).Msg("server-side logout failed")
				}
			}

			if err := auth.Clear(ctx.Config.ConfigDir); err != nil {
				return writeCommandError(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
