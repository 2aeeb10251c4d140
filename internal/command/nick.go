package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hansol-io/banter/internal/auth"
)

// NewNickCmd creates the nick command.
func NewNickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nick <nickname>",
		Short: "Change your nickname",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			nickname := strings.TrimSpace(args[0])
			if nickname == "" {
				return writeCommandError(cmd, fmt.Errorf("nickname cannot be empty"))
			}

			client, err := ctx.APIClient()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			profile, err := client.UpdateNickname(cmd.Context(), nickname)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			// Keep the stored session in step with the server.
			session := *ctx.Session
			session.Nickname = profile.Nickname
			if err := auth.Save(ctx.Config.ConfigDir, session); err != nil {
				ctx.Logger.Warn().Err(err).Msg("session update failed")
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(profile)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Nickname changed to %s\n", profile.Nickname)
			return nil
		},
	}
}
