package command

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hansol-io/banter/internal/api"
	"github.com/hansol-io/banter/internal/auth"
)

// NewLoginCmd creates the login command. The token itself is issued by the
// server's web UI; login verifies it and stores it locally.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <server-url>",
		Short: "Store credentials for a banter server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			serverURL := ctx.Config.ServerURL
			if len(args) == 1 {
				serverURL = args[0]
			}
			if serverURL == "" {
				return writeCommandError(cmd, fmt.Errorf("server url required (argument or config server_url)"))
			}

			token, _ := cmd.Flags().GetString("token")
			if token == "" {
				return writeCommandError(cmd, fmt.Errorf("--token is required; create one in the web app settings"))
			}

			client, err := api.NewClient(serverURL, token)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			profile, err := client.GetProfile(cmd.Context())
			if err != nil {
				return writeCommandError(cmd, fmt.Errorf("token rejected: %w", err))
			}

			normalized, err := api.NormalizeBaseURL(serverURL)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			session := auth.Session{
				ServerURL: normalized,
				Token:     token,
				UserID:    profile.ID,
				Nickname:  profile.Nickname,
				LoggedIn:  time.Now().Unix(),
			}
			if err := auth.Save(ctx.Config.ConfigDir, session); err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"server_url": normalized,
					"user_id":    profile.ID,
					"nickname":   profile.Nickname,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %s\n", normalized, profile.Nickname)
			return nil
		},
	}

	cmd.Flags().String("token", "", "API token from the web app")
	return cmd
}
