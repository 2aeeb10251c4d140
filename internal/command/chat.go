package command

import (
	"github.com/spf13/cobra"

	"github.com/hansol-io/banter/internal/cache"
	"github.com/hansol-io/banter/internal/chat"
	"github.com/hansol-io/banter/internal/room"
)

// NewChatCmd creates the chat command.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <room-id>",
		Short: "Join a room",
		Args:  cobra.ExactArgs(1),
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

			var store room.Cache
			if opened, err := cache.Open(ctx.Config.CacheFile); err != nil {
				ctx.Logger.Warn().Err(err).Msg("cache unavailable")
			} else {
				defer opened.Close()
				store = opened
			}

			interval := ctx.Config.PollInterval
			if flagInterval, _ := cmd.Flags().GetDuration("poll-interval"); flagInterval > 0 {
				interval = flagInterval
			}
			noNotify, _ := cmd.Flags().GetBool("no-notify")

			return chat.Run(chat.Options{
				Client:        client,
				Cache:         store,
				Logger:        ctx.Logger,
				RoomID:        args[0],
				UserID:        ctx.Session.UserID,
				Nickname:      ctx.Session.Nickname,
				PollInterval:  interval,
				Notifications: !noNotify,
			})
		},
	}

	cmd.Flags().Duration("poll-interval", 0, "message refresh cadence (default from config)")
	cmd.Flags().Bool("no-notify", false, "disable OS notifications")
	return cmd
}
