package command

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hansol-io/banter/internal/cache"
	"github.com/hansol-io/banter/internal/types"
)

// NewRoomsCmd creates the rooms command.
func NewRoomsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List rooms",
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

			store, storeErr := cache.Open(ctx.Config.CacheFile)
			if storeErr != nil {
				ctx.Logger.Warn().Err(storeErr).Msg("cache unavailable")
			} else {
				defer store.Close()
			}

			rooms, err := client.ListRooms(cmd.Context())
			if err != nil {
				// Offline fallback: show the last snapshot, marked as such.
				if store != nil {
					if cached, cacheErr := store.Rooms(); cacheErr == nil && len(cached) > 0 {
						fmt.Fprintln(cmd.ErrOrStderr(), "Warning: server unreachable, showing cached rooms")
						return printRooms(cmd, ctx.JSONMode, cached)
					}
				}
				return writeCommandError(cmd, err)
			}
			if store != nil {
				if err := store.ReplaceRooms(rooms); err != nil {
					ctx.Logger.Debug().Err(err).Msg("room cache write failed")
				}
			}
			return printRooms(cmd, ctx.JSONMode, rooms)
		},
	}
}

func printRooms(cmd *cobra.Command, jsonMode bool, rooms []types.RoomListItem) error {
	if jsonMode {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(rooms)
	}
	if len(rooms) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No rooms yet")
		return nil
	}
	for _, room := range rooms {
		line := fmt.Sprintf("%s  %s", room.ID, room.Name)
		if room.CreatorNickname != "" {
			line += fmt.Sprintf("  (by %s)", room.CreatorNickname)
		}
		if !room.UpdatedAt.IsZero() {
			line += fmt.Sprintf("  · %s", humanize.Time(room.UpdatedAt))
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
