package chat

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hansol-io/banter/internal/room"
	"github.com/hansol-io/banter/internal/types"
)

// Options configure the chat UI.
type Options struct {
	Client        room.Collaborator
	Cache         room.Cache
	Logger        zerolog.Logger
	RoomID        string
	UserID        string
	Nickname      string
	PollInterval  time.Duration
	Notifications bool
}

// Run starts the chat UI and blocks until the user quits.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	// Set window title (ANSI OSC sequence)
	fmt.Printf("\033]0;banter\007")

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	model.Close()
	return err
}

func authFor(opts Options) types.AuthState {
	return types.AuthState{
		IsAuthenticated: opts.UserID != "",
		UserID:          opts.UserID,
	}
}
