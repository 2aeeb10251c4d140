package chat

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog"

	"github.com/hansol-io/banter/internal/room"
)

// Model implements the chat UI. All room semantics live in the session;
// the model only renders the latest projection and translates input into
// session calls.
type Model struct {
	session       *room.Session
	log           zerolog.Logger
	roomID        string
	userID        string
	nickname      string
	notifications bool

	viewport      viewport.Model
	input         textarea.Model
	zones         *zone.Manager
	view          room.View
	width         int
	height        int
	status        string
	initialScroll bool
	seenIDs       map[string]struct{}
	seeded        bool
}

// NewModel builds the UI around a fresh session.
func NewModel(opts Options) (*Model, error) {
	if opts.RoomID == "" {
		return nil, errors.New("chat: room id is required")
	}
	session, err := room.NewSession(room.SessionOptions{
		Client:       opts.Client,
		Cache:        opts.Cache,
		Logger:       opts.Logger,
		PollInterval: opts.PollInterval,
	})
	if err != nil {
		return nil, err
	}
	session.SetAuth(authFor(opts))

	input := textarea.New()
	input.Placeholder = "Message"
	input.Prompt = ""
	input.CharLimit = 0
	input.ShowLineNumbers = false
	input.SetHeight(1)
	input.Focus()

	return &Model{
		session:       session,
		log:           opts.Logger,
		roomID:        opts.RoomID,
		userID:        opts.UserID,
		nickname:      opts.Nickname,
		notifications: opts.Notifications,
		input:         input,
		zones:         zone.New(),
		view:          session.CurrentView(),
		initialScroll: true,
		seenIDs:       make(map[string]struct{}),
	}, nil
}

// Close tears the session down.
func (m *Model) Close() {
	m.session.Close()
	m.zones.Close()
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.mountCmd(), m.waitForUpdate())
}

type mountedMsg struct{ err error }

func (m *Model) mountCmd() tea.Cmd {
	return func() tea.Msg {
		return mountedMsg{err: m.session.Mount(context.Background(), m.roomID)}
	}
}

// refreshMsg bridges the session's update channel into the tea loop.
type refreshMsg struct{}

func (m *Model) waitForUpdate() tea.Cmd {
	updates := m.session.Updates()
	return func() tea.Msg {
		<-updates
		return refreshMsg{}
	}
}

type opDoneMsg struct{ err error }

func (m *Model) sendCmd() tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.session.Send(context.Background())}
	}
}

func (m *Model) deleteCmd(messageID string) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.session.Delete(context.Background(), messageID)}
	}
}

func (m *Model) toggleLikeCmd(messageID string) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.session.ToggleLike(context.Background(), messageID)}
	}
}
