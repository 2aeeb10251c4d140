package chat

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hansol-io/banter/internal/room"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	case refreshMsg:
		return m.handleRefresh()
	case mountedMsg:
		return m.handleMounted(msg)
	case opDoneMsg:
		return m.handleOpDone(msg)
	default:
		return m, m.updateInput(msg)
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.resize()
	return m, nil
}

func (m *Model) handleRefresh() (tea.Model, tea.Cmd) {
	atBottom := m.viewport.AtBottom()
	m.view = m.session.CurrentView()
	// The session owns the draft: a successful send clears it there, so
	// the textarea follows the projection rather than the other way round.
	if m.input.Value() != m.view.Input {
		m.input.SetValue(m.view.Input)
	}
	m.notifyNewMessages()
	m.refreshViewport(atBottom || m.initialScroll)
	m.initialScroll = false
	return m, m.waitForUpdate()
}

func (m *Model) handleMounted(msg mountedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Str("room", m.roomID).Msg("mount failed")
	}
	return m, nil
}

func (m *Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err == nil:
		m.status = ""
	case errors.Is(msg.err, room.ErrMutationInFlight):
		m.status = "still working on the previous action"
	case errors.Is(msg.err, room.ErrNotAuthenticated):
		m.status = "log in to send messages"
	case errors.Is(msg.err, room.ErrUnknownMessage):
		m.status = ""
	default:
		// The session already surfaced the error in the view.
		m.status = ""
	}
	return m, nil
}

// updateInput forwards a msg to the textarea and mirrors the draft into
// the session so CanSend and friends stay true to what is on screen.
func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != m.view.Input {
		m.session.SetInput(value)
	}
	return cmd
}
