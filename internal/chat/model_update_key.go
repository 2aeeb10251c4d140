package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hansol-io/banter/internal/room"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		if m.view.Reply.IsReplying {
			m.session.CancelReply()
			return m, nil
		}
		if m.view.Err.Kind != room.ErrorNone {
			if m.view.Err.Terminal() {
				return m, tea.Quit
			}
			m.session.ClearError()
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		// Shift+enter (reported as alt+enter by most terminals) inserts a
		// newline; plain enter submits.
		if msg.Alt {
			return m, m.updateInput(msg)
		}
		if !m.view.CanSend {
			return m, nil
		}
		return m, m.sendCmd()

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+r":
		if target := m.lastForeignMessageID(); target != "" {
			m.session.StartReply(target)
		}
		return m, nil
	case "ctrl+l":
		if target := m.lastForeignMessageID(); target != "" {
			return m, m.toggleLikeCmd(target)
		}
		return m, nil
	}

	return m, m.updateInput(msg)
}

// lastForeignMessageID returns the newest message not authored by the
// viewer, the most common reply and like target.
func (m *Model) lastForeignMessageID() string {
	for i := len(m.view.SortedMessages) - 1; i >= 0; i-- {
		msg := m.view.SortedMessages[i]
		if _, mine := m.view.MyMessageIDs[msg.ID]; !mine {
			return msg.ID
		}
	}
	return ""
}
