package chat

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Shift {
		return m, nil
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if handled, cmd := m.handleMouseClick(msg); handled {
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleMouseClick(msg tea.MouseMsg) (bool, tea.Cmd) {
	if z := m.zones.Get("reply-cancel"); z.InBounds(msg) {
		m.session.CancelReply()
		return true, nil
	}
	for _, message := range m.view.SortedMessages {
		if z := m.zones.Get("like-" + message.ID); z.InBounds(msg) {
			return true, m.toggleLikeCmd(message.ID)
		}
		if z := m.zones.Get("reply-" + message.ID); z.InBounds(msg) {
			m.session.StartReply(message.ID)
			m.input.Focus()
			return true, nil
		}
		if _, mine := m.view.MyMessageIDs[message.ID]; mine {
			if z := m.zones.Get("delete-" + message.ID); z.InBounds(msg) {
				return true, m.deleteCmd(message.ID)
			}
		}
	}
	return false, nil
}
