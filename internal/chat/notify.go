package chat

import (
	"strings"

	"github.com/gen2brain/beeep"

	"github.com/hansol-io/banter/internal/types"
)

// notifyNewMessages fires an OS notification for messages that arrived
// from other users. The first populated view seeds the seen set without
// notifying, so opening a busy room is quiet.
func (m *Model) notifyNewMessages() {
	if !m.seeded {
		if len(m.view.Messages) > 0 || !m.view.Loading.InitialLoad {
			for _, msg := range m.view.Messages {
				m.seenIDs[msg.ID] = struct{}{}
			}
			m.seeded = true
		}
		return
	}

	for _, msg := range m.view.Messages {
		if _, seen := m.seenIDs[msg.ID]; seen {
			continue
		}
		m.seenIDs[msg.ID] = struct{}{}
		if msg.SenderID == m.userID {
			continue
		}
		if m.notifications {
			roomName := ""
			if m.view.RoomInfo != nil {
				roomName = m.view.RoomInfo.Name
			}
			if err := sendNotification(msg, roomName); err != nil {
				m.log.Debug().Err(err).Msg("notification failed")
			}
		}
	}
}

func sendNotification(msg types.Message, roomName string) error {
	title := displayName(msg.Sender)
	if roomName != "" {
		title = roomName + " · " + title
	}
	return beeep.Notify(title, truncateNotification(msg.Content, 100), "")
}

func truncateNotification(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
