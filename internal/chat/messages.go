package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/hansol-io/banter/internal/types"
)

func (m *Model) renderMessages() string {
	messages := m.view.SortedMessages
	if len(messages) == 0 {
		if m.view.Loading.InitialLoad {
			return lipgloss.NewStyle().Foreground(metaColor).Render("loading…")
		}
		return lipgloss.NewStyle().Foreground(metaColor).Render("no messages yet")
	}

	chunks := make([]string, 0, len(messages))
	for _, msg := range messages {
		chunks = append(chunks, m.formatMessage(msg))
	}
	return strings.Join(chunks, "\n\n")
}

func (m *Model) formatMessage(msg types.Message) string {
	color := colorForSender(msg.SenderID)
	if _, mine := m.view.MyMessageIDs[msg.ID]; mine {
		color = userColor
	}

	byline := lipgloss.NewStyle().Foreground(color).Bold(true).Render(displayName(msg.Sender)) +
		lipgloss.NewStyle().Foreground(metaColor).Render("  "+humanize.Time(msg.CreatedAt))

	var parts []string
	parts = append(parts, byline)

	if msg.ReplyTo != nil {
		parts = append(parts, m.formatReplyContext(*msg.ReplyTo))
	}

	body := msg.Content
	if width := m.mainWidth(); width > 0 {
		body = ansi.Wrap(body, width, "")
	}
	parts = append(parts, body)

	parts = append(parts, m.formatFooter(msg))
	return strings.Join(parts, "\n")
}

// formatReplyContext renders the denormalized reply snapshot. It is shown
// as captured at send time even if the target was deleted since.
func (m *Model) formatReplyContext(ref types.ReplyRef) string {
	quoted := firstLine(ref.Content)
	if len(quoted) > 60 {
		quoted = quoted[:59] + "…"
	}
	style := lipgloss.NewStyle().Foreground(metaColor).Italic(true)
	return style.Render(fmt.Sprintf("↪ %s: %s", displayName(ref.Sender), quoted))
}

func (m *Model) formatFooter(msg types.Message) string {
	like := "♡"
	if msg.Liked {
		like = "♥"
	}
	likeText := like
	if msg.LikesCount > 0 {
		likeText = fmt.Sprintf("%s %d", like, msg.LikesCount)
	}
	likeStyle := lipgloss.NewStyle().Foreground(metaColor)
	if msg.Liked {
		likeStyle = lipgloss.NewStyle().Foreground(likeColor)
	}
	if msg.ID == m.view.Loading.TogglingLikeID {
		likeStyle = likeStyle.Faint(true)
	}

	parts := []string{
		m.zones.Mark("like-"+msg.ID, likeStyle.Render(likeText)),
		m.zones.Mark("reply-"+msg.ID, lipgloss.NewStyle().Foreground(metaColor).Render("reply")),
	}
	if _, mine := m.view.MyMessageIDs[msg.ID]; mine {
		parts = append(parts, m.zones.Mark("delete-"+msg.ID,
			lipgloss.NewStyle().Foreground(metaColor).Render("delete")))
	}
	return strings.Join(parts, "  ")
}

func displayName(sender types.Sender) string {
	if sender.Nickname != "" {
		return sender.Nickname
	}
	if sender.ID != "" {
		return sender.ID
	}
	return "someone"
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
