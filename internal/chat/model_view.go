package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/hansol-io/banter/internal/room"
)

func (m *Model) View() string {
	if m.view.Err.Terminal() {
		return lipgloss.NewStyle().Foreground(errorColor).Padding(1, 2).
			Render("room not found\n\npress esc to leave")
	}

	var lines []string
	lines = append(lines, m.viewport.View())
	if preview := m.renderReplyPreview(); preview != "" {
		lines = append(lines, preview)
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, m.renderInput(), m.statusLine())

	output := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return m.zones.Scan(output)
}

func (m *Model) renderInput() string {
	style := lipgloss.NewStyle().Background(inputBg).Padding(0, inputPadding, 0, 0)
	if width := m.mainWidth(); width > 0 {
		style = style.Width(width)
	}
	return style.Render(m.input.View())
}

// renderReplyPreview renders the reply line above the input when a target
// is set.
func (m *Model) renderReplyPreview() string {
	if !m.view.Reply.IsReplying || m.view.Reply.Target == nil {
		return ""
	}
	target := *m.view.Reply.Target

	previewStyle := lipgloss.NewStyle().Foreground(metaColor).Italic(true)
	cancelStyle := lipgloss.NewStyle().Foreground(statusColor)

	quoted := firstLine(target.Content)
	if len(quoted) > 60 {
		quoted = quoted[:59] + "…"
	}
	preview := previewStyle.Render(fmt.Sprintf("↪ Replying to %s: %s", displayName(target.Sender), quoted))
	cancel := m.zones.Mark("reply-cancel", cancelStyle.Render(" [x]"))

	if width := m.mainWidth(); width > 0 {
		padding := width - lipgloss.Width(preview) - lipgloss.Width(cancel)
		if padding > 0 {
			return preview + strings.Repeat(" ", padding) + cancel
		}
	}
	return preview + " " + cancel
}

func (m *Model) statusLine() string {
	left := m.breadcrumb()
	if m.view.Loading.Sending {
		left = "sending · " + left
	}
	if m.status != "" {
		left = m.status + " · " + left
	}
	if m.view.Err.Kind != room.ErrorNone {
		left = lipgloss.NewStyle().Foreground(errorColor).Render(m.view.Err.Message) + " · " + left
	}

	right := ""
	if m.view.InputEmpty {
		right = "enter to send · esc to quit"
	}
	return lipgloss.NewStyle().Foreground(statusColor).Render(alignStatusLine(left, right, m.mainWidth()))
}

func alignStatusLine(left, right string, width int) string {
	if width <= 0 || right == "" {
		return left
	}
	leftWidth := ansi.StringWidth(left)
	rightWidth := ansi.StringWidth(right)
	if leftWidth+rightWidth+1 > width {
		return left
	}
	return left + strings.Repeat(" ", width-leftWidth-rightWidth) + right
}

func (m *Model) breadcrumb() string {
	if m.view.RoomInfo != nil && m.view.RoomInfo.Name != "" {
		return "banter ❯ " + m.view.RoomInfo.Name
	}
	return "banter ❯ " + m.roomID
}
