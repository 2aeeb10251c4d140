package chat

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

var senderPalette = []lipgloss.Color{
	lipgloss.Color("111"),
	lipgloss.Color("157"),
	lipgloss.Color("216"),
	lipgloss.Color("36"),
	lipgloss.Color("183"),
	lipgloss.Color("230"),
}

var (
	userColor   = lipgloss.Color("51")
	metaColor   = lipgloss.Color("240")
	statusColor = lipgloss.Color("244")
	likeColor   = lipgloss.Color("204")
	errorColor  = lipgloss.Color("203")
	inputBg     = lipgloss.Color("236")
)

// colorForSender assigns a stable palette color per sender id.
func colorForSender(senderID string) lipgloss.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(senderID))
	return senderPalette[int(h.Sum32())%len(senderPalette)]
}
