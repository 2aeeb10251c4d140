package chat

const inputMaxHeight = 6
const inputPadding = 1

func (m *Model) mainWidth() int {
	if m.width < 1 {
		return 0
	}
	return m.width
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}

	width := m.mainWidth()
	inputWidth := width - inputPadding
	if inputWidth < 1 {
		inputWidth = 1
	}
	m.input.SetWidth(inputWidth)
	lineCount := m.input.LineCount()
	if lineCount < 1 {
		lineCount = 1
	}
	if lineCount > inputMaxHeight {
		lineCount = inputMaxHeight
	}
	m.input.SetHeight(lineCount)

	statusHeight := 1
	previewHeight := 1
	m.viewport.Width = width
	m.viewport.Height = m.height - m.input.Height() - statusHeight - previewHeight
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.refreshViewport(m.initialScroll)
}

func (m *Model) refreshViewport(scrollToBottom bool) {
	m.viewport.SetContent(m.renderMessages())
	if scrollToBottom {
		m.viewport.GotoBottom()
	}
}
