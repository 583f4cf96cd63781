// Package panel renders titled, framed blocks of text.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/mindease/pkg/tui/theme"
)

// Model renders a titled body inside the panel frame.
type Model struct {
	title      string
	body       string
	width      int
	frameStyle lipgloss.Style
	titleStyle lipgloss.Style
	bodyStyle  lipgloss.Style
}

// New returns an empty panel styled by th.
func New(th theme.PanelTheme) Model {
	return Model{
		frameStyle: th.Frame,
		titleStyle: th.Title,
		bodyStyle:  th.Body,
	}
}

// SetContent updates the panel title and body.
func (m *Model) SetContent(title string, lines ...string) {
	m.title = title
	m.body = strings.Join(lines, "\n")
}

// SetWidth fixes the outer width; zero lets the content decide.
func (m *Model) SetWidth(width int) { m.width = width }

// InnerWidth returns the columns available to the body.
func (m Model) InnerWidth() int {
	return max(1, m.width-m.frameStyle.GetHorizontalFrameSize())
}

// Reset clears panel content.
func (m *Model) Reset() {
	m.title = ""
	m.body = ""
}

// View returns the rendered panel string and its total height in lines.
func (m Model) View() (string, int) {
	var content []string
	if m.title != "" {
		content = append(content, m.titleStyle.Render(m.title))
	}
	if m.body != "" {
		content = append(content, m.bodyStyle.Render(m.body))
	}
	frame := m.frameStyle
	if m.width > 0 {
		frame = frame.Width(m.width)
	}
	view := frame.Render(strings.Join(content, "\n"))
	return view, strings.Count(view, "\n") + 1
}
