// Package modal renders the notice overlay. While a notice is open it
// captures every key; enter or esc dismisses it.
package modal

import (
	"image/color"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/mindease/pkg/app"
	"tableflip.dev/mindease/pkg/tui/theme"
	"tableflip.dev/mindease/pkg/tui/ui"
	"tableflip.dev/mindease/pkg/tui/uiutil"
)

// DismissedMsg is emitted after the user closes a notice.
type DismissedMsg struct {
	Title string
}

func (m DismissedMsg) Describe() string { return "title=" + m.Title }

// Model shows whichever slot the root model points it at.
type Model struct {
	slot   *app.NoticeSlot
	styles theme.ModalTheme

	width  int
	height int
}

// New returns a modal bound to no slot.
func New(th theme.ModalTheme) *Model {
	return &Model{styles: th}
}

// Bind points the modal at slot; nil unbinds it.
func (m *Model) Bind(slot *app.NoticeSlot) { m.slot = slot }

// Open reports whether a notice is showing.
func (m *Model) Open() bool { return m.slot != nil && m.slot.IsOpen() }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || !m.Open() {
		return m, nil
	}
	switch key.String() {
	case "enter", "esc", "space":
		n, _ := m.slot.Current()
		m.slot.Dismiss()
		return m, func() tea.Msg { return DismissedMsg{Title: n.Title} }
	}
	return m, nil
}

// SetSize records the screen size the frame is fitted to.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the framed notice, or "" when nothing is open.
func (m *Model) View() string {
	if !m.Open() {
		return ""
	}
	n, _ := m.slot.Current()
	accent := m.accent(n.Type)

	inner := 48
	if m.width > 0 {
		inner = max(16, min(inner, m.width-8))
	}

	title := m.styles.Title.Background(accent).Width(inner).Render(uiutil.Clip(n.Title, inner-2))
	body := m.styles.Body.Width(inner).Render(uiutil.Wrap(n.Message, inner))
	hint := m.styles.Hint.Width(inner).Align(lipgloss.Right).Render("[enter] Close")

	content := strings.Join([]string{title, "", body, "", hint}, "\n")
	return m.styles.Frame.BorderForeground(accent).Render(content)
}

func (m *Model) accent(t app.NoticeType) color.Color {
	switch t {
	case app.NoticeSuccess:
		return m.styles.Success
	case app.NoticeError:
		return m.styles.Error
	case app.NoticeConfirm:
		return m.styles.Confirm
	}
	return m.styles.Info
}
