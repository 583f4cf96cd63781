// Package login renders the session gate form.
package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/mindease/pkg/app"
	"tableflip.dev/mindease/pkg/tui/components/form"
	"tableflip.dev/mindease/pkg/tui/theme"
	"tableflip.dev/mindease/pkg/tui/ui"
)

const (
	fieldUsername = iota
	fieldPassword
)

// Model edits the gate's credentials and submits them.
type Model struct {
	gate   *app.Gate
	styles theme.Theme
	form   *form.Model

	width  int
	height int
}

// New returns a form bound to gate.
func New(gate *app.Gate, th theme.Theme) *Model {
	m := &Model{
		gate:   gate,
		styles: th,
		form: form.New(th.Form,
			form.NewField("Username:", "username", false),
			form.NewField("Password:", "password", true),
		),
	}
	m.Sync()
	return m
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return textinput.Blink }

// Focus gives the form keyboard focus.
func (m *Model) Focus() tea.Cmd { return m.form.Focus() }

// Blur drops keyboard focus.
func (m *Model) Blur() { m.form.Blur() }

// Sync copies the gate's fields into the inputs. The root model calls it
// after every state change.
func (m *Model) Sync() {
	m.form.SetValue(fieldUsername, m.gate.Username)
	m.form.SetValue(fieldPassword, m.gate.Password)
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, m.form.Update(msg)
	}

	switch key.String() {
	case "tab", "down":
		return m, m.form.Move(1)
	case "shift+tab", "up":
		return m, m.form.Move(-1)
	case "enter":
		if m.form.Index() == fieldUsername && m.gate.Password == "" {
			return m, m.form.Select(fieldPassword)
		}
		return m, m.gate.Submit()
	case "ctrl+r":
		m.gate.ToggleMode()
		m.Sync()
		return m, m.form.Select(fieldUsername)
	}

	if m.gate.Busy() {
		return m, nil
	}
	cmd := m.form.Update(msg)
	m.gate.Username = m.form.Value(fieldUsername)
	m.gate.Password = m.form.Value(fieldPassword)
	return m, cmd
}

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.form.SetWidth(max(12, min(40, width-10)))
}

// View implements ui.Component.
func (m *Model) View() string {
	st := m.styles.Form
	title := "Login"
	toggle := "New user? Register here"
	if m.gate.Mode == app.ModeRegister {
		title = "Register"
		toggle = "Already have an account? Login"
	}

	button := st.Button.Render(title)
	if m.gate.Busy() {
		button = st.Busy.Render("Processing...")
	}

	lines := []string{
		m.styles.Panel.Title.Render(title),
		"",
		m.form.View(),
		"",
		button,
	}
	if m.gate.Message != "" {
		style := st.Success
		if m.gate.MessageIsError {
			style = st.Error
		}
		lines = append(lines, "", style.Render(m.gate.Message))
	}
	lines = append(lines, "", st.Link.Render(toggle)+m.styles.Footer.Help.Render(" (ctrl+r)"))

	box := m.styles.Panel.Focused.Padding(1, 3).Render(strings.Join(lines, "\n"))
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
