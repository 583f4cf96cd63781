// Package settings renders the password change form.
package settings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/mindease/pkg/app"
	"tableflip.dev/mindease/pkg/tui/components/form"
	"tableflip.dev/mindease/pkg/tui/theme"
	"tableflip.dev/mindease/pkg/tui/ui"
)

const (
	fieldOld = iota
	fieldNew
	fieldConfirm
)

// Model edits app.Settings.
type Model struct {
	settings *app.Settings
	styles   theme.Theme
	form     *form.Model

	width int
}

// New returns a settings view bound to s.
func New(s *app.Settings, th theme.Theme) *Model {
	return &Model{
		settings: s,
		styles:   th,
		form: form.New(th.Form,
			form.NewField("Old Password:", "", true),
			form.NewField("New Password:", "at least 6 characters", true),
			form.NewField("Confirm New Password:", "", true),
		),
	}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Focus implements ui.Focusable.
func (m *Model) Focus() tea.Cmd { return m.form.Focus() }

// Blur implements ui.Focusable.
func (m *Model) Blur() { m.form.Blur() }

// Sync copies the panel's fields into the inputs; a successful change
// clears them.
func (m *Model) Sync() {
	m.form.SetValue(fieldOld, m.settings.OldPassword)
	m.form.SetValue(fieldNew, m.settings.NewPassword)
	m.form.SetValue(fieldConfirm, m.settings.ConfirmPassword)
	if m.settings.OldPassword == "" && m.settings.NewPassword == "" && m.settings.ConfirmPassword == "" {
		m.form.Select(fieldOld)
	}
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
		if !m.form.OnLast() {
			return m, m.form.Move(1)
		}
		return m, m.settings.ChangePassword()
	}
	if m.settings.Busy() {
		return m, nil
	}
	cmd := m.form.Update(msg)
	m.settings.OldPassword = m.form.Value(fieldOld)
	m.settings.NewPassword = m.form.Value(fieldNew)
	m.settings.ConfirmPassword = m.form.Value(fieldConfirm)
	return m, cmd
}

// SetSize implements ui.Component.
func (m *Model) SetSize(width, _ int) {
	m.width = max(width, 20)
	m.form.SetWidth(max(12, min(40, m.width-6)))
}

// View implements ui.Component.
func (m *Model) View() string {
	button := m.styles.Form.Button.Render("Change Password")
	if m.settings.Busy() {
		button = m.styles.Form.Busy.Render("Changing...")
	}
	body := strings.Join([]string{
		m.styles.Panel.Title.Render("Change Password"),
		"",
		m.form.View(),
		"",
		button,
	}, "\n")
	return m.styles.Panel.Focused.Width(m.width).Render(body)
}
