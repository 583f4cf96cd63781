// Package form is a vertical stack of labelled text inputs with one focused
// field at a time.
package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/mindease/pkg/tui/theme"
)

// Field is one labelled input.
type Field struct {
	Label string
	Input textinput.Model
}

// NewField returns a field with a prompt-less input. Secret fields echo
// bullets instead of characters.
func NewField(label, placeholder string, secret bool) Field {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 128
	if secret {
		in.EchoMode = textinput.EchoPassword
	}
	return Field{Label: label, Input: in}
}

// Model cycles focus through its fields.
type Model struct {
	fields  []Field
	focus   int
	focused bool
	styles  theme.FormTheme
}

// New returns a form over fields with the first one selected.
func New(th theme.FormTheme, fields ...Field) *Model {
	return &Model{fields: fields, styles: th}
}

// Len returns the number of fields.
func (m *Model) Len() int { return len(m.fields) }

// Index returns the selected field.
func (m *Model) Index() int { return m.focus }

// OnLast reports whether the last field is selected.
func (m *Model) OnLast() bool { return m.focus == len(m.fields)-1 }

// Value returns the text of field i.
func (m *Model) Value(i int) string { return m.fields[i].Input.Value() }

// SetValue replaces the text of field i when it differs.
func (m *Model) SetValue(i int, v string) {
	if m.fields[i].Input.Value() != v {
		m.fields[i].Input.SetValue(v)
	}
}

// Focus gives the selected field keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.apply()
}

// Blur drops keyboard focus from every field.
func (m *Model) Blur() {
	m.focused = false
	m.apply()
}

// Move selects the field delta steps away, wrapping at either end.
func (m *Model) Move(delta int) tea.Cmd {
	n := len(m.fields)
	if n == 0 {
		return nil
	}
	m.focus = ((m.focus+delta)%n + n) % n
	return m.apply()
}

// Select jumps to field i.
func (m *Model) Select(i int) tea.Cmd {
	if i < 0 || i >= len(m.fields) {
		return nil
	}
	m.focus = i
	return m.apply()
}

func (m *Model) apply() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.fields {
		if m.focused && i == m.focus {
			cmd = m.fields[i].Input.Focus()
			continue
		}
		m.fields[i].Input.Blur()
	}
	return cmd
}

// Update forwards msg to the selected input.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	m.fields[m.focus].Input, cmd = m.fields[m.focus].Input.Update(msg)
	return cmd
}

// SetWidth sizes every input.
func (m *Model) SetWidth(width int) {
	for i := range m.fields {
		m.fields[i].Input.SetWidth(width)
	}
}

// View renders label/input pairs separated by blank lines.
func (m *Model) View() string {
	parts := make([]string, 0, len(m.fields)*3)
	for i, f := range m.fields {
		label := m.styles.Label.Render(f.Label)
		if m.focused && i == m.focus {
			label = m.styles.Focused.Render(f.Label)
		}
		if i > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, label, f.Input.View())
	}
	return strings.Join(parts, "\n")
}
