// Package eventviewer is the debug pane listing the messages the root model
// has handled, newest on top.
package eventviewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/mindease/pkg/tui/theme"
	"tableflip.dev/mindease/pkg/tui/ui"
)

// Level tells routine messages from failed backend results.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Entry is one logged message.
type Entry struct {
	At     time.Time
	Source string
	Kind   string
	Detail string
	Level  Level
}

// Model keeps the most recent entries in a scrollable viewport.
type Model struct {
	viewport viewport.Model
	styles   theme.EventsTheme

	entries []Entry
	limit   int
	failed  int
	// pinned keeps the viewport on the newest entry while the user has not
	// scrolled away from it.
	pinned bool

	now func() time.Time

	width  int
	height int
}

// NewModel returns a log keeping at most limit entries.
func NewModel(limit int, th theme.EventsTheme) *Model {
	if limit <= 0 {
		limit = 200
	}
	return &Model{
		viewport: viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		styles:   th,
		limit:    limit,
		pinned:   true,
		now:      time.Now,
	}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component. pgup and pgdown scroll half a page.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	step := max(1, (m.height-3)/2)
	switch key.String() {
	case "pgdown":
		m.viewport.LineDown(step)
	case "pgup":
		m.viewport.LineUp(step)
	default:
		return m, nil
	}
	m.pinned = m.viewport.AtTop()
	return m, nil
}

// Record logs msg under source. Messages with a Failed method that
// reports true are logged as errors.
func (m *Model) Record(source string, msg tea.Msg) {
	e := Entry{
		Source: source,
		Kind:   fmt.Sprintf("%T", msg),
		Detail: Describe(msg),
	}
	if f, ok := msg.(interface{ Failed() bool }); ok && f.Failed() {
		e.Level = LevelError
	}
	m.Append(e)
}

// Append adds e on top, dropping the oldest entry past the limit.
func (m *Model) Append(e Entry) {
	if e.At.IsZero() {
		e.At = m.now()
	}
	if e.Source == "" {
		e.Source = "tea"
	}
	m.entries = append([]Entry{e}, m.entries...)
	if len(m.entries) > m.limit {
		m.entries = m.entries[:m.limit]
	}
	m.failed = 0
	for _, kept := range m.entries {
		if kept.Level == LevelError {
			m.failed++
		}
	}
	m.render()
}

// Len returns the number of entries kept.
func (m *Model) Len() int { return len(m.entries) }

// Entries returns the kept entries, newest first.
func (m *Model) Entries() []Entry { return m.entries }

// Describe summarizes msg for the log. Typed characters are never shown
// since they may belong to a password.
func Describe(msg tea.Msg) string {
	if d, ok := msg.(interface{ Describe() string }); ok {
		return d.Describe()
	}
	switch v := msg.(type) {
	case tea.KeyPressMsg:
		if v.Text != "" {
			return "key=<text>"
		}
		return fmt.Sprintf("key=%q", v.String())
	case tea.WindowSizeMsg:
		return fmt.Sprintf("size=%dx%d", v.Width, v.Height)
	}
	return ""
}

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	width, height = max(width, 4), max(height, 3)
	if m.width == width && m.height == height {
		return
	}
	m.width, m.height = width, height
	m.viewport.SetWidth(max(1, width-2))
	m.viewport.SetHeight(max(1, height-3))
	m.render()
}

// View implements ui.Component.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	title := fmt.Sprintf("Events (%d)", len(m.entries))
	if m.failed > 0 {
		title += m.styles.Failed.Render(fmt.Sprintf("  %d failed", m.failed))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, m.styles.Header.Render(title), m.viewport.View())
	return m.styles.Frame.Width(m.width).Height(m.height).Render(body)
}

func (m *Model) render() {
	if len(m.entries) == 0 {
		m.viewport.SetContent(m.styles.Time.Render("Nothing logged yet"))
		return
	}
	lines := make([]string, len(m.entries))
	for i, e := range m.entries {
		lines[i] = m.line(e)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	if m.pinned {
		m.viewport.SetYOffset(0)
	}
}

func (m *Model) line(e Entry) string {
	text := e.Kind
	if e.Detail != "" {
		text += " " + e.Detail
	}
	style := m.styles.Line
	if e.Level == LevelError {
		style = m.styles.Failed
	}
	return m.styles.Time.Render(e.At.Format("15:04:05.000")) + " " +
		m.styles.Source.Render(e.Source) + " " + style.Render(text)
}
