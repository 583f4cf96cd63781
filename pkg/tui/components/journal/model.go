// Package journal renders the journal view: the entry editor with its
// suggested prompt on top and the past entries list below.
package journal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textarea"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/mindease/pkg/api"
	"tableflip.dev/mindease/pkg/app"
	"tableflip.dev/mindease/pkg/tui/theme"
	"tableflip.dev/mindease/pkg/tui/ui"
	"tableflip.dev/mindease/pkg/tui/uiutil"
)

// FocusPane identifies which pane currently owns keyboard focus.
type FocusPane int

const (
	FocusEditor FocusPane = iota
	FocusEntries
)

const (
	editorRows  = 5
	placeholder = "What's on your mind today?"
)

// Model edits the workspace draft and browses its entries.
type Model struct {
	ws     *app.Workspace
	styles theme.Theme

	editor  textarea.Model
	focus   FocusPane
	focused bool

	selected   int
	selectedID api.EntryID
	offset     int

	width  int
	height int
}

// New returns a journal view bound to ws.
func New(ws *app.Workspace, th theme.Theme) *Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(editorRows)
	return &Model{ws: ws, styles: th, editor: ta}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Focus gives the view keyboard focus, restoring the last focused pane.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.updateInputFocus()
}

// Blur drops keyboard focus.
func (m *Model) Blur() {
	m.focused = false
	m.updateInputFocus()
}

// FocusedPane reports which pane currently owns focus.
func (m *Model) FocusedPane() FocusPane { return m.focus }

// Selected returns the highlighted entry.
func (m *Model) Selected() (api.Entry, bool) {
	entries := m.ws.EntryList()
	if m.selected < 0 || m.selected >= len(entries) {
		return api.Entry{}, false
	}
	return entries[m.selected], true
}

// Sync copies workspace state into the editor and keeps the selection on
// the same entry when the list changes.
func (m *Model) Sync() {
	if m.editor.Value() != m.ws.Draft() {
		m.editor.SetValue(m.ws.Draft())
	}
	entries := m.ws.EntryList()
	if m.selectedID != "" {
		for i, e := range entries {
			if e.ID == m.selectedID {
				m.selected = i
				return
			}
		}
	}
	m.selected = clamp(m.selected, 0, len(entries)-1)
	if len(entries) > 0 {
		m.selectedID = entries[m.selected].ID
	} else {
		m.selectedID = ""
	}
}

func (m *Model) updateInputFocus() tea.Cmd {
	if m.focused && m.focus == FocusEditor {
		return m.editor.Focus()
	}
	m.editor.Blur()
	return nil
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "tab", "shift+tab":
		if m.focus == FocusEditor {
			m.focus = FocusEntries
		} else {
			m.focus = FocusEditor
		}
		return m, m.updateInputFocus()
	case "ctrl+s":
		return m, m.ws.SaveEntry()
	case "ctrl+g":
		return m, m.ws.GeneratePrompt()
	}

	if m.focus == FocusEntries {
		return m, m.handleListKey(key)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.ws.SetDraft(m.editor.Value())
	return m, cmd
}

func (m *Model) handleListKey(key tea.KeyPressMsg) tea.Cmd {
	entries := m.ws.EntryList()
	switch key.String() {
	case "up", "k":
		m.move(-1, len(entries))
	case "down", "j":
		m.move(1, len(entries))
	case "home", "g":
		m.move(-len(entries), len(entries))
	case "end", "G":
		m.move(len(entries), len(entries))
	case "i":
		if e, ok := m.Selected(); ok {
			return m.ws.GetInsight(e.ID, e.Text)
		}
	case "r":
		if e, ok := m.Selected(); ok {
			return m.ws.RecalculateSentiment(e.ID, e.Text)
		}
	}
	return nil
}

func (m *Model) move(delta, n int) {
	if n == 0 {
		return
	}
	m.selected = clamp(m.selected+delta, 0, n-1)
	m.selectedID = m.ws.EntryList()[m.selected].ID
}

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 20)
	m.height = max(height, editorRows+6)
	frame := m.styles.Panel.Frame.GetHorizontalFrameSize()
	m.editor.SetWidth(max(10, m.width-frame))
	m.editor.SetHeight(editorRows)
}

// View implements ui.Component.
func (m *Model) View() string {
	editor := m.renderEditor()
	used := strings.Count(editor, "\n") + 1
	list := m.renderEntries(max(3, m.height-used))
	return editor + "\n" + list
}

func (m *Model) frame(f FocusPane) func(...string) string {
	if m.focused && m.focus == f {
		return m.styles.Panel.Focused.Width(m.width).Render
	}
	return m.styles.Panel.Frame.Width(m.width).Render
}

func (m *Model) renderEditor() string {
	panel, form := m.styles.Panel, m.styles.Form

	save := form.Button.Render("Save Entry") + panel.Muted.Render(" ctrl+s")
	if m.ws.Saving() {
		save = form.Busy.Render("Saving...")
	}
	gen := form.Button.Render("Generate Journaling Prompt") + panel.Muted.Render(" ctrl+g")
	if m.ws.Prompt().IsLoading() {
		gen = form.Busy.Render("Generating Prompt...")
	}

	lines := []string{
		panel.Title.Render("Your Daily Journal"),
		m.editor.View(),
		save + "  " + gen,
	}
	if text := m.ws.PromptText(); text != "" {
		inner := max(10, m.width-panel.Frame.GetHorizontalFrameSize())
		style := panel.Accent
		if m.ws.Prompt().IsFailed() {
			style = panel.Error
		}
		lines = append(lines, "", panel.Title.Render("Suggested Prompt:"), style.Render(uiutil.Wrap(text, inner)))
	}
	return m.frame(FocusEditor)(strings.Join(lines, "\n"))
}

func (m *Model) renderEntries(height int) string {
	panel := m.styles.Panel
	inner := max(10, m.width-panel.Frame.GetHorizontalFrameSize())
	rows := max(1, height-panel.Frame.GetVerticalFrameSize()-1)

	title := panel.Title.Render("Past Entries")
	if n := len(m.ws.EntryList()); n > 0 {
		title += panel.Muted.Render(fmt.Sprintf("  %d/%d", m.selected+1, n))
	}

	var body string
	res := m.ws.Entries()
	switch {
	case res.IsFailed():
		body = panel.Error.Render(res.Reason())
	case !res.IsLoaded():
		body = panel.Muted.Render("Loading journal entries...")
	case len(m.ws.EntryList()) == 0:
		body = panel.Muted.Render("No journal entries yet. Start by writing one above!")
	default:
		body = m.renderCards(inner, rows)
	}
	return m.frame(FocusEntries)(uiutil.FitLines(title+"\n"+body, inner, rows+1))
}

// renderCards lays out entries from the scroll offset, moving the offset so
// the selected card is always fully visible.
func (m *Model) renderCards(width, rows int) string {
	entries := m.ws.EntryList()
	cards := make([]string, len(entries))
	for i, e := range entries {
		cards[i] = m.renderCard(e, i == m.selected, width)
	}
	height := func(s string) int { return strings.Count(s, "\n") + 2 }

	if m.selected < m.offset {
		m.offset = m.selected
	}
	for m.offset < m.selected {
		used := 0
		for i := m.offset; i <= m.selected; i++ {
			used += height(cards[i])
		}
		if used <= rows {
			break
		}
		m.offset++
	}
	m.offset = clamp(m.offset, 0, len(cards)-1)

	var out []string
	used := 0
	for i := m.offset; i < len(cards) && used < rows; i++ {
		out = append(out, cards[i], "")
		used += height(cards[i])
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderCard(e api.Entry, selected bool, width int) string {
	panel, form := m.styles.Panel, m.styles.Form

	marker := "  "
	if selected {
		marker = form.Focused.Render("> ")
	}
	head := marker + panel.Muted.Render(e.Date)
	if !e.Sentiment.Absent() {
		head += "  " + m.styles.Sentiment.Badge(e.Sentiment)
	}
	lines := []string{head, indent(uiutil.Wrap(e.Text, width-2))}

	insight := m.ws.Insight(e.ID)
	actions := []string{"[i] Get Insight"}
	if insight.Phase == app.Loading {
		actions[0] = "Generating Insight..."
	}
	if m.ws.CanRecalculate(e) {
		if m.ws.UpdatingSentiment(e.ID) {
			actions = append(actions, "Updating Sentiment...")
		} else {
			actions = append(actions, "[r] Recalculate Sentiment")
		}
	}
	if selected {
		lines = append(lines, indent(m.styles.Footer.Help.Render(strings.Join(actions, "   "))))
	}

	if insight.Phase != app.NotLoaded && insight.Text != "" {
		style := panel.Accent
		if insight.Phase == app.Failed {
			style = panel.Error
		}
		lines = append(lines, indent(panel.Title.Render("AI Insight:")), indent(style.Render(uiutil.Wrap(insight.Text, width-2))))
	}
	return strings.Join(lines, "\n")
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
