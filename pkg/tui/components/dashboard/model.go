// Package dashboard renders the sentiment dashboard: summary counts, the
// trend chart and the narrative period summary.
package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/mindease/pkg/api"
	"tableflip.dev/mindease/pkg/app"
	"tableflip.dev/mindease/pkg/tui/components/chart"
	"tableflip.dev/mindease/pkg/tui/components/form"
	"tableflip.dev/mindease/pkg/tui/components/panel"
	"tableflip.dev/mindease/pkg/tui/theme"
	"tableflip.dev/mindease/pkg/tui/ui"
	"tableflip.dev/mindease/pkg/tui/uiutil"
)

const (
	fieldStart = iota
	fieldEnd
)

// Model renders app.Dashboard.
type Model struct {
	dash   *app.Dashboard
	styles theme.Theme
	form   *form.Model

	summary panel.Model
	trends  panel.Model
	period  panel.Model

	// rendered caches the glamour output for one summary text and width.
	rendered struct {
		text  string
		width int
		out   string
	}

	width  int
	height int
}

// New returns a dashboard view bound to d.
func New(d *app.Dashboard, th theme.Theme) *Model {
	return &Model{
		dash:   d,
		styles: th,
		form: form.New(th.Form,
			form.NewField("Start Date:", "YYYY-MM-DD", false),
			form.NewField("End Date:", "YYYY-MM-DD", false),
		),
		summary: panel.New(th.Panel),
		trends:  panel.New(th.Panel),
		period:  panel.New(th.Panel),
	}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Focus implements ui.Focusable.
func (m *Model) Focus() tea.Cmd { return m.form.Focus() }

// Blur implements ui.Focusable.
func (m *Model) Blur() { m.form.Blur() }

// Sync copies the dashboard's date range into the inputs.
func (m *Model) Sync() {
	m.form.SetValue(fieldStart, m.dash.StartDate)
	m.form.SetValue(fieldEnd, m.dash.EndDate)
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
		m.dash.SetRange(m.form.Value(fieldStart), m.form.Value(fieldEnd))
		return m, m.dash.RequestPeriod()
	case "ctrl+r":
		return m, m.dash.Refresh()
	}
	if m.dash.Period().IsLoading() {
		return m, nil
	}
	cmd := m.form.Update(msg)
	m.dash.StartDate = m.form.Value(fieldStart)
	m.dash.EndDate = m.form.Value(fieldEnd)
	return m, cmd
}

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 30)
	m.height = height
	m.summary.SetWidth(m.width)
	m.trends.SetWidth(m.width)
	m.period.SetWidth(m.width)
	m.form.SetWidth(12)
}

// View implements ui.Component.
func (m *Model) View() string {
	var blocks []string
	if m.dash.Empty() {
		m.summary.SetContent("Your Sentiment Snapshot",
			m.styles.Panel.Muted.Render("No journal entries with sentiment data yet. Start journaling!"))
		v, _ := m.summary.View()
		blocks = append(blocks, v)
	} else {
		m.summary.SetContent("Your Sentiment Snapshot", m.summaryBody())
		m.trends.SetContent("Sentiment Trends Over Time", m.trendsBody())
		s, _ := m.summary.View()
		t, _ := m.trends.View()
		blocks = append(blocks, s, t)
	}
	m.period.SetContent("Narrative Summary for a Period", m.periodBody())
	p, _ := m.period.View()
	blocks = append(blocks, p)

	out := strings.Join(blocks, "\n")
	if m.height > 0 {
		out = uiutil.FitLines(out, m.width, m.height)
	}
	return out
}

func (m *Model) summaryBody() string {
	res := m.dash.Summary()
	muted := m.styles.Panel.Muted
	switch res.Phase() {
	case app.NotLoaded, app.Loading:
		return muted.Render("Loading sentiment summary...")
	case app.Failed:
		return m.styles.Panel.Error.Render(res.Reason())
	}
	if !m.dash.HasSummaryData() {
		return muted.Render("No sentiment data yet.")
	}
	sum, _ := res.Value()
	cells := make([]string, 0, 5)
	for _, s := range api.Sentiments() {
		style := lipgloss.NewStyle().Foreground(m.styles.Sentiment.Color(s)).Bold(true)
		cells = append(cells, style.Render(fmt.Sprintf("%d", sum.Count(s)))+" "+muted.Render(string(s)))
	}
	return strings.Join(cells, "   ") + "\n" + fmt.Sprintf("Total Entries: %d", sum.Total)
}

func (m *Model) trendsBody() string {
	res := m.dash.Trends()
	switch res.Phase() {
	case app.NotLoaded, app.Loading:
		return m.styles.Panel.Muted.Render("Loading sentiment trends...")
	case app.Failed:
		return m.styles.Panel.Error.Render(res.Reason())
	}
	if !m.dash.HasTrendData() {
		return m.styles.Panel.Muted.Render("No sufficient data for sentiment trends. Keep journaling!")
	}
	points, _ := res.Value()
	return chart.Render(points, m.trends.InnerWidth(), m.styles.Sentiment)
}

func (m *Model) periodBody() string {
	button := m.styles.Form.Button.Render("Generate Period Summary") + m.styles.Panel.Muted.Render(" enter")
	lines := []string{m.form.View(), "", button}

	res := m.dash.Period()
	switch res.Phase() {
	case app.Loading:
		lines[2] = m.styles.Form.Busy.Render("Generating Summary...")
	case app.Failed:
		lines = append(lines, "", m.styles.Panel.Error.Render(res.Reason()))
	case app.Loaded:
		p, _ := res.Value()
		lines = append(lines, "", m.styles.Panel.Title.Render("Summary:"), m.markdown(p.Summary))
	}
	lines = append(lines, "", m.styles.Footer.Help.Render("ctrl+r reload summary and trends"))
	return strings.Join(lines, "\n")
}

// markdown renders text with glamour, falling back to plain wrapping.
func (m *Model) markdown(text string) string {
	width := m.period.InnerWidth()
	if m.rendered.text == text && m.rendered.width == width && m.rendered.out != "" {
		return m.rendered.out
	}
	out := uiutil.Wrap(text, width)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-4, 10)),
	)
	if err == nil {
		if md, err := renderer.Render(text); err == nil {
			out = strings.Trim(md, "\n")
		}
	}
	m.rendered.text, m.rendered.width, m.rendered.out = text, width, out
	return out
}
