// Package teaui hosts the Bubble Tea program for the MindEase terminal UI.
package teaui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/mindease/pkg/app"
	"tableflip.dev/mindease/pkg/tui/components/dashboard"
	"tableflip.dev/mindease/pkg/tui/components/eventviewer"
	"tableflip.dev/mindease/pkg/tui/components/help"
	"tableflip.dev/mindease/pkg/tui/components/journal"
	"tableflip.dev/mindease/pkg/tui/components/login"
	"tableflip.dev/mindease/pkg/tui/components/modal"
	"tableflip.dev/mindease/pkg/tui/components/settings"
	"tableflip.dev/mindease/pkg/tui/theme"
	"tableflip.dev/mindease/pkg/tui/ui"
	"tableflip.dev/mindease/pkg/tui/ui/overlay"
	"tableflip.dev/mindease/pkg/tui/uiutil"
)

const headerRows = 3

// Options configures the root model.
type Options struct {
	Backend app.Backend
	Logger  *zap.Logger
	// Username prefills the login form.
	Username string
	// OnLogin and OnLogout are called when the session starts and ends.
	OnLogin  func(username string)
	OnLogout func()
}

// Model composes the session gate, the three workspace views, the notice
// modal and an optional event log docked to the bottom.
type Model struct {
	ws     *app.Workspace
	styles theme.Theme
	log    *zap.Logger
	opts   Options

	login     *login.Model
	journal   *journal.Model
	dashboard *dashboard.Model
	settings  *settings.Model
	modal     *modal.Model

	help        *help.Model
	helpVisible bool

	debugEnabled bool
	eventViewer  *eventviewer.Model

	hadSession bool

	width  int
	height int
}

// New constructs a root model over a fresh workspace.
func New(ctx context.Context, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	th := theme.Default()
	ws := app.NewWorkspace(ctx, opts.Backend, opts.Logger)
	ws.Gate.Username = strings.TrimSpace(opts.Username)

	return &Model{
		ws:        ws,
		styles:    th,
		log:       opts.Logger,
		opts:      opts,
		login:     login.New(ws.Gate, th),
		journal:   journal.New(ws, th),
		dashboard: dashboard.New(ws.Dashboard, th),
		settings:  settings.New(ws.Settings, th),
		modal:     modal.New(th.Modal),
	}
}

// Run launches the Bubble Tea program until the user quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Workspace exposes the state the views render.
func (m *Model) Workspace() *app.Workspace { return m.ws }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return ui.Batch(m.ws.CheckHealth(), m.login.Init(), m.login.Focus())
}

// Update routes Bubble Tea messages to the state and the active view.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.noteEvent(msg)

	var cmds []tea.Cmd
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layoutContent()
		return m, nil
	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKey(v))
	case modal.DismissedMsg:
	default:
		cmds = append(cmds, m.ws.Apply(msg))
		_, cmd := m.active().Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.sync())
	return m, ui.Batch(cmds...)
}

func (m *Model) handleKey(k tea.KeyPressMsg) tea.Cmd {
	key := k.String()
	if key == "ctrl+c" {
		return tea.Quit
	}
	if m.modal.Open() {
		_, cmd := m.modal.Update(k)
		return cmd
	}

	switch key {
	case "ctrl+e":
		m.toggleDebug()
		return nil
	case "f4":
		m.toggleHelp()
		return nil
	case "pgup", "pgdown":
		if m.helpVisible {
			_, cmd := m.help.Update(k)
			return cmd
		}
		if m.eventViewer != nil {
			_, cmd := m.eventViewer.Update(k)
			return cmd
		}
	}
	if m.helpVisible && key == "esc" {
		m.toggleHelp()
		return nil
	}

	if !m.ws.HasSession() {
		_, cmd := m.login.Update(k)
		return cmd
	}

	switch key {
	case "f1":
		return m.switchView(app.ViewJournal)
	case "f2":
		return m.switchView(app.ViewDashboard)
	case "f3":
		return m.switchView(app.ViewSettings)
	case "ctrl+l":
		m.ws.Logout()
		return nil
	}
	_, cmd := m.active().Update(k)
	return cmd
}

// active returns the component that receives keys.
func (m *Model) active() ui.Component {
	if !m.ws.HasSession() {
		return m.login
	}
	switch m.ws.View() {
	case app.ViewDashboard:
		return m.dashboard
	case app.ViewSettings:
		return m.settings
	}
	return m.journal
}

func (m *Model) switchView(v app.View) tea.Cmd {
	if m.ws.View() == v {
		return nil
	}
	if f, ok := m.active().(ui.Focusable); ok {
		f.Blur()
	}
	cmd := m.ws.SetView(v)
	var focus tea.Cmd
	if f, ok := m.active().(ui.Focusable); ok {
		focus = f.Focus()
	}
	return ui.Batch(cmd, focus)
}

// sync pushes state back into the inputs and reacts to the session
// starting or ending.
func (m *Model) sync() tea.Cmd {
	m.login.Sync()
	m.journal.Sync()
	m.dashboard.Sync()
	m.settings.Sync()
	m.modal.Bind(m.ws.ActiveNotice())

	has := m.ws.HasSession()
	if has == m.hadSession {
		return nil
	}
	m.hadSession = has
	if has {
		identity, _ := m.ws.Identity()
		if m.opts.OnLogin != nil {
			m.opts.OnLogin(identity)
		}
		m.login.Blur()
		return m.journal.Focus()
	}
	if m.opts.OnLogout != nil {
		m.opts.OnLogout()
	}
	m.journal.Blur()
	m.dashboard.Blur()
	m.settings.Blur()
	return m.login.Focus()
}

// View renders the composed UI.
func (m *Model) View() (string, *tea.Cursor) {
	if m.width == 0 || m.height == 0 {
		return "initializing…", nil
	}

	bodyRows, debugRows := m.rows()
	parts := []string{m.renderHeader(), uiutil.FitLines(m.active().View(), m.width, bodyRows)}
	if debugRows > 0 && m.eventViewer != nil {
		parts = append(parts, m.eventViewer.View())
	}
	parts = append(parts, m.renderFooter())
	screen := strings.Join(parts, "\n")

	if m.helpVisible && m.help != nil {
		screen = overlay.Compose(screen, m.width, m.height, m.help.View(), overlay.Centered)
	}
	if m.modal.Open() {
		screen = overlay.Compose(screen, m.width, m.height, m.modal.View(), overlay.Centered)
	}
	return screen, nil
}

func (m *Model) renderHeader() string {
	h := m.styles.Header
	title := h.Title.Render("MindEase") + "  " + h.Subtitle.Render("Your AI-powered companion for mental well-being.")

	status := "Backend: " + h.Subtitle.Render("checking...")
	res := m.ws.Health()
	switch {
	case res.IsFailed():
		status = "Backend: " + h.Unhealthy.Render(res.Reason())
	case res.IsLoaded():
		health, _ := res.Value()
		backend := h.Unhealthy.Render(health.Status)
		if health.Status == "success" {
			backend = h.Healthy.Render(health.Status)
		}
		db := h.Unhealthy.Render(health.DatabaseStatus)
		if health.DatabaseStatus == "connected" {
			db = h.Healthy.Render(health.DatabaseStatus)
		}
		status = fmt.Sprintf("Backend: %s  Database: %s", backend, db)
	}
	if identity, ok := m.ws.Identity(); ok {
		status += "   Logged in as: " + h.Identity.Render(identity)
	}

	tabs := ""
	if m.ws.HasSession() {
		names := []struct {
			view  app.View
			label string
		}{
			{app.ViewJournal, "f1 Journal"},
			{app.ViewDashboard, "f2 Dashboard"},
			{app.ViewSettings, "f3 Settings"},
		}
		rendered := make([]string, 0, len(names))
		for _, n := range names {
			if m.ws.View() == n.view {
				rendered = append(rendered, h.TabActive.Render(n.label))
			} else {
				rendered = append(rendered, h.TabInactive.Render(n.label))
			}
		}
		tabs = strings.Join(rendered, " ")
	}
	return uiutil.FitLines(strings.Join([]string{title, status, tabs}, "\n"), m.width, headerRows)
}

func (m *Model) renderFooter() string {
	f := m.styles.Footer
	hint := func(key, label string) string { return f.Key.Render(key) + " " + f.Help.Render(label) }

	var hints []string
	switch {
	case m.modal.Open():
		hints = []string{hint("enter", "close")}
	case !m.ws.HasSession():
		hints = []string{hint("tab", "next field"), hint("enter", "submit"), hint("ctrl+r", "login/register")}
	default:
		switch m.ws.View() {
		case app.ViewJournal:
			hints = []string{hint("ctrl+s", "save"), hint("ctrl+g", "prompt"), hint("tab", "entries"), hint("i", "insight"), hint("r", "recalc")}
		case app.ViewDashboard:
			hints = []string{hint("enter", "summarize period"), hint("ctrl+r", "reload")}
		case app.ViewSettings:
			hints = []string{hint("enter", "change password")}
		}
		hints = append(hints, hint("ctrl+l", "logout"))
	}
	hints = append(hints, hint("f4", "help"), hint("ctrl+c", "quit"))
	return uiutil.Clip(strings.Join(hints, "  "), m.width)
}

func (m *Model) rows() (body, debug int) {
	total := max(1, m.height-headerRows-1)
	if m.debugEnabled && m.eventViewer != nil {
		debug = computeDebugHeight(total)
	}
	return max(1, total-debug), debug
}

func (m *Model) layoutContent() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	body, debug := m.rows()
	m.login.SetSize(m.width, body)
	m.journal.SetSize(m.width, body)
	m.dashboard.SetSize(m.width, body)
	m.settings.SetSize(m.width, body)
	m.modal.SetSize(m.width, m.height)
	if m.eventViewer != nil && debug > 0 {
		m.eventViewer.SetSize(m.width, debug)
	}
	if m.help != nil {
		m.help.SetSize(m.width*3/4, m.height*3/4)
	}
}

func (m *Model) toggleHelp() {
	m.helpVisible = !m.helpVisible
	if m.helpVisible && m.help == nil {
		m.help = help.New(m.width*3/4, m.height*3/4)
	}
}

func (m *Model) toggleDebug() {
	if m.debugEnabled {
		m.debugEnabled = false
		m.eventViewer = nil
		m.layoutContent()
		return
	}
	m.debugEnabled = true
	m.eventViewer = eventviewer.NewModel(400, m.styles.Events)
	m.eventViewer.Append(eventviewer.Entry{Kind: "debug", Detail: "event log enabled", Source: "ui"})
	m.layoutContent()
}

func (m *Model) noteEvent(msg tea.Msg) {
	if m.eventViewer == nil {
		return
	}
	m.eventViewer.Record(eventSource(msg), msg)
}

func eventSource(msg tea.Msg) string {
	switch msg.(type) {
	case tea.KeyPressMsg, tea.WindowSizeMsg:
		return "tea"
	case modal.DismissedMsg:
		return "modal"
	case app.AuthResultMsg:
		return "gate"
	case app.SummaryLoadedMsg, app.TrendsLoadedMsg, app.PeriodSummaryMsg:
		return "dashboard"
	case app.PasswordChangedMsg:
		return "settings"
	case app.HealthMsg, app.EntriesLoadedMsg, app.EntrySavedMsg, app.InsightMsg, app.SentimentMsg, app.PromptMsg:
		return "workspace"
	}
	return "tea"
}

func computeDebugHeight(totalRows int) int {
	if totalRows <= 8 {
		return 0
	}
	return min(12, max(5, totalRows/3))
}
