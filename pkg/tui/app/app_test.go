package teaui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/mindease/pkg/api"
	"tableflip.dev/mindease/pkg/app"
	"tableflip.dev/mindease/pkg/tui/components/modal"
	"tableflip.dev/mindease/pkg/tui/uiutil"
)

type stubBackend struct {
	mu    sync.Mutex
	calls map[string]int

	entries []api.Entry
}

func (s *stubBackend) hit(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[op]++
}

func (s *stubBackend) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *stubBackend) Health(context.Context) (api.Health, error) {
	s.hit("health")
	return api.Health{Status: "success", Message: "MindEase backend is running!", DatabaseStatus: "connected"}, nil
}

func (s *stubBackend) Register(context.Context, api.Credentials) (string, error) {
	s.hit("register")
	return "User registered successfully!", nil
}

func (s *stubBackend) Login(_ context.Context, c api.Credentials) (api.LoginResult, error) {
	s.hit("login")
	return api.LoginResult{Username: c.Username, Message: "Login successful!"}, nil
}

func (s *stubBackend) ChangePassword(context.Context, string, string, string) (string, error) {
	s.hit("passwd")
	return "Password updated successfully!", nil
}

func (s *stubBackend) ListEntries(context.Context, string) ([]api.Entry, error) {
	s.hit("list")
	return s.entries, nil
}

func (s *stubBackend) CreateEntry(_ context.Context, _ string, text string) (api.Entry, error) {
	s.hit("create")
	return api.Entry{ID: "7", Date: "2024-01-01", Text: text, Sentiment: api.SentimentUnknown}, nil
}

func (s *stubBackend) Insight(context.Context, string) (string, error) {
	s.hit("insight")
	return "You sound rested.", nil
}

func (s *stubBackend) UpdateSentiment(context.Context, string, api.EntryID, string) (api.Sentiment, error) {
	s.hit("sentiment")
	return api.SentimentPositive, nil
}

func (s *stubBackend) GeneratePrompt(context.Context, string) (string, error) {
	s.hit("prompt")
	return "What made you smile?", nil
}

func (s *stubBackend) SentimentSummary(context.Context, string) (api.SentimentSummary, error) {
	s.hit("summary")
	return api.SentimentSummary{Positive: 1, Total: 1}, nil
}

func (s *stubBackend) SentimentTrends(context.Context, string) ([]api.TrendPoint, error) {
	s.hit("trends")
	return []api.TrendPoint{{Date: "2024-01-01", Positive: 1}}, nil
}

func (s *stubBackend) PeriodSummary(_ context.Context, _, start, end string) (api.PeriodSummary, error) {
	s.hit("period")
	return api.PeriodSummary{Start: start, End: end, Summary: "A calm week.", EntryCount: 1, HasCount: true}, nil
}

var ctrl = func(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl} }

// run executes cmd, giving up on commands that wait, such as cursor blinks.
func run(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(100 * time.Millisecond):
		return nil, false
	}
}

func relevant(msg tea.Msg) bool {
	switch msg.(type) {
	case app.HealthMsg, app.AuthResultMsg, app.EntriesLoadedMsg, app.EntrySavedMsg,
		app.InsightMsg, app.SentimentMsg, app.PromptMsg, app.SummaryLoadedMsg,
		app.TrendsLoadedMsg, app.PeriodSummaryMsg, app.PasswordChangedMsg, modal.DismissedMsg:
		return true
	}
	return false
}

func drainCommands(t *testing.T, m *Model, cmds ...tea.Cmd) {
	t.Helper()
	queue := append([]tea.Cmd(nil), cmds...)
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 500 {
			t.Fatalf("command queue did not settle")
		}
		cmd := queue[0]
		queue = queue[1:]
		if cmd == nil {
			continue
		}
		msg, ok := run(cmd)
		if !ok {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if !relevant(msg) {
			continue
		}
		_, next := m.Update(msg)
		queue = append(queue, next)
	}
}

func press(t *testing.T, m *Model, k tea.KeyPressMsg) {
	t.Helper()
	_, cmd := m.Update(k)
	drainCommands(t, m, cmd)
}

func screen(m *Model) string {
	v, _ := m.View()
	return uiutil.StripANSI(v)
}

func newModel(t *testing.T, backend *stubBackend, opts Options) *Model {
	t.Helper()
	opts.Backend = backend
	m := New(context.Background(), opts)
	m.Update(tea.WindowSizeMsg{Width: 110, Height: 48})
	drainCommands(t, m, m.Init())
	return m
}

func loginAs(t *testing.T, m *Model, user string) {
	t.Helper()
	m.ws.Gate.Username = user
	m.ws.Gate.Password = "pw123"
	press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !m.ws.HasSession() {
		t.Fatalf("expected session after login")
	}
}

func TestHeaderShowsBackendStatus(t *testing.T) {
	m := newModel(t, &stubBackend{}, Options{})
	view := screen(m)
	if !strings.Contains(view, "Backend: success") || !strings.Contains(view, "Database: connected") {
		t.Fatalf("expected backend status in header, got:\n%s", view)
	}
	if !strings.Contains(view, "Username:") {
		t.Fatalf("expected login form without a session")
	}
}

func TestLoginRendersJournal(t *testing.T) {
	backend := &stubBackend{entries: []api.Entry{{ID: "1", Date: "2024-01-01 09:00:00", Text: "A quiet walk.", Sentiment: api.SentimentPositive}}}
	var remembered string
	m := newModel(t, backend, Options{OnLogin: func(u string) { remembered = u }})

	loginAs(t, m, "alice")

	if remembered != "alice" {
		t.Fatalf("expected OnLogin(alice), got %q", remembered)
	}
	if got := backend.count("list"); got != 1 {
		t.Fatalf("expected one entry fetch, got %d", got)
	}
	view := screen(m)
	for _, want := range []string{"Logged in as: alice", "Past Entries", "A quiet walk.", "Positive"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestUsernamePrefill(t *testing.T) {
	m := newModel(t, &stubBackend{}, Options{Username: "  bob "})
	if m.ws.Gate.Username != "bob" {
		t.Fatalf("expected prefilled username, got %q", m.ws.Gate.Username)
	}
}

func TestSaveFromEditor(t *testing.T) {
	backend := &stubBackend{}
	m := newModel(t, backend, Options{})
	loginAs(t, m, "alice")

	m.ws.SetDraft("today was fine")
	press(t, m, ctrl('s'))

	entries := m.ws.EntryList()
	if len(entries) != 1 || entries[0].ID != "7" {
		t.Fatalf("expected saved entry at the top, got %+v", entries)
	}
	view := screen(m)
	if !strings.Contains(view, "Journal entry saved successfully!") {
		t.Fatalf("expected success notice, got:\n%s", view)
	}
	if m.ws.Draft() != "" {
		t.Fatalf("expected draft cleared, got %q", m.ws.Draft())
	}

	// the notice captures keys until dismissed
	press(t, m, tea.KeyPressMsg{Code: tea.KeyF2})
	if m.ws.View() != app.ViewJournal {
		t.Fatalf("view changed while a notice was open")
	}
	press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if strings.Contains(screen(m), "Journal entry saved successfully!") {
		t.Fatalf("expected notice dismissed")
	}
}

func TestEntryListActions(t *testing.T) {
	backend := &stubBackend{entries: []api.Entry{{ID: "1", Date: "2024-01-01", Text: "hmm", Sentiment: api.SentimentUnknown}}}
	m := newModel(t, backend, Options{})
	loginAs(t, m, "alice")

	press(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	press(t, m, tea.KeyPressMsg{Code: 'i', Text: "i"})
	if !strings.Contains(screen(m), "You sound rested.") {
		t.Fatalf("expected insight in view, got:\n%s", screen(m))
	}

	press(t, m, tea.KeyPressMsg{Code: 'r', Text: "r"})
	if got := m.ws.EntryList()[0].Sentiment; got != api.SentimentPositive {
		t.Fatalf("expected recalculated sentiment, got %q", got)
	}
	if got := backend.count("sentiment"); got != 1 {
		t.Fatalf("expected one recalculation, got %d", got)
	}
	press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	// known sentiments no longer offer recalculation
	press(t, m, tea.KeyPressMsg{Code: 'r', Text: "r"})
	if got := backend.count("sentiment"); got != 1 {
		t.Fatalf("expected no further recalculation, got %d", got)
	}
}

func TestDashboardLoadsOncePerIdentity(t *testing.T) {
	backend := &stubBackend{}
	m := newModel(t, backend, Options{})
	loginAs(t, m, "alice")

	press(t, m, tea.KeyPressMsg{Code: tea.KeyF2})
	press(t, m, tea.KeyPressMsg{Code: tea.KeyF1})
	press(t, m, tea.KeyPressMsg{Code: tea.KeyF2})

	if backend.count("summary") != 1 || backend.count("trends") != 1 {
		t.Fatalf("expected one load, got summary=%d trends=%d", backend.count("summary"), backend.count("trends"))
	}
	view := screen(m)
	for _, want := range []string{"Your Sentiment Snapshot", "Total Entries: 1", "Sentiment Trends Over Time"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}

	press(t, m, ctrl('r'))
	if backend.count("summary") != 2 {
		t.Fatalf("expected reload on ctrl+r, got %d", backend.count("summary"))
	}
}

func TestPeriodSummaryFromDashboard(t *testing.T) {
	backend := &stubBackend{}
	m := newModel(t, backend, Options{})
	loginAs(t, m, "alice")
	press(t, m, tea.KeyPressMsg{Code: tea.KeyF2})

	m.ws.Dashboard.SetRange("2024-01-01", "2024-01-07")
	m.sync()
	press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if backend.count("period") != 1 {
		t.Fatalf("expected period request, got %d", backend.count("period"))
	}
	if !strings.Contains(screen(m), "Generated summary for 1 entries.") {
		t.Fatalf("expected summary notice, got:\n%s", screen(m))
	}
}

func TestLogoutReturnsToGate(t *testing.T) {
	loggedOut := false
	m := newModel(t, &stubBackend{}, Options{OnLogout: func() { loggedOut = true }})
	loginAs(t, m, "alice")

	press(t, m, ctrl('l'))

	if m.ws.HasSession() || !loggedOut {
		t.Fatalf("expected logout, session=%t hook=%t", m.ws.HasSession(), loggedOut)
	}
	view := screen(m)
	if !strings.Contains(view, "You have been successfully logged out.") {
		t.Fatalf("expected logout notice, got:\n%s", view)
	}
	press(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if !strings.Contains(screen(m), "Username:") {
		t.Fatalf("expected login form after dismissing")
	}
}

func TestDebugLogRecordsMessages(t *testing.T) {
	m := newModel(t, &stubBackend{}, Options{})
	press(t, m, ctrl('e'))
	if m.eventViewer == nil {
		t.Fatalf("expected event viewer")
	}
	before := m.eventViewer.Len()
	loginAs(t, m, "alice")
	if m.eventViewer.Len() <= before {
		t.Fatalf("expected events recorded")
	}
	if !strings.Contains(screen(m), "Events") {
		t.Fatalf("expected event log in view")
	}
	press(t, m, ctrl('e'))
	if m.eventViewer != nil {
		t.Fatalf("expected event viewer hidden")
	}
}

func TestHelpToggle(t *testing.T) {
	m := newModel(t, &stubBackend{}, Options{})
	press(t, m, tea.KeyPressMsg{Code: tea.KeyF4})
	if !m.helpVisible || !strings.Contains(screen(m), "MindEase") {
		t.Fatalf("expected help overlay, got:\n%s", screen(m))
	}
	press(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.helpVisible {
		t.Fatalf("expected help closed")
	}
}
