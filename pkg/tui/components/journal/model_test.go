package journal

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/mindease/pkg/api"
	"tableflip.dev/mindease/pkg/app"
	"tableflip.dev/mindease/pkg/tui/theme"
	"tableflip.dev/mindease/pkg/tui/uiutil"
)

// entriesBackend serves a fixed entry list. Other calls are not expected.
type entriesBackend struct {
	app.Backend
	entries []api.Entry
}

func (b entriesBackend) ListEntries(context.Context, string) ([]api.Entry, error) {
	return b.entries, nil
}

func (b entriesBackend) CreateEntry(_ context.Context, _, text string) (api.Entry, error) {
	return api.Entry{ID: "9", Date: "2024-01-03", Text: text, Sentiment: api.SentimentNeutral}, nil
}

func (b entriesBackend) UpdateSentiment(context.Context, string, api.EntryID, string) (api.Sentiment, error) {
	return api.SentimentMixed, nil
}

func newJournal(t *testing.T, entries ...api.Entry) (*Model, *app.Workspace) {
	t.Helper()
	ws := app.NewWorkspace(context.Background(), entriesBackend{entries: entries}, nil)
	ws.Apply(ws.Login("alice")())
	m := New(ws, theme.Default())
	m.SetSize(80, 40)
	m.Sync()
	m.Focus()
	return m, ws
}

func key(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

func TestEmptyList(t *testing.T) {
	m, _ := newJournal(t)
	view := uiutil.StripANSI(m.View())
	if !strings.Contains(view, "No journal entries yet. Start by writing one above!") {
		t.Fatalf("expected empty state, got:\n%s", view)
	}
	if !strings.Contains(view, "Your Daily Journal") {
		t.Fatalf("expected editor panel")
	}
}

func TestListNavigation(t *testing.T) {
	m, _ := newJournal(t,
		api.Entry{ID: "3", Date: "2024-01-03", Text: "third", Sentiment: api.SentimentPositive},
		api.Entry{ID: "2", Date: "2024-01-02", Text: "second", Sentiment: api.SentimentUnknown},
		api.Entry{ID: "1", Date: "2024-01-01", Text: "first"},
	)
	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if m.FocusedPane() != FocusEntries {
		t.Fatalf("expected entries pane")
	}

	m.Update(key("j"))
	if e, _ := m.Selected(); e.ID != "2" {
		t.Fatalf("expected second entry, got %q", e.ID)
	}
	m.Update(key("G"))
	if e, _ := m.Selected(); e.ID != "1" {
		t.Fatalf("expected last entry, got %q", e.ID)
	}
	m.Update(key("j"))
	if e, _ := m.Selected(); e.ID != "1" {
		t.Fatalf("selection moved past the end")
	}
	m.Update(key("g"))
	if e, _ := m.Selected(); e.ID != "3" {
		t.Fatalf("expected first entry, got %q", e.ID)
	}
}

func TestRecalculateHintOnlyForUnknown(t *testing.T) {
	m, _ := newJournal(t,
		api.Entry{ID: "2", Date: "2024-01-02", Text: "known", Sentiment: api.SentimentPositive},
		api.Entry{ID: "1", Date: "2024-01-01", Text: "unclear", Sentiment: api.SentimentUnknown},
	)
	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})

	view := uiutil.StripANSI(m.View())
	if !strings.Contains(view, "[i] Get Insight") || strings.Contains(view, "[r] Recalculate Sentiment") {
		t.Fatalf("unexpected actions for a known sentiment:\n%s", view)
	}
	if _, cmd := m.Update(key("r")); cmd != nil {
		t.Fatalf("expected no recalculation for a known sentiment")
	}

	m.Update(key("j"))
	view = uiutil.StripANSI(m.View())
	if !strings.Contains(view, "[r] Recalculate Sentiment") {
		t.Fatalf("expected recalculation hint:\n%s", view)
	}
	_, cmd := m.Update(key("r"))
	if cmd == nil {
		t.Fatalf("expected recalculation command")
	}
	if !strings.Contains(uiutil.StripANSI(m.View()), "Updating Sentiment...") {
		t.Fatalf("expected in-flight label")
	}
}

func TestSelectionFollowsEntryAcrossSave(t *testing.T) {
	m, ws := newJournal(t,
		api.Entry{ID: "2", Date: "2024-01-02", Text: "two", Sentiment: api.SentimentNeutral},
		api.Entry{ID: "1", Date: "2024-01-01", Text: "one", Sentiment: api.SentimentNeutral},
	)
	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	m.Update(key("j"))

	ws.SetDraft("new")
	ws.Apply(ws.SaveEntry()())
	m.Sync()
	if got := ws.EntryList()[0].ID; got != "9" {
		t.Fatalf("expected saved entry first, got %q", got)
	}
	if e, _ := m.Selected(); e.ID != "1" {
		t.Fatalf("expected selection to stay on entry 1, got %q", e.ID)
	}
}

func TestAbsentSentimentHasNoBadge(t *testing.T) {
	m, _ := newJournal(t, api.Entry{ID: "1", Date: "2024-01-01", Text: "plain"})
	view := uiutil.StripANSI(m.View())
	for _, badge := range []string{"Unknown", "Positive", "Neutral"} {
		if strings.Contains(view, badge) {
			t.Fatalf("unexpected badge %q:\n%s", badge, view)
		}
	}
}
