package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/mindease/pkg/api"
)

// View selects which screen the workspace shows once a session exists.
type View int

const (
	ViewJournal View = iota
	ViewDashboard
	ViewSettings
)

func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewSettings:
		return "settings"
	}
	return "journal"
}

const (
	insightPlaceholder = "Generating insight..."
	promptPlaceholder  = "Generating a prompt..."
)

// Workspace is the composition root of the client. It owns the session
// identity, the entry list and the per-entry async state, and hands the
// identity down to the dashboard and settings panel.
type Workspace struct {
	ctx     context.Context
	backend Backend
	log     *zap.Logger

	Gate      *Gate
	Dashboard *Dashboard
	Settings  *Settings
	Notice    NoticeSlot

	identity   string
	generation uint64

	health    Resource[api.Health]
	entries   Resource[[]api.Entry]
	insights  Keyed
	sentiment Keyed
	prompt    Resource[string]
	draft     string
	saving    bool
	view      View
}

// NewWorkspace returns a workspace without a session.
func NewWorkspace(ctx context.Context, backend Backend, log *zap.Logger) *Workspace {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Workspace{
		ctx:       ctx,
		backend:   backend,
		log:       log,
		Gate:      NewGate(ctx, backend),
		Dashboard: NewDashboard(ctx, backend),
		Settings:  NewSettings(ctx, backend),
	}
}

// Identity returns the session identity; ok is false without a session.
func (w *Workspace) Identity() (string, bool) {
	return w.identity, w.identity != ""
}

// HasSession reports whether a user is logged in.
func (w *Workspace) HasSession() bool { return w.identity != "" }

// Health returns the backend status check.
func (w *Workspace) Health() Resource[api.Health] { return w.health }

// CheckHealth asks the backend for its status.
func (w *Workspace) CheckHealth() tea.Cmd {
	w.health = Pending[api.Health]()
	ctx, backend := w.ctx, w.backend
	return func() tea.Msg {
		h, err := backend.Health(ctx)
		return HealthMsg{Health: h, Err: err}
	}
}

// Login establishes identity and requests its entries.
func (w *Workspace) Login(identity string) tea.Cmd {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil
	}
	w.generation++
	w.identity = identity
	w.entries = Pending[[]api.Entry]()
	w.insights.Reset()
	w.sentiment.Reset()
	w.prompt = Resource[string]{}
	w.draft = ""
	w.saving = false
	w.view = ViewJournal
	w.Dashboard.SetIdentity(identity)
	w.Settings.SetIdentity(identity)
	w.log.Info("session established", zap.String("user", identity))

	ctx, backend, gen := w.ctx, w.backend, w.generation
	return func() tea.Msg {
		entries, err := backend.ListEntries(ctx, identity)
		return EntriesLoadedMsg{Generation: gen, Entries: entries, Err: err}
	}
}

// Logout drops the session and all state derived from it. Responses still
// in flight for the old identity are ignored when they arrive.
func (w *Workspace) Logout() {
	if w.identity != "" {
		w.log.Info("session closed", zap.String("user", w.identity))
	}
	w.generation++
	w.identity = ""
	w.entries = Resource[[]api.Entry]{}
	w.insights.Reset()
	w.sentiment.Reset()
	w.prompt = Resource[string]{}
	w.draft = ""
	w.saving = false
	w.view = ViewJournal
	w.Gate.Reset()
	w.Dashboard.SetIdentity("")
	w.Settings.SetIdentity("")
	w.Notice.Show("Logged Out", "You have been successfully logged out.", NoticeInfo)
}

// Entries returns the entry list resource.
func (w *Workspace) Entries() Resource[[]api.Entry] { return w.entries }

// EntryList returns the loaded entries, newest first, or nil.
func (w *Workspace) EntryList() []api.Entry {
	entries, _ := w.entries.Value()
	return entries
}

// Draft returns the text of the entry being written.
func (w *Workspace) Draft() string { return w.draft }

// SetDraft replaces the draft text.
func (w *Workspace) SetDraft(text string) { w.draft = text }

// Saving reports whether a save is in flight.
func (w *Workspace) Saving() bool { return w.saving }

// SaveEntry sends the trimmed draft to the backend. Whitespace-only drafts
// are ignored; without a session a notice is raised instead.
func (w *Workspace) SaveEntry() tea.Cmd {
	if !w.HasSession() {
		w.Notice.Show("Login Required", "Please log in to save journal entries.", NoticeInfo)
		return nil
	}
	text := strings.TrimSpace(w.draft)
	if text == "" || w.saving {
		return nil
	}
	w.saving = true

	ctx, backend, gen, identity := w.ctx, w.backend, w.generation, w.identity
	return func() tea.Msg {
		e, err := backend.CreateEntry(ctx, identity, text)
		return EntrySavedMsg{Generation: gen, Entry: e, Err: err}
	}
}

// Insight returns the insight state for an entry.
func (w *Workspace) Insight(id api.EntryID) Status { return w.insights.Get(id.String()) }

// UpdatingSentiment reports whether a recalculation is in flight for id.
func (w *Workspace) UpdatingSentiment(id api.EntryID) bool { return w.sentiment.Loading(id.String()) }

// GetInsight asks for an insight on one entry. A placeholder is shown right
// away; a second call while the first is in flight does nothing.
func (w *Workspace) GetInsight(id api.EntryID, text string) tea.Cmd {
	seq, ok := w.insights.Begin(id.String(), insightPlaceholder)
	if !ok {
		return nil
	}
	ctx, backend, gen := w.ctx, w.backend, w.generation
	return func() tea.Msg {
		insight, err := backend.Insight(ctx, text)
		return InsightMsg{Generation: gen, ID: id, Seq: seq, Insight: insight, Err: err}
	}
}

// CanRecalculate reports whether the recalculate action applies to e.
func (w *Workspace) CanRecalculate(e api.Entry) bool {
	return e.Sentiment == api.SentimentUnknown
}

// RecalculateSentiment asks the backend to classify an entry again. It only
// applies to entries whose sentiment is unknown.
func (w *Workspace) RecalculateSentiment(id api.EntryID, text string) tea.Cmd {
	if !w.HasSession() {
		w.Notice.Show("Login Required", "Please log in to update sentiment.", NoticeInfo)
		return nil
	}
	e, found := w.entry(id)
	if !found || !w.CanRecalculate(e) {
		return nil
	}
	seq, ok := w.sentiment.Begin(id.String(), "")
	if !ok {
		return nil
	}
	ctx, backend, gen, identity := w.ctx, w.backend, w.generation, w.identity
	return func() tea.Msg {
		s, err := backend.UpdateSentiment(ctx, identity, id, text)
		return SentimentMsg{Generation: gen, ID: id, Seq: seq, Sentiment: s, Err: err}
	}
}

// Prompt returns the generated journaling prompt resource.
func (w *Workspace) Prompt() Resource[string] { return w.prompt }

// PromptText is what the prompt area shows: a placeholder while loading,
// the prompt once loaded, the failure text otherwise.
func (w *Workspace) PromptText() string {
	switch w.prompt.Phase() {
	case Loading:
		return promptPlaceholder
	case Failed:
		return w.prompt.Reason()
	}
	p, _ := w.prompt.Value()
	return p
}

// GeneratePrompt asks the backend for a journaling prompt.
func (w *Workspace) GeneratePrompt() tea.Cmd {
	if !w.HasSession() {
		w.Notice.Show("Login Required", "Please log in to generate journaling prompts.", NoticeInfo)
		return nil
	}
	if w.prompt.IsLoading() {
		return nil
	}
	w.prompt = Pending[string]()
	ctx, backend, gen, identity := w.ctx, w.backend, w.generation, w.identity
	return func() tea.Msg {
		p, err := backend.GeneratePrompt(ctx, identity)
		return PromptMsg{Generation: gen, Prompt: p, Err: err}
	}
}

// View returns the active view.
func (w *Workspace) View() View { return w.view }

// SetView switches views. Opening the dashboard loads its data the first
// time for the current identity.
func (w *Workspace) SetView(v View) tea.Cmd {
	if !w.HasSession() {
		return nil
	}
	w.view = v
	if v == ViewDashboard {
		return w.Dashboard.Load()
	}
	return nil
}

// ActiveNotice returns the notice slot that should be shown, or nil.
func (w *Workspace) ActiveNotice() *NoticeSlot {
	if w.Notice.IsOpen() {
		return &w.Notice
	}
	if !w.HasSession() {
		return nil
	}
	switch w.view {
	case ViewDashboard:
		if w.Dashboard.Notice.IsOpen() {
			return &w.Dashboard.Notice
		}
	case ViewSettings:
		if w.Settings.Notice.IsOpen() {
			return &w.Settings.Notice
		}
	}
	return nil
}

// Apply folds a result message into state and returns any follow-up
// command.
func (w *Workspace) Apply(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case HealthMsg:
		w.applyHealth(m)
	case AuthResultMsg:
		if identity, ok := w.Gate.Apply(m); ok {
			return w.Login(identity)
		}
	case EntriesLoadedMsg:
		w.applyEntries(m)
	case EntrySavedMsg:
		w.applySaved(m)
	case InsightMsg:
		w.applyInsight(m)
	case SentimentMsg:
		w.applySentiment(m)
	case PromptMsg:
		w.applyPrompt(m)
	case SummaryLoadedMsg, TrendsLoadedMsg, PeriodSummaryMsg:
		w.Dashboard.Apply(msg)
	case PasswordChangedMsg:
		w.Settings.Apply(m)
	}
	return nil
}

func (w *Workspace) stale(gen uint64, kind string) bool {
	if gen == w.generation {
		return false
	}
	w.log.Debug("dropping stale response", zap.String("kind", kind), zap.Uint64("generation", gen))
	return true
}

func (w *Workspace) applyHealth(m HealthMsg) {
	if m.Err != nil {
		w.log.Warn("backend health check failed", zap.Error(m.Err))
		w.health = Failure[api.Health]("Could not connect to backend API.")
		return
	}
	w.health = Ready(m.Health)
}

func (w *Workspace) applyEntries(m EntriesLoadedMsg) {
	if w.stale(m.Generation, "entries") {
		return
	}
	if m.Err != nil {
		w.log.Warn("loading entries failed", zap.Error(m.Err))
		w.entries = Failure[[]api.Entry]("Failed to load journal entries.")
		return
	}
	w.entries = Ready(m.Entries)
}

func (w *Workspace) applySaved(m EntrySavedMsg) {
	if w.stale(m.Generation, "save") {
		return
	}
	w.saving = false
	if m.Err != nil {
		w.log.Warn("saving entry failed", zap.Error(m.Err))
		w.Notice.Show("Error Saving Entry",
			fmt.Sprintf("Failed to save journal entry: %s. Please try again.", api.Describe(m.Err)),
			NoticeError)
		return
	}
	current, _ := w.entries.Value()
	next := make([]api.Entry, 0, len(current)+1)
	next = append(next, m.Entry)
	next = append(next, current...)
	w.entries = Ready(next)
	w.draft = ""
	w.prompt = Resource[string]{}
	w.Notice.Show("Success", "Journal entry saved successfully!", NoticeSuccess)
}

func (w *Workspace) applyInsight(m InsightMsg) {
	if w.stale(m.Generation, "insight") {
		return
	}
	key := m.ID.String()
	switch {
	case errors.Is(m.Err, api.ErrMalformed):
		w.insights.Finish(key, m.Seq, Failed, "No insight available.")
	case m.Err != nil:
		w.insights.Finish(key, m.Seq, Failed, "Failed to generate insight: "+api.Describe(m.Err))
	default:
		w.insights.Finish(key, m.Seq, Loaded, m.Insight)
	}
}

func (w *Workspace) applySentiment(m SentimentMsg) {
	if w.stale(m.Generation, "sentiment") {
		return
	}
	if !w.sentiment.Clear(m.ID.String(), m.Seq) {
		return
	}
	switch {
	case errors.Is(m.Err, api.ErrMalformed):
		w.Notice.Show("Sentiment Update Failed", "Failed to update sentiment: No new sentiment received.", NoticeError)
		return
	case m.Err != nil:
		w.log.Warn("updating sentiment failed", zap.String("id", m.ID.String()), zap.Error(m.Err))
		w.Notice.Show("Sentiment Update Error",
			fmt.Sprintf("Failed to update sentiment: %s. Please try again.", api.Describe(m.Err)),
			NoticeError)
		return
	}
	current, ok := w.entries.Value()
	if !ok {
		return
	}
	next := make([]api.Entry, len(current))
	copy(next, current)
	for i := range next {
		if next[i].ID == m.ID {
			next[i].Sentiment = m.Sentiment
		}
	}
	w.entries = Ready(next)
	w.Notice.Show("Sentiment Updated", "Sentiment for entry updated successfully!", NoticeSuccess)
}

func (w *Workspace) applyPrompt(m PromptMsg) {
	if w.stale(m.Generation, "prompt") {
		return
	}
	switch {
	case errors.Is(m.Err, api.ErrMalformed):
		w.prompt = Failure[string]("Could not generate a prompt. Please try again.")
	case m.Err != nil:
		w.prompt = Failure[string]("Failed to generate prompt: " + api.Describe(m.Err))
	default:
		w.prompt = Ready(m.Prompt)
	}
}

func (w *Workspace) entry(id api.EntryID) (api.Entry, bool) {
	for _, e := range w.EntryList() {
		if e.ID == id {
			return e, true
		}
	}
	return api.Entry{}, false
}
