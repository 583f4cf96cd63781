package app

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/mindease/pkg/api"
)

type call struct {
	Op   string
	Args []string
}

// fakeBackend records every call and answers from its fields.
type fakeBackend struct {
	mu    sync.Mutex
	calls []call

	health    api.Health
	loginErr  error
	regMsg    string
	regErr    error
	entries   []api.Entry
	listErr   error
	created   api.Entry
	createErr error
	insight   string
	insightEr error
	sentiment api.Sentiment
	sentErr   error
	prompt    string
	promptErr error
	summary   api.SentimentSummary
	sumErr    error
	trends    []api.TrendPoint
	trendErr  error
	period    api.PeriodSummary
	periodErr error
	pwMsg     string
	pwErr     error
}

func (f *fakeBackend) record(op string, args ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{Op: op, Args: args})
}

func (f *fakeBackend) Calls(op string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if op == "" || c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeBackend) Health(context.Context) (api.Health, error) {
	f.record("health")
	return f.health, nil
}

func (f *fakeBackend) Register(_ context.Context, creds api.Credentials) (string, error) {
	f.record("register", creds.Username, creds.Password)
	return f.regMsg, f.regErr
}

func (f *fakeBackend) Login(_ context.Context, creds api.Credentials) (api.LoginResult, error) {
	f.record("login", creds.Username, creds.Password)
	if f.loginErr != nil {
		return api.LoginResult{}, f.loginErr
	}
	return api.LoginResult{Username: creds.Username, Message: "Login successful"}, nil
}

func (f *fakeBackend) ChangePassword(_ context.Context, username, oldPassword, newPassword string) (string, error) {
	f.record("passwd", username, oldPassword, newPassword)
	return f.pwMsg, f.pwErr
}

func (f *fakeBackend) ListEntries(_ context.Context, username string) ([]api.Entry, error) {
	f.record("list", username)
	return f.entries, f.listErr
}

func (f *fakeBackend) CreateEntry(_ context.Context, username, text string) (api.Entry, error) {
	f.record("create", username, text)
	return f.created, f.createErr
}

func (f *fakeBackend) Insight(_ context.Context, text string) (string, error) {
	f.record("insight", text)
	return f.insight, f.insightEr
}

func (f *fakeBackend) UpdateSentiment(_ context.Context, username string, id api.EntryID, text string) (api.Sentiment, error) {
	f.record("sentiment", username, id.String(), text)
	return f.sentiment, f.sentErr
}

func (f *fakeBackend) GeneratePrompt(_ context.Context, username string) (string, error) {
	f.record("prompt", username)
	return f.prompt, f.promptErr
}

func (f *fakeBackend) SentimentSummary(_ context.Context, username string) (api.SentimentSummary, error) {
	f.record("summary", username)
	return f.summary, f.sumErr
}

func (f *fakeBackend) SentimentTrends(_ context.Context, username string) ([]api.TrendPoint, error) {
	f.record("trends", username)
	return f.trends, f.trendErr
}

func (f *fakeBackend) PeriodSummary(_ context.Context, username, start, end string) (api.PeriodSummary, error) {
	f.record("period", username, start, end)
	return f.period, f.periodErr
}

// drain runs cmds to completion, feeding each result back through apply.
func drain(apply func(tea.Msg) tea.Cmd, cmds ...tea.Cmd) {
	queue := append([]tea.Cmd(nil), cmds...)
	for len(queue) > 0 {
		cmd := queue[0]
		queue = queue[1:]
		if cmd == nil {
			continue
		}
		switch v := cmd().(type) {
		case tea.BatchMsg:
			queue = append(queue, []tea.Cmd(v)...)
		default:
			if next := apply(v); next != nil {
				queue = append(queue, next)
			}
		}
	}
}

// collect runs cmd and returns the messages it produced without applying
// them.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch v := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, []tea.Cmd(v)...)
		default:
			out = append(out, v)
		}
	}
	return out
}
