package mcp

import (
	"context"
	"errors"
	"net"
	"strconv"
	"testing"

	"tableflip.dev/mindease/pkg/api"
	"tableflip.dev/mindease/pkg/app"
)

type memoryBackend struct {
	app.Backend

	entries []api.Entry
	counter int
	periods int
}

func (m *memoryBackend) ListEntries(context.Context, string) ([]api.Entry, error) {
	return m.entries, nil
}

func (m *memoryBackend) CreateEntry(_ context.Context, _, text string) (api.Entry, error) {
	m.counter++
	e := api.Entry{ID: api.EntryID(strconv.Itoa(m.counter)), Date: "2024-01-01 08:00:00", Text: text, Sentiment: api.SentimentUnknown}
	m.entries = append([]api.Entry{e}, m.entries...)
	return e, nil
}

func (m *memoryBackend) Insight(_ context.Context, text string) (string, error) {
	return "insight on " + text, nil
}

func (m *memoryBackend) UpdateSentiment(context.Context, string, api.EntryID, string) (api.Sentiment, error) {
	return api.SentimentNeutral, nil
}

func (m *memoryBackend) SentimentTrends(context.Context, string) ([]api.TrendPoint, error) {
	return nil, nil
}

func (m *memoryBackend) PeriodSummary(_ context.Context, _, start, end string) (api.PeriodSummary, error) {
	m.periods++
	return api.PeriodSummary{Start: start, End: end, Summary: "calm", EntryCount: 2, HasCount: true}, nil
}

func TestServiceCreateAndList(t *testing.T) {
	ctx := context.Background()
	backend := &memoryBackend{}
	svc := NewService(backend, "alice")

	if _, err := svc.CreateEntry(ctx, "   "); err == nil {
		t.Fatalf("expected error for blank text")
	}
	first, err := svc.CreateEntry(ctx, "first")
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if first.Sentiment != string(api.SentimentUnknown) {
		t.Fatalf("expected unknown sentiment, got %s", first.Sentiment)
	}
	if _, err := svc.CreateEntry(ctx, "second"); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	entries, err := svc.ListEntries(ctx, 1)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "second" {
		t.Fatalf("expected newest entry only, got %+v", entries)
	}
	all, _ := svc.ListEntries(ctx, 0)
	if len(all) != 2 {
		t.Fatalf("expected all entries, got %d", len(all))
	}
}

func TestServiceInsightAndRecalculate(t *testing.T) {
	ctx := context.Background()
	backend := &memoryBackend{entries: []api.Entry{
		{ID: "1", Text: "rainy", Sentiment: api.SentimentUnknown},
		{ID: "2", Text: "sunny", Sentiment: api.SentimentPositive},
	}}
	svc := NewService(backend, "alice")

	insight, err := svc.Insight(ctx, "1")
	if err != nil {
		t.Fatalf("Insight failed: %v", err)
	}
	if insight.Insight != "insight on rainy" {
		t.Fatalf("unexpected insight %q", insight.Insight)
	}

	if _, err := svc.Insight(ctx, "9"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}

	dto, err := svc.Recalculate(ctx, "1")
	if err != nil {
		t.Fatalf("Recalculate failed: %v", err)
	}
	if dto.Sentiment != string(api.SentimentNeutral) {
		t.Fatalf("expected neutral, got %s", dto.Sentiment)
	}
	if _, err := svc.Recalculate(ctx, "2"); err == nil {
		t.Fatalf("expected error for known sentiment")
	}
}

func TestServicePeriodValidates(t *testing.T) {
	ctx := context.Background()
	backend := &memoryBackend{}
	svc := NewService(backend, "alice")

	if _, err := svc.Period(ctx, "2024-02-01", "2024-01-01"); !app.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if backend.periods != 0 {
		t.Fatalf("invalid range reached the backend")
	}
	p, err := svc.Period(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("Period failed: %v", err)
	}
	if p.EntryCount != 2 || p.Summary != "calm" {
		t.Fatalf("unexpected period %+v", p)
	}
}

func TestServiceTrendsNeverNil(t *testing.T) {
	svc := NewService(&memoryBackend{}, "alice")
	points, err := svc.Trends(context.Background())
	if err != nil {
		t.Fatalf("Trends failed: %v", err)
	}
	if points == nil {
		t.Fatalf("expected empty slice")
	}
}

func TestServiceRequiresUser(t *testing.T) {
	svc := NewService(&memoryBackend{}, " ")
	if _, err := svc.ListEntries(context.Background(), 0); !errors.Is(err, ErrNoUser) {
		t.Fatalf("expected ErrNoUser, got %v", err)
	}
	if _, err := (Runner{Backend: &memoryBackend{}}).NewServer(); !errors.Is(err, ErrNoUser) {
		t.Fatalf("expected ErrNoUser from NewServer, got %v", err)
	}
	if _, err := (Runner{Backend: &memoryBackend{}, Username: "alice"}).NewServer(); err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
}

func TestEndpointPath(t *testing.T) {
	for in, want := range map[string]string{" ": "/mcp", "journal": "/journal", "/x/y": "/x/y"} {
		if got := EndpointPath(in); got != want {
			t.Errorf("EndpointPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestListenURL(t *testing.T) {
	wildcard := &net.TCPAddr{IP: net.IPv4zero, Port: 9000}
	bound := &net.TCPAddr{IP: net.ParseIP("10.0.0.5"), Port: 80}
	tests := []struct {
		host string
		addr net.Addr
		path string
		tls  bool
		want string
	}{
		{"0.0.0.0", wildcard, "/mcp", false, "http://127.0.0.1:9000/mcp"},
		{"example.test", wildcard, "/mcp", true, "https://example.test:9000/mcp"},
		{"::1", wildcard, "/mcp", false, "http://[::1]:9000/mcp"},
		{"", bound, "/", false, "http://10.0.0.5:80/"},
	}
	for _, tt := range tests {
		if got := ListenURL(tt.host, tt.addr, tt.path, tt.tls); got != tt.want {
			t.Errorf("ListenURL(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}
