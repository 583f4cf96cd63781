package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	body   map[string]any
}

func newTestServer(t *testing.T, status int, response string) (*Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.EscapedPath()}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		calls = append(calls, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)
	return c, &calls
}

func TestLoginReturnsServerUsername(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK, `{"username":"alice","message":"ok"}`)

	res, err := c.Login(context.Background(), Credentials{Username: "alice", Password: "pw123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, "ok", res.Message)

	require.Len(t, *calls, 1)
	got := (*calls)[0]
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/login", got.path)
	assert.Equal(t, map[string]any{"username": "alice", "password": "pw123"}, got.body)
}

func TestLoginWithoutUsernameIsMalformed(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{"message":"ok"}`)

	_, err := c.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))

	var me *MalformedError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "username", me.Field)
}

func TestStatusErrors(t *testing.T) {
	tests := map[string]struct {
		status     int
		body       string
		want       string
		structured bool
	}{
		"structured body": {
			status:     http.StatusUnauthorized,
			body:       `{"error":"Invalid username or password"}`,
			want:       "Invalid username or password",
			structured: true,
		},
		"empty error field": {
			status: http.StatusInternalServerError,
			body:   `{"error":""}`,
			want:   "HTTP error! status: 500",
		},
		"html body": {
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			want:   "HTTP error! status: 502",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestServer(t, tc.status, tc.body)
			_, err := c.ListEntries(context.Background(), "alice")
			require.Error(t, err)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tc.status, se.Code)
			assert.Equal(t, tc.structured, se.Structured)
			assert.Equal(t, tc.want, Describe(err))
		})
	}
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url)
	require.NoError(t, err)

	_, err = c.Health(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreachable))
	assert.Equal(t, "server unreachable", Describe(err))
}

func TestCreateEntryAcceptsNumericID(t *testing.T) {
	c, calls := newTestServer(t, http.StatusCreated,
		`{"entry":{"id":7,"date":"2024-01-01","text":"today was fine","sentiment":"unknown"}}`)

	e, err := c.CreateEntry(context.Background(), "alice", "today was fine")
	require.NoError(t, err)
	assert.Equal(t, Entry{ID: "7", Date: "2024-01-01", Text: "today was fine", Sentiment: SentimentUnknown}, e)

	require.Len(t, *calls, 1)
	assert.Equal(t, "/journal/alice", (*calls)[0].path)
	assert.Equal(t, map[string]any{"text": "today was fine"}, (*calls)[0].body)
}

func TestCreateEntryWithoutEntryIsMalformed(t *testing.T) {
	c, _ := newTestServer(t, http.StatusCreated, `{"message":"Journal entry added successfully!"}`)

	_, err := c.CreateEntry(context.Background(), "alice", "x")
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestSoftFailures(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{}`)
	ctx := context.Background()

	_, err := c.Insight(ctx, "text")
	assert.True(t, errors.Is(err, ErrMalformed), "insight")

	_, err = c.GeneratePrompt(ctx, "alice")
	assert.True(t, errors.Is(err, ErrMalformed), "prompt")

	_, err = c.UpdateSentiment(ctx, "alice", "1", "text")
	assert.True(t, errors.Is(err, ErrMalformed), "sentiment")

	_, err = c.PeriodSummary(ctx, "alice", "2024-01-01", "2024-01-31")
	assert.True(t, errors.Is(err, ErrMalformed), "period")
}

func TestPathSegmentsAreEscaped(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK, `{"new_sentiment":"positive"}`)

	s, err := c.UpdateSentiment(context.Background(), "a b/c", "65a1", "text")
	require.NoError(t, err)
	assert.Equal(t, SentimentPositive, s)
	assert.Equal(t, "/journal/update_sentiment/a%20b%2Fc/65a1", (*calls)[0].path)
}

func TestPeriodSummaryCount(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK, `{"summary":"A calm month.","entry_count":3}`)

	ps, err := c.PeriodSummary(context.Background(), "alice", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.True(t, ps.HasCount)
	assert.Equal(t, 3, ps.EntryCount)
	assert.False(t, ps.Empty())
	assert.Equal(t, map[string]any{"start_date": "2024-01-01", "end_date": "2024-01-31"}, (*calls)[0].body)

	c, _ = newTestServer(t, http.StatusOK, `{"summary":"No journal entries found for the selected period."}`)
	ps, err = c.PeriodSummary(context.Background(), "alice", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.False(t, ps.HasCount)
	assert.True(t, ps.Empty())
}

func TestGeneratePromptSendsEmptyObject(t *testing.T) {
	c, calls := newTestServer(t, http.StatusOK, `{"prompt":"What made you smile today?"}`)

	p, err := c.GeneratePrompt(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "What made you smile today?", p)
	assert.Equal(t, "/journal/generate_prompt/alice", (*calls)[0].path)
	assert.NotNil(t, (*calls)[0].body)
	assert.Empty(t, (*calls)[0].body)
}

func TestListEntriesNullIsEmpty(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `null`)

	entries, err := c.ListEntries(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("ftp://example.com")
	assert.Error(t, err)

	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}
