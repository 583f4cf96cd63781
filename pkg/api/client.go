// Package api is a typed client for the MindEase journaling backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is where the backend listens during local development.
const DefaultBaseURL = "http://127.0.0.1:5000"

const maxErrorBody = 1 << 20

// Client talks JSON over HTTP to the backend. The zero value is not usable;
// construct one with New.
type Client struct {
	base    string
	http    *http.Client
	log     *zap.Logger
	timeout time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger attaches a logger that records every request.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New returns a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("api: invalid backend url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api: backend url %q must be http or https", baseURL)
	}
	c := &Client{
		base: strings.TrimRight(u.String(), "/"),
		http: &http.Client{},
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend root this client targets.
func (c *Client) BaseURL() string { return c.base }

// endpoint joins escaped path segments onto the base URL.
func (c *Client) endpoint(segments ...string) string {
	if len(segments) == 0 {
		return c.base + "/"
	}
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.base + "/" + strings.Join(escaped, "/")
}

type errorBody struct {
	Error string `json:"error"`
}

// do performs one request. body is JSON-encoded when non-nil; out receives
// the decoded 2xx body when non-nil.
func (c *Client) do(ctx context.Context, op, method, target string, body, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend request failed",
			zap.String("op", op),
			zap.String("method", method),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("backend request",
		zap.String("op", op),
		zap.String("method", method),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return &TransportError{Op: op, Err: err}
		}
		return &MalformedError{Op: op, Err: err}
	}
	return nil
}

func statusError(op string, resp *http.Response) error {
	se := &StatusError{Op: op, Code: resp.StatusCode}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return se
	}
	var eb errorBody
	if json.Unmarshal(b, &eb) == nil && strings.TrimSpace(eb.Error) != "" {
		se.Message = eb.Error
		se.Structured = true
	}
	return se
}

// Health calls GET /.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	if err := c.do(ctx, "health", http.MethodGet, c.endpoint(), nil, &h); err != nil {
		return Health{}, err
	}
	return h, nil
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register calls POST /register and returns the server's message.
func (c *Client) Register(ctx context.Context, creds Credentials) (string, error) {
	var out messageResponse
	if err := c.do(ctx, "register", http.MethodPost, c.endpoint("register"), creds, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

type loginResponse struct {
	Username *string `json:"username"`
	Message  string  `json:"message"`
}

// Login calls POST /login. The returned username is the session identity.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var out loginResponse
	if err := c.do(ctx, "login", http.MethodPost, c.endpoint("login"), creds, &out); err != nil {
		return LoginResult{}, err
	}
	if out.Username == nil || *out.Username == "" {
		return LoginResult{}, &MalformedError{Op: "login", Field: "username"}
	}
	return LoginResult{Username: *out.Username, Message: out.Message}, nil
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword calls PUT /change_password/{username}.
func (c *Client) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (string, error) {
	var out messageResponse
	body := changePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if err := c.do(ctx, "change password", http.MethodPut, c.endpoint("change_password", username), body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ListEntries calls GET /journal/{username}. Entries arrive newest-first.
func (c *Client) ListEntries(ctx context.Context, username string) ([]Entry, error) {
	var out []Entry
	if err := c.do(ctx, "list entries", http.MethodGet, c.endpoint("journal", username), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Entry{}
	}
	return out, nil
}

type textRequest struct {
	Text string `json:"text"`
}

type createEntryResponse struct {
	Entry *Entry `json:"entry"`
}

// CreateEntry calls POST /journal/{username} and returns the stored entry.
func (c *Client) CreateEntry(ctx context.Context, username, text string) (Entry, error) {
	var out createEntryResponse
	if err := c.do(ctx, "create entry", http.MethodPost, c.endpoint("journal", username), textRequest{Text: text}, &out); err != nil {
		return Entry{}, err
	}
	if out.Entry == nil {
		return Entry{}, &MalformedError{Op: "create entry", Field: "entry"}
	}
	return *out.Entry, nil
}

type insightResponse struct {
	Insight string `json:"insight"`
}

// Insight calls POST /journal/insight.
func (c *Client) Insight(ctx context.Context, text string) (string, error) {
	var out insightResponse
	if err := c.do(ctx, "insight", http.MethodPost, c.endpoint("journal", "insight"), textRequest{Text: text}, &out); err != nil {
		return "", err
	}
	if out.Insight == "" {
		return "", &MalformedError{Op: "insight", Field: "insight"}
	}
	return out.Insight, nil
}

type updateSentimentResponse struct {
	NewSentiment Sentiment `json:"new_sentiment"`
}

// UpdateSentiment calls PUT /journal/update_sentiment/{username}/{id}.
func (c *Client) UpdateSentiment(ctx context.Context, username string, id EntryID, text string) (Sentiment, error) {
	var out updateSentimentResponse
	target := c.endpoint("journal", "update_sentiment", username, id.String())
	if err := c.do(ctx, "update sentiment", http.MethodPut, target, textRequest{Text: text}, &out); err != nil {
		return "", err
	}
	if out.NewSentiment.Absent() {
		return "", &MalformedError{Op: "update sentiment", Field: "new_sentiment"}
	}
	return out.NewSentiment, nil
}

type promptResponse struct {
	Prompt string `json:"prompt"`
}

// GeneratePrompt calls POST /journal/generate_prompt/{username}.
func (c *Client) GeneratePrompt(ctx context.Context, username string) (string, error) {
	var out promptResponse
	target := c.endpoint("journal", "generate_prompt", username)
	if err := c.do(ctx, "generate prompt", http.MethodPost, target, struct{}{}, &out); err != nil {
		return "", err
	}
	if out.Prompt == "" {
		return "", &MalformedError{Op: "generate prompt", Field: "prompt"}
	}
	return out.Prompt, nil
}

// SentimentSummary calls GET /journal/sentiment_summary/{username}.
func (c *Client) SentimentSummary(ctx context.Context, username string) (SentimentSummary, error) {
	var out SentimentSummary
	if err := c.do(ctx, "sentiment summary", http.MethodGet, c.endpoint("journal", "sentiment_summary", username), nil, &out); err != nil {
		return SentimentSummary{}, err
	}
	return out, nil
}

// SentimentTrends calls GET /journal/sentiment_trends/{username}.
func (c *Client) SentimentTrends(ctx context.Context, username string) ([]TrendPoint, error) {
	var out []TrendPoint
	if err := c.do(ctx, "sentiment trends", http.MethodGet, c.endpoint("journal", "sentiment_trends", username), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []TrendPoint{}
	}
	return out, nil
}

type periodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type periodResponse struct {
	Summary    string `json:"summary"`
	EntryCount *int   `json:"entry_count"`
}

// PeriodSummary calls POST /journal/period_summary/{username}. Dates are
// passed through unmodified.
func (c *Client) PeriodSummary(ctx context.Context, username, start, end string) (PeriodSummary, error) {
	var out periodResponse
	target := c.endpoint("journal", "period_summary", username)
	if err := c.do(ctx, "period summary", http.MethodPost, target, periodRequest{StartDate: start, EndDate: end}, &out); err != nil {
		return PeriodSummary{}, err
	}
	if out.Summary == "" {
		return PeriodSummary{}, &MalformedError{Op: "period summary", Field: "summary"}
	}
	ps := PeriodSummary{Start: start, End: end, Summary: out.Summary}
	if out.EntryCount != nil {
		ps.EntryCount = *out.EntryCount
		ps.HasCount = true
	}
	return ps, nil
}
