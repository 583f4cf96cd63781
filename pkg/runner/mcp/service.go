// Package mcp provides the Model Context Protocol server integration for
// MindEase.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/mindease/pkg/api"
	"tableflip.dev/mindease/pkg/app"
)

// Service scopes backend calls to one journal owner for the MCP server.
type Service struct {
	Backend  app.Backend
	Username string
}

var (
	// ErrEntryNotFound is returned when an entry id is not in the journal.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrNoUser is returned when no journal owner is configured.
	ErrNoUser = errors.New("no user configured, run `mindease login` first")
)

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Text      string `json:"text"`
	Sentiment string `json:"sentiment,omitempty"`
}

// InsightDTO pairs an entry with the insight generated for it.
type InsightDTO struct {
	ID      string `json:"id"`
	Insight string `json:"insight"`
}

// PeriodDTO is a narrative summary of a date range.
type PeriodDTO struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Summary    string `json:"summary"`
	EntryCount int    `json:"entry_count"`
}

// NewService builds a service for username's journal.
func NewService(backend app.Backend, username string) *Service {
	return &Service{Backend: backend, Username: strings.TrimSpace(username)}
}

func (s *Service) ready() error {
	if s.Backend == nil {
		return errors.New("backend is not configured")
	}
	if s.Username == "" {
		return ErrNoUser
	}
	return nil
}

// ListEntries returns up to limit entries, newest first. A limit of zero
// or less returns every entry.
func (s *Service) ListEntries(ctx context.Context, limit int) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	entries, err := s.Backend.ListEntries(ctx, s.Username)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return toDTOs(entries), nil
}

// EntryByID finds a single entry.
func (s *Service) EntryByID(ctx context.Context, id string) (EntryDTO, error) {
	e, err := s.entry(ctx, id)
	if err != nil {
		return EntryDTO{}, err
	}
	return toDTO(e), nil
}

func (s *Service) entry(ctx context.Context, id string) (api.Entry, error) {
	if err := s.ready(); err != nil {
		return api.Entry{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return api.Entry{}, errors.New("entry id is required")
	}
	entries, err := s.Backend.ListEntries(ctx, s.Username)
	if err != nil {
		return api.Entry{}, err
	}
	for _, e := range entries {
		if e.ID.String() == id {
			return e, nil
		}
	}
	return api.Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
}

// CreateEntry stores a new entry.
func (s *Service) CreateEntry(ctx context.Context, text string) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return EntryDTO{}, errors.New("text is required")
	}
	e, err := s.Backend.CreateEntry(ctx, s.Username, text)
	if err != nil {
		return EntryDTO{}, err
	}
	return toDTO(e), nil
}

// Insight asks for an insight on the entry with id.
func (s *Service) Insight(ctx context.Context, id string) (InsightDTO, error) {
	e, err := s.entry(ctx, id)
	if err != nil {
		return InsightDTO{}, err
	}
	insight, err := s.Backend.Insight(ctx, e.Text)
	if err != nil {
		return InsightDTO{}, err
	}
	return InsightDTO{ID: e.ID.String(), Insight: insight}, nil
}

// Recalculate classifies an entry whose sentiment is unknown again.
func (s *Service) Recalculate(ctx context.Context, id string) (EntryDTO, error) {
	e, err := s.entry(ctx, id)
	if err != nil {
		return EntryDTO{}, err
	}
	if e.Sentiment != api.SentimentUnknown {
		return EntryDTO{}, fmt.Errorf("entry %s already has sentiment %q", e.ID, e.Sentiment)
	}
	sentiment, err := s.Backend.UpdateSentiment(ctx, s.Username, e.ID, e.Text)
	if err != nil {
		return EntryDTO{}, err
	}
	e.Sentiment = sentiment
	return toDTO(e), nil
}

// Summary returns the per-sentiment counts.
func (s *Service) Summary(ctx context.Context) (api.SentimentSummary, error) {
	if err := s.ready(); err != nil {
		return api.SentimentSummary{}, err
	}
	return s.Backend.SentimentSummary(ctx, s.Username)
}

// Trends returns the daily series in ascending date order.
func (s *Service) Trends(ctx context.Context) ([]api.TrendPoint, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	points, err := s.Backend.SentimentTrends(ctx, s.Username)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []api.TrendPoint{}
	}
	return points, nil
}

// Period summarizes the entries between start and end inclusive.
func (s *Service) Period(ctx context.Context, start, end string) (PeriodDTO, error) {
	if err := s.ready(); err != nil {
		return PeriodDTO{}, err
	}
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if err := app.ValidatePeriod(start, end); err != nil {
		return PeriodDTO{}, err
	}
	p, err := s.Backend.PeriodSummary(ctx, s.Username, start, end)
	if err != nil {
		return PeriodDTO{}, err
	}
	return PeriodDTO{StartDate: p.Start, EndDate: p.End, Summary: p.Summary, EntryCount: p.EntryCount}, nil
}

// Prompt generates a journaling prompt.
func (s *Service) Prompt(ctx context.Context) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	return s.Backend.GeneratePrompt(ctx, s.Username)
}

func toDTO(e api.Entry) EntryDTO {
	return EntryDTO{ID: e.ID.String(), Date: e.Date, Text: e.Text, Sentiment: string(e.Sentiment)}
}

func toDTOs(entries []api.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e))
	}
	return out
}
