package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Sentiment is the label the backend assigns to a journal entry.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentMixed    Sentiment = "mixed"
	SentimentUnknown  Sentiment = "unknown"
)

// Sentiments lists the recognized labels in display order.
func Sentiments() []Sentiment {
	return []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative, SentimentMixed, SentimentUnknown}
}

// Known reports whether s is one of the recognized labels.
func (s Sentiment) Known() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative, SentimentMixed, SentimentUnknown:
		return true
	}
	return false
}

// Absent reports whether the backend did not send a sentiment at all.
func (s Sentiment) Absent() bool {
	return strings.TrimSpace(string(s)) == ""
}

// Title returns the capitalized label, e.g. "Positive".
func (s Sentiment) Title() string {
	v := string(s)
	if v == "" {
		return ""
	}
	return strings.ToUpper(v[:1]) + v[1:]
}

// EntryID identifies a journal entry. The backend sends ObjectId strings,
// older payloads and fixtures send plain numbers; both decode to the same
// string form.
type EntryID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *EntryID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = EntryID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("entry id: %w", err)
	}
	*id = EntryID(n.String())
	return nil
}

func (id EntryID) String() string { return string(id) }

// Entry is a journal entry as returned by the backend.
type Entry struct {
	ID        EntryID   `json:"id"`
	Date      string    `json:"date"`
	Text      string    `json:"text"`
	Sentiment Sentiment `json:"sentiment,omitempty"`
}

// Health is the payload of the root status endpoint.
type Health struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	DatabaseStatus string `json:"database_status"`
}

// Credentials are exchanged for a session identity.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the identity granted by a successful login.
type LoginResult struct {
	Username string
	Message  string
}

// SentimentSummary aggregates entry counts per sentiment.
type SentimentSummary struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
	Mixed    int `json:"mixed"`
	Unknown  int `json:"unknown"`
	Total    int `json:"total"`
}

// Count returns the count recorded for s; unrecognized labels count as zero.
func (s SentimentSummary) Count(sentiment Sentiment) int {
	switch sentiment {
	case SentimentPositive:
		return s.Positive
	case SentimentNeutral:
		return s.Neutral
	case SentimentNegative:
		return s.Negative
	case SentimentMixed:
		return s.Mixed
	case SentimentUnknown:
		return s.Unknown
	}
	return 0
}

// TrendPoint is one day of the sentiment time series.
type TrendPoint struct {
	Date     string `json:"date"`
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
	Mixed    int    `json:"mixed"`
	Unknown  int    `json:"unknown"`
}

// Count returns the count recorded for s on this day.
func (p TrendPoint) Count(sentiment Sentiment) int {
	switch sentiment {
	case SentimentPositive:
		return p.Positive
	case SentimentNeutral:
		return p.Neutral
	case SentimentNegative:
		return p.Negative
	case SentimentMixed:
		return p.Mixed
	case SentimentUnknown:
		return p.Unknown
	}
	return 0
}

// PeriodSummary is the narrative generated for a date range.
type PeriodSummary struct {
	Start      string
	End        string
	Summary    string
	EntryCount int
	// HasCount is false when the backend omitted entry_count, which it does
	// for periods without entries.
	HasCount bool
}

// Empty reports whether the period matched no entries.
func (p PeriodSummary) Empty() bool {
	return !p.HasCount || p.EntryCount == 0
}
