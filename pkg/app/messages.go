package app

import (
	"fmt"

	"tableflip.dev/mindease/pkg/api"
)

// Every message carries the session generation it was issued under so
// results for a previous session are discarded.

// HealthMsg reports the backend status check.
type HealthMsg struct {
	Health api.Health
	Err    error
}

func (m HealthMsg) Describe() string {
	if m.Err != nil {
		return "err=" + api.Describe(m.Err)
	}
	return fmt.Sprintf("status=%q db=%q", m.Health.Status, m.Health.DatabaseStatus)
}

func (m HealthMsg) Failed() bool { return m.Err != nil }

// AuthResultMsg reports a login or registration attempt.
type AuthResultMsg struct {
	Mode     AuthMode
	Username string
	Message  string
	Err      error
}

func (m AuthResultMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf("mode=%s err=%s", m.Mode, api.Describe(m.Err))
	}
	return fmt.Sprintf("mode=%s user=%q", m.Mode, m.Username)
}

func (m AuthResultMsg) Failed() bool { return m.Err != nil }

// EntriesLoadedMsg reports the entry list fetch.
type EntriesLoadedMsg struct {
	Generation uint64
	Entries    []api.Entry
	Err        error
}

func (m EntriesLoadedMsg) Describe() string {
	if m.Err != nil {
		return "err=" + api.Describe(m.Err)
	}
	return fmt.Sprintf("entries=%d", len(m.Entries))
}

func (m EntriesLoadedMsg) Failed() bool { return m.Err != nil }

// EntrySavedMsg reports the creation of an entry.
type EntrySavedMsg struct {
	Generation uint64
	Entry      api.Entry
	Err        error
}

func (m EntrySavedMsg) Describe() string {
	if m.Err != nil {
		return "err=" + api.Describe(m.Err)
	}
	return fmt.Sprintf("id=%s", m.Entry.ID)
}

func (m EntrySavedMsg) Failed() bool { return m.Err != nil }

// InsightMsg reports an insight request for one entry.
type InsightMsg struct {
	Generation uint64
	ID         api.EntryID
	Seq        uint64
	Insight    string
	Err        error
}

func (m InsightMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf("id=%s err=%s", m.ID, api.Describe(m.Err))
	}
	return fmt.Sprintf("id=%s seq=%d", m.ID, m.Seq)
}

func (m InsightMsg) Failed() bool { return m.Err != nil }

// SentimentMsg reports a sentiment recalculation for one entry.
type SentimentMsg struct {
	Generation uint64
	ID         api.EntryID
	Seq        uint64
	Sentiment  api.Sentiment
	Err        error
}

func (m SentimentMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf("id=%s err=%s", m.ID, api.Describe(m.Err))
	}
	return fmt.Sprintf("id=%s sentiment=%s", m.ID, m.Sentiment)
}

func (m SentimentMsg) Failed() bool { return m.Err != nil }

// PromptMsg reports a generated journaling prompt.
type PromptMsg struct {
	Generation uint64
	Prompt     string
	Err        error
}

func (m PromptMsg) Describe() string {
	if m.Err != nil {
		return "err=" + api.Describe(m.Err)
	}
	return fmt.Sprintf("prompt=%d chars", len(m.Prompt))
}

func (m PromptMsg) Failed() bool { return m.Err != nil }

// SummaryLoadedMsg reports the aggregate sentiment counts.
type SummaryLoadedMsg struct {
	Generation uint64
	Summary    api.SentimentSummary
	Err        error
}

func (m SummaryLoadedMsg) Describe() string {
	if m.Err != nil {
		return "err=" + api.Describe(m.Err)
	}
	return fmt.Sprintf("total=%d", m.Summary.Total)
}

func (m SummaryLoadedMsg) Failed() bool { return m.Err != nil }

// TrendsLoadedMsg reports the sentiment time series.
type TrendsLoadedMsg struct {
	Generation uint64
	Points     []api.TrendPoint
	Err        error
}

func (m TrendsLoadedMsg) Describe() string {
	if m.Err != nil {
		return "err=" + api.Describe(m.Err)
	}
	return fmt.Sprintf("points=%d", len(m.Points))
}

func (m TrendsLoadedMsg) Failed() bool { return m.Err != nil }

// PeriodSummaryMsg reports a narrative summary request.
type PeriodSummaryMsg struct {
	Generation uint64
	Seq        uint64
	Result     api.PeriodSummary
	Err        error
}

func (m PeriodSummaryMsg) Describe() string {
	if m.Err != nil {
		return "err=" + api.Describe(m.Err)
	}
	return fmt.Sprintf("entries=%d", m.Result.EntryCount)
}

func (m PeriodSummaryMsg) Failed() bool { return m.Err != nil }

// PasswordChangedMsg reports a password change attempt.
type PasswordChangedMsg struct {
	Generation uint64
	Message    string
	Err        error
}

func (m PasswordChangedMsg) Describe() string {
	if m.Err != nil {
		return "err=" + api.Describe(m.Err)
	}
	return "ok"
}

func (m PasswordChangedMsg) Failed() bool { return m.Err != nil }
