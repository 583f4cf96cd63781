// Package app holds the client-side state of the journal: the session gate,
// the journal workspace, the sentiment dashboard and the settings panel.
//
// State here is only mutated from a Bubble Tea Update loop. Operations that
// talk to the backend return a tea.Cmd; the message that command produces is
// fed back through Apply, which is where results land in state.
package app

import (
	"context"

	"tableflip.dev/mindease/pkg/api"
)

// Backend is the subset of the API the client state depends on. *api.Client
// implements it.
type Backend interface {
	Health(ctx context.Context) (api.Health, error)
	Register(ctx context.Context, creds api.Credentials) (string, error)
	Login(ctx context.Context, creds api.Credentials) (api.LoginResult, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (string, error)
	ListEntries(ctx context.Context, username string) ([]api.Entry, error)
	CreateEntry(ctx context.Context, username, text string) (api.Entry, error)
	Insight(ctx context.Context, text string) (string, error)
	UpdateSentiment(ctx context.Context, username string, id api.EntryID, text string) (api.Sentiment, error)
	GeneratePrompt(ctx context.Context, username string) (string, error)
	SentimentSummary(ctx context.Context, username string) (api.SentimentSummary, error)
	SentimentTrends(ctx context.Context, username string) ([]api.TrendPoint, error)
	PeriodSummary(ctx context.Context, username, start, end string) (api.PeriodSummary, error)
}

var _ Backend = (*api.Client)(nil)
