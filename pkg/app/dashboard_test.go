package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/mindease/pkg/api"
)

func newDashboard(f *fakeBackend, identity string) *Dashboard {
	d := NewDashboard(context.Background(), f)
	d.SetIdentity(identity)
	return d
}

func TestDashboardRendersPanelsIndependently(t *testing.T) {
	cases := map[string]struct {
		summary     api.SentimentSummary
		trends      []api.TrendPoint
		wantSummary bool
		wantTrends  bool
		wantEmpty   bool
	}{
		"both empty": {
			summary:   api.SentimentSummary{},
			wantEmpty: true,
		},
		"summary only": {
			summary:     api.SentimentSummary{Positive: 2, Total: 2},
			wantSummary: true,
		},
		"trends only": {
			summary:    api.SentimentSummary{},
			trends:     []api.TrendPoint{{Date: "2024-05-01", Neutral: 1}},
			wantTrends: true,
		},
		"both": {
			summary:     api.SentimentSummary{Mixed: 1, Total: 1},
			trends:      []api.TrendPoint{{Date: "2024-05-01", Mixed: 1}},
			wantSummary: true,
			wantTrends:  true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := &fakeBackend{summary: tc.summary, trends: tc.trends}
			d := newDashboard(f, "alice")
			for _, msg := range collect(d.Load()) {
				d.Apply(msg)
			}
			assert.Equal(t, tc.wantSummary, d.HasSummaryData())
			assert.Equal(t, tc.wantTrends, d.HasTrendData())
			assert.Equal(t, tc.wantEmpty, d.Empty())
		})
	}
}

func TestDashboardNotEmptyWhileLoadingOrFailed(t *testing.T) {
	f := &fakeBackend{trendErr: &api.StatusError{Op: "trends", Code: 500}}
	d := newDashboard(f, "alice")
	cmd := d.Load()
	require.NotNil(t, cmd)
	assert.False(t, d.Empty())

	for _, msg := range collect(cmd) {
		d.Apply(msg)
	}
	assert.True(t, d.Trends().IsFailed())
	assert.Equal(t, "Failed to load sentiment trends: HTTP error! status: 500", d.Trends().Reason())
	assert.False(t, d.Empty())
}

func TestDashboardLoadsOncePerIdentity(t *testing.T) {
	f := &fakeBackend{}
	d := newDashboard(f, "alice")
	for _, msg := range collect(d.Load()) {
		d.Apply(msg)
	}
	assert.Nil(t, d.Load())

	d.SetIdentity("bob")
	for _, msg := range collect(d.Load()) {
		d.Apply(msg)
	}
	assert.Equal(t, []call{{Op: "summary", Args: []string{"alice"}}, {Op: "summary", Args: []string{"bob"}}}, f.Calls("summary"))

	for _, msg := range collect(d.Refresh()) {
		d.Apply(msg)
	}
	assert.Len(t, f.Calls("trends"), 3)
}

func TestDashboardDropsPreviousIdentity(t *testing.T) {
	f := &fakeBackend{summary: api.SentimentSummary{Positive: 4, Total: 4}}
	d := newDashboard(f, "alice")
	msgs := collect(d.Load())
	d.SetIdentity("bob")
	for _, msg := range msgs {
		assert.False(t, d.Apply(msg))
	}
	assert.Equal(t, NotLoaded, d.Summary().Phase())
}

func TestPeriodValidationSendsNothing(t *testing.T) {
	cases := map[string]struct {
		start, end string
		title      string
		message    string
	}{
		"start after end": {
			start: "2024-05-10", end: "2024-05-01",
			title: "Invalid Date Range", message: "Start date cannot be after end date.",
		},
		"missing end": {
			start: "2024-05-10",
			title: "Date Range Required", message: "Please select both a start and end date.",
		},
		"bad format": {
			start: "05/01/2024", end: "2024-05-10",
			title: "Invalid Date Range", message: "Dates must use the YYYY-MM-DD format.",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := &fakeBackend{}
			d := newDashboard(f, "alice")
			d.SetRange(tc.start, tc.end)
			assert.Nil(t, d.RequestPeriod())
			assert.Empty(t, f.Calls("period"))
			n, ok := d.Notice.Current()
			require.True(t, ok)
			assert.Equal(t, tc.title, n.Title)
			assert.Equal(t, tc.message, n.Message)
			assert.Equal(t, NoticeError, n.Type)
		})
	}
}

func TestPeriodSameDayIsValid(t *testing.T) {
	f := &fakeBackend{period: api.PeriodSummary{Summary: "calm", EntryCount: 1, HasCount: true}}
	d := newDashboard(f, "alice")
	d.SetRange("2024-05-01", "2024-05-01")
	for _, msg := range collect(d.RequestPeriod()) {
		d.Apply(msg)
	}
	assert.Equal(t, []call{{Op: "period", Args: []string{"alice", "2024-05-01", "2024-05-01"}}}, f.Calls("period"))
}

func TestPeriodWithoutSession(t *testing.T) {
	f := &fakeBackend{}
	d := NewDashboard(context.Background(), f)
	d.SetRange("2024-05-01", "2024-05-02")
	assert.Nil(t, d.RequestPeriod())
	n, _ := d.Notice.Current()
	assert.Equal(t, "Login Required", n.Title)
}

func TestPeriodOutcomes(t *testing.T) {
	cases := map[string]struct {
		result  api.PeriodSummary
		err     error
		title   string
		message string
		kind    NoticeType
		phase   Phase
	}{
		"zero entries": {
			result: api.PeriodSummary{Summary: "No journal entries found for the selected period.", EntryCount: 0, HasCount: true},
			title:  "No Entries", message: "No journal entries found for the selected period.",
			kind: NoticeInfo, phase: Loaded,
		},
		"count absent": {
			result: api.PeriodSummary{Summary: "No journal entries found for the selected period."},
			title:  "No Entries", message: "No journal entries found for the selected period.",
			kind: NoticeInfo, phase: Loaded,
		},
		"generated": {
			result: api.PeriodSummary{Summary: "A reflective week.", EntryCount: 3, HasCount: true},
			title:  "Summary Generated", message: "Generated summary for 3 entries.",
			kind: NoticeSuccess, phase: Loaded,
		},
		"missing summary": {
			err:   &api.MalformedError{Op: "period", Field: "summary"},
			title: "Summary Failed", message: "Failed to generate summary: No summary received.",
			kind: NoticeError, phase: Failed,
		},
		"server error": {
			err:   &api.StatusError{Op: "period", Code: 500},
			title: "Summary Error", message: "Failed to generate summary: HTTP error! status: 500. Please try again.",
			kind: NoticeError, phase: Failed,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := &fakeBackend{period: tc.result, periodErr: tc.err}
			d := newDashboard(f, "alice")
			d.SetRange("2024-05-01", "2024-05-07")
			cmd := d.RequestPeriod()
			require.NotNil(t, cmd)
			assert.True(t, d.Period().IsLoading())
			assert.Nil(t, d.RequestPeriod(), "duplicate while in flight")

			for _, msg := range collect(cmd) {
				d.Apply(msg)
			}
			assert.Equal(t, tc.phase, d.Period().Phase())
			n, ok := d.Notice.Current()
			require.True(t, ok)
			assert.Equal(t, tc.title, n.Title)
			assert.Equal(t, tc.message, n.Message)
			assert.Equal(t, tc.kind, n.Type)
		})
	}
}
