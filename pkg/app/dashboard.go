package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/mindease/pkg/api"
)

// Dashboard holds the aggregate sentiment view for one identity: summary
// counts, the trend series and an on-demand narrative for a date range.
type Dashboard struct {
	ctx     context.Context
	backend Backend

	identity   string
	generation uint64
	loadedFor  string

	summary Resource[api.SentimentSummary]
	trends  Resource[[]api.TrendPoint]
	period  Resource[api.PeriodSummary]
	// periodSeq is the latest period request issued; older responses are
	// dropped.
	periodSeq uint64

	StartDate string
	EndDate   string

	Notice NoticeSlot
}

// NewDashboard returns an empty dashboard with no identity.
func NewDashboard(ctx context.Context, backend Backend) *Dashboard {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Dashboard{ctx: ctx, backend: backend}
}

// SetIdentity binds the dashboard to identity. Changing identity discards
// everything loaded for the previous one.
func (d *Dashboard) SetIdentity(identity string) {
	if identity == d.identity && identity != "" {
		return
	}
	d.generation++
	d.identity = identity
	d.loadedFor = ""
	d.summary = Resource[api.SentimentSummary]{}
	d.trends = Resource[[]api.TrendPoint]{}
	d.period = Resource[api.PeriodSummary]{}
	d.StartDate = ""
	d.EndDate = ""
	d.Notice.Dismiss()
}

// Load fetches summary and trends unless they were already fetched for the
// current identity.
func (d *Dashboard) Load() tea.Cmd {
	if d.identity == "" || d.loadedFor == d.identity {
		return nil
	}
	return d.Refresh()
}

// Refresh fetches summary and trends for the current identity.
func (d *Dashboard) Refresh() tea.Cmd {
	if d.identity == "" {
		return nil
	}
	if d.summary.IsLoading() || d.trends.IsLoading() {
		return nil
	}
	d.loadedFor = d.identity
	d.summary = Pending[api.SentimentSummary]()
	d.trends = Pending[[]api.TrendPoint]()

	ctx, backend, gen, identity := d.ctx, d.backend, d.generation, d.identity
	return tea.Batch(
		func() tea.Msg {
			s, err := backend.SentimentSummary(ctx, identity)
			return SummaryLoadedMsg{Generation: gen, Summary: s, Err: err}
		},
		func() tea.Msg {
			points, err := backend.SentimentTrends(ctx, identity)
			return TrendsLoadedMsg{Generation: gen, Points: points, Err: err}
		},
	)
}

// Summary returns the aggregate counts.
func (d *Dashboard) Summary() Resource[api.SentimentSummary] { return d.summary }

// Trends returns the trend series.
func (d *Dashboard) Trends() Resource[[]api.TrendPoint] { return d.trends }

// Period returns the last requested narrative summary.
func (d *Dashboard) Period() Resource[api.PeriodSummary] { return d.period }

// SetRange sets the period bounds as YYYY-MM-DD strings.
func (d *Dashboard) SetRange(start, end string) {
	d.StartDate = strings.TrimSpace(start)
	d.EndDate = strings.TrimSpace(end)
}

// RequestPeriod asks for a narrative of the entries between StartDate and
// EndDate inclusive. Invalid ranges raise a notice and send nothing.
func (d *Dashboard) RequestPeriod() tea.Cmd {
	if d.identity == "" {
		d.Notice.Show("Login Required", "Please log in to generate period summaries.", NoticeInfo)
		return nil
	}
	if d.period.IsLoading() {
		return nil
	}
	if err := ValidatePeriod(d.StartDate, d.EndDate); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			d.Notice.Show(ve.Title, ve.Message, NoticeError)
		}
		return nil
	}

	d.periodSeq++
	d.period = Pending[api.PeriodSummary]()
	ctx, backend, gen, seq := d.ctx, d.backend, d.generation, d.periodSeq
	identity, start, end := d.identity, d.StartDate, d.EndDate
	return func() tea.Msg {
		res, err := backend.PeriodSummary(ctx, identity, start, end)
		return PeriodSummaryMsg{Generation: gen, Seq: seq, Result: res, Err: err}
	}
}

// Apply folds a dashboard result into state. It reports whether msg was a
// dashboard message for the current identity.
func (d *Dashboard) Apply(msg tea.Msg) bool {
	switch m := msg.(type) {
	case SummaryLoadedMsg:
		if m.Generation != d.generation {
			return false
		}
		if m.Err != nil {
			d.summary = Failure[api.SentimentSummary]("Failed to load sentiment summary: " + api.Describe(m.Err))
		} else {
			d.summary = Ready(m.Summary)
		}
	case TrendsLoadedMsg:
		if m.Generation != d.generation {
			return false
		}
		if m.Err != nil {
			d.trends = Failure[[]api.TrendPoint]("Failed to load sentiment trends: " + api.Describe(m.Err))
		} else {
			d.trends = Ready(m.Points)
		}
	case PeriodSummaryMsg:
		if m.Generation != d.generation || m.Seq != d.periodSeq {
			return false
		}
		d.applyPeriod(m)
	default:
		return false
	}
	return true
}

func (d *Dashboard) applyPeriod(m PeriodSummaryMsg) {
	switch {
	case errors.Is(m.Err, api.ErrMalformed):
		d.period = Failure[api.PeriodSummary]("No summary was returned.")
		d.Notice.Show("Summary Failed", "Failed to generate summary: No summary received.", NoticeError)
	case m.Err != nil:
		d.period = Failure[api.PeriodSummary](api.Describe(m.Err))
		d.Notice.Show("Summary Error",
			fmt.Sprintf("Failed to generate summary: %s. Please try again.", api.Describe(m.Err)),
			NoticeError)
	case m.Result.Empty():
		d.period = Ready(m.Result)
		d.Notice.Show("No Entries", "No journal entries found for the selected period.", NoticeInfo)
	default:
		d.period = Ready(m.Result)
		d.Notice.Show("Summary Generated",
			fmt.Sprintf("Generated summary for %d entries.", m.Result.EntryCount),
			NoticeSuccess)
	}
}

// HasSummaryData reports whether the summary loaded with a positive total.
func (d *Dashboard) HasSummaryData() bool {
	s, ok := d.summary.Value()
	return ok && s.Total > 0
}

// HasTrendData reports whether the trend series loaded with at least one
// point.
func (d *Dashboard) HasTrendData() bool {
	points, ok := d.trends.Value()
	return ok && len(points) > 0
}

// Empty reports whether both datasets loaded and neither has data. Only
// then is the single "no data" state shown.
func (d *Dashboard) Empty() bool {
	return d.summary.IsLoaded() && d.trends.IsLoaded() && !d.HasSummaryData() && !d.HasTrendData()
}
