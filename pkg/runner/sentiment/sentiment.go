// Package sentiment implements the report commands: the summary counts,
// the per-day trend calendar and narrative period summaries.
package sentiment

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/mindease/pkg/api"
	"tableflip.dev/mindease/pkg/app"
	"tableflip.dev/mindease/pkg/printers"
)

// Summary prints the per-sentiment counts.
type Summary struct {
	Backend  app.Backend
	Username string
	Out      io.Writer
	JSON     bool
}

func (s *Summary) Do(ctx context.Context) error {
	sum, err := s.Backend.SentimentSummary(ctx, s.Username)
	if err != nil {
		return fmt.Errorf("failed to load sentiment summary: %s", api.Describe(err))
	}
	if s.JSON {
		return printers.JSON(s.Out, sum)
	}
	pp := printers.PrettyPrint{Out: s.Out}
	pp.Title("Your Sentiment Snapshot")
	pp.Summary(sum)
	return nil
}

// Trends prints the per-day series as a calendar.
type Trends struct {
	Backend  app.Backend
	Username string
	Out      io.Writer
	JSON     bool
}

func (t *Trends) Do(ctx context.Context) error {
	points, err := t.Backend.SentimentTrends(ctx, t.Username)
	if err != nil {
		return fmt.Errorf("failed to load sentiment trends: %s", api.Describe(err))
	}
	if t.JSON {
		if points == nil {
			points = []api.TrendPoint{}
		}
		return printers.JSON(t.Out, points)
	}
	pp := printers.PrettyPrint{Out: t.Out}
	pp.Title("Sentiment Trends Over Time")
	pp.NewLine()
	pp.Trends(points...)
	return nil
}

// Period prints a narrative summary of the entries between Start and End.
type Period struct {
	Backend  app.Backend
	Username string
	Start    string
	End      string
	Out      io.Writer
	JSON     bool
}

func (p *Period) Do(ctx context.Context) error {
	start, end := strings.TrimSpace(p.Start), strings.TrimSpace(p.End)
	if err := app.ValidatePeriod(start, end); err != nil {
		return err
	}
	res, err := p.Backend.PeriodSummary(ctx, p.Username, start, end)
	if err != nil {
		return fmt.Errorf("failed to generate summary: %s", api.Describe(err))
	}
	if p.JSON {
		out := map[string]any{"start_date": res.Start, "end_date": res.End, "summary": res.Summary}
		if res.HasCount {
			out["entry_count"] = res.EntryCount
		}
		return printers.JSON(p.Out, out)
	}
	pp := printers.PrettyPrint{Out: p.Out}
	pp.Title("Narrative Summary for a Period")
	pp.Period(res)
	return nil
}
