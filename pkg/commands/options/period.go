package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const layoutISO = "2006-01-02"

// PeriodOptions
type PeriodOptions struct {
	Start string
	End   string
	Days  int
}

func AddPeriodArgs(cmd *cobra.Command, o *PeriodOptions) {
	cmd.Flags().StringVar(&o.Start, "start", "",
		`First day of the period, example: --start="2024-01-01".`)
	cmd.Flags().StringVar(&o.End, "end", "",
		`Last day of the period, example: --end="2024-01-31". Defaults to today with --days.`)
	cmd.Flags().IntVar(&o.Days, "days", 0,
		Wrap80("Summarize the last N days ending on --end (or today) instead of giving --start."))
}

// Range returns the start and end dates. With Days set and no Start, the
// range covers the Days days ending on End, or today when End is empty.
func (o *PeriodOptions) Range(now time.Time) (string, string, error) {
	start, end := strings.TrimSpace(o.Start), strings.TrimSpace(o.End)
	if o.Days < 0 {
		return "", "", fmt.Errorf("--days must not be negative")
	}
	if o.Days == 0 || start != "" {
		return start, end, nil
	}
	last := now
	if end != "" {
		t, err := time.Parse(layoutISO, end)
		if err != nil {
			return "", "", fmt.Errorf("--end: %w", err)
		}
		last = t
	}
	first := last.AddDate(0, 0, -(o.Days - 1))
	return first.Format(layoutISO), last.Format(layoutISO), nil
}
