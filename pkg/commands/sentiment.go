package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/mindease/pkg/commands/options"
	"tableflip.dev/mindease/pkg/runner/sentiment"
)

func addSummary(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	so := &options.SessionOptions{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Count entries per sentiment.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			user, err := e.user(so)
			if err != nil {
				return oo.HandleError(err)
			}
			s := sentiment.Summary{
				Backend:  e.client,
				Username: user,
				Out:      oo.Out,
				JSON:     oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddSessionArgs(cmd, so)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTrends(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	so := &options.SessionOptions{}

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Show the sentiment of each journaled day as a calendar.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			user, err := e.user(so)
			if err != nil {
				return oo.HandleError(err)
			}
			t := sentiment.Trends{
				Backend:  e.client,
				Username: user,
				Out:      oo.Out,
				JSON:     oo.JSON,
			}
			return oo.HandleError(t.Do(cmd.Context()))
		},
	}

	options.AddSessionArgs(cmd, so)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addPeriod(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	so := &options.SessionOptions{}
	po := &options.PeriodOptions{}

	cmd := &cobra.Command{
		Use:   "period",
		Short: "Summarize the entries written in a date range.",
		Example: `
mindease period --start 2024-01-01 --end 2024-01-31
mindease period --days 7
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			user, err := e.user(so)
			if err != nil {
				return oo.HandleError(err)
			}
			start, end, err := po.Range(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			p := sentiment.Period{
				Backend:  e.client,
				Username: user,
				Start:    start,
				End:      end,
				Out:      oo.Out,
				JSON:     oo.JSON,
			}
			return oo.HandleError(p.Do(cmd.Context()))
		},
	}

	options.AddPeriodArgs(cmd, po)
	options.AddSessionArgs(cmd, so)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
