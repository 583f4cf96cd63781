package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mindease/pkg/ask"
	"tableflip.dev/mindease/pkg/commands/options"
	"tableflip.dev/mindease/pkg/runner/journal"
)

func addEntries(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	so := &options.SessionOptions{}
	var (
		showID bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"ls", "list"},
		Short:   "List past journal entries, newest first.",
		Example: `
mindease entries
mindease entries --limit 5 --id
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			user, err := e.user(so)
			if err != nil {
				return oo.HandleError(err)
			}
			l := journal.List{
				Backend:  e.client,
				Username: user,
				ShowID:   showID,
				Limit:    limit,
				Out:      oo.Out,
				JSON:     oo.JSON,
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&showID, "id", false, "Show entry ids.")
	cmd.Flags().IntVar(&limit, "limit", 0, "Only show the newest N entries.")
	options.AddSessionArgs(cmd, so)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addWrite(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	so := &options.SessionOptions{}
	im := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "write [text]",
		Short: "Save a new journal entry.",
		Example: `
mindease write "Slept well and went for a run."
mindease write -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			user, err := e.user(so)
			if err != nil {
				return oo.HandleError(err)
			}
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" && im.Interactive {
				if text, err = ask.String("What's on your mind today?"); err != nil {
					return oo.HandleError(err)
				}
				ok, err := ask.Confirm("Save Entry", true)
				if err != nil {
					return oo.HandleError(err)
				}
				if !ok {
					return nil
				}
			}
			if strings.TrimSpace(text) == "" {
				return oo.HandleError(errors.New("entry text is required, pass it as an argument or use -i"))
			}
			w := journal.Write{
				Backend:  e.client,
				Username: user,
				Text:     text,
				Out:      oo.Out,
				JSON:     oo.JSON,
			}
			return oo.HandleError(w.Do(cmd.Context()))
		},
	}

	options.InteractiveArgs(cmd, im)
	options.AddSessionArgs(cmd, so)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addInsight(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	so := &options.SessionOptions{}

	cmd := &cobra.Command{
		Use:   "insight <id>",
		Short: "Ask for an insight on one entry.",
		Example: `
mindease insight 3
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			user, err := e.user(so)
			if err != nil {
				return oo.HandleError(err)
			}
			i := journal.Insight{
				Backend:  e.client,
				Username: user,
				ID:       args[0],
				Out:      oo.Out,
				JSON:     oo.JSON,
			}
			return oo.HandleError(i.Do(cmd.Context()))
		},
	}

	options.AddSessionArgs(cmd, so)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addRecalc(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	so := &options.SessionOptions{}

	cmd := &cobra.Command{
		Use:   "recalc <id>",
		Short: "Recalculate the sentiment of an unlabeled entry.",
		Long: options.Wrap80(`Recalculate the sentiment of an entry whose label is ` +
			`unknown. Entries that already have a sentiment are left alone.`),
		Example: `
mindease recalc 3
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			user, err := e.user(so)
			if err != nil {
				return oo.HandleError(err)
			}
			r := journal.Recalc{
				Backend:  e.client,
				Username: user,
				ID:       args[0],
				Out:      oo.Out,
				JSON:     oo.JSON,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddSessionArgs(cmd, so)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addPrompt(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	so := &options.SessionOptions{}

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Suggest something to write about.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			user, err := e.user(so)
			if err != nil {
				return oo.HandleError(err)
			}
			p := journal.Prompt{
				Backend:  e.client,
				Username: user,
				Out:      oo.Out,
				JSON:     oo.JSON,
			}
			return oo.HandleError(p.Do(cmd.Context()))
		},
	}

	options.AddSessionArgs(cmd, so)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
