package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mindease/pkg/logging"
	"tableflip.dev/mindease/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
mindease ui
mindease ui --backend http://localhost:5000
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			i := ui.UI{
				Backend:  e.client,
				Identity: e.cfg,
				Username: e.cfg.Username,
				Logger:   logging.Named(e.log, "ui"),
			}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
