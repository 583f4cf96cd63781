package commands

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"tableflip.dev/mindease/pkg/commands/options"
	"tableflip.dev/mindease/pkg/logging"
	"tableflip.dev/mindease/pkg/runner/mock"
)

func addMock(topLevel *cobra.Command, e *env) {
	m := &mock.Mock{}

	cmd := &cobra.Command{
		Use:   "mock-backend",
		Short: "run an in-memory backend for development",
		Long: options.Wrap80(`Serve the MindEase backend routes from memory. Accounts and ` +
			`entries are lost when the process exits. Sentiment, insights and ` +
			`summaries are canned.`),
		Example: `
mindease mock-backend
mindease mock-backend --addr 127.0.0.1:5001 --seed-user demo --seed-password demo
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m.Logger = logging.Named(e.log, "mockbackend")
			m.OnListening = func(a net.Addr) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Mock backend listening on http://%s\n", a)
			}
			return m.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&m.Addr, "addr", "127.0.0.1:5000", "address to listen on")
	cmd.Flags().StringVar(&m.SeedUser, "seed-user", "", "create this account with a few sample entries")
	cmd.Flags().StringVar(&m.SeedPassword, "seed-password", "", "password for --seed-user")

	topLevel.AddCommand(cmd)
}
