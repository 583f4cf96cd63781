package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mindease/pkg/ask"
	"tableflip.dev/mindease/pkg/commands/options"
	"tableflip.dev/mindease/pkg/runner/account"
)

func addStatus(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the backend and database connection.",
		Example: `
mindease status
mindease status --backend http://localhost:5000 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			s := account.Status{
				Backend: e.client,
				Out:     oo.Out,
				JSON:    oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

type credentials struct {
	username string
	password string
}

func addCredentialArgs(cmd *cobra.Command, c *credentials) {
	cmd.Flags().StringVarP(&c.username, "username", "n", "",
		"Account name. Prompted for when missing.")
	cmd.Flags().StringVarP(&c.password, "password", "p", "",
		"Account password. Prompted for when missing.")
}

func promptCredentials(cmd *cobra.Command) error {
	return ask.Flags(cmd.Flags(),
		ask.Field{Flag: "username", Label: "Username"},
		ask.Field{Flag: "password", Label: "Password", Secret: true},
	)
}

func addLogin(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	c := &credentials{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the user for later commands.",
		Example: `
mindease login
mindease login --username alice --password secret
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			if err := promptCredentials(cmd); err != nil {
				return oo.HandleError(err)
			}
			l := account.Login{
				Backend:  e.client,
				Identity: e.cfg,
				Username: c.username,
				Password: c.password,
				Out:      oo.Out,
				JSON:     oo.JSON,
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	addCredentialArgs(cmd, c)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addRegister(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	c := &credentials{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account.",
		Long: options.Wrap80(`Create a new account on the backend. Registering does ` +
			`not log you in; run "mindease login" afterwards.`),
		Example: `
mindease register --username alice
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			if err := promptCredentials(cmd); err != nil {
				return oo.HandleError(err)
			}
			l := account.Login{
				Backend:  e.client,
				Identity: e.cfg,
				Username: c.username,
				Password: c.password,
				Register: true,
				Out:      oo.Out,
				JSON:     oo.JSON,
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	addCredentialArgs(cmd, c)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the remembered user.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := account.Logout{
				Identity: e.cfg,
				Out:      cmd.OutOrStdout(),
			}
			return l.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

func addPasswd(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	so := &options.SessionOptions{}
	var current, next, confirm string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the account password.",
		Example: `
mindease passwd
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			user, err := e.user(so)
			if err != nil {
				return oo.HandleError(err)
			}
			if err := ask.Flags(cmd.Flags(),
				ask.Field{Flag: "old-password", Label: "Current Password", Secret: true},
				ask.Field{Flag: "new-password", Label: "New Password", Secret: true},
				ask.Field{Flag: "confirm-password", Label: "Confirm New Password", Secret: true},
			); err != nil {
				return oo.HandleError(err)
			}
			p := account.Passwd{
				Backend:     e.client,
				Username:    user,
				OldPassword: current,
				NewPassword: next,
				Confirm:     confirm,
				Out:         oo.Out,
				JSON:        oo.JSON,
			}
			return oo.HandleError(p.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&current, "old-password", "", "Current password.")
	cmd.Flags().StringVar(&next, "new-password", "", "New password.")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "New password again.")
	options.AddSessionArgs(cmd, so)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
