package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/mindease/pkg/api"
	"tableflip.dev/mindease/pkg/commands/options"
	"tableflip.dev/mindease/pkg/config"
	"tableflip.dev/mindease/pkg/logging"
)

// env is loaded once per invocation, before any subcommand runs.
type env struct {
	backendURL string
	logLevel   string
	verbose    bool

	cfg    *config.Config
	log    *zap.Logger
	client *api.Client
}

func (e *env) load() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if u := strings.TrimSpace(e.backendURL); u != "" {
		cfg.BackendURL = u
	}
	if l := strings.TrimSpace(e.logLevel); l != "" {
		cfg.LogLevel = l
	}

	opts := logging.Options{File: cfg.LogFile, Level: cfg.LogLevel}
	if e.verbose {
		opts.Console = os.Stderr
	}
	log, err := logging.New(opts)
	if err != nil {
		return err
	}

	apiOpts := []api.Option{api.WithLogger(logging.Named(log, "api"))}
	if cfg.RequestTimeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.RequestTimeout))
	}
	client, err := api.New(cfg.BackendURL, apiOpts...)
	if err != nil {
		return err
	}

	e.cfg, e.log, e.client = cfg, log, client
	return nil
}

// user returns the journal owner for a command.
func (e *env) user(so *options.SessionOptions) (string, error) {
	return so.Resolve(e.cfg.Username)
}

func (e *env) sync() {
	if e.log != nil {
		_ = e.log.Sync()
	}
}

func New() *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:   "mindease",
		Short: options.Wrap80("Journal your day and follow your mood, on the command line."),
		Long: options.Wrap80(`MindEase keeps a private journal on a MindEase backend. Entries get a ` +
			`sentiment label, an on demand insight and appear in the sentiment reports. ` +
			`Run "mindease ui" for the full screen interface.`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&e.backendURL, "backend", "",
		fmt.Sprintf("Backend base URL, overrides %s in the config file.", config.KeyBackendURL))
	cmd.PersistentFlags().StringVar(&e.logLevel, "log-level", "",
		"Log level: debug, info, warn or error.")
	cmd.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false,
		"Mirror log records to stderr.")

	AddCommands(cmd, e)
	return cmd
}

func AddCommands(topLevel *cobra.Command, e *env) {
	addStatus(topLevel, e)
	addLogin(topLevel, e)
	addRegister(topLevel, e)
	addLogout(topLevel, e)
	addPasswd(topLevel, e)
	addEntries(topLevel, e)
	addWrite(topLevel, e)
	addInsight(topLevel, e)
	addRecalc(topLevel, e)
	addPrompt(topLevel, e)
	addSummary(topLevel, e)
	addTrends(topLevel, e)
	addPeriod(topLevel, e)
	addUI(topLevel, e)
	addMCP(topLevel, e)
	addMock(topLevel, e)
	addVersion(topLevel)
	addCompletions(topLevel)
}
