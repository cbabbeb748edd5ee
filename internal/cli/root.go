package cli

import (
	"fmt"
	"os"

	"f1-race-analysis/internal/app"
	"f1-race-analysis/internal/config"
	"f1-race-analysis/internal/logger"

	"github.com/spf13/cobra"
)

// ExitInternal is the exit code for any failure
const ExitInternal = 10

// GlobalOptions holds the command line overrides
type GlobalOptions struct {
	ConfigPath  string
	Season      int
	LogLevel    string
	JSONLogs    bool
	Viewer      string
	Interpreter string
}

// runApp starts the GUI. Replaced in tests.
var runApp = func(cfg *config.Config, log logger.Logger) error {
	application, err := app.NewApplication(cfg, log)
	if err != nil {
		return err
	}
	return application.Run()
}

func newRootCmd() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   "f1-race-analysis",
		Short: "Browse the F1 calendar and replay sessions",
		Long: `f1-race-analysis opens a window listing every event of a season.
Selecting an event and a session starts the telemetry viewer for it; the
window hides while the viewer runs and comes back when it exits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}

			log, err := logger.New(logger.Options{
				Level:   cfg.LogLevel,
				JSON:    cfg.JSONLogs,
				App:     app.AppName,
				Version: app.Version,
			})
			if err != nil {
				return err
			}

			return runApp(cfg, log)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Path to a config file (or use .f1ra/config.yaml)")
	cmd.Flags().IntVar(&opts.Season, "season", 0, "Season selected at startup (default current year)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.Flags().BoolVar(&opts.JSONLogs, "json-logs", false, "Write JSON logs instead of console output")
	cmd.Flags().StringVar(&opts.Viewer, "viewer", "", "Viewer entry point")
	cmd.Flags().StringVar(&opts.Interpreter, "interpreter", "", "Interpreter used to run the viewer entry point")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

// resolveConfig loads the configuration and applies flags that were set
func resolveConfig(cmd *cobra.Command, opts *GlobalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("season") {
		cfg.CurrentSeason = opts.Season
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.LogLevel
	}
	if flags.Changed("json-logs") {
		cfg.JSONLogs = opts.JSONLogs
	}
	if flags.Changed("viewer") {
		cfg.Viewer.EntryPoint = config.ExpandPath(opts.Viewer, "")
	}
	if flags.Changed("interpreter") {
		cfg.Viewer.Interpreter = opts.Interpreter
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app.AppName, app.Version)
		},
	}
}

// Execute runs the root command
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitInternal)
	}
}
