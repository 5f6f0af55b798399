package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhath/ducky/internal/config"
)

// Exit codes
const (
	ExitOK         = 0
	ExitOpenFailed = 1
	ExitUsage      = 2
	ExitRuntime    = 3
)

var (
	cfgFile     string
	noInterface bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "ducky [DATABASE]",
	Short: "Keyboard-driven browser for DuckDB and SQLite files",
	Long: `ducky is a terminal UI for embedded analytical databases. It lists open
connections and their tables, previews table contents and imports CSV,
JSON and Parquet files into new tables.

Running 'ducky' without arguments starts with no connection; pass a
database file to open it immediately. With --no-interface the database is
opened, summarised on stdout and closed again.`,
	Args:          usageArgs(cobra.MaximumNArgs(1)),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		if noInterface {
			if path == "" {
				return withCode(ExitUsage, errors.New("--no-interface needs a DATABASE argument"))
			}
			log := newHeadlessLogger(cfg)
			return runHeadless(cmd.Context(), log, path, cmd.OutOrStdout())
		}
		return runTUI(cmd.Context(), cfg, path)
	},
}

// Execute runs the root command and reports errors on stderr
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "ducky:", err)
	}
	return err
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/ducky/config.toml)")
	rootCmd.Flags().BoolVarP(&noInterface, "no-interface", "I", false, "open DATABASE, print a summary and exit")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withCode(ExitUsage, err)
	})
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, withCode(ExitRuntime, fmt.Errorf("load config: %w", err))
	}
	return cfg, nil
}

// exitError carries the process exit code of a failed run
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// ExitCode maps an error returned by Execute to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitRuntime
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return withCode(ExitUsage, err)
		}
		return nil
	}
}
