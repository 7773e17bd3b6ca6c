// Package cli implements the Skibidi Cash command-line interface.
//
// This package uses global variables to manage CLI state, which is the standard
// pattern for Cobra-based CLI applications. Per-invocation dependencies are
// built in PersistentPreRunE and released once the command returns.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/config"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/metrics"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/output"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/version"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

var (
	// Global flags
	homeDir      string
	outputFormat string
	verbose      bool
	walletRef    string

	helpOnce sync.Once

	// lastFormat is remembered so Execute can render errors consistently.
	lastFormat = output.FormatText
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "skibidi",
	Short: "A friendly Bitcoin wallet for your terminal",
	Long: `Skibidi Cash is a Bitcoin wallet client. Keys are generated and held by
the Skibidi backend; this tool keeps your wallet list, shows balances and
history, and walks you through creating or restoring a wallet.

Example:
  skibidi wallet create
  skibidi balance
  skibidi send --to tb1q... --amount 5000
  skibidi watch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initGlobals(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	helpOnce.Do(func() { walkCommands(rootCmd, enrichParentLong) })

	cmd, err := rootCmd.ExecuteC()
	cleanup(cmd)
	if err != nil {
		_ = output.FormatError(rootCmd.ErrOrStderr(), err, lastFormat)
		return err
	}
	return nil
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	return skerr.ExitCode(err)
}

// initGlobals loads configuration, applies environment and flag overrides and
// attaches a CommandContext to cmd.
func initGlobals(cmd *cobra.Command) error {
	home := homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}
	home = config.ExpandHome(home)

	cfg, err := config.Load(config.Path(home))
	if err != nil {
		// Use defaults if config doesn't exist
		cfg = config.Defaults()
		cfg.Home = home
	}

	if err = config.ApplyEnvironment(cfg); err != nil {
		return skerr.Wrap(skerr.ErrConfigInvalid, "%v", err)
	}

	// Command-line flags win over file and environment.
	if homeDir != "" {
		cfg.Home = homeDir
	}
	if verbose {
		cfg.Output.Verbose = true
		cfg.Logging.Level = "debug"
	}
	if outputFormat != "" && outputFormat != string(output.FormatAuto) {
		cfg.Output.DefaultFormat = outputFormat
	}
	if cfg.Logging.File == config.Defaults().Logging.File {
		cfg.Logging.File = filepath.Join(cfg.GetHome(), "skibidi.log")
	}

	formatter := output.NewFormatter(output.ParseFormat(cfg.GetOutputFormat()), cmd.OutOrStdout())
	lastFormat = formatter.Format()

	if err = cfg.Validate(); err != nil {
		return err
	}

	logger, err := config.NewLogger(config.ParseLogLevel(cfg.GetLoggingLevel()), cfg.GetLoggingFile())
	if err != nil {
		// Use null logger if we can't create the file
		logger = config.NullLogger()
	}
	logger.Debug("%s home=%s backend=%s", version.Get().String(), cfg.GetHome(), cfg.GetBackendURL())

	SetCmdContext(cmd, &CommandContext{
		Cfg:     cfg,
		Log:     logger,
		Fmt:     formatter,
		Metrics: &metrics.Metrics{},
		Out:     cmd.OutOrStdout(),
		Err:     cmd.ErrOrStderr(),
	})
	return nil
}

// cleanup releases resources held by the command context. It runs even when
// the command failed.
func cleanup(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cc := GetCmdContext(cmd)
	if cc == nil {
		return
	}
	if err := cc.Close(); err != nil {
		cc.Log.Error("cleanup: %v", err)
	}
	_ = cc.Log.Close()
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "skibidi data directory (default: ~/.skibidi)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: text, json, auto")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&walletRef, "wallet", "", "wallet id or name to use instead of the default selection")

	rootCmd.Version = version.Get().String()
}
