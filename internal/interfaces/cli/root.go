// Package cli implements the justicectl administration commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BackCheck/justice-unveiled/internal/config"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/logging"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
)

// RootOptions holds the persistent flags shared by every subcommand.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

// CLIContext carries the loaded configuration and logger into subcommands.
type CLIContext struct {
	Config *config.Config
	Logger logging.Logger
}

// NewRootCommand builds the justicectl root with all subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cliCtx := &CLIContext{}

	cmd := &cobra.Command{
		Use:     "justicectl",
		Short:   "Administration CLI for the claim-evidence correlation backend",
		Long:    "justicectl manages the human-rights case backend: database migrations,\nevidence requirement seeding, and offline case analysis.",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(opts, cliCtx)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: environment only)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newMigrateCommand(cliCtx),
		newSeedCommand(cliCtx),
		newAnalyzeCommand(cliCtx),
	)
	return cmd
}

func setup(opts *RootOptions, cliCtx *CLIContext) error {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:  opts.LogLevel,
		Format: "console",
	})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	cliCtx.Config = cfg
	cliCtx.Logger = logger
	return nil
}
