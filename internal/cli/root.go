package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stockflow/dashboard/internal/pkg/config"
	"github.com/stockflow/dashboard/pkg/logger"
)

// RootOptions holds state shared by every command.
type RootOptions struct {
	Verbose bool
	EnvFile string

	// Config is loaded from the environment before any subcommand runs.
	Config *config.Config
}

// NewRootCommand creates the root command for the StockFlow CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "stockflow",
		Short: "StockFlow dashboard shell service",
		Long:  "Serves the StockFlow session, route guard and dashboard shell, and inspects the persisted session.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnvFile(opts.EnvFile); err != nil {
				return err
			}
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			opts.Config = cfg

			level := cfg.LogLevel
			if opts.Verbose {
				level = "debug"
			}
			logger.Init(logger.Options{
				Level:   level,
				Pretty:  !cfg.Production(),
				Output:  cmd.ErrOrStderr(),
				Service: "stockflow",
			})
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "dotenv file to load before reading the environment (default .env if present)")

	// Add subcommands
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewHealthcheckCommand(opts))
	cmd.AddCommand(NewSessionCommand(opts))

	return cmd
}

// Execute runs the root command and reports a failure on stderr.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		return 1
	}
	return 0
}
