// Package main provides the CLI entrypoint for source-irfitter.
//
// source-irfitter pairs every node of compiled IR symbol trees with the
// source declaration it came from:
//   - match: run the engine over Source and IR tree files and export records
//   - validate: check tree files for structural and signature problems
//   - gosource: build Source trees from Go packages
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"source-irfitter/internal/config"
	"source-irfitter/internal/observability"
)

// Set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "source-irfitter",
		Short: "Match compiled IR symbols back to their source declarations",
		Long: `source-irfitter builds a correspondence between IR symbol trees and
Source symbol trees, ranking every pairing by confidence.

Commands:
  match     Match IR trees against Source trees
  validate  Check tree files
  gosource  Build Source trees from Go packages`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: ./irfitter.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text or json")

	rootCmd.AddCommand(newMatchCmd(opts))
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newGoSourceCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// load reads the config file and applies the persistent flag overrides.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}

	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	return observability.NewLogger(w, cfg.Logging.Level, cfg.Logging.Format)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "source-irfitter %s (commit: %s)\n", version, commit)
		},
	}
}
