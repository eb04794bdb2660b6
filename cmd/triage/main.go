// Command triage is the thin driver over the invoice exception-handling
// pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/apexfin/invoice-triage/internal/config"
	"github.com/apexfin/invoice-triage/internal/pipeline"
	"github.com/apexfin/invoice-triage/pkg/utils"
)

type app struct {
	cfgPath  string
	repoRoot string
	logLevel string

	cfg    *config.Config
	logger *zap.Logger
	pipe   *pipeline.Pipeline
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "triage",
		Short:         "Accounts-payable invoice exception-handling pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&a.repoRoot, "repo", "", "document repository root (overrides config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides config)")

	root.AddCommand(newProcessCmd(a))
	root.AddCommand(newBatchCmd(a))
	root.AddCommand(newQueuesCmd(a))
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.repoRoot != "" {
		cfg.Repo.Root = a.repoRoot
	}
	if a.logLevel != "" {
		cfg.Logger.Level = a.logLevel
	}
	a.cfg = cfg

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	a.pipe = pipeline.New(cfg, logger)
	return nil
}
