package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/glorpus-work/dataprep/internal/cli"
	"github.com/glorpus-work/dataprep/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbosity  int
	quiet      bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataprep",
		Short: "Dataset acquisition and validation for the churn pipeline",
		Long: `dataprep prepares the raw data for the churn-prediction pipeline:
- fetch: download the dataset archive, extract it, write an integrity manifest
- check: validate the raw CSV against a fixed schema and sanity rules`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.InitLogger(verbosity, quiet)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: dataprep.yaml)")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "warnings and errors only, reduce download verbosity")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbosity = &verbosity
	cli.Quiet = &quiet

	// Add subcommands
	cmd.AddCommand(
		cli.NewFetchCmd(),
		cli.NewCheckCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
