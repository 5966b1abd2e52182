package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"olistInsights/pkg/config"
	"olistInsights/pkg/logger"
	"olistInsights/pkg/metrics"

	"github.com/spf13/cobra"
)

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "olist",
	Short: "Analytics over the Olist Brazilian e-commerce dataset",
	Long: `olist loads the public Olist e-commerce CSV export, optionally stores it
in PostgreSQL, and reports fourteen business metrics in four groups:

  revenue    totals, monthly revenue, top categories, order values, weekdays
  customer   top states and cities, repeat rate, spend tiers
  delivery   delivery times, review scores, timeliness, worst categories
  payment    payment method breakdown

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		logger.Init(cfg.App.Environment)
		metrics.Init()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute runs the command tree with a context cancelled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
