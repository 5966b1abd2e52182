package cmd

import (
	"olistInsights/app/bootstrap"
	httpMetrics "olistInsights/app/echo-server/metrics"
	"olistInsights/app/echo-server/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reports over HTTP",
	Long: `Serve loads the dataset once and exposes /health, /metrics and the
/api/v1/reports endpoints. Reports are cached in Redis when REDIS_HOST is set
and require a bearer token when JWT_SECRET is set.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveFlags struct {
	source  string
	engine  string
	dataDir string
	port    string
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.source, "source", "", "Dataset source: csv or postgres (default DATASET_SOURCE)")
	f.StringVar(&serveFlags.engine, "engine", "", "Metric engine: memory or sql (default REPORT_ENGINE)")
	f.StringVarP(&serveFlags.dataDir, "data-dir", "d", "", "Directory holding the Olist CSV files (default DATASET_DIR)")
	f.StringVarP(&serveFlags.port, "port", "p", "", "Listen port (default PORT)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	httpMetrics.Init()

	if serveFlags.port != "" {
		cfg.Server.Port = serveFlags.port
	}

	return server.Serve(cmd.Context(), cfg, bootstrap.SourceOptions{
		Source:  pick(serveFlags.source, cfg.Dataset.Source),
		Engine:  pick(serveFlags.engine, cfg.Dataset.Engine),
		DataDir: pick(serveFlags.dataDir, cfg.Dataset.Dir),
	})
}
