package cmd

import (
	"fmt"

	"olistInsights/app/bootstrap"
	"olistInsights/business/analytics"
	"olistInsights/internal/render"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute the metric groups and print the report",
	Long: `Report loads the dataset, runs the requested metric groups and prints
them as text tables or JSON. Any load or query failure aborts the run.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var reportFlags struct {
	source     string
	engine     string
	dataDir    string
	format     string
	groups     []string
	topN       int
	minReviews int
	parallel   bool
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportFlags.source, "source", "", "Dataset source: csv or postgres (default DATASET_SOURCE)")
	f.StringVar(&reportFlags.engine, "engine", "", "Metric engine: memory or sql (default REPORT_ENGINE)")
	f.StringVarP(&reportFlags.dataDir, "data-dir", "d", "", "Directory holding the Olist CSV files (default DATASET_DIR)")
	f.StringVarP(&reportFlags.format, "format", "f", render.FormatText, "Output format: text or json")
	f.StringSliceVarP(&reportFlags.groups, "group", "g", nil, "Metric groups to run: revenue, customer, delivery, payment (default all)")
	f.IntVar(&reportFlags.topN, "top", 0, "Rows kept by ranked metrics (default REPORT_TOP_N)")
	f.IntVar(&reportFlags.minReviews, "min-reviews", 0, "Minimum reviews for the worst categories metric (default REPORT_MIN_REVIEWS)")
	f.BoolVar(&reportFlags.parallel, "parallel", false, "Run metric groups concurrently")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	switch reportFlags.format {
	case render.FormatText, render.FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q", reportFlags.format)
	}

	source := pick(reportFlags.source, cfg.Dataset.Source)
	engine := pick(reportFlags.engine, cfg.Dataset.Engine)

	opened, err := bootstrap.OpenSource(ctx, cfg, bootstrap.SourceOptions{
		Source:  source,
		Engine:  engine,
		DataDir: pick(reportFlags.dataDir, cfg.Dataset.Dir),
	})
	if err != nil {
		return err
	}
	defer opened.Close()

	opts := cfg.MetricOptions()
	if reportFlags.topN > 0 {
		opts.TopN = reportFlags.topN
	}
	if reportFlags.minReviews > 0 {
		opts.MinReviews = reportFlags.minReviews
	}
	parallel := cfg.Dataset.Parallel || reportFlags.parallel

	builder := analytics.NewAnalyticsService(opts, parallel)
	report, err := builder.BuildReport(ctx, opened.Source.Calc, analytics.ReportRequest{
		Engine:    opened.Source.Engine,
		Groups:    reportFlags.groups,
		Rows:      opened.Source.Rows,
		Integrity: opened.Source.Integrity,
	})
	if err != nil {
		return err
	}

	return render.Write(cmd.OutOrStdout(), reportFlags.format, report)
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
