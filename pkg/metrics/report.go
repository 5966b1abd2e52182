package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Time spent computing one metric group
	MetricGroupDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "olist_metric_group_duration_seconds",
		Help:    "Duration of one metric group computation",
		Buckets: prometheus.DefBuckets,
	}, []string{"group", "engine"})

	// Reports assembled, by outcome
	ReportsBuilt = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "olist_reports_built_total",
		Help: "Total number of reports built",
	}, []string{"engine", "outcome"})

	// Rows held by the last loaded dataset
	DatasetRows = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "olist_dataset_rows",
		Help: "Rows per entity in the last loaded dataset",
	}, []string{"entity"})

	// Orphan rows found by the integrity check
	OrphanRows = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "olist_dataset_orphan_rows",
		Help: "Child rows whose parent row is missing, by relation",
	}, []string{"relation"})

	// Rows dropped at load for repeating an identity key
	DuplicateRows = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "olist_dataset_duplicate_rows",
		Help: "Rows dropped because an earlier row had the same key, by table",
	}, []string{"table"})

	// Duration of a full dataset load
	DatasetLoadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "olist_dataset_load_duration_seconds",
		Help:    "Duration of a full dataset load",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	// Report cache lookups, hit or miss
	ReportCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "olist_report_cache_lookups_total",
		Help: "Report cache lookups by result",
	}, []string{"result"})
)

var registerOnce sync.Once

// Init registers the collectors with the default registry. Repeated calls
// are no-ops.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			MetricGroupDuration,
			ReportsBuilt,
			DatasetRows,
			OrphanRows,
			DuplicateRows,
			DatasetLoadDuration,
			ReportCacheLookups,
		)
	})
}
