package bootstrap

import (
	"context"
	"fmt"

	"olistInsights/business/analytics"
	"olistInsights/business/dataset"
	"olistInsights/business/report"
	"olistInsights/domain"
	"olistInsights/internal/repository/csvfile"
	psqlRepo "olistInsights/internal/repository/postgres"
	redisRepo "olistInsights/internal/repository/redis"
	"olistInsights/pkg/apperrors"
	"olistInsights/pkg/config"
	"olistInsights/pkg/database"
	redisClient "olistInsights/pkg/database/redis"
	"olistInsights/pkg/logger"

	"gorm.io/gorm"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type SourceOptions struct {
	Source  string
	Engine  string
	DataDir string
}

// Opened is a loaded report source together with the resources it holds.
type Opened struct {
	Source report.Source
	db     *gorm.DB
}

func (o *Opened) Close() {
	if o.db == nil {
		return
	}
	if err := database.ClosePostgres(o.db); err != nil {
		logger.Warn("failed to close database", "error", err)
	}
}

// OpenSource loads the dataset from CSV files or Postgres and pairs it with
// the requested metric engine. The sql engine needs the postgres source.
func OpenSource(ctx context.Context, cfg *config.Config, opts SourceOptions) (*Opened, error) {
	if opts.Source == "" {
		opts.Source = SourceCSV
	}
	if opts.Engine == "" {
		opts.Engine = analytics.EngineMemory
	}
	if opts.DataDir == "" {
		opts.DataDir = cfg.Dataset.Dir
	}

	switch opts.Engine {
	case analytics.EngineMemory, analytics.EngineSQL:
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownEngine, opts.Engine)
	}

	switch opts.Source {
	case SourceCSV:
		if opts.Engine == analytics.EngineSQL {
			return nil, fmt.Errorf("%w: the sql engine requires the postgres source", apperrors.ErrUnknownEngine)
		}
		loaded, err := dataset.NewDatasetService(csvfile.NewReader(opts.DataDir), nil).Load(ctx)
		if err != nil {
			return nil, err
		}
		return &Opened{Source: memorySource(loaded)}, nil

	case SourcePostgres:
		db, err := connect(cfg)
		if err != nil {
			return nil, err
		}
		loaded, err := dataset.NewDatasetService(psqlRepo.NewDatasetRepository(db, cfg.Database.BatchSize), nil).Load(ctx)
		if err != nil {
			_ = database.ClosePostgres(db)
			return nil, err
		}

		opened := &Opened{Source: memorySource(loaded), db: db}
		if opts.Engine == analytics.EngineSQL {
			opened.Source.Calc = psqlRepo.NewMetricsRepository(db)
			opened.Source.Engine = analytics.EngineSQL
		}
		return opened, nil
	}

	return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownSource, opts.Source)
}

// ImportDataset loads the CSV directory, migrates the schema and replaces
// the stored tables with it.
func ImportDataset(ctx context.Context, cfg *config.Config, dataDir string) (domain.DatasetCounts, error) {
	if dataDir == "" {
		dataDir = cfg.Dataset.Dir
	}

	loaded, err := dataset.NewDatasetService(csvfile.NewReader(dataDir), nil).Load(ctx)
	if err != nil {
		return domain.DatasetCounts{}, err
	}
	ds := loaded.Dataset

	db, err := connect(cfg)
	if err != nil {
		return domain.DatasetCounts{}, err
	}
	defer func() {
		if err := database.ClosePostgres(db); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}()

	if err := database.RunMigrations(db, cfg.Database.MigrationsDir); err != nil {
		return domain.DatasetCounts{}, err
	}

	if err := psqlRepo.NewDatasetRepository(db, cfg.Database.BatchSize).Import(ctx, ds); err != nil {
		return domain.DatasetCounts{}, err
	}

	invalidateReports(ctx, cfg)

	counts := ds.Counts()
	logger.Info("dataset imported", "orders", counts.Orders, "order_items", counts.OrderItems, "reviews", counts.Reviews)
	return counts, nil
}

// invalidateReports drops reports cached against the previous import. A
// missing or unreachable Redis is only logged.
func invalidateReports(ctx context.Context, cfg *config.Config) {
	if !cfg.Redis.Enabled() {
		return
	}

	client, err := redisClient.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("skipping report cache invalidation", "error", err)
		return
	}
	defer func() {
		if err := redisClient.CloseRedisClient(client); err != nil {
			logger.Warn("failed to close redis", "error", err)
		}
	}()

	if err := redisRepo.NewReportCache(client, cfg.Redis.ReportTTL).Invalidate(ctx); err != nil {
		logger.Warn("failed to invalidate cached reports", "error", err)
		return
	}
	logger.Info("cached reports invalidated")
}

func connect(cfg *config.Config) (*gorm.DB, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	return database.InitPostgres(cfg)
}

func memorySource(loaded dataset.Loaded) report.Source {
	return report.Source{
		Calc:      analytics.NewMemoryEngine(loaded.Dataset),
		Engine:    analytics.EngineMemory,
		Rows:      loaded.Dataset.Counts(),
		Integrity: loaded.Integrity,
		Digest:    loaded.Digest,
	}
}

// NewReportService builds the report service for source, caching reports in
// Redis when it is configured and reachable.
func NewReportService(ctx context.Context, cfg *config.Config, source report.Source) (*report.ReportService, func()) {
	builder := analytics.NewAnalyticsService(cfg.MetricOptions(), cfg.Dataset.Parallel)
	cleanup := func() {}

	var cache report.ReportCache
	if cfg.Redis.Enabled() {
		client, err := redisClient.NewRedisClient(ctx, cfg)
		if err != nil {
			logger.Warn("report cache disabled", "error", err)
		} else {
			cache = redisRepo.NewReportCache(client, cfg.Redis.ReportTTL)
			cleanup = func() {
				if err := redisClient.CloseRedisClient(client); err != nil {
					logger.Warn("failed to close redis", "error", err)
				}
			}
			logger.Info("report cache enabled", "ttl", cfg.Redis.ReportTTL)
		}
	}

	return report.NewReportService(builder, source, cache, cfg.MetricOptions()), cleanup
}
