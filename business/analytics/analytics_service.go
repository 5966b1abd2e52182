package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"olistInsights/domain"
	"olistInsights/pkg/apperrors"
	"olistInsights/pkg/logger"
	"olistInsights/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type ReportRequest struct {
	Engine    string
	Groups    []string
	Rows      domain.DatasetCounts
	Integrity domain.IntegrityReport
}

type AnalyticsService struct {
	opts     domain.MetricOptions
	parallel bool
	now      func() time.Time
}

func NewAnalyticsService(opts domain.MetricOptions, parallel bool) *AnalyticsService {
	return &AnalyticsService{
		opts:     opts.WithDefaults(),
		parallel: parallel,
		now:      time.Now,
	}
}

// BuildReport runs the requested groups (all of them when req.Groups is
// empty) against calc. Any group failure fails the whole report.
func (s *AnalyticsService) BuildReport(ctx context.Context, calc Calculator, req ReportRequest) (domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return domain.Report{}, fmt.Errorf("context error: %w", err)
	}

	groups := req.Groups
	if len(groups) == 0 {
		groups = domain.Groups
	}
	for _, g := range groups {
		if !domain.IsGroup(g) {
			return domain.Report{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownGroup, g)
		}
	}

	report := domain.Report{
		RunID:       uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		Engine:      req.Engine,
		Rows:        req.Rows,
		Integrity:   req.Integrity,
	}

	var mu sync.Mutex
	run := func(ctx context.Context, group string) error {
		start := time.Now()
		err := s.runGroup(ctx, calc, group, &report, &mu)
		elapsed := time.Since(start)
		metrics.MetricGroupDuration.WithLabelValues(group, req.Engine).Observe(elapsed.Seconds())
		if err != nil {
			logger.Error("metric group failed", "group", group, "engine", req.Engine, "error", err)
			return fmt.Errorf("%s metrics: %w", group, err)
		}
		logger.Debug("metric group computed", "group", group, "engine", req.Engine, "elapsed", elapsed)
		return nil
	}

	var err error
	if s.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for _, group := range groups {
			g.Go(func() error { return run(gctx, group) })
		}
		err = g.Wait()
	} else {
		for _, group := range groups {
			if err = run(ctx, group); err != nil {
				break
			}
		}
	}

	if err != nil {
		metrics.ReportsBuilt.WithLabelValues(req.Engine, "error").Inc()
		return domain.Report{}, err
	}

	metrics.ReportsBuilt.WithLabelValues(req.Engine, "ok").Inc()
	logger.Info("report built", "run_id", report.RunID, "engine", req.Engine, "groups", len(groups))

	return report, nil
}

func (s *AnalyticsService) runGroup(ctx context.Context, calc Calculator, group string, report *domain.Report, mu *sync.Mutex) error {
	switch group {
	case domain.GroupRevenue:
		res, err := calc.RevenueMetrics(ctx, s.opts)
		if err != nil {
			return err
		}
		mu.Lock()
		report.Revenue = res
		mu.Unlock()
	case domain.GroupCustomer:
		res, err := calc.CustomerMetrics(ctx, s.opts)
		if err != nil {
			return err
		}
		mu.Lock()
		report.Customer = res
		mu.Unlock()
	case domain.GroupDelivery:
		res, err := calc.DeliveryMetrics(ctx, s.opts)
		if err != nil {
			return err
		}
		mu.Lock()
		report.Delivery = res
		mu.Unlock()
	case domain.GroupPayment:
		res, err := calc.PaymentMetrics(ctx, s.opts)
		if err != nil {
			return err
		}
		mu.Lock()
		report.Payment = res
		mu.Unlock()
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownGroup, group)
	}

	return nil
}
