package analytics

import (
	"context"
	"fmt"

	"olistInsights/domain"
)

const (
	EngineMemory = "memory"
	EngineSQL    = "sql"
)

// Calculator computes the four metric groups. MemoryEngine works over a
// loaded Snapshot; the postgres MetricsRepository runs the same metrics as
// SQL.
type Calculator interface {
	RevenueMetrics(ctx context.Context, opts domain.MetricOptions) (*domain.RevenueReport, error)
	CustomerMetrics(ctx context.Context, opts domain.MetricOptions) (*domain.CustomerReport, error)
	DeliveryMetrics(ctx context.Context, opts domain.MetricOptions) (*domain.DeliveryReport, error)
	PaymentMetrics(ctx context.Context, opts domain.MetricOptions) (*domain.PaymentReport, error)
}

type MemoryEngine struct {
	snap *Snapshot
}

var _ Calculator = (*MemoryEngine)(nil)

func NewMemoryEngine(ds domain.Dataset) *MemoryEngine {
	return &MemoryEngine{snap: NewSnapshot(ds)}
}

func (e *MemoryEngine) RevenueMetrics(ctx context.Context, opts domain.MetricOptions) (*domain.RevenueReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	opts = opts.WithDefaults()

	return &domain.RevenueReport{
		Summary:       TotalRevenue(e.snap),
		Monthly:       MonthlyRevenue(e.snap),
		TopCategories: TopCategoriesByRevenue(e.snap, opts.TopN),
		OrderValue:    OrderValueDistribution(e.snap),
		ByWeekday:     RevenueByWeekday(e.snap),
	}, nil
}

func (e *MemoryEngine) CustomerMetrics(ctx context.Context, opts domain.MetricOptions) (*domain.CustomerReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	opts = opts.WithDefaults()

	return &domain.CustomerReport{
		TopStates: TopStatesByRevenue(e.snap, opts.TopN),
		TopCities: TopCitiesByRevenue(e.snap, opts.TopN),
		Repeat:    RepeatCustomerRate(e.snap),
		Segments:  SpendSegmentation(e.snap),
	}, nil
}

func (e *MemoryEngine) DeliveryMetrics(ctx context.Context, opts domain.MetricOptions) (*domain.DeliveryReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	opts = opts.WithDefaults()

	return &domain.DeliveryReport{
		Performance:       DeliveryPerformance(e.snap),
		ScoreDistribution: ReviewScoreDistribution(e.snap),
		Timeliness:        DeliveryTimeliness(e.snap),
		WorstCategories:   WorstCategoriesByScore(e.snap, opts.TopN, opts.MinReviews),
	}, nil
}

func (e *MemoryEngine) PaymentMetrics(ctx context.Context, opts domain.MetricOptions) (*domain.PaymentReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return &domain.PaymentReport{
		Methods: PaymentMethodBreakdown(e.snap),
	}, nil
}
