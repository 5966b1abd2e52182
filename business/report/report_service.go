package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"olistInsights/business/analytics"
	"olistInsights/domain"
	"olistInsights/pkg/apperrors"
	"olistInsights/pkg/logger"
	"olistInsights/pkg/metrics"
)

// ReportBuilder contract interface
type ReportBuilder interface {
	BuildReport(ctx context.Context, calc analytics.Calculator, req analytics.ReportRequest) (domain.Report, error)
}

// ReportCache contract interface. GetReport returns apperrors.ErrNotFound
// on a miss.
type ReportCache interface {
	GetReport(ctx context.Context, fingerprint string) (domain.Report, error)
	StoreReport(ctx context.Context, fingerprint string, report domain.Report) error
}

// Source is the loaded dataset a report is computed from. Digest hashes the
// row contents and keys cached reports to them.
type Source struct {
	Calc      analytics.Calculator
	Engine    string
	Rows      domain.DatasetCounts
	Integrity domain.IntegrityReport
	Digest    string
}

type ReportService struct {
	builder ReportBuilder
	source  Source
	cache   ReportCache
	opts    domain.MetricOptions
}

// NewReportService wires a report source. cache may be nil.
func NewReportService(builder ReportBuilder, source Source, cache ReportCache, opts domain.MetricOptions) *ReportService {
	return &ReportService{
		builder: builder,
		source:  source,
		cache:   cache,
		opts:    opts.WithDefaults(),
	}
}

// GetReport returns the report for groups, all groups when empty, serving
// it from the cache when possible.
func (s *ReportService) GetReport(ctx context.Context, groups []string) (domain.Report, error) {
	for _, g := range groups {
		if !domain.IsGroup(g) {
			return domain.Report{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownGroup, g)
		}
	}

	key := s.Fingerprint(groups)
	if s.cache != nil {
		cached, err := s.cache.GetReport(ctx, key)
		switch {
		case err == nil:
			metrics.ReportCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		case errors.Is(err, apperrors.ErrNotFound):
			metrics.ReportCacheLookups.WithLabelValues("miss").Inc()
		default:
			metrics.ReportCacheLookups.WithLabelValues("error").Inc()
			logger.Warn("report cache unavailable, computing report", "error", err)
		}
	}

	report, err := s.builder.BuildReport(ctx, s.source.Calc, analytics.ReportRequest{
		Engine:    s.source.Engine,
		Groups:    groups,
		Rows:      s.source.Rows,
		Integrity: s.source.Integrity,
	})
	if err != nil {
		return domain.Report{}, err
	}

	if s.cache != nil {
		if err := s.cache.StoreReport(ctx, key, report); err != nil {
			logger.Warn("failed to cache report", "fingerprint", key, "error", err)
		}
	}

	return report, nil
}

// GetReportGroup returns one section of the report.
func (s *ReportService) GetReportGroup(ctx context.Context, group string) (interface{}, error) {
	if !domain.IsGroup(group) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownGroup, group)
	}

	report, err := s.GetReport(ctx, []string{group})
	if err != nil {
		return nil, err
	}

	section, ok := report.Group(group)
	if !ok {
		return nil, fmt.Errorf("%w: group %s", apperrors.ErrNotFound, group)
	}
	return section, nil
}

// Fingerprint identifies a report by engine, dataset contents, options and
// the requested groups in any order.
func (s *ReportService) Fingerprint(groups []string) string {
	sorted := append([]string(nil), groups...)
	if len(sorted) == 0 {
		sorted = append(sorted, domain.Groups...)
	}
	sort.Strings(sorted)

	r := s.source.Rows
	raw := fmt.Sprintf("%s|%s|%d,%d,%d,%d,%d,%d,%d,%d,%d|top=%d|min=%d|%s",
		s.source.Engine,
		s.source.Digest,
		r.Customers, r.Orders, r.OrderItems, r.Payments, r.Reviews,
		r.Products, r.Sellers, r.Translations, r.Geolocations,
		s.opts.TopN, s.opts.MinReviews,
		strings.Join(sorted, ","),
	)

	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:8])
}
