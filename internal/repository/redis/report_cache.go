package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"olistInsights/domain"
	"olistInsights/pkg/apperrors"

	"github.com/redis/go-redis/v9"
)

const reportKeyPrefix = "report:"

// ReportCache stores rendered reports as JSON under a caller supplied
// fingerprint.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{
		client: client,
		ttl:    ttl,
	}
}

func reportKey(fingerprint string) string {
	return reportKeyPrefix + fingerprint
}

// GetReport returns apperrors.ErrNotFound on a cache miss.
func (c *ReportCache) GetReport(ctx context.Context, fingerprint string) (domain.Report, error) {
	val, err := c.client.Get(ctx, reportKey(fingerprint)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Report{}, fmt.Errorf("%w: cached report %s", apperrors.ErrNotFound, fingerprint)
		}
		return domain.Report{}, fmt.Errorf("failed to get report from Redis: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal(val, &report); err != nil {
		return domain.Report{}, fmt.Errorf("failed to unmarshal cached report: %w", err)
	}

	return report, nil
}

func (c *ReportCache) StoreReport(ctx context.Context, fingerprint string, report domain.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := c.client.Set(ctx, reportKey(fingerprint), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store report in Redis: %w", err)
	}

	return nil
}

// Invalidate drops every cached report, used after a fresh import.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, reportKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached reports: %w", err)
	}

	return nil
}
