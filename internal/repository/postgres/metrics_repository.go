package postgres

import (
	"context"
	"fmt"
	"time"

	"olistInsights/business/analytics"
	"olistInsights/domain"

	"gorm.io/gorm"
)

// Text ordering uses the C collation so ties sort bytewise, the same way the
// in-memory engine compares strings.

const deliveredItemsCTE = `
delivered_items AS (
    SELECT o.order_id, o.customer_id, o.order_purchase_timestamp AS purchased_at,
           i.product_id, i.price, i.freight_value
    FROM order_items i
    JOIN orders o ON o.order_id = i.order_id
    WHERE o.order_status = @delivered
)`

const categoryExpr = `COALESCE(NULLIF(t.product_category_name_english, ''), @unknown)`

const isLateExpr = `(o.order_estimated_delivery_date IS NOT NULL
    AND o.order_delivered_customer_date > o.order_estimated_delivery_date)`

const (
	revenueSummaryQuery = `WITH ` + deliveredItemsCTE + `
SELECT COUNT(DISTINCT order_id) AS total_orders,
       COALESCE(ROUND(SUM(price), 2), 0) AS product_revenue,
       COALESCE(ROUND(SUM(freight_value), 2), 0) AS freight,
       COALESCE(ROUND(SUM(price + freight_value), 2), 0) AS total_revenue
FROM delivered_items`

	monthlyRevenueQuery = `WITH ` + deliveredItemsCTE + `
SELECT to_char(purchased_at, 'YYYY-MM') AS month,
       COUNT(DISTINCT order_id) AS orders,
       ROUND(SUM(price), 2) AS product_revenue,
       ROUND(SUM(price + freight_value), 2) AS total_revenue
FROM delivered_items
GROUP BY 1
ORDER BY 1`

	topCategoriesQuery = `WITH ` + deliveredItemsCTE + `,
by_category AS (
    SELECT ` + categoryExpr + ` AS category,
           COUNT(*) AS items,
           COUNT(DISTINCT d.order_id) AS orders,
           SUM(d.price) AS revenue
    FROM delivered_items d
    JOIN products p ON p.product_id = d.product_id
    LEFT JOIN product_category_name_translation t
           ON t.product_category_name = NULLIF(TRIM(p.product_category_name), '')
    GROUP BY 1
)
SELECT category, items, orders, ROUND(revenue, 2) AS revenue
FROM by_category
ORDER BY by_category.revenue DESC, category COLLATE "C"
LIMIT @limit`

	orderValueQuery = `WITH ` + deliveredItemsCTE + `,
totals AS (
    SELECT order_id, SUM(price + freight_value) AS total
    FROM delivered_items
    GROUP BY order_id
),
ranked AS (
    SELECT total,
           ROW_NUMBER() OVER (ORDER BY total) AS rn,
           COUNT(*) OVER () AS n
    FROM totals
)
SELECT (SELECT COUNT(*) FROM totals) AS orders,
       COALESCE((SELECT ROUND(AVG(total), 2) FROM totals), 0) AS mean,
       COALESCE((SELECT ROUND(MIN(total), 2) FROM totals), 0) AS min,
       COALESCE((SELECT ROUND(MAX(total), 2) FROM totals), 0) AS max,
       COALESCE((SELECT ROUND(AVG(total), 2) FROM ranked
                 WHERE rn IN ((n + 1) / 2, (n + 2) / 2)), 0) AS median`

	weekdayRevenueQuery = `WITH ` + deliveredItemsCTE + `
SELECT EXTRACT(DOW FROM purchased_at)::int AS weekday,
       COUNT(DISTINCT order_id) AS orders,
       ROUND(SUM(price), 2) AS revenue
FROM delivered_items
GROUP BY 1
ORDER BY 1`

	topStatesQuery = `WITH ` + deliveredItemsCTE + `
SELECT c.customer_state AS state,
       '' AS city,
       COUNT(DISTINCT c.customer_unique_id) AS customers,
       COUNT(DISTINCT d.order_id) AS orders,
       ROUND(SUM(d.price), 2) AS revenue
FROM delivered_items d
JOIN customers c ON c.customer_id = d.customer_id
GROUP BY c.customer_state
ORDER BY SUM(d.price) DESC, c.customer_state COLLATE "C"
LIMIT @limit`

	topCitiesQuery = `WITH ` + deliveredItemsCTE + `
SELECT c.customer_state AS state,
       c.customer_city AS city,
       COUNT(DISTINCT c.customer_unique_id) AS customers,
       COUNT(DISTINCT d.order_id) AS orders,
       ROUND(SUM(d.price), 2) AS revenue
FROM delivered_items d
JOIN customers c ON c.customer_id = d.customer_id
GROUP BY c.customer_state, c.customer_city
ORDER BY SUM(d.price) DESC, c.customer_state COLLATE "C", c.customer_city COLLATE "C"
LIMIT @limit`

	repeatRateQuery = `
WITH per_person AS (
    SELECT c.customer_unique_id, COUNT(DISTINCT o.order_id) AS n
    FROM orders o
    JOIN customers c ON c.customer_id = o.customer_id
    WHERE o.order_status = @delivered
    GROUP BY c.customer_unique_id
)
SELECT COUNT(*) AS total_customers,
       COUNT(*) FILTER (WHERE n > 1) AS repeat_customers,
       COALESCE(ROUND(100.0 * COUNT(*) FILTER (WHERE n > 1) / NULLIF(COUNT(*), 0), 2), 0) AS repeat_pct
FROM per_person`

	spendSegmentsQuery = `WITH ` + deliveredItemsCTE + `,
spend AS (
    SELECT c.customer_unique_id, SUM(d.price) AS total
    FROM delivered_items d
    JOIN customers c ON c.customer_id = d.customer_id
    GROUP BY c.customer_unique_id
),
tiers AS (
    SELECT CASE WHEN total >= @high_floor THEN @high
                WHEN total >= @medium_floor THEN @medium
                ELSE @low END AS tier,
           total
    FROM spend
)
SELECT tier,
       COUNT(*) AS customers,
       ROUND(AVG(total), 2) AS avg_spend
FROM tiers
GROUP BY tier
ORDER BY AVG(total) DESC, tier COLLATE "C"`

	deliveryPerformanceQuery = `
WITH d AS (
    SELECT EXTRACT(DAY FROM o.order_delivered_customer_date - o.order_purchase_timestamp)::int AS days,
           ` + isLateExpr + ` AS late
    FROM orders o
    WHERE o.order_status = @delivered
      AND o.order_delivered_customer_date IS NOT NULL
)
SELECT COUNT(*) AS orders,
       COALESCE(ROUND(AVG(days), 2), 0) AS avg_days,
       COALESCE(MIN(days), 0) AS min_days,
       COALESCE(MAX(days), 0) AS max_days,
       COUNT(*) FILTER (WHERE late) AS late_orders,
       COALESCE(ROUND(100.0 * COUNT(*) FILTER (WHERE late) / NULLIF(COUNT(*), 0), 2), 0) AS late_pct
FROM d`

	scoreDistributionQuery = `
SELECT r.review_score AS score,
       COUNT(*) AS reviews,
       ROUND(100.0 * COUNT(*) / SUM(COUNT(*)) OVER (), 2) AS pct
FROM order_reviews r
JOIN orders o ON o.order_id = r.order_id
WHERE o.order_status = @delivered
GROUP BY r.review_score
ORDER BY r.review_score`

	timelinessQuery = `
SELECT status, orders, avg_score
FROM (
    SELECT CASE WHEN ` + isLateExpr + ` THEN @late ELSE @on_time END AS status,
           COUNT(DISTINCT o.order_id) AS orders,
           ROUND(AVG(r.review_score), 2) AS avg_score
    FROM order_reviews r
    JOIN orders o ON o.order_id = r.order_id
    WHERE o.order_status = @delivered
      AND o.order_delivered_customer_date IS NOT NULL
    GROUP BY 1
) s
ORDER BY status COLLATE "C"`

	worstCategoriesQuery = `
WITH pairs AS (
    SELECT ` + categoryExpr + ` AS category, r.review_score AS score
    FROM order_reviews r
    JOIN orders o ON o.order_id = r.order_id
    JOIN order_items i ON i.order_id = r.order_id
    JOIN products p ON p.product_id = i.product_id
    LEFT JOIN product_category_name_translation t
           ON t.product_category_name = NULLIF(TRIM(p.product_category_name), '')
    WHERE o.order_status = @delivered
)
SELECT category,
       COUNT(*) AS reviews,
       ROUND(AVG(score), 2) AS avg_score
FROM pairs
GROUP BY category
HAVING COUNT(*) >= @min_reviews
ORDER BY AVG(score), category COLLATE "C"
LIMIT @limit`

	paymentMethodsQuery = `
SELECT p.payment_type,
       COUNT(*) AS transactions,
       ROUND(SUM(p.payment_value), 2) AS total_value,
       ROUND(AVG(p.payment_value), 2) AS avg_value,
       ROUND(100.0 * COUNT(*) / SUM(COUNT(*)) OVER (), 2) AS pct
FROM order_payments p
JOIN orders o ON o.order_id = p.order_id
WHERE o.order_status = @delivered
GROUP BY p.payment_type
ORDER BY SUM(p.payment_value) DESC, p.payment_type COLLATE "C"`
)

// MetricsRepository computes the metric groups inside PostgreSQL over the
// imported tables.
type MetricsRepository struct {
	DB *gorm.DB
}

var _ analytics.Calculator = (*MetricsRepository)(nil)

func NewMetricsRepository(db *gorm.DB) *MetricsRepository {
	return &MetricsRepository{
		DB: db,
	}
}

func baseArgs() map[string]interface{} {
	return map[string]interface{}{
		"delivered": domain.OrderStatusDelivered,
		"unknown":   domain.UnknownCategory,
	}
}

func (r *MetricsRepository) query(ctx context.Context, name, sql string, extra map[string]interface{}, dest interface{}) error {
	args := baseArgs()
	for k, v := range extra {
		args[k] = v
	}
	if err := r.DB.WithContext(ctx).Raw(sql, args).Scan(dest).Error; err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	return nil
}

func (r *MetricsRepository) RevenueMetrics(ctx context.Context, opts domain.MetricOptions) (*domain.RevenueReport, error) {
	opts = opts.WithDefaults()
	limit := map[string]interface{}{"limit": opts.TopN}

	var summary domain.RevenueSummary
	if err := r.query(ctx, "revenue summary", revenueSummaryQuery, nil, &summary); err != nil {
		return nil, err
	}

	monthly := []domain.MonthlyRevenue{}
	if err := r.query(ctx, "monthly revenue", monthlyRevenueQuery, nil, &monthly); err != nil {
		return nil, err
	}

	categories := []domain.CategoryRevenue{}
	if err := r.query(ctx, "top categories", topCategoriesQuery, limit, &categories); err != nil {
		return nil, err
	}

	var orderValue domain.OrderValueStats
	if err := r.query(ctx, "order value distribution", orderValueQuery, nil, &orderValue); err != nil {
		return nil, err
	}

	weekdays := []domain.WeekdayRevenue{}
	if err := r.query(ctx, "revenue by weekday", weekdayRevenueQuery, nil, &weekdays); err != nil {
		return nil, err
	}
	for i := range weekdays {
		weekdays[i].DayName = time.Weekday(weekdays[i].Weekday).String()
	}

	report := &domain.RevenueReport{
		Monthly:       monthly,
		TopCategories: categories,
		ByWeekday:     weekdays,
	}
	if summary.TotalOrders > 0 {
		report.Summary = &summary
	}
	if orderValue.Orders > 0 {
		report.OrderValue = &orderValue
	}

	return report, nil
}

func (r *MetricsRepository) CustomerMetrics(ctx context.Context, opts domain.MetricOptions) (*domain.CustomerReport, error) {
	opts = opts.WithDefaults()
	limit := map[string]interface{}{"limit": opts.TopN}

	states := []domain.RegionRevenue{}
	if err := r.query(ctx, "top states", topStatesQuery, limit, &states); err != nil {
		return nil, err
	}

	cities := []domain.RegionRevenue{}
	if err := r.query(ctx, "top cities", topCitiesQuery, limit, &cities); err != nil {
		return nil, err
	}

	var repeat domain.RepeatCustomerRate
	if err := r.query(ctx, "repeat customer rate", repeatRateQuery, nil, &repeat); err != nil {
		return nil, err
	}

	segments := []domain.SpendSegment{}
	tiers := map[string]interface{}{
		"high_floor":   analytics.HighSpendFloor,
		"medium_floor": analytics.MediumSpendFloor,
		"high":         domain.TierHigh,
		"medium":       domain.TierMedium,
		"low":          domain.TierLow,
	}
	if err := r.query(ctx, "spend segmentation", spendSegmentsQuery, tiers, &segments); err != nil {
		return nil, err
	}

	report := &domain.CustomerReport{
		TopStates: states,
		TopCities: cities,
		Segments:  segments,
	}
	if repeat.TotalCustomers > 0 {
		report.Repeat = &repeat
	}

	return report, nil
}

func (r *MetricsRepository) DeliveryMetrics(ctx context.Context, opts domain.MetricOptions) (*domain.DeliveryReport, error) {
	opts = opts.WithDefaults()

	var perf domain.DeliveryPerformance
	if err := r.query(ctx, "delivery performance", deliveryPerformanceQuery, nil, &perf); err != nil {
		return nil, err
	}

	scores := []domain.ReviewScoreShare{}
	if err := r.query(ctx, "review score distribution", scoreDistributionQuery, nil, &scores); err != nil {
		return nil, err
	}

	timeliness := []domain.TimelinessSatisfaction{}
	labels := map[string]interface{}{
		"late":    domain.DeliveryLate,
		"on_time": domain.DeliveryOnTime,
	}
	if err := r.query(ctx, "delivery timeliness", timelinessQuery, labels, &timeliness); err != nil {
		return nil, err
	}

	worst := []domain.CategoryScore{}
	filter := map[string]interface{}{
		"limit":       opts.TopN,
		"min_reviews": opts.MinReviews,
	}
	if err := r.query(ctx, "worst categories", worstCategoriesQuery, filter, &worst); err != nil {
		return nil, err
	}

	report := &domain.DeliveryReport{
		ScoreDistribution: scores,
		Timeliness:        timeliness,
		WorstCategories:   worst,
	}
	if perf.Orders > 0 {
		report.Performance = &perf
	}

	return report, nil
}

func (r *MetricsRepository) PaymentMetrics(ctx context.Context, _ domain.MetricOptions) (*domain.PaymentReport, error) {
	methods := []domain.PaymentMethodShare{}
	if err := r.query(ctx, "payment methods", paymentMethodsQuery, nil, &methods); err != nil {
		return nil, err
	}

	return &domain.PaymentReport{
		Methods: methods,
	}, nil
}
