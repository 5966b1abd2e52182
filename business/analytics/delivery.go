package analytics

import (
	"sort"

	"olistInsights/domain"

	"github.com/shopspring/decimal"
)

// DeliveryPerformance measures whole-day delivery time of delivered orders
// that have a customer delivery date.
func DeliveryPerformance(s *Snapshot) *domain.DeliveryPerformance {
	var (
		n, late    int
		sum        int64
		minD, maxD int
	)

	for _, o := range s.deliveredOrders() {
		days, ok := o.DeliveryDays()
		if !ok {
			continue
		}
		if n == 0 || days < minD {
			minD = days
		}
		if n == 0 || days > maxD {
			maxD = days
		}
		n++
		sum += int64(days)
		if o.IsLate() {
			late++
		}
	}

	if n == 0 {
		return nil
	}

	return &domain.DeliveryPerformance{
		Orders:     n,
		AvgDays:    averageInt(sum, n),
		MinDays:    minD,
		MaxDays:    maxD,
		LateOrders: late,
		LatePct:    percentOf(late, n),
	}
}

// ReviewScoreDistribution shares reviews of delivered orders by score,
// ascending. The percentage denominator is every review in the filtered set.
func ReviewScoreDistribution(s *Snapshot) []domain.ReviewScoreShare {
	byScore := make(map[int]int)
	total := 0
	for _, r := range s.dataset.Reviews {
		if _, ok := s.deliveredOrder(r.OrderID); !ok {
			continue
		}
		byScore[r.Score]++
		total++
	}

	out := make([]domain.ReviewScoreShare, 0, len(byScore))
	for score, count := range byScore {
		out = append(out, domain.ReviewScoreShare{
			Score:   score,
			Reviews: count,
			Pct:     percentOf(count, total),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score < out[j].Score })

	return out
}

// DeliveryTimeliness compares review scores of late and on-time deliveries.
// Orders without a delivery date are skipped. The average is taken over
// review rows, the count over distinct orders.
func DeliveryTimeliness(s *Snapshot) []domain.TimelinessSatisfaction {
	type acc struct {
		orders  distinct
		reviews int
		score   int64
	}

	byStatus := make(map[string]*acc)
	for _, r := range s.dataset.Reviews {
		o, ok := s.deliveredOrder(r.OrderID)
		if !ok || o.DeliveredCustomerAt == nil {
			continue
		}
		status := domain.DeliveryOnTime
		if o.IsLate() {
			status = domain.DeliveryLate
		}
		a, ok := byStatus[status]
		if !ok {
			a = &acc{orders: distinct{}}
			byStatus[status] = a
		}
		a.orders.add(o.OrderID)
		a.reviews++
		a.score += int64(r.Score)
	}

	out := make([]domain.TimelinessSatisfaction, 0, len(byStatus))
	for status, a := range byStatus {
		out = append(out, domain.TimelinessSatisfaction{
			Status:   status,
			Orders:   len(a.orders),
			AvgScore: averageInt(a.score, a.reviews),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })

	return out
}

// WorstCategoriesByScore ranks categories by average review score,
// ascending. Every (review, item) pair of a delivered order counts once.
// Categories with fewer than minReviews pairs are dropped after grouping.
func WorstCategoriesByScore(s *Snapshot, topN, minReviews int) []domain.CategoryScore {
	type acc struct {
		reviews int
		score   int64
	}

	byCategory := make(map[string]*acc)
	for _, r := range s.dataset.Reviews {
		if _, ok := s.deliveredOrder(r.OrderID); !ok {
			continue
		}
		for _, it := range s.itemsByOrder[r.OrderID] {
			category, ok := s.category(it.ProductID)
			if !ok {
				continue
			}
			a, ok := byCategory[category]
			if !ok {
				a = &acc{}
				byCategory[category] = a
			}
			a.reviews++
			a.score += int64(r.Score)
		}
	}

	out := make([]domain.CategoryScore, 0, len(byCategory))
	exact := make(map[string]decimal.Decimal, len(byCategory))
	for category, a := range byCategory {
		if a.reviews < minReviews {
			continue
		}
		exact[category] = decimal.NewFromInt(a.score).Div(decimal.NewFromInt(int64(a.reviews)))
		out = append(out, domain.CategoryScore{
			Category: category,
			Reviews:  a.reviews,
			AvgScore: averageInt(a.score, a.reviews),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := exact[out[i].Category].Cmp(exact[out[j].Category]); c != 0 {
			return c < 0
		}
		return out[i].Category < out[j].Category
	})

	return limit(out, topN)
}
