package analytics

import (
	"sort"
	"time"

	"olistInsights/domain"

	"github.com/shopspring/decimal"
)

// TotalRevenue sums item price and freight over delivered orders. Product
// revenue and freight are reported separately so margins can be recomputed.
func TotalRevenue(s *Snapshot) *domain.RevenueSummary {
	if len(s.delivered) == 0 {
		return nil
	}

	orders := distinct{}
	price, freight := decimal.Zero, decimal.Zero
	for _, d := range s.delivered {
		orders.add(d.order.OrderID)
		price = price.Add(d.item.Price)
		freight = freight.Add(d.item.FreightValue)
	}

	return &domain.RevenueSummary{
		TotalOrders:    len(orders),
		ProductRevenue: round2(price),
		Freight:        round2(freight),
		TotalRevenue:   round2(price.Add(freight)),
	}
}

// MonthlyRevenue groups delivered items by purchase month, ascending.
// Months without delivered items are not emitted.
func MonthlyRevenue(s *Snapshot) []domain.MonthlyRevenue {
	type acc struct {
		orders  distinct
		product decimal.Decimal
		total   decimal.Decimal
	}

	byMonth := make(map[string]*acc)
	for _, d := range s.delivered {
		month := d.order.PurchasedAt.Format("2006-01")
		a, ok := byMonth[month]
		if !ok {
			a = &acc{orders: distinct{}}
			byMonth[month] = a
		}
		a.orders.add(d.order.OrderID)
		a.product = a.product.Add(d.item.Price)
		a.total = a.total.Add(d.item.Total())
	}

	out := make([]domain.MonthlyRevenue, 0, len(byMonth))
	for month, a := range byMonth {
		out = append(out, domain.MonthlyRevenue{
			Month:          month,
			Orders:         len(a.orders),
			ProductRevenue: round2(a.product),
			TotalRevenue:   round2(a.total),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })

	return out
}

// TopCategoriesByRevenue ranks resolved English categories by summed item
// price, descending. Equal revenue is ordered by category name.
func TopCategoriesByRevenue(s *Snapshot, topN int) []domain.CategoryRevenue {
	type acc struct {
		items   int
		orders  distinct
		revenue decimal.Decimal
	}

	byCategory := make(map[string]*acc)
	for _, d := range s.delivered {
		category, ok := s.category(d.item.ProductID)
		if !ok {
			continue
		}
		a, ok := byCategory[category]
		if !ok {
			a = &acc{orders: distinct{}}
			byCategory[category] = a
		}
		a.items++
		a.orders.add(d.order.OrderID)
		a.revenue = a.revenue.Add(d.item.Price)
	}

	out := make([]domain.CategoryRevenue, 0, len(byCategory))
	for category, a := range byCategory {
		out = append(out, domain.CategoryRevenue{
			Category: category,
			Items:    a.items,
			Orders:   len(a.orders),
			Revenue:  domain.Money{Decimal: a.revenue},
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue.Decimal); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})

	out = limit(out, topN)
	for i := range out {
		out[i].Revenue = round2(out[i].Revenue.Decimal)
	}
	return out
}

// OrderTotals returns order_total for every delivered order that has items.
func OrderTotals(s *Snapshot) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, d := range s.delivered {
		totals[d.order.OrderID] = totals[d.order.OrderID].Add(d.item.Total())
	}
	return totals
}

// OrderValueDistribution summarizes per-order totals of delivered orders.
// The median is the continuous 50th percentile.
func OrderValueDistribution(s *Snapshot) *domain.OrderValueStats {
	totals := OrderTotals(s)
	if len(totals) == 0 {
		return nil
	}

	values := make([]decimal.Decimal, 0, len(totals))
	sum := decimal.Zero
	for _, v := range totals {
		values = append(values, v)
		sum = sum.Add(v)
	}

	median, _ := Percentile(values, 0.5)

	return &domain.OrderValueStats{
		Orders: len(values),
		Mean:   average(sum, len(values)),
		Min:    round2(decimal.Min(values[0], values[1:]...)),
		Max:    round2(decimal.Max(values[0], values[1:]...)),
		Median: round2(median),
	}
}

// RevenueByWeekday groups delivered items by purchase weekday, 0 = Sunday.
func RevenueByWeekday(s *Snapshot) []domain.WeekdayRevenue {
	type acc struct {
		orders  distinct
		revenue decimal.Decimal
	}

	byDay := make(map[time.Weekday]*acc)
	for _, d := range s.delivered {
		day := d.order.PurchasedAt.Weekday()
		a, ok := byDay[day]
		if !ok {
			a = &acc{orders: distinct{}}
			byDay[day] = a
		}
		a.orders.add(d.order.OrderID)
		a.revenue = a.revenue.Add(d.item.Price)
	}

	out := make([]domain.WeekdayRevenue, 0, len(byDay))
	for day, a := range byDay {
		out = append(out, domain.WeekdayRevenue{
			Weekday: int(day),
			DayName: day.String(),
			Orders:  len(a.orders),
			Revenue: round2(a.revenue),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })

	return out
}

func limit[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}
