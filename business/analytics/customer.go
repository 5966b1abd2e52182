package analytics

import (
	"sort"

	"olistInsights/domain"

	"github.com/shopspring/decimal"
)

// Spend tier thresholds are inclusive lower bounds in the currency of item
// price.
var (
	HighSpendFloor   = decimal.NewFromInt(500)
	MediumSpendFloor = decimal.NewFromInt(200)
)

type regionAcc struct {
	state     string
	city      string
	customers distinct
	orders    distinct
	revenue   decimal.Decimal
}

// TopStatesByRevenue ranks customer states by summed item price of their
// delivered orders. Customers are counted by customer_unique_id.
func TopStatesByRevenue(s *Snapshot, topN int) []domain.RegionRevenue {
	return topRegions(s, topN, func(c domain.Customer) (string, string) {
		return c.State, ""
	})
}

// TopCitiesByRevenue is TopStatesByRevenue keyed by (city, state).
func TopCitiesByRevenue(s *Snapshot, topN int) []domain.RegionRevenue {
	return topRegions(s, topN, func(c domain.Customer) (string, string) {
		return c.State, c.City
	})
}

func topRegions(s *Snapshot, topN int, key func(domain.Customer) (state, city string)) []domain.RegionRevenue {
	byRegion := make(map[[2]string]*regionAcc)
	for _, d := range s.delivered {
		c, ok := s.customers[d.order.CustomerID]
		if !ok {
			continue
		}
		state, city := key(c)
		k := [2]string{state, city}
		a, ok := byRegion[k]
		if !ok {
			a = &regionAcc{state: state, city: city, customers: distinct{}, orders: distinct{}}
			byRegion[k] = a
		}
		a.customers.add(c.CustomerUniqueID)
		a.orders.add(d.order.OrderID)
		a.revenue = a.revenue.Add(d.item.Price)
	}

	out := make([]domain.RegionRevenue, 0, len(byRegion))
	for _, a := range byRegion {
		out = append(out, domain.RegionRevenue{
			State:     a.state,
			City:      a.city,
			Customers: len(a.customers),
			Orders:    len(a.orders),
			Revenue:   domain.Money{Decimal: a.revenue},
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue.Decimal); c != 0 {
			return c > 0
		}
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		return out[i].City < out[j].City
	})

	out = limit(out, topN)
	for i := range out {
		out[i].Revenue = round2(out[i].Revenue.Decimal)
	}
	return out
}

// RepeatCustomerRate counts unique customers with more than one delivered
// order.
func RepeatCustomerRate(s *Snapshot) *domain.RepeatCustomerRate {
	ordersByPerson := make(map[string]distinct)
	for _, o := range s.deliveredOrders() {
		c, ok := s.customers[o.CustomerID]
		if !ok {
			continue
		}
		set, ok := ordersByPerson[c.CustomerUniqueID]
		if !ok {
			set = distinct{}
			ordersByPerson[c.CustomerUniqueID] = set
		}
		set.add(o.OrderID)
	}

	total := len(ordersByPerson)
	if total == 0 {
		return nil
	}

	repeat := 0
	for _, set := range ordersByPerson {
		if len(set) > 1 {
			repeat++
		}
	}

	return &domain.RepeatCustomerRate{
		TotalCustomers:  total,
		RepeatCustomers: repeat,
		RepeatPct:       percentOf(repeat, total),
	}
}

// SpendTier classifies a customer's delivered spend.
func SpendTier(total decimal.Decimal) string {
	switch {
	case total.GreaterThanOrEqual(HighSpendFloor):
		return domain.TierHigh
	case total.GreaterThanOrEqual(MediumSpendFloor):
		return domain.TierMedium
	default:
		return domain.TierLow
	}
}

// CustomerSpend sums item price of delivered orders per customer_unique_id.
func CustomerSpend(s *Snapshot) map[string]decimal.Decimal {
	spend := make(map[string]decimal.Decimal)
	for _, d := range s.delivered {
		c, ok := s.customers[d.order.CustomerID]
		if !ok {
			continue
		}
		spend[c.CustomerUniqueID] = spend[c.CustomerUniqueID].Add(d.item.Price)
	}
	return spend
}

// SpendSegmentation reports customer count and average spend per tier,
// descending by average spend. Empty tiers are omitted.
func SpendSegmentation(s *Snapshot) []domain.SpendSegment {
	type acc struct {
		customers int
		spend     decimal.Decimal
	}

	byTier := make(map[string]*acc)
	for _, total := range CustomerSpend(s) {
		tier := SpendTier(total)
		a, ok := byTier[tier]
		if !ok {
			a = &acc{}
			byTier[tier] = a
		}
		a.customers++
		a.spend = a.spend.Add(total)
	}

	out := make([]domain.SpendSegment, 0, len(byTier))
	exact := make(map[string]decimal.Decimal, len(byTier))
	for tier, a := range byTier {
		exact[tier] = a.spend.Div(decimal.NewFromInt(int64(a.customers)))
		out = append(out, domain.SpendSegment{
			Tier:      tier,
			Customers: a.customers,
			AvgSpend:  average(a.spend, a.customers),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := exact[out[i].Tier].Cmp(exact[out[j].Tier]); c != 0 {
			return c > 0
		}
		return out[i].Tier < out[j].Tier
	})

	return out
}
