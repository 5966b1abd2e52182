package analytics

import (
	"sort"

	"olistInsights/domain"

	"github.com/shopspring/decimal"
)

// PaymentMethodBreakdown groups payments of delivered orders by type,
// descending by summed value. Pct is the share of transaction count.
func PaymentMethodBreakdown(s *Snapshot) []domain.PaymentMethodShare {
	type acc struct {
		count int
		value decimal.Decimal
	}

	byType := make(map[string]*acc)
	total := 0
	for _, p := range s.dataset.Payments {
		if _, ok := s.deliveredOrder(p.OrderID); !ok {
			continue
		}
		a, ok := byType[p.PaymentType]
		if !ok {
			a = &acc{}
			byType[p.PaymentType] = a
		}
		a.count++
		a.value = a.value.Add(p.Value)
		total++
	}

	out := make([]domain.PaymentMethodShare, 0, len(byType))
	for paymentType, a := range byType {
		out = append(out, domain.PaymentMethodShare{
			PaymentType:  paymentType,
			Transactions: a.count,
			TotalValue:   domain.Money{Decimal: a.value},
			AvgValue:     average(a.value, a.count),
			Pct:          percentOf(a.count, total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalValue.Cmp(out[j].TotalValue.Decimal); c != 0 {
			return c > 0
		}
		return out[i].PaymentType < out[j].PaymentType
	})

	for i := range out {
		out[i].TotalValue = round2(out[i].TotalValue.Decimal)
	}
	return out
}
