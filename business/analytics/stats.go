package analytics

import (
	"sort"

	"olistInsights/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money and percentages are accumulated exactly and rounded here, at output
// time, half away from zero.
func round2(d decimal.Decimal) domain.Money {
	return domain.NewMoney(d)
}

func percentOf(part, total int) domain.Money {
	if total == 0 {
		return round2(decimal.Zero)
	}
	return domain.Money{Decimal: decimal.NewFromInt(int64(part)).Mul(hundred).DivRound(decimal.NewFromInt(int64(total)), 2)}
}

func average(sum decimal.Decimal, n int) domain.Money {
	if n == 0 {
		return round2(decimal.Zero)
	}
	return domain.Money{Decimal: sum.DivRound(decimal.NewFromInt(int64(n)), 2)}
}

func averageInt(sum int64, n int) domain.Money {
	return average(decimal.NewFromInt(sum), n)
}

// Percentile is the continuous percentile of values for p in [0, 1]: with
// the values sorted ascending and rank r = p*(n-1), the result is
// v[floor(r)] + (v[floor(r)+1] - v[floor(r)]) * (r - floor(r)).
// It matches PostgreSQL percentile_cont. values is not modified.
func Percentile(values []decimal.Decimal, p float64) (decimal.Decimal, bool) {
	n := len(values)
	if n == 0 || p < 0 || p > 1 {
		return decimal.Zero, false
	}

	sorted := make([]decimal.Decimal, n)
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	rank := decimal.NewFromFloat(p).Mul(decimal.NewFromInt(int64(n - 1)))
	lo := rank.Floor()
	idx := int(lo.IntPart())
	if idx >= n-1 {
		return sorted[n-1], true
	}

	frac := rank.Sub(lo)
	return sorted[idx].Add(sorted[idx+1].Sub(sorted[idx]).Mul(frac)), true
}

// distinct counts unique string keys per group.
type distinct map[string]struct{}

func (d distinct) add(key string) {
	d[key] = struct{}{}
}
