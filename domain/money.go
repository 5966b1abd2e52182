package domain

import "github.com/shopspring/decimal"

// Money is a reported amount or percentage. It always renders with exactly
// two decimal places, in JSON and in text output.
type Money struct {
	decimal.Decimal
}

// NewMoney rounds d to two places, half away from zero.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

func (m Money) String() string {
	return m.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}
