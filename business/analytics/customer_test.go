//go:build !integration

package analytics

import (
	"testing"

	"olistInsights/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepeatCustomerRate_SamePersonTwoAccounts(t *testing.T) {
	s := newFixture().
		customer("c1", "u1", "campinas", "SP").
		customer("c2", "u1", "campinas", "SP").
		delivered("o1", "c1", "2018-01-10 10:00:00").
		delivered("o2", "c2", "2018-02-10 10:00:00").
		snapshot()

	got := RepeatCustomerRate(s)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.TotalCustomers)
	assert.Equal(t, 1, got.RepeatCustomers)
	assertDecimal(t, "100.00", got.RepeatPct)
	assert.Equal(t, "100.00", got.RepeatPct.String())
}

func TestRepeatCustomerRate_Rounding(t *testing.T) {
	s := newFixture().
		customer("c1", "u1", "", "SP").
		customer("c2", "u2", "", "SP").
		customer("c3", "u3", "", "RJ").
		delivered("o1", "c1", "2018-01-10 10:00:00").
		delivered("o2", "c1", "2018-01-11 10:00:00").
		delivered("o3", "c2", "2018-01-12 10:00:00").
		delivered("o4", "c3", "2018-01-13 10:00:00").
		order("o5", "c3", "canceled", "2018-01-14 10:00:00", "", "").
		order("o6", "unknown", domain.OrderStatusDelivered, "2018-01-14 10:00:00", "", "").
		snapshot()

	got := RepeatCustomerRate(s)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.TotalCustomers)
	assert.Equal(t, 1, got.RepeatCustomers)
	assert.LessOrEqual(t, got.RepeatCustomers, got.TotalCustomers)
	assertDecimal(t, "33.33", got.RepeatPct)
}

func TestRepeatCustomerRate_Empty(t *testing.T) {
	assert.Nil(t, RepeatCustomerRate(newFixture().snapshot()))
}

func TestSpendTier_Boundaries(t *testing.T) {
	cases := []struct {
		total string
		want  string
	}{
		{"1000.00", domain.TierHigh},
		{"500.00", domain.TierHigh},
		{"499.99", domain.TierMedium},
		{"200.00", domain.TierMedium},
		{"199.99", domain.TierLow},
		{"0.00", domain.TierLow},
	}

	for _, tc := range cases {
		t.Run(tc.total, func(t *testing.T) {
			assert.Equal(t, tc.want, SpendTier(dec(tc.total)))
		})
	}
}

func TestSpendSegmentation(t *testing.T) {
	s := newFixture().
		customer("c1", "u1", "", "SP").
		customer("c2", "u2", "", "SP").
		customer("c3", "u3", "", "SP").
		customer("c4", "u4", "", "SP").
		customer("c5", "u4", "", "SP").
		delivered("o1", "c1", "2018-01-10 10:00:00").
		item("o1", 1, "p1", "600.00", "50.00").
		delivered("o2", "c2", "2018-01-10 10:00:00").
		item("o2", 1, "p1", "450.00", "9.00").
		item("o2", 2, "p1", "50.00", "9.00").
		delivered("o3", "c3", "2018-01-10 10:00:00").
		item("o3", 1, "p1", "199.99", "80.00").
		// u4 reaches Medium only across both accounts
		delivered("o4", "c4", "2018-01-10 10:00:00").
		item("o4", 1, "p1", "150.00", "5.00").
		delivered("o5", "c5", "2018-01-11 10:00:00").
		item("o5", 1, "p1", "60.00", "5.00").
		snapshot()

	spend := CustomerSpend(s)
	assertDecimal(t, "210.00", spend["u4"])

	got := SpendSegmentation(s)
	require.Len(t, got, 3)

	assert.Equal(t, domain.TierHigh, got[0].Tier)
	assert.Equal(t, 2, got[0].Customers)
	assertDecimal(t, "550.00", got[0].AvgSpend)

	assert.Equal(t, domain.TierMedium, got[1].Tier)
	assert.Equal(t, 1, got[1].Customers)
	assertDecimal(t, "210.00", got[1].AvgSpend)

	assert.Equal(t, domain.TierLow, got[2].Tier)
	assertDecimal(t, "199.99", got[2].AvgSpend)
}

func TestTopStatesByRevenue(t *testing.T) {
	s := newFixture().
		customer("c1", "u1", "sao paulo", "SP").
		customer("c2", "u1", "santos", "SP").
		customer("c3", "u3", "rio de janeiro", "RJ").
		customer("c4", "u4", "belo horizonte", "MG").
		delivered("o1", "c1", "2018-01-10 10:00:00").
		item("o1", 1, "p1", "100.00", "10.00").
		delivered("o2", "c2", "2018-01-10 10:00:00").
		item("o2", 1, "p1", "200.00", "10.00").
		delivered("o3", "c3", "2018-01-10 10:00:00").
		item("o3", 1, "p1", "150.00", "1.00").
		item("o3", 2, "p1", "150.00", "1.00").
		delivered("o4", "c4", "2018-01-10 10:00:00").
		item("o4", 1, "p1", "100.00", "1.00").
		delivered("o5", "ghost", "2018-01-10 10:00:00").
		item("o5", 1, "p1", "9999.00", "1.00").
		snapshot()

	got := TopStatesByRevenue(s, 10)
	require.Len(t, got, 3)

	// RJ and SP tie on revenue; the state code decides
	assert.Equal(t, "RJ", got[0].State)
	assert.Equal(t, 1, got[0].Customers)
	assert.Equal(t, 1, got[0].Orders)
	assertDecimal(t, "300.00", got[0].Revenue)

	assert.Equal(t, "SP", got[1].State)
	assert.Equal(t, 1, got[1].Customers, "customers are counted by unique id")
	assert.Equal(t, 2, got[1].Orders)
	assert.Empty(t, got[1].City)

	assert.Equal(t, "MG", got[2].State)

	assert.Len(t, TopStatesByRevenue(s, 2), 2)
}

func TestTopCitiesByRevenue(t *testing.T) {
	s := newFixture().
		customer("c1", "u1", "sao paulo", "SP").
		customer("c2", "u2", "sao paulo", "SP").
		customer("c3", "u3", "bom jesus", "PI").
		customer("c4", "u4", "bom jesus", "RS").
		delivered("o1", "c1", "2018-01-10 10:00:00").
		item("o1", 1, "p1", "10.00", "1.00").
		delivered("o2", "c2", "2018-01-10 10:00:00").
		item("o2", 1, "p1", "15.00", "1.00").
		delivered("o3", "c3", "2018-01-10 10:00:00").
		item("o3", 1, "p1", "5.00", "1.00").
		delivered("o4", "c4", "2018-01-10 10:00:00").
		item("o4", 1, "p1", "5.00", "1.00").
		snapshot()

	got := TopCitiesByRevenue(s, 10)
	require.Len(t, got, 3)

	assert.Equal(t, "sao paulo", got[0].City)
	assert.Equal(t, "SP", got[0].State)
	assert.Equal(t, 2, got[0].Customers)
	assertDecimal(t, "25.00", got[0].Revenue)

	// same city name in two states stays two rows
	assert.Equal(t, "bom jesus", got[1].City)
	assert.Equal(t, "PI", got[1].State)
	assert.Equal(t, "bom jesus", got[2].City)
	assert.Equal(t, "RS", got[2].State)
}
