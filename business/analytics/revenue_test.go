//go:build !integration

package analytics

import (
	"encoding/json"
	"testing"

	"olistInsights/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalRevenue_SingleOrderTwoItems(t *testing.T) {
	s := newFixture().
		customer("c1", "u1", "sao paulo", "SP").
		delivered("o1", "c1", "2018-01-10 10:00:00").
		item("o1", 1, "p1", "100.00", "10.00").
		item("o1", 2, "p2", "50.00", "5.00").
		snapshot()

	got := TotalRevenue(s)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.TotalOrders)
	assertDecimal(t, "150.00", got.ProductRevenue)
	assertDecimal(t, "15.00", got.Freight)
	assertDecimal(t, "165.00", got.TotalRevenue)
	assert.True(t, got.TotalRevenue.Equal(got.ProductRevenue.Add(got.Freight.Decimal)))
}

func TestTotalRevenue_JSONKeepsTwoPlaces(t *testing.T) {
	s := newFixture().
		delivered("o1", "c1", "2018-01-10 10:00:00").
		item("o1", 1, "p1", "100", "10").
		item("o1", 2, "p2", "50", "5").
		snapshot()

	raw, err := json.Marshal(TotalRevenue(s))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"total_revenue":"165.00"`)
	assert.Contains(t, string(raw), `"total_product_revenue":"150.00"`)
	assert.Contains(t, string(raw), `"total_freight":"15.00"`)
}

func TestTotalRevenue_IgnoresUndeliveredOrders(t *testing.T) {
	s := newFixture().
		delivered("o1", "c1", "2018-01-10 10:00:00").
		item("o1", 1, "p1", "10.10", "1.01").
		order("o2", "c1", "shipped", "2018-01-11 10:00:00", "", "").
		item("o2", 1, "p1", "999.00", "99.00").
		order("o3", "c1", "canceled", "2018-01-11 10:00:00", "", "").
		item("o3", 1, "p1", "500.00", "1.00").
		snapshot()

	got := TotalRevenue(s)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.TotalOrders)
	assertDecimal(t, "10.10", got.ProductRevenue)
	assertDecimal(t, "1.01", got.Freight)
	assertDecimal(t, "11.11", got.TotalRevenue)
}

func TestTotalRevenue_SkipsOrphanItems(t *testing.T) {
	s := newFixture().
		delivered("o1", "c1", "2018-01-10 10:00:00").
		item("o1", 1, "p1", "10.00", "1.00").
		item("missing", 1, "p1", "70.00", "7.00").
		snapshot()

	got := TotalRevenue(s)
	require.NotNil(t, got)
	assertDecimal(t, "11.00", got.TotalRevenue)
}

func TestRevenueMetrics_EmptyDataset(t *testing.T) {
	s := newFixture().snapshot()

	assert.Nil(t, TotalRevenue(s))
	assert.Nil(t, OrderValueDistribution(s))
	assert.Empty(t, MonthlyRevenue(s))
	assert.Empty(t, TopCategoriesByRevenue(s, 10))
	assert.Empty(t, RevenueByWeekday(s))
}

func TestMonthlyRevenue_AscendingWithoutGapFill(t *testing.T) {
	s := newFixture().
		delivered("o1", "c1", "2018-03-02 08:00:00").
		item("o1", 1, "p1", "30.00", "3.00").
		delivered("o2", "c1", "2018-01-15 08:00:00").
		item("o2", 1, "p1", "10.00", "1.00").
		item("o2", 2, "p1", "10.00", "1.00").
		delivered("o3", "c2", "2018-01-31 23:59:59").
		item("o3", 1, "p1", "5.00", "0.50").
		snapshot()

	got := MonthlyRevenue(s)
	require.Len(t, got, 2)

	assert.Equal(t, "2018-01", got[0].Month)
	assert.Equal(t, 2, got[0].Orders)
	assertDecimal(t, "25.00", got[0].ProductRevenue)
	assertDecimal(t, "27.50", got[0].TotalRevenue)

	assert.Equal(t, "2018-03", got[1].Month)
	assert.Equal(t, 1, got[1].Orders)
	assertDecimal(t, "33.00", got[1].TotalRevenue)
}

func TestTopCategoriesByRevenue(t *testing.T) {
	s := newFixture().
		product("p1", "beleza_saude").
		product("p2", "").
		product("p3", "sem_traducao").
		product("p4", "esporte_lazer").
		product("p5", "moveis").
		translation("beleza_saude", "health_beauty").
		translation("esporte_lazer", "sports_leisure").
		translation("moveis", "furniture").
		delivered("o1", "c1", "2018-01-10 10:00:00").
		item("o1", 1, "p1", "300.00", "10.00").
		item("o1", 2, "p2", "40.00", "1.00").
		item("o1", 3, "p3", "60.00", "1.00").
		delivered("o2", "c2", "2018-01-11 10:00:00").
		item("o2", 1, "p1", "50.00", "10.00").
		item("o2", 2, "p4", "200.00", "5.00").
		item("o2", 3, "p5", "200.00", "5.00").
		item("o2", 4, "gone", "900.00", "1.00").
		snapshot()

	got := TopCategoriesByRevenue(s, 10)
	require.Len(t, got, 4)

	assert.Equal(t, "health_beauty", got[0].Category)
	assert.Equal(t, 2, got[0].Items)
	assert.Equal(t, 2, got[0].Orders)
	assertDecimal(t, "350.00", got[0].Revenue)

	// equal revenue breaks ties by name
	assert.Equal(t, "furniture", got[1].Category)
	assert.Equal(t, "sports_leisure", got[2].Category)

	// empty and untranslated categories share the Unknown bucket
	assert.Equal(t, domain.UnknownCategory, got[3].Category)
	assert.Equal(t, 2, got[3].Items)
	assertDecimal(t, "100.00", got[3].Revenue)

	top := TopCategoriesByRevenue(s, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "furniture", top[1].Category)
}

func TestOrderValueDistribution(t *testing.T) {
	s := newFixture().
		delivered("o1", "c1", "2018-01-10 10:00:00").
		item("o1", 1, "p1", "8.00", "2.00").
		delivered("o2", "c1", "2018-01-10 10:00:00").
		item("o2", 1, "p1", "15.00", "5.00").
		delivered("o3", "c1", "2018-01-10 10:00:00").
		item("o3", 1, "p1", "20.00", "0.00").
		item("o3", 2, "p1", "15.00", "5.00").
		delivered("o4", "c1", "2018-01-10 10:00:00").
		item("o4", 1, "p1", "90.00", "10.00").
		delivered("o5", "c1", "2018-01-10 10:00:00").
		snapshot()

	totals := OrderTotals(s)
	require.Len(t, totals, 4, "delivered orders without items have no total")
	assertDecimal(t, "40.00", totals["o3"])

	got := OrderValueDistribution(s)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.Orders)
	assertDecimal(t, "42.50", got.Mean)
	assertDecimal(t, "10.00", got.Min)
	assertDecimal(t, "100.00", got.Max)
	assertDecimal(t, "30.00", got.Median)
	assert.True(t, got.Median.GreaterThanOrEqual(got.Min.Decimal) && got.Median.LessThanOrEqual(got.Max.Decimal))
}

func TestOrderValueDistribution_OddCountMedian(t *testing.T) {
	s := newFixture().
		delivered("o1", "c1", "2018-01-10 10:00:00").
		item("o1", 1, "p1", "1.00", "0.00").
		delivered("o2", "c1", "2018-01-10 10:00:00").
		item("o2", 1, "p1", "7.25", "0.00").
		delivered("o3", "c1", "2018-01-10 10:00:00").
		item("o3", 1, "p1", "1000.00", "0.00").
		snapshot()

	got := OrderValueDistribution(s)
	require.NotNil(t, got)
	assertDecimal(t, "7.25", got.Median)
	assertDecimal(t, "336.08", got.Mean)
}

func TestRevenueByWeekday(t *testing.T) {
	s := newFixture().
		// 2018-01-03 is a Wednesday, 2018-01-07 a Sunday
		delivered("o1", "c1", "2018-01-03 12:00:00").
		item("o1", 1, "p1", "10.00", "1.00").
		delivered("o2", "c1", "2018-01-07 00:00:01").
		item("o2", 1, "p1", "20.00", "1.00").
		item("o2", 2, "p1", "5.00", "1.00").
		delivered("o3", "c1", "2018-01-14 23:00:00").
		item("o3", 1, "p1", "1.00", "1.00").
		snapshot()

	got := RevenueByWeekday(s)
	require.Len(t, got, 2)

	assert.Equal(t, 0, got[0].Weekday)
	assert.Equal(t, "Sunday", got[0].DayName)
	assert.Equal(t, 2, got[0].Orders)
	assertDecimal(t, "26.00", got[0].Revenue)

	assert.Equal(t, 3, got[1].Weekday)
	assert.Equal(t, "Wednesday", got[1].DayName)
	assertDecimal(t, "10.00", got[1].Revenue)
}
