package domain

import "time"

const (
	GroupRevenue  = "revenue"
	GroupCustomer = "customer"
	GroupDelivery = "delivery"
	GroupPayment  = "payment"
)

// Groups lists the metric groups in report order.
var Groups = []string{GroupRevenue, GroupCustomer, GroupDelivery, GroupPayment}

const (
	TierHigh   = "High"
	TierMedium = "Medium"
	TierLow    = "Low"

	DeliveryLate   = "Late"
	DeliveryOnTime = "On Time"
)

const (
	DefaultTopN       = 10
	DefaultMinReviews = 50
)

// MetricOptions tunes the ranked metrics. Zero values fall back to the
// defaults above.
type MetricOptions struct {
	TopN       int
	MinReviews int
}

func (o MetricOptions) WithDefaults() MetricOptions {
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.MinReviews <= 0 {
		o.MinReviews = DefaultMinReviews
	}
	return o
}

type RevenueSummary struct {
	TotalOrders    int   `json:"total_orders"`
	ProductRevenue Money `json:"total_product_revenue"`
	Freight        Money `json:"total_freight"`
	TotalRevenue   Money `json:"total_revenue"`
}

type MonthlyRevenue struct {
	Month          string `json:"month"`
	Orders         int    `json:"order_count"`
	ProductRevenue Money  `json:"product_revenue"`
	TotalRevenue   Money  `json:"total_revenue"`
}

type CategoryRevenue struct {
	Category string `json:"category"`
	Items    int    `json:"items_sold"`
	Orders   int    `json:"order_count"`
	Revenue  Money  `json:"revenue"`
}

type OrderValueStats struct {
	Orders int   `json:"order_count"`
	Mean   Money `json:"avg_order_value"`
	Min    Money `json:"min_order_value"`
	Max    Money `json:"max_order_value"`
	Median Money `json:"median_order_value"`
}

type WeekdayRevenue struct {
	Weekday int    `json:"weekday"`
	DayName string `json:"day_name"`
	Orders  int    `json:"order_count"`
	Revenue Money  `json:"revenue"`
}

// RegionRevenue is a state row when City is empty, a city row otherwise.
type RegionRevenue struct {
	State     string `json:"state"`
	City      string `json:"city,omitempty"`
	Customers int    `json:"unique_customers"`
	Orders    int    `json:"order_count"`
	Revenue   Money  `json:"revenue"`
}

type RepeatCustomerRate struct {
	TotalCustomers  int   `json:"total_unique_customers"`
	RepeatCustomers int   `json:"repeat_customers"`
	RepeatPct       Money `json:"repeat_pct"`
}

type SpendSegment struct {
	Tier      string `json:"tier"`
	Customers int    `json:"customer_count"`
	AvgSpend  Money  `json:"avg_spend"`
}

type DeliveryPerformance struct {
	Orders     int   `json:"order_count"`
	AvgDays    Money `json:"avg_delivery_days"`
	MinDays    int   `json:"min_delivery_days"`
	MaxDays    int   `json:"max_delivery_days"`
	LateOrders int   `json:"late_orders"`
	LatePct    Money `json:"late_pct"`
}

type ReviewScoreShare struct {
	Score   int   `json:"score"`
	Reviews int   `json:"review_count"`
	Pct     Money `json:"pct"`
}

type TimelinessSatisfaction struct {
	Status   string `json:"delivery_status"`
	Orders   int    `json:"order_count"`
	AvgScore Money  `json:"avg_score"`
}

type CategoryScore struct {
	Category string `json:"category"`
	Reviews  int    `json:"review_count"`
	AvgScore Money  `json:"avg_score"`
}

type PaymentMethodShare struct {
	PaymentType  string `json:"payment_type"`
	Transactions int    `json:"transaction_count"`
	TotalValue   Money  `json:"total_value"`
	AvgValue     Money  `json:"avg_value"`
	Pct          Money  `json:"pct"`
}

// Single-row metrics are nil when their qualifying set is empty.

type RevenueReport struct {
	Summary       *RevenueSummary   `json:"summary"`
	Monthly       []MonthlyRevenue  `json:"monthly"`
	TopCategories []CategoryRevenue `json:"top_categories"`
	OrderValue    *OrderValueStats  `json:"order_value"`
	ByWeekday     []WeekdayRevenue  `json:"by_weekday"`
}

type CustomerReport struct {
	TopStates []RegionRevenue     `json:"top_states"`
	TopCities []RegionRevenue     `json:"top_cities"`
	Repeat    *RepeatCustomerRate `json:"repeat_rate"`
	Segments  []SpendSegment      `json:"segments"`
}

type DeliveryReport struct {
	Performance       *DeliveryPerformance     `json:"performance"`
	ScoreDistribution []ReviewScoreShare       `json:"score_distribution"`
	Timeliness        []TimelinessSatisfaction `json:"timeliness"`
	WorstCategories   []CategoryScore          `json:"worst_categories"`
}

type PaymentReport struct {
	Methods []PaymentMethodShare `json:"methods"`
}

type Report struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Engine      string          `json:"engine"`
	Rows        DatasetCounts   `json:"rows"`
	Integrity   IntegrityReport `json:"integrity"`
	Revenue     *RevenueReport  `json:"revenue,omitempty"`
	Customer    *CustomerReport `json:"customer,omitempty"`
	Delivery    *DeliveryReport `json:"delivery,omitempty"`
	Payment     *PaymentReport  `json:"payment,omitempty"`
}

// Group returns only the named section of the report.
func (r Report) Group(name string) (interface{}, bool) {
	switch name {
	case GroupRevenue:
		return r.Revenue, r.Revenue != nil
	case GroupCustomer:
		return r.Customer, r.Customer != nil
	case GroupDelivery:
		return r.Delivery, r.Delivery != nil
	case GroupPayment:
		return r.Payment, r.Payment != nil
	}
	return nil, false
}

func IsGroup(name string) bool {
	for _, g := range Groups {
		if g == name {
			return true
		}
	}
	return false
}
