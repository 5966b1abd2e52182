package domain

// Dataset is a fully loaded snapshot of every Olist entity. Metric code
// treats it as read-only.
type Dataset struct {
	Customers    []Customer
	Orders       []Order
	OrderItems   []OrderItem
	Payments     []Payment
	Reviews      []Review
	Products     []Product
	Sellers      []Seller
	Translations []CategoryTranslation
	Geolocations []Geolocation
}

type DatasetCounts struct {
	Customers    int `json:"customers"`
	Orders       int `json:"orders"`
	OrderItems   int `json:"order_items"`
	Payments     int `json:"payments"`
	Reviews      int `json:"reviews"`
	Products     int `json:"products"`
	Sellers      int `json:"sellers"`
	Translations int `json:"category_translations"`
	Geolocations int `json:"geolocations"`
}

func (d Dataset) Counts() DatasetCounts {
	return DatasetCounts{
		Customers:    len(d.Customers),
		Orders:       len(d.Orders),
		OrderItems:   len(d.OrderItems),
		Payments:     len(d.Payments),
		Reviews:      len(d.Reviews),
		Products:     len(d.Products),
		Sellers:      len(d.Sellers),
		Translations: len(d.Translations),
		Geolocations: len(d.Geolocations),
	}
}

// IntegrityReport counts child rows whose parent row is missing and rows
// dropped for repeating an identity key. Orphans are a data-quality warning;
// metrics that join the parent skip them.
type IntegrityReport struct {
	ItemsWithoutOrder     int           `json:"items_without_order"`
	ItemsWithoutProduct   int           `json:"items_without_product"`
	ItemsWithoutSeller    int           `json:"items_without_seller"`
	PaymentsWithoutOrder  int           `json:"payments_without_order"`
	ReviewsWithoutOrder   int           `json:"reviews_without_order"`
	OrdersWithoutCustomer int           `json:"orders_without_customer"`
	Duplicates            DuplicateRows `json:"duplicates"`
}

// DuplicateRows counts rows dropped per table because an earlier row had the
// same identity key. The first occurrence is kept.
type DuplicateRows struct {
	Customers    int `json:"customers"`
	Orders       int `json:"orders"`
	OrderItems   int `json:"order_items"`
	Payments     int `json:"payments"`
	Reviews      int `json:"reviews"`
	Products     int `json:"products"`
	Sellers      int `json:"sellers"`
	Translations int `json:"category_translations"`
}

func (d DuplicateRows) Total() int {
	return d.Customers + d.Orders + d.OrderItems + d.Payments + d.Reviews + d.Products + d.Sellers + d.Translations
}

func (r IntegrityReport) Clean() bool {
	return r == IntegrityReport{}
}
