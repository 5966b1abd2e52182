package dataset

import (
	"context"
	"fmt"
	"time"

	"olistInsights/domain"
	"olistInsights/pkg/apperrors"
	"olistInsights/pkg/logger"
	"olistInsights/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DatasetReader contract interface, implemented by the CSV directory reader
// and the postgres dataset repository.
type DatasetReader interface {
	ReadDataset(ctx context.Context) (domain.Dataset, error)
}

type DatasetService struct {
	reader   DatasetReader
	validate *validator.Validate
}

func NewDatasetService(reader DatasetReader, validate *validator.Validate) *DatasetService {
	if validate == nil {
		validate = validator.New()
	}
	return &DatasetService{
		reader:   reader,
		validate: validate,
	}
}

// Loaded is a validated dataset with its integrity findings and content
// digest.
type Loaded struct {
	Dataset   domain.Dataset
	Integrity domain.IntegrityReport
	Digest    string
}

// Load reads, deduplicates, validates and integrity-checks the dataset. Read
// or validation failures abort; duplicate and orphan rows only produce
// warnings.
func (s *DatasetService) Load(ctx context.Context) (Loaded, error) {
	if err := ctx.Err(); err != nil {
		return Loaded{}, fmt.Errorf("context error: %w", err)
	}

	start := time.Now()

	ds, err := s.reader.ReadDataset(ctx)
	if err != nil {
		logger.Error("failed to read dataset", "error", err)
		return Loaded{}, err
	}

	ds, duplicates := Dedupe(ds)

	if err := s.Validate(ds); err != nil {
		logger.Error("dataset failed validation", "error", err)
		return Loaded{}, err
	}

	integrity := CheckIntegrity(ds)
	integrity.Duplicates = duplicates
	reportIntegrity(integrity)

	digest, err := Digest(ds)
	if err != nil {
		return Loaded{}, err
	}

	counts := ds.Counts()
	recordCounts(counts)
	metrics.DatasetLoadDuration.Observe(time.Since(start).Seconds())

	logger.Info("dataset loaded",
		"customers", counts.Customers,
		"orders", counts.Orders,
		"order_items", counts.OrderItems,
		"payments", counts.Payments,
		"reviews", counts.Reviews,
		"products", counts.Products,
		"digest", digest[:12],
		"elapsed", time.Since(start),
	)

	return Loaded{Dataset: ds, Integrity: integrity, Digest: digest}, nil
}

// Validate checks every row against its struct tags plus the money rules
// tags cannot express.
func (s *DatasetService) Validate(ds domain.Dataset) error {
	checks := []struct {
		entity string
		n      int
		row    func(i int) interface{}
	}{
		{"customers", len(ds.Customers), func(i int) interface{} { return &ds.Customers[i] }},
		{"orders", len(ds.Orders), func(i int) interface{} { return &ds.Orders[i] }},
		{"order_items", len(ds.OrderItems), func(i int) interface{} { return &ds.OrderItems[i] }},
		{"payments", len(ds.Payments), func(i int) interface{} { return &ds.Payments[i] }},
		{"reviews", len(ds.Reviews), func(i int) interface{} { return &ds.Reviews[i] }},
		{"products", len(ds.Products), func(i int) interface{} { return &ds.Products[i] }},
		{"sellers", len(ds.Sellers), func(i int) interface{} { return &ds.Sellers[i] }},
		{"category_translation", len(ds.Translations), func(i int) interface{} { return &ds.Translations[i] }},
		{"geolocation", len(ds.Geolocations), func(i int) interface{} { return &ds.Geolocations[i] }},
	}

	for _, c := range checks {
		for i := 0; i < c.n; i++ {
			if err := s.validate.Struct(c.row(i)); err != nil {
				return fmt.Errorf("%w: %s row %d: %v", apperrors.ErrInvalidRow, c.entity, i+1, err)
			}
		}
	}

	for i, it := range ds.OrderItems {
		if it.Price.IsNegative() || it.FreightValue.IsNegative() {
			return fmt.Errorf("%w: order_items row %d: negative price or freight", apperrors.ErrInvalidRow, i+1)
		}
	}
	for i, p := range ds.Payments {
		if p.Value.LessThan(decimal.Zero) {
			return fmt.Errorf("%w: payments row %d: negative payment value", apperrors.ErrInvalidRow, i+1)
		}
	}

	return nil
}

// CheckIntegrity counts child rows whose parent is missing.
func CheckIntegrity(ds domain.Dataset) domain.IntegrityReport {
	orders := make(map[string]struct{}, len(ds.Orders))
	for _, o := range ds.Orders {
		orders[o.OrderID] = struct{}{}
	}
	customers := make(map[string]struct{}, len(ds.Customers))
	for _, c := range ds.Customers {
		customers[c.CustomerID] = struct{}{}
	}
	products := make(map[string]struct{}, len(ds.Products))
	for _, p := range ds.Products {
		products[p.ProductID] = struct{}{}
	}
	sellers := make(map[string]struct{}, len(ds.Sellers))
	for _, s := range ds.Sellers {
		sellers[s.SellerID] = struct{}{}
	}

	var r domain.IntegrityReport
	for _, it := range ds.OrderItems {
		if _, ok := orders[it.OrderID]; !ok {
			r.ItemsWithoutOrder++
		}
		if _, ok := products[it.ProductID]; !ok {
			r.ItemsWithoutProduct++
		}
		// sellers are optional input; only check when some were loaded
		if len(sellers) > 0 {
			if _, ok := sellers[it.SellerID]; !ok {
				r.ItemsWithoutSeller++
			}
		}
	}
	for _, p := range ds.Payments {
		if _, ok := orders[p.OrderID]; !ok {
			r.PaymentsWithoutOrder++
		}
	}
	for _, rv := range ds.Reviews {
		if _, ok := orders[rv.OrderID]; !ok {
			r.ReviewsWithoutOrder++
		}
	}
	for _, o := range ds.Orders {
		if _, ok := customers[o.CustomerID]; !ok {
			r.OrdersWithoutCustomer++
		}
	}

	return r
}

func reportIntegrity(r domain.IntegrityReport) {
	relations := map[string]int{
		"order_items.order_id":    r.ItemsWithoutOrder,
		"order_items.product_id":  r.ItemsWithoutProduct,
		"order_items.seller_id":   r.ItemsWithoutSeller,
		"order_payments.order_id": r.PaymentsWithoutOrder,
		"order_reviews.order_id":  r.ReviewsWithoutOrder,
		"orders.customer_id":      r.OrdersWithoutCustomer,
	}
	for relation, n := range relations {
		metrics.OrphanRows.WithLabelValues(relation).Set(float64(n))
		if n > 0 {
			logger.Warn("orphan rows excluded from joined metrics", "relation", relation, "rows", n)
		}
	}

	d := r.Duplicates
	tables := map[string]int{
		"customers":            d.Customers,
		"orders":               d.Orders,
		"order_items":          d.OrderItems,
		"order_payments":       d.Payments,
		"order_reviews":        d.Reviews,
		"products":             d.Products,
		"sellers":              d.Sellers,
		"category_translation": d.Translations,
	}
	for table, n := range tables {
		metrics.DuplicateRows.WithLabelValues(table).Set(float64(n))
		if n > 0 {
			logger.Warn("duplicate rows dropped, first occurrence kept", "table", table, "rows", n)
		}
	}
}

func recordCounts(c domain.DatasetCounts) {
	metrics.DatasetRows.WithLabelValues("customers").Set(float64(c.Customers))
	metrics.DatasetRows.WithLabelValues("orders").Set(float64(c.Orders))
	metrics.DatasetRows.WithLabelValues("order_items").Set(float64(c.OrderItems))
	metrics.DatasetRows.WithLabelValues("payments").Set(float64(c.Payments))
	metrics.DatasetRows.WithLabelValues("reviews").Set(float64(c.Reviews))
	metrics.DatasetRows.WithLabelValues("products").Set(float64(c.Products))
	metrics.DatasetRows.WithLabelValues("sellers").Set(float64(c.Sellers))
	metrics.DatasetRows.WithLabelValues("category_translation").Set(float64(c.Translations))
	metrics.DatasetRows.WithLabelValues("geolocation").Set(float64(c.Geolocations))
}
