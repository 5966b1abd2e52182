package csvfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"olistInsights/domain"
	"olistInsights/pkg/logger"
)

// Canonical file names of the public Olist export.
const (
	CustomersFile    = "olist_customers_dataset.csv"
	OrdersFile       = "olist_orders_dataset.csv"
	OrderItemsFile   = "olist_order_items_dataset.csv"
	PaymentsFile     = "olist_order_payments_dataset.csv"
	ReviewsFile      = "olist_order_reviews_dataset.csv"
	ProductsFile     = "olist_products_dataset.csv"
	SellersFile      = "olist_sellers_dataset.csv"
	TranslationsFile = "product_category_name_translation.csv"
	GeolocationFile  = "olist_geolocation_dataset.csv"
)

// Reader loads a dataset from a directory of Olist CSV files.
type Reader struct {
	dir string
}

func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

func (r *Reader) path(name string) string {
	return filepath.Join(r.dir, name)
}

// ReadDataset reads every entity file. Geolocation is optional: the metrics
// never use it and the file is by far the largest.
func (r *Reader) ReadDataset(ctx context.Context) (domain.Dataset, error) {
	var ds domain.Dataset

	steps := []struct {
		file string
		read func() error
	}{
		{CustomersFile, func() (err error) { ds.Customers, err = r.Customers(); return }},
		{OrdersFile, func() (err error) { ds.Orders, err = r.Orders(); return }},
		{OrderItemsFile, func() (err error) { ds.OrderItems, err = r.OrderItems(); return }},
		{PaymentsFile, func() (err error) { ds.Payments, err = r.Payments(); return }},
		{ReviewsFile, func() (err error) { ds.Reviews, err = r.Reviews(); return }},
		{ProductsFile, func() (err error) { ds.Products, err = r.Products(); return }},
		{SellersFile, func() (err error) { ds.Sellers, err = r.Sellers(); return }},
		{TranslationsFile, func() (err error) { ds.Translations, err = r.Translations(); return }},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return domain.Dataset{}, fmt.Errorf("context error: %w", err)
		}
		if err := step.read(); err != nil {
			return domain.Dataset{}, err
		}
		logger.Debug("csv file loaded", "file", step.file)
	}

	if _, err := os.Stat(r.path(GeolocationFile)); errors.Is(err, os.ErrNotExist) {
		logger.Warn("geolocation file not found, skipping", "file", r.path(GeolocationFile))
		return ds, nil
	}

	geo, err := r.Geolocations()
	if err != nil {
		return domain.Dataset{}, err
	}
	ds.Geolocations = geo

	return ds, nil
}

func (r *Reader) Customers() ([]domain.Customer, error) {
	var out []domain.Customer
	err := readTable(r.path(CustomersFile),
		[]string{"customer_id", "customer_unique_id", "customer_zip_code_prefix", "customer_city", "customer_state"},
		func(rec *record) error {
			out = append(out, domain.Customer{
				CustomerID:       rec.str("customer_id"),
				CustomerUniqueID: rec.str("customer_unique_id"),
				ZipPrefix:        rec.str("customer_zip_code_prefix"),
				City:             rec.str("customer_city"),
				State:            rec.str("customer_state"),
			})
			return nil
		})
	return out, err
}

func (r *Reader) Orders() ([]domain.Order, error) {
	var out []domain.Order
	err := readTable(r.path(OrdersFile),
		[]string{
			"order_id", "customer_id", "order_status", "order_purchase_timestamp", "order_approved_at",
			"order_delivered_carrier_date", "order_delivered_customer_date", "order_estimated_delivery_date",
		},
		func(rec *record) error {
			out = append(out, domain.Order{
				OrderID:             rec.str("order_id"),
				CustomerID:          rec.str("customer_id"),
				Status:              rec.str("order_status"),
				PurchasedAt:         rec.timestamp("order_purchase_timestamp"),
				ApprovedAt:          rec.optTimestamp("order_approved_at"),
				DeliveredCarrierAt:  rec.optTimestamp("order_delivered_carrier_date"),
				DeliveredCustomerAt: rec.optTimestamp("order_delivered_customer_date"),
				EstimatedDeliveryAt: rec.optTimestamp("order_estimated_delivery_date"),
			})
			return nil
		})
	return out, err
}

func (r *Reader) OrderItems() ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	err := readTable(r.path(OrderItemsFile),
		[]string{"order_id", "order_item_id", "product_id", "seller_id", "shipping_limit_date", "price", "freight_value"},
		func(rec *record) error {
			out = append(out, domain.OrderItem{
				OrderID:         rec.str("order_id"),
				ItemSeq:         rec.integer("order_item_id"),
				ProductID:       rec.str("product_id"),
				SellerID:        rec.str("seller_id"),
				ShippingLimitAt: rec.optTimestamp("shipping_limit_date"),
				Price:           rec.money("price"),
				FreightValue:    rec.money("freight_value"),
			})
			return nil
		})
	return out, err
}

func (r *Reader) Payments() ([]domain.Payment, error) {
	var out []domain.Payment
	err := readTable(r.path(PaymentsFile),
		[]string{"order_id", "payment_sequential", "payment_type", "payment_installments", "payment_value"},
		func(rec *record) error {
			out = append(out, domain.Payment{
				OrderID:      rec.str("order_id"),
				PaymentSeq:   rec.integer("payment_sequential"),
				PaymentType:  rec.str("payment_type"),
				Installments: rec.integer("payment_installments"),
				Value:        rec.money("payment_value"),
			})
			return nil
		})
	return out, err
}

func (r *Reader) Reviews() ([]domain.Review, error) {
	var out []domain.Review
	err := readTable(r.path(ReviewsFile),
		[]string{"review_id", "order_id", "review_score", "review_creation_date", "review_answer_timestamp"},
		func(rec *record) error {
			out = append(out, domain.Review{
				ReviewID:       rec.str("review_id"),
				OrderID:        rec.str("order_id"),
				Score:          rec.integer("review_score"),
				CommentTitle:   rec.str("review_comment_title"),
				CommentMessage: rec.str("review_comment_message"),
				CreatedAt:      rec.optTimestamp("review_creation_date"),
				AnsweredAt:     rec.optTimestamp("review_answer_timestamp"),
			})
			return nil
		})
	return out, err
}

// Products accepts both the misspelled "lenght" headers of the public export
// and the corrected spelling.
func (r *Reader) Products() ([]domain.Product, error) {
	var out []domain.Product
	err := readTable(r.path(ProductsFile),
		[]string{"product_id", "product_category_name"},
		func(rec *record) error {
			out = append(out, domain.Product{
				ProductID:         rec.str("product_id"),
				CategoryName:      rec.str("product_category_name"),
				NameLength:        rec.optInteger(firstColumn(rec, "product_name_lenght", "product_name_length")),
				DescriptionLength: rec.optInteger(firstColumn(rec, "product_description_lenght", "product_description_length")),
				PhotosQty:         rec.optInteger("product_photos_qty"),
				WeightG:           rec.optInteger("product_weight_g"),
				LengthCM:          rec.optInteger("product_length_cm"),
				HeightCM:          rec.optInteger("product_height_cm"),
				WidthCM:           rec.optInteger("product_width_cm"),
			})
			return nil
		})
	return out, err
}

func (r *Reader) Sellers() ([]domain.Seller, error) {
	var out []domain.Seller
	err := readTable(r.path(SellersFile),
		[]string{"seller_id", "seller_zip_code_prefix", "seller_city", "seller_state"},
		func(rec *record) error {
			out = append(out, domain.Seller{
				SellerID:  rec.str("seller_id"),
				ZipPrefix: rec.str("seller_zip_code_prefix"),
				City:      rec.str("seller_city"),
				State:     rec.str("seller_state"),
			})
			return nil
		})
	return out, err
}

func (r *Reader) Translations() ([]domain.CategoryTranslation, error) {
	var out []domain.CategoryTranslation
	err := readTable(r.path(TranslationsFile),
		[]string{"product_category_name", "product_category_name_english"},
		func(rec *record) error {
			out = append(out, domain.CategoryTranslation{
				CategoryName:        rec.str("product_category_name"),
				CategoryNameEnglish: rec.str("product_category_name_english"),
			})
			return nil
		})
	return out, err
}

func (r *Reader) Geolocations() ([]domain.Geolocation, error) {
	var out []domain.Geolocation
	err := readTable(r.path(GeolocationFile),
		[]string{"geolocation_zip_code_prefix", "geolocation_lat", "geolocation_lng", "geolocation_city", "geolocation_state"},
		func(rec *record) error {
			out = append(out, domain.Geolocation{
				ZipPrefix: rec.str("geolocation_zip_code_prefix"),
				Lat:       rec.float("geolocation_lat"),
				Lng:       rec.float("geolocation_lng"),
				City:      rec.str("geolocation_city"),
				State:     rec.str("geolocation_state"),
			})
			return nil
		})
	return out, err
}

func firstColumn(rec *record, names ...string) string {
	for _, n := range names {
		if _, ok := rec.header[n]; ok {
			return n
		}
	}
	return names[0]
}
