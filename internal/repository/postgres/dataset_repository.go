package postgres

import (
	"context"
	"fmt"
	"strings"

	"olistInsights/business/dataset"
	"olistInsights/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Tables in import order; truncation lists them in one statement.
var datasetTables = []string{
	"customers",
	"orders",
	"order_items",
	"order_payments",
	"order_reviews",
	"products",
	"sellers",
	"product_category_name_translation",
	"geolocation",
}

type DatasetRepository struct {
	DB        *gorm.DB
	batchSize int
}

var _ dataset.DatasetReader = (*DatasetRepository)(nil)

func NewDatasetRepository(db *gorm.DB, batchSize int) *DatasetRepository {
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &DatasetRepository{
		DB:        db,
		batchSize: batchSize,
	}
}

// Import replaces the stored dataset with ds inside one transaction.
// Duplicate keys in the source keep their first row.
func (r *DatasetRepository) Import(ctx context.Context, ds domain.Dataset) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("TRUNCATE TABLE " + strings.Join(datasetTables, ", ") + " RESTART IDENTITY").Error; err != nil {
			return fmt.Errorf("failed to truncate dataset tables: %w", err)
		}

		insert := tx.Clauses(clause.OnConflict{DoNothing: true})
		steps := []struct {
			table string
			rows  interface{}
			n     int
		}{
			{"customers", &ds.Customers, len(ds.Customers)},
			{"orders", &ds.Orders, len(ds.Orders)},
			{"order_items", &ds.OrderItems, len(ds.OrderItems)},
			{"order_payments", &ds.Payments, len(ds.Payments)},
			{"order_reviews", &ds.Reviews, len(ds.Reviews)},
			{"products", &ds.Products, len(ds.Products)},
			{"sellers", &ds.Sellers, len(ds.Sellers)},
			{"product_category_name_translation", &ds.Translations, len(ds.Translations)},
			{"geolocation", &ds.Geolocations, len(ds.Geolocations)},
		}

		for _, step := range steps {
			if step.n == 0 {
				continue
			}
			if err := insert.CreateInBatches(step.rows, r.batchSize).Error; err != nil {
				return fmt.Errorf("failed to import %s: %w", step.table, err)
			}
		}

		return nil
	})
}

// ReadDataset loads every table back into memory.
func (r *DatasetRepository) ReadDataset(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, fmt.Errorf("context error: %w", err)
	}

	var ds domain.Dataset
	db := r.DB.WithContext(ctx)

	steps := []struct {
		table string
		dest  interface{}
		order string
	}{
		{"customers", &ds.Customers, "customer_id"},
		{"orders", &ds.Orders, "order_id"},
		{"order_items", &ds.OrderItems, "order_id, order_item_id"},
		{"order_payments", &ds.Payments, "order_id, payment_sequential"},
		{"order_reviews", &ds.Reviews, "review_id, order_id"},
		{"products", &ds.Products, "product_id"},
		{"sellers", &ds.Sellers, "seller_id"},
		{"product_category_name_translation", &ds.Translations, "product_category_name"},
		{"geolocation", &ds.Geolocations, "id"},
	}

	for _, step := range steps {
		if err := db.Order(step.order).Find(step.dest).Error; err != nil {
			return domain.Dataset{}, fmt.Errorf("failed to read %s: %w", step.table, err)
		}
	}

	return ds, nil
}
