package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"olistInsights/domain"
)

type orderSeqKey struct {
	orderID string
	seq     int
}

type reviewKey struct {
	reviewID string
	orderID  string
}

// Dedupe drops rows that repeat an identity key, keeping the first
// occurrence. The keys match the table primary keys, so a CSV load and a
// postgres import of the same files produce the same dataset.
func Dedupe(ds domain.Dataset) (domain.Dataset, domain.DuplicateRows) {
	var d domain.DuplicateRows

	ds.Customers, d.Customers = firstWins(ds.Customers, func(c domain.Customer) string { return c.CustomerID })
	ds.Orders, d.Orders = firstWins(ds.Orders, func(o domain.Order) string { return o.OrderID })
	ds.OrderItems, d.OrderItems = firstWins(ds.OrderItems, func(it domain.OrderItem) orderSeqKey {
		return orderSeqKey{orderID: it.OrderID, seq: it.ItemSeq}
	})
	ds.Payments, d.Payments = firstWins(ds.Payments, func(p domain.Payment) orderSeqKey {
		return orderSeqKey{orderID: p.OrderID, seq: p.PaymentSeq}
	})
	ds.Reviews, d.Reviews = firstWins(ds.Reviews, func(r domain.Review) reviewKey {
		return reviewKey{reviewID: r.ReviewID, orderID: r.OrderID}
	})
	ds.Products, d.Products = firstWins(ds.Products, func(p domain.Product) string { return p.ProductID })
	ds.Sellers, d.Sellers = firstWins(ds.Sellers, func(s domain.Seller) string { return s.SellerID })
	ds.Translations, d.Translations = firstWins(ds.Translations, func(t domain.CategoryTranslation) string { return t.CategoryName })

	return ds, d
}

func firstWins[T any, K comparable](rows []T, key func(T) K) ([]T, int) {
	if len(rows) == 0 {
		return rows, 0
	}

	seen := make(map[K]struct{}, len(rows))
	kept := make([]T, 0, len(rows))
	for _, row := range rows {
		k := key(row)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, row)
	}
	return kept, len(rows) - len(kept)
}

// Digest hashes every row of ds. Two datasets with equal row values in the
// same order share a digest; editing any value changes it.
func Digest(ds domain.Dataset) (string, error) {
	h := sha256.New()
	enc := json.NewEncoder(h)

	tables := []struct {
		name string
		rows interface{}
	}{
		{"customers", ds.Customers},
		{"orders", ds.Orders},
		{"order_items", ds.OrderItems},
		{"payments", ds.Payments},
		{"reviews", ds.Reviews},
		{"products", ds.Products},
		{"sellers", ds.Sellers},
		{"category_translation", ds.Translations},
		{"geolocation", ds.Geolocations},
	}
	for _, t := range tables {
		if _, err := fmt.Fprintf(h, "%s\n", t.name); err != nil {
			return "", err
		}
		if err := enc.Encode(t.rows); err != nil {
			return "", fmt.Errorf("failed to hash %s: %w", t.name, err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
