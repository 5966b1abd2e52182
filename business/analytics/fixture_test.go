//go:build !integration

package analytics

import (
	"testing"
	"time"

	"olistInsights/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// fixture assembles small datasets for metric tests.
type fixture struct {
	ds domain.Dataset
}

func newFixture() *fixture {
	return &fixture{}
}

func (f *fixture) customer(id, uniqueID, city, state string) *fixture {
	f.ds.Customers = append(f.ds.Customers, domain.Customer{
		CustomerID:       id,
		CustomerUniqueID: uniqueID,
		City:             city,
		State:            state,
	})
	return f
}

// order adds an order; empty delivered or estimated strings leave the date
// unset.
func (f *fixture) order(id, customerID, status, purchased, delivered, estimated string) *fixture {
	o := domain.Order{
		OrderID:     id,
		CustomerID:  customerID,
		Status:      status,
		PurchasedAt: ts(purchased),
	}
	if delivered != "" {
		t := ts(delivered)
		o.DeliveredCustomerAt = &t
	}
	if estimated != "" {
		t := ts(estimated)
		o.EstimatedDeliveryAt = &t
	}
	f.ds.Orders = append(f.ds.Orders, o)
	return f
}

func (f *fixture) delivered(id, customerID, purchased string) *fixture {
	return f.order(id, customerID, domain.OrderStatusDelivered, purchased, "", "")
}

func (f *fixture) item(orderID string, seq int, productID, price, freight string) *fixture {
	f.ds.OrderItems = append(f.ds.OrderItems, domain.OrderItem{
		OrderID:      orderID,
		ItemSeq:      seq,
		ProductID:    productID,
		SellerID:     "s1",
		Price:        dec(price),
		FreightValue: dec(freight),
	})
	return f
}

func (f *fixture) product(id, category string) *fixture {
	f.ds.Products = append(f.ds.Products, domain.Product{ProductID: id, CategoryName: category})
	return f
}

func (f *fixture) translation(name, english string) *fixture {
	f.ds.Translations = append(f.ds.Translations, domain.CategoryTranslation{
		CategoryName:        name,
		CategoryNameEnglish: english,
	})
	return f
}

func (f *fixture) review(id, orderID string, score int) *fixture {
	f.ds.Reviews = append(f.ds.Reviews, domain.Review{ReviewID: id, OrderID: orderID, Score: score})
	return f
}

func (f *fixture) payment(orderID string, seq int, paymentType, value string) *fixture {
	f.ds.Payments = append(f.ds.Payments, domain.Payment{
		OrderID:      orderID,
		PaymentSeq:   seq,
		PaymentType:  paymentType,
		Installments: 1,
		Value:        dec(value),
	})
	return f
}

func (f *fixture) snapshot() *Snapshot {
	return NewSnapshot(f.ds)
}

func ts(v string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", v, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// assertDecimal compares by value, got is a decimal.Decimal or domain.Money.
func assertDecimal(t *testing.T, want string, got interface{}) {
	t.Helper()
	var d decimal.Decimal
	switch v := got.(type) {
	case decimal.Decimal:
		d = v
	case domain.Money:
		d = v.Decimal
	default:
		t.Fatalf("assertDecimal: unsupported type %T", got)
	}
	assert.Truef(t, dec(want).Equal(d), "want %s, got %s", want, d.String())
}
