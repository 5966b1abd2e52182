//go:build !integration

package dataset

import (
	"context"
	"errors"
	"testing"
	"time"

	"olistInsights/domain"
	"olistInsights/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	ds  domain.Dataset
	err error
}

func (f *fakeReader) ReadDataset(ctx context.Context) (domain.Dataset, error) {
	return f.ds, f.err
}

func validDataset() domain.Dataset {
	purchased := time.Date(2018, 1, 1, 10, 0, 0, 0, time.UTC)
	return domain.Dataset{
		Customers: []domain.Customer{{CustomerID: "c1", CustomerUniqueID: "u1", State: "SP"}},
		Orders: []domain.Order{{
			OrderID: "o1", CustomerID: "c1", Status: domain.OrderStatusDelivered, PurchasedAt: purchased,
		}},
		OrderItems: []domain.OrderItem{{
			OrderID: "o1", ItemSeq: 1, ProductID: "p1", SellerID: "s1",
			Price: decimal.RequireFromString("10.00"), FreightValue: decimal.RequireFromString("1.00"),
		}},
		Payments: []domain.Payment{{
			OrderID: "o1", PaymentSeq: 1, PaymentType: "credit_card", Installments: 1,
			Value: decimal.RequireFromString("11.00"),
		}},
		Reviews:      []domain.Review{{ReviewID: "r1", OrderID: "o1", Score: 5}},
		Products:     []domain.Product{{ProductID: "p1", CategoryName: "moveis"}},
		Sellers:      []domain.Seller{{SellerID: "s1"}},
		Translations: []domain.CategoryTranslation{{CategoryName: "moveis", CategoryNameEnglish: "furniture"}},
	}
}

func TestDatasetService_Load(t *testing.T) {
	svc := NewDatasetService(&fakeReader{ds: validDataset()}, nil)

	loaded, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, loaded.Dataset.Orders, 1)
	assert.True(t, loaded.Integrity.Clean())
	assert.Len(t, loaded.Digest, 64)
}

func TestDatasetService_Load_ReaderError(t *testing.T) {
	readErr := errors.New("disk gone")
	svc := NewDatasetService(&fakeReader{err: readErr}, nil)

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, readErr)
}

func TestDatasetService_Load_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDatasetService(&fakeReader{ds: validDataset()}, nil).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDatasetService_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(ds *domain.Dataset)
		entity string
	}{
		{"review score above five", func(ds *domain.Dataset) { ds.Reviews[0].Score = 6 }, "reviews row 1"},
		{"review score zero", func(ds *domain.Dataset) { ds.Reviews[0].Score = 0 }, "reviews row 1"},
		{"missing order id", func(ds *domain.Dataset) { ds.Orders[0].OrderID = "" }, "orders row 1"},
		{"missing customer unique id", func(ds *domain.Dataset) { ds.Customers[0].CustomerUniqueID = "" }, "customers row 1"},
		{"negative price", func(ds *domain.Dataset) { ds.OrderItems[0].Price = decimal.RequireFromString("-1") }, "order_items row 1"},
		{"negative freight", func(ds *domain.Dataset) { ds.OrderItems[0].FreightValue = decimal.RequireFromString("-0.01") }, "order_items row 1"},
		{"negative payment", func(ds *domain.Dataset) { ds.Payments[0].Value = decimal.RequireFromString("-5") }, "payments row 1"},
		{"missing payment type", func(ds *domain.Dataset) { ds.Payments[0].PaymentType = "" }, "payments row 1"},
	}

	svc := NewDatasetService(nil, nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ds := validDataset()
			tc.mutate(&ds)

			err := svc.Validate(ds)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidRow)
			assert.Contains(t, err.Error(), tc.entity)
		})
	}

	assert.NoError(t, svc.Validate(validDataset()))
}

func TestDatasetService_Load_InvalidRowAborts(t *testing.T) {
	ds := validDataset()
	ds.Reviews[0].Score = 9

	_, err := NewDatasetService(&fakeReader{ds: ds}, nil).Load(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrInvalidRow)
}

func TestCheckIntegrity(t *testing.T) {
	ds := validDataset()
	ds.OrderItems = append(ds.OrderItems,
		domain.OrderItem{OrderID: "ghost", ItemSeq: 1, ProductID: "p1", SellerID: "s1"},
		domain.OrderItem{OrderID: "o1", ItemSeq: 2, ProductID: "nope", SellerID: "s9"},
	)
	ds.Payments = append(ds.Payments, domain.Payment{OrderID: "ghost", PaymentSeq: 1})
	ds.Reviews = append(ds.Reviews, domain.Review{ReviewID: "r2", OrderID: "ghost"}, domain.Review{ReviewID: "r3", OrderID: "ghost2"})
	ds.Orders = append(ds.Orders, domain.Order{OrderID: "o2", CustomerID: "nobody"})

	got := CheckIntegrity(ds)
	assert.Equal(t, domain.IntegrityReport{
		ItemsWithoutOrder:     1,
		ItemsWithoutProduct:   1,
		ItemsWithoutSeller:    1,
		PaymentsWithoutOrder:  1,
		ReviewsWithoutOrder:   2,
		OrdersWithoutCustomer: 1,
	}, got)
	assert.False(t, got.Clean())
}

func TestCheckIntegrity_SellersOptional(t *testing.T) {
	ds := validDataset()
	ds.Sellers = nil

	assert.True(t, CheckIntegrity(ds).Clean())
}

func TestDatasetService_Load_DropsDuplicateItems(t *testing.T) {
	ds := validDataset()
	ds.OrderItems = []domain.OrderItem{
		{OrderID: "o1", ItemSeq: 1, ProductID: "p1", SellerID: "s1", Price: decimal.RequireFromString("100"), FreightValue: decimal.RequireFromString("10")},
		{OrderID: "o1", ItemSeq: 1, ProductID: "p1", SellerID: "s1", Price: decimal.RequireFromString("100"), FreightValue: decimal.RequireFromString("10")},
	}

	loaded, err := NewDatasetService(&fakeReader{ds: ds}, nil).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.Dataset.OrderItems, 1)

	it := loaded.Dataset.OrderItems[0]
	assert.Equal(t, "110.00", it.Price.Add(it.FreightValue).StringFixed(2))
	assert.Equal(t, 1, loaded.Integrity.Duplicates.OrderItems)
	assert.False(t, loaded.Integrity.Clean())
}

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	ds := validDataset()
	ds.Orders = append(ds.Orders, domain.Order{OrderID: "o1", CustomerID: "c1", Status: "canceled"})
	ds.Customers = append(ds.Customers, domain.Customer{CustomerID: "c1", CustomerUniqueID: "other"})
	ds.Payments = append(ds.Payments,
		domain.Payment{OrderID: "o1", PaymentSeq: 1, PaymentType: "voucher"},
		domain.Payment{OrderID: "o1", PaymentSeq: 2, PaymentType: "voucher"},
	)
	ds.Reviews = append(ds.Reviews,
		domain.Review{ReviewID: "r1", OrderID: "o1", Score: 1},
		domain.Review{ReviewID: "r1", OrderID: "o2", Score: 1},
	)
	ds.Products = append(ds.Products, domain.Product{ProductID: "p1"})
	ds.Sellers = append(ds.Sellers, domain.Seller{SellerID: "s1"})
	ds.Translations = append(ds.Translations, domain.CategoryTranslation{CategoryName: "moveis", CategoryNameEnglish: "chairs"})

	got, dropped := Dedupe(ds)

	assert.Equal(t, domain.DuplicateRows{
		Customers:    1,
		Orders:       1,
		Payments:     1,
		Reviews:      1,
		Products:     1,
		Sellers:      1,
		Translations: 1,
	}, dropped)
	assert.Equal(t, 7, dropped.Total())

	require.Len(t, got.Orders, 1)
	assert.Equal(t, domain.OrderStatusDelivered, got.Orders[0].Status)
	assert.Equal(t, "u1", got.Customers[0].CustomerUniqueID)
	assert.Equal(t, "credit_card", got.Payments[0].PaymentType)
	assert.Len(t, got.Payments, 2, "a new payment_sequential is a new payment")
	assert.Len(t, got.Reviews, 2, "the same review id on another order is kept")
	assert.Equal(t, 5, got.Reviews[0].Score)
	assert.Equal(t, "furniture", got.Translations[0].CategoryNameEnglish)
}

func TestDedupe_CleanDatasetUnchanged(t *testing.T) {
	ds := validDataset()

	got, dropped := Dedupe(ds)
	assert.Zero(t, dropped.Total())
	assert.Equal(t, ds, got)
}

func TestDigest(t *testing.T) {
	a, err := Digest(validDataset())
	require.NoError(t, err)
	again, err := Digest(validDataset())
	require.NoError(t, err)
	assert.Equal(t, a, again)

	// same row counts, one price edited
	edited := validDataset()
	edited.OrderItems[0].Price = decimal.RequireFromString("12.00")
	b, err := Digest(edited)
	require.NoError(t, err)

	assert.Equal(t, validDataset().Counts(), edited.Counts())
	assert.NotEqual(t, a, b)
}
