package domain

import "time"

const OrderStatusDelivered = "delivered"

// CREATE TABLE orders (
//     order_id                      VARCHAR(32) PRIMARY KEY,
//     customer_id                   VARCHAR(32) NOT NULL,
//     order_status                  TEXT NOT NULL,
//     order_purchase_timestamp      TIMESTAMP NOT NULL,
//     order_approved_at             TIMESTAMP,
//     order_delivered_carrier_date  TIMESTAMP,
//     order_delivered_customer_date TIMESTAMP,
//     order_estimated_delivery_date TIMESTAMP
// );

type Order struct {
	OrderID             string     `gorm:"primaryKey;column:order_id;type:varchar(32)" json:"order_id" validate:"required"`
	CustomerID          string     `gorm:"column:customer_id;type:varchar(32);not null" json:"customer_id" validate:"required"`
	Status              string     `gorm:"column:order_status;type:text;not null" json:"status" validate:"required"`
	PurchasedAt         time.Time  `gorm:"column:order_purchase_timestamp;not null" json:"purchased_at" validate:"required"`
	ApprovedAt          *time.Time `gorm:"column:order_approved_at" json:"approved_at"`
	DeliveredCarrierAt  *time.Time `gorm:"column:order_delivered_carrier_date" json:"delivered_carrier_at"`
	DeliveredCustomerAt *time.Time `gorm:"column:order_delivered_customer_date" json:"delivered_customer_at"`
	EstimatedDeliveryAt *time.Time `gorm:"column:order_estimated_delivery_date" json:"estimated_delivery_at"`
}

func (Order) TableName() string {
	return "orders"
}

func (o Order) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}

// IsLate is true only when both dates are known and the actual delivery is
// strictly after the estimate.
func (o Order) IsLate() bool {
	if o.DeliveredCustomerAt == nil || o.EstimatedDeliveryAt == nil {
		return false
	}
	return o.DeliveredCustomerAt.After(*o.EstimatedDeliveryAt)
}

// DeliveryDays is the number of whole days between purchase and delivery to
// the customer, truncated. ok is false when the order has no delivery date.
func (o Order) DeliveryDays() (days int, ok bool) {
	if o.DeliveredCustomerAt == nil {
		return 0, false
	}
	elapsed := o.DeliveredCustomerAt.Sub(o.PurchasedAt)
	return int(elapsed / (24 * time.Hour)), true
}
