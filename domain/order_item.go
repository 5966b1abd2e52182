package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CREATE TABLE order_items (
//     order_id            VARCHAR(32) NOT NULL,
//     order_item_id       INT NOT NULL,
//     product_id          VARCHAR(32) NOT NULL,
//     seller_id           VARCHAR(32) NOT NULL,
//     shipping_limit_date TIMESTAMP,
//     price               NUMERIC(12,2) NOT NULL,
//     freight_value       NUMERIC(12,2) NOT NULL,
//     PRIMARY KEY (order_id, order_item_id)
// );

type OrderItem struct {
	OrderID         string          `gorm:"primaryKey;column:order_id;type:varchar(32)" json:"order_id" validate:"required"`
	ItemSeq         int             `gorm:"primaryKey;column:order_item_id;autoIncrement:false" json:"item_seq" validate:"gte=1"`
	ProductID       string          `gorm:"column:product_id;type:varchar(32);not null" json:"product_id" validate:"required"`
	SellerID        string          `gorm:"column:seller_id;type:varchar(32);not null" json:"seller_id" validate:"required"`
	ShippingLimitAt *time.Time      `gorm:"column:shipping_limit_date" json:"shipping_limit_at"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	FreightValue    decimal.Decimal `gorm:"column:freight_value;type:numeric(12,2);not null" json:"freight_value"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// Total is what the item contributes to its order total.
func (i OrderItem) Total() decimal.Decimal {
	return i.Price.Add(i.FreightValue)
}
