package domain

import "github.com/shopspring/decimal"

// CREATE TABLE order_payments (
//     order_id             VARCHAR(32) NOT NULL,
//     payment_sequential   INT NOT NULL,
//     payment_type         TEXT NOT NULL,
//     payment_installments INT NOT NULL,
//     payment_value        NUMERIC(12,2) NOT NULL,
//     PRIMARY KEY (order_id, payment_sequential)
// );

type Payment struct {
	OrderID      string          `gorm:"primaryKey;column:order_id;type:varchar(32)" json:"order_id" validate:"required"`
	PaymentSeq   int             `gorm:"primaryKey;column:payment_sequential;autoIncrement:false" json:"payment_seq" validate:"gte=1"`
	PaymentType  string          `gorm:"column:payment_type;type:text;not null" json:"payment_type" validate:"required"`
	Installments int             `gorm:"column:payment_installments;not null" json:"installments" validate:"gte=0"`
	Value        decimal.Decimal `gorm:"column:payment_value;type:numeric(12,2);not null" json:"value"`
}

func (Payment) TableName() string {
	return "order_payments"
}
