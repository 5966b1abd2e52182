package domain

// CREATE TABLE customers (
//     customer_id              VARCHAR(32) PRIMARY KEY,
//     customer_unique_id       VARCHAR(32) NOT NULL,
//     customer_zip_code_prefix VARCHAR(5),
//     customer_city            TEXT,
//     customer_state           CHAR(2)
// );

// Customer is one purchase account. A person holding several accounts
// shares the same CustomerUniqueID across them.
type Customer struct {
	CustomerID       string `gorm:"primaryKey;column:customer_id;type:varchar(32)" json:"customer_id" validate:"required"`
	CustomerUniqueID string `gorm:"column:customer_unique_id;type:varchar(32);not null" json:"customer_unique_id" validate:"required"`
	ZipPrefix        string `gorm:"column:customer_zip_code_prefix;type:varchar(5)" json:"zip_prefix"`
	City             string `gorm:"column:customer_city;type:text" json:"city"`
	State            string `gorm:"column:customer_state;type:char(2)" json:"state"`
}

func (Customer) TableName() string {
	return "customers"
}
