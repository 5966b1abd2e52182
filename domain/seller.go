package domain

// CREATE TABLE sellers (
//     seller_id              VARCHAR(32) PRIMARY KEY,
//     seller_zip_code_prefix VARCHAR(5),
//     seller_city            TEXT,
//     seller_state           CHAR(2)
// );

type Seller struct {
	SellerID  string `gorm:"primaryKey;column:seller_id;type:varchar(32)" json:"seller_id" validate:"required"`
	ZipPrefix string `gorm:"column:seller_zip_code_prefix;type:varchar(5)" json:"zip_prefix"`
	City      string `gorm:"column:seller_city;type:text" json:"city"`
	State     string `gorm:"column:seller_state;type:char(2)" json:"state"`
}

func (Seller) TableName() string {
	return "sellers"
}
