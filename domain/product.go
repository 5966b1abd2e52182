package domain

// CREATE TABLE products (
//     product_id                 VARCHAR(32) PRIMARY KEY,
//     product_category_name      TEXT,
//     product_name_length        INT,
//     product_description_length INT,
//     product_photos_qty         INT,
//     product_weight_g           INT,
//     product_length_cm          INT,
//     product_height_cm          INT,
//     product_width_cm           INT
// );

// Product dimensional attributes are optional in the source files.
type Product struct {
	ProductID         string `gorm:"primaryKey;column:product_id;type:varchar(32)" json:"product_id" validate:"required"`
	CategoryName      string `gorm:"column:product_category_name;type:text" json:"category_name"`
	NameLength        *int   `gorm:"column:product_name_length" json:"name_length,omitempty"`
	DescriptionLength *int   `gorm:"column:product_description_length" json:"description_length,omitempty"`
	PhotosQty         *int   `gorm:"column:product_photos_qty" json:"photos_qty,omitempty"`
	WeightG           *int   `gorm:"column:product_weight_g" json:"weight_g,omitempty"`
	LengthCM          *int   `gorm:"column:product_length_cm" json:"length_cm,omitempty"`
	HeightCM          *int   `gorm:"column:product_height_cm" json:"height_cm,omitempty"`
	WidthCM           *int   `gorm:"column:product_width_cm" json:"width_cm,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
