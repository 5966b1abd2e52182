package domain

// CREATE TABLE geolocation (
//     id                          BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
//     geolocation_zip_code_prefix VARCHAR(5) NOT NULL,
//     geolocation_lat             DOUBLE PRECISION,
//     geolocation_lng             DOUBLE PRECISION,
//     geolocation_city            TEXT,
//     geolocation_state           CHAR(2)
// );

type Geolocation struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement" json:"-"`
	ZipPrefix string  `gorm:"column:geolocation_zip_code_prefix;type:varchar(5);not null" json:"zip_prefix" validate:"required"`
	Lat       float64 `gorm:"column:geolocation_lat" json:"lat" validate:"gte=-90,lte=90"`
	Lng       float64 `gorm:"column:geolocation_lng" json:"lng" validate:"gte=-180,lte=180"`
	City      string  `gorm:"column:geolocation_city;type:text" json:"city"`
	State     string  `gorm:"column:geolocation_state;type:char(2)" json:"state"`
}

func (Geolocation) TableName() string {
	return "geolocation"
}
