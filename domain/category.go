package domain

import "strings"

// UnknownCategory labels items whose product has no category or whose
// category has no English translation.
const UnknownCategory = "Unknown"

// CREATE TABLE product_category_name_translation (
//     product_category_name         TEXT PRIMARY KEY,
//     product_category_name_english TEXT NOT NULL
// );

type CategoryTranslation struct {
	CategoryName        string `gorm:"primaryKey;column:product_category_name;type:text" json:"category_name" validate:"required"`
	CategoryNameEnglish string `gorm:"column:product_category_name_english;type:text;not null" json:"category_name_english" validate:"required"`
}

func (CategoryTranslation) TableName() string {
	return "product_category_name_translation"
}

// ResolveCategory maps a Portuguese category name to its English label,
// falling back to UnknownCategory.
func ResolveCategory(translations map[string]string, name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return UnknownCategory
	}
	if english, ok := translations[name]; ok && english != "" {
		return english
	}
	return UnknownCategory
}
