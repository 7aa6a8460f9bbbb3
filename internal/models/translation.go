package models

// Translation holds the localized field overrides for one object in one shop
// language as a JSON object of field name to localized value.
//
// Object types in use: article, variant, propertyoption, propertyvalue,
// configuratorgroup, configuratoroption, config_units.
type Translation struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	ShopID     uint   `json:"shop_id" gorm:"index:idx_translation_lookup;not null"`
	ObjectType string `json:"object_type" gorm:"index:idx_translation_lookup;size:50;not null"`
	ObjectKey  uint   `json:"object_key" gorm:"index:idx_translation_lookup;not null"`
	Data       string `json:"data" gorm:"type:text"`
}
