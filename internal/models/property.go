package models

type PropertyGroup struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
}

// PropertyOption is a filterable attribute within a group, e.g. "Größe".
type PropertyOption struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	GroupID uint   `json:"group_id" gorm:"index;not null"`
	Name    string `json:"name" gorm:"not null"`
}

type PropertyValue struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	OptionID uint   `json:"option_id" gorm:"index;not null"`
	Value    string `json:"value" gorm:"not null"`

	Option PropertyOption `json:"option" gorm:"foreignKey:OptionID"`
}

type ProductPropertyValue struct {
	ProductID uint `json:"product_id" gorm:"primaryKey"`
	ValueID   uint `json:"value_id" gorm:"primaryKey"`
}

// PropertyValueAttribute is one custom-attribute column of a property value,
// exported alongside the value under a combined option_attribute key.
type PropertyValueAttribute struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	ValueID uint   `json:"value_id" gorm:"index;not null"`
	Name    string `json:"name" gorm:"not null"`
	Value   string `json:"value"`
}

// ConfiguratorGroup and ConfiguratorOption describe what distinguishes the
// variants of one product (e.g. group "Farbe", options "Rot"/"Blau").
type ConfiguratorGroup struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
}

type ConfiguratorOption struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	GroupID uint   `json:"group_id" gorm:"index;not null"`
	Name    string `json:"name" gorm:"not null"`

	Group ConfiguratorGroup `json:"group" gorm:"foreignKey:GroupID"`
}

type VariantConfiguratorOption struct {
	VariantID uint `json:"variant_id" gorm:"primaryKey"`
	OptionID  uint `json:"option_id" gorm:"primaryKey"`
}
