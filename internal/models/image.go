package models

type Media struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Path string `json:"path" gorm:"not null"`
}

// Image attaches media to a product or to a single variant. Variant images
// carry no media of their own; they point at a parent product image instead.
type Image struct {
	ID        uint  `json:"id" gorm:"primaryKey"`
	ProductID *uint `json:"product_id" gorm:"index"`
	VariantID *uint `json:"variant_id" gorm:"index"`
	ParentID  *uint `json:"parent_id"`
	MediaID   *uint `json:"media_id"`
	Main      int   `json:"main" gorm:"default:2"`
	Position  int   `json:"position"`

	Media  *Media `json:"media" gorm:"foreignKey:MediaID"`
	Parent *Image `json:"parent" gorm:"foreignKey:ParentID"`
}
