package models

// Category is a catalog tree node. Path is the materialized id path including
// the node itself, slash-delimited with leading and trailing slashes
// ("/1/3/7/"), which makes subtree checks a single LIKE.
type Category struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	ParentID *uint  `json:"parent_id" gorm:"index"`
	Name     string `json:"name" gorm:"not null"`
	Path     string `json:"path" gorm:"index;not null"`
	Active   bool   `json:"active" gorm:"default:true"`
	Position int    `json:"position"`
}

type ProductCategory struct {
	ProductID  uint `json:"product_id" gorm:"primaryKey"`
	CategoryID uint `json:"category_id" gorm:"primaryKey"`
}

// SeoCategory is the per-shop canonical category used for SEO link building.
type SeoCategory struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	ProductID  uint `json:"product_id" gorm:"index;not null"`
	ShopID     uint `json:"shop_id" gorm:"not null"`
	CategoryID uint `json:"category_id" gorm:"not null"`
}

// SeoURL is a rewritten product URL per shop. Main marks the canonical one.
type SeoURL struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ShopID    uint   `json:"shop_id" gorm:"index;not null"`
	ProductID uint   `json:"product_id" gorm:"index;not null"`
	Path      string `json:"path" gorm:"not null"`
	Main      bool   `json:"main"`
}
