package models

import "time"

type Product struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	Description     string    `json:"description"`
	DescriptionLong string    `json:"description_long"`
	Keywords        string    `json:"keywords"`
	Active          bool      `json:"active" gorm:"default:true;index"`
	Notification    bool      `json:"notification"`
	LastStock       bool      `json:"last_stock"`
	ConfiguratorSet uint      `json:"configurator_set"`
	SupplierID      uint      `json:"supplier_id"`
	TaxID           uint      `json:"tax_id"`
	PropertyGroupID *uint     `json:"property_group_id"`
	Added           time.Time `json:"added"`
	Changed         time.Time `json:"changed"`

	Tax      Tax      `json:"tax" gorm:"foreignKey:TaxID"`
	Supplier Supplier `json:"supplier" gorm:"foreignKey:SupplierID"`
}

// HasConfigurator reports whether the product sells as multiple variants.
func (p *Product) HasConfigurator() bool {
	return p.ConfiguratorSet > 0
}

// Variant is one sellable configuration of a product with its own stock,
// price rows and order number. Kind 1 marks the main variant.
type Variant struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	ProductID      uint       `json:"product_id" gorm:"index;not null"`
	Number         string     `json:"number" gorm:"uniqueIndex;not null"`
	Kind           int        `json:"kind" gorm:"default:2"`
	Active         bool       `json:"active" gorm:"default:true"`
	EAN            string     `json:"ean"`
	SupplierNumber string     `json:"supplier_number"`
	AdditionalText string     `json:"additional_text"`
	InStock        int        `json:"in_stock"`
	StockMin       int        `json:"stock_min"`
	MinPurchase    int        `json:"min_purchase" gorm:"default:1"`
	MaxPurchase    int        `json:"max_purchase"`
	PurchasePrice  float64    `json:"purchase_price"`
	Weight         float64    `json:"weight"`
	Width          float64    `json:"width"`
	Height         float64    `json:"height"`
	Length         float64    `json:"length"`
	ShippingTime   string     `json:"shipping_time"`
	ShippingFree   bool       `json:"shipping_free"`
	ReleaseDate    *time.Time `json:"release_date"`
	PackUnit       string     `json:"pack_unit"`
	PurchaseUnit   float64    `json:"purchase_unit"`
	ReferenceUnit  float64    `json:"reference_unit"`
	UnitID         *uint      `json:"unit_id"`

	Product Product `json:"product" gorm:"foreignKey:ProductID"`
	Unit    *Unit   `json:"unit" gorm:"foreignKey:UnitID"`
}

// Price is one quantity-tier price row for a variant and customer group.
// Amounts are stored net; To is "any" for the open-ended tier.
type Price struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	VariantID        uint    `json:"variant_id" gorm:"index;not null"`
	CustomerGroupKey string  `json:"customer_group_key" gorm:"size:30;index;not null"`
	FromQty          int     `json:"from_qty" gorm:"default:1"`
	To               string  `json:"to" gorm:"default:any"`
	Price            float64 `json:"price"`
	PseudoPrice      float64 `json:"pseudo_price"`
}

type Tax struct {
	ID   uint    `json:"id" gorm:"primaryKey"`
	Name string  `json:"name"`
	Rate float64 `json:"rate" gorm:"not null"`
}

type Supplier struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
}

// Unit is a measurement unit (e.g. "l" / "Liter") attached to a variant.
type Unit struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Unit string `json:"unit"`
	Name string `json:"name"`
}

// VariantAttribute is one row of the open custom-attribute map of a variant.
// Keys are free-text column names; the feed layer validates them against the
// configured whitelist and sanitizes them before export.
type VariantAttribute struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	VariantID uint   `json:"variant_id" gorm:"index;not null"`
	Name      string `json:"name" gorm:"not null"`
	Value     string `json:"value"`
}

// ProductRelation links a product to a similar or accessory product.
type ProductRelation struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"product_id" gorm:"index;not null"`
	RelatedID uint   `json:"related_id" gorm:"not null"`
	Kind      string `json:"kind" gorm:"size:20;not null"`
}

const (
	RelationSimilar = "similar"
	RelationRelated = "related"
)

// ProductAvoidCustomerGroup excludes a customer group from seeing a product.
type ProductAvoidCustomerGroup struct {
	ProductID       uint `json:"product_id" gorm:"primaryKey"`
	CustomerGroupID uint `json:"customer_group_id" gorm:"primaryKey"`
}
