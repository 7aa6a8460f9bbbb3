package feed

import "channelfeed/internal/catalog"

// Item is the flat export record for one variant. Field names follow the wire
// format the feed service polls; the record is built fresh per request and
// never persisted.
type Item struct {
	ID             uint   `json:"id"`
	GroupID        uint   `json:"groupId"`
	ArticleNumber  string `json:"articleNumber"`
	Active         bool   `json:"active"`
	Name           string `json:"name"`
	AdditionalText string `json:"additionalText"`
	Supplier       string `json:"supplier"`
	SupplierNumber string `json:"supplierNumber"`
	EAN            string `json:"ean"`

	Description     string `json:"description"`
	DescriptionLong string `json:"descriptionLong"`
	Keywords        string `json:"keywords"`
	ReleaseDate     string `json:"releaseDate"`
	IsVariant       bool   `json:"isVariant"`

	Images        []string `json:"images"`
	VariantImages []string `json:"variantImages"`

	URL        string `json:"url"`
	SeoURL     string `json:"seoUrl"`
	RewriteURL string `json:"rewriteUrl"`

	Stock       int  `json:"stock"`
	MinPurchase int  `json:"minPurchase"`
	MaxPurchase int  `json:"maxPurchase"`
	MinStock    int  `json:"minStock"`
	LastStock   bool `json:"lastStock"`

	PurchasePrice     float64    `json:"purchasePrice,omitempty"`
	Prices            PriceTable `json:"prices"`
	PriceNetto        float64    `json:"priceNetto"`
	PriceBrutto       float64    `json:"priceBrutto"`
	PseudoPriceNetto  float64    `json:"pseudoPriceNetto"`
	PseudoPriceBrutto float64    `json:"pseudoPriceBrutto"`
	AdditionalPrices  PriceTable `json:"additionalPrices"`
	Currency          string     `json:"currency"`
	TaxRate           float64    `json:"taxRate"`

	ShippingTime     string  `json:"shippingTime"`
	ShippingTimeText string  `json:"shippingTimeText"`
	ShippingFree     bool    `json:"shippingFree"`
	ShippingCosts    float64 `json:"shippingCosts"`

	Weight float64 `json:"weight"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Length float64 `json:"length"`

	PackUnit      string  `json:"packUnit"`
	PurchaseUnit  float64 `json:"purchaseUnit"`
	ReferenceUnit float64 `json:"referenceUnit"`
	Unit          string  `json:"unit"`
	UnitName      string  `json:"unitName"`

	Categories  [][]string `json:"categories"`
	SeoCategory []string   `json:"seoCategory"`

	Properties             map[string][]string       `json:"properties"`
	Options                map[string]string         `json:"options"`
	Similar                []catalog.RelatedProduct  `json:"similar"`
	Related                []catalog.RelatedProduct  `json:"related"`
	ExcludedCustomerGroups map[string]string         `json:"excludedCustomerGroups"`
	Attributes             map[string]string         `json:"attributes"`

	Added        string `json:"added"`
	Changed      string `json:"changed"`
	Notification bool   `json:"notification"`
}
