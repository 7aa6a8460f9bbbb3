package models

// Shop is one sales channel; CategoryID is the root of the shop's category
// subtree.
type Shop struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"not null"`
	Host            string `json:"host"`
	BasePath        string `json:"base_path"`
	Secure          bool   `json:"secure"`
	Active          bool   `json:"active" gorm:"default:true;index"`
	Default         bool   `json:"default"`
	CategoryID      uint   `json:"category_id"`
	CustomerGroupID uint   `json:"customer_group_id"`
	CurrencyID      uint   `json:"currency_id"`

	CustomerGroup CustomerGroup `json:"customer_group" gorm:"foreignKey:CustomerGroupID"`
	Currency      Currency      `json:"currency" gorm:"foreignKey:CurrencyID"`
}

// BaseURL is the absolute root under which product links are built.
func (s *Shop) BaseURL() string {
	scheme := "http"
	if s.Secure {
		scheme = "https"
	}
	return scheme + "://" + s.Host + s.BasePath
}

// CustomerGroup is a pricing tier. TaxInput means the group sees gross prices,
// so net prices are converted at the reporting boundary.
type CustomerGroup struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Key      string `json:"key" gorm:"size:30;uniqueIndex;not null"`
	Name     string `json:"name"`
	TaxInput bool   `json:"tax_input"`
}

type Currency struct {
	ID     uint    `json:"id" gorm:"primaryKey"`
	Code   string  `json:"code" gorm:"size:3;not null"`
	Factor float64 `json:"factor" gorm:"default:1"`
}
