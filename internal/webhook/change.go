package webhook

import "github.com/shopspring/decimal"

// Snapshot captures the webhook-relevant state of one variant around a save.
type Snapshot struct {
	Number    string  `json:"number"`
	InStock   int     `json:"in_stock"`
	Price     float64 `json:"price"`
	LastStock bool    `json:"last_stock"`
}

// Decision says whether a save warrants a webhook push and for which product
// number. Returned as a plain value so the caller hands it straight to the
// notifier; there is no shared pre/post-dispatch state.
type Decision struct {
	Changed bool
	Number  string
}

// DetectChange compares pre-save and post-save snapshots. Stock and the
// deny-sale-at-zero flag compare exactly; prices compare rounded to two
// decimal places, the resolution the feed reports.
func DetectChange(before, after Snapshot) Decision {
	changed := before.InStock != after.InStock ||
		!round2(before.Price).Equal(round2(after.Price)) ||
		before.LastStock != after.LastStock

	return Decision{Changed: changed, Number: after.Number}
}

func round2(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}
