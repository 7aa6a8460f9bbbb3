package feed

import (
	"fmt"
	"time"

	"channelfeed/internal/models"
)

// Shipping availability labels reported to the feed service.
const (
	labelNotAvailable = "not available"
	labelAvailableNow = "available now"
)

// ShippingTimeLabel derives the human-readable availability line for a
// variant. Precedence: inactive beats everything, then pre-order by release
// date, then plain in-stock, then an explicit shipping time.
func ShippingTimeLabel(v *models.Variant, now time.Time) string {
	switch {
	case !v.Active:
		return labelNotAvailable
	case v.ReleaseDate != nil && v.ReleaseDate.After(now):
		return "available from " + v.ReleaseDate.Format("2006-01-02")
	case v.InStock >= v.MinPurchase:
		return labelAvailableNow
	case v.ShippingTime != "":
		return fmt.Sprintf("ships in %s days", v.ShippingTime)
	default:
		return labelNotAvailable
	}
}
