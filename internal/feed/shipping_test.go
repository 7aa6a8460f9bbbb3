package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"channelfeed/internal/models"
)

func TestShippingTimeLabel(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 1, 0)
	past := now.AddDate(0, -1, 0)

	tests := []struct {
		name    string
		variant models.Variant
		want    string
	}{
		{
			"inactive wins over stock",
			models.Variant{Active: false, InStock: 50, MinPurchase: 1},
			"not available",
		},
		{
			"future release is pre-order",
			models.Variant{Active: true, ReleaseDate: &future, InStock: 50, MinPurchase: 1},
			"available from 2024-07-01",
		},
		{
			"past release with stock",
			models.Variant{Active: true, ReleaseDate: &past, InStock: 50, MinPurchase: 1},
			"available now",
		},
		{
			"in stock",
			models.Variant{Active: true, InStock: 15, MinPurchase: 10},
			"available now",
		},
		{
			"below min purchase with shipping time",
			models.Variant{Active: true, InStock: 5, MinPurchase: 10, ShippingTime: "3"},
			"ships in 3 days",
		},
		{
			"below min purchase without shipping time",
			models.Variant{Active: true, InStock: 5, MinPurchase: 10},
			"not available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShippingTimeLabel(&tt.variant, now))
		})
	}
}
