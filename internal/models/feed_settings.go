package models

// FeedSettings is the per-shop feed configuration. One row per shop; missing
// rows fall back to defaults (see DefaultPollLimit).
type FeedSettings struct {
	ID                   uint   `json:"id" gorm:"primaryKey"`
	ShopID               uint   `json:"shop_id" gorm:"uniqueIndex;not null"`
	WebhookURL           string `json:"webhook_url"`
	AllowRealTimeUpdates bool   `json:"allow_real_time_updates"`
	OnlyWithImages       bool   `json:"only_with_images"`
	OnlyActive           bool   `json:"only_active"`
	OnlyWithEAN          bool   `json:"only_with_ean"`
	PollLimit            int    `json:"poll_limit"`
	Properties           []uint   `json:"properties" gorm:"serializer:json"`
	PriceLists           []uint   `json:"price_lists" gorm:"serializer:json"`
	AttributeWhitelist   []string `json:"attribute_whitelist" gorm:"serializer:json"`
}

// DefaultPollLimit bounds one feed page when no limit is configured.
const DefaultPollLimit = 100
