package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"channelfeed/internal/catalog"
	"channelfeed/internal/feed"
	"channelfeed/internal/logger"
	"channelfeed/internal/models"
	"channelfeed/internal/settings"
)

// StockItem is the compact record pushed to the webhook on a product change.
type StockItem struct {
	ID            uint    `json:"id"`
	ArticleID     uint    `json:"articleId"`
	Number        string  `json:"number"`
	Name          string  `json:"name"`
	Stock         int     `json:"stock"`
	StockTracking bool    `json:"stockTracking"`
	Price         float64 `json:"price"`
	EAN           string  `json:"ean"`
}

// Notifier pushes single-product updates to the webhook URL configured per
// shop. Delivery is best effort: one POST with a short timeout, no retry, and
// transport failures are swallowed on purpose.
type Notifier struct {
	settings     *settings.Reader
	shops        *catalog.ShopRepository
	variants     *catalog.VariantRepository
	translations *catalog.TranslationReader
	client       *http.Client
	logger       *logger.Logger
}

func NewNotifier(
	cfg *settings.Reader,
	shops *catalog.ShopRepository,
	variants *catalog.VariantRepository,
	translations *catalog.TranslationReader,
	timeout time.Duration,
	log *logger.Logger,
) *Notifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Notifier{
		settings:     cfg,
		shops:        shops,
		variants:     variants,
		translations: translations,
		client:       &http.Client{Timeout: timeout},
		logger:       log,
	}
}

// Notify rebuilds the product's stock item for one shop and posts it. A shop
// without a webhook URL or with real-time updates disabled is a silent no-op,
// as is an unknown product number.
func (n *Notifier) Notify(ctx context.Context, number string, shop *models.Shop) error {
	cfg, err := n.settings.Get(ctx, shop.ID)
	if err != nil {
		return err
	}
	if cfg.WebhookURL == "" || !cfg.AllowRealTimeUpdates {
		return nil
	}

	item, err := n.buildStockItem(ctx, number, shop)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	n.post(ctx, cfg.WebhookURL, []StockItem{*item})
	return nil
}

// NotifyAllShops delivers the update to every active shop, sequentially.
func (n *Notifier) NotifyAllShops(ctx context.Context, number string) error {
	shops, err := n.shops.ActiveShops(ctx)
	if err != nil {
		return err
	}
	for i := range shops {
		if err := n.Notify(ctx, number, &shops[i]); err != nil {
			n.logger.Error("webhook update for %q in shop %d failed: %v", number, shops[i].ID, err)
		}
	}
	return nil
}

func (n *Notifier) buildStockItem(ctx context.Context, number string, shop *models.Shop) (*StockItem, error) {
	variant, err := n.variants.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	product := &variant.Product

	name := product.Name
	tr, err := n.translations.Read(ctx, shop.ID, catalog.TranslationArticle, product.ID)
	if err != nil {
		return nil, err
	}
	if tr["name"] != "" {
		name = tr["name"]
	}

	// Stock comes from the raw row: checkout writes stock past the loaded
	// entity, and negative values must never reach the feed.
	stock, err := n.variants.RawStock(ctx, number)
	if err != nil {
		return nil, err
	}

	var price float64
	entries, err := n.variants.Prices(ctx, variant.ID, shop.CustomerGroup.Key, true)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		price = entries[0].Price
		if shop.CustomerGroup.TaxInput {
			price = feed.GrossAmount(price, product.Tax.Rate)
		}
	}

	return &StockItem{
		ID:            variant.ID,
		ArticleID:     product.ID,
		Number:        variant.Number,
		Name:          name,
		Stock:         stock,
		StockTracking: product.LastStock,
		Price:         price,
		EAN:           variant.EAN,
	}, nil
}

// post fires the webhook. Failures are dropped without logging; the feed
// service reconciles through the polling endpoint anyway.
func (n *Notifier) post(ctx context.Context, url string, items []StockItem) {
	body, err := json.Marshal(items)
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
