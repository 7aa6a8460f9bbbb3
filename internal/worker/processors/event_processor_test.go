package processors

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"channelfeed/internal/catalog"
	"channelfeed/internal/database"
	"channelfeed/internal/logger"
	"channelfeed/internal/models"
	"channelfeed/internal/settings"
	"channelfeed/internal/webhook"
)

func newTestProcessor(t *testing.T) (*EventProcessor, *gorm.DB) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	nop := logger.NewNop()
	notifier := webhook.NewNotifier(
		settings.NewReader(db, nil, nop),
		catalog.NewShopRepository(db),
		catalog.NewVariantRepository(db),
		catalog.NewTranslationReader(db),
		2*time.Second,
		nop,
	)
	return NewEventProcessor(notifier, nop), db
}

func TestProcessRejectsMalformedEvents(t *testing.T) {
	p, _ := newTestProcessor(t)
	ctx := context.Background()

	assert.Error(t, p.Process(ctx, Event{Type: "order.created"}))
	assert.Error(t, p.Process(ctx, Event{Type: EventProductSaved}))
	assert.Error(t, p.Process(ctx, Event{
		Type:  EventProductSaved,
		After: &webhook.Snapshot{Number: "SW1001"},
	}))
	assert.Error(t, p.Process(ctx, Event{Type: EventStockChanged}))
}

func TestProcessSkipsUnchangedSave(t *testing.T) {
	p, _ := newTestProcessor(t)

	snap := webhook.Snapshot{Number: "SW1001", InStock: 5, Price: 9.99}
	err := p.Process(context.Background(), Event{
		Type:   EventProductSaved,
		Before: &snap,
		After:  &snap,
	})
	assert.NoError(t, err)
}

type deliveryCounter struct {
	mu    sync.Mutex
	count int
}

func (d *deliveryCounter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	io.Copy(io.Discard, req.Body)
	d.mu.Lock()
	d.count++
	d.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (d *deliveryCounter) total() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

func TestProcessDeliversOnStockChange(t *testing.T) {
	p, db := newTestProcessor(t)

	counter := &deliveryCounter{}
	server := httptest.NewServer(counter)
	defer server.Close()

	require.NoError(t, db.Create(&models.Tax{ID: 1, Rate: 19}).Error)
	require.NoError(t, db.Create(&models.CustomerGroup{ID: 1, Key: "EK", TaxInput: true}).Error)
	require.NoError(t, db.Create(&models.Currency{ID: 1, Code: "EUR", Factor: 1}).Error)
	require.NoError(t, db.Create(&models.Shop{
		ID: 1, Name: "Storefront", Host: "shop.example.com",
		Active: true, Default: true, CategoryID: 3, CustomerGroupID: 1, CurrencyID: 1,
	}).Error)
	require.NoError(t, db.Create(&models.Product{ID: 1, Name: "Widget", Active: true, TaxID: 1, SupplierID: 1}).Error)
	require.NoError(t, db.Create(&models.Variant{
		ID: 1, ProductID: 1, Number: "SW1001", Kind: 1, Active: true, InStock: 3, MinPurchase: 1,
	}).Error)
	require.NoError(t, db.Create(&models.FeedSettings{
		ShopID: 1, WebhookURL: server.URL, AllowRealTimeUpdates: true,
	}).Error)

	err := p.Process(context.Background(), Event{Type: EventStockChanged, Number: "SW1001"})
	require.NoError(t, err)
	assert.Equal(t, 1, counter.total())

	err = p.Process(context.Background(), Event{
		Type:   EventProductSaved,
		Before: &webhook.Snapshot{Number: "SW1001", InStock: 4},
		After:  &webhook.Snapshot{Number: "SW1001", InStock: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, counter.total())
}
