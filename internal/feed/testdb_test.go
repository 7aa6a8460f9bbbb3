package feed

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"channelfeed/internal/catalog"
	"channelfeed/internal/database"
	"channelfeed/internal/logger"
	"channelfeed/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// seedShop creates the minimal storefront: one shop on a two-level category
// tree with a gross-price customer group and EUR.
func seedShop(t *testing.T, db *gorm.DB) *ShopContext {
	t.Helper()

	require.NoError(t, db.Create(&models.Tax{ID: 1, Name: "19%", Rate: 19}).Error)
	require.NoError(t, db.Create(&models.Supplier{ID: 1, Name: "Acme GmbH"}).Error)
	require.NoError(t, db.Create(&models.CustomerGroup{ID: 1, Key: "EK", Name: "Shopkunden", TaxInput: true}).Error)
	require.NoError(t, db.Create(&models.Currency{ID: 1, Code: "EUR", Factor: 1}).Error)

	require.NoError(t, db.Create(&models.Category{ID: 3, Name: "Deutsch", Path: "/3/"}).Error)
	parent := uint(3)
	require.NoError(t, db.Create(&models.Category{ID: 5, ParentID: &parent, Name: "Sommerwelten", Path: "/3/5/"}).Error)

	require.NoError(t, db.Create(&models.Shop{
		ID: 1, Name: "Storefront", Host: "shop.example.com",
		Active: true, Default: true,
		CategoryID: 3, CustomerGroupID: 1, CurrencyID: 1,
	}).Error)

	shops := catalog.NewShopRepository(db)
	shop, err := shops.ActiveByID(context.Background(), 1)
	require.NoError(t, err)

	return &ShopContext{
		Shop:        shop,
		Settings:    &models.FeedSettings{ShopID: 1, PollLimit: models.DefaultPollLimit},
		ConfigUnits: map[string]string{},
	}
}

// seedProduct creates one product with a single main variant (sharing the
// product's id), an EK price of 10/12 net and an assignment to category 5.
func seedProduct(t *testing.T, db *gorm.DB, id uint, number string) {
	t.Helper()

	added := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Product{
		ID: id, Name: "Widget " + number, Active: true,
		SupplierID: 1, TaxID: 1,
		Added: added, Changed: added,
	}).Error)
	require.NoError(t, db.Create(&models.Variant{
		ID: id, ProductID: id, Number: number, Kind: 1, Active: true,
		InStock: 15, MinPurchase: 1, EAN: "40063813" + number,
	}).Error)
	require.NoError(t, db.Create(&models.Price{
		VariantID: id, CustomerGroupKey: "EK",
		FromQty: 1, To: "any", Price: 10, PseudoPrice: 12,
	}).Error)
	require.NoError(t, db.Create(&models.ProductCategory{ProductID: id, CategoryID: 5}).Error)
}

func newTestBuilder(db *gorm.DB) *Builder {
	return NewBuilder(
		catalog.NewVariantRepository(db),
		catalog.NewTranslationReader(db),
		logger.NewNop(),
	)
}
