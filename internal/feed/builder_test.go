package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"channelfeed/internal/catalog"
	"channelfeed/internal/models"
)

func loadVariant(t *testing.T, db *gorm.DB, id uint) *models.Variant {
	t.Helper()
	variant, err := catalog.NewVariantRepository(db).FindByID(context.Background(), id)
	require.NoError(t, err)
	return variant
}

func TestBuildItemBasics(t *testing.T) {
	db := newTestDB(t)
	sc := seedShop(t, db)
	seedProduct(t, db, 1, "SW1001")
	require.NoError(t, db.Model(&models.Variant{}).Where("id = ?", 1).Update("min_purchase", 10).Error)

	item, err := newTestBuilder(db).BuildItem(context.Background(), loadVariant(t, db, 1), sc)
	require.NoError(t, err)

	assert.Equal(t, uint(1), item.ID)
	assert.Equal(t, uint(1), item.GroupID)
	assert.Equal(t, "SW1001", item.ArticleNumber)
	assert.Equal(t, "Widget SW1001", item.Name)
	assert.Equal(t, "Acme GmbH", item.Supplier)
	assert.Equal(t, "EUR", item.Currency)
	assert.Equal(t, 19.0, item.TaxRate)

	// 15 in stock with a minimum purchase of 10 is orderable in full.
	assert.Equal(t, 15, item.Stock)
	assert.Equal(t, "available now", item.ShippingTimeText)

	assert.Equal(t, 10.0, item.PriceNetto)
	assert.Equal(t, 11.9, item.PriceBrutto)
	assert.Equal(t, 14.28, item.PseudoPriceBrutto)
	require.Contains(t, item.Prices, "EK")
	assert.Contains(t, item.Prices["EK"], "from_1_to_any")

	assert.Equal(t, "http://shop.example.com/detail/1?number=SW1001", item.URL)
	assert.Empty(t, item.SeoURL)
	assert.Equal(t, item.URL, item.RewriteURL)

	require.Len(t, item.Categories, 1)
	assert.Equal(t, []string{"Deutsch", "Sommerwelten"}, item.Categories[0])

	assert.Equal(t, "2024-03-01 08:00:00", item.Added)
}

func TestBuildItemStockBelowMinPurchase(t *testing.T) {
	db := newTestDB(t)
	sc := seedShop(t, db)
	seedProduct(t, db, 1, "SW1001")
	require.NoError(t, db.Model(&models.Variant{}).Where("id = ?", 1).
		Updates(map[string]interface{}{"in_stock": 5, "min_purchase": 10}).Error)

	item, err := newTestBuilder(db).BuildItem(context.Background(), loadVariant(t, db, 1), sc)
	require.NoError(t, err)

	assert.Equal(t, 0, item.Stock)
	assert.Equal(t, "not available", item.ShippingTimeText)
}

func TestBuildItemTranslationOverlay(t *testing.T) {
	db := newTestDB(t)
	sc := seedShop(t, db)
	seedProduct(t, db, 1, "SW1001")

	require.NoError(t, db.Create(&models.Translation{
		ShopID: 1, ObjectType: "article", ObjectKey: 1,
		Data: `{"name":"Localized Widget","keywords":"sommer,strand"}`,
	}).Error)
	require.NoError(t, db.Create(&models.Translation{
		ShopID: 1, ObjectType: "variant", ObjectKey: 1,
		Data: `{"additionalText":"blau / L"}`,
	}).Error)

	item, err := newTestBuilder(db).BuildItem(context.Background(), loadVariant(t, db, 1), sc)
	require.NoError(t, err)

	assert.Equal(t, "Localized Widget", item.Name)
	assert.Equal(t, "sommer,strand", item.Keywords)
	assert.Equal(t, "blau / L", item.AdditionalText)
	// Untranslated fields keep their stored values.
	assert.Equal(t, "Acme GmbH", item.Supplier)
}

func TestBuildItemSeoURL(t *testing.T) {
	db := newTestDB(t)
	sc := seedShop(t, db)
	seedProduct(t, db, 1, "SW1001")
	require.NoError(t, db.Create(&models.SeoURL{
		ShopID: 1, ProductID: 1, Path: "sommerwelten/widget", Main: true,
	}).Error)

	item, err := newTestBuilder(db).BuildItem(context.Background(), loadVariant(t, db, 1), sc)
	require.NoError(t, err)

	assert.Equal(t, "http://shop.example.com/sommerwelten/widget?number=SW1001", item.SeoURL)
	assert.Equal(t, item.SeoURL, item.RewriteURL)
}

func TestBuildItemPriceFallbackToBaseGroup(t *testing.T) {
	db := newTestDB(t)
	seedShop(t, db)
	seedProduct(t, db, 1, "SW1001")

	// A net-price wholesale shop without its own price rows.
	require.NoError(t, db.Create(&models.CustomerGroup{ID: 2, Key: "H", Name: "Händler", TaxInput: false}).Error)
	require.NoError(t, db.Create(&models.Shop{
		ID: 2, Name: "Wholesale", Host: "b2b.example.com", Active: true,
		CategoryID: 3, CustomerGroupID: 2, CurrencyID: 1,
	}).Error)

	shop, err := catalog.NewShopRepository(db).ActiveByID(context.Background(), 2)
	require.NoError(t, err)
	sc := &ShopContext{Shop: shop, Settings: &models.FeedSettings{ShopID: 2, PollLimit: 100}, ConfigUnits: map[string]string{}}

	item, err := newTestBuilder(db).BuildItem(context.Background(), loadVariant(t, db, 1), sc)
	require.NoError(t, err)

	// Base-group rows fill in, reported under their own key and without tax
	// because the requesting group sees net prices.
	require.Contains(t, item.Prices, "EK")
	assert.Equal(t, 10.0, item.PriceNetto)
	assert.Equal(t, 10.0, item.PriceBrutto)
}

func TestBuildItemAdditionalPriceLists(t *testing.T) {
	db := newTestDB(t)
	sc := seedShop(t, db)
	seedProduct(t, db, 1, "SW1001")

	require.NoError(t, db.Create(&models.CustomerGroup{ID: 2, Key: "H", Name: "Händler", TaxInput: false}).Error)
	require.NoError(t, db.Create(&models.Price{
		VariantID: 1, CustomerGroupKey: "H", FromQty: 1, To: "any", Price: 8, PseudoPrice: 0,
	}).Error)
	sc.Settings.PriceLists = []uint{2, 999}

	item, err := newTestBuilder(db).BuildItem(context.Background(), loadVariant(t, db, 1), sc)
	require.NoError(t, err)

	// The unknown price list id is skipped, the real one exported.
	require.Contains(t, item.AdditionalPrices, "H")
	assert.Equal(t, 8.0, item.AdditionalPrices["H"]["from_1_to_any"].PriceNetto)
	assert.Len(t, item.AdditionalPrices, 1)
}

func TestBuildItemAttributes(t *testing.T) {
	db := newTestDB(t)
	sc := seedShop(t, db)
	seedProduct(t, db, 1, "SW1001")

	require.NoError(t, db.Create(&models.VariantAttribute{VariantID: 1, Name: "color", Value: "rot"}).Error)
	require.NoError(t, db.Create(&models.VariantAttribute{VariantID: 1, Name: "careLabel", Value: "30°C"}).Error)
	require.NoError(t, db.Create(&models.VariantAttribute{VariantID: 1, Name: "internalNote", Value: "geheim"}).Error)
	require.NoError(t, db.Create(&models.VariantAttribute{VariantID: 1, Name: "empty", Value: ""}).Error)

	sc.Settings.AttributeWhitelist = []string{"color", "careLabel", "empty"}

	require.NoError(t, db.Create(&models.Translation{
		ShopID: 1, ObjectType: "variant", ObjectKey: 1,
		Data: `{"__attribute_color":"rouge"}`,
	}).Error)

	item, err := newTestBuilder(db).BuildItem(context.Background(), loadVariant(t, db, 1), sc)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"color":     "rouge",
		"carelabel": "30°C",
	}, item.Attributes)
}

func TestBuildItemAttributesWithoutWhitelist(t *testing.T) {
	db := newTestDB(t)
	sc := seedShop(t, db)
	seedProduct(t, db, 1, "SW1001")

	require.NoError(t, db.Create(&models.VariantAttribute{VariantID: 1, Name: "color", Value: "rot"}).Error)
	require.NoError(t, db.Create(&models.VariantAttribute{VariantID: 1, Name: "careLabel", Value: "30°C"}).Error)

	item, err := newTestBuilder(db).BuildItem(context.Background(), loadVariant(t, db, 1), sc)
	require.NoError(t, err)

	// No whitelist means every non-empty attribute is exported.
	assert.Len(t, item.Attributes, 2)
}

func TestBuildItemPropertiesAndOptions(t *testing.T) {
	db := newTestDB(t)
	sc := seedShop(t, db)
	seedProduct(t, db, 1, "SW1001")

	require.NoError(t, db.Create(&models.PropertyGroup{ID: 1, Name: "Kleidung"}).Error)
	require.NoError(t, db.Create(&models.PropertyOption{ID: 10, GroupID: 1, Name: "Größe"}).Error)
	require.NoError(t, db.Create(&models.PropertyValue{ID: 100, OptionID: 10, Value: "L"}).Error)
	require.NoError(t, db.Create(&models.ProductPropertyValue{ProductID: 1, ValueID: 100}).Error)

	require.NoError(t, db.Create(&models.ConfiguratorGroup{ID: 1, Name: "Farbe"}).Error)
	require.NoError(t, db.Create(&models.ConfiguratorOption{ID: 20, GroupID: 1, Name: "Rot"}).Error)
	require.NoError(t, db.Create(&models.VariantConfiguratorOption{VariantID: 1, OptionID: 20}).Error)

	sc.Settings.Properties = []uint{10}

	require.NoError(t, db.Create(&models.Translation{
		ShopID: 1, ObjectType: "propertyvalue", ObjectKey: 100,
		Data: `{"optionValue":"Large"}`,
	}).Error)
	require.NoError(t, db.Create(&models.Translation{
		ShopID: 1, ObjectType: "configuratorgroup", ObjectKey: 1,
		Data: `{"name":"Couleur"}`,
	}).Error)

	item, err := newTestBuilder(db).BuildItem(context.Background(), loadVariant(t, db, 1), sc)
	require.NoError(t, err)

	// Property keys come from the untranslated option name, values from the
	// translated ones. Configurator keys follow the translated group name.
	assert.Equal(t, map[string][]string{"Groesse": {"Large"}}, item.Properties)
	assert.Equal(t, map[string]string{"Couleur": "Rot"}, item.Options)
}

func TestBuildItemPropertyValueAttributes(t *testing.T) {
	db := newTestDB(t)
	sc := seedShop(t, db)
	seedProduct(t, db, 1, "SW1001")

	require.NoError(t, db.Create(&models.PropertyGroup{ID: 1, Name: "Kleidung"}).Error)
	require.NoError(t, db.Create(&models.PropertyOption{ID: 10, GroupID: 1, Name: "Größe"}).Error)
	require.NoError(t, db.Create(&models.PropertyValue{ID: 100, OptionID: 10, Value: "L"}).Error)
	require.NoError(t, db.Create(&models.ProductPropertyValue{ProductID: 1, ValueID: 100}).Error)
	require.NoError(t, db.Create(&models.PropertyValueAttribute{ValueID: 100, Name: "sortWeight", Value: "10"}).Error)
	require.NoError(t, db.Create(&models.PropertyValueAttribute{ValueID: 100, Name: "swatch", Value: "ffffff"}).Error)

	sc.Settings.Properties = []uint{10}

	// The value translation row carries both the value override and the
	// attribute overrides.
	require.NoError(t, db.Create(&models.Translation{
		ShopID: 1, ObjectType: "propertyvalue", ObjectKey: 100,
		Data: `{"optionValue":"Large","__attribute_sort_weight":"20"}`,
	}).Error)

	item, err := newTestBuilder(db).BuildItem(context.Background(), loadVariant(t, db, 1), sc)
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"Groesse":            {"Large"},
		"Groesse_sortWeight": {"20"},
		"Groesse_swatch":     {"ffffff"},
	}, item.Properties)
}

func TestBuildItemConfigUnitsOverlay(t *testing.T) {
	db := newTestDB(t)
	sc := seedShop(t, db)
	seedProduct(t, db, 1, "SW1001")

	require.NoError(t, db.Create(&models.Unit{ID: 1, Unit: "l", Name: "Liter"}).Error)
	unitID := uint(1)
	require.NoError(t, db.Model(&models.Variant{}).Where("id = ?", 1).Update("unit_id", unitID).Error)

	require.NoError(t, db.Create(&models.Translation{
		ShopID: 1, ObjectType: "config_units", ObjectKey: 0,
		Data: `{"unit":"litre","description":"Litre"}`,
	}).Error)

	configUnits, err := catalog.NewTranslationReader(db).Read(context.Background(), 1, catalog.TranslationConfigUnits, 0)
	require.NoError(t, err)
	sc.ConfigUnits = configUnits

	item, err := newTestBuilder(db).BuildItem(context.Background(), loadVariant(t, db, 1), sc)
	require.NoError(t, err)

	assert.Equal(t, "litre", item.Unit)
	assert.Equal(t, "Litre", item.UnitName)
}

func TestBuildItemConfigUnitsLeaveEmptyUnitAlone(t *testing.T) {
	db := newTestDB(t)
	sc := seedShop(t, db)
	seedProduct(t, db, 1, "SW1001")

	// Overlay only rewrites labels the variant actually carries.
	sc.ConfigUnits = map[string]string{"unit": "litre", "description": "Litre"}

	item, err := newTestBuilder(db).BuildItem(context.Background(), loadVariant(t, db, 1), sc)
	require.NoError(t, err)

	assert.Empty(t, item.Unit)
	assert.Empty(t, item.UnitName)
}

func TestBuildItemExcludedCustomerGroups(t *testing.T) {
	db := newTestDB(t)
	sc := seedShop(t, db)
	seedProduct(t, db, 1, "SW1001")

	require.NoError(t, db.Create(&models.CustomerGroup{ID: 2, Key: "H", Name: "Händler"}).Error)
	require.NoError(t, db.Create(&models.ProductAvoidCustomerGroup{ProductID: 1, CustomerGroupID: 2}).Error)

	item, err := newTestBuilder(db).BuildItem(context.Background(), loadVariant(t, db, 1), sc)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"H": "Händler"}, item.ExcludedCustomerGroups)
}

func TestBuildItemImages(t *testing.T) {
	db := newTestDB(t)
	sc := seedShop(t, db)
	seedProduct(t, db, 1, "SW1001")

	productID := uint(1)
	variantID := uint(1)
	mediaID := uint(1)
	parentID := uint(1)
	require.NoError(t, db.Create(&models.Media{ID: 1, Path: "media/image/widget.jpg"}).Error)
	require.NoError(t, db.Create(&models.Image{
		ID: 1, ProductID: &productID, MediaID: &mediaID, Main: 1,
	}).Error)
	// Variant image without own media resolves through its parent.
	require.NoError(t, db.Create(&models.Image{
		ID: 2, VariantID: &variantID, ParentID: &parentID, Main: 2,
	}).Error)

	item, err := newTestBuilder(db).BuildItem(context.Background(), loadVariant(t, db, 1), sc)
	require.NoError(t, err)

	assert.Equal(t, []string{"media/image/widget.jpg"}, item.VariantImages)
	assert.Equal(t, []string{"media/image/widget.jpg", "media/image/widget.jpg"}, item.Images)
}
