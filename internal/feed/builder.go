package feed

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"channelfeed/internal/catalog"
	"channelfeed/internal/logger"
	"channelfeed/internal/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// ShopContext carries everything one feed request needs to localize and
// filter: the resolved shop (with customer group and currency), the per-shop
// settings and the shop's unit translations. Loaded once per request,
// immutable afterwards.
type ShopContext struct {
	Shop        *models.Shop
	Settings    *models.FeedSettings
	ConfigUnits map[string]string
}

// Builder assembles one export Item per variant from the catalog
// repositories. All reads are request-scoped; nothing is cached across calls.
type Builder struct {
	variants     *catalog.VariantRepository
	translations *catalog.TranslationReader
	logger       *logger.Logger
}

func NewBuilder(variants *catalog.VariantRepository, translations *catalog.TranslationReader, log *logger.Logger) *Builder {
	return &Builder{variants: variants, translations: translations, logger: log}
}

// BuildItem joins variant, product, translation, price, category, property
// and configurator data into one flat record. The variant must arrive with
// Product (plus Tax, Supplier) and Unit loaded.
func (b *Builder) BuildItem(ctx context.Context, variant *models.Variant, sc *ShopContext) (*Item, error) {
	product := &variant.Product
	shop := sc.Shop

	articleTr, err := b.translations.Read(ctx, shop.ID, catalog.TranslationArticle, product.ID)
	if err != nil {
		return nil, err
	}
	variantTr, err := b.translations.Read(ctx, shop.ID, catalog.TranslationVariant, variant.ID)
	if err != nil {
		return nil, err
	}

	item := &Item{
		ID:             variant.ID,
		GroupID:        product.ID,
		ArticleNumber:  variant.Number,
		Active:         variant.Active,
		Name:           overlay(product.Name, articleTr["name"]),
		AdditionalText: overlay(variant.AdditionalText, variantTr["additionalText"]),
		Supplier:       product.Supplier.Name,
		SupplierNumber: variant.SupplierNumber,
		EAN:            variant.EAN,

		Description:     overlay(product.Description, articleTr["description"]),
		DescriptionLong: overlay(product.DescriptionLong, articleTr["descriptionLong"]),
		Keywords:        overlay(product.Keywords, articleTr["keywords"]),
		IsVariant:       product.HasConfigurator(),

		MinPurchase: variant.MinPurchase,
		MaxPurchase: variant.MaxPurchase,
		MinStock:    variant.StockMin,
		LastStock:   product.LastStock,

		Currency: shop.Currency.Code,
		TaxRate:  product.Tax.Rate,

		ShippingTime:     variant.ShippingTime,
		ShippingTimeText: ShippingTimeLabel(variant, time.Now()),
		ShippingFree:     variant.ShippingFree,
		// Per-order shipping cost calculation is disabled; the feed reports 0.
		ShippingCosts: 0,

		Weight: variant.Weight,
		Width:  variant.Width,
		Height: variant.Height,
		Length: variant.Length,

		PackUnit:      overlay(variant.PackUnit, variantTr["packUnit"]),
		PurchaseUnit:  variant.PurchaseUnit,
		ReferenceUnit: variant.ReferenceUnit,

		Notification: product.Notification,
	}

	if variant.ReleaseDate != nil {
		item.ReleaseDate = variant.ReleaseDate.Format(timestampLayout)
	}
	if !product.Added.IsZero() {
		item.Added = product.Added.Format(timestampLayout)
	}
	if !product.Changed.IsZero() {
		item.Changed = product.Changed.Format(timestampLayout)
	}

	// Only show stock the customer can actually order.
	if variant.InStock >= variant.MinPurchase {
		item.Stock = variant.InStock
	} else {
		item.Stock = 0
	}

	if variant.PurchasePrice > 0 {
		item.PurchasePrice = variant.PurchasePrice
	}

	if variant.Unit != nil {
		item.Unit = variant.Unit.Unit
		item.UnitName = variant.Unit.Name
		// Shop-level unit translations override every variant's unit label.
		if u := sc.ConfigUnits["unit"]; u != "" && item.Unit != "" {
			item.Unit = u
		}
		if n := sc.ConfigUnits["description"]; n != "" && item.UnitName != "" {
			item.UnitName = n
		}
	}

	if err := b.attachImages(ctx, variant, item); err != nil {
		return nil, err
	}
	if err := b.attachPrices(ctx, variant, sc, item); err != nil {
		return nil, err
	}
	if err := b.attachLinks(ctx, variant, shop, item); err != nil {
		return nil, err
	}
	if err := b.attachCategories(ctx, product.ID, shop, item); err != nil {
		return nil, err
	}
	if err := b.attachProperties(ctx, product.ID, sc, item); err != nil {
		return nil, err
	}
	if err := b.attachConfiguratorOptions(ctx, variant.ID, shop.ID, item); err != nil {
		return nil, err
	}
	if err := b.attachRelations(ctx, product.ID, item); err != nil {
		return nil, err
	}
	if err := b.attachExcludedGroups(ctx, product.ID, item); err != nil {
		return nil, err
	}
	if err := b.attachAttributes(ctx, variant.ID, sc, articleTr, variantTr, item); err != nil {
		return nil, err
	}

	return item, nil
}

func overlay(base, translated string) string {
	if translated != "" {
		return translated
	}
	return base
}

func (b *Builder) attachImages(ctx context.Context, variant *models.Variant, item *Item) error {
	variantImages, err := b.variants.VariantImages(ctx, variant.ID)
	if err != nil {
		return err
	}
	productImages, err := b.variants.ProductImages(ctx, variant.ProductID)
	if err != nil {
		return err
	}

	item.VariantImages = catalog.MediaPaths(variantImages)
	item.Images = append(append([]string{}, item.VariantImages...), catalog.MediaPaths(productImages)...)
	return nil
}

func (b *Builder) attachPrices(ctx context.Context, variant *models.Variant, sc *ShopContext, item *Item) error {
	group := sc.Shop.CustomerGroup
	taxRate := variant.Product.Tax.Rate

	entries, err := b.variants.Prices(ctx, variant.ID, group.Key, true)
	if err != nil {
		return err
	}
	item.Prices = NormalizePrices(entries, taxRate, group.TaxInput)

	// Lift the first tier of the shop group's list into the root price
	// fields. Entries arrive ordered by tier lower bound.
	if len(entries) > 0 {
		first := NormalizePrices(entries[:1], taxRate, group.TaxInput)
		for _, tiers := range first {
			for _, amounts := range tiers {
				item.PriceNetto = amounts.PriceNetto
				item.PriceBrutto = amounts.PriceBrutto
				item.PseudoPriceNetto = amounts.PseudoPriceNetto
				item.PseudoPriceBrutto = amounts.PseudoPriceBrutto
			}
		}
	}

	item.AdditionalPrices = PriceTable{}
	for _, groupID := range sc.Settings.PriceLists {
		extraGroup, err := b.variants.CustomerGroupByID(ctx, groupID)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		extraEntries, err := b.variants.Prices(ctx, variant.ID, extraGroup.Key, false)
		if err != nil {
			return err
		}
		item.AdditionalPrices.Merge(NormalizePrices(extraEntries, taxRate, extraGroup.TaxInput))
	}
	return nil
}

func (b *Builder) attachLinks(ctx context.Context, variant *models.Variant, shop *models.Shop, item *Item) error {
	base := shop.BaseURL()
	number := url.QueryEscape(variant.Number)

	item.URL = fmt.Sprintf("%s/detail/%d?number=%s", base, variant.ProductID, number)

	seoPath, err := b.variants.SeoURLPath(ctx, variant.ProductID, shop.ID)
	if err != nil {
		return err
	}
	if seoPath != "" {
		item.SeoURL = fmt.Sprintf("%s/%s?number=%s", base, seoPath, number)
		item.RewriteURL = item.SeoURL
	} else {
		item.RewriteURL = item.URL
	}
	return nil
}

func (b *Builder) attachCategories(ctx context.Context, productID uint, shop *models.Shop, item *Item) error {
	paths, err := b.variants.CategoryPaths(ctx, productID, shop.CategoryID)
	if err != nil {
		return err
	}
	item.Categories = paths

	seoPath, err := b.variants.SeoCategoryPath(ctx, productID, shop.ID)
	if err != nil {
		return err
	}
	item.SeoCategory = seoPath
	return nil
}

// attachProperties exports whitelisted property values grouped under the
// sanitized untranslated option name; the displayed values themselves are
// translated when a translation exists.
func (b *Builder) attachProperties(ctx context.Context, productID uint, sc *ShopContext, item *Item) error {
	item.Properties = map[string][]string{}
	if len(sc.Settings.Properties) == 0 {
		return nil
	}

	values, err := b.variants.Properties(ctx, productID, sc.Settings.Properties)
	if err != nil {
		return err
	}

	for _, value := range values {
		key := SanitizeKey(value.Option.Name)

		display := value.Value
		valueTr, err := b.translations.Read(ctx, sc.Shop.ID, catalog.TranslationPropertyValue, value.ID)
		if err != nil {
			return err
		}
		if v := valueTr["optionValue"]; v != "" {
			display = v
		}

		item.Properties[key] = append(item.Properties[key], display)

		// The value's own attribute columns export as extra
		// <option>_<attribute> entries, translated through the same row.
		attrs, err := b.variants.PropertyValueAttributes(ctx, value.ID)
		if err != nil {
			return err
		}
		for _, attr := range attrs {
			attrValue := attr.Value
			if v := valueTr["__attribute_"+CamelToSnake(attr.Name)]; v != "" {
				attrValue = v
			}
			item.Properties[key+"_"+SanitizeKey(attr.Name)] = []string{attrValue}
		}
	}
	return nil
}

// attachConfiguratorOptions keys options by the sanitized translated group
// name; translated group names deliberately shape the key here, unlike
// property keys.
func (b *Builder) attachConfiguratorOptions(ctx context.Context, variantID, shopID uint, item *Item) error {
	item.Options = map[string]string{}

	options, err := b.variants.ConfiguratorOptions(ctx, variantID)
	if err != nil {
		return err
	}

	for _, option := range options {
		groupName := option.Group.Name
		groupTr, err := b.translations.Read(ctx, shopID, catalog.TranslationConfiguratorGroup, option.GroupID)
		if err != nil {
			return err
		}
		if n := groupTr["name"]; n != "" {
			groupName = n
		}

		optionName := option.Name
		optionTr, err := b.translations.Read(ctx, shopID, catalog.TranslationConfiguratorOption, option.ID)
		if err != nil {
			return err
		}
		if n := optionTr["name"]; n != "" {
			optionName = n
		}

		item.Options[SanitizeKey(groupName)] = optionName
	}
	return nil
}

func (b *Builder) attachRelations(ctx context.Context, productID uint, item *Item) error {
	similar, err := b.variants.Similar(ctx, productID)
	if err != nil {
		return err
	}
	related, err := b.variants.Related(ctx, productID)
	if err != nil {
		return err
	}
	item.Similar = similar
	item.Related = related
	return nil
}

func (b *Builder) attachExcludedGroups(ctx context.Context, productID uint, item *Item) error {
	item.ExcludedCustomerGroups = map[string]string{}

	groups, err := b.variants.ExcludedCustomerGroups(ctx, productID)
	if err != nil {
		return err
	}
	for _, group := range groups {
		item.ExcludedCustomerGroups[SanitizeKey(group.Key)] = group.Name
	}
	return nil
}

// attachAttributes flattens the variant's custom-attribute rows. Keys are
// sanitized and lowercased; a variant-level translation beats a product-level
// one, which beats the stored value. An attribute whitelist in the settings
// restricts the exported set; an empty whitelist exports everything.
func (b *Builder) attachAttributes(ctx context.Context, variantID uint, sc *ShopContext, articleTr, variantTr map[string]string, item *Item) error {
	item.Attributes = map[string]string{}

	rows, err := b.variants.Attributes(ctx, variantID)
	if err != nil {
		return err
	}

	allowed := map[string]bool{}
	for _, name := range sc.Settings.AttributeWhitelist {
		allowed[name] = true
	}

	for _, row := range rows {
		if row.Value == "" {
			continue
		}
		if len(allowed) > 0 && !allowed[row.Name] {
			continue
		}

		value := row.Value
		trKey := "__attribute_" + CamelToSnake(row.Name)
		if v := variantTr[trKey]; v != "" {
			value = v
		} else if v := articleTr[trKey]; v != "" {
			value = v
		}

		item.Attributes[SanitizeAttributeKey(row.Name)] = value
	}
	return nil
}
