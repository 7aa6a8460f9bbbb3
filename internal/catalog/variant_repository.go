package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"channelfeed/internal/models"
)

// FallbackGroupKey is the base customer group whose prices apply when a
// variant carries no rows for the requested group.
const FallbackGroupKey = "EK"

// Filter is one condition of the small query DSL the feed layer speaks:
// a known property name, a comparison expression and a value.
type Filter struct {
	Property   string
	Expression string
	Value      interface{}
}

// filterColumns maps DSL property names onto SQL columns. Anything outside
// this map is rejected so callers cannot smuggle arbitrary SQL in.
var filterColumns = map[string]string{
	"product.active": "products.active",
	"variant.active": "variants.active",
	"variant.ean":    "variants.ean",
}

var filterExpressions = map[string]string{
	"=":  "=",
	"!=": "<>",
	">":  ">",
	"<":  "<",
}

// CategoryScopeProperty restricts results to products assigned anywhere
// inside the given category subtree.
const CategoryScopeProperty = "category.id"

// RelatedProduct is a reference row for similar/accessory products.
type RelatedProduct struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

// VariantRepository is the read-only catalog access used by the feed and
// webhook layers.
type VariantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) *VariantRepository {
	return &VariantRepository{db: db}
}

// List returns one page of variants joined with their product, tax, supplier
// and unit, plus the total match count. Row order is whatever the query
// yields; no explicit sort is applied.
func (r *VariantRepository) List(ctx context.Context, offset, limit int, filters []Filter) ([]models.Variant, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Variant{}).
		Joins("JOIN products ON products.id = variants.product_id")

	for _, f := range filters {
		var err error
		q, err = applyFilter(q, f)
		if err != nil {
			return nil, 0, err
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var variants []models.Variant
	err := q.Select("variants.*").
		Preload("Product").
		Preload("Product.Tax").
		Preload("Product.Supplier").
		Preload("Unit").
		Offset(offset).
		Limit(limit).
		Find(&variants).Error
	if err != nil {
		return nil, 0, err
	}

	return variants, total, nil
}

func applyFilter(q *gorm.DB, f Filter) (*gorm.DB, error) {
	if f.Property == CategoryScopeProperty {
		pattern := fmt.Sprintf("%%/%v/%%", f.Value)
		return q.Where(
			"EXISTS (SELECT 1 FROM product_categories pc JOIN categories c ON c.id = pc.category_id"+
				" WHERE pc.product_id = variants.product_id AND c.path LIKE ?)",
			pattern,
		), nil
	}

	col, ok := filterColumns[f.Property]
	if !ok {
		return nil, fmt.Errorf("unknown filter property %q", f.Property)
	}
	expr, ok := filterExpressions[f.Expression]
	if !ok {
		return nil, fmt.Errorf("unknown filter expression %q", f.Expression)
	}

	return q.Where(fmt.Sprintf("%s %s ?", col, expr), f.Value), nil
}

// FindByID loads one variant with product, tax, supplier and unit.
func (r *VariantRepository) FindByID(ctx context.Context, id uint) (*models.Variant, error) {
	var variant models.Variant
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Tax").
		Preload("Product.Supplier").
		Preload("Unit").
		First(&variant, "variants.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// FindByNumber loads one variant by its external order number.
func (r *VariantRepository) FindByNumber(ctx context.Context, number string) (*models.Variant, error) {
	var variant models.Variant
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Tax").
		Preload("Product.Supplier").
		Preload("Unit").
		First(&variant, "variants.number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// Prices returns the quantity-tier price rows of a variant for one customer
// group, ordered by tier lower bound. With fallback enabled an empty result
// is re-queried against the base group.
func (r *VariantRepository) Prices(ctx context.Context, variantID uint, groupKey string, fallback bool) ([]models.Price, error) {
	var prices []models.Price
	err := r.db.WithContext(ctx).
		Where("variant_id = ? AND customer_group_key = ?", variantID, groupKey).
		Order("from_qty ASC").
		Find(&prices).Error
	if err != nil {
		return nil, err
	}

	if len(prices) == 0 && fallback && groupKey != FallbackGroupKey {
		err = r.db.WithContext(ctx).
			Where("variant_id = ? AND customer_group_key = ?", variantID, FallbackGroupKey).
			Order("from_qty ASC").
			Find(&prices).Error
		if err != nil {
			return nil, err
		}
	}

	return prices, nil
}

// CustomerGroupByID resolves a pricing tier, e.g. for additional price lists.
func (r *VariantRepository) CustomerGroupByID(ctx context.Context, id uint) (*models.CustomerGroup, error) {
	var group models.CustomerGroup
	err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// VariantImages returns the images assigned to one variant, main image first.
func (r *VariantRepository) VariantImages(ctx context.Context, variantID uint) ([]models.Image, error) {
	var images []models.Image
	err := r.db.WithContext(ctx).
		Preload("Media").
		Preload("Parent").
		Preload("Parent.Media").
		Where("variant_id = ?", variantID).
		Order("main ASC").
		Order("position ASC").
		Find(&images).Error
	return images, err
}

// ProductImages returns the product-level images not bound to any variant.
func (r *VariantRepository) ProductImages(ctx context.Context, productID uint) ([]models.Image, error) {
	var images []models.Image
	err := r.db.WithContext(ctx).
		Preload("Media").
		Where("product_id = ? AND variant_id IS NULL AND parent_id IS NULL", productID).
		Order("main ASC").
		Order("position ASC").
		Find(&images).Error
	return images, err
}

// MediaPaths resolves images to media paths, falling back to the parent
// image's media for variant images. Images without any resolvable media are
// dropped.
func MediaPaths(images []models.Image) []string {
	paths := make([]string, 0, len(images))
	for _, img := range images {
		switch {
		case img.Media != nil:
			paths = append(paths, img.Media.Path)
		case img.Parent != nil && img.Parent.Media != nil:
			paths = append(paths, img.Parent.Media.Path)
		}
	}
	return paths
}

// CategoryPaths returns the name path of every category of the product that
// lies inside the given scope subtree.
func (r *VariantRepository) CategoryPaths(ctx context.Context, productID, scopeCategoryID uint) ([][]string, error) {
	var categories []models.Category
	pattern := fmt.Sprintf("%%/%d/%%", scopeCategoryID)
	err := r.db.WithContext(ctx).
		Joins("JOIN product_categories pc ON pc.category_id = categories.id").
		Where("pc.product_id = ? AND categories.path LIKE ?", productID, pattern).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	paths := make([][]string, 0, len(categories))
	for _, c := range categories {
		names, err := r.pathNames(ctx, c.Path)
		if err != nil {
			return nil, err
		}
		paths = append(paths, names)
	}
	return paths, nil
}

// SeoCategoryPath returns the name path of the product's per-shop canonical
// category, or nil when none is configured.
func (r *VariantRepository) SeoCategoryPath(ctx context.Context, productID, shopID uint) ([]string, error) {
	var seo models.SeoCategory
	err := r.db.WithContext(ctx).
		First(&seo, "product_id = ? AND shop_id = ?", productID, shopID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", seo.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.pathNames(ctx, category.Path)
}

// pathNames resolves a materialized id path ("/1/3/7/") into category names,
// root first.
func (r *VariantRepository) pathNames(ctx context.Context, path string) ([]string, error) {
	ids := splitPath(path)
	if len(ids) == 0 {
		return nil, nil
	}

	var categories []models.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]string, len(categories))
	for _, c := range categories {
		byID[c.ID] = c.Name
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Similar returns up to 10 similar-product references.
func (r *VariantRepository) Similar(ctx context.Context, productID uint) ([]RelatedProduct, error) {
	return r.relations(ctx, productID, models.RelationSimilar)
}

// Related returns up to 10 accessory-product references.
func (r *VariantRepository) Related(ctx context.Context, productID uint) ([]RelatedProduct, error) {
	return r.relations(ctx, productID, models.RelationRelated)
}

func (r *VariantRepository) relations(ctx context.Context, productID uint, kind string) ([]RelatedProduct, error) {
	var related []RelatedProduct
	err := r.db.WithContext(ctx).
		Table("product_relations").
		Select("products.id AS id, products.name AS name, variants.number AS number").
		Joins("JOIN products ON products.id = product_relations.related_id").
		Joins("JOIN variants ON variants.product_id = products.id AND variants.kind = 1").
		Where("product_relations.product_id = ? AND product_relations.kind = ?", productID, kind).
		Limit(10).
		Scan(&related).Error
	return related, err
}

// Properties returns the product's property values restricted to the
// whitelisted option ids.
func (r *VariantRepository) Properties(ctx context.Context, productID uint, optionIDs []uint) ([]models.PropertyValue, error) {
	if len(optionIDs) == 0 {
		return nil, nil
	}
	var values []models.PropertyValue
	err := r.db.WithContext(ctx).
		Preload("Option").
		Joins("JOIN product_property_values ppv ON ppv.value_id = property_values.id").
		Where("ppv.product_id = ? AND property_values.option_id IN ?", productID, optionIDs).
		Find(&values).Error
	return values, err
}

// PropertyValueAttributes returns the custom-attribute rows of one property
// value.
func (r *VariantRepository) PropertyValueAttributes(ctx context.Context, valueID uint) ([]models.PropertyValueAttribute, error) {
	var attributes []models.PropertyValueAttribute
	err := r.db.WithContext(ctx).
		Where("value_id = ?", valueID).
		Find(&attributes).Error
	return attributes, err
}

// ConfiguratorOptions returns the options that distinguish this variant,
// with their groups.
func (r *VariantRepository) ConfiguratorOptions(ctx context.Context, variantID uint) ([]models.ConfiguratorOption, error) {
	var options []models.ConfiguratorOption
	err := r.db.WithContext(ctx).
		Preload("Group").
		Joins("JOIN variant_configurator_options vco ON vco.option_id = configurator_options.id").
		Where("vco.variant_id = ?", variantID).
		Find(&options).Error
	return options, err
}

// ExcludedCustomerGroups returns the customer groups the product is hidden
// from.
func (r *VariantRepository) ExcludedCustomerGroups(ctx context.Context, productID uint) ([]models.CustomerGroup, error) {
	var groups []models.CustomerGroup
	err := r.db.WithContext(ctx).
		Joins("JOIN product_avoid_customer_groups pacg ON pacg.customer_group_id = customer_groups.id").
		Where("pacg.product_id = ?", productID).
		Find(&groups).Error
	return groups, err
}

// Attributes returns the open custom-attribute rows of a variant.
func (r *VariantRepository) Attributes(ctx context.Context, variantID uint) ([]models.VariantAttribute, error) {
	var attributes []models.VariantAttribute
	err := r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Find(&attributes).Error
	return attributes, err
}

// SeoURLPath returns the canonical rewritten URL path of a product in one
// shop, or the empty string when none exists.
func (r *VariantRepository) SeoURLPath(ctx context.Context, productID, shopID uint) (string, error) {
	var seo models.SeoURL
	err := r.db.WithContext(ctx).
		First(&seo, "product_id = ? AND shop_id = ? AND main = ?", productID, shopID, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return seo.Path, nil
}

// RawStock reads a variant's stock straight from the row, clamping negative
// values to zero. Kept as a raw query because stock written during order
// checkout bypasses the loaded entity.
func (r *VariantRepository) RawStock(ctx context.Context, number string) (int, error) {
	var stock int
	err := r.db.WithContext(ctx).
		Raw("SELECT CASE WHEN in_stock < 0 THEN 0 ELSE in_stock END FROM variants WHERE number = ?", number).
		Scan(&stock).Error
	return stock, err
}
