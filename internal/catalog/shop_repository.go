package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"channelfeed/internal/models"
)

type ShopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

// ActiveByID loads an active shop with its customer group and currency.
func (r *ShopRepository) ActiveByID(ctx context.Context, id uint) (*models.Shop, error) {
	var shop models.Shop
	err := r.db.WithContext(ctx).
		Preload("CustomerGroup").
		Preload("Currency").
		First(&shop, "id = ? AND active = ?", id, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

// ActiveDefault loads the default shop. Used when a feed request names no
// shop.
func (r *ShopRepository) ActiveDefault(ctx context.Context) (*models.Shop, error) {
	var shop models.Shop
	err := r.db.WithContext(ctx).
		Preload("CustomerGroup").
		Preload("Currency").
		First(&shop, `"default" = ? AND active = ?`, true, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

// ActiveShops returns every active shop, for webhook broadcasts.
func (r *ShopRepository) ActiveShops(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	err := r.db.WithContext(ctx).
		Preload("CustomerGroup").
		Preload("Currency").
		Where("active = ?", true).
		Order("id ASC").
		Find(&shops).Error
	return shops, err
}

// splitPath turns a materialized id path ("/1/3/7/") into its ids in order.
func splitPath(path string) []uint {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}
