package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"channelfeed/internal/models"
)

// Object types understood by the translation reader.
const (
	TranslationArticle            = "article"
	TranslationVariant            = "variant"
	TranslationPropertyOption     = "propertyoption"
	TranslationPropertyValue      = "propertyvalue"
	TranslationConfiguratorGroup  = "configuratorgroup"
	TranslationConfiguratorOption = "configuratoroption"
	TranslationConfigUnits        = "config_units"
)

// TranslationReader resolves per-shop field translations. A missing
// translation is an empty map, never an error.
type TranslationReader struct {
	db *gorm.DB
}

func NewTranslationReader(db *gorm.DB) *TranslationReader {
	return &TranslationReader{db: db}
}

func (t *TranslationReader) Read(ctx context.Context, shopID uint, objectType string, objectKey uint) (map[string]string, error) {
	var row models.Translation
	err := t.db.WithContext(ctx).
		First(&row, "shop_id = ? AND object_type = ? AND object_key = ?", shopID, objectType, objectKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if row.Data == "" {
		return fields, nil
	}
	if err := json.Unmarshal([]byte(row.Data), &fields); err != nil {
		return nil, fmt.Errorf("malformed translation row %d: %w", row.ID, err)
	}
	return fields, nil
}
