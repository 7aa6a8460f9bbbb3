package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"channelfeed/internal/database"
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

// seedVariant creates a product and its main variant under the same id.
func seedVariant(t *testing.T, db *gorm.DB, id uint, number, ean string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Product{
		ID: id, Name: "Widget " + number, Active: true, SupplierID: 1, TaxID: 1,
	}).Error)
	require.NoError(t, db.Create(&models.Variant{
		ID: id, ProductID: id, Number: number, Kind: 1, Active: true,
		InStock: 10, MinPurchase: 1, EAN: ean,
	}).Error)
}
