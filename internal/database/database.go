package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"channelfeed/internal/models"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return &Database{DB: db}, nil
}

// Migrate creates the catalog and settings tables. The schema spans both
// postgres and sqlite, so it goes through gorm's migrator instead of raw DDL.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Shop{},
		&models.CustomerGroup{},
		&models.Currency{},
		&models.Product{},
		&models.Variant{},
		&models.Price{},
		&models.Tax{},
		&models.Supplier{},
		&models.Unit{},
		&models.VariantAttribute{},
		&models.ProductRelation{},
		&models.ProductAvoidCustomerGroup{},
		&models.Category{},
		&models.ProductCategory{},
		&models.SeoCategory{},
		&models.SeoURL{},
		&models.Media{},
		&models.Image{},
		&models.PropertyGroup{},
		&models.PropertyOption{},
		&models.PropertyValue{},
		&models.PropertyValueAttribute{},
		&models.ProductPropertyValue{},
		&models.ConfiguratorGroup{},
		&models.ConfiguratorOption{},
		&models.VariantConfiguratorOption{},
		&models.Translation{},
		&models.FeedSettings{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
