package main

import (
	"context"
	"log"

	"channelfeed/internal/api"
	"channelfeed/internal/config"
	"channelfeed/internal/database"
	"channelfeed/internal/logger"
	"channelfeed/internal/settings"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logg := logger.New(cfg.LogLevel, cfg.Env == "production")
	defer logg.Sync()

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logg.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Settings reader with optional Redis cache
	cache := settings.NewCache(context.Background(), cfg.RedisURL, logg)
	settingsReader := settings.NewReader(db.DB, cache, logg)

	// Initialize API server
	server := api.New(cfg, logg, db, settingsReader)

	// Start server
	logg.Info("Starting API server on port %s", cfg.APIPort)
	if err := server.Start(); err != nil {
		logg.Fatal("Failed to start server: %v", err)
	}
}
