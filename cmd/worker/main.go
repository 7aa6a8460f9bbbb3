package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"channelfeed/internal/catalog"
	"channelfeed/internal/config"
	"channelfeed/internal/database"
	"channelfeed/internal/logger"
	"channelfeed/internal/settings"
	"channelfeed/internal/webhook"
	"channelfeed/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())

	// Wiring
	cache := settings.NewCache(ctx, cfg.RedisURL, logg)
	settingsReader := settings.NewReader(db.DB, cache, logg)
	variants := catalog.NewVariantRepository(db.DB)
	shops := catalog.NewShopRepository(db.DB)
	translations := catalog.NewTranslationReader(db.DB)

	notifier := webhook.NewNotifier(
		settingsReader,
		shops,
		variants,
		translations,
		time.Duration(cfg.WebhookTimeoutSeconds)*time.Second,
		logg,
	)

	w := worker.New(cfg, logg, notifier)

	// Shut down on SIGINT/SIGTERM
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
		w.Stop()
	}()

	w.Start(ctx)
}
