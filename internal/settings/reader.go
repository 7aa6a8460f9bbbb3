package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"channelfeed/internal/logger"
	"channelfeed/internal/models"
)

const cacheTTL = 5 * time.Minute

// Reader loads the per-shop feed settings, caching each shop's row in Redis.
// A nil cache client degrades to plain database reads, which is how tests and
// single-node development run.
type Reader struct {
	db     *gorm.DB
	cache  *redis.Client
	logger *logger.Logger
}

func NewReader(db *gorm.DB, cache *redis.Client, log *logger.Logger) *Reader {
	return &Reader{db: db, cache: cache, logger: log}
}

// NewCache connects a Redis client for the settings cache. An empty URL means
// no cache.
func NewCache(ctx context.Context, redisURL string, log *logger.Logger) *redis.Client {
	if redisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn("invalid REDIS_URL, settings cache disabled: %v", err)
		return nil
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, settings cache disabled: %v", err)
		return nil
	}
	return client
}

func cacheKey(shopID uint) string {
	return fmt.Sprintf("channelfeed:settings:%d", shopID)
}

// Get returns the feed settings of one shop. Shops without a settings row get
// the defaults (everything off, default poll limit).
func (r *Reader) Get(ctx context.Context, shopID uint) (*models.FeedSettings, error) {
	if r.cache != nil {
		raw, err := r.cache.Get(ctx, cacheKey(shopID)).Bytes()
		if err == nil {
			var cached models.FeedSettings
			if err := json.Unmarshal(raw, &cached); err == nil {
				return withDefaults(&cached), nil
			}
		} else if !errors.Is(err, redis.Nil) {
			r.logger.Warn("settings cache read failed for shop %d: %v", shopID, err)
		}
	}

	var row models.FeedSettings
	err := r.db.WithContext(ctx).First(&row, "shop_id = ?", shopID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.FeedSettings{ShopID: shopID}
	} else if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if raw, err := json.Marshal(&row); err == nil {
			if err := r.cache.Set(ctx, cacheKey(shopID), raw, cacheTTL).Err(); err != nil {
				r.logger.Warn("settings cache write failed for shop %d: %v", shopID, err)
			}
		}
	}

	return withDefaults(&row), nil
}

func withDefaults(s *models.FeedSettings) *models.FeedSettings {
	if s.PollLimit <= 0 {
		s.PollLimit = models.DefaultPollLimit
	}
	return s
}

// SaveWebhookURL persists the webhook URL for one shop, creating the settings
// row if needed, and drops the cached copy.
func (r *Reader) SaveWebhookURL(ctx context.Context, shopID uint, url string) error {
	var row models.FeedSettings
	err := r.db.WithContext(ctx).First(&row, "shop_id = ?", shopID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = models.FeedSettings{ShopID: shopID, WebhookURL: url}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		row.WebhookURL = url
		if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
			return err
		}
	}

	if r.cache != nil {
		if err := r.cache.Del(ctx, cacheKey(shopID)).Err(); err != nil {
			r.logger.Warn("settings cache invalidation failed for shop %d: %v", shopID, err)
		}
	}
	return nil
}
