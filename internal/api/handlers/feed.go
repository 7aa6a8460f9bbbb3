package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"channelfeed/internal/catalog"
	"channelfeed/internal/feed"
	"channelfeed/internal/logger"
	"channelfeed/internal/models"
	"channelfeed/internal/settings"
)

// Feed functions accepted by the endpoint.
const (
	FncGetArticles   = "getarticles"
	FncSetWebhookURL = "setwebhookurl"
)

type FeedHandler struct {
	shops        *catalog.ShopRepository
	translations *catalog.TranslationReader
	settings     *settings.Reader
	assembler    *feed.Assembler
	logger       *logger.Logger
}

func NewFeedHandler(
	shops *catalog.ShopRepository,
	translations *catalog.TranslationReader,
	cfg *settings.Reader,
	assembler *feed.Assembler,
	log *logger.Logger,
) *FeedHandler {
	return &FeedHandler{
		shops:        shops,
		translations: translations,
		settings:     cfg,
		assembler:    assembler,
		logger:       log,
	}
}

// Handle dispatches on the fnc parameter, mirroring the polling contract of
// the feed service.
func (h *FeedHandler) Handle(c *gin.Context) {
	switch c.Query("fnc") {
	case FncGetArticles:
		h.getArticles(c)
	case FncSetWebhookURL:
		h.setWebhookURL(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing or unknown parameter: fnc"})
	}
}

func (h *FeedHandler) getArticles(c *gin.Context) {
	shop, ok := h.resolveShop(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	cfg, err := h.settings.Get(c.Request.Context(), shop.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	configUnits, err := h.translations.Read(c.Request.Context(), shop.ID, catalog.TranslationConfigUnits, 0)
	if err != nil {
		h.fail(c, err)
		return
	}

	sc := &feed.ShopContext{Shop: shop, Settings: cfg, ConfigUnits: configUnits}

	items, total, err := h.assembler.List(c.Request.Context(), sc, offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": items,
		"total":    total,
		"offset":   offset,
		"limit":    cfg.PollLimit,
		"success":  true,
	})
}

func (h *FeedHandler) setWebhookURL(c *gin.Context) {
	shop, ok := h.resolveShop(c)
	if !ok {
		return
	}

	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing parameter: url"})
		return
	}

	if err := h.settings.SaveWebhookURL(c.Request.Context(), shop.ID, url); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// resolveShop loads the shop named by the request, or the default shop when
// none is named. A missing shop ends the request with 404.
func (h *FeedHandler) resolveShop(c *gin.Context) (*models.Shop, bool) {
	var (
		shop *models.Shop
		err  error
	)

	if raw := c.Query("shop"); raw != "" {
		id, convErr := strconv.ParseUint(raw, 10, 32)
		if convErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid parameter: shop"})
			return nil, false
		}
		shop, err = h.shops.ActiveByID(c.Request.Context(), uint(id))
	} else {
		shop, err = h.shops.ActiveDefault(c.Request.Context())
	}

	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "shop not found"})
		return nil, false
	}
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return shop, true
}

func (h *FeedHandler) fail(c *gin.Context, err error) {
	h.logger.Error("feed request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
}
