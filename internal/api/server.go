package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"channelfeed/internal/api/handlers"
	"channelfeed/internal/api/middleware"
	"channelfeed/internal/catalog"
	"channelfeed/internal/config"
	"channelfeed/internal/database"
	"channelfeed/internal/feed"
	"channelfeed/internal/logger"
	"channelfeed/internal/settings"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, log *logger.Logger, db *database.Database, settingsReader *settings.Reader) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	// Wiring
	variants := catalog.NewVariantRepository(db.DB)
	shops := catalog.NewShopRepository(db.DB)
	translations := catalog.NewTranslationReader(db.DB)
	builder := feed.NewBuilder(variants, translations, log)
	assembler := feed.NewAssembler(variants, builder, log)

	feedHandler := handlers.NewFeedHandler(shops, translations, settingsReader, assembler, log)

	// Routes
	v1 := router.Group("/api")
	{
		v1.GET("/channelfeed", feedHandler.Handle)
		v1.POST("/channelfeed", feedHandler.Handle)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Server{
		config: cfg,
		logger: log,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on %s", addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
