package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"postcraft/backend/internal/config"
	configapp "postcraft/backend/internal/features/config/application"
	config_http "postcraft/backend/internal/features/config/presentation/http"
	contentapp "postcraft/backend/internal/features/content/application"
	content_http "postcraft/backend/internal/features/content/presentation/http"
	"postcraft/backend/internal/middleware"
)

// Dependencies are the services the router exposes.
type Dependencies struct {
	Config         *config.Config
	Templates      config.TemplateStore
	ContentService contentapp.ContentService
	OptionsService configapp.OptionsService
	Logger         *zap.Logger
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	logger := deps.Logger

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	health := &healthHandler{templates: deps.Templates, logger: logger}
	r.GET("/health", health.handleHealth)
	r.GET("/ready", health.handleReadiness)

	api := r.Group("/api")
	if cfg.RateLimit.RPS > 0 {
		limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
		api.Use(middleware.RateLimitMiddleware(limiter))
		logger.Info("Rate limiting enabled",
			zap.Float64("rps", cfg.RateLimit.RPS),
			zap.Int("burst", cfg.RateLimit.Burst))
	}

	// Content API routes
	{
		handler := content_http.NewContentHandler(deps.ContentService, cfg.LegacyErrorResponses, logger)
		api.POST("/generate", handler.GenerateHandler)
		api.POST("/chat", handler.ChatHandler)
	}

	// Options API routes
	{
		handler := config_http.NewOptionsHandler(deps.OptionsService, logger)
		api.GET("/options", handler.GetOptionsHandler)
		api.GET("/platforms", handler.GetPlatformsHandler)
		api.GET("/models", handler.GetModelsHandler)
		api.POST("/validate", handler.ValidateHandler)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r
}

// corsConfig allows every origin when origins is empty.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, origin := range origins {
		cfg.AllowOrigins = append(cfg.AllowOrigins, strings.TrimRight(origin, "/"))
	}
	return cfg
}
