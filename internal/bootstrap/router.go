package bootstrap

import (
	"log"

	"github.com/go-authgate/passwordgrant/internal/config"
	"github.com/go-authgate/passwordgrant/internal/core"
	"github.com/go-authgate/passwordgrant/internal/metrics"
	"github.com/go-authgate/passwordgrant/internal/middleware"
	"github.com/go-authgate/passwordgrant/internal/models"
	"github.com/go-authgate/passwordgrant/internal/version"
	"github.com/go-authgate/passwordgrant/strategy"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	h handlerSet,
	s *strategy.Strategy[*models.Principal],
	recorder core.Recorder,
	rateLimitRedisClient *redis.Client,
) *gin.Engine {
	setupGinMode(cfg)
	r := gin.New()

	r.Use(metrics.HTTPMetricsMiddleware(recorder))
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.IPMiddleware())

	r.GET("/health", h.health.Health)
	setupMetricsEndpoint(r, cfg)

	tokenLimiter, err := setupTokenRateLimit(cfg, rateLimitRedisClient)
	if err != nil {
		log.Fatalf("Failed to set up rate limiting: %v", err)
	}

	oauth := r.Group("/oauth")
	{
		oauth.POST(
			"/token",
			tokenLimiter,
			h.token.RequirePasswordGrant,
			middleware.Authenticate(s),
			h.token.Token,
		)
		oauth.GET("/tokeninfo", h.token.TokenInfo)
	}

	logServerStartup(cfg)
	return r
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config) {
	switch {
	case !cfg.MetricsEnabled:
		log.Printf("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		log.Printf("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		log.Printf("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config) {
	mode := ginModeMap[cfg.IsProduction]
	gin.SetMode(mode)
	log.Printf("Gin mode: %s", ginModeLogMessage[cfg.IsProduction])
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

var ginModeLogMessage = map[bool]string{
	true:  "Release (production)",
	false: "Debug (development)",
}

// logServerStartup logs server startup information
func logServerStartup(cfg *config.Config) {
	log.Printf("Authentication mode: %s", cfg.AuthMode)
	log.Printf("%s starting on %s", version.String(), cfg.ServerAddr)
	log.Printf("Token endpoint: %s/oauth/token", cfg.BaseURL)
	log.Printf("Default user: admin (check logs for password if first run)")
	log.Printf("Default client: Password Grant CLI (check logs for client_id)")
}
