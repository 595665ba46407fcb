package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/go-authgate/passwordgrant/internal/cache"
	"github.com/go-authgate/passwordgrant/internal/config"
	"github.com/go-authgate/passwordgrant/internal/core"
	"github.com/go-authgate/passwordgrant/internal/metrics"
	"github.com/go-authgate/passwordgrant/internal/models"
)

const clientCacheKeyPrefix = "passwordgrant:clients:"

// initializeMetrics initializes Prometheus metrics
func initializeMetrics(cfg *config.Config) core.Recorder {
	recorder := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		log.Println("Prometheus metrics initialized")
	} else {
		log.Println("Metrics disabled (using noop implementation)")
	}
	return recorder
}

// initializeClientCache initializes the OAuth application cache
func initializeClientCache(
	ctx context.Context,
	cfg *config.Config,
) (core.Cache[models.OAuthApplication], error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.CacheInitTimeout)
	defer cancel()

	switch cfg.ClientCacheType {
	case config.ClientCacheTypeRedis:
		c, err := cache.NewRueidisCache[models.OAuthApplication](
			ctx,
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			clientCacheKeyPrefix,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis client cache: %w", err)
		}
		log.Printf("Client cache: redis (addr=%s, db=%d, ttl=%s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.ClientCacheTTL)
		return c, nil

	default: // memory
		log.Printf("Client cache: memory (single instance only, ttl=%s)", cfg.ClientCacheTTL)
		return cache.NewMemoryCache[models.OAuthApplication](), nil
	}
}
