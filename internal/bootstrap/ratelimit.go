package bootstrap

import (
	"fmt"
	"log"

	"github.com/go-authgate/passwordgrant/internal/config"
	"github.com/go-authgate/passwordgrant/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// setupTokenRateLimit returns the limiter guarding /oauth/token, or a no-op
// when rate limiting is disabled.
func setupTokenRateLimit(cfg *config.Config, redisClient *redis.Client) (gin.HandlerFunc, error) {
	if !cfg.EnableRateLimit {
		log.Println("Rate limiting disabled")
		return func(c *gin.Context) { c.Next() }, nil
	}

	storeType := middleware.RateLimitStoreType(cfg.RateLimitStore)
	if storeType == middleware.RateLimitStoreRedis {
		log.Printf("Rate limiting enabled (store: redis, %d req/min)", cfg.TokenRateLimit)
	} else {
		log.Printf("Rate limiting enabled (store: memory, %d req/min, single instance only)",
			cfg.TokenRateLimit)
	}

	limiter, err := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerMinute: cfg.TokenRateLimit,
		StoreType:         storeType,
		RedisClient:       redisClient,
		CleanupInterval:   cfg.RateLimitCleanup,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter for /oauth/token: %w", err)
	}
	return limiter, nil
}
