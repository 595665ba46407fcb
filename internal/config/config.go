package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Authentication mode constants
const (
	AuthModeLocal   = "local"
	AuthModeHTTPAPI = "http_api"
)

// Rate limit store constants
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

// Client cache type constants
const (
	ClientCacheTypeMemory = "memory"
	ClientCacheTypeRedis  = "redis"
)

type Config struct {
	// Server settings
	ServerAddr   string
	BaseURL      string
	IsProduction bool

	// JWT settings
	JWTSecret     string
	JWTExpiration time.Duration

	// Database
	DatabaseDriver       string // "sqlite" or "postgres"
	DatabaseDSN          string // Database connection string (DSN or path)
	DefaultAdminPassword string   // Seeded admin password (random when empty)
	DefaultClientScopes  []string // Scopes granted to the seeded client

	// Authentication
	AuthMode              string // "local" or "http_api"
	PassRequestToCallback bool   // Verifier receives the original request

	// HTTP API Authentication
	HTTPAPIURL                string
	HTTPAPITimeout            time.Duration
	HTTPAPIInsecureSkipVerify bool
	HTTPAPIAuthMode           string // "none", "simple", or "hmac"
	HTTPAPIAuthSecret         string
	HTTPAPIAuthHeader         string // Header name for simple mode (default: "X-API-Secret")
	HTTPAPIMaxRetries         int
	HTTPAPIRetryDelay         time.Duration
	HTTPAPIMaxRetryDelay      time.Duration

	// Client lookup cache
	ClientCacheType string // "memory" or "redis"
	ClientCacheTTL  time.Duration

	// Redis (client cache and rate limiting)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Rate limiting for the token endpoint
	EnableRateLimit    bool
	RateLimitStore     string // "memory" or "redis"
	TokenRateLimit     int    // requests per minute per IP
	RateLimitCleanup   time.Duration

	// Metrics
	MetricsEnabled bool
	MetricsToken   string

	// Timeouts
	DBInitTimeout         time.Duration
	RedisConnTimeout      time.Duration
	CacheInitTimeout      time.Duration
	ServerShutdownTimeout time.Duration
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	driver := getEnv("DATABASE_DRIVER", "sqlite")
	var dsn string
	if driver == "sqlite" {
		dsn = getEnv("DATABASE_DSN", getEnv("DATABASE_PATH", "passwordgrant.db"))
	} else {
		dsn = getEnv("DATABASE_DSN", "")
	}

	return &Config{
		ServerAddr:   getEnv("SERVER_ADDR", ":8080"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),
		IsProduction: getEnvBool("ENVIRONMENT_PRODUCTION", false),

		JWTSecret:     getEnv("JWT_SECRET", "your-256-bit-secret-change-in-production"),
		JWTExpiration: getEnvDuration("JWT_EXPIRATION", time.Hour),

		DatabaseDriver:       driver,
		DatabaseDSN:          dsn,
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", ""),
		DefaultClientScopes:  getEnvSlice("DEFAULT_CLIENT_SCOPES", []string{"read", "write"}),

		AuthMode:              getEnv("AUTH_MODE", AuthModeLocal),
		PassRequestToCallback: getEnvBool("PASS_REQUEST_TO_CALLBACK", true),

		HTTPAPIURL:                getEnv("HTTP_API_URL", ""),
		HTTPAPITimeout:            getEnvDuration("HTTP_API_TIMEOUT", 10*time.Second),
		HTTPAPIInsecureSkipVerify: getEnvBool("HTTP_API_INSECURE_SKIP_VERIFY", false),
		HTTPAPIAuthMode:           getEnv("HTTP_API_AUTH_MODE", "none"),
		HTTPAPIAuthSecret:         getEnv("HTTP_API_AUTH_SECRET", ""),
		HTTPAPIAuthHeader:         getEnv("HTTP_API_AUTH_HEADER", "X-API-Secret"),
		HTTPAPIMaxRetries:         getEnvInt("HTTP_API_MAX_RETRIES", 3),
		HTTPAPIRetryDelay:         getEnvDuration("HTTP_API_RETRY_DELAY", 1*time.Second),
		HTTPAPIMaxRetryDelay:      getEnvDuration("HTTP_API_MAX_RETRY_DELAY", 10*time.Second),

		ClientCacheType: getEnv("CLIENT_CACHE_TYPE", ClientCacheTypeMemory),
		ClientCacheTTL:  getEnvDuration("CLIENT_CACHE_TTL", 5*time.Minute),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		EnableRateLimit:    getEnvBool("ENABLE_RATE_LIMIT", true),
		RateLimitStore:     getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory),
		TokenRateLimit:     getEnvInt("TOKEN_RATE_LIMIT", 20),
		RateLimitCleanup:   getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", false),
		MetricsToken:   getEnv("METRICS_TOKEN", ""),

		DBInitTimeout:         getEnvDuration("DB_INIT_TIMEOUT", 30*time.Second),
		RedisConnTimeout:      getEnvDuration("REDIS_CONN_TIMEOUT", 5*time.Second),
		CacheInitTimeout:      getEnvDuration("CACHE_INIT_TIMEOUT", 5*time.Second),
		ServerShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

// Validate checks enum-valued settings and the settings they depend on.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeLocal:
	case AuthModeHTTPAPI:
		if c.HTTPAPIURL == "" {
			return errors.New("HTTP_API_URL is required when AUTH_MODE=http_api")
		}
	default:
		return fmt.Errorf(
			"invalid AUTH_MODE value: %q (must be %q or %q)",
			c.AuthMode, AuthModeLocal, AuthModeHTTPAPI,
		)
	}

	if c.EnableRateLimit {
		switch c.RateLimitStore {
		case RateLimitStoreMemory, RateLimitStoreRedis:
		default:
			return fmt.Errorf(
				"invalid RATE_LIMIT_STORE value: %q (must be %q or %q)",
				c.RateLimitStore, RateLimitStoreMemory, RateLimitStoreRedis,
			)
		}
		if c.TokenRateLimit <= 0 {
			return fmt.Errorf("TOKEN_RATE_LIMIT must be positive, got %d", c.TokenRateLimit)
		}
	}

	switch c.ClientCacheType {
	case ClientCacheTypeMemory:
	case ClientCacheTypeRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("CLIENT_CACHE_TYPE=%q requires REDIS_ADDR", c.ClientCacheType)
		}
	default:
		return fmt.Errorf(
			"invalid CLIENT_CACHE_TYPE value: %q (must be %q or %q)",
			c.ClientCacheType, ClientCacheTypeMemory, ClientCacheTypeRedis,
		)
	}

	if c.ClientCacheTTL <= 0 {
		return fmt.Errorf("CLIENT_CACHE_TTL must be positive, got %s", c.ClientCacheTTL)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvSlice splits a comma-separated value, dropping empty parts.
func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var parts []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return defaultValue
	}
	return parts
}
