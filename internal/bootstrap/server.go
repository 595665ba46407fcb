package bootstrap

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-authgate/passwordgrant/internal/config"
	"github.com/go-authgate/passwordgrant/internal/core"
	"github.com/go-authgate/passwordgrant/internal/models"
	"github.com/go-authgate/passwordgrant/internal/store"

	"github.com/appleboy/graceful"
	"github.com/redis/go-redis/v9"
)

// createHTTPServer creates the HTTP server instance
func createHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// addServerRunningJob adds the HTTP server running job
func addServerRunningJob(m *graceful.Manager, srv *http.Server) {
	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()
		<-ctx.Done()
		return nil
	})
}

// addServerShutdownJob adds HTTP server shutdown handler
func addServerShutdownJob(m *graceful.Manager, srv *http.Server, timeout time.Duration) {
	m.AddShutdownJob(func() error {
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
			return err
		}

		log.Println("Server exited")
		return nil
	})
}

// addRedisClientShutdownJob adds Redis client shutdown handler
func addRedisClientShutdownJob(m *graceful.Manager, redisClient *redis.Client) {
	if redisClient == nil {
		return
	}
	addCloserShutdownJob(m, "Redis connection", redisClient)
}

// addCacheShutdownJob closes the client cache on shutdown
func addCacheShutdownJob(m *graceful.Manager, c core.Cache[models.OAuthApplication]) {
	if c == nil {
		return
	}
	addCloserShutdownJob(m, "client cache", c)
}

// addDatabaseShutdownJob closes the connection pool on shutdown
func addDatabaseShutdownJob(m *graceful.Manager, db *store.Store) {
	if db == nil {
		return
	}
	addCloserShutdownJob(m, "database", db)
}

func addCloserShutdownJob(m *graceful.Manager, name string, c io.Closer) {
	m.AddShutdownJob(func() error {
		log.Printf("Closing %s...", name)
		if err := c.Close(); err != nil {
			log.Printf("Error closing %s: %v", name, err)
			return err
		}
		log.Printf("%s closed", name)
		return nil
	})
}
