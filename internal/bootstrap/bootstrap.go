package bootstrap

import (
	"context"
	"net/http"

	"github.com/go-authgate/passwordgrant/internal/config"
	"github.com/go-authgate/passwordgrant/internal/core"
	"github.com/go-authgate/passwordgrant/internal/models"
	"github.com/go-authgate/passwordgrant/internal/services"
	"github.com/go-authgate/passwordgrant/internal/store"
	"github.com/go-authgate/passwordgrant/strategy"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config

	// Core infrastructure
	DB                   *store.Store
	MetricsRecorder      core.Recorder
	ClientCache          core.Cache[models.OAuthApplication]
	RateLimitRedisClient *redis.Client

	// Business layer
	ClientService       *services.ClientService
	UserService         *services.UserService
	VerificationService *services.VerificationService
	Strategy            *strategy.Strategy[*models.Principal]

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application, blocking until shutdown.
func Run(ctx context.Context, cfg *config.Config) error {
	app, err := newApplication(ctx, cfg)
	if err != nil {
		return err
	}

	app.startWithGracefulShutdown()
	return nil
}

// newApplication wires every component without starting the server.
func newApplication(ctx context.Context, cfg *config.Config) (*Application, error) {
	app := &Application{Config: cfg}

	// Phase 1: Validate configuration
	if err := validateAllConfiguration(cfg); err != nil {
		return nil, err
	}

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(ctx); err != nil {
		app.closeInfrastructure()
		return nil, err
	}

	// Phase 3: Initialize business layer
	if err := app.initializeBusinessLayer(); err != nil {
		app.closeInfrastructure()
		return nil, err
	}

	// Phase 4: Initialize HTTP layer
	app.initializeHTTPLayer()

	return app, nil
}

// initializeInfrastructure sets up database, metrics, cache, and Redis
func (app *Application) initializeInfrastructure(ctx context.Context) error {
	var err error

	app.DB, err = initializeDatabase(ctx, app.Config)
	if err != nil {
		return err
	}

	app.MetricsRecorder = initializeMetrics(app.Config)

	app.ClientCache, err = initializeClientCache(ctx, app.Config)
	if err != nil {
		return err
	}

	app.RateLimitRedisClient, err = initializeRateLimitRedisClient(ctx, app.Config)
	if err != nil {
		return err
	}

	return nil
}

// initializeBusinessLayer sets up services and the password strategy
func (app *Application) initializeBusinessLayer() error {
	var err error

	app.ClientService, app.UserService, app.VerificationService, err = initializeServices(
		app.Config,
		app.DB,
		app.ClientCache,
		app.MetricsRecorder,
	)
	if err != nil {
		return err
	}

	app.Strategy, err = initializeStrategy(app.Config, app.VerificationService)
	return err
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() {
	app.HandlerSet = initializeHandlers(
		app.Config,
		app.DB,
		app.ClientCache,
		app.MetricsRecorder,
	)

	app.Router = setupRouter(
		app.Config,
		app.HandlerSet,
		app.Strategy,
		app.MetricsRecorder,
		app.RateLimitRedisClient,
	)

	app.Server = createHTTPServer(app.Config, app.Router)
}

// closeInfrastructure releases whatever initializeInfrastructure managed to open
func (app *Application) closeInfrastructure() {
	if app.RateLimitRedisClient != nil {
		_ = app.RateLimitRedisClient.Close()
	}
	if app.ClientCache != nil {
		_ = app.ClientCache.Close()
	}
	if app.DB != nil {
		_ = app.DB.Close()
	}
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	addServerRunningJob(m, app.Server)
	addServerShutdownJob(m, app.Server, app.Config.ServerShutdownTimeout)
	addRedisClientShutdownJob(m, app.RateLimitRedisClient)
	addCacheShutdownJob(m, app.ClientCache)
	addDatabaseShutdownJob(m, app.DB)

	<-m.Done()
}
