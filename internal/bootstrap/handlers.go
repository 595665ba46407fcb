package bootstrap

import (
	"github.com/go-authgate/passwordgrant/internal/config"
	"github.com/go-authgate/passwordgrant/internal/core"
	"github.com/go-authgate/passwordgrant/internal/handlers"
	"github.com/go-authgate/passwordgrant/internal/models"
	"github.com/go-authgate/passwordgrant/internal/store"
	"github.com/go-authgate/passwordgrant/internal/token"
)

// handlerSet holds all HTTP handlers
type handlerSet struct {
	token  *handlers.TokenHandler
	health *handlers.HealthHandler
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(
	cfg *config.Config,
	db *store.Store,
	clientCache core.Cache[models.OAuthApplication],
	recorder core.Recorder,
) handlerSet {
	return handlerSet{
		token:  handlers.NewTokenHandler(token.NewLocalTokenProvider(cfg), cfg, recorder),
		health: handlers.NewHealthHandler(db, clientCache),
	}
}
