package bootstrap

import (
	"fmt"
	"log"

	"github.com/go-authgate/passwordgrant/internal/auth"
	"github.com/go-authgate/passwordgrant/internal/config"
	"github.com/go-authgate/passwordgrant/internal/core"
	"github.com/go-authgate/passwordgrant/internal/models"
	"github.com/go-authgate/passwordgrant/internal/services"
	"github.com/go-authgate/passwordgrant/internal/store"
	"github.com/go-authgate/passwordgrant/strategy"
)

// initializeServices creates all business logic services
func initializeServices(
	cfg *config.Config,
	db *store.Store,
	clientCache core.Cache[models.OAuthApplication],
	recorder core.Recorder,
) (*services.ClientService, *services.UserService, *services.VerificationService, error) {
	httpAPIProvider, err := initializeHTTPAPIAuthProvider(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	clientService := services.NewClientService(db, clientCache, cfg.ClientCacheTTL, recorder)
	userService := services.NewUserService(
		db,
		auth.NewLocalAuthProvider(db),
		httpAPIProvider,
		cfg.AuthMode,
		recorder,
	)
	verificationService := services.NewVerificationService(clientService, userService, recorder)

	return clientService, userService, verificationService, nil
}

// initializeStrategy builds the password strategy. PASS_REQUEST_TO_CALLBACK
// selects the request-aware verifier, which records the caller's address
// from the transport request.
func initializeStrategy(
	cfg *config.Config,
	verifier *services.VerificationService,
) (*strategy.Strategy[*models.Principal], error) {
	s, err := strategy.NewWithOptions(strategy.Options[*models.Principal]{
		PassRequestToCallback: cfg.PassRequestToCallback,
		Verify:                verifier.Verify,
		VerifyRequest:         verifier.VerifyRequest,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s strategy: %w", strategy.Name, err)
	}
	log.Printf("Strategy %s ready (pass request to callback: %t)",
		s.Name(), s.PassRequestToCallback())
	return s, nil
}
