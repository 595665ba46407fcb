package bootstrap

import (
	"fmt"
	"log"

	"github.com/go-authgate/passwordgrant/internal/auth"
	"github.com/go-authgate/passwordgrant/internal/client"
	"github.com/go-authgate/passwordgrant/internal/config"
	"github.com/go-authgate/passwordgrant/internal/core"
)

// initializeHTTPAPIAuthProvider creates the HTTP API verifier when AUTH_MODE=http_api.
// A nil provider is returned for local mode.
func initializeHTTPAPIAuthProvider(cfg *config.Config) (core.AuthProvider, error) {
	if cfg.AuthMode != config.AuthModeHTTPAPI {
		return nil, nil //nolint:nilnil // provider not needed in this configuration
	}

	retryClient, err := client.NewVerifierClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP API auth client: %w", err)
	}
	log.Printf("HTTP API authentication enabled: %s (auth mode: %s)",
		cfg.HTTPAPIURL, cfg.HTTPAPIAuthMode)
	return auth.NewHTTPAPIAuthProvider(cfg.HTTPAPIURL, retryClient), nil
}
