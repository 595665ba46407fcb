package client

import (
	"fmt"

	"github.com/go-authgate/passwordgrant/internal/config"

	httpclient "github.com/appleboy/go-httpclient"
	retry "github.com/appleboy/go-httpretry"
)

// NewVerifierClient builds the HTTP client used to reach the external
// password verification API: requests are signed according to
// HTTP_API_AUTH_MODE and retried with exponential backoff.
func NewVerifierClient(cfg *config.Config) (*retry.Client, error) {
	client, err := httpclient.NewAuthClient(
		cfg.HTTPAPIAuthMode,
		cfg.HTTPAPIAuthSecret,
		httpclient.WithTimeout(cfg.HTTPAPITimeout),
		httpclient.WithHeaderName(cfg.HTTPAPIAuthHeader),
		httpclient.WithInsecureSkipVerify(cfg.HTTPAPIInsecureSkipVerify),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth client: %w", err)
	}

	retryClient, err := retry.NewRealtimeClient(
		retry.WithHTTPClient(client),
		retry.WithMaxRetries(cfg.HTTPAPIMaxRetries),
		retry.WithInitialRetryDelay(cfg.HTTPAPIRetryDelay),
		retry.WithMaxRetryDelay(cfg.HTTPAPIMaxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry client: %w", err)
	}

	return retryClient, nil
}
