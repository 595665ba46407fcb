package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-authgate/passwordgrant/internal/auth"
	"github.com/go-authgate/passwordgrant/internal/core"
	"github.com/go-authgate/passwordgrant/internal/models"
	"github.com/go-authgate/passwordgrant/internal/store"
)

const clientCacheKeyPrefix = "client:"

// ClientService resolves OAuth applications through the client cache.
type ClientService struct {
	store    *store.Store
	cache    core.Cache[models.OAuthApplication]
	cacheTTL time.Duration
	metrics  core.Recorder
}

func NewClientService(
	s *store.Store,
	c core.Cache[models.OAuthApplication],
	cacheTTL time.Duration,
	m core.Recorder,
) *ClientService {
	return &ClientService{
		store:    s,
		cache:    c,
		cacheTTL: cacheTTL,
		metrics:  m,
	}
}

// GetClient returns the application registered under clientID.
// Unknown clients yield auth.ErrClientNotFound; storage failures are wrapped.
func (s *ClientService) GetClient(ctx context.Context, clientID string) (*models.OAuthApplication, error) {
	hit := true
	client, err := s.cache.GetWithFetch(
		ctx,
		clientCacheKeyPrefix+clientID,
		s.cacheTTL,
		func(ctx context.Context, _ string) (models.OAuthApplication, error) {
			hit = false
			c, err := s.store.GetClient(ctx, clientID)
			if err != nil {
				return models.OAuthApplication{}, err
			}
			return *c, nil
		},
	)
	s.metrics.RecordClientCacheLookup(hit)

	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, auth.ErrClientNotFound
		}
		s.metrics.RecordDatabaseQueryError("get_client")
		return nil, fmt.Errorf("failed to load client %s: %w", clientID, err)
	}
	return &client, nil
}

// ValidateForPasswordGrant checks that client may use the password grant.
func (s *ClientService) ValidateForPasswordGrant(client *models.OAuthApplication) error {
	if !client.IsActive {
		return auth.ErrClientInactive
	}
	if !client.AllowsGrant(models.GrantTypePassword) {
		return auth.ErrGrantNotAllowed
	}
	return nil
}

// UpdateClient persists client and drops its cached copy.
func (s *ClientService) UpdateClient(ctx context.Context, client *models.OAuthApplication) error {
	if err := s.store.UpdateClient(ctx, client); err != nil {
		return err
	}
	s.InvalidateClientCache(ctx, client.ClientID)
	return nil
}

// InvalidateClientCache removes a cached application; failures are only logged.
func (s *ClientService) InvalidateClientCache(ctx context.Context, clientID string) {
	if err := s.cache.Delete(ctx, clientCacheKeyPrefix+clientID); err != nil {
		log.Printf("[Client] Failed to invalidate cache for client=%s: %v", clientID, err)
	}
}
