package services

import (
	"context"
	"testing"

	"github.com/go-authgate/passwordgrant/internal/auth"
	"github.com/go-authgate/passwordgrant/internal/cache"
	"github.com/go-authgate/passwordgrant/internal/config"
	"github.com/go-authgate/passwordgrant/internal/mocks"
	"github.com/go-authgate/passwordgrant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetClient_CacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockCache[models.OAuthApplication](ctrl)
	env := newTestEnv(t, mockCache, nil, config.AuthModeLocal)
	client := createTestClient(t, env.store, true, models.GrantTypePassword)

	mockCache.EXPECT().
		GetWithFetch(gomock.Any(), "client:"+client.ClientID, gomock.Any(), gomock.Any()).
		DoAndReturn(callFetchFn[models.OAuthApplication]).Times(1)

	result, err := env.clients.GetClient(context.Background(), client.ClientID)
	require.NoError(t, err)
	assert.Equal(t, client.ClientName, result.ClientName)
	assert.Equal(t, 1, env.metrics.cacheMisses)
	assert.Equal(t, 0, env.metrics.cacheHits)
}

func TestGetClient_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockCache[models.OAuthApplication](ctrl)
	env := newTestEnv(t, mockCache, nil, config.AuthModeLocal)

	cached := models.OAuthApplication{
		ClientID:   "cached-only",
		ClientName: "From Cache",
		GrantTypes: models.GrantTypePassword,
		IsActive:   true,
	}
	mockCache.EXPECT().
		GetWithFetch(gomock.Any(), "client:cached-only", gomock.Any(), gomock.Any()).
		Return(cached, nil)

	result, err := env.clients.GetClient(context.Background(), "cached-only")
	require.NoError(t, err)
	assert.Equal(t, "From Cache", result.ClientName)
	assert.Equal(t, 1, env.metrics.cacheHits)
}

func TestGetClient_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockCache[models.OAuthApplication](ctrl)
	env := newTestEnv(t, mockCache, nil, config.AuthModeLocal)

	mockCache.EXPECT().
		GetWithFetch(gomock.Any(), "client:missing", gomock.Any(), gomock.Any()).
		DoAndReturn(callFetchFn[models.OAuthApplication])

	_, err := env.clients.GetClient(context.Background(), "missing")
	assert.ErrorIs(t, err, auth.ErrClientNotFound)
	assert.Empty(t, env.metrics.dbErrors)
}

func TestUpdateClient_InvalidatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockCache[models.OAuthApplication](ctrl)
	env := newTestEnv(t, mockCache, nil, config.AuthModeLocal)
	client := createTestClient(t, env.store, true, models.GrantTypePassword)

	gomock.InOrder(
		mockCache.EXPECT().
			GetWithFetch(gomock.Any(), "client:"+client.ClientID, gomock.Any(), gomock.Any()).
			DoAndReturn(callFetchFn[models.OAuthApplication]),
		mockCache.EXPECT().
			Delete(gomock.Any(), "client:"+client.ClientID).
			Return(cache.ErrCacheUnavailable), // logged, not returned
		mockCache.EXPECT().
			GetWithFetch(gomock.Any(), "client:"+client.ClientID, gomock.Any(), gomock.Any()).
			DoAndReturn(callFetchFn[models.OAuthApplication]),
	)

	loaded, err := env.clients.GetClient(context.Background(), client.ClientID)
	require.NoError(t, err)

	loaded.IsActive = false
	require.NoError(t, env.clients.UpdateClient(context.Background(), loaded))

	reloaded, err := env.clients.GetClient(context.Background(), client.ClientID)
	require.NoError(t, err)
	assert.ErrorIs(t, env.clients.ValidateForPasswordGrant(reloaded), auth.ErrClientInactive)
}

func TestValidateForPasswordGrant(t *testing.T) {
	svc := &ClientService{}

	assert.NoError(t, svc.ValidateForPasswordGrant(&models.OAuthApplication{
		IsActive: true, GrantTypes: "refresh_token password",
	}))
	assert.ErrorIs(t, svc.ValidateForPasswordGrant(&models.OAuthApplication{
		IsActive: false, GrantTypes: "password",
	}), auth.ErrClientInactive)
	assert.ErrorIs(t, svc.ValidateForPasswordGrant(&models.OAuthApplication{
		IsActive: true, GrantTypes: "client_credentials",
	}), auth.ErrGrantNotAllowed)
}
