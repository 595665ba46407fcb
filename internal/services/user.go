package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-authgate/passwordgrant/internal/auth"
	"github.com/go-authgate/passwordgrant/internal/config"
	"github.com/go-authgate/passwordgrant/internal/core"
	"github.com/go-authgate/passwordgrant/internal/models"
	"github.com/go-authgate/passwordgrant/internal/store"
)

var (
	ErrAuthProviderFailed = errors.New("authentication provider failed")
	ErrUserSyncFailed     = errors.New("failed to sync user from external provider")
)

type UserService struct {
	store           *store.Store
	localProvider   core.AuthProvider
	httpAPIProvider core.AuthProvider
	authMode        string
	metrics         core.Recorder
}

func NewUserService(
	s *store.Store,
	localProvider core.AuthProvider,
	httpAPIProvider core.AuthProvider,
	authMode string,
	m core.Recorder,
) *UserService {
	return &UserService{
		store:           s,
		localProvider:   localProvider,
		httpAPIProvider: httpAPIProvider,
		authMode:        authMode,
		metrics:         m,
	}
}

// Authenticate checks username/password and returns the local user record
// together with the name of the provider that decided. Rejections carry an
// auth sentinel (see auth.IsRejection); anything else is an infrastructure error.
func (s *UserService) Authenticate(
	ctx context.Context,
	username, password string,
) (*models.User, string, error) {
	existingUser, err := s.store.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return s.authenticateExistingUser(ctx, existingUser, password)
	case !errors.Is(err, store.ErrRecordNotFound):
		s.metrics.RecordDatabaseQueryError("get_user")
		return nil, config.AuthModeLocal, fmt.Errorf("%w: %v", auth.ErrUserLookupFailed, err)
	}

	// Unknown locally: an external API may still vouch for the user
	if s.authMode == config.AuthModeHTTPAPI {
		return s.authenticateAndCreateExternalUser(ctx, username, password)
	}

	return nil, config.AuthModeLocal, auth.ErrInvalidCredentials
}

// authenticateExistingUser routes on the user's auth_source
func (s *UserService) authenticateExistingUser(
	ctx context.Context,
	user *models.User,
	password string,
) (*models.User, string, error) {
	if user.AuthSource == config.AuthModeHTTPAPI {
		result, err := s.callHTTPAPI(ctx, user.Username, password)
		if err != nil {
			return nil, config.AuthModeHTTPAPI, err
		}
		updatedUser, syncErr := s.syncExternalUser(ctx, result)
		if syncErr != nil {
			log.Printf("[Auth] Sync failed for user=%s: %v", user.Username, syncErr)
		} else {
			user = updatedUser
		}
		return user, config.AuthModeHTTPAPI, nil
	}

	if s.localProvider == nil {
		return nil, config.AuthModeLocal, fmt.Errorf("%w: local provider not configured", ErrAuthProviderFailed)
	}
	if _, err := s.localProvider.Authenticate(ctx, user.Username, password); err != nil {
		return nil, config.AuthModeLocal, err
	}
	return user, config.AuthModeLocal, nil
}

// authenticateAndCreateExternalUser tries external auth and creates new user
func (s *UserService) authenticateAndCreateExternalUser(
	ctx context.Context,
	username, password string,
) (*models.User, string, error) {
	result, err := s.callHTTPAPI(ctx, username, password)
	if err != nil {
		return nil, config.AuthModeHTTPAPI, err
	}

	user, err := s.syncExternalUser(ctx, result)
	if err != nil {
		if errors.Is(err, store.ErrUsernameConflict) {
			log.Printf("[Auth] External user=%s collides with an existing account", username)
			return nil, config.AuthModeHTTPAPI, auth.ErrInvalidCredentials
		}
		s.metrics.RecordDatabaseQueryError("upsert_external_user")
		return nil, config.AuthModeHTTPAPI, fmt.Errorf("%w: %v", ErrUserSyncFailed, err)
	}

	log.Printf("[Auth] New external user created: %s", username)
	return user, config.AuthModeHTTPAPI, nil
}

func (s *UserService) callHTTPAPI(
	ctx context.Context,
	username, password string,
) (*auth.AuthResult, error) {
	if s.httpAPIProvider == nil {
		return nil, fmt.Errorf("%w: HTTP API provider not configured", ErrAuthProviderFailed)
	}
	start := time.Now()
	result, err := s.httpAPIProvider.Authenticate(ctx, username, password)
	s.metrics.RecordExternalAPICall(s.httpAPIProvider.Name(), time.Since(start))
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, auth.ErrHTTPAPIAuthFailed
	}
	return result, nil
}

// syncExternalUser creates or updates local user record from external auth result
func (s *UserService) syncExternalUser(
	ctx context.Context,
	result *auth.AuthResult,
) (*models.User, error) {
	return s.store.UpsertExternalUser(
		ctx,
		result.Username,
		result.ExternalID,
		config.AuthModeHTTPAPI,
		result.Email,
		result.FullName,
	)
}
