package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-authgate/passwordgrant/internal/auth"
	"github.com/go-authgate/passwordgrant/internal/cache"
	"github.com/go-authgate/passwordgrant/internal/config"
	"github.com/go-authgate/passwordgrant/internal/core"
	"github.com/go-authgate/passwordgrant/internal/models"
	"github.com/go-authgate/passwordgrant/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(context.Background(), "sqlite", ":memory:", &config.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createTestClient(
	t *testing.T,
	s *store.Store,
	isActive bool,
	grantTypes string,
) *models.OAuthApplication {
	t.Helper()
	client := &models.OAuthApplication{
		ClientID:     uuid.New().String(),
		ClientSecret: "secret",
		ClientName:   "Test Client",
		Description:  "Test client for testing",
		UserID:       uuid.New().String(),
		Scopes:       "read write",
		GrantTypes:   grantTypes,
		IsActive:     true,
	}
	require.NoError(t, s.CreateClient(context.Background(), client))
	if !isActive {
		// gorm skips zero values on create when a default is declared
		client.IsActive = false
		require.NoError(t, s.UpdateClient(context.Background(), client))
	}
	return client
}

func createLocalUser(t *testing.T, s *store.Store, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         "user",
		AuthSource:   config.AuthModeLocal,
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

// callFetchFn is a DoAndReturn helper that invokes the cache fetch function,
// simulating a cache miss where the real DB fetch is executed.
func callFetchFn[T any](
	ctx context.Context,
	key string,
	_ time.Duration,
	fn func(context.Context, string) (T, error),
) (T, error) {
	return fn(ctx, key)
}

type authAttempt struct {
	method  string
	outcome string
}

// recordingMetrics captures the calls verification makes.
type recordingMetrics struct {
	mu          sync.Mutex
	attempts    []authAttempt
	cacheHits   int
	cacheMisses int
	externalAPI int
	dbErrors    []string
}

var _ core.Recorder = (*recordingMetrics)(nil)

func (r *recordingMetrics) RecordAuthAttempt(method, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, authAttempt{method: method, outcome: outcome})
}

func (r *recordingMetrics) RecordExternalAPICall(string, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.externalAPI++
}

func (r *recordingMetrics) RecordClientCacheLookup(hit bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hit {
		r.cacheHits++
	} else {
		r.cacheMisses++
	}
}

func (r *recordingMetrics) RecordTokenIssued(string, string, time.Duration) {}
func (r *recordingMetrics) RecordTokenValidation(string, time.Duration)     {}

func (r *recordingMetrics) RecordDatabaseQueryError(operation string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dbErrors = append(r.dbErrors, operation)
}

func (r *recordingMetrics) lastAttempt() authAttempt {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.attempts) == 0 {
		return authAttempt{}
	}
	return r.attempts[len(r.attempts)-1]
}

// fakeProvider stands in for the external HTTP API.
type fakeProvider struct {
	result *auth.AuthResult
	err    error
	calls  int
}

func (f *fakeProvider) Authenticate(_ context.Context, username, _ string) (*auth.AuthResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	r := *f.result
	r.Username = username
	return &r, nil
}

func (f *fakeProvider) Name() string { return config.AuthModeHTTPAPI }

type testEnv struct {
	store   *store.Store
	metrics *recordingMetrics
	clients *ClientService
	users   *UserService
	svc     *VerificationService
}

func newTestEnv(
	t *testing.T,
	clientCache core.Cache[models.OAuthApplication],
	httpAPI core.AuthProvider,
	authMode string,
) *testEnv {
	t.Helper()
	s := setupTestStore(t)
	if clientCache == nil {
		clientCache = cache.NewMemoryCache[models.OAuthApplication]()
	}
	m := &recordingMetrics{}
	clients := NewClientService(s, clientCache, time.Minute, m)
	users := NewUserService(s, auth.NewLocalAuthProvider(s), httpAPI, authMode, m)
	return &testEnv{
		store:   s,
		metrics: m,
		clients: clients,
		users:   users,
		svc:     NewVerificationService(clients, users, m),
	}
}
