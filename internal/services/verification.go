package services

import (
	"context"
	"log"
	"time"

	"github.com/go-authgate/passwordgrant/internal/auth"
	"github.com/go-authgate/passwordgrant/internal/core"
	"github.com/go-authgate/passwordgrant/internal/models"
	"github.com/go-authgate/passwordgrant/internal/util"
	"github.com/go-authgate/passwordgrant/strategy"
)

const methodClient = "client"

// VerificationService is the verification procedure behind the password
// strategy: it resolves the OAuth application, checks the resource owner's
// password and produces the principal.
type VerificationService struct {
	clients *ClientService
	users   *UserService
	metrics core.Recorder
}

func NewVerificationService(
	clients *ClientService,
	users *UserService,
	m core.Recorder,
) *VerificationService {
	return &VerificationService{
		clients: clients,
		users:   users,
		metrics: m,
	}
}

// Verify implements strategy.VerifyFunc.
func (s *VerificationService) Verify(
	ctx context.Context,
	clientID, username, password string,
) strategy.Result[*models.Principal] {
	return s.verify(ctx, util.GetIPFromContext(ctx), clientID, username, password)
}

// VerifyRequest implements strategy.VerifyRequestFunc; the caller's IP is
// taken from the transport request when one is attached.
func (s *VerificationService) VerifyRequest(
	ctx context.Context,
	req *strategy.Request,
	clientID, username, password string,
) strategy.Result[*models.Principal] {
	remoteIP := util.GetIPFromContext(ctx)
	if req != nil && req.HTTP != nil {
		remoteIP = util.GetIPFromRequest(req.HTTP)
	}
	return s.verify(ctx, remoteIP, clientID, username, password)
}

func (s *VerificationService) verify(
	ctx context.Context,
	remoteIP, clientID, username, password string,
) strategy.Result[*models.Principal] {
	start := time.Now()
	principal, info, method, err := s.authenticate(ctx, clientID, username, password)
	info.RemoteIP = remoteIP

	var result strategy.Result[*models.Principal]
	switch {
	case err == nil:
		result = strategy.Verified(principal, info)
	case auth.IsRejection(err):
		log.Printf("[Auth] Rejected client=%s user=%s ip=%s: %v", clientID, username, remoteIP, err)
		result = strategy.Rejected[*models.Principal]()
	default:
		log.Printf("[Auth] Verification error client=%s user=%s ip=%s: %v", clientID, username, remoteIP, err)
		result = strategy.Errored[*models.Principal](err)
	}

	s.metrics.RecordAuthAttempt(method, result.String(), time.Since(start))
	return result
}

func (s *VerificationService) authenticate(
	ctx context.Context,
	clientID, username, password string,
) (*models.Principal, *models.PrincipalInfo, string, error) {
	info := &models.PrincipalInfo{}

	client, err := s.clients.GetClient(ctx, clientID)
	if err != nil {
		return nil, info, methodClient, err
	}
	if err := s.clients.ValidateForPasswordGrant(client); err != nil {
		return nil, info, methodClient, err
	}
	info.ClientName = client.ClientName

	user, method, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return nil, info, method, err
	}

	return &models.Principal{
		ClientID:   client.ClientID,
		UserID:     user.ID,
		Username:   user.Username,
		Scopes:     client.Scopes,
		AuthSource: user.AuthSource,
	}, info, method, nil
}
