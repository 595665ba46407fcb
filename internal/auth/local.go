package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-authgate/passwordgrant/internal/models"
	"github.com/go-authgate/passwordgrant/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// UserReader is the subset of the store the local provider needs.
type UserReader interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// LocalAuthProvider handles local database authentication
type LocalAuthProvider struct {
	users UserReader
}

// NewLocalAuthProvider creates a new local authentication provider
func NewLocalAuthProvider(users UserReader) *LocalAuthProvider {
	return &LocalAuthProvider{users: users}
}

// Authenticate verifies credentials against the local database.
// Unknown users and password mismatches both yield ErrInvalidCredentials;
// a failing database yields ErrUserLookupFailed.
func (p *LocalAuthProvider) Authenticate(
	ctx context.Context,
	username, password string,
) (*AuthResult, error) {
	user, err := p.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrUserLookupFailed, err)
	}

	// External users have no local hash.
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(password),
	); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &AuthResult{
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Success:  true,
	}, nil
}

// Name returns provider name for logging
func (p *LocalAuthProvider) Name() string {
	return "local"
}
