package core

import "context"

// AuthResult holds the outcome of a password check against a user backend.
type AuthResult struct {
	Username   string
	ExternalID string // External user ID (e.g., API user ID)
	Email      string // Optional
	FullName   string // Optional
	Success    bool
}

// AuthProvider is the interface that password-checking backends must implement.
// Implementations return ErrInvalidCredentials-style sentinels for a mismatch
// and any other error for infrastructure failures.
type AuthProvider interface {
	Authenticate(ctx context.Context, username, password string) (*AuthResult, error)
	Name() string
}
