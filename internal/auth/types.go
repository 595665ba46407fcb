package auth

import "github.com/go-authgate/passwordgrant/internal/core"

// AuthResult is the identity a backend vouches for after a password check.
type AuthResult = core.AuthResult

var (
	_ core.AuthProvider = (*LocalAuthProvider)(nil)
	_ core.AuthProvider = (*HTTPAPIAuthProvider)(nil)
)
