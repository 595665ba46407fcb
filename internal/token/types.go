package token

import "github.com/go-authgate/passwordgrant/internal/core"

// Token type constants
const (
	TokenTypeBearer = "Bearer"
)

// TokenResult is an alias for core.TokenResult.
type TokenResult = core.TokenResult

// TokenValidationResult is an alias for core.TokenValidationResult.
type TokenValidationResult = core.TokenValidationResult

var _ core.TokenProvider = (*LocalTokenProvider)(nil)
