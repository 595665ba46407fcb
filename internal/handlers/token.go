package handlers

import (
	"errors"
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-authgate/passwordgrant/internal/config"
	"github.com/go-authgate/passwordgrant/internal/core"
	"github.com/go-authgate/passwordgrant/internal/middleware"
	"github.com/go-authgate/passwordgrant/internal/token"

	"github.com/gin-gonic/gin"
)

// https://datatracker.ietf.org/doc/html/rfc6749#section-4.3
const GrantTypePassword = "password"

type TokenHandler struct {
	tokenProvider core.TokenProvider
	config        *config.Config
	metrics       core.Recorder
}

func NewTokenHandler(
	tp core.TokenProvider,
	cfg *config.Config,
	m core.Recorder,
) *TokenHandler {
	return &TokenHandler{
		tokenProvider: tp,
		config:        cfg,
		metrics:       m,
	}
}

// RequirePasswordGrant rejects token requests for any other grant type
// before credentials are checked.
func (h *TokenHandler) RequirePasswordGrant(c *gin.Context) {
	switch grantType := middleware.Params(c)["grant_type"]; grantType {
	case GrantTypePassword:
		c.Next()
	case "":
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":             "invalid_request",
			"error_description": "grant_type is required",
		})
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":             "unsupported_grant_type",
			"error_description": "Supported grant types: password",
		})
	}
}

// Token issues an access token for the principal established by
// middleware.Authenticate (RFC 6749 section 4.3).
func (h *TokenHandler) Token(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		log.Printf("[Token] No authenticated principal on %s", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":             "server_error",
			"error_description": "Token issuance failed",
		})
		return
	}

	scope, ok := grantedScope(principal.Scopes, middleware.Params(c)["scope"])
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "invalid_scope",
			"error_description": "Requested scope exceeds client permissions",
		})
		return
	}

	start := time.Now()
	result, err := h.tokenProvider.GenerateToken(
		c.Request.Context(),
		principal.UserID,
		principal.ClientID,
		scope,
	)
	if err != nil {
		log.Printf("[Token] Generation failed user=%s client=%s: %v",
			principal.Username, principal.ClientID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":             "server_error",
			"error_description": "Token issuance failed",
		})
		return
	}
	h.metrics.RecordTokenIssued("access", GrantTypePassword, time.Since(start))

	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(http.StatusOK, gin.H{
		"access_token": result.TokenString,
		"token_type":   result.TokenType,
		"expires_in":   int(time.Until(result.ExpiresAt).Round(time.Second).Seconds()),
		"scope":        scope,
	})
}

// grantedScope resolves the scope of a new token. An empty request receives
// every scope of the client; otherwise each requested scope must be allowed.
func grantedScope(allowed, requested string) (string, bool) {
	requestedScopes := strings.Fields(requested)
	if len(requestedScopes) == 0 {
		return allowed, true
	}
	allowedScopes := strings.Fields(allowed)
	for _, s := range requestedScopes {
		if !slices.Contains(allowedScopes, s) {
			return "", false
		}
	}
	return strings.Join(requestedScopes, " "), true
}

// TokenInfo validates a bearer token and returns its claims
// (RFC 7662 style introspection).
func (h *TokenHandler) TokenInfo(c *gin.Context) {
	tokenString, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "missing_token",
		})
		return
	}

	start := time.Now()
	result, err := h.tokenProvider.ValidateToken(c.Request.Context(), tokenString)
	if err != nil {
		outcome := "invalid"
		if errors.Is(err, token.ErrExpiredToken) {
			outcome = "expired"
		}
		h.metrics.RecordTokenValidation(outcome, time.Since(start))
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":             "invalid_token",
			"error_description": err.Error(),
		})
		return
	}
	h.metrics.RecordTokenValidation("valid", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"active":    result.Valid,
		"user_id":   result.UserID,
		"client_id": result.ClientID,
		"scope":     result.Scopes,
		"exp":       result.ExpiresAt.Unix(),
		"iss":       h.config.BaseURL,
	})
}
