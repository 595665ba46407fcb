package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-authgate/passwordgrant/internal/models"
	"github.com/go-authgate/passwordgrant/strategy"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Context keys
const (
	ParamsKey        = "oauth_params"
	PrincipalKey     = "principal"
	PrincipalInfoKey = "principal_info"
)

// Params returns the request body as a flat string map, decoding it on first
// use. Form and JSON bodies are supported; non-string JSON values are dropped.
// It returns nil when the request carries no usable body.
func Params(c *gin.Context) map[string]string {
	if v, ok := c.Get(ParamsKey); ok {
		params, _ := v.(map[string]string)
		return params
	}
	params := decodeParams(c)
	c.Set(ParamsKey, params)
	return params
}

func decodeParams(c *gin.Context) map[string]string {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}

	switch c.ContentType() {
	case binding.MIMEJSON:
		var raw map[string]any
		if err := c.ShouldBindJSON(&raw); err != nil || raw == nil {
			return nil
		}
		params := make(map[string]string, len(raw))
		for k, v := range raw {
			if s, ok := v.(string); ok {
				params[k] = s
			}
		}
		return params

	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil &&
			!errors.Is(err, http.ErrNotMultipart) {
			return nil
		}
		params := make(map[string]string, len(c.Request.PostForm))
		for k, v := range c.Request.PostForm {
			if len(v) > 0 {
				params[k] = v[0]
			}
		}
		return params
	}

	return nil
}

// Authenticate runs the password strategy against the request body. On
// success the principal and its info are stored in the gin context and the
// chain continues; failures abort with 401 and verifier errors with 500.
func Authenticate(s *strategy.Strategy[*models.Principal]) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := &strategy.Request{Body: Params(c), HTTP: c.Request}
		s.Authenticate(c.Request.Context(), req, &ginActions{c: c, req: req})
	}
}

// ginActions reports strategy outcomes on a gin context.
type ginActions struct {
	c   *gin.Context
	req *strategy.Request
}

var _ strategy.Actions[*models.Principal] = (*ginActions)(nil)

func (a *ginActions) Success(principal *models.Principal, info any) {
	a.c.Set(PrincipalKey, principal)
	a.c.Set(PrincipalInfoKey, info)
}

func (a *ginActions) Fail(challenge string, status int) {
	if status == 0 {
		status = http.StatusUnauthorized
	}
	if challenge != "" {
		a.c.Header("WWW-Authenticate", challenge)
	}

	if _, ok := strategy.ExtractCredentials(a.req); !ok {
		a.c.AbortWithStatusJSON(status, gin.H{
			"error":             "invalid_request",
			"error_description": "client_id, username and password are required",
		})
		return
	}
	a.c.AbortWithStatusJSON(status, gin.H{
		"error":             "invalid_grant",
		"error_description": "Invalid client or resource owner credentials",
	})
}

func (a *ginActions) Error(err error) {
	log.Printf("[Auth] Credential verification failed: %v", err)
	_ = a.c.Error(err)
	a.c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":             "server_error",
		"error_description": "Credential verification failed",
	})
}

// Principal returns the principal stored by Authenticate.
func Principal(c *gin.Context) (*models.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*models.Principal)
	return p, ok && p != nil
}

// PrincipalInfo returns the verifier's info value when it is a *models.PrincipalInfo.
func PrincipalInfo(c *gin.Context) *models.PrincipalInfo {
	v, ok := c.Get(PrincipalInfoKey)
	if !ok {
		return nil
	}
	info, _ := v.(*models.PrincipalInfo)
	return info
}
