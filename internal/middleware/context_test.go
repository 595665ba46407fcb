package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-authgate/passwordgrant/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IPMiddleware())

	var fromGin, fromRequest string
	r.GET("/ip", func(c *gin.Context) {
		fromGin = c.GetString("client_ip")
		fromRequest = util.GetIPFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "203.0.113.9", fromGin)
	assert.Equal(t, "203.0.113.9", fromRequest)
}
