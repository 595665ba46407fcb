package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetIPFromContext(t *testing.T) {
	assert.Empty(t, GetIPFromContext(context.Background()))
	assert.Equal(t, "203.0.113.9", GetIPFromContext(WithClientIP(context.Background(), "203.0.113.9")))

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "198.51.100.7:5555"
	assert.Equal(t, "198.51.100.7", GetIPFromContext(c))
}

func TestGetIPFromRequest(t *testing.T) {
	assert.Empty(t, GetIPFromRequest(nil))

	req := httptest.NewRequest(http.MethodPost, "/oauth/token", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", GetIPFromRequest(req))

	req = req.WithContext(WithClientIP(req.Context(), "10.0.0.8"))
	assert.Equal(t, "10.0.0.8", GetIPFromRequest(req))

	req.RemoteAddr = "not-a-host-port"
	req = req.WithContext(context.Background())
	assert.Equal(t, "not-a-host-port", GetIPFromRequest(req))
}
