package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testMetricsToken = "test-secret-token-123"

func TestMetricsAuthMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		configured  string
		authHeader  string
		wantStatus  int
		wantMessage string
	}{
		{name: "no token configured", configured: "", authHeader: "", wantStatus: http.StatusOK},
		{name: "valid token", configured: testMetricsToken, authHeader: "Bearer " + testMetricsToken, wantStatus: http.StatusOK},
		{name: "invalid token", configured: testMetricsToken, authHeader: "Bearer wrong", wantStatus: http.StatusUnauthorized, wantMessage: "Invalid token"},
		{name: "missing header", configured: testMetricsToken, authHeader: "", wantStatus: http.StatusUnauthorized, wantMessage: "Bearer token required"},
		{name: "basic scheme", configured: testMetricsToken, authHeader: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized, wantMessage: "Bearer token required"},
		{name: "empty bearer", configured: testMetricsToken, authHeader: "Bearer ", wantStatus: http.StatusUnauthorized, wantMessage: "Bearer token required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.GET("/metrics", MetricsAuthMiddleware(tt.configured), func(c *gin.Context) {
				c.String(http.StatusOK, "metrics data")
			})

			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "metrics data", w.Body.String())
				return
			}
			assert.Equal(t, metricsRealm, w.Header().Get("WWW-Authenticate"))
			assert.Contains(t, w.Body.String(), tt.wantMessage)
		})
	}
}
