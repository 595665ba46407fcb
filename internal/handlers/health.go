package handlers

import (
	"context"
	"net/http"

	"github.com/go-authgate/passwordgrant/internal/version"

	"github.com/gin-gonic/gin"
)

// HealthChecker is implemented by the store and the client cache.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db    HealthChecker
	cache HealthChecker
}

func NewHealthHandler(db, cache HealthChecker) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health reports database and client cache connectivity and the running version.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK
	body := gin.H{
		"status":   "healthy",
		"database": "connected",
		"cache":    "connected",
		"version":  version.Short(),
	}

	if err := h.db.Health(ctx); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "unhealthy"
		body["database"] = "disconnected"
	}
	if h.cache != nil {
		if err := h.cache.Health(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["cache"] = "disconnected"
		}
	}

	c.JSON(status, body)
}
