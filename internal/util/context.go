package util

import (
	"context"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

type clientIPKey struct{}

// WithClientIP returns a copy of ctx carrying the caller's IP address.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// GetIPFromContext extracts the client IP address from the context
func GetIPFromContext(ctx context.Context) string {
	if ginCtx, ok := ctx.(*gin.Context); ok {
		return ginCtx.ClientIP()
	}

	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}

	return ""
}

// GetIPFromRequest prefers the IP recorded on the request context and falls
// back to the host part of RemoteAddr.
func GetIPFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if ip := GetIPFromContext(r.Context()); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
