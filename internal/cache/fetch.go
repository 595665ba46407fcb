package cache

import (
	"context"
	"time"

	"github.com/go-authgate/passwordgrant/internal/core"
)

// GetWithFetch is a generic cache-aside helper for any core.Cache implementation.
// On cache miss it calls fetchFunc, stores the result, and returns it.
// A failed Set is ignored; the fetched value is still returned.
// Note: does not provide stampede protection under concurrent load.
func GetWithFetch[T any](
	ctx context.Context,
	c core.Cache[T],
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	if value, err := c.Get(ctx, key); err == nil {
		return value, nil
	}

	value, err := fetchFunc(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}

	_ = c.Set(ctx, key, value, ttl)
	return value, nil
}
