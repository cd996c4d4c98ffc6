package service

import (
	"context"
	"time"
)

// Cache is the subset of the redis wrapper the services consume. Implementations
// degrade to no-ops when the backend is unavailable.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
