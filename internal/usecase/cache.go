package usecase

import (
	"context"
	"time"
)

// Cache is the read-through store used by catalog lookups. A miss is
// (false, nil); implementations may drop writes when the backend is down.
type Cache interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
