package ports

import (
	"context"
	"time"
)

// Port: best-effort read cache for listings and reports. Callers treat every error
// as a miss.
type Cache interface {
	// Decode the value under key into dst. Reports false on a miss.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Current generation of a key namespace. Keys built from an older generation are
	// never read again.
	Generation(ctx context.Context, namespace string) (int64, error)
	Bump(ctx context.Context, namespace string) error
}
