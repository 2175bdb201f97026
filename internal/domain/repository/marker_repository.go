package repository

import (
	"context"
	"time"
)

// MarkerRepository is the durable key-value store behind the daily idempotency marker.
// Get returns found=false when the key is absent or expired.
type MarkerRepository interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
