package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"farecast-service/internal/domain/repository"

	"github.com/go-redis/redis/v8"
)

// RedisMarkerRepository stores markers as Redis keys with an expiry
type RedisMarkerRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisMarkerRepository creates a marker store on client. Keys are namespaced with prefix.
func NewRedisMarkerRepository(client *redis.Client, prefix string) repository.MarkerRepository {
	return &RedisMarkerRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisMarkerRepository) key(k string) string {
	return r.prefix + k
}

// Get returns the marker value if the key exists
func (r *RedisMarkerRepository) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

// Put sets key with ttl, replacing any previous value
func (r *RedisMarkerRepository) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (r *RedisMarkerRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
