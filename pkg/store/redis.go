package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores placement blobs in Redis, for multi-operator
// deployments sharing one placement store.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string // host:port
	Password string
	DB       int
	Prefix   string // key namespace, default "dotstitch:"
}

// NewRedisBackend connects to Redis and verifies the connection.
func NewRedisBackend(ctx context.Context, cfg RedisConfig) (*RedisBackend, error) {
	if cfg.Prefix == "" {
		cfg.Prefix = "dotstitch:"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &RedisBackend{client: client, prefix: cfg.Prefix}, nil
}

// Get retrieves a blob.
func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a blob. Placement records never expire.
func (r *RedisBackend) Set(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, r.prefix+key, data, 0).Err()
}

// Delete removes a blob.
func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

// Close closes the Redis connection.
func (r *RedisBackend) Close() error {
	return r.client.Close()
}

// Ensure RedisBackend implements Backend.
var _ Backend = (*RedisBackend)(nil)
