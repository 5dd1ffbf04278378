package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces collection keys so the store can share a Redis
// database with other applications.
const keyPrefix = "lpg:collection:"

// Redis stores each collection document under a prefixed Redis key. Documents
// never expire; Redis is authoritative storage here, not a cache.
type Redis struct {
	rdb *redis.Client
}

// OpenRedis connects to the Redis instance described by url
// (e.g. "redis://localhost:6379/0") and verifies connectivity.
func OpenRedis(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Redis{rdb: rdb}, nil
}

// Get fetches the document for name; a missing key reads as absent.
func (r *Redis) Get(ctx context.Context, name string) ([]byte, bool, error) {
	data, err := r.rdb.Get(ctx, keyPrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put replaces the document for name with no TTL.
func (r *Redis) Put(ctx context.Context, name string, data []byte) error {
	return r.rdb.Set(ctx, keyPrefix+name, data, 0).Err()
}

// Delete removes the document for name.
func (r *Redis) Delete(ctx context.Context, name string) error {
	return r.rdb.Del(ctx, keyPrefix+name).Err()
}

// Close closes the client's connection pool.
func (r *Redis) Close() error { return r.rdb.Close() }
