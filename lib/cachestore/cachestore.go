// Package cachestore memoizes fetch results under string keys with a
// per-entry lifetime. Values are JSON on the wire so every backend
// serves the same structures back regardless of where they were stored.
package cachestore

import (
	"context"
	"errors"
	"os"
	"time"
)

var ErrNotFound = errors.New("cachestore: key not found")

type Store interface {
	// Get unmarshals the value stored under key into out,
	// returns ErrNotFound on a miss or an expired entry.
	Get(ctx context.Context, key string, out any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Close() error
}

// NewFromEnv selects the backing store once at construction:
// a redis server when REDIS_URL is set, an on-disk badger database
// when VLR_CACHE_DIR is set, otherwise a process-local map.
func NewFromEnv(ctx context.Context) (Store, error) {
	if redisUrl := os.Getenv("REDIS_URL"); redisUrl != "" {
		return NewRedis(ctx, redisUrl)
	}
	if dir := os.Getenv("VLR_CACHE_DIR"); dir != "" {
		return NewBadger(dir)
	}
	return NewMemory(), nil
}
