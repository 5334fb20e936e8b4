package cachestore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
}

// NewRedis connects to the redis server described by redisUrl
// (redis://[user:pass@]host:port/db). Expiry is enforced server-side.
func NewRedis(ctx context.Context, redisUrl string) (Store, error) {
	opts, err := redis.ParseURL(redisUrl)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	err = client.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}
	return redisStore{client: client}, nil
}

func (s redisStore) Get(ctx context.Context, key string, out any) error {
	serialized, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(serialized, out)
}

func (s redisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	serialized, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, serialized, ttl).Err()
}

func (s redisStore) Close() error {
	return s.client.Close()
}
