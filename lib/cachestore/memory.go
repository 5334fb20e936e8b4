package cachestore

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemory returns a process-local store. The ttl argument is
// accepted but not enforced: entries live until the process exits or
// the key is overwritten. Deployments that need real expiry should
// configure the redis or badger backend instead.
func NewMemory() Store {
	return &memoryStore{entries: map[string][]byte{}}
}

func (s *memoryStore) Get(ctx context.Context, key string, out any) error {
	s.mu.Lock()
	serialized, ok := s.entries[key]
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(serialized, out)
}

func (s *memoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	serialized, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[key] = serialized
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}
