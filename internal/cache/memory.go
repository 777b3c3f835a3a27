package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/viccon/sturdyc"
)

const (
	memoryShards             = 64
	memoryEvictionPercentage = 10
)

// MemoryStore is an in-process Store for single-node deployments.
// Every entry shares the TTL given at construction; the ttl argument of
// Set is ignored.
type MemoryStore struct {
	client *sturdyc.Client[[]byte]
}

// NewMemoryStore creates an in-process store holding up to capacity entries
func NewMemoryStore(capacity int, ttl time.Duration) (*MemoryStore, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be greater than 0, got %d", capacity)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be greater than 0, got %s", ttl)
	}
	client := sturdyc.New[[]byte](capacity, memoryShards, ttl, memoryEvictionPercentage)
	return &MemoryStore{client: client}, nil
}

// Get implements Store
func (s *MemoryStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, ok := s.client.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set implements Store
func (s *MemoryStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.client.Set(key, data)
	return nil
}

// Delete implements Store
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

// Ping implements Store
func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

// Close implements Store
func (s *MemoryStore) Close() error { return nil }
