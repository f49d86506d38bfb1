package persistence

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrNotFound = errors.New("key not found")

// KeyValueStore is the durable slot used for small pieces of state such as limiter buckets.
// Implementations may be unavailable; callers are expected to degrade gracefully.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

// MemoryStore keeps values in process. TTLs are ignored.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (x *MemoryStore) Get(_ context.Context, key string) (string, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	value, ok := x.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (x *MemoryStore) Set(_ context.Context, key string, value string, _ time.Duration) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.values[key] = value
	return nil
}

func (x *MemoryStore) Remove(_ context.Context, key string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	delete(x.values, key)
	return nil
}
