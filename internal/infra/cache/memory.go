package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"arenahub-booking/internal/pkg/clock"
)

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

// MemoryCache keeps encoded values so callers never share mutable state
// with the cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   clock.Clock
}

func NewMemoryCache(clock clock.Clock) *MemoryCache {
	return &MemoryCache{
		entries: map[string]memoryEntry{},
		clock:   clock,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if !entry.expiresAt.IsZero() && !c.clock.Now().Before(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(entry.raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set with a non-positive ttl keeps the value until overwritten.
func (c *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	entry := memoryEntry{raw: raw}
	if ttl > 0 {
		entry.expiresAt = c.clock.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}
