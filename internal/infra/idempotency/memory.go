package idempotency

import (
	"context"
	"sync"
	"time"

	"arenahub-booking/internal/pkg/clock"
	"arenahub-booking/internal/usecase/commands"
)

type memoryEntry struct {
	rec       commands.IdempotencyRecord
	expiresAt time.Time
}

// MemoryStore is the single-process fallback used when Redis is disabled.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	clock   clock.Clock
}

func NewMemoryStore(clock clock.Clock) *MemoryStore {
	return &MemoryStore{entries: map[string]memoryEntry{}, clock: clock}
}

func (s *MemoryStore) Claim(_ context.Context, key string, rec commands.IdempotencyRecord, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.live(key); ok {
		return false, nil
	}
	s.entries[key] = memoryEntry{rec: copyRecord(rec), expiresAt: s.clock.Now().Add(ttl)}
	return true, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (*commands.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.live(key)
	if !ok {
		return nil, nil
	}
	rec := copyRecord(entry.rec)
	return &rec, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, rec commands.IdempotencyRecord, ttl time.Duration) error {
	s.mu.Lock()
	s.entries[key] = memoryEntry{rec: copyRecord(rec), expiresAt: s.clock.Now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// live must be called with mu held.
func (s *MemoryStore) live(key string) (memoryEntry, bool) {
	entry, ok := s.entries[key]
	if ok && !s.clock.Now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return memoryEntry{}, false
	}
	return entry, ok
}

func copyRecord(rec commands.IdempotencyRecord) commands.IdempotencyRecord {
	if rec.Result != nil {
		result := *rec.Result
		rec.Result = &result
	}
	return rec
}
