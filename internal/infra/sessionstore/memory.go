package sessionstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"arenahub-booking/internal/domain/session"
	"arenahub-booking/internal/pkg/clock"
	"arenahub-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

// MemoryStore round-trips sessions through their JSON snapshot so it behaves
// like RedisStore: callers never share a live *session.Session.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]memoryEntry
	ttl      time.Duration
	clock    clock.Clock
}

func NewMemoryStore(ttl time.Duration, clock clock.Clock) *MemoryStore {
	return &MemoryStore{
		sessions: map[uuid.UUID]memoryEntry{},
		ttl:      ttl,
		clock:    clock,
	}
}

func (s *MemoryStore) Find(_ context.Context, id uuid.UUID) (*session.Session, error) {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	if ok && !s.clock.Now().Before(entry.expiresAt) {
		delete(s.sessions, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, errs.ErrSessionNotFound
	}

	var snap session.Snapshot
	if err := json.Unmarshal(entry.raw, &snap); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode session"), errs.ErrSessionNotFound)
	}
	return session.Reconstruct(snap)
}

func (s *MemoryStore) Save(_ context.Context, sess *session.Session) error {
	raw, err := json.Marshal(sess.Snapshot())
	if err != nil {
		return errs.Wrap(err, "encode session")
	}

	s.mu.Lock()
	s.sessions[sess.ID()] = memoryEntry{raw: raw, expiresAt: s.clock.Now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}
