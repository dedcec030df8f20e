package quota

import (
	"context"
	"sync"
)

// Store persists per-user quota records. Implementations are keyed by user ID;
// Get returns (nil, nil) when no record exists yet. Put overwrites the whole
// record — merge semantics (preserving tier and email across commits) are the
// Ledger's responsibility, so a Store stays a dumb key-value surface.
type Store interface {
	Get(ctx context.Context, userID string) (*UserRecord, error)
	Put(ctx context.Context, rec *UserRecord) error
	Ping(ctx context.Context) error
}

// MemoryStore is an in-process Store for tests and local development.
type MemoryStore struct {
	mu   sync.RWMutex
	recs map[string]UserRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]UserRecord)}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) Put(_ context.Context, rec *UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.UserID] = *rec
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }
