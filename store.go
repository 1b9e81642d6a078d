package querypod

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// SessionStore maps opaque session IDs to conversation histories. Sessions
// are created on first reference and live for the process lifetime; there
// is no eviction and no capacity bound.
type SessionStore interface {
	// GetOrCreate resolves id to its stored history. An empty or unknown id
	// yields a freshly generated id and an empty history. The returned
	// history is a copy, so an in-flight stream never mutates stored state.
	GetOrCreate(id string) (string, []Turn)

	// Commit overwrites the stored history for id. Concurrent commits to
	// the same id are last-writer-wins; no optimistic concurrency check.
	Commit(id string, history []Turn)
}

// MemoryStore is the in-process SessionStore.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Turn
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]Turn),
	}
}

func (s *MemoryStore) GetOrCreate(id string) (string, []Turn) {
	if id != "" {
		s.mu.RLock()
		history, ok := s.sessions[id]
		s.mu.RUnlock()
		if ok {
			return id, slices.Clone(history)
		}
	}
	// Absent or unknown: hand out a fresh identifier rather than adopting
	// an id this store never issued.
	return uuid.NewString(), []Turn{}
}

func (s *MemoryStore) Commit(id string, history []Turn) {
	cloned := slices.Clone(history)
	s.mu.Lock()
	s.sessions[id] = cloned
	s.mu.Unlock()
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
