package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/academyhub/backend/internal/lesson"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. It is used when no Redis is
// configured and in tests. Entries are stored serialized so callers never share state.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory session store. ttl <= 0 means DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get loads a session and refreshes its expiry
func (s *MemoryStore) Get(_ context.Context, id string) (*lesson.Editor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.lookup(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.expiresAt = s.now().Add(s.ttl)
	s.entries[id] = entry
	return decode(entry.data)
}

// Save stores a session. Expired sessions of any id are dropped on the way.
func (s *MemoryStore) Save(_ context.Context, id string, editor *lesson.Editor) error {
	data, err := encode(editor)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweep(now)
	s.entries[id] = memoryEntry{data: data, expiresAt: now.Add(s.ttl)}
	return nil
}

// Delete removes a session
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(id); !ok {
		return ErrSessionNotFound
	}
	delete(s.entries, id)
	return nil
}

// lookup returns a live entry, dropping it if it has expired. Callers hold mu.
func (s *MemoryStore) lookup(id string) (memoryEntry, bool) {
	entry, ok := s.entries[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, id)
		return memoryEntry{}, false
	}
	return entry, true
}

// sweep drops every expired entry. Callers hold mu.
func (s *MemoryStore) sweep(now time.Time) {
	for id, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
