package preview

import (
	"context"
	"sync"
	"time"

	"github.com/foliocraft/foliocraft-backend/internal/render/domain"
)

type memoryEntry struct {
	blob      domain.Blob
	expiresAt time.Time
}

// MemoryStore holds blobs in process memory. A zero ttl keeps blobs until
// they are released.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, blob *domain.Blob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	e := memoryEntry{blob: *blob}
	e.blob.Content = append([]byte(nil), blob.Content...)
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[blob.ID] = e
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || s.expired(e) {
		return nil, domain.ErrPreviewNotFound
	}
	b := e.blob
	b.Content = append([]byte(nil), e.blob.Content...)
	return &b, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || s.expired(e) {
		delete(s.entries, id)
		return domain.ErrPreviewNotFound
	}
	delete(s.entries, id)
	return nil
}

// Len reports live entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	return len(s.entries)
}

func (s *MemoryStore) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

func (s *MemoryStore) sweepLocked() {
	if s.ttl <= 0 {
		return
	}
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
		}
	}
}

func (s *MemoryStore) ListByOwner(_ context.Context, ownerID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	ids := make([]string, 0)
	for id, e := range s.entries {
		if e.blob.OwnerID == ownerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
