package journal

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meltyapp/backend/internal/model/journal"
)

// MemoryStore 进程内日记存储，供测试和本地开发使用。
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]journal.Entry
}

// NewMemoryStore bootstraps the in-memory journal store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]journal.Entry)}
}

func (s *MemoryStore) Create(_ context.Context, entry journal.Entry) (journal.Entry, error) {
	entry.ID = uuid.NewString()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.entries[entry.ID] = entry
	s.mu.Unlock()

	return entry, nil
}

func (s *MemoryStore) List(_ context.Context, userID string) ([]journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]journal.Entry, 0, 8)
	for _, entry := range s.entries {
		if entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *MemoryStore) Delete(_ context.Context, userID, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[entryID]
	if !ok || entry.UserID != userID {
		return ErrEntryNotFound
	}
	delete(s.entries, entryID)
	return nil
}
