package evidence

import (
	"context"
	"sort"
	"sync"

	id "sentra/pkg/domain"
	"sentra/pkg/platform/sentinel"
)

// Store persists evidence attachments.
type Store interface {
	Save(ctx context.Context, item Item) error
	// Delete removes an item and returns it, or sentinel.ErrNotFound.
	Delete(ctx context.Context, evidenceID string) (*Item, error)
	Get(ctx context.Context, evidenceID string) (*Item, error)
	ListForControl(ctx context.Context, controlID id.ControlID) ([]Item, error)
}

// InMemoryStore keeps attachments in process memory.
type InMemoryStore struct {
	mu    sync.RWMutex
	items map[string]Item
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{items: make(map[string]Item)}
}

func (s *InMemoryStore) Save(_ context.Context, item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, evidenceID string) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[evidenceID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	delete(s.items, evidenceID)
	return &item, nil
}

func (s *InMemoryStore) Get(_ context.Context, evidenceID string) (*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[evidenceID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &item, nil
}

func (s *InMemoryStore) ListForControl(_ context.Context, controlID id.ControlID) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Item
	for _, item := range s.items {
		if item.ControlID == controlID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.Before(out[j].UploadedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
