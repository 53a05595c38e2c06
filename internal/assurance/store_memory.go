package assurance

import (
	"context"
	"sort"
	"sync"

	"sentra/internal/status"
	id "sentra/pkg/domain"
	"sentra/pkg/platform/sentinel"
)

// InMemoryStore is the default pack store for tests and single-node runs.
type InMemoryStore struct {
	mu    sync.RWMutex
	packs map[id.PackID]Pack
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{packs: make(map[id.PackID]Pack)}
}

func (s *InMemoryStore) Create(_ context.Context, pack Pack) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.packs[pack.ID]; exists {
		return sentinel.ErrConflict
	}
	s.packs[pack.ID] = copyPack(pack)
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, packID id.PackID) (*Pack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pack, ok := s.packs[packID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := copyPack(pack)
	return &out, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Pack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Pack, 0, len(s.packs))
	for _, pack := range s.packs {
		out = append(out, copyPack(pack))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// copyPack deep-copies the frozen content so callers cannot mutate stored
// packs through returned references.
func copyPack(pack Pack) Pack {
	out := pack
	out.Versions = make(map[id.ControlID]id.VersionLabel, len(pack.Versions))
	for controlID, label := range pack.Versions {
		out.Versions[controlID] = label
	}
	out.Snapshots = append([]status.Snapshot(nil), pack.Snapshots...)
	out.Scope.ControlIDs = append([]id.ControlID(nil), pack.Scope.ControlIDs...)
	return out
}
