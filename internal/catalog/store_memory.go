package catalog

import (
	"context"
	"sort"
	"sync"

	id "sentra/pkg/domain"
	"sentra/pkg/platform/sentinel"
)

// InMemoryStore keeps the catalog in process memory. It is the default store
// for tests and for running without a database; the single mutex makes the
// deactivate-then-activate step of CreateVersion trivially atomic.
type InMemoryStore struct {
	mu       sync.RWMutex
	controls map[id.ControlID]*Control
	versions map[id.ControlID][]ControlVersion
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		controls: make(map[id.ControlID]*Control),
		versions: make(map[id.ControlID][]ControlVersion),
	}
}

func (s *InMemoryStore) CreateControl(_ context.Context, control Control, initial ControlVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.controls[control.ID]; ok {
		return sentinel.ErrConflict
	}
	initial.Active = true
	control.ActiveVersion = initial.Label
	s.controls[control.ID] = &control
	s.versions[control.ID] = []ControlVersion{initial}
	return nil
}

func (s *InMemoryStore) GetControl(_ context.Context, controlID id.ControlID) (*Control, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	control, ok := s.controls[controlID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *control
	copied.Frameworks = append([]id.FrameworkID{}, control.Frameworks...)
	return &copied, nil
}

func (s *InMemoryStore) ListControls(_ context.Context) ([]Control, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Control, 0, len(s.controls))
	for _, control := range s.controls {
		copied := *control
		copied.Frameworks = append([]id.FrameworkID{}, control.Frameworks...)
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) GetActiveVersion(_ context.Context, controlID id.ControlID) (*ControlVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	versions, ok := s.versions[controlID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	for i := range versions {
		if versions[i].Active {
			copied := copyVersion(versions[i])
			return &copied, nil
		}
	}
	// Unreachable while the single-active invariant holds.
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListVersions(_ context.Context, controlID id.ControlID) ([]ControlVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	versions, ok := s.versions[controlID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := make([]ControlVersion, 0, len(versions))
	for i := range versions {
		out = append(out, copyVersion(versions[i]))
	}
	// Most recent first.
	sort.Slice(out, func(i, j int) bool { return out[j].Label.Less(out[i].Label) })
	return out, nil
}

func (s *InMemoryStore) CreateVersion(_ context.Context, version ControlVersion, expectedPrev id.VersionLabel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	control, ok := s.controls[version.ControlID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if control.ActiveVersion != expectedPrev {
		return sentinel.ErrConflict
	}
	versions := s.versions[version.ControlID]
	for i := range versions {
		if versions[i].Active {
			versions[i].Active = false
		}
	}
	version.Active = true
	s.versions[version.ControlID] = append(versions, version)
	control.ActiveVersion = version.Label
	return nil
}

func (s *InMemoryStore) AttachPack(_ context.Context, controlID id.ControlID, label id.VersionLabel, packID id.PackID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	versions, ok := s.versions[controlID]
	if !ok {
		return sentinel.ErrNotFound
	}
	for i := range versions {
		if versions[i].Label == label {
			versions[i].UsedInPacks = append(versions[i].UsedInPacks, packID)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func copyVersion(v ControlVersion) ControlVersion {
	v.Questions = append([]string{}, v.Questions...)
	v.EvidenceTypes = append([]string{}, v.EvidenceTypes...)
	v.UsedInPacks = append([]id.PackID{}, v.UsedInPacks...)
	return v
}
