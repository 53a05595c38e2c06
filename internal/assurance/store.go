package assurance

import (
	"context"

	id "sentra/pkg/domain"
)

// Store persists generated packs. Packs are write-once: a stored pack is
// never updated or deleted, so the interface has no mutation beyond Create.
type Store interface {
	// Create persists a new pack. It returns sentinel.ErrConflict when a
	// pack with the same id already exists.
	Create(ctx context.Context, pack Pack) error

	// Get returns a stored pack by id, or sentinel.ErrNotFound.
	Get(ctx context.Context, packID id.PackID) (*Pack, error)

	// List returns all stored packs, most recent first.
	List(ctx context.Context) ([]Pack, error)
}
