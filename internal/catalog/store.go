package catalog

import (
	"context"

	id "sentra/pkg/domain"
)

// Store persists controls and their version history. Implementations return
// sentinel errors (pkg/platform/sentinel); the service translates them into
// domain errors.
//
// The version log is append-mostly: CreateVersion is the only operation that
// flips an Active flag, and it does so atomically against the expected
// previous label so two racing edits cannot both win.
type Store interface {
	CreateControl(ctx context.Context, control Control, initial ControlVersion) error
	GetControl(ctx context.Context, controlID id.ControlID) (*Control, error)
	ListControls(ctx context.Context) ([]Control, error)

	GetActiveVersion(ctx context.Context, controlID id.ControlID) (*ControlVersion, error)
	ListVersions(ctx context.Context, controlID id.ControlID) ([]ControlVersion, error)

	// CreateVersion inserts the new active version and deactivates the
	// current one in a single atomic step. It fails with sentinel.ErrConflict
	// when the active label no longer equals expectedPrev, and with
	// sentinel.ErrNotFound for an unknown control.
	CreateVersion(ctx context.Context, version ControlVersion, expectedPrev id.VersionLabel) error

	// AttachPack appends a pack reference to the version with the given
	// label. Only the pack binder calls this.
	AttachPack(ctx context.Context, controlID id.ControlID, label id.VersionLabel, packID id.PackID) error
}
