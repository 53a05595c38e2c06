package assurance

import (
	"time"

	"sentra/internal/status"
	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
)

// ScopeKind selects how the controls in a pack are chosen.
type ScopeKind string

const (
	// ScopeFramework covers every control owned by one framework.
	ScopeFramework ScopeKind = "framework"
	// ScopeControls covers an explicit control list, typically the controls
	// referenced by an evidence selection.
	ScopeControls ScopeKind = "controls"
	// ScopeControl covers a single control.
	ScopeControl ScopeKind = "control"
)

// Scope describes which controls a pack covers.
type Scope struct {
	Kind       ScopeKind      `json:"kind"`
	Framework  id.FrameworkID `json:"framework,omitempty"`
	ControlIDs []id.ControlID `json:"control_ids,omitempty"`
}

// Validate checks the scope shape before any store reads happen.
func (s Scope) Validate() error {
	switch s.Kind {
	case ScopeFramework:
		if s.Framework == "" {
			return dErrors.New(dErrors.CodeValidation, "framework scope requires a framework id")
		}
	case ScopeControls:
		if len(s.ControlIDs) == 0 {
			return dErrors.New(dErrors.CodeEmptyScope, "explicit scope resolves to zero controls")
		}
	case ScopeControl:
		if len(s.ControlIDs) != 1 {
			return dErrors.New(dErrors.CodeValidation, "single-control scope requires exactly one control id")
		}
	default:
		return dErrors.Newf(dErrors.CodeValidation, "unknown scope kind %q", string(s.Kind))
	}
	return nil
}

// TimeRange bounds the answers a pack draws from. Both ends are inclusive.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate rejects inverted ranges.
func (r TimeRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "pack time range requires both start and end")
	}
	if r.Start.After(r.End) {
		return dErrors.Newf(dErrors.CodeValidation,
			"pack time range start %s is after end %s",
			r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
	}
	return nil
}

// Pack is a generated assurance artifact. It binds the exact control-logic
// versions and status results that were active at generation time and is
// never recomputed afterwards, even when the referenced controls advance to
// newer versions. That permanence is the contract the subsystem exists for.
type Pack struct {
	ID        id.PackID `json:"id"`
	Query     string    `json:"query,omitempty"`
	Scope     Scope     `json:"scope"`
	TimeRange TimeRange `json:"time_range"`

	// Versions freezes control → active version label at generation time.
	Versions map[id.ControlID]id.VersionLabel `json:"versions"`
	// Snapshots freezes the status results, ordered by control identifier.
	Snapshots []status.Snapshot `json:"snapshots"`

	ContentHash string    `json:"content_hash"`
	CreatedAt   time.Time `json:"created_at"`
}
