package applicability

import (
	id "sentra/pkg/domain"
)

// Description is the display metadata attached to a (control, architecture)
// pair.
type Description struct {
	Name     string `json:"name"`
	Domain   string `json:"domain"`
	Advisory bool   `json:"advisory"`
}

type cellKey struct {
	control id.ControlID
	arch    id.Architecture
}

type controlMeta struct {
	name   string
	domain string
}

// Resolver answers applicability questions from a map built once at load
// time. It is immutable after construction and safe for concurrent use.
type Resolver struct {
	cells map[cellKey]Entry
	meta  map[id.ControlID]controlMeta
}

// NewResolver indexes the matrix. Later entries for the same cell overwrite
// earlier ones, so overrides can be appended to a base matrix.
func NewResolver(entries []Entry) *Resolver {
	r := &Resolver{
		cells: make(map[cellKey]Entry, len(entries)),
		meta:  make(map[id.ControlID]controlMeta),
	}
	for _, e := range entries {
		r.cells[cellKey{control: e.ControlID, arch: e.Architecture}] = e
		r.meta[e.ControlID] = controlMeta{name: e.Name, domain: e.Domain}
	}
	return r
}

// NewDefaultResolver builds a resolver over the built-in matrix.
func NewDefaultResolver() *Resolver {
	return NewResolver(DefaultMatrix())
}

// IsApplicable reports whether the control applies under the given
// architecture. With no architecture selected nothing is filtered; with one
// selected, an unknown (control, architecture) pair is not applicable.
func (r *Resolver) IsApplicable(controlID id.ControlID, arch id.Architecture) bool {
	if arch.IsNil() {
		return true
	}
	cell, ok := r.cells[cellKey{control: controlID, arch: arch}]
	if !ok {
		return false
	}
	return cell.Applicable
}

// IsAdvisory reports whether the control counts as guidance rather than a
// hard requirement. The identifier-level marker dominates: a marked control
// is advisory in every architecture, including ones absent from the matrix.
func (r *Resolver) IsAdvisory(controlID id.ControlID, arch id.Architecture) bool {
	if controlID.HasAdvisoryMarker() {
		return true
	}
	if arch.IsNil() {
		return false
	}
	cell, ok := r.cells[cellKey{control: controlID, arch: arch}]
	if !ok {
		return false
	}
	return cell.Advisory
}

// Describe resolves display metadata for a control. Controls absent from the
// matrix fall back to the raw identifier and an Unknown domain; the advisory
// flag still honors the identifier marker.
func (r *Resolver) Describe(controlID id.ControlID, arch id.Architecture) Description {
	meta, ok := r.meta[controlID]
	if !ok {
		return Description{
			Name:     controlID.String(),
			Domain:   "Unknown",
			Advisory: controlID.HasAdvisoryMarker(),
		}
	}
	return Description{
		Name:     meta.name,
		Domain:   meta.domain,
		Advisory: r.IsAdvisory(controlID, arch),
	}
}
