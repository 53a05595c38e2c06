package catalog

import (
	"strings"
	"time"

	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
)

// Classification states whether a control is a hard requirement or guidance.
// This is a typed field rather than a suffix convention on the identifier;
// the identifier marker survives only as a compatibility rule at the
// ingestion boundary (see pkg/domain).
type Classification string

const (
	ClassificationMandatory Classification = "mandatory"
	ClassificationAdvisory  Classification = "advisory"
)

// Framework is a named compliance standard. Immutable once a control
// references it.
type Framework struct {
	ID          id.FrameworkID `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
}

// Control is the unit of versioning: its identifier never changes, its logic
// does.
//
// Invariants:
//   - ID is non-empty and stable across versions
//   - exactly one ControlVersion has Active=true at any instant
//   - Frameworks is non-empty and ordered (display order matters for reports)
type Control struct {
	ID             id.ControlID     `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Classification Classification   `json:"classification"`
	Frameworks     []id.FrameworkID `json:"frameworks"`
	ActiveVersion  id.VersionLabel  `json:"active_version"`
}

// IsAdvisory reports the control's typed classification, falling back to the
// legacy identifier marker for controls seeded from legacy data.
func (c Control) IsAdvisory() bool {
	return c.Classification == ClassificationAdvisory || c.ID.HasAdvisoryMarker()
}

// ControlVersion is one immutable snapshot of a control's logic. Nothing in
// a persisted version is ever mutated except the append-only UsedInPacks
// set, which the pack binder alone writes.
type ControlVersion struct {
	ID                id.VersionID    `json:"id"`
	ControlID         id.ControlID    `json:"control_id"`
	Label             id.VersionLabel `json:"label"`
	CreatedAt         time.Time       `json:"created_at"`
	Author            string          `json:"author"`
	ChangeDescription string          `json:"change_description"`
	LogicText         string          `json:"logic_text"`
	Questions         []string        `json:"questions"`
	EvidenceTypes     []string        `json:"evidence_types"`
	Active            bool            `json:"active"`
	UsedInPacks       []id.PackID     `json:"used_in_packs"`
}

// VersionInput carries the caller-supplied fields of a new version.
type VersionInput struct {
	ChangeDescription string   `json:"change_description"`
	LogicText         string   `json:"logic_text"`
	Questions         []string `json:"questions"`
	EvidenceTypes     []string `json:"evidence_types"`
}

// Validate enforces the non-empty required text fields before any store
// interaction happens.
func (in VersionInput) Validate() error {
	if strings.TrimSpace(in.ChangeDescription) == "" {
		return dErrors.New(dErrors.CodeValidation, "change description cannot be empty")
	}
	if strings.TrimSpace(in.LogicText) == "" {
		return dErrors.New(dErrors.CodeValidation, "control logic text cannot be empty")
	}
	return nil
}
