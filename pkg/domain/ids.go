// Package domain holds typed identifiers and domain primitives shared across
// the engine. Keeping them in one place prevents services from passing bare
// strings around and lets parsing rules live next to the types they produce.
package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// advisoryMarker is the legacy identifier suffix that flags a control as
// guidance rather than a hard requirement (e.g. "SWIFT-2.4A"). Classification
// is a typed field on Control; this marker survives only as a compatibility
// rule for identifiers arriving from the ingestion boundary.
const advisoryMarker = "A"

// ControlID identifies a control. It is stable across versions: versioning
// never renames a control.
type ControlID string

// ParseControlID validates a raw control identifier.
func ParseControlID(s string) (ControlID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("control id cannot be empty")
	}
	return ControlID(s), nil
}

func (c ControlID) String() string { return string(c) }

// IsNil returns true when the identifier is empty.
func (c ControlID) IsNil() bool { return c == "" }

// HasAdvisoryMarker reports whether the identifier carries the legacy
// advisory suffix. The marker dominates any per-architecture advisory flag.
func (c ControlID) HasAdvisoryMarker() bool {
	return strings.HasSuffix(string(c), advisoryMarker)
}

// QuestionID identifies one assessment question. Legacy identifiers encode
// the owning control as the first two dot-separated segments
// ("SWIFT-2.8.a.1" belongs to control "SWIFT-2.8").
type QuestionID string

func (q QuestionID) String() string { return string(q) }

// ControlRef extracts the owning control identifier from a legacy question
// identifier. This parser exists only so identifiers from the ingestion layer
// can be accepted; new answers carry an explicit control reference.
func (q QuestionID) ControlRef() (ControlID, error) {
	parts := strings.Split(string(q), ".")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("question id %q does not encode a control reference", string(q))
	}
	return ControlID(parts[0] + "." + parts[1]), nil
}

// VersionLabel is a control-logic version label of the form "v<major>.<minor>".
// Labels increase monotonically per control; only the minor component is
// advanced by ordinary edits.
type VersionLabel string

// InitialVersionLabel is assigned to seeded control versions.
const InitialVersionLabel VersionLabel = "v1.0"

// ParseVersionLabel validates a raw version label.
func ParseVersionLabel(s string) (VersionLabel, error) {
	if _, _, err := splitLabel(s); err != nil {
		return "", err
	}
	return VersionLabel(s), nil
}

func splitLabel(s string) (major, minor int, err error) {
	rest, ok := strings.CutPrefix(s, "v")
	if !ok {
		return 0, 0, fmt.Errorf("version label %q must start with 'v'", s)
	}
	majorStr, minorStr, ok := strings.Cut(rest, ".")
	if !ok {
		return 0, 0, fmt.Errorf("version label %q must be of the form v<major>.<minor>", s)
	}
	major, err = strconv.Atoi(majorStr)
	if err != nil || major < 0 {
		return 0, 0, fmt.Errorf("version label %q has an invalid major component", s)
	}
	minor, err = strconv.Atoi(minorStr)
	if err != nil || minor < 0 {
		return 0, 0, fmt.Errorf("version label %q has an invalid minor component", s)
	}
	return major, minor, nil
}

func (v VersionLabel) String() string { return string(v) }

// IsNil returns true when the label is empty.
func (v VersionLabel) IsNil() bool { return v == "" }

// Next returns the label that succeeds this one: the minor component advanced
// by one decimal step ("v1.2" -> "v1.3").
func (v VersionLabel) Next() (VersionLabel, error) {
	major, minor, err := splitLabel(string(v))
	if err != nil {
		return "", err
	}
	return VersionLabel(fmt.Sprintf("v%d.%d", major, minor+1)), nil
}

// Less reports whether v orders strictly before other. Unparseable labels
// order before any valid label so corrupted data never masks a newer version.
func (v VersionLabel) Less(other VersionLabel) bool {
	vMajor, vMinor, vErr := splitLabel(string(v))
	oMajor, oMinor, oErr := splitLabel(string(other))
	if vErr != nil {
		return oErr == nil
	}
	if oErr != nil {
		return false
	}
	if vMajor != oMajor {
		return vMajor < oMajor
	}
	return vMinor < oMinor
}

// FrameworkID names a compliance framework.
type FrameworkID string

const (
	FrameworkSWIFTCSP FrameworkID = "SWIFT_CSP"
	FrameworkSOC2     FrameworkID = "SOC2"
	FrameworkPCIDSS   FrameworkID = "PCI_DSS"
	FrameworkISO27001 FrameworkID = "ISO27001"
	FrameworkNIST     FrameworkID = "NIST"
)

func (f FrameworkID) String() string { return string(f) }

// Architecture identifies a deployment topology. The applicability matrix is
// keyed by (control, architecture); the empty value means "no architecture
// selected" and disables applicability filtering entirely.
type Architecture string

const (
	ArchitectureNone           Architecture = ""
	ArchitectureCloudA4        Architecture = "Cloud A4"
	ArchitectureOnPrem         Architecture = "On-Premises"
	ArchitectureHybrid         Architecture = "Hybrid"
	ArchitectureSWIFTTerminal  Architecture = "SWIFT Terminal"
	ArchitecturePaymentGateway Architecture = "Payment Gateway"
)

func (a Architecture) String() string { return string(a) }

// IsNil returns true when no architecture was selected.
func (a Architecture) IsNil() bool { return a == ArchitectureNone }

// PackID identifies an assurance pack. The timestamp prefix keeps pack
// directories human-sortable; the random suffix keeps concurrent generations
// collision-free.
type PackID string

// NewPackID mints a pack identifier for the given generation instant.
func NewPackID(now time.Time) PackID {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return PackID(fmt.Sprintf("PACK-%s-%s", now.UTC().Format("20060102-150405"), suffix))
}

func (p PackID) String() string { return string(p) }

// IsNil returns true when the identifier is empty.
func (p PackID) IsNil() bool { return p == "" }

// VersionID identifies a single immutable control version record.
type VersionID uuid.UUID

// NewVersionID mints a random version identifier.
func NewVersionID() VersionID { return VersionID(uuid.New()) }

func (v VersionID) String() string { return uuid.UUID(v).String() }

// IsNil returns true for the zero identifier.
func (v VersionID) IsNil() bool { return uuid.UUID(v) == uuid.Nil }

// MarshalJSON renders the identifier in canonical UUID form.
func (v VersionID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uuid.UUID(v).String())
}

func (v *VersionID) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse version id: %w", err)
	}
	*v = VersionID(parsed)
	return nil
}
