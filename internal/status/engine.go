// Package status computes per-control compliance status from assessment
// answers. The computation is a pure function: no I/O, no hidden state,
// identical inputs always yield identical snapshots.
package status

import (
	"sentra/internal/assessment"
	id "sentra/pkg/domain"
)

// Status is the computed compliance state of one control.
type Status string

const (
	StatusInPlace       Status = "in-place"
	StatusNotInPlace    Status = "not-in-place"
	StatusNotApplicable Status = "not-applicable"
)

// Decision thresholds. At least 70% yes answers puts a control in place;
// failing that, 50% no answers (or any residual mix, including partials)
// leaves it not in place. There is deliberately no partial output state:
// mixed evidence collapses to not-in-place.
const (
	inPlaceYesThreshold   = 0.70
	notInPlaceNoThreshold = 0.50
)

// Snapshot is the computed result for one control at one evaluation instant.
// It is derived data: never stored as ground truth except frozen inside an
// assurance pack.
type Snapshot struct {
	ControlID   id.ControlID `json:"control_id"`
	Status      Status       `json:"status"`
	Applicable  bool         `json:"applicable"`
	Advisory    bool         `json:"advisory"`
	AnswerCount int          `json:"answer_count"`
}

// Resolver is the slice of the applicability resolver the engine consults.
type Resolver interface {
	IsApplicable(controlID id.ControlID, arch id.Architecture) bool
	IsAdvisory(controlID id.ControlID, arch id.Architecture) bool
}

// Engine evaluates controls. It holds only the resolver; evaluation is
// side-effect-free and safe to call concurrently.
type Engine struct {
	resolver Resolver
}

func NewEngine(resolver Resolver) *Engine {
	return &Engine{resolver: resolver}
}

// Compute derives the status snapshot for a control.
//
// Rules, first match wins:
//  1. not applicable under the architecture → not-applicable, answers ignored
//  2. no contributing answers → not-in-place (absent evidence is
//     non-compliance, not unknown)
//  3. yes >= 70% of answers → in-place
//  4. everything else (including no >= 50% and mixed/partial sets) →
//     not-in-place
//
// Only the latest answer per question contributes. The advisory flag is
// attached for reporting; it never changes the status value.
func (e *Engine) Compute(controlID id.ControlID, answers []assessment.Answer, arch id.Architecture) Snapshot {
	snapshot := Snapshot{
		ControlID: controlID,
		Advisory:  e.resolver.IsAdvisory(controlID, arch),
	}

	if !e.resolver.IsApplicable(controlID, arch) {
		snapshot.Status = StatusNotApplicable
		return snapshot
	}
	snapshot.Applicable = true

	contributing := assessment.Latest(assessment.ForControl(answers, controlID))
	snapshot.AnswerCount = len(contributing)
	if len(contributing) == 0 {
		snapshot.Status = StatusNotInPlace
		return snapshot
	}

	var yes, no int
	for _, a := range contributing {
		switch a.Value {
		case assessment.AnswerYes:
			yes++
		case assessment.AnswerNo:
			no++
		}
	}
	total := float64(len(contributing))

	switch {
	case float64(yes)/total >= inPlaceYesThreshold:
		snapshot.Status = StatusInPlace
	case float64(no)/total >= notInPlaceNoThreshold:
		snapshot.Status = StatusNotInPlace
	default:
		// Mixed answers with partials carry no dedicated state; collapse to
		// not-in-place.
		snapshot.Status = StatusNotInPlace
	}
	return snapshot
}
