package timeline

import (
	"time"

	"github.com/google/uuid"

	id "sentra/pkg/domain"
)

// EventType classifies timeline events. The set mirrors what the reporting
// layer groups on; unknown types are still stored and counted.
type EventType string

const (
	EventStatusChange        EventType = "status_change"
	EventEvidenceAdded       EventType = "evidence_added"
	EventEvidenceRemoved     EventType = "evidence_removed"
	EventAssessmentMilestone EventType = "assessment_milestone"
	EventVersionCreated      EventType = "version_created"
)

// Event is one entry in the append-only audit stream. Events are never
// edited or deleted; a correction is a new event.
//
// Status fields are plain strings so this package stays free of the status
// engine; the engine's values are written verbatim.
type Event struct {
	ID           uuid.UUID        `json:"id"`
	Type         EventType        `json:"type"`
	ControlID    id.ControlID     `json:"control_id,omitempty"`
	ControlName  string           `json:"control_name,omitempty"`
	Frameworks   []id.FrameworkID `json:"frameworks,omitempty"`
	Architecture id.Architecture  `json:"architecture,omitempty"`
	Timestamp    time.Time        `json:"timestamp"`

	// Status transition, populated for status_change events.
	BeforeStatus string `json:"before_status,omitempty"`
	AfterStatus  string `json:"after_status,omitempty"`

	// Evidence reference, populated for evidence_added/evidence_removed.
	EvidenceID string `json:"evidence_id,omitempty"`

	// Pack or session reference, populated for milestones and version events.
	PackID    id.PackID `json:"pack_id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

func (e Event) ownedBy(framework id.FrameworkID) bool {
	for _, fw := range e.Frameworks {
		if fw == framework {
			return true
		}
	}
	return false
}

// Filter selects events for a query. Start/End are mandatory and inclusive;
// the remaining fields are conjunctive and optional.
type Filter struct {
	ControlID    id.ControlID
	Framework    id.FrameworkID
	Architecture id.Architecture
	Start        time.Time
	End          time.Time
}

// Matches applies the optional conjunctive filters. Time-range filtering is
// the store's job so backends can push it down. An event matches a framework
// filter when any of its owning frameworks matches; shared controls surface
// under every framework they belong to.
func (f Filter) Matches(e Event) bool {
	if !f.ControlID.IsNil() && e.ControlID != f.ControlID {
		return false
	}
	if f.Framework != "" && !e.ownedBy(f.Framework) {
		return false
	}
	if !f.Architecture.IsNil() && e.Architecture != f.Architecture {
		return false
	}
	return true
}

// Summary aggregates the filtered window. It is recomputed on every query;
// there are no cached counters to drift.
type Summary struct {
	TotalEvents          int               `json:"total_events"`
	StatusChanges        int               `json:"status_changes"`
	EvidenceAdded        int               `json:"evidence_added"`
	AssessmentMilestones int               `json:"assessment_milestones"`
	ByType               map[EventType]int `json:"by_type"`
}

// QueryResult pairs the ordered events with their summary.
type QueryResult struct {
	Events  []Event `json:"events"`
	Summary Summary `json:"summary"`
}

// Summarize is a pure reduction over events.
func Summarize(events []Event) Summary {
	summary := Summary{ByType: make(map[EventType]int)}
	for _, e := range events {
		summary.TotalEvents++
		summary.ByType[e.Type]++
		switch e.Type {
		case EventStatusChange:
			summary.StatusChanges++
		case EventEvidenceAdded:
			summary.EvidenceAdded++
		case EventAssessmentMilestone:
			summary.AssessmentMilestones++
		}
	}
	return summary
}
