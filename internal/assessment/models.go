// Package assessment models discrete assessment answers. The answers
// themselves come from the external ingestion layer; this package defines
// their shape and the selection rules the status engine relies on.
package assessment

import (
	"sort"
	"time"

	id "sentra/pkg/domain"
)

// AnswerValue is a discrete response to an assessment question.
type AnswerValue string

const (
	AnswerYes     AnswerValue = "yes"
	AnswerNo      AnswerValue = "no"
	AnswerPartial AnswerValue = "partial"
)

// Valid reports whether the value is one of the accepted responses.
func (v AnswerValue) Valid() bool {
	switch v {
	case AnswerYes, AnswerNo, AnswerPartial:
		return true
	}
	return false
}

// Answer is one response to one assessment question. Answers are never
// mutated: a changed answer is a new Answer sharing the question identifier,
// and only the latest answer per question counts.
//
// ControlRef is the typed owning-control reference. Legacy feeds that only
// carry the dotted question identifier leave it empty; Control() falls back
// to the compatibility parser in that case.
type Answer struct {
	QuestionID id.QuestionID `json:"question_id"`
	ControlRef id.ControlID  `json:"control_ref,omitempty"`
	Value      AnswerValue   `json:"value"`
	Note       string        `json:"note,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

// Control resolves the owning control, preferring the typed reference over
// the identifier-encoded convention.
func (a Answer) Control() id.ControlID {
	if !a.ControlRef.IsNil() {
		return a.ControlRef
	}
	ref, err := a.QuestionID.ControlRef()
	if err != nil {
		return ""
	}
	return ref
}

// Latest collapses a sequence to the most recent answer per question,
// preserving no particular order. Ties on timestamp keep the later entry in
// input order, matching append-order semantics of the answer log.
func Latest(answers []Answer) []Answer {
	latest := make(map[id.QuestionID]Answer, len(answers))
	for _, a := range answers {
		prev, ok := latest[a.QuestionID]
		if !ok || !a.Timestamp.Before(prev.Timestamp) {
			latest[a.QuestionID] = a
		}
	}
	out := make([]Answer, 0, len(latest))
	for _, a := range latest {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}

// ForControl selects the answers belonging to a control.
func ForControl(answers []Answer, controlID id.ControlID) []Answer {
	var out []Answer
	for _, a := range answers {
		if a.Control() == controlID {
			out = append(out, a)
		}
	}
	return out
}

// InRange selects answers with start <= Timestamp <= end (inclusive).
func InRange(answers []Answer, start, end time.Time) []Answer {
	var out []Answer
	for _, a := range answers {
		if a.Timestamp.Before(start) || a.Timestamp.After(end) {
			continue
		}
		out = append(out, a)
	}
	return out
}
