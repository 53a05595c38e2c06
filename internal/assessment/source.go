package assessment

import (
	"context"
	"sync"
)

// Source is the read-only accessor the ingestion layer implements: the
// current set of answers for an assessment session.
type Source interface {
	AnswersForSession(ctx context.Context, sessionID string) ([]Answer, error)
}

// InMemorySource is a Source backed by process memory, used in tests and
// when running without the ingestion layer.
type InMemorySource struct {
	mu      sync.RWMutex
	answers map[string][]Answer
}

func NewInMemorySource() *InMemorySource {
	return &InMemorySource{answers: make(map[string][]Answer)}
}

// Record appends an answer to a session. Answers are append-only; a changed
// answer is a new record with the same question identifier.
func (s *InMemorySource) Record(_ context.Context, sessionID string, answer Answer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[sessionID] = append(s.answers[sessionID], answer)
}

func (s *InMemorySource) AnswersForSession(_ context.Context, sessionID string) ([]Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Answer{}, s.answers[sessionID]...), nil
}
