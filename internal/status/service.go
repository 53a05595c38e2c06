package status

import (
	"context"
	"log/slog"

	"sentra/internal/assessment"
	"sentra/internal/catalog"
	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
)

// CatalogReader is the slice of the control catalog status queries need.
type CatalogReader interface {
	GetControl(ctx context.Context, controlID id.ControlID) (*catalog.Control, error)
	ListControlsByFramework(ctx context.Context, framework id.FrameworkID) ([]catalog.Control, error)
}

// Metrics counts served evaluations.
type Metrics interface {
	IncrementStatusEvaluations()
}

type Option func(*Service)

func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// Service answers live status queries. Results are always computed fresh
// from the current answers; nothing here is cached or persisted.
type Service struct {
	engine  *Engine
	answers assessment.Source
	catalog CatalogReader
	metrics Metrics
	logger  *slog.Logger
}

func NewService(engine *Engine, answers assessment.Source, cat CatalogReader, opts ...Option) *Service {
	s := &Service{
		engine:  engine,
		answers: answers,
		catalog: cat,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ControlStatus evaluates one control for the given architecture and
// assessment session.
func (s *Service) ControlStatus(ctx context.Context, controlID id.ControlID, arch id.Architecture, sessionID string) (*Snapshot, error) {
	if _, err := s.catalog.GetControl(ctx, controlID); err != nil {
		return nil, err
	}
	answers, err := s.answers.AnswersForSession(ctx, sessionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load assessment answers")
	}

	snapshot := s.engine.Compute(controlID, answers, arch)
	if s.metrics != nil {
		s.metrics.IncrementStatusEvaluations()
	}
	return &snapshot, nil
}

// FrameworkStatus evaluates every control of a framework. The result is
// ordered by control identifier, matching the catalog listing.
func (s *Service) FrameworkStatus(ctx context.Context, framework id.FrameworkID, arch id.Architecture, sessionID string) ([]Snapshot, error) {
	controls, err := s.catalog.ListControlsByFramework(ctx, framework)
	if err != nil {
		return nil, err
	}
	answers, err := s.answers.AnswersForSession(ctx, sessionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load assessment answers")
	}

	snapshots := make([]Snapshot, 0, len(controls))
	for _, control := range controls {
		snapshots = append(snapshots, s.engine.Compute(control.ID, answers, arch))
	}
	if s.metrics != nil {
		s.metrics.IncrementStatusEvaluations()
	}
	return snapshots, nil
}
