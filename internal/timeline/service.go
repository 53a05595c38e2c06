package timeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	dErrors "sentra/pkg/domain-errors"
)

// Publisher fans events out to an external stream (Kafka) for downstream
// consumers. Publishing is best-effort; the store is the queryable record.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Service owns the append-only audit stream. Record never fails upward and
// never blocks on downstream consumers; Query is a pure read.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics Metrics
	outbox  chan Event
}

// Metrics is the narrow slice of the platform metrics the timeline touches.
type Metrics interface {
	IncrementTimelineEvents(eventType string)
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithOutbox attaches a buffered channel drained by a Worker into a
// Publisher. Record drops the publish (with a log line) rather than block
// when the buffer is full; the store copy is never dropped.
func WithOutbox(outbox chan Event) Option {
	return func(s *Service) { s.outbox = outbox }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record appends an event. Well-formed events are never rejected; a store
// failure is logged and swallowed so state-changing operations upstream are
// never rolled back by their own audit trail.
func (s *Service) Record(ctx context.Context, event Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if err := s.store.Append(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "timeline append failed",
			"event_type", string(event.Type),
			"control_id", event.ControlID.String(),
			"error", err.Error(),
		)
		return
	}
	if s.metrics != nil {
		s.metrics.IncrementTimelineEvents(string(event.Type))
	}
	if s.outbox != nil {
		select {
		case s.outbox <- event:
		default:
			s.logger.WarnContext(ctx, "timeline outbox full, dropping publish",
				"event_type", string(event.Type),
			)
		}
	}
}

// Query returns the events inside the inclusive time range that match every
// supplied filter, ordered by timestamp ascending, with a freshly computed
// summary.
func (s *Service) Query(ctx context.Context, filter Filter) (*QueryResult, error) {
	if filter.Start.IsZero() || filter.End.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "timeline query requires both start and end")
	}
	if filter.Start.After(filter.End) {
		return nil, dErrors.Newf(dErrors.CodeValidation,
			"timeline range start %s is after end %s", filter.Start.Format("2006-01-02"), filter.End.Format("2006-01-02"))
	}
	all, err := s.store.ListRange(ctx, filter.Start, filter.End)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read timeline")
	}
	events := make([]Event, 0, len(all))
	for _, e := range all {
		if filter.Matches(e) {
			events = append(events, e)
		}
	}
	return &QueryResult{Events: events, Summary: Summarize(events)}, nil
}
