package evidence

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"sentra/internal/catalog"
	"sentra/internal/timeline"
	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
	"sentra/pkg/platform/sentinel"
	"sentra/pkg/requestcontext"
)

// Recorder appends events to the activity timeline.
type Recorder interface {
	Record(ctx context.Context, event timeline.Event)
}

// Catalog resolves the control an evidence item is attached to, so attaches
// are rejected for unknown controls and timeline events carry the control's
// display data.
type Catalog interface {
	GetControl(ctx context.Context, controlID id.ControlID) (*catalog.Control, error)
}

type Option func(*Service)

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// Service manages evidence attachments. Every attach and detach is mirrored
// into the timeline so audits can reconstruct the evidence history.
type Service struct {
	store    Store
	catalog  Catalog
	recorder Recorder
	logger   *slog.Logger
}

func NewService(store Store, cat Catalog, opts ...Option) *Service {
	s := &Service{store: store, catalog: cat, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach stores a new evidence item and records an evidence_added event.
// The control must exist; evidence never dangles off unknown identifiers.
func (s *Service) Attach(ctx context.Context, input AttachInput) (*Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	control, err := s.catalog.GetControl(ctx, input.ControlID)
	if err != nil {
		return nil, err
	}

	item := Item{
		ID:         uuid.NewString(),
		ControlID:  input.ControlID,
		Type:       input.Type,
		FileName:   input.FileName,
		UploadedBy: requestcontext.ActorID(ctx),
		UploadedAt: requestcontext.Now(ctx),
	}
	if err := s.store.Save(ctx, item); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "persist evidence")
	}

	if s.recorder != nil {
		s.recorder.Record(ctx, timeline.Event{
			Type:        timeline.EventEvidenceAdded,
			ControlID:   item.ControlID,
			ControlName: control.Name,
			Frameworks:  append([]id.FrameworkID{}, control.Frameworks...),
			Timestamp:   item.UploadedAt,
			EvidenceID:  item.ID,
			Metadata: map[string]string{
				"evidence_type": item.Type,
				"file_name":     item.FileName,
			},
		})
	}
	s.logger.InfoContext(ctx, "evidence attached",
		slog.String("evidence_id", item.ID),
		slog.String("control_id", string(item.ControlID)))
	return &item, nil
}

// Detach removes an evidence item and records an evidence_removed event.
func (s *Service) Detach(ctx context.Context, evidenceID string) error {
	item, err := s.store.Delete(ctx, evidenceID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "evidence %s not found", evidenceID)
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "remove evidence")
	}

	if s.recorder != nil {
		event := timeline.Event{
			Type:       timeline.EventEvidenceRemoved,
			ControlID:  item.ControlID,
			Timestamp:  requestcontext.Now(ctx),
			EvidenceID: item.ID,
			Metadata: map[string]string{
				"evidence_type": item.Type,
				"file_name":     item.FileName,
			},
		}
		// Best effort: a catalog hiccup costs the event its display data,
		// not the detach.
		if control, err := s.catalog.GetControl(ctx, item.ControlID); err == nil {
			event.ControlName = control.Name
			event.Frameworks = append([]id.FrameworkID{}, control.Frameworks...)
		}
		s.recorder.Record(ctx, event)
	}
	s.logger.InfoContext(ctx, "evidence detached",
		slog.String("evidence_id", item.ID),
		slog.String("control_id", string(item.ControlID)))
	return nil
}

// ListForControl returns the evidence currently attached to a control.
func (s *Service) ListForControl(ctx context.Context, controlID id.ControlID) ([]Item, error) {
	items, err := s.store.ListForControl(ctx, controlID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list evidence")
	}
	return items, nil
}
