package catalog

import (
	"context"
	"errors"
	"log/slog"

	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
	"sentra/pkg/platform/sentinel"
	"sentra/pkg/requestcontext"

	"sentra/internal/timeline"
)

// Recorder is the slice of the timeline service the catalog appends to.
type Recorder interface {
	Record(ctx context.Context, event timeline.Event)
}

// Metrics is the slice of the platform metrics the catalog touches.
type Metrics interface {
	IncrementVersionsCreated()
}

// Service owns control versioning. CreateVersion is the only write path for
// shared control state and is serialized per control through the store's
// compare-and-swap; everything else is a read.
type Service struct {
	store    Store
	overlaps map[id.ControlID][]id.ControlID
	recorder Recorder
	metrics  Metrics
	logger   *slog.Logger
}

type Option func(*Service)

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithOverlaps installs the control-overlap map (map once, report many):
// controls that satisfy requirements in more than one framework.
func WithOverlaps(overlaps map[id.ControlID][]id.ControlID) Option {
	return func(s *Service) { s.overlaps = overlaps }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		overlaps: map[id.ControlID][]id.ControlID{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetControl resolves a control by identifier.
func (s *Service) GetControl(ctx context.Context, controlID id.ControlID) (*Control, error) {
	control, err := s.store.GetControl(ctx, controlID)
	if err != nil {
		return nil, translateStoreErr(err, controlID)
	}
	return control, nil
}

// ListControls returns every control, ordered by identifier.
func (s *Service) ListControls(ctx context.Context) ([]Control, error) {
	controls, err := s.store.ListControls(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list controls")
	}
	return controls, nil
}

// ListControlsByFramework returns the controls owned by a framework.
func (s *Service) ListControlsByFramework(ctx context.Context, framework id.FrameworkID) ([]Control, error) {
	controls, err := s.store.ListControls(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list controls")
	}
	var out []Control
	for _, control := range controls {
		for _, fw := range control.Frameworks {
			if fw == framework {
				out = append(out, control)
				break
			}
		}
	}
	return out, nil
}

// Overlaps returns the controls that satisfy the same requirement in other
// frameworks.
func (s *Service) Overlaps(controlID id.ControlID) []id.ControlID {
	return append([]id.ControlID{}, s.overlaps[controlID]...)
}

// GetActiveVersion returns the single active version of a control.
func (s *Service) GetActiveVersion(ctx context.Context, controlID id.ControlID) (*ControlVersion, error) {
	version, err := s.store.GetActiveVersion(ctx, controlID)
	if err != nil {
		return nil, translateStoreErr(err, controlID)
	}
	return version, nil
}

// ListVersions returns the full version history, most recent first.
func (s *Service) ListVersions(ctx context.Context, controlID id.ControlID) ([]ControlVersion, error) {
	versions, err := s.store.ListVersions(ctx, controlID)
	if err != nil {
		return nil, translateStoreErr(err, controlID)
	}
	return versions, nil
}

// CreateVersion supersedes the active version of a control. The new label is
// the previous label with its minor component advanced one decimal step; the
// store's compare-and-swap against the previous label turns a lost race into
// CodeConflict, which the caller resolves by re-reading and retrying.
func (s *Service) CreateVersion(ctx context.Context, controlID id.ControlID, input VersionInput) (*ControlVersion, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	control, err := s.store.GetControl(ctx, controlID)
	if err != nil {
		return nil, translateStoreErr(err, controlID)
	}
	active, err := s.store.GetActiveVersion(ctx, controlID)
	if err != nil {
		return nil, translateStoreErr(err, controlID)
	}
	nextLabel, err := active.Label.Next()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "active version of "+controlID.String()+" has an unparseable label")
	}

	now := requestcontext.Now(ctx)
	version := ControlVersion{
		ID:                id.NewVersionID(),
		ControlID:         controlID,
		Label:             nextLabel,
		CreatedAt:         now,
		Author:            requestcontext.ActorID(ctx),
		ChangeDescription: input.ChangeDescription,
		LogicText:         input.LogicText,
		Questions:         append([]string{}, input.Questions...),
		EvidenceTypes:     append([]string{}, input.EvidenceTypes...),
		Active:            true,
	}

	if err := s.store.CreateVersion(ctx, version, active.Label); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.Newf(dErrors.CodeConflict,
				"control %s has advanced past %s; re-fetch the active version and retry", controlID, active.Label)
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.Newf(dErrors.CodeNotFound, "unknown control %s", controlID)
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create version for "+controlID.String())
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementVersionsCreated()
	}
	if s.recorder != nil {
		s.recorder.Record(ctx, timeline.Event{
			Type:        timeline.EventVersionCreated,
			ControlID:   controlID,
			ControlName: control.Name,
			Frameworks:  append([]id.FrameworkID{}, control.Frameworks...),
			Timestamp:   now,
			Metadata: map[string]string{
				"label":          nextLabel.String(),
				"previous_label": active.Label.String(),
				"author":         version.Author,
			},
		})
	}

	s.logger.InfoContext(ctx, "control version created",
		"control_id", controlID.String(),
		"label", nextLabel.String(),
		"author", version.Author,
	)
	return &version, nil
}

// AttachPack appends a pack reference to a frozen version. Only the pack
// binder calls this; the field is append-only.
func (s *Service) AttachPack(ctx context.Context, controlID id.ControlID, label id.VersionLabel, packID id.PackID) error {
	if err := s.store.AttachPack(ctx, controlID, label, packID); err != nil {
		return translateStoreErr(err, controlID)
	}
	return nil
}

func translateStoreErr(err error, controlID id.ControlID) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "unknown control %s", controlID)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "catalog store failure for "+controlID.String())
}
