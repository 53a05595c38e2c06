// Package assurance generates assurance packs: point-in-time compliance
// artifacts that permanently bind control versions and status results.
package assurance

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"sentra/internal/assessment"
	"sentra/internal/catalog"
	"sentra/internal/status"
	"sentra/internal/timeline"
	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
	"sentra/pkg/platform/sentinel"
	"sentra/pkg/requestcontext"
)

// snapshotConcurrency caps the parallel per-control evaluations during pack
// generation.
const snapshotConcurrency = 8

// Catalog is the slice of the control catalog pack generation reads from.
type Catalog interface {
	GetControl(ctx context.Context, controlID id.ControlID) (*catalog.Control, error)
	ListControlsByFramework(ctx context.Context, framework id.FrameworkID) ([]catalog.Control, error)
	GetActiveVersion(ctx context.Context, controlID id.ControlID) (*catalog.ControlVersion, error)
	AttachPack(ctx context.Context, controlID id.ControlID, label id.VersionLabel, packID id.PackID) error
}

// Engine computes one control's status snapshot.
type Engine interface {
	Compute(controlID id.ControlID, answers []assessment.Answer, arch id.Architecture) status.Snapshot
}

// Recorder appends events to the activity timeline.
type Recorder interface {
	Record(ctx context.Context, event timeline.Event)
}

// Metrics is the pack-generation instrumentation hook.
type Metrics interface {
	IncrementPacksGenerated()
	ObservePackGeneration(seconds float64)
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

// Service generates and serves assurance packs.
type Service struct {
	store    Store
	catalog  Catalog
	engine   Engine
	answers  assessment.Source
	recorder Recorder
	metrics  Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

func NewService(store Store, cat Catalog, engine Engine, answers assessment.Source, opts ...Option) *Service {
	s := &Service{
		store:   store,
		catalog: cat,
		engine:  engine,
		answers: answers,
		logger:  slog.Default(),
		tracer:  otel.Tracer("sentra/assurance"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateRequest describes one pack generation call.
type GenerateRequest struct {
	Query        string
	Scope        Scope
	TimeRange    TimeRange
	Architecture id.Architecture
	SessionID    string
}

// GeneratePack resolves the scope, evaluates every control in it against the
// answers inside the time range, and persists the result as an immutable
// pack. The generated pack references the control versions active right now;
// later version changes never touch it.
func (s *Service) GeneratePack(ctx context.Context, req GenerateRequest) (*Pack, error) {
	ctx, span := s.tracer.Start(ctx, "assurance.GeneratePack")
	defer span.End()

	started := requestcontext.Now(ctx)

	if err := req.TimeRange.Validate(); err != nil {
		return nil, err
	}
	if err := req.Scope.Validate(); err != nil {
		return nil, err
	}

	controls, err := s.resolveScope(ctx, req.Scope)
	if err != nil {
		return nil, err
	}
	if len(controls) == 0 {
		return nil, dErrors.New(dErrors.CodeEmptyScope, "pack scope resolves to zero controls")
	}
	span.SetAttributes(
		attribute.Int("assurance.controls", len(controls)),
		attribute.String("assurance.scope", string(req.Scope.Kind)),
	)

	answers, err := s.answers.AnswersForSession(ctx, req.SessionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load assessment answers")
	}
	inRange := assessment.InRange(answers, req.TimeRange.Start, req.TimeRange.End)

	versions := make(map[id.ControlID]id.VersionLabel, len(controls))
	snapshots := make([]status.Snapshot, len(controls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotConcurrency)
	var mu sync.Mutex
	for i, control := range controls {
		g.Go(func() error {
			active, err := s.catalog.GetActiveVersion(gctx, control.ID)
			if err != nil {
				return dErrors.Wrapf(err, dErrors.CodeInternal,
					"resolve active version for %s", control.ID)
			}
			snapshots[i] = s.engine.Compute(control.ID, inRange, req.Architecture)
			mu.Lock()
			versions[control.ID] = active.Label
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ControlID < snapshots[j].ControlID
	})

	// Prior statuses are read before the new pack lands so the diff is
	// against the previous generation, not against ourselves.
	var prior map[id.ControlID]status.Status
	if s.recorder != nil {
		prior = s.previousStatuses(ctx, controls)
	}

	now := requestcontext.Now(ctx)
	pack := Pack{
		ID:          id.NewPackID(now),
		Query:       req.Query,
		Scope:       req.Scope,
		TimeRange:   req.TimeRange,
		Versions:    versions,
		Snapshots:   snapshots,
		ContentHash: ContentHash(req.Scope, req.TimeRange, versions, snapshots),
		CreatedAt:   now,
	}

	if err := s.store.Create(ctx, pack); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "pack %s already exists", pack.ID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "persist pack")
	}

	// Version attachment and the milestone event happen after the pack is
	// durable. Failures here are logged, not surfaced: the pack itself is
	// already valid.
	for controlID, label := range versions {
		if err := s.catalog.AttachPack(ctx, controlID, label, pack.ID); err != nil {
			s.logger.WarnContext(ctx, "attach pack reference",
				slog.String("pack_id", string(pack.ID)),
				slog.String("control_id", string(controlID)),
				slog.Any("error", err))
		}
	}

	if s.recorder != nil {
		byID := make(map[id.ControlID]catalog.Control, len(controls))
		for _, control := range controls {
			byID[control.ID] = control
		}
		s.recorder.Record(ctx, timeline.Event{
			Type:         timeline.EventAssessmentMilestone,
			Frameworks:   owningFrameworks(controls),
			Architecture: req.Architecture,
			Timestamp:    now,
			PackID:       pack.ID,
			SessionID:    req.SessionID,
			Metadata: map[string]string{
				"controls":     strconv.Itoa(len(controls)),
				"content_hash": pack.ContentHash,
			},
		})
		for _, snap := range snapshots {
			before, seen := prior[snap.ControlID]
			if !seen || before == snap.Status {
				continue
			}
			control := byID[snap.ControlID]
			s.recorder.Record(ctx, timeline.Event{
				Type:         timeline.EventStatusChange,
				ControlID:    snap.ControlID,
				ControlName:  control.Name,
				Frameworks:   append([]id.FrameworkID{}, control.Frameworks...),
				Architecture: req.Architecture,
				Timestamp:    now,
				BeforeStatus: string(before),
				AfterStatus:  string(snap.Status),
				PackID:       pack.ID,
				SessionID:    req.SessionID,
			})
		}
	}
	if s.metrics != nil {
		s.metrics.IncrementPacksGenerated()
		s.metrics.ObservePackGeneration(now.Sub(started).Seconds())
	}
	s.logger.InfoContext(ctx, "assurance pack generated",
		slog.String("pack_id", string(pack.ID)),
		slog.Int("controls", len(controls)),
		slog.String("content_hash", pack.ContentHash))

	return &pack, nil
}

// GetPack returns a stored pack exactly as generated.
func (s *Service) GetPack(ctx context.Context, packID id.PackID) (*Pack, error) {
	pack, err := s.store.Get(ctx, packID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "pack %s not found", packID)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load pack")
	}
	return pack, nil
}

// ListPacks returns all stored packs, most recent first.
func (s *Service) ListPacks(ctx context.Context) ([]Pack, error) {
	packs, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list packs")
	}
	return packs, nil
}

// previousStatuses returns each scoped control's status as frozen in its most
// recent earlier pack. Controls appearing in no prior pack are absent from the
// map; their first snapshot is a baseline, not a transition. A list failure
// only suppresses the diff, never the pack.
func (s *Service) previousStatuses(ctx context.Context, controls []catalog.Control) map[id.ControlID]status.Status {
	scoped := make(map[id.ControlID]bool, len(controls))
	for _, control := range controls {
		scoped[control.ID] = true
	}
	packs, err := s.store.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "load prior packs for status diff", slog.Any("error", err))
		return nil
	}
	prior := make(map[id.ControlID]status.Status)
	for _, pack := range packs {
		for _, snap := range pack.Snapshots {
			if !scoped[snap.ControlID] {
				continue
			}
			if _, seen := prior[snap.ControlID]; !seen {
				prior[snap.ControlID] = snap.Status
			}
		}
	}
	return prior
}

// owningFrameworks is the deduplicated union of the scoped controls'
// frameworks, in first-seen order.
func owningFrameworks(controls []catalog.Control) []id.FrameworkID {
	seen := make(map[id.FrameworkID]bool)
	var out []id.FrameworkID
	for _, control := range controls {
		for _, fw := range control.Frameworks {
			if !seen[fw] {
				seen[fw] = true
				out = append(out, fw)
			}
		}
	}
	return out
}

func (s *Service) resolveScope(ctx context.Context, scope Scope) ([]catalog.Control, error) {
	switch scope.Kind {
	case ScopeFramework:
		return s.catalog.ListControlsByFramework(ctx, scope.Framework)
	case ScopeControls, ScopeControl:
		controls := make([]catalog.Control, 0, len(scope.ControlIDs))
		for _, controlID := range scope.ControlIDs {
			control, err := s.catalog.GetControl(ctx, controlID)
			if err != nil {
				return nil, err
			}
			controls = append(controls, *control)
		}
		return controls, nil
	default:
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown scope kind %q", string(scope.Kind))
	}
}
