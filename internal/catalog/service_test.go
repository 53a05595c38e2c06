package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentra/internal/timeline"
	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
	"sentra/pkg/requestcontext"
)

var seedTime = time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

func newSeededService(t *testing.T, opts ...Option) (*Service, *InMemoryStore) {
	t.Helper()
	store := NewInMemoryStore()
	require.NoError(t, Seed(context.Background(), store, seedTime))
	return NewService(store, opts...), store
}

func validInput() VersionInput {
	return VersionInput{
		ChangeDescription: "Tightened MFA requirements for privileged operators",
		LogicText:         "All privileged operator access requires hardware-token MFA.",
		Questions:         []string{"SWIFT-2.8.a.1", "SWIFT-2.8.a.2"},
		EvidenceTypes:     []string{"MFA configuration export"},
	}
}

// recordingRecorder captures timeline events for assertions.
type recordingRecorder struct {
	mu     sync.Mutex
	events []timeline.Event
}

func (r *recordingRecorder) Record(_ context.Context, event timeline.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func Test_CreateVersion_AdvancesLabelAndActivates(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := requestcontext.WithActorID(context.Background(), "auditor-7")

	version, err := svc.CreateVersion(ctx, "SWIFT-2.8", validInput())
	require.NoError(t, err)
	assert.Equal(t, id.VersionLabel("v1.1"), version.Label)
	assert.Equal(t, "auditor-7", version.Author)
	assert.True(t, version.Active)

	active, err := svc.GetActiveVersion(ctx, "SWIFT-2.8")
	require.NoError(t, err)
	assert.Equal(t, id.VersionLabel("v1.1"), active.Label)

	// The superseded version survives in the history, deactivated.
	versions, err := svc.ListVersions(ctx, "SWIFT-2.8")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, id.VersionLabel("v1.1"), versions[0].Label)
	assert.True(t, versions[0].Active)
	assert.Equal(t, id.VersionLabel("v1.0"), versions[1].Label)
	assert.False(t, versions[1].Active)
}

func Test_CreateVersion_MonotonicLabels(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	want := []id.VersionLabel{"v1.1", "v1.2", "v1.3"}
	for _, label := range want {
		version, err := svc.CreateVersion(ctx, "SWIFT-1.1", validInput())
		require.NoError(t, err)
		assert.Equal(t, label, version.Label)
	}
}

func Test_CreateVersion_ValidationRejectsEmptyFields(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	input := validInput()
	input.ChangeDescription = "   "
	_, err := svc.CreateVersion(ctx, "SWIFT-1.1", input)
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))

	input = validInput()
	input.LogicText = ""
	_, err = svc.CreateVersion(ctx, "SWIFT-1.1", input)
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))

	// Nothing was created.
	versions, err := svc.ListVersions(ctx, "SWIFT-1.1")
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

func Test_CreateVersion_UnknownControl(t *testing.T) {
	svc, _ := newSeededService(t)

	_, err := svc.CreateVersion(context.Background(), "MADE-UP-9.9", validInput())
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func Test_CreateVersion_LostRaceIsConflict(t *testing.T) {
	svc, store := newSeededService(t)
	ctx := context.Background()

	// Simulate a concurrent writer advancing the control between our read of
	// the active version and our write.
	active, err := store.GetActiveVersion(ctx, "SWIFT-2.8")
	require.NoError(t, err)
	racing := *active
	racing.ID = id.NewVersionID()
	racing.Label = "v1.1"
	require.NoError(t, store.CreateVersion(ctx, racing, active.Label))

	stale := *active
	stale.ID = id.NewVersionID()
	stale.Label = "v1.1"
	err = store.CreateVersion(ctx, stale, active.Label)
	require.Error(t, err)

	// Through the service, the same race surfaces as CodeConflict and the
	// retry path (re-read, then create) succeeds.
	_, err = svc.CreateVersion(ctx, "SWIFT-2.8", validInput())
	require.NoError(t, err)
}

func Test_CreateVersion_ConcurrentWritersSingleActive(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.CreateVersion(ctx, "SWIFT-3.1", validInput()); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			} else {
				assert.True(t, dErrors.Is(err, dErrors.CodeConflict))
			}
		}()
	}
	wg.Wait()
	require.Greater(t, created, 0)

	// However the race resolved, exactly one version is active and the
	// active label reflects the number of successful writes.
	versions, err := svc.ListVersions(ctx, "SWIFT-3.1")
	require.NoError(t, err)
	activeCount := 0
	for _, v := range versions {
		if v.Active {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
	assert.Len(t, versions, created+1)
}

func Test_CreateVersion_EmitsTimelineEvent(t *testing.T) {
	recorder := &recordingRecorder{}
	svc, _ := newSeededService(t, WithRecorder(recorder))
	ctx := requestcontext.WithActorID(context.Background(), "auditor-7")

	_, err := svc.CreateVersion(ctx, "SWIFT-2.8", validInput())
	require.NoError(t, err)

	require.Len(t, recorder.events, 1)
	event := recorder.events[0]
	assert.Equal(t, timeline.EventVersionCreated, event.Type)
	assert.Equal(t, id.ControlID("SWIFT-2.8"), event.ControlID)
	assert.Equal(t, "Multi-Factor Authentication", event.ControlName)
	assert.Equal(t, []id.FrameworkID{id.FrameworkSWIFTCSP, id.FrameworkSOC2}, event.Frameworks)
	assert.Equal(t, "v1.1", event.Metadata["label"])
	assert.Equal(t, "v1.0", event.Metadata["previous_label"])
	assert.Equal(t, "auditor-7", event.Metadata["author"])
}

// Version events must be reachable through a framework-filtered timeline
// query, under every framework that owns the control.
func Test_CreateVersion_EventQueryableByFramework(t *testing.T) {
	stream := timeline.NewService(timeline.NewInMemoryStore())
	svc, _ := newSeededService(t, WithRecorder(stream))
	ctx := requestcontext.WithTime(context.Background(), seedTime.Add(time.Hour))

	_, err := svc.CreateVersion(ctx, "SWIFT-2.8", validInput())
	require.NoError(t, err)

	window := timeline.Filter{Start: seedTime, End: seedTime.Add(2 * time.Hour)}
	for _, framework := range []id.FrameworkID{id.FrameworkSWIFTCSP, id.FrameworkSOC2} {
		filter := window
		filter.Framework = framework
		result, err := stream.Query(ctx, filter)
		require.NoError(t, err)
		require.Len(t, result.Events, 1, "framework %s", framework)
		assert.Equal(t, id.ControlID("SWIFT-2.8"), result.Events[0].ControlID)
	}

	offTopic := window
	offTopic.Framework = "PCI_DSS"
	result, err := stream.Query(ctx, offTopic)
	require.NoError(t, err)
	assert.Empty(t, result.Events)
}

func Test_ListControlsByFramework(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	swift, err := svc.ListControlsByFramework(ctx, id.FrameworkSWIFTCSP)
	require.NoError(t, err)
	soc2, err := svc.ListControlsByFramework(ctx, id.FrameworkSOC2)
	require.NoError(t, err)

	assert.NotEmpty(t, swift)
	assert.NotEmpty(t, soc2)

	// Shared controls appear under both owning frameworks.
	hasControl := func(controls []Control, controlID id.ControlID) bool {
		for _, c := range controls {
			if c.ID == controlID {
				return true
			}
		}
		return false
	}
	assert.True(t, hasControl(swift, "SWIFT-2.8"))
	assert.True(t, hasControl(soc2, "SWIFT-2.8"))
	assert.False(t, hasControl(swift, "SOC2-CC8.1"))
}

func Test_Overlaps(t *testing.T) {
	svc, _ := newSeededService(t, WithOverlaps(DefaultOverlaps()))

	assert.Equal(t, []id.ControlID{"SOC2-CC6.2"}, svc.Overlaps("SWIFT-2.8"))
	assert.Equal(t, []id.ControlID{"SWIFT-2.8"}, svc.Overlaps("SOC2-CC6.2"))
	assert.Empty(t, svc.Overlaps("SWIFT-1.1"))
}

func Test_AttachPack_AppendsReference(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	require.NoError(t, svc.AttachPack(ctx, "SWIFT-2.8", "v1.0", "PACK-20260115-080000-abc"))

	versions, err := svc.ListVersions(ctx, "SWIFT-2.8")
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, []id.PackID{"PACK-20260115-080000-abc"}, versions[0].UsedInPacks)
}
