package evidence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentra/internal/catalog"
	"sentra/internal/timeline"
	id "sentra/pkg/domain"
	dErrors "sentra/pkg/domain-errors"
	"sentra/pkg/requestcontext"
)

var uploadedAt = time.Date(2026, time.April, 2, 14, 0, 0, 0, time.UTC)

type recordingRecorder struct {
	mu     sync.Mutex
	events []timeline.Event
}

func (r *recordingRecorder) Record(_ context.Context, event timeline.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func newTestService(t *testing.T) (*Service, *recordingRecorder) {
	t.Helper()
	store := catalog.NewInMemoryStore()
	require.NoError(t, catalog.Seed(context.Background(), store, uploadedAt.AddDate(-1, 0, 0)))

	recorder := &recordingRecorder{}
	return NewService(NewInMemoryStore(), catalog.NewService(store), WithRecorder(recorder)), recorder
}

func attachCtx() context.Context {
	ctx := requestcontext.WithActorID(context.Background(), "auditor-3")
	return requestcontext.WithTime(ctx, uploadedAt)
}

func validAttach() AttachInput {
	return AttachInput{
		ControlID: "SWIFT-2.8",
		Type:      "MFA configuration export",
		FileName:  "mfa-config-2026-04.pdf",
	}
}

func Test_Attach(t *testing.T) {
	svc, recorder := newTestService(t)

	item, err := svc.Attach(attachCtx(), validAttach())
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, id.ControlID("SWIFT-2.8"), item.ControlID)
	assert.Equal(t, "auditor-3", item.UploadedBy)
	assert.Equal(t, uploadedAt, item.UploadedAt)

	require.Len(t, recorder.events, 1)
	event := recorder.events[0]
	assert.Equal(t, timeline.EventEvidenceAdded, event.Type)
	assert.Equal(t, item.ID, event.EvidenceID)
	assert.Equal(t, "Multi-Factor Authentication", event.ControlName)
	assert.Equal(t, []id.FrameworkID{id.FrameworkSWIFTCSP, id.FrameworkSOC2}, event.Frameworks)
	assert.Equal(t, "MFA configuration export", event.Metadata["evidence_type"])
	assert.Equal(t, "mfa-config-2026-04.pdf", event.Metadata["file_name"])
}

func Test_Attach_UnknownControl(t *testing.T) {
	svc, recorder := newTestService(t)

	input := validAttach()
	input.ControlID = "MADE-UP-9.9"
	_, err := svc.Attach(attachCtx(), input)

	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound), "got %v", err)
	assert.Empty(t, recorder.events)
}

func Test_Attach_Validation(t *testing.T) {
	svc, recorder := newTestService(t)

	tests := []struct {
		name   string
		mutate func(*AttachInput)
	}{
		{"missing control", func(in *AttachInput) { in.ControlID = "" }},
		{"missing type", func(in *AttachInput) { in.Type = "  " }},
		{"missing file name", func(in *AttachInput) { in.FileName = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validAttach()
			tt.mutate(&input)

			_, err := svc.Attach(attachCtx(), input)
			assert.True(t, dErrors.Is(err, dErrors.CodeValidation), "got %v", err)
		})
	}
	assert.Empty(t, recorder.events)
}

func Test_Detach(t *testing.T) {
	svc, recorder := newTestService(t)
	ctx := attachCtx()

	item, err := svc.Attach(ctx, validAttach())
	require.NoError(t, err)

	require.NoError(t, svc.Detach(ctx, item.ID))

	items, err := svc.ListForControl(ctx, "SWIFT-2.8")
	require.NoError(t, err)
	assert.Empty(t, items)

	require.Len(t, recorder.events, 2)
	removed := recorder.events[1]
	assert.Equal(t, timeline.EventEvidenceRemoved, removed.Type)
	assert.Equal(t, item.ID, removed.EvidenceID)
	assert.Equal(t, id.ControlID("SWIFT-2.8"), removed.ControlID)
	assert.Equal(t, []id.FrameworkID{id.FrameworkSWIFTCSP, id.FrameworkSOC2}, removed.Frameworks)
}

func Test_Detach_Unknown(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Detach(attachCtx(), "no-such-evidence")
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func Test_ListForControl(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Attach(attachCtx(), validAttach())
	require.NoError(t, err)

	later := requestcontext.WithTime(context.Background(), uploadedAt.Add(time.Hour))
	second, err := svc.Attach(later, AttachInput{
		ControlID: "SWIFT-2.8",
		Type:      "Access review report",
		FileName:  "access-review-q2.xlsx",
	})
	require.NoError(t, err)

	_, err = svc.Attach(attachCtx(), AttachInput{
		ControlID: "SWIFT-1.1",
		Type:      "Firewall ruleset",
		FileName:  "fw-rules.txt",
	})
	require.NoError(t, err)

	items, err := svc.ListForControl(context.Background(), "SWIFT-2.8")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
}
