package timeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "sentra/pkg/domain"
)

type capturingPublisher struct {
	mu        sync.Mutex
	published []Event
	failFirst bool
	calls     int
}

func (p *capturingPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.failFirst && p.calls == 1 {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, event)
	return nil
}

func (p *capturingPublisher) snapshot() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.published...)
}

func Test_Worker_DrainsOutbox(t *testing.T) {
	publisher := &capturingPublisher{}
	inbox := make(chan Event, 4)
	worker := NewWorker(publisher, inbox, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- statusChange("SWIFT-2.8", streamBase)
	inbox <- statusChange("SWIFT-1.1", streamBase.Add(time.Minute))

	require.Eventually(t, func() bool {
		return len(publisher.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	published := publisher.snapshot()
	assert.Equal(t, id.ControlID("SWIFT-2.8"), published[0].ControlID)
	assert.Equal(t, id.ControlID("SWIFT-1.1"), published[1].ControlID)
}

// A publish failure skips the event and keeps draining; the store already
// holds it.
func Test_Worker_SurvivesPublishFailure(t *testing.T) {
	publisher := &capturingPublisher{failFirst: true}
	inbox := make(chan Event, 4)
	worker := NewWorker(publisher, inbox, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	inbox <- statusChange("SWIFT-2.8", streamBase)
	inbox <- statusChange("SWIFT-1.1", streamBase.Add(time.Minute))

	require.Eventually(t, func() bool {
		return len(publisher.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, id.ControlID("SWIFT-1.1"), publisher.snapshot()[0].ControlID)
}
