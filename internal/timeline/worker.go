package timeline

import (
	"context"
	"log/slog"
)

// Worker drains the service outbox into a Publisher. Publish failures are
// logged and skipped: the store already holds the event, and the stream is
// a fan-out convenience, not the system of record.
type Worker struct {
	publisher Publisher
	inbox     <-chan Event
	logger    *slog.Logger
}

func NewWorker(publisher Publisher, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{publisher: publisher, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.publisher.Publish(ctx, event); err != nil {
				w.logger.Error("timeline publish failed",
					"event_type", string(event.Type),
					"error", err.Error(),
				)
			}
		}
	}
}
