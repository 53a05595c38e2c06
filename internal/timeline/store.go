package timeline

import (
	"context"
	"time"
)

// Store persists the append-only event stream. Implementations must never
// surface a torn event: an event is either fully visible to ListRange or not
// visible at all.
type Store interface {
	Append(ctx context.Context, event Event) error

	// ListRange returns events with start <= Timestamp <= end, ordered by
	// timestamp ascending. Attribute filtering happens in the service.
	ListRange(ctx context.Context, start, end time.Time) ([]Event, error)
}
