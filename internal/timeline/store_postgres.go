package timeline

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// PostgresStore persists the event stream in a single append-only table.
//
// Expected schema:
//
//	CREATE TABLE timeline_events (
//	    id          UUID PRIMARY KEY,
//	    event_type  TEXT NOT NULL,
//	    occurred_at TIMESTAMPTZ NOT NULL,
//	    payload     JSONB NOT NULL
//	);
//	CREATE INDEX timeline_events_occurred_at_idx ON timeline_events (occurred_at);
//
// The full event rides in payload; event_type and occurred_at are lifted
// into columns for indexing and ad hoc inspection.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal timeline event: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO timeline_events (id, event_type, occurred_at, payload)
		VALUES ($1, $2, $3, $4)`,
		event.ID, string(event.Type), event.Timestamp, payload,
	)
	if err != nil {
		return fmt.Errorf("insert timeline event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRange(ctx context.Context, start, end time.Time) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM timeline_events
		WHERE occurred_at >= $1 AND occurred_at <= $2
		ORDER BY occurred_at, id`, start, end)
	if err != nil {
		return nil, fmt.Errorf("select timeline events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan timeline event: %w", err)
		}
		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("unmarshal timeline event: %w", err)
		}
		out = append(out, event)
	}
	return out, rows.Err()
}
