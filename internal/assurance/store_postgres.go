package assurance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"sentra/internal/status"
	id "sentra/pkg/domain"
	"sentra/pkg/platform/sentinel"
)

// PostgresStore persists packs as immutable rows.
//
// Expected schema:
//
//	CREATE TABLE assurance_packs (
//	    id           TEXT PRIMARY KEY,
//	    query        TEXT NOT NULL DEFAULT '',
//	    scope        JSONB NOT NULL,
//	    range_start  TIMESTAMPTZ NOT NULL,
//	    range_end    TIMESTAMPTZ NOT NULL,
//	    versions     JSONB NOT NULL,
//	    snapshots    JSONB NOT NULL,
//	    content_hash TEXT NOT NULL,
//	    created_at   TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, pack Pack) error {
	scope, err := json.Marshal(pack.Scope)
	if err != nil {
		return fmt.Errorf("marshal scope: %w", err)
	}
	versions, err := json.Marshal(pack.Versions)
	if err != nil {
		return fmt.Errorf("marshal versions: %w", err)
	}
	snapshots, err := json.Marshal(pack.Snapshots)
	if err != nil {
		return fmt.Errorf("marshal snapshots: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assurance_packs
			(id, query, scope, range_start, range_end, versions, snapshots, content_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(pack.ID), pack.Query, scope,
		pack.TimeRange.Start, pack.TimeRange.End,
		versions, snapshots, pack.ContentHash, pack.CreatedAt,
	)
	if isUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert pack: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, packID id.PackID) (*Pack, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, query, scope, range_start, range_end, versions, snapshots, content_hash, created_at
		FROM assurance_packs
		WHERE id = $1`,
		string(packID),
	)
	pack, err := scanPack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select pack: %w", err)
	}
	return pack, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Pack, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, scope, range_start, range_end, versions, snapshots, content_hash, created_at
		FROM assurance_packs
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("select packs: %w", err)
	}
	defer rows.Close()

	var out []Pack
	for rows.Next() {
		pack, err := scanPack(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pack: %w", err)
		}
		out = append(out, *pack)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPack(row rowScanner) (*Pack, error) {
	var (
		pack      Pack
		packID    string
		scope     []byte
		versions  []byte
		snapshots []byte
	)
	err := row.Scan(
		&packID, &pack.Query, &scope,
		&pack.TimeRange.Start, &pack.TimeRange.End,
		&versions, &snapshots, &pack.ContentHash, &pack.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	pack.ID = id.PackID(packID)
	if err := json.Unmarshal(scope, &pack.Scope); err != nil {
		return nil, fmt.Errorf("unmarshal scope: %w", err)
	}
	if err := json.Unmarshal(versions, &pack.Versions); err != nil {
		return nil, fmt.Errorf("unmarshal versions: %w", err)
	}
	if err := json.Unmarshal(snapshots, &pack.Snapshots); err != nil {
		return nil, fmt.Errorf("unmarshal snapshots: %w", err)
	}
	if pack.Snapshots == nil {
		pack.Snapshots = []status.Snapshot{}
	}
	return &pack, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
