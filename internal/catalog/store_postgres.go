package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	id "sentra/pkg/domain"
	"sentra/pkg/platform/sentinel"
)

// PostgresStore persists the catalog in PostgreSQL. The version log is
// append-mostly: versions rows are inserted and never updated except for the
// active flag flip and the append-only used_in_packs column.
//
// Schema (migrations live with the deployment, not here):
//
//	CREATE TABLE controls (
//	    id             TEXT PRIMARY KEY,
//	    name           TEXT NOT NULL,
//	    description    TEXT NOT NULL,
//	    classification TEXT NOT NULL,
//	    frameworks     JSONB NOT NULL,
//	    active_version TEXT NOT NULL
//	);
//	CREATE TABLE control_versions (
//	    id                 UUID PRIMARY KEY,
//	    control_id         TEXT NOT NULL REFERENCES controls(id),
//	    label              TEXT NOT NULL,
//	    created_at         TIMESTAMPTZ NOT NULL,
//	    author             TEXT NOT NULL DEFAULT '',
//	    change_description TEXT NOT NULL,
//	    logic_text         TEXT NOT NULL,
//	    questions          JSONB NOT NULL,
//	    evidence_types     JSONB NOT NULL,
//	    active             BOOLEAN NOT NULL,
//	    used_in_packs      JSONB NOT NULL DEFAULT '[]',
//	    UNIQUE (control_id, label)
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (s *PostgresStore) CreateControl(ctx context.Context, control Control, initial ControlVersion) error {
	frameworks, err := json.Marshal(control.Frameworks)
	if err != nil {
		return fmt.Errorf("marshal frameworks: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO controls (id, name, description, classification, frameworks, active_version)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		control.ID.String(), control.Name, control.Description,
		string(control.Classification), frameworks, initial.Label.String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert control: %w", err)
	}
	initial.Active = true
	if err := insertVersion(ctx, tx, initial); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *PostgresStore) GetControl(ctx context.Context, controlID id.ControlID) (*Control, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, classification, frameworks, active_version
		FROM controls WHERE id = $1`, controlID.String())
	return scanControl(row)
}

func (s *PostgresStore) ListControls(ctx context.Context) ([]Control, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, classification, frameworks, active_version
		FROM controls ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list controls: %w", err)
	}
	defer rows.Close()

	var out []Control
	for rows.Next() {
		control, err := scanControl(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *control)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetActiveVersion(ctx context.Context, controlID id.ControlID) (*ControlVersion, error) {
	row := s.db.QueryRowContext(ctx, versionSelect+` WHERE control_id = $1 AND active`, controlID.String())
	return scanVersion(row)
}

func (s *PostgresStore) ListVersions(ctx context.Context, controlID id.ControlID) ([]ControlVersion, error) {
	// Guard against unknown controls: an empty result set is indistinguishable
	// from a control that has no rows.
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM controls WHERE id = $1)`, controlID.String()).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check control: %w", err)
	}
	if !exists {
		return nil, sentinel.ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx, versionSelect+`
		WHERE control_id = $1 ORDER BY created_at DESC, label DESC`, controlID.String())
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var out []ControlVersion
	for rows.Next() {
		version, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *version)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CreateVersion(ctx context.Context, version ControlVersion, expectedPrev id.VersionLabel) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// The compare-and-swap: the row update only matches while the previous
	// label is still the active one.
	res, err := tx.ExecContext(ctx, `
		UPDATE controls SET active_version = $1
		WHERE id = $2 AND active_version = $3`,
		version.Label.String(), version.ControlID.String(), expectedPrev.String(),
	)
	if err != nil {
		return fmt.Errorf("swap active version: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM controls WHERE id = $1)`, version.ControlID.String()).Scan(&exists); err != nil {
			return fmt.Errorf("check control: %w", err)
		}
		if !exists {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE control_versions SET active = FALSE
		WHERE control_id = $1 AND active`, version.ControlID.String()); err != nil {
		return fmt.Errorf("deactivate previous version: %w", err)
	}
	version.Active = true
	if err := insertVersion(ctx, tx, version); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *PostgresStore) AttachPack(ctx context.Context, controlID id.ControlID, label id.VersionLabel, packID id.PackID) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE control_versions
		SET used_in_packs = used_in_packs || to_jsonb($1::text)
		WHERE control_id = $2 AND label = $3`,
		packID.String(), controlID.String(), label.String(),
	)
	if err != nil {
		return fmt.Errorf("attach pack: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

const versionSelect = `
	SELECT id, control_id, label, created_at, author, change_description,
	       logic_text, questions, evidence_types, active, used_in_packs
	FROM control_versions`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertVersion(ctx context.Context, tx execer, version ControlVersion) error {
	questions, err := json.Marshal(sliceOrEmpty(version.Questions))
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	evidenceTypes, err := json.Marshal(sliceOrEmpty(version.EvidenceTypes))
	if err != nil {
		return fmt.Errorf("marshal evidence types: %w", err)
	}
	packs, err := json.Marshal(packIDsOrEmpty(version.UsedInPacks))
	if err != nil {
		return fmt.Errorf("marshal pack refs: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO control_versions
		    (id, control_id, label, created_at, author, change_description,
		     logic_text, questions, evidence_types, active, used_in_packs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		version.ID.String(), version.ControlID.String(), version.Label.String(),
		version.CreatedAt, version.Author, version.ChangeDescription,
		version.LogicText, questions, evidenceTypes, version.Active, packs,
	)
	if err != nil {
		return fmt.Errorf("insert version: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanControl(row rowScanner) (*Control, error) {
	var (
		control       Control
		rawID         string
		classStr      string
		frameworksRaw []byte
		activeLabel   string
	)
	err := row.Scan(&rawID, &control.Name, &control.Description, &classStr, &frameworksRaw, &activeLabel)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan control: %w", err)
	}
	control.ID = id.ControlID(rawID)
	control.Classification = Classification(classStr)
	control.ActiveVersion = id.VersionLabel(activeLabel)
	if err := json.Unmarshal(frameworksRaw, &control.Frameworks); err != nil {
		return nil, fmt.Errorf("unmarshal frameworks: %w", err)
	}
	return &control, nil
}

func scanVersion(row rowScanner) (*ControlVersion, error) {
	var (
		version          ControlVersion
		rawID            string
		rawControlID     string
		rawLabel         string
		questionsRaw     []byte
		evidenceTypesRaw []byte
		packsRaw         []byte
	)
	err := row.Scan(&rawID, &rawControlID, &rawLabel, &version.CreatedAt, &version.Author,
		&version.ChangeDescription, &version.LogicText, &questionsRaw, &evidenceTypesRaw,
		&version.Active, &packsRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan version: %w", err)
	}
	parsed, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse version id: %w", err)
	}
	version.ID = id.VersionID(parsed)
	version.ControlID = id.ControlID(rawControlID)
	version.Label = id.VersionLabel(rawLabel)
	if err := json.Unmarshal(questionsRaw, &version.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	if err := json.Unmarshal(evidenceTypesRaw, &version.EvidenceTypes); err != nil {
		return nil, fmt.Errorf("unmarshal evidence types: %w", err)
	}
	var packs []string
	if err := json.Unmarshal(packsRaw, &packs); err != nil {
		return nil, fmt.Errorf("unmarshal pack refs: %w", err)
	}
	for _, p := range packs {
		version.UsedInPacks = append(version.UsedInPacks, id.PackID(p))
	}
	return &version, nil
}

func sliceOrEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func packIDsOrEmpty(in []id.PackID) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		out = append(out, p.String())
	}
	return out
}
