// Package store persists component revisions. Storage is append-only:
// every save creates a new revision with a monotonically increasing version
// number per owner/component pair and a minimal changeset descriptor. The
// editor core never assigns or validates version numbers; it hands source
// text in and out as opaque strings.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Schema for the revisions table.
const Schema = `
CREATE TABLE IF NOT EXISTS revisions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	owner TEXT NOT NULL,
	component TEXT NOT NULL,
	version INTEGER NOT NULL,
	source TEXT NOT NULL,
	changeset TEXT NOT NULL DEFAULT '{}',
	created_at INTEGER NOT NULL,
	UNIQUE(owner, component, version)
);
CREATE INDEX IF NOT EXISTS idx_revisions_component ON revisions(owner, component, version DESC);
`

// ErrNotFound is returned when no revision matches a query.
var ErrNotFound = errors.New("store: revision not found")

// Changeset is the minimal descriptor of what one revision changed.
type Changeset struct {
	ElementID string `json:"elementId,omitempty"`
	Property  string `json:"property,omitempty"`
	Value     string `json:"value,omitempty"`
	Note      string `json:"note,omitempty"`
}

// Revision is one stored component revision.
type Revision struct {
	Owner     string    `json:"owner"`
	Component string    `json:"component"`
	Version   int64     `json:"version"`
	Source    string    `json:"source"`
	Changeset Changeset `json:"changeset"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is the SQLite-backed revision store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at path and applies the schema.
// Pass ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	// SQLite handles one writer at a time; serialize at the pool level.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRevision appends a new revision and returns its assigned version
// number. Versions start at 1 and increase by one per owner/component.
func (s *Store) SaveRevision(ctx context.Context, owner, component, source string, change Changeset) (int64, error) {
	descriptor, err := json.Marshal(change)
	if err != nil {
		return 0, fmt.Errorf("encoding changeset: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("saving revision: %w", err)
	}
	defer tx.Rollback()

	var version int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM revisions WHERE owner = ? AND component = ?`,
		owner, component).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("assigning version: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO revisions (owner, component, version, source, changeset, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		owner, component, version, source, string(descriptor), time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("inserting revision: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("saving revision: %w", err)
	}
	return version, nil
}

// Latest returns the newest revision for an owner/component.
func (s *Store) Latest(ctx context.Context, owner, component string) (*Revision, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT owner, component, version, source, changeset, created_at
		 FROM revisions WHERE owner = ? AND component = ?
		 ORDER BY version DESC LIMIT 1`, owner, component)
	return scanRevision(row)
}

// Get returns one specific revision.
func (s *Store) Get(ctx context.Context, owner, component string, version int64) (*Revision, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT owner, component, version, source, changeset, created_at
		 FROM revisions WHERE owner = ? AND component = ? AND version = ?`,
		owner, component, version)
	return scanRevision(row)
}

// History returns all revisions for an owner/component, newest first.
func (s *Store) History(ctx context.Context, owner, component string) ([]*Revision, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT owner, component, version, source, changeset, created_at
		 FROM revisions WHERE owner = ? AND component = ?
		 ORDER BY version DESC`, owner, component)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	defer rows.Close()

	var history []*Revision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, rev)
	}
	return history, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRevision(row scanner) (*Revision, error) {
	var rev Revision
	var descriptor string
	var created int64
	err := row.Scan(&rev.Owner, &rev.Component, &rev.Version, &rev.Source, &descriptor, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading revision: %w", err)
	}
	if err := json.Unmarshal([]byte(descriptor), &rev.Changeset); err != nil {
		return nil, fmt.Errorf("decoding changeset: %w", err)
	}
	rev.CreatedAt = time.Unix(created, 0)
	return &rev, nil
}
