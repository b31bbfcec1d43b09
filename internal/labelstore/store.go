// Package labelstore persists per-document label registries in SQLite.
//
// A document's labels are always saved wholesale, replacing whatever was
// stored for it before; there is no incremental update.
package labelstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jcorbin/listnum/numbering"
	"github.com/jcorbin/listnum/pipeline"
)

// SchemaVersion is the current schema version.
const SchemaVersion = "1"

var (
	// ErrSchemaVersion is returned when opening a database with an
	// unsupported schema version.
	ErrSchemaVersion = errors.New("unsupported schema version")

	// ErrNotFound is returned when loading an unknown document.
	ErrNotFound = errors.New("document not found")
)

// Label kinds as stored.
const (
	kindExample = "example"
	kindCustom  = "custom"
)

// Snapshot is the stored registry state of one document.
type Snapshot struct {
	Name         string
	Revision     string
	Examples     []numbering.Entry
	CustomLabels []numbering.Entry
	Placeholders []numbering.Placeholder
}

// SnapshotOf captures the registries of a recompute result.
func SnapshotOf(name string, res *pipeline.Result) Snapshot {
	return Snapshot{
		Name:         name,
		Revision:     res.Revision,
		Examples:     res.Examples,
		CustomLabels: res.CustomLabels,
		Placeholders: res.Placeholders,
	}
}

// Document summarizes one stored document.
type Document struct {
	Name     string
	Revision string
	Labels   int
}

// Store is a SQLite backed label store.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens, creating if necessary, the store database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			revision TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS labels (
			document TEXT NOT NULL,
			kind TEXT NOT NULL,
			seq INTEGER NOT NULL,
			raw TEXT NOT NULL,
			label TEXT NOT NULL,
			number INTEGER NOT NULL,
			content TEXT NOT NULL,
			line INTEGER NOT NULL,
			duplicate INTEGER NOT NULL,
			PRIMARY KEY (document, kind, seq)
		);
		CREATE TABLE IF NOT EXISTS placeholders (
			document TEXT NOT NULL,
			seq INTEGER NOT NULL,
			name TEXT NOT NULL,
			number INTEGER NOT NULL,
			PRIMARY KEY (document, seq)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	s := &Store{db: db}
	version, err := s.metadata(ctx, "schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	switch version {
	case "":
		if err := s.setMetadata(ctx, "schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	case SchemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("%w: %s (expected %s)", ErrSchemaVersion, version, SchemaVersion)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) metadata(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

func (s *Store) setMetadata(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// Save replaces everything stored for the snapshot's document.
func (s *Store) Save(ctx context.Context, snap Snapshot) (rerr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if rerr != nil {
			tx.Rollback()
		}
	}()

	if err := deleteDocument(ctx, tx, snap.Name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO documents (name, revision) VALUES (?, ?)",
		snap.Name, snap.Revision,
	); err != nil {
		return fmt.Errorf("saving document %q: %w", snap.Name, err)
	}

	for _, group := range []struct {
		kind    string
		entries []numbering.Entry
	}{
		{kindExample, snap.Examples},
		{kindCustom, snap.CustomLabels},
	} {
		for seq, ent := range group.entries {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO labels (document, kind, seq, raw, label, number, content, line, duplicate)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, snap.Name, group.kind, seq, ent.Raw, ent.Label, ent.Number, ent.Content, ent.Line, ent.Duplicate); err != nil {
				return fmt.Errorf("saving %s label %q: %w", group.kind, ent.Label, err)
			}
		}
	}

	for seq, ph := range snap.Placeholders {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO placeholders (document, seq, name, number) VALUES (?, ?, ?, ?)",
			snap.Name, seq, ph.Name, ph.Number,
		); err != nil {
			return fmt.Errorf("saving placeholder %q: %w", ph.Name, err)
		}
	}

	return tx.Commit()
}

// Load returns the stored snapshot of a document.
func (s *Store) Load(ctx context.Context, name string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Name: name}
	err := s.db.QueryRowContext(ctx, "SELECT revision FROM documents WHERE name = ?", name).Scan(&snap.Revision)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	} else if err != nil {
		return Snapshot{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, raw, label, number, content, line, duplicate
		FROM labels WHERE document = ? ORDER BY kind, seq
	`, name)
	if err != nil {
		return Snapshot{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			kind string
			ent  numbering.Entry
		)
		if err := rows.Scan(&kind, &ent.Raw, &ent.Label, &ent.Number, &ent.Content, &ent.Line, &ent.Duplicate); err != nil {
			return Snapshot{}, err
		}
		switch kind {
		case kindExample:
			snap.Examples = append(snap.Examples, ent)
		case kindCustom:
			snap.CustomLabels = append(snap.CustomLabels, ent)
		}
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}

	phRows, err := s.db.QueryContext(ctx,
		"SELECT name, number FROM placeholders WHERE document = ? ORDER BY seq", name)
	if err != nil {
		return Snapshot{}, err
	}
	defer phRows.Close()
	for phRows.Next() {
		var ph numbering.Placeholder
		if err := phRows.Scan(&ph.Name, &ph.Number); err != nil {
			return Snapshot{}, err
		}
		snap.Placeholders = append(snap.Placeholders, ph)
	}
	return snap, phRows.Err()
}

// Documents lists stored documents by name.
func (s *Store) Documents(ctx context.Context) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT d.name, d.revision, COUNT(l.seq)
		FROM documents d LEFT JOIN labels l ON l.document = d.name
		GROUP BY d.name, d.revision
		ORDER BY d.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.Name, &doc.Revision, &doc.Labels); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Delete removes everything stored for a document.
func (s *Store) Delete(ctx context.Context, name string) (rerr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if rerr != nil {
			tx.Rollback()
		}
	}()
	if err := deleteDocument(ctx, tx, name); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteDocument(ctx context.Context, tx *sql.Tx, name string) error {
	for _, query := range []string{
		"DELETE FROM placeholders WHERE document = ?",
		"DELETE FROM labels WHERE document = ?",
		"DELETE FROM documents WHERE name = ?",
	} {
		if _, err := tx.ExecContext(ctx, query, name); err != nil {
			return fmt.Errorf("clearing document %q: %w", name, err)
		}
	}
	return nil
}
