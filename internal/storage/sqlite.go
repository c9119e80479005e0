package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/matsen/citeline/internal/citation"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectCitationFields contains the standard field list for SELECT queries.
const selectCitationFields = `key, title, authors_json, year,
	journal, volume, pages, doi,
	linked_entities_json, ordinal, created_at`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS citations (
			key TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			authors_json TEXT NOT NULL,
			year INTEGER,
			journal TEXT,
			volume TEXT,
			pages TEXT,
			doi TEXT,
			linked_entities_json TEXT,
			ordinal INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_citations_doi ON citations(doi)
			WHERE doi IS NOT NULL AND doi != '';

		CREATE TABLE IF NOT EXISTS usages (
			id TEXT PRIMARY KEY,
			citation_key TEXT NOT NULL REFERENCES citations(key),
			context_text TEXT,
			section TEXT,
			confidence REAL NOT NULL,
			recorded_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_usages_citation_key ON usages(citation_key);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromSnapshot clears the database and repopulates it from a
// snapshot. Returns the number of citations written.
func (d *DB) RebuildFromSnapshot(snap citation.Snapshot) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM usages"); err != nil {
		return 0, fmt.Errorf("clearing usages table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM citations"); err != nil {
		return 0, fmt.Errorf("clearing citations table: %w", err)
	}

	citeStmt, err := tx.Prepare(`
		INSERT INTO citations (` + selectCitationFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing citation insert: %w", err)
	}
	defer citeStmt.Close()

	for _, c := range snap.Citations {
		authorsJSON, err := json.Marshal(c.Authors)
		if err != nil {
			return 0, fmt.Errorf("encoding authors for %s: %w", c.Key, err)
		}
		entitiesJSON, err := json.Marshal(c.LinkedEntities)
		if err != nil {
			return 0, fmt.Errorf("encoding entities for %s: %w", c.Key, err)
		}
		if _, err := citeStmt.Exec(
			c.Key, c.Title, string(authorsJSON), c.Year,
			c.Journal, c.Volume, c.Pages, c.DOI,
			string(entitiesJSON), c.Ordinal, c.CreatedAt.Format(time.RFC3339Nano),
		); err != nil {
			return 0, fmt.Errorf("inserting citation %s: %w", c.Key, err)
		}
	}

	usageStmt, err := tx.Prepare(`
		INSERT INTO usages (id, citation_key, context_text, section, confidence, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing usage insert: %w", err)
	}
	defer usageStmt.Close()

	for _, rec := range snap.Usages {
		if _, err := usageStmt.Exec(
			rec.ID, rec.CitationKey, rec.ContextText, rec.Section,
			rec.Confidence, rec.RecordedAt.Format(time.RFC3339Nano),
		); err != nil {
			return 0, fmt.Errorf("inserting usage %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(snap.Citations), nil
}

// GetByKey returns the citation stored under key, or nil if absent.
func (d *DB) GetByKey(key string) (*citation.Citation, error) {
	row := d.db.QueryRow(
		"SELECT "+selectCitationFields+" FROM citations WHERE key = ?", key)
	c, err := scanCitation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying citation %s: %w", key, err)
	}
	return c, nil
}

// SearchTitle returns citations whose title contains the query,
// case-insensitively, ordered by key.
func (d *DB) SearchTitle(query string) ([]citation.Citation, error) {
	rows, err := d.db.Query(
		"SELECT "+selectCitationFields+" FROM citations WHERE title LIKE ? ORDER BY key",
		"%"+strings.TrimSpace(query)+"%")
	if err != nil {
		return nil, fmt.Errorf("searching citations: %w", err)
	}
	defer rows.Close()

	var cites []citation.Citation
	for rows.Next() {
		c, err := scanCitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning citation: %w", err)
		}
		cites = append(cites, *c)
	}
	return cites, rows.Err()
}

// CountCitations returns the number of citations in the database.
func (d *DB) CountCitations() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM citations").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting citations: %w", err)
	}
	return n, nil
}

// CountUsages returns the number of usage records in the database.
func (d *DB) CountUsages() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM usages").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting usages: %w", err)
	}
	return n, nil
}

// scanner abstracts sql.Row and sql.Rows for scanCitation.
type scanner interface {
	Scan(dest ...any) error
}

// scanCitation reads one citation row in selectCitationFields order.
func scanCitation(s scanner) (*citation.Citation, error) {
	var c citation.Citation
	var authorsJSON, entitiesJSON, createdAt string

	if err := s.Scan(
		&c.Key, &c.Title, &authorsJSON, &c.Year,
		&c.Journal, &c.Volume, &c.Pages, &c.DOI,
		&entitiesJSON, &c.Ordinal, &createdAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(authorsJSON), &c.Authors); err != nil {
		return nil, fmt.Errorf("decoding authors: %w", err)
	}
	if entitiesJSON != "" && entitiesJSON != "null" {
		if err := json.Unmarshal([]byte(entitiesJSON), &c.LinkedEntities); err != nil {
			return nil, fmt.Errorf("decoding linked entities: %w", err)
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		c.CreatedAt = t
	}
	return &c, nil
}
