// Package history persists build records to a local SQLite database, giving
// watch mode and the CLI a queryable record of past bundle builds.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/helpbundler/internal/errors"
)

// Entry is one persisted build record.
type Entry struct {
	BuildID    string            `json:"build_id"`
	BundleName string            `json:"bundle_name"`
	StartedAt  time.Time         `json:"started_at"`
	DurationMS int64             `json:"duration_ms"`
	Status     string            `json:"status"` // success|warning|failed|canceled
	Documents  int               `json:"documents"`
	Pages      int               `json:"pages"`
	Assets     int               `json:"assets"`
	Warnings   []string          `json:"warnings,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
}

// Store is a SQLite-backed build history.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore opens (and creates if needed) the history database. Use ":memory:"
// for an ephemeral store.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryHistory, "failed to open history database").
			WithContext("path", dbPath).Build()
	}
	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.WrapError(err, errors.CategoryHistory, "failed to initialize history schema").Build()
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		build_id TEXT PRIMARY KEY,
		bundle_name TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		status TEXT NOT NULL,
		documents INTEGER NOT NULL,
		pages INTEGER NOT NULL,
		assets INTEGER NOT NULL,
		warnings TEXT,
		details TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started ON builds(started_at);
	CREATE INDEX IF NOT EXISTS idx_builds_bundle ON builds(bundle_name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record inserts one build entry.
func (s *Store) Record(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	warnings, err := marshalOrNil(e.Warnings)
	if err != nil {
		return errors.WrapError(err, errors.CategoryHistory, "failed to marshal warnings").Build()
	}
	details, err := marshalOrNil(e.Details)
	if err != nil {
		return errors.WrapError(err, errors.CategoryHistory, "failed to marshal details").Build()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO builds (build_id, bundle_name, started_at, duration_ms, status, documents, pages, assets, warnings, details)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.BuildID, e.BundleName, e.StartedAt.Unix(), e.DurationMS, e.Status,
		e.Documents, e.Pages, e.Assets, warnings, details,
	)
	if err != nil {
		return errors.WrapError(err, errors.CategoryHistory, "failed to insert build record").
			WithContext("build_id", e.BuildID).Build()
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT build_id, bundle_name, started_at, duration_ms, status, documents, pages, assets, warnings, details
		 FROM builds ORDER BY started_at DESC, build_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryHistory, "failed to query build records").Build()
	}
	defer func() { _ = rows.Close() }()
	return scanEntries(rows)
}

// ByID returns one build entry by its build id.
func (s *Store) ByID(ctx context.Context, buildID string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT build_id, bundle_name, started_at, duration_ms, status, documents, pages, assets, warnings, details
		 FROM builds WHERE build_id = ?`, buildID)
	if err != nil {
		return Entry{}, false, errors.WrapError(err, errors.CategoryHistory, "failed to query build record").
			WithContext("build_id", buildID).Build()
	}
	defer func() { _ = rows.Close() }()

	entries, err := scanEntries(rows)
	if err != nil {
		return Entry{}, false, err
	}
	if len(entries) == 0 {
		return Entry{}, false, nil
	}
	return entries[0], true, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var started int64
		var warnings, details []byte
		if err := rows.Scan(&e.BuildID, &e.BundleName, &started, &e.DurationMS, &e.Status,
			&e.Documents, &e.Pages, &e.Assets, &warnings, &details); err != nil {
			return nil, errors.WrapError(err, errors.CategoryHistory, "failed to scan build record").Build()
		}
		e.StartedAt = time.Unix(started, 0).UTC()
		if len(warnings) > 0 {
			if err := json.Unmarshal(warnings, &e.Warnings); err != nil {
				return nil, errors.WrapError(err, errors.CategoryHistory, "failed to unmarshal warnings").Build()
			}
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, errors.WrapError(err, errors.CategoryHistory, "failed to unmarshal details").Build()
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func marshalOrNil(v any) ([]byte, error) {
	switch value := v.(type) {
	case []string:
		if len(value) == 0 {
			return nil, nil
		}
	case map[string]string:
		if len(value) == 0 {
			return nil, nil
		}
	}
	return json.Marshal(v)
}
