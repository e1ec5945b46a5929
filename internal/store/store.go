// Package store caches verification verdicts in SQLite.
//
// The cache is keyed by a graph's content fingerprint, so `sigil verify
// --cache` can skip re-verifying inputs whose printed form has not
// changed. Rows are immutable: a changed graph has a new fingerprint
// and therefore a new row.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/sigil/internal/ir"
)

//go:embed schema.sql
var schemaSQL string

const currentSchemaVersion = 1

// Verdict is one cached verification outcome.
type Verdict struct {
	GraphHash   string
	GraphName   string
	OK          bool
	Diagnostics []*ir.Diagnostic
}

// Store provides durable storage for verification verdicts.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// Open creates or opens the cache database at the given path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//
// Open is idempotent; the schema is applied on every call.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to cache database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent Record calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Lookup fetches the cached verdict for a graph fingerprint. The
// second return value reports whether the fingerprint was present.
func (s *Store) Lookup(ctx context.Context, graphHash string) (*Verdict, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT graph_name, ok, diagnostics FROM verdicts WHERE graph_hash = ?`, graphHash)

	v := &Verdict{GraphHash: graphHash}
	var okInt int
	var diagJSON string
	err := row.Scan(&v.GraphName, &okInt, &diagJSON)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup verdict %s: %w", graphHash, err)
	}
	v.OK = okInt == 1
	if err := json.Unmarshal([]byte(diagJSON), &v.Diagnostics); err != nil {
		return nil, false, fmt.Errorf("decode cached diagnostics for %s: %w", graphHash, err)
	}
	return v, true, nil
}

// Record stores a verdict. Recording the same fingerprint twice is a
// no-op: the content hash guarantees the verdict cannot have changed.
func (s *Store) Record(ctx context.Context, v *Verdict) error {
	diags := v.Diagnostics
	if diags == nil {
		diags = []*ir.Diagnostic{}
	}
	diagJSON, err := json.Marshal(diags)
	if err != nil {
		return fmt.Errorf("encode diagnostics: %w", err)
	}
	okInt := 0
	if v.OK {
		okInt = 1
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO verdicts (graph_hash, graph_name, ok, diagnostics)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(graph_hash) DO NOTHING`,
		v.GraphHash, v.GraphName, okInt, string(diagJSON))
	if err != nil {
		return fmt.Errorf("record verdict %s: %w", v.GraphHash, err)
	}
	return nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply cache schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}
