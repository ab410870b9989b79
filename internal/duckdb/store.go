// Package duckdb persists classification results in a queryable DuckDB
// database so repeated runs and downstream reporting can reuse them.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for classification results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create results directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS status_calls (
		run_id VARCHAR,
		sample_id VARCHAR,
		gene VARCHAR,
		label VARCHAR,
		snv_indel_count INTEGER,
		cnv_loss_count INTEGER,
		sv_count INTEGER,
		fusion_count INTEGER,
		hotspot BOOLEAN,
		activating BOOLEAN,
		predisposition VARCHAR,
		expression_score DOUBLE,
		PRIMARY KEY (run_id, sample_id, gene)
	)`); err != nil {
		return err
	}

	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		run_id VARCHAR PRIMARY KEY,
		tool_version VARCHAR,
		gene VARCHAR,
		maf_path VARCHAR,
		sample_count INTEGER,
		created_at TIMESTAMP
	)`)
	return err
}
