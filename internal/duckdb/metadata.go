package duckdb

import (
	"fmt"
	"time"
)

// RunInfo describes one classification run.
type RunInfo struct {
	RunID       string
	ToolVersion string
	Gene        string
	MAFPath     string
	SampleCount int
	CreatedAt   time.Time
}

// RecordRun stores run metadata.
func (s *Store) RecordRun(info RunInfo) error {
	if info.CreatedAt.IsZero() {
		info.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, tool_version, gene, maf_path, sample_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		info.RunID, info.ToolVersion, info.Gene, info.MAFPath, info.SampleCount, info.CreatedAt)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// GetRun returns metadata for a run id.
func (s *Store) GetRun(runID string) (*RunInfo, error) {
	row := s.db.QueryRow(
		`SELECT run_id, tool_version, gene, maf_path, sample_count, created_at
		 FROM runs WHERE run_id = ?`, runID)

	var info RunInfo
	if err := row.Scan(&info.RunID, &info.ToolVersion, &info.Gene,
		&info.MAFPath, &info.SampleCount, &info.CreatedAt); err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}
	return &info, nil
}
