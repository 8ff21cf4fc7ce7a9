// Package sqlite records analysis runs and table snapshots in a SQLite
// database next to the other outputs. The store is an audit trail: the
// CSV files remain the source of truth, and a store failure never aborts
// the pipeline.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Suzuka-Y/B4-2-analysis/internal/dataset"
	"github.com/Suzuka-Y/B4-2-analysis/pkg/types"
)

// DBFile is the database file name inside the output directory.
const DBFile = "analysis.db"

// Run status values.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

const schemaDDL = `CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    finished_at TEXT,
    status TEXT NOT NULL,
    config TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS snapshots (
    snapshot_id TEXT PRIMARY KEY,
    run_id TEXT NOT NULL,
    name TEXT NOT NULL,
    row_count INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    payload TEXT NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);`

// Store persists run records and tidy-table snapshots.
type Store struct {
	db *sql.DB
}

// Open creates or opens the analysis database inside outputDir and
// ensures the schema exists.
func Open(outputDir string) (*Store, error) {
	db, err := sql.Open("sqlite", filepath.Join(outputDir, DBFile))
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginRun registers a new run with its effective configuration and
// returns the run ID.
func (s *Store) BeginRun(cfg types.Config) (string, error) {
	blob, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	id := uuid.New().String()
	_, err = s.db.Exec(
		`INSERT INTO runs (run_id, started_at, status, config) VALUES (?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339), StatusRunning, string(blob))
	if err != nil {
		return "", err
	}
	return id, nil
}

// FinishRun marks a run completed or failed.
func (s *Store) FinishRun(runID string, failed bool) error {
	status := StatusCompleted
	if failed {
		status = StatusFailed
	}
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, status = ? WHERE run_id = ?`,
		time.Now().UTC().Format(time.RFC3339), status, runID)
	return err
}

// Snapshot stores a named copy of a table within a run, serialized as
// CSV so a snapshot can be inspected with ordinary tools.
func (s *Store) Snapshot(runID, name string, t *types.Table) error {
	var buf strings.Builder
	if err := dataset.WriteCSVTo(&buf, t); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO snapshots (snapshot_id, run_id, name, row_count, created_at, payload)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), runID, name, len(t.Rows),
		time.Now().UTC().Format(time.RFC3339), buf.String())
	return err
}

// SnapshotInfo describes one stored snapshot without its payload.
type SnapshotInfo struct {
	Name     string
	RowCount int
}

// Snapshots lists the snapshots of a run in insertion order.
func (s *Store) Snapshots(runID string) ([]SnapshotInfo, error) {
	rows, err := s.db.Query(
		`SELECT name, row_count FROM snapshots WHERE run_id = ? ORDER BY created_at, name`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.Name, &info.RowCount); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// LatestRun returns the most recently started run ID, or sql.ErrNoRows
// when the store is empty.
func (s *Store) LatestRun() (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT run_id FROM runs ORDER BY started_at DESC LIMIT 1`).Scan(&id)
	return id, err
}

// RunStatus reports the status column of one run.
func (s *Store) RunStatus(runID string) (string, error) {
	var status string
	err := s.db.QueryRow(`SELECT status FROM runs WHERE run_id = ?`, runID).Scan(&status)
	return status, err
}
