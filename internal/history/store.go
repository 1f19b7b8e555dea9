// Package history persists past PR evaluations in a per-repo SQLite
// database so score drift can be inspected across CI runs.
package history

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Entry is one recorded evaluation.
type Entry struct {
	RunID          string    `json:"runId"`
	CreatedAt      time.Time `json:"createdAt"`
	TotalScore     int       `json:"totalScore"`
	StaticScore    int       `json:"staticScore"`
	ImpactScore    int       `json:"impactScore"`
	AIScore        int       `json:"aiScore"`
	QualityPenalty int       `json:"qualityPenalty"`
	Tier           int       `json:"tier"`
	AutoMerge      bool      `json:"autoMerge"`
	GatePassed     bool      `json:"gatePassed"`
	FileCount      int       `json:"fileCount"`
}

// Store wraps the history database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates the history database, creating parent
// directories and the schema as needed.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	total_score INTEGER NOT NULL,
	static_score INTEGER NOT NULL,
	impact_score INTEGER NOT NULL,
	ai_score INTEGER NOT NULL,
	quality_penalty INTEGER NOT NULL,
	tier INTEGER NOT NULL,
	auto_merge INTEGER NOT NULL,
	gate_passed INTEGER NOT NULL,
	file_count INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_at);
`

// Append records an evaluation.
func (s *Store) Append(e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO evaluations
			(run_id, created_at, total_score, static_score, impact_score,
			 ai_score, quality_penalty, tier, auto_merge, gate_passed, file_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.RunID, e.CreatedAt.Unix(), e.TotalScore, e.StaticScore, e.ImpactScore,
		e.AIScore, e.QualityPenalty, e.Tier, boolInt(e.AutoMerge), boolInt(e.GatePassed), e.FileCount)
	if err != nil {
		return fmt.Errorf("failed to record evaluation: %w", err)
	}
	return nil
}

// Recent returns the most recent evaluations, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT run_id, created_at, total_score, static_score, impact_score,
		       ai_score, quality_penalty, tier, auto_merge, gate_passed, file_count
		FROM evaluations
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Best effort cleanup

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt int64
		var autoMerge, gatePassed int
		if err := rows.Scan(&e.RunID, &createdAt, &e.TotalScore, &e.StaticScore,
			&e.ImpactScore, &e.AIScore, &e.QualityPenalty, &e.Tier,
			&autoMerge, &gatePassed, &e.FileCount); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		e.AutoMerge = autoMerge != 0
		e.GatePassed = gatePassed != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
