package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ScrapeRun is one attempt to rebuild the menu catalog.
type ScrapeRun struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Entries    int
	Error      string
}

// Succeeded reports whether the run finished without an error.
func (r *ScrapeRun) Succeeded() bool {
	return !r.FinishedAt.IsZero() && r.Error == ""
}

// StartRun records the start of a scrape run.
func (s *SQLiteStore) StartRun() (*ScrapeRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := &ScrapeRun{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
	}

	_, err := s.db.Exec(`INSERT INTO scrape_runs (id, started_at) VALUES (?, ?)`, run.ID, run.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create scrape run: %w", err)
	}

	return run, nil
}

// FinishRun records the outcome of a run. A nil runErr marks it successful.
func (s *SQLiteStore) FinishRun(run *ScrapeRun, entries int, runErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run.FinishedAt = time.Now()
	run.Entries = entries
	var errText sql.NullString
	if runErr != nil {
		run.Error = runErr.Error()
		errText = sql.NullString{String: run.Error, Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE scrape_runs SET finished_at = ?, entries = ?, error = ? WHERE id = ?`,
		run.FinishedAt, run.Entries, errText, run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish scrape run: %w", err)
	}
	return nil
}

// LastSuccessfulRun returns the most recent successful run, or nil if none.
func (s *SQLiteStore) LastSuccessfulRun() (*ScrapeRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var run ScrapeRun
	err := s.db.QueryRow(`
		SELECT id, started_at, finished_at, entries FROM scrape_runs
		WHERE finished_at IS NOT NULL AND error IS NULL
		ORDER BY finished_at DESC LIMIT 1
	`).Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Entries)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last scrape run: %w", err)
	}

	return &run, nil
}
