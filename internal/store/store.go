// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists digest runs, their survey rows, and user feedback
// in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// DefaultPath is used when StoreConfig.Path is empty.
const DefaultPath = "data/research.db"

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("store: not found")

// Store wraps the SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at cfg.Path and ensures the schema.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			created_at TEXT NOT NULL,
			report_path TEXT,
			survey_path TEXT,
			csv_path TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			link TEXT,
			summary TEXT,
			advantages_disadvantages TEXT,
			review TEXT,
			recommendations TEXT,
			section TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_run_id ON papers(run_id)`,
		`CREATE TABLE IF NOT EXISTS feedback (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			page TEXT,
			text TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun stores run and its rows in one transaction and returns the new
// run id. A zero CreatedAt is set to the current time.
func (s *Store) SaveRun(ctx context.Context, run types.Run) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (query, created_at, report_path, survey_path, csv_path) VALUES (?, ?, ?, ?, ?)`,
		run.Query, run.CreatedAt.UTC().Format(time.RFC3339Nano), run.ReportPath, run.SurveyPath, run.CSVPath)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (run_id, position, title, link, summary, advantages_disadvantages, review, recommendations, section)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing paper insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range run.Rows {
		if _, err := stmt.ExecContext(ctx, id, i, r.Title, r.Link, r.Summary,
			r.AdvantagesDisadvantages, r.Review, r.Recommendations, r.Section); err != nil {
			return 0, fmt.Errorf("inserting paper %q: %w", r.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// Run loads a run and its rows.
func (s *Store) Run(ctx context.Context, id int64) (*types.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, query, created_at, report_path, survey_path, csv_path FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}
	if run.Rows, err = s.Rows(ctx, id); err != nil {
		return nil, err
	}
	return run, nil
}

// LatestRun loads the most recently saved run.
func (s *Store) LatestRun(ctx context.Context) (*types.Run, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest run: %w", err)
	}
	return s.Run(ctx, id)
}

// Runs lists up to limit runs, newest first, without their rows.
func (s *Store) Runs(ctx context.Context, limit int) ([]types.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, created_at, report_path, survey_path, csv_path FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Rows returns the survey rows of a run in processing order.
func (s *Store) Rows(ctx context.Context, runID int64) ([]types.SurveyRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, link, summary, advantages_disadvantages, review, recommendations, section
		FROM papers WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	return collectRows(rows)
}

// SearchRows returns rows from any run whose title or summary contains
// text, newest run first.
func (s *Store) SearchRows(ctx context.Context, text string) ([]types.SurveyRow, error) {
	pattern := "%" + text + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, link, summary, advantages_disadvantages, review, recommendations, section
		FROM papers WHERE title LIKE ? OR summary LIKE ?
		ORDER BY run_id DESC, position`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("searching papers: %w", err)
	}
	return collectRows(rows)
}

// collectRows scans survey rows and closes rows.
func collectRows(rows *sql.Rows) ([]types.SurveyRow, error) {
	defer rows.Close()

	var out []types.SurveyRow
	for rows.Next() {
		var (
			r                                types.SurveyRow
			link, summary, adv, review, recs sql.NullString
			section                          sql.NullString
		)
		if err := rows.Scan(&r.Title, &link, &summary, &adv, &review, &recs, &section); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		r.Link, r.Summary, r.AdvantagesDisadvantages = link.String, summary.String, adv.String
		r.Review, r.Recommendations, r.Section = review.String, recs.String, section.String
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*types.Run, error) {
	var (
		run                     types.Run
		created                 string
		report, survey, csvPath sql.NullString
	)
	err := sc.Scan(&run.ID, &run.Query, &created, &report, &survey, &csvPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		run.CreatedAt = t
	}
	run.ReportPath, run.SurveyPath, run.CSVPath = report.String, survey.String, csvPath.String
	return &run, nil
}
