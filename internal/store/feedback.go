// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// ErrEmptyFeedback is returned when feedback text is blank.
var ErrEmptyFeedback = errors.New("store: feedback text is empty")

// AddFeedback records a note and returns its id.
func (s *Store) AddFeedback(ctx context.Context, page, text string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyFeedback
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (created_at, page, text) VALUES (?, ?, ?)`,
		s.now().UTC().Format(time.RFC3339Nano), page, text)
	if err != nil {
		return 0, fmt.Errorf("inserting feedback: %w", err)
	}
	return res.LastInsertId()
}

// Feedback returns every note, oldest first.
func (s *Store) Feedback(ctx context.Context) ([]types.Feedback, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, page, text FROM feedback ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	defer rows.Close()

	var out []types.Feedback
	for rows.Next() {
		var (
			f       types.Feedback
			created string
		)
		if err := rows.Scan(&f.ID, &created, &f.Page, &f.Text); err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			f.CreatedAt = t
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ExportFeedbackCSV writes all feedback as CSV with an id, timestamp, page,
// feedback header.
func (s *Store) ExportFeedbackCSV(ctx context.Context, w io.Writer) error {
	notes, err := s.Feedback(ctx)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "timestamp", "page", "feedback"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, f := range notes {
		rec := []string{strconv.FormatInt(f.ID, 10), f.CreatedAt.Format(time.RFC3339), f.Page, f.Text}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
