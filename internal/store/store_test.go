// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{Path: filepath.Join(t.TempDir(), "data", "research.db")})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func fixedClock(s *Store, t time.Time) {
	s.now = func() time.Time { return t }
}

func sampleRun() types.Run {
	return types.Run{
		Query:      "multi-agent systems",
		ReportPath: "output/report.pdf",
		Rows: []types.SurveyRow{
			{Title: "Agents at Scale", Link: "http://arxiv.org/abs/1", Summary: "This paper scales agents.", Section: "Introduction"},
			{Title: "Cooperative Planning", Link: "http://arxiv.org/abs/2", Summary: "Planning with peers.", Review: "Sound."},
		},
	}
}

// --- runs ---

func TestSaveAndLoadRun(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	when := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fixedClock(s, when)

	id, err := s.SaveRun(ctx, sampleRun())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	run, err := s.Run(ctx, id)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.Query != "multi-agent systems" || run.ReportPath != "output/report.pdf" {
		t.Errorf("run = %+v", run)
	}
	if !run.CreatedAt.Equal(when) {
		t.Errorf("CreatedAt = %v, want %v", run.CreatedAt, when)
	}
	if len(run.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(run.Rows))
	}
	if run.Rows[0].Title != "Agents at Scale" || run.Rows[1].Review != "Sound." {
		t.Errorf("rows out of order or incomplete: %+v", run.Rows)
	}
}

func TestRunNotFound(t *testing.T) {
	s := testStore(t)
	if _, err := s.Run(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Run(42) error = %v, want ErrNotFound", err)
	}
	if _, err := s.LatestRun(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestRun error = %v, want ErrNotFound", err)
	}
}

func TestLatestRunAndRuns(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first := sampleRun()
	second := sampleRun()
	second.Query = "robotics"
	second.Rows = second.Rows[:1]

	if _, err := s.SaveRun(ctx, first); err != nil {
		t.Fatal(err)
	}
	id2, err := s.SaveRun(ctx, second)
	if err != nil {
		t.Fatal(err)
	}

	latest, err := s.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if latest.ID != id2 || latest.Query != "robotics" || len(latest.Rows) != 1 {
		t.Errorf("latest = %+v", latest)
	}

	runs, err := s.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 || runs[0].Query != "robotics" {
		t.Errorf("runs = %+v", runs)
	}
	if runs[0].Rows != nil {
		t.Error("Runs should not load rows")
	}
}

func TestSearchRows(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if _, err := s.SaveRun(ctx, sampleRun()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		text string
		want int
	}{
		{"agents", 1},
		{"Planning", 1},
		{"a", 2},
		{"quantum", 0},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			rows, err := s.SearchRows(ctx, tt.text)
			if err != nil {
				t.Fatalf("SearchRows: %v", err)
			}
			if len(rows) != tt.want {
				t.Errorf("SearchRows(%q) = %d rows, want %d", tt.text, len(rows), tt.want)
			}
		})
	}
}

// --- feedback ---

func TestFeedback(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	fixedClock(s, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC))

	if _, err := s.AddFeedback(ctx, "search", "   "); !errors.Is(err, ErrEmptyFeedback) {
		t.Errorf("blank feedback error = %v, want ErrEmptyFeedback", err)
	}
	if _, err := s.AddFeedback(ctx, "search", "  Great tool, needs more sources.  "); err != nil {
		t.Fatalf("AddFeedback: %v", err)
	}
	if _, err := s.AddFeedback(ctx, "report", "Figures, please"); err != nil {
		t.Fatalf("AddFeedback: %v", err)
	}

	notes, err := s.Feedback(ctx)
	if err != nil {
		t.Fatalf("Feedback: %v", err)
	}
	if len(notes) != 2 || notes[0].Text != "Great tool, needs more sources." || notes[1].Page != "report" {
		t.Errorf("notes = %+v", notes)
	}

	var buf bytes.Buffer
	if err := s.ExportFeedbackCSV(ctx, &buf); err != nil {
		t.Fatalf("ExportFeedbackCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	if records[0][3] != "feedback" || records[2][3] != "Figures, please" || records[1][1] != "2026-03-01T09:30:00Z" {
		t.Errorf("records = %v", records)
	}
}
