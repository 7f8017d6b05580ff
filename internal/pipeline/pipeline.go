// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs a digest end to end: search, analyse each paper,
// build the survey, assemble and render the report, and record the run.
// Papers are processed one at a time in search order.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/internal/assemble"
	"github.com/pdiddy/research-assistant/internal/classify"
	"github.com/pdiddy/research-assistant/internal/clean"
	"github.com/pdiddy/research-assistant/internal/render"
	"github.com/pdiddy/research-assistant/internal/survey"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Output file names inside a run directory.
const (
	ReportFile = "ieee_research_paper.pdf"
	SurveyFile = "literature_survey.pdf"
	CSVFile    = "literature_survey.csv"
	TextFile   = "ieee_research_paper.txt"
	// ManifestFile records the run in YAML next to its outputs.
	ManifestFile = "run.yaml"
)

var (
	// ErrEmptyQuery is returned when the query is blank.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrNoPapers is returned when the search finds nothing.
	ErrNoPapers = errors.New("no papers found")
	// ErrAllFailed is returned when every paper failed analysis.
	ErrAllFailed = errors.New("every paper failed analysis")
)

// Searcher finds papers for a topic. It reports failures as an empty result.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) []types.Paper
}

// Analyst produces the raw model replies for one paper.
type Analyst interface {
	Summarize(ctx context.Context, abstract string) (clean.Utterance, error)
	AdvantagesDisadvantages(ctx context.Context, summary string) (clean.Utterance, error)
	QualityReview(ctx context.Context, summary string) (clean.Utterance, error)
	Recommendations(ctx context.Context, summary string) (clean.Utterance, error)
}

// Downloader saves a paper PDF locally.
type Downloader interface {
	Download(ctx context.Context, p types.Paper) (path string, skipped bool, err error)
}

// DiagramExtractor pulls diagrams out of a local PDF.
type DiagramExtractor interface {
	Extract(pdfPath string) ([]types.Diagram, error)
}

// Renderer lays out the report and the survey.
type Renderer interface {
	assemble.Renderer
	RenderSurvey(rows []types.SurveyRow) ([]byte, error)
}

// Recorder persists a finished run.
type Recorder interface {
	SaveRun(ctx context.Context, run types.Run) (int64, error)
}

// Deps are the collaborators of a run. Downloader, Figures, and Store are
// optional.
type Deps struct {
	Search     Searcher
	Analyst    Analyst
	Downloader Downloader
	Figures    DiagramExtractor
	Renderer   Renderer
	Store      Recorder
	Logger     *zap.Logger
	Now        func() time.Time
}

// Request describes one digest.
type Request struct {
	Query      string
	MaxResults int
	OutputDir  string

	// Diagrams downloads each PDF and attaches its images to the report.
	Diagrams bool
	// WarnOrphans logs attachments that no section claimed.
	WarnOrphans bool
	// Tables are inserted after the section they are keyed by.
	Tables map[string]types.Table
}

// Result is the outcome of a digest.
type Result struct {
	RunID  int64
	Dir    string
	Papers []types.Paper
	Rows   []types.SurveyRow

	// Text is the heading-tagged report text fed to the assembler.
	Text     string
	Document *assemble.Document

	ReportPath string
	SurveyPath string
	CSVPath    string

	// FallbackText holds the report text when rendering failed, so it can
	// be shown instead of the PDF.
	FallbackText string

	Processed int
	Failed    int
}

// Total returns the number of papers attempted.
func (r Result) Total() int {
	return r.Processed + r.Failed
}

// Run executes a digest, writing progress lines to w.
func Run(ctx context.Context, deps Deps, req Request, w io.Writer) (*Result, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	fmt.Fprintf(w, "searching: %s\n", query)
	papers := deps.Search.Search(ctx, query, req.MaxResults)
	if len(papers) == 0 {
		fmt.Fprintf(w, "No papers found. Try another topic.\n")
		return nil, ErrNoPapers
	}

	result := &Result{Papers: papers}
	var (
		entries  []survey.Entry
		diagrams []types.Diagram
	)
	for _, p := range papers {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fmt.Fprintf(w, "processing: %s\n", p.Title)
		row, err := analyse(ctx, deps.Analyst, p)
		if err != nil {
			fmt.Fprintf(w, "failed:     %s (%v)\n", p.Title, err)
			result.Failed++
			continue
		}
		result.Processed++
		result.Rows = append(result.Rows, row)
		entries = append(entries, survey.Entry{Paper: p, Row: row})

		if req.Diagrams && deps.Downloader != nil && deps.Figures != nil {
			diagrams = append(diagrams, fetchDiagrams(ctx, deps, p, w)...)
		}
	}
	fmt.Fprintf(w, "\nDigest summary: %d processed, %d failed (total: %d)\n",
		result.Processed, result.Failed, result.Total())
	if result.Processed == 0 {
		return result, ErrAllFailed
	}

	created := now()
	result.Dir = filepath.Join(req.OutputDir, runDirName(query, created))
	result.Text = survey.IEEEText(query, entries)

	if err := writeReport(deps, req, result, diagrams, logger, w); err != nil {
		return result, err
	}
	if err := writeSurvey(deps, result, w); err != nil {
		return result, err
	}

	run := types.Run{
		Query:      query,
		CreatedAt:  created,
		ReportPath: result.ReportPath,
		SurveyPath: result.SurveyPath,
		CSVPath:    result.CSVPath,
		Rows:       result.Rows,
	}
	if deps.Store != nil {
		id, err := deps.Store.SaveRun(ctx, run)
		if err != nil {
			return result, fmt.Errorf("saving run: %w", err)
		}
		result.RunID = id
		run.ID = id
		fmt.Fprintf(w, "saved run %d\n", id)
	}
	if err := writeManifest(filepath.Join(result.Dir, ManifestFile), run); err != nil {
		return result, err
	}
	return result, nil
}

func writeManifest(path string, run types.Run) error {
	data, err := yaml.Marshal(run)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := render.WriteFile(path, data); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// analyse asks the model for every survey field and cleans each reply. Any
// failed call fails the paper.
func analyse(ctx context.Context, a Analyst, p types.Paper) (types.SurveyRow, error) {
	raw, err := a.Summarize(ctx, p.Summary)
	if err != nil {
		return types.SurveyRow{}, err
	}
	row := types.SurveyRow{
		Title:   p.Title,
		Link:    p.Link,
		Summary: clean.Normalize(raw),
	}

	fields := []struct {
		ask func(context.Context, string) (clean.Utterance, error)
		dst *string
	}{
		{a.AdvantagesDisadvantages, &row.AdvantagesDisadvantages},
		{a.QualityReview, &row.Review},
		{a.Recommendations, &row.Recommendations},
	}
	for _, f := range fields {
		u, err := f.ask(ctx, row.Summary)
		if err != nil {
			return types.SurveyRow{}, err
		}
		*f.dst = clean.Normalize(u)
	}
	row.Section = string(classify.Classify(row.Summary))
	return row, nil
}

// fetchDiagrams downloads a paper and extracts its images. Failures are
// reported and yield no diagrams.
func fetchDiagrams(ctx context.Context, deps Deps, p types.Paper, w io.Writer) []types.Diagram {
	path, _, err := deps.Downloader.Download(ctx, p)
	if err != nil {
		fmt.Fprintf(w, "  warning: download failed: %v\n", err)
		return nil
	}
	diagrams, err := deps.Figures.Extract(path)
	if err != nil {
		fmt.Fprintf(w, "  warning: diagram extraction failed: %v\n", err)
		return nil
	}
	fmt.Fprintf(w, "  diagrams: %d\n", len(diagrams))
	return diagrams
}

// writeReport assembles and renders the report. A render failure keeps the
// text as FallbackText instead of failing the run.
func writeReport(deps Deps, req Request, result *Result, diagrams []types.Diagram, logger *zap.Logger, w io.Writer) error {
	opts := []assemble.Option{
		assemble.WithLogger(logger),
		assemble.WithOrphanWarnings(req.WarnOrphans),
	}
	data, doc, err := assemble.Build(result.Text, deps.Renderer, diagrams, req.Tables, opts...)
	result.Document = doc
	if err != nil {
		if errors.Is(err, assemble.ErrEmptyInput) {
			return fmt.Errorf("building report: %w", err)
		}
		fmt.Fprintf(w, "warning: report rendering failed (%v); keeping text\n", err)
		result.FallbackText = result.Text
		path := filepath.Join(result.Dir, TextFile)
		if werr := render.WriteFile(path, []byte(result.Text)); werr != nil {
			return fmt.Errorf("writing report text: %w", werr)
		}
		return nil
	}

	result.ReportPath = filepath.Join(result.Dir, ReportFile)
	if err := render.WriteFile(result.ReportPath, data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(w, "report: %s\n", result.ReportPath)
	return nil
}

// writeSurvey writes the survey CSV and PDF. A survey PDF render failure is
// reported and skipped; the CSV is always written.
func writeSurvey(deps Deps, result *Result, w io.Writer) error {
	var buf bytes.Buffer
	if err := survey.WriteCSV(&buf, result.Rows); err != nil {
		return fmt.Errorf("building survey csv: %w", err)
	}
	result.CSVPath = filepath.Join(result.Dir, CSVFile)
	if err := render.WriteFile(result.CSVPath, buf.Bytes()); err != nil {
		return fmt.Errorf("writing survey csv: %w", err)
	}
	fmt.Fprintf(w, "survey csv: %s\n", result.CSVPath)

	data, err := deps.Renderer.RenderSurvey(result.Rows)
	if err != nil {
		fmt.Fprintf(w, "warning: survey rendering failed (%v)\n", err)
		return nil
	}
	result.SurveyPath = filepath.Join(result.Dir, SurveyFile)
	if err := render.WriteFile(result.SurveyPath, data); err != nil {
		return fmt.Errorf("writing survey pdf: %w", err)
	}
	fmt.Fprintf(w, "survey pdf: %s\n", result.SurveyPath)
	return nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// runDirName is the query slug plus a UTC timestamp.
func runDirName(query string, t time.Time) string {
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(query), "-"), "-")
	if len(slug) > 60 {
		slug = strings.TrimRight(slug[:60], "-")
	}
	if slug == "" {
		slug = "digest"
	}
	return slug + "-" + t.UTC().Format("20060102-150405")
}
