// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package survey builds the literature survey: one row per processed paper,
// exported as CSV or YAML, and the heading-tagged report text that the
// assembler turns into a document.
package survey

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Title heads the survey PDF.
const Title = "Literature Survey Table"

var columns = []string{
	"Paper Title",
	"Link",
	"Summary",
	"Advantages/Disadvantages",
	"Quality Review",
	"Recommendations",
	"Section",
}

// Columns returns the survey header in export order.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// Fields returns the row values in Columns order.
func Fields(r types.SurveyRow) []string {
	return []string{
		r.Title,
		r.Link,
		r.Summary,
		r.AdvantagesDisadvantages,
		r.Review,
		r.Recommendations,
		r.Section,
	}
}

// WriteCSV writes the header and one record per row.
func WriteCSV(w io.Writer, rows []types.SurveyRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i, r := range rows {
		if err := cw.Write(Fields(r)); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteYAML writes rows as a YAML sequence.
func WriteYAML(w io.Writer, rows []types.SurveyRow) error {
	if rows == nil {
		rows = []types.SurveyRow{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

var sentenceEndRe = regexp.MustCompile(`[.!?] +`)

// Sentences splits text after each ., ! or ? that is followed by spaces.
// Empty pieces are dropped.
func Sentences(text string) []string {
	text = strings.TrimSpace(text)
	var out []string
	start := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start : loc[0]+1]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// Bullets formats the first n sentences of text as "- " lines.
//
//	Bullets("Fast. Cheap. Small.", 2) == "- Fast.\n- Cheap."
func Bullets(text string, n int) string {
	sentences := Sentences(strings.ReplaceAll(text, "•", "-"))
	if len(sentences) > n {
		sentences = sentences[:n]
	}
	lines := make([]string, len(sentences))
	for i, s := range sentences {
		lines[i] = "- " + s
	}
	return strings.Join(lines, "\n")
}
