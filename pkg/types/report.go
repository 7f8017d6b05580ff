// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DiagramSection is the section every extracted diagram is tagged with.
const DiagramSection = "Experimental Results"

// Diagram is an image extracted from a source PDF, tagged with the report
// section it belongs to.
type Diagram struct {
	// ImagePath is the local path of the extracted image. It identifies the
	// diagram: two diagrams with the same path are the same diagram.
	ImagePath string `json:"image_path" yaml:"image_path"`

	// Caption is rendered below the image.
	Caption string `json:"caption" yaml:"caption"`

	// Section names the heading the diagram is inserted after.
	Section string `json:"section" yaml:"section"`
}

// Column is one named column of a Table.
type Column struct {
	Name   string   `json:"name" yaml:"name"`
	Values []string `json:"values" yaml:"values"`
}

// Table maps column names to ordered cell values. Columns keep their
// declaration order.
type Table struct {
	Columns []Column `json:"columns" yaml:"columns"`
}

// Header returns the column names in order.
func (t Table) Header() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Rows returns the table transposed into rows. Short columns are padded
// with empty cells.
func (t Table) Rows() [][]string {
	n := 0
	for _, c := range t.Columns {
		if len(c.Values) > n {
			n = len(c.Values)
		}
	}
	rows := make([][]string, n)
	for i := range rows {
		row := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			if i < len(c.Values) {
				row[j] = c.Values[i]
			}
		}
		rows[i] = row
	}
	return rows
}

// Ragged reports whether the columns have differing lengths.
func (t Table) Ragged() bool {
	for i := 1; i < len(t.Columns); i++ {
		if len(t.Columns[i].Values) != len(t.Columns[0].Values) {
			return true
		}
	}
	return false
}

// SurveyRow is one paper's entry in the literature survey table. All text
// fields hold cleaned model output.
type SurveyRow struct {
	Title                   string `json:"title" yaml:"title"`
	Link                    string `json:"link" yaml:"link"`
	Summary                 string `json:"summary" yaml:"summary"`
	AdvantagesDisadvantages string `json:"advantages_disadvantages" yaml:"advantages_disadvantages"`
	Review                  string `json:"review" yaml:"review"`
	Recommendations         string `json:"recommendations" yaml:"recommendations"`

	// Section is the classifier tag assigned to the summary.
	Section string `json:"section" yaml:"section"`
}

// Run is one completed digest: the query, the files it produced, and its
// survey rows in processing order.
type Run struct {
	ID         int64     `json:"id" yaml:"id"`
	Query      string    `json:"query" yaml:"query"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	ReportPath string    `json:"report_path,omitempty" yaml:"report_path,omitempty"`
	SurveyPath string    `json:"survey_path,omitempty" yaml:"survey_path,omitempty"`
	CSVPath    string    `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`

	Rows []SurveyRow `json:"rows" yaml:"rows"`
}

// Feedback is a free-text note left by a user.
type Feedback struct {
	ID        int64     `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Page      string    `json:"page" yaml:"page"`
	Text      string    `json:"text" yaml:"text"`
}
