// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-assistant
// pipeline: paper metadata from search, diagrams and tables attached to the
// generated report, survey rows, and configuration.
package types

import "time"

// Paper holds metadata for a paper returned by the search collaborator.
type Paper struct {
	// ID is the source identifier (arXiv ID without version suffix).
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Summary is the abstract text.
	Summary string `json:"summary" yaml:"summary"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Link is the landing page for the paper (arXiv abs URL).
	Link string `json:"link" yaml:"link"`

	// PDFURL is the direct PDF download URL. Empty when the source has none.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// PDFPath is the local path once the PDF has been downloaded.
	PDFPath string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`

	// Published is the publication or preprint date.
	Published time.Time `json:"published" yaml:"published"`
}
