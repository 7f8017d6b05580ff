// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render lays out assembled documents as PDF using gofpdf.
//
// Pages are A4 portrait with a 15mm automatic page break. The document title
// is centered and word-wrapped at the top of the first page and every page
// carries a "Page N" footer. Section headings are bold 12pt and bodies are
// justified 11pt. Diagrams and tables that cannot be drawn are logged and
// skipped; the rest of the document still renders.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/assemble"
)

const (
	fontFamily = "Arial"

	titleWidth   = 190.0
	pageMargin   = 15.0
	lineHeight   = 10.0
	headingSize  = 12.0
	bodySize     = 11.0
	captionSize  = 10.0
	footerSize   = 8.0
	imageX       = 25.0
	imageWidth   = 160.0
	tableWidth   = 180.0
	tableRowH    = 8.0
	maxCellRunes = 40
)

// PDFRenderer renders documents as PDF bytes. It implements
// assemble.Renderer. A PDFRenderer holds no per-document state and may be
// reused.
type PDFRenderer struct {
	logger *zap.Logger
}

// NewPDFRenderer creates a PDFRenderer. A nil logger discards skip warnings.
func NewPDFRenderer(logger *zap.Logger) *PDFRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFRenderer{logger: logger}
}

// page wraps one gofpdf document with its figure and table counters.
type page struct {
	pdf     *gofpdf.Fpdf
	tr      func(string) string
	logger  *zap.Logger
	figures int
	tables  int
}

func newPage(title string, logger *zap.Logger) *page {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, pageMargin)
	p := &page{
		pdf:     pdf,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
		logger:  logger,
		figures: 1,
		tables:  1,
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() == 1 {
			p.header(title)
		}
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont(fontFamily, "I", footerSize)
		pdf.CellFormat(0, lineHeight, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	return p
}

// header writes the title centered, wrapped at titleWidth.
func (p *page) header(title string) {
	p.pdf.SetFont(fontFamily, "B", headingSize)
	p.pdf.SetX(10)
	for _, line := range p.wrap(p.text(title), titleWidth) {
		p.pdf.CellFormat(0, lineHeight, line, "", 1, "C", false, 0, "")
	}
	p.pdf.Ln(2)
}

// wrap splits s into lines no wider than width in the current font.
func (p *page) wrap(s string, width float64) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if line != "" && p.pdf.GetStringWidth(candidate) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// text folds punctuation and converts s to the PDF core font encoding.
func (p *page) text(s string) string {
	return p.tr(Fold(s))
}

func (p *page) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Render lays out doc. Only document-level failures are returned; a diagram
// or table that cannot be drawn is skipped with a warning.
func (r *PDFRenderer) Render(doc *assemble.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("render: nil document")
	}
	title := doc.Title
	if strings.TrimSpace(title) == "" {
		title = assemble.DefaultTitle
	}

	p := newPage(title, r.logger)
	p.pdf.AddPage()
	p.pdf.Ln(5)

	for _, sec := range doc.Sections {
		if sec.Heading != "" {
			p.heading(sec.Heading)
		}
		if len(sec.Paragraphs) == 0 {
			continue
		}
		p.body(sec.Body())
		p.pdf.Ln(4)
		for _, d := range sec.Diagrams {
			if err := p.diagram(d); err != nil {
				r.skip(err)
			}
		}
		if sec.Table != nil {
			if err := p.table(*sec.Table); err != nil {
				r.skip(err)
			}
		}
	}
	return p.output()
}

func (r *PDFRenderer) skip(err error) {
	r.logger.Warn("skipping attachment", zap.Error(err))
}

func (p *page) heading(h string) {
	p.pdf.SetFont(fontFamily, "B", headingSize)
	p.pdf.CellFormat(0, lineHeight, p.text(h), "", 1, "L", false, 0, "")
	p.pdf.Ln(2)
}

func (p *page) body(s string) {
	p.pdf.SetFont(fontFamily, "", bodySize)
	p.pdf.MultiCell(0, lineHeight, p.text(s), "", "J", false)
}
