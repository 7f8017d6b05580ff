// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Attachment kinds reported on RenderError.
const (
	KindDiagram = "diagram"
	KindTable   = "table"
)

var (
	// ErrUnsupportedImage is wrapped when an image format cannot be embedded.
	ErrUnsupportedImage = errors.New("unsupported image format")
	// ErrMalformedTable is wrapped when a table has no columns or ragged
	// columns.
	ErrMalformedTable = errors.New("malformed table")
)

// RenderError describes an attachment that was skipped.
type RenderError struct {
	Kind   string
	Target string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s %q: %v", e.Kind, e.Target, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// imageTypes maps file extensions to the gofpdf image types it can embed.
var imageTypes = map[string]string{
	".png":  "PNG",
	".jpg":  "JPG",
	".jpeg": "JPG",
	".gif":  "GIF",
}

// diagram draws the image at a fixed x and width followed by a numbered
// caption. The figure counter only advances on success.
func (p *page) diagram(d types.Diagram) error {
	fail := func(err error) error {
		return &RenderError{Kind: KindDiagram, Target: d.ImagePath, Err: err}
	}
	if _, err := os.Stat(d.ImagePath); err != nil {
		return fail(err)
	}
	tp, ok := imageTypes[strings.ToLower(filepath.Ext(d.ImagePath))]
	if !ok {
		return fail(ErrUnsupportedImage)
	}

	opts := gofpdf.ImageOptions{ImageType: tp, ReadDpi: true}
	p.pdf.RegisterImageOptions(d.ImagePath, opts)
	if !p.pdf.Ok() {
		err := p.pdf.Error()
		p.pdf.ClearError()
		return fail(err)
	}

	p.pdf.Ln(2)
	p.pdf.ImageOptions(d.ImagePath, imageX, 0, imageWidth, 0, true, opts, 0, "")
	p.pdf.SetFont(fontFamily, "I", captionSize)
	p.pdf.Ln(2)
	caption := fmt.Sprintf("Figure %d: %s", p.figures, d.Caption)
	p.pdf.MultiCell(0, lineHeight, p.text(caption), "", "C", false)
	p.pdf.Ln(2)
	p.figures++
	return nil
}

// table draws a numbered, bordered table with equal column widths. Cells are
// cut to maxCellRunes.
func (p *page) table(t types.Table) error {
	if len(t.Columns) == 0 {
		return &RenderError{Kind: KindTable, Target: fmt.Sprintf("Table %d", p.tables), Err: fmt.Errorf("%w: no columns", ErrMalformedTable)}
	}
	if t.Ragged() {
		return &RenderError{Kind: KindTable, Target: fmt.Sprintf("Table %d", p.tables), Err: fmt.Errorf("%w: columns differ in length", ErrMalformedTable)}
	}

	width := float64(int(tableWidth) / len(t.Columns))

	p.pdf.Ln(4)
	p.pdf.SetFont(fontFamily, "B", bodySize)
	p.pdf.CellFormat(0, lineHeight, fmt.Sprintf("Table %d", p.tables), "", 1, "C", false, 0, "")
	for _, name := range t.Header() {
		p.pdf.CellFormat(width, tableRowH, p.text(truncate(name, maxCellRunes)), "1", 0, "C", false, 0, "")
	}
	p.pdf.Ln(-1)

	p.pdf.SetFont(fontFamily, "", captionSize)
	for _, row := range t.Rows() {
		for _, cell := range row {
			p.pdf.CellFormat(width, tableRowH, p.text(truncate(cell, maxCellRunes)), "1", 0, "C", false, 0, "")
		}
		p.pdf.Ln(-1)
	}
	p.tables++
	return nil
}

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
