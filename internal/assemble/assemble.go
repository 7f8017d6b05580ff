// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble turns the combined, cleaned report text into a structured
// document: an ordered list of sections, each with its body paragraphs and
// any diagrams or table claimed for it.
//
// Assembly is a small state machine over input lines. A line that starts with
// one of the fixed headings (case-insensitive) closes the open section and
// opens a new one; any other non-blank line is appended to the open section's
// buffer. Closing a section that has body text claims its attachments:
// diagrams whose section matches the heading (each image path at most once)
// and the table registered under the heading (removed on use).
package assemble

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// ErrEmptyInput is returned when the input holds no text after trimming.
var ErrEmptyInput = errors.New("assemble: empty input")

// DefaultTitle is used when the input has no "Title:" line.
const DefaultTitle = "Summarized Research Paper"

// headings is the fixed heading vocabulary, tried in order. A line matches
// the first heading it starts with.
var headings = []string{
	"Title",
	"Abstract",
	"Keywords",
	"Introduction",
	"Related Work",
	"Literature Survey",
	"Methodology",
	"Experimental Results",
	"Discussion",
	"Conclusion and Future Work",
}

// Headings returns the heading vocabulary in match order.
func Headings() []string {
	out := make([]string, len(headings))
	copy(out, headings)
	return out
}

// Section is one block of the assembled document. The leading section has an
// empty Heading when text precedes the first heading line.
type Section struct {
	Heading    string          `json:"heading" yaml:"heading"`
	Paragraphs []string        `json:"paragraphs" yaml:"paragraphs"`
	Diagrams   []types.Diagram `json:"diagrams,omitempty" yaml:"diagrams,omitempty"`
	Table      *types.Table    `json:"table,omitempty" yaml:"table,omitempty"`
}

// Body joins the section paragraphs with single line breaks.
func (s Section) Body() string {
	return strings.Join(s.Paragraphs, "\n")
}

// Orphans lists attachments that no section claimed.
type Orphans struct {
	Diagrams []types.Diagram `json:"diagrams,omitempty" yaml:"diagrams,omitempty"`
	// Tables holds the keys of unclaimed tables, sorted.
	Tables []string `json:"tables,omitempty" yaml:"tables,omitempty"`
}

// Empty reports whether every attachment was claimed.
func (o Orphans) Empty() bool {
	return len(o.Diagrams) == 0 && len(o.Tables) == 0
}

// Document is the assembler output consumed by a Renderer.
type Document struct {
	Title    string    `json:"title" yaml:"title"`
	Sections []Section `json:"sections" yaml:"sections"`
	Orphans  Orphans   `json:"orphans" yaml:"orphans"`
}

// Renderer lays out a finished document. It is called once per document.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
}

type options struct {
	logger      *zap.Logger
	warnOrphans bool
}

// Option configures Assemble.
type Option func(*options)

// WithLogger sets the logger used for orphan warnings.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithOrphanWarnings logs a warning for each diagram or table that no
// section claimed. Orphans are reported on Document.Orphans either way.
func WithOrphanWarnings(on bool) Option {
	return func(o *options) { o.warnOrphans = on }
}

// ExtractTitle returns the text after the first "Title:" line
// (case-insensitive), or DefaultTitle when there is none or it is blank.
func ExtractTitle(lines []string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) >= 6 && strings.EqualFold(trimmed[:6], "title:") {
			if title := strings.TrimSpace(trimmed[6:]); title != "" {
				return title
			}
			return DefaultTitle
		}
	}
	return DefaultTitle
}

// matchHeading returns the first heading that line starts with, ignoring
// case, and the rest of the line stripped of separator characters.
func matchHeading(line string) (heading, rest string, ok bool) {
	for _, h := range headings {
		if len(line) >= len(h) && strings.EqualFold(line[:len(h)], h) {
			return h, strings.Trim(line[len(h):], " :-"), true
		}
	}
	return "", "", false
}

// Assemble builds a Document from lines. The diagrams slice and tables map
// are read, not modified: the assembler claims from private copies and
// reports whatever is left on Document.Orphans.
func Assemble(lines []string, diagrams []types.Diagram, tables map[string]types.Table, opts ...Option) (*Document, error) {
	if strings.TrimSpace(strings.Join(lines, "\n")) == "" {
		return nil, ErrEmptyInput
	}

	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	a := &assembler{
		doc:      &Document{Title: ExtractTitle(lines)},
		diagrams: newDiagramPool(diagrams),
		tables:   newTableSet(tables),
	}
	for _, line := range lines {
		a.feed(strings.TrimSpace(line))
	}
	a.close()

	a.doc.Orphans = Orphans{
		Diagrams: a.diagrams.unclaimed(),
		Tables:   a.tables.keys(),
	}
	if o.warnOrphans {
		warnOrphans(o.logger, a.doc.Orphans)
	}
	return a.doc, nil
}

// Build splits text into lines, assembles it, and renders the result once.
func Build(text string, r Renderer, diagrams []types.Diagram, tables map[string]types.Table, opts ...Option) ([]byte, *Document, error) {
	doc, err := Assemble(strings.Split(text, "\n"), diagrams, tables, opts...)
	if err != nil {
		return nil, nil, err
	}
	data, err := r.Render(doc)
	if err != nil {
		return nil, doc, fmt.Errorf("rendering document: %w", err)
	}
	return data, doc, nil
}

func warnOrphans(l *zap.Logger, o Orphans) {
	for _, d := range o.Diagrams {
		l.Warn("diagram not attached: no matching section heading",
			zap.String("image", d.ImagePath),
			zap.String("section", d.Section))
	}
	for _, key := range o.Tables {
		l.Warn("table not attached: no matching section heading",
			zap.String("section", key))
	}
}

type state int

const (
	noSection state = iota
	inSection
	closed
)

type assembler struct {
	state    state
	doc      *Document
	buf      []string
	diagrams *diagramPool
	tables   *tableSet
}

// feed processes one trimmed line.
func (a *assembler) feed(line string) {
	if line == "" || a.state == closed {
		return
	}
	heading, rest, ok := matchHeading(line)
	if !ok {
		a.buf = append(a.buf, line)
		return
	}
	a.flush()
	a.doc.Sections = append(a.doc.Sections, Section{Heading: heading})
	a.state = inSection
	if rest != "" {
		a.buf = append(a.buf, rest)
	}
}

// close flushes the open section and ends assembly.
func (a *assembler) close() {
	a.flush()
	a.state = closed
}

// flush moves buffered lines into the current section and claims its
// attachments. It does nothing when the buffer is empty, so a heading with
// no body gets no diagrams or table.
func (a *assembler) flush() {
	if len(a.buf) == 0 {
		return
	}
	if a.state == noSection {
		a.doc.Sections = append(a.doc.Sections, Section{})
	}
	sec := &a.doc.Sections[len(a.doc.Sections)-1]
	sec.Paragraphs = append(sec.Paragraphs, a.buf...)
	a.buf = nil

	if sec.Heading == "" {
		return
	}
	sec.Diagrams = append(sec.Diagrams, a.diagrams.claim(sec.Heading)...)
	if t, ok := a.tables.claim(sec.Heading); ok {
		sec.Table = &t
	}
}
