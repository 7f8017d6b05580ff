// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns cleaned model output to a report section using
// an ordered keyword rule table. The first rule whose keyword appears in the
// lower-cased text wins; text matching no rule is Uncategorized.
package classify

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/research-assistant/internal/clean"
)

// Tag is a classifier section label.
type Tag string

const (
	Abstract              Tag = "Abstract"
	Introduction          Tag = "Introduction"
	RelatedResearch       Tag = "Related Research"
	LiteratureSurvey      Tag = "Literature Survey"
	Methodology           Tag = "Methodology"
	ExperimentsAndResults Tag = "Experiments and Results"
	FutureWork            Tag = "Future Work"
	Uncategorized         Tag = "Uncategorized"
)

// tagOrder is the presentation order of sections, independent of rule
// precedence.
var tagOrder = []Tag{
	Abstract,
	Introduction,
	RelatedResearch,
	LiteratureSurvey,
	Methodology,
	ExperimentsAndResults,
	FutureWork,
	Uncategorized,
}

// Tags returns all tags in presentation order.
func Tags() []Tag {
	out := make([]Tag, len(tagOrder))
	copy(out, tagOrder)
	return out
}

// Rule maps any of its lower-case keywords to a tag.
type Rule struct {
	Keywords []string
	Tag      Tag
}

// Matches reports whether lower contains any keyword. lower must already be
// lower-cased.
func (r Rule) Matches(lower string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// rules is evaluated top to bottom. Order is part of the contract: text
// mentioning both "methodology" and "future work" is Methodology.
var rules = []Rule{
	{Keywords: []string{"hypothetical case", "methodology"}, Tag: Methodology},
	{Keywords: []string{"experiment", "result"}, Tag: ExperimentsAndResults},
	{Keywords: []string{"future work", "further research"}, Tag: FutureWork},
	{Keywords: []string{"literature", "survey"}, Tag: LiteratureSurvey},
	{Keywords: []string{"research topics", "recommendations", "related work"}, Tag: RelatedResearch},
	{Keywords: []string{"introduction", "this paper"}, Tag: Introduction},
	{Keywords: []string{"framework", "contribution", "competencies"}, Tag: Abstract},
}

// Rules returns the rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Classify returns the tag of the first matching rule, or Uncategorized.
func Classify(text string) Tag {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.Matches(lower) {
			return r.Tag
		}
	}
	return Uncategorized
}

// Grouped holds cleaned paragraphs bucketed by tag, each bucket in input
// order.
type Grouped map[Tag][]string

// Group cleans every raw output, classifies it, and buckets it. Outputs that
// clean to empty text are dropped.
func Group(raw []any) Grouped {
	g := make(Grouped)
	for _, r := range raw {
		cleaned := clean.Normalize(r)
		if cleaned == "" {
			continue
		}
		tag := Classify(cleaned)
		g[tag] = append(g[tag], cleaned)
	}
	return g
}

// Format writes non-empty sections in presentation order, each heading
// underlined with dashes and followed by its paragraphs.
func (g Grouped) Format(w io.Writer) {
	for _, tag := range tagOrder {
		paras := g[tag]
		if len(paras) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n%s\n", tag, strings.Repeat("-", len(tag)))
		for _, p := range paras {
			fmt.Fprintf(w, "%s\n\n", strings.TrimSpace(p))
		}
	}
}
