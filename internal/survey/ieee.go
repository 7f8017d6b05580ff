// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package survey

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Entry pairs a fetched paper with its survey row.
type Entry struct {
	Paper types.Paper
	Row   types.SurveyRow
}

// Placeholder bodies for sections with no model output.
const (
	relatedWorkText   = "Prior works on %s are discussed."
	surveyText        = "Various strategies and architectures are reviewed."
	methodologyText   = "- The authors propose a unique method.\n- Simulation-based evaluation conducted."
	resultsText       = "Observations are documented and evaluated."
	discussionText    = "Benefits and challenges are discussed."
	conclusionText    = "The paper concludes with suggestions for future exploration."
	methodologyBullet = 5
)

// Keywords returns the distinct words of query, in order, followed by
// "research".
func Keywords(query string) string {
	seen := map[string]bool{"research": true}
	var out []string
	for _, f := range strings.FieldsFunc(query, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	}) {
		key := strings.ToLower(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return strings.Join(append(out, "research"), ", ")
}

// IEEEText builds the heading-tagged report text for a query. The text
// opens with a document title line and then holds one block per entry, each
// with the full heading sequence. Section bodies use the cleaned model
// output where there is one.
func IEEEText(query string, entries []Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: Literature Review: %s\n\n", oneLine(query))
	for _, e := range entries {
		writeEntry(&b, query, e)
	}
	return b.String()
}

func writeEntry(b *strings.Builder, query string, e Entry) {
	title := oneLine(e.Paper.Title)
	if title == "" {
		title = oneLine(e.Row.Title)
	}
	section := func(heading, body string) {
		fmt.Fprintf(b, "%s:\n%s\n\n", heading, body)
	}

	fmt.Fprintf(b, "Title: %s\n\n", title)
	section("Abstract", or(oneLine(e.Paper.Summary), e.Row.Summary))
	section("Keywords", Keywords(query))
	section("Introduction", or(e.Row.Summary, fmt.Sprintf("This paper explores %s.", strings.ToLower(title))))
	section("Related Work", fmt.Sprintf(relatedWorkText, strings.ToLower(oneLine(query))))
	section("Literature Survey", or(e.Row.Review, surveyText))
	section("Methodology", or(Bullets(e.Row.AdvantagesDisadvantages, methodologyBullet), methodologyText))
	section("Experimental Results", resultsText)
	section("Discussion", or(e.Row.Recommendations, discussionText))
	section("Conclusion and Future Work", conclusionText)
}

// oneLine collapses all whitespace runs in s to single spaces.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func or(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
