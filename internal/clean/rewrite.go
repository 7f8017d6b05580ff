// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clean

import (
	"regexp"
	"strings"
)

// Rewrite is one named text pass. Apply must be pure and may only delete
// characters.
type Rewrite struct {
	Name  string
	Apply func(string) string
}

// passes is the normalization order. Block removal runs before marker
// removal so that a closed <think> block disappears with its content.
var passes = []Rewrite{
	{"reasoning-blocks", StripReasoningBlocks},
	{"reasoning-markers", StripReasoningMarkers},
	{"unbold", Unbold},
	{"labeled-reasoning", StripLabeledReasoning},
	{"leading-label", StripLeadingLabel},
	{"cue-lines", DropCueLines},
	{"reasoning-lines", DropReasoningLines},
	{"blank-lines", CollapseBlankLines},
}

// Passes returns the rewrite passes in application order.
func Passes() []Rewrite {
	out := make([]Rewrite, len(passes))
	copy(out, passes)
	return out
}

var (
	// reasoningBlockRe matches a closed reasoning block and its content,
	// across lines: <think>...</think>, <thinking>...</thinking>.
	reasoningBlockRe = regexp.MustCompile(`(?is)<\s*(?:think|thinking|thoughts)\s*>.*?<\s*/\s*(?:think|thinking|thoughts)\s*>`)

	// reasoningMarkerRe matches leftover markers: **THINK**, **[THINK]**,
	// [THINK], [/THINK], unpaired <think> or </think>, and empty <>.
	reasoningMarkerRe = regexp.MustCompile(`(?i)\*\*\[?think\]?\*\*|\[\s*/?\s*think\s*\]|<\s*/?\s*(?:think|thinking|thoughts)\s*>|<\s*>`)

	boldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)

	// labeledBlockRe matches a field label followed by an angle-bracket block
	// at the very start of the text.
	labeledBlockRe = regexp.MustCompile(`(?i)^\s*(?:summary|quality review|recommendations)\s*:\s*<[^>]*>`)

	leadingLabelRe = regexp.MustCompile(`(?i)^\s*(?:(?:summary|quality review|recommendations)\s*:\s*)+`)

	reasoningLineRe = regexp.MustCompile(`(?i)\b(?:I'll structure|I should|I remember|It's crucial|Avoid using)\b`)

	blankRunRe = regexp.MustCompile(`\n[ \t\r]*\n(?:[ \t\r]*\n)*`)
)

// sentenceCues are the sentence openers that end a labeled reasoning block.
// Matching is case-sensitive and not word-bounded: "It" also matches "Items".
var sentenceCues = []string{"The paper", "This paper", "It", "AI", "Artificial"}

// cuePrefixes open a first-person reasoning line. Compared lower-cased.
var cuePrefixes = []string{
	"okay",
	"alright",
	"let me",
	"i need to",
	"i'll",
	"i’ll",
	"first, i",
	"got it",
	"they want me to",
	"the user emphasized",
}

// StripReasoningBlocks removes closed reasoning blocks with their content.
//
//	"<THINK>plan</THINK>It works." -> "It works."
func StripReasoningBlocks(s string) string {
	return reasoningBlockRe.ReplaceAllString(s, "")
}

// StripReasoningMarkers removes stray reasoning markers, keeping the text
// around them.
//
//	"Summary: [THINK]The article" -> "Summary: The article"
func StripReasoningMarkers(s string) string {
	return reasoningMarkerRe.ReplaceAllString(s, "")
}

// Unbold removes paired ** emphasis markers and keeps the inner text.
//
//	"a **bold** claim" -> "a bold claim"
func Unbold(s string) string {
	return boldRe.ReplaceAllString(s, "$1")
}

// StripLabeledReasoning removes a leading field label, the angle-bracket
// block after it, and everything up to the first sentence cue.
//
//	"Summary: <plan> notes. The paper shows X" -> "The paper shows X"
//
// When no cue follows the block the text is returned unchanged. When the
// first cue is late in the text, legitimate content before it is deleted.
func StripLabeledReasoning(s string) string {
	loc := labeledBlockRe.FindStringIndex(s)
	if loc == nil {
		return s
	}
	rest := s[loc[1]:]
	cut := -1
	for _, cue := range sentenceCues {
		if i := strings.Index(rest, cue); i >= 0 && (cut < 0 || i < cut) {
			cut = i
		}
	}
	if cut < 0 {
		return s
	}
	return rest[cut:]
}

// StripLeadingLabel removes field labels at the start of the text.
//
//	"Summary: Quality Review: The study" -> "The study"
func StripLeadingLabel(s string) string {
	return leadingLabelRe.ReplaceAllString(s, "")
}

// DropCueLines drops every line that opens with a first-person reasoning
// cue such as "Okay" or "Let me".
func DropCueLines(s string) string {
	return filterLines(s, func(line string) bool {
		lower := strings.ToLower(strings.TrimLeft(line, " \t"))
		for _, cue := range cuePrefixes {
			if strings.HasPrefix(lower, cue) {
				return false
			}
		}
		return true
	})
}

// DropReasoningLines drops every line containing a reasoning indicator such
// as "I should" or "It's crucial".
func DropReasoningLines(s string) string {
	return filterLines(s, func(line string) bool {
		return !reasoningLineRe.MatchString(line)
	})
}

// CollapseBlankLines replaces runs of blank lines with a single line break
// and trims the result.
func CollapseBlankLines(s string) string {
	return strings.TrimSpace(blankRunRe.ReplaceAllString(s, "\n"))
}

// filterLines keeps the lines for which keep returns true. The input is
// returned as-is when nothing is dropped.
func filterLines(s string, keep func(string) bool) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0:0]
	for _, line := range lines {
		if keep(line) {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(lines) {
		return s
	}
	return strings.Join(kept, "\n")
}
