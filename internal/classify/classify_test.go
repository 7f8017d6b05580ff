// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-assistant/internal/clean"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Tag
	}{
		{"hypothetical case", "The framework uses a hypothetical case to demonstrate.", Methodology},
		{"methodology", "Our METHODOLOGY relies on surveys.", Methodology},
		{"experiment", "Experiments on three datasets.", ExperimentsAndResults},
		{"result", "The results are promising.", ExperimentsAndResults},
		{"future work", "Future work will extend the model.", FutureWork},
		{"further research", "Further research is needed.", FutureWork},
		{"literature", "The literature on agents is broad.", LiteratureSurvey},
		{"survey", "A broad survey of agents.", LiteratureSurvey},
		{"research topics", "Suggested research topics include robotics.", RelatedResearch},
		{"recommendations", "Our recommendations follow.", RelatedResearch},
		{"related work", "Related work covers planners.", RelatedResearch},
		{"introduction", "An introduction to planning.", Introduction},
		{"this paper", "This paper explores AI in education.", Introduction},
		{"framework", "A framework with five parts.", Abstract},
		{"contribution", "Our main contribution is X.", Abstract},
		{"competencies", "Five competencies are defined.", Abstract},
		{"no keyword", "Cats sleep a lot.", Uncategorized},
		{"empty", "", Uncategorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Tag
	}{
		{"methodology beats future work", "The methodology is sound; future work extends it.", Methodology},
		{"results beat survey", "Survey results show a gap.", ExperimentsAndResults},
		{"future work beats literature", "Literature gaps motivate future work.", FutureWork},
		{"this paper loses to framework-less results", "This paper reports results.", ExperimentsAndResults},
		{"introduction beats framework", "This paper proposes a framework.", Introduction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassifyTotalAndDeterministic(t *testing.T) {
	valid := make(map[Tag]bool)
	for _, tag := range Tags() {
		valid[tag] = true
	}
	inputs := []string{"", "x", "Methodology", "RESULT", "random words", "this paper", "\n\t"}
	for _, in := range inputs {
		got := Classify(in)
		assert.True(t, valid[got], "Classify(%q) = %q is not a known tag", in, got)
		assert.Equal(t, got, Classify(in))
	}
}

func TestRulesCoverEveryTagButUncategorized(t *testing.T) {
	seen := make(map[Tag]bool)
	for _, r := range Rules() {
		seen[r.Tag] = true
	}
	for _, tag := range Tags() {
		if tag == Uncategorized {
			assert.False(t, seen[tag])
			continue
		}
		assert.True(t, seen[tag], "no rule for %q", tag)
	}
}

func TestGroupAndFormat(t *testing.T) {
	raw := []any{
		clean.Utterance{Content: "Summary: <think>Agent thought</think> This paper explores the impact of artificial intelligence (AI)."},
		map[string]any{"content": "Quality Review: <> The framework uses a hypothetical case to demonstrate methodology."},
		map[string]any{"content": "Recommendations: <> Suggested research topics include interdisciplinary AI and case studies."},
		"<think>only reasoning</think>",
	}

	g := Group(raw)
	require.Len(t, g[Introduction], 1)
	require.Len(t, g[Methodology], 1)
	require.Len(t, g[RelatedResearch], 1)
	assert.Equal(t, "This paper explores the impact of artificial intelligence (AI).", g[Introduction][0])

	var buf bytes.Buffer
	g.Format(&buf)
	out := buf.String()

	intro := strings.Index(out, "Introduction\n------------")
	related := strings.Index(out, "Related Research\n")
	method := strings.Index(out, "Methodology\n")
	require.GreaterOrEqual(t, intro, 0)
	assert.Less(t, intro, related)
	assert.Less(t, related, method)
	assert.NotContains(t, out, "Uncategorized")
	assert.NotContains(t, out, "think")
}
