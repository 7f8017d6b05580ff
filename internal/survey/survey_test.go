// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package survey

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/internal/assemble"
	"github.com/pdiddy/research-assistant/pkg/types"
)

func sampleRow() types.SurveyRow {
	return types.SurveyRow{
		Title:                   "Agents at Scale",
		Link:                    "http://arxiv.org/abs/2401.00001v1",
		Summary:                 "This paper studies agents, at scale.",
		AdvantagesDisadvantages: "Advantages: fast. Disadvantages: costly!",
		Review:                  "Sound methodology.",
		Recommendations:         "Test on robots.",
		Section:                 "Introduction",
	}
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"mixed punctuation", "One. Two! Three? Four", []string{"One.", "Two!", "Three?", "Four"}},
		{"no space after dot", "v1.2 is out. Done.", []string{"v1.2 is out.", "Done."}},
		{"extra spaces", "  A.   B.  ", []string{"A.", "B."}},
		{"empty", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sentences(tt.in))
		})
	}
}

func TestBullets(t *testing.T) {
	assert.Equal(t, "- Fast.\n- Cheap.", Bullets("Fast. Cheap. Small.", 2))
	assert.Equal(t, "- - one.\n- two", Bullets("• one. two", 5))
	assert.Equal(t, "", Bullets("", 5))
	assert.Len(t, strings.Split(Bullets("a. b. c. d. e. f. g.", 5), "\n"), 5)
}

func TestWriteCSV(t *testing.T) {
	row := sampleRow()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []types.SurveyRow{row}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Columns(), records[0])
	assert.Equal(t, Fields(row), records[1])
	assert.Equal(t, "This paper studies agents, at scale.", records[1][2])
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, []types.SurveyRow{sampleRow()}))

	var got []types.SurveyRow
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Agents at Scale", got[0].Title)
	assert.Contains(t, buf.String(), "advantages_disadvantages:")

	buf.Reset()
	require.NoError(t, WriteYAML(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestKeywords(t *testing.T) {
	assert.Equal(t, "multi-agent, systems, research", Keywords("multi-agent systems"))
	assert.Equal(t, "AI, education, research", Keywords("AI, education, ai Research"))
	assert.Equal(t, "research", Keywords(""))
}

func TestIEEETextAssembles(t *testing.T) {
	entries := []Entry{
		{
			Paper: types.Paper{Title: "Agents\n  at Scale", Summary: "We study\nagents."},
			Row:   sampleRow(),
		},
		{
			Paper: types.Paper{Title: "Second Paper"},
		},
	}
	text := IEEEText("multi-agent systems", entries)

	doc, err := assemble.Assemble(strings.Split(text, "\n"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Literature Review: multi-agent systems", doc.Title)

	perPaper := len(assemble.Headings())
	require.Len(t, doc.Sections, 1+2*perPaper)
	assert.Equal(t, "Title", doc.Sections[1].Heading)
	assert.Equal(t, "Agents at Scale", doc.Sections[1].Body())
	assert.Equal(t, "We study agents.", doc.Sections[2].Body())
	assert.Equal(t, "- Advantages: fast.\n- Disadvantages: costly!", doc.Sections[7].Body())

	second := doc.Sections[1+perPaper:]
	assert.Equal(t, "Second Paper", second[0].Body())
	assert.Equal(t, "This paper explores second paper.", second[3].Body())
	assert.Equal(t, discussionText, second[8].Body())
}
