// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/pdiddy/research-assistant/internal/clean"
)

// role is one fixed assistant: a system instruction and a prompt template
// filled with the text under analysis.
type role struct {
	name   string
	system string
	prompt *template.Template
}

var (
	summarizer = role{
		name:   "summarizer",
		system: "Summarize the retrieved research papers and present concise summaries.",
		prompt: template.Must(template.New("summarize").Parse(`Summarize this paper: {{.}}`)),
	}
	assessor = role{
		name:   "advantages_disadvantages",
		system: "Provide advantages and disadvantages in a pointwise format.",
		prompt: template.Must(template.New("advantages").Parse(`Provide advantages and disadvantages for this paper: {{.}}`)),
	}
	reviewer = role{
		name:   "quality_reviewer",
		system: "Review the quality of research papers: soundness of method, strength of evidence, and clarity.",
		prompt: template.Must(template.New("review").Parse(`Give a short quality review of this paper: {{.}}`)),
	}
	advisor = role{
		name:   "recommender",
		system: "Recommend follow-up research topics based on a paper summary.",
		prompt: template.Must(template.New("recommend").Parse(`Suggest research topics and next steps that follow from this paper: {{.}}`)),
	}
)

// Agents runs the fixed prompts against a Generator.
type Agents struct {
	Gen Generator
}

// Summarize asks for a concise summary of a paper abstract.
func (a *Agents) Summarize(ctx context.Context, abstract string) (clean.Utterance, error) {
	return a.ask(ctx, summarizer, abstract)
}

// AdvantagesDisadvantages asks for pointwise pros and cons of a summary.
func (a *Agents) AdvantagesDisadvantages(ctx context.Context, summary string) (clean.Utterance, error) {
	return a.ask(ctx, assessor, summary)
}

// QualityReview asks for a short quality review of a summary.
func (a *Agents) QualityReview(ctx context.Context, summary string) (clean.Utterance, error) {
	return a.ask(ctx, reviewer, summary)
}

// Recommendations asks for follow-up research topics.
func (a *Agents) Recommendations(ctx context.Context, summary string) (clean.Utterance, error) {
	return a.ask(ctx, advisor, summary)
}

func (a *Agents) ask(ctx context.Context, r role, text string) (clean.Utterance, error) {
	var buf bytes.Buffer
	if err := r.prompt.Execute(&buf, text); err != nil {
		return clean.Utterance{}, fmt.Errorf("building %s prompt: %w", r.name, err)
	}
	u, err := a.Gen.Generate(ctx, r.system, buf.String())
	if err != nil {
		return clean.Utterance{}, fmt.Errorf("%s: %w", r.name, err)
	}
	return u, nil
}
