// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clean strips reasoning artifacts, Markdown emphasis, and field
// labels from raw language-model output.
//
// Normalization is a fixed sequence of deletion-only rewrite passes (see
// Passes). Normalize repeats the sequence until the text stops changing, so
// it is idempotent: Normalize(Normalize(x)) == Normalize(x).
package clean

import "fmt"

// Utterance is the record form of a raw model response.
type Utterance struct {
	Content string `json:"content" yaml:"content"`
}

// Text coerces a raw model response to a string. Records contribute their
// content field; anything unrecognized is formatted with fmt.Sprint. A nil
// input or a record without content yields "".
func Text(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case Utterance:
		return v.Content
	case *Utterance:
		if v == nil {
			return ""
		}
		return v.Content
	case map[string]string:
		return v["content"]
	case map[string]any:
		return Text(v["content"])
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Normalize coerces raw to text and cleans it.
func Normalize(raw any) string {
	return NormalizeText(Text(raw))
}

// NormalizeText applies every pass in order and repeats until a full round
// leaves the text unchanged. Each pass only removes characters, so the loop
// terminates.
func NormalizeText(s string) string {
	for {
		next := s
		for _, p := range passes {
			next = p.Apply(next)
		}
		if next == s {
			return next
		}
		s = next
	}
}

// Trace applies a single round of passes and reports the text after each
// one. It is a debugging aid for the clean --trace command.
func Trace(s string) []Step {
	steps := make([]Step, 0, len(passes))
	for _, p := range passes {
		s = p.Apply(s)
		steps = append(steps, Step{Pass: p.Name, Text: s})
	}
	return steps
}

// Step records the output of one pass.
type Step struct {
	Pass string
	Text string
}
