// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-assistant/internal/clean"
	"github.com/pdiddy/research-assistant/pkg/types"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatServer(t *testing.T, reply string, got *chatRequest) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   got.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": reply},
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(types.AIConfig{}, nil, nil)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(types.AIConfig{APIKey: "k"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.Model())
}

func TestClientGenerate(t *testing.T) {
	var got chatRequest
	ts := chatServer(t, "<think>plan</think>It works.", &got)

	c, err := NewClient(types.AIConfig{APIKey: "test-key", BaseURL: ts.URL, Model: "test-model"}, ts.Client(), nil)
	require.NoError(t, err)

	u, err := c.Generate(context.Background(), "be brief", "hello")
	require.NoError(t, err)
	assert.Equal(t, "<think>plan</think>It works.", u.Content)

	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "be brief", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "hello", got.Messages[1].Content)
}

func TestClientGenerateHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	c, err := NewClient(types.AIConfig{APIKey: "test-key", BaseURL: ts.URL}, ts.Client(), nil)
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "s", "p")
	assert.Error(t, err)
}

type fakeGenerator struct {
	system, prompt string
	reply          string
	err            error
}

func (f *fakeGenerator) Generate(_ context.Context, system, prompt string) (clean.Utterance, error) {
	f.system, f.prompt = system, prompt
	return clean.Utterance{Content: f.reply}, f.err
}

func TestAgentsPrompts(t *testing.T) {
	tests := []struct {
		name       string
		call       func(*Agents) (clean.Utterance, error)
		wantPrompt string
		wantSystem string
	}{
		{
			name:       "summarize",
			call:       func(a *Agents) (clean.Utterance, error) { return a.Summarize(context.Background(), "abstract text") },
			wantPrompt: "Summarize this paper: abstract text",
			wantSystem: summarizer.system,
		},
		{
			name: "advantages",
			call: func(a *Agents) (clean.Utterance, error) {
				return a.AdvantagesDisadvantages(context.Background(), "sum")
			},
			wantPrompt: "Provide advantages and disadvantages for this paper: sum",
			wantSystem: assessor.system,
		},
		{
			name:       "review",
			call:       func(a *Agents) (clean.Utterance, error) { return a.QualityReview(context.Background(), "sum") },
			wantPrompt: "Give a short quality review of this paper: sum",
			wantSystem: reviewer.system,
		},
		{
			name:       "recommendations",
			call:       func(a *Agents) (clean.Utterance, error) { return a.Recommendations(context.Background(), "sum") },
			wantPrompt: "Suggest research topics and next steps that follow from this paper: sum",
			wantSystem: advisor.system,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{reply: "ok"}
			u, err := tt.call(&Agents{Gen: gen})
			require.NoError(t, err)
			assert.Equal(t, "ok", u.Content)
			assert.Equal(t, tt.wantPrompt, gen.prompt)
			assert.Equal(t, tt.wantSystem, gen.system)
		})
	}
}

func TestAgentsWrapErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := (&Agents{Gen: &fakeGenerator{err: boom}}).Summarize(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "summarizer")
}
