// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm calls a hosted chat model and wraps it with the fixed prompts
// used to summarize and assess papers. Replies are returned raw; callers
// normalize them before use.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/clean"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Defaults for the Groq OpenAI-compatible endpoint.
const (
	DefaultBaseURL = "https://api.groq.com/openai/v1/"
	DefaultModel   = "deepseek-r1-distill-llama-70b"
)

// ErrNoAPIKey is returned by NewClient when no key is configured.
var ErrNoAPIKey = errors.New("llm: API key is not set (GROQ_API_KEY or .secrets/groq-api-key)")

// ErrNoChoices is returned when the model reply carries no choices.
var ErrNoChoices = errors.New("llm: response has no choices")

// Generator produces one raw reply for a system instruction and a user
// prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (clean.Utterance, error)
}

// Client is a Generator backed by an OpenAI-compatible chat completions API.
type Client struct {
	api    openai.Client
	model  string
	logger *zap.Logger
}

// NewClient builds a Client from cfg. Empty fields fall back to
// DefaultBaseURL and DefaultModel. httpClient may be nil.
func NewClient(cfg types.AIConfig, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(base),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &Client{
		api:    openai.NewClient(opts...),
		model:  model,
		logger: logger,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate sends one chat completion request and returns the first choice.
func (c *Client) Generate(ctx context.Context, system, prompt string) (clean.Utterance, error) {
	start := time.Now()
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return clean.Utterance{}, fmt.Errorf("chat completion (%s): %w", c.model, err)
	}
	if len(resp.Choices) == 0 {
		return clean.Utterance{}, ErrNoChoices
	}

	c.logger.Debug("chat completion",
		zap.String("model", c.model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens))
	return clean.Utterance{Content: resp.Choices[0].Message.Content}, nil
}
