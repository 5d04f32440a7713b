// Package openai provides the AI query-expansion collaborator behind an
// OpenAI-compatible chat API (Groq in production).
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/notevault/notevault-go/internal/domain"
)

const systemPrompt = "You are a search query expander. Given a search query, " +
	"return 3-5 related keywords or short phrases that someone might use as " +
	"titles or tags for notes about this topic. Return ONLY a JSON array of " +
	"strings, nothing else. " +
	`Example: ["machine learning", "ML", "neural networks", "deep learning", "AI"]`

// Expander expands a search query into related terms via a chat completion.
type Expander struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Config holds the expansion provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewExpander creates an OpenAI-compatible query expander.
func NewExpander(cfg *Config) *Expander {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Expander{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}
}

// Expand returns the expanded term list with the original query first.
// All provider failures are wrapped with domain.ErrExpansionUnavailable so
// the search layer can degrade instead of failing.
func (e *Expander) Expand(ctx context.Context, query string) ([]string, error) {
	start := time.Now()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		MaxTokens:   100,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response: %w", domain.ErrExpansionUnavailable)
	}

	terms, err := parseTerms(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("query expanded",
		zap.String("query", query),
		zap.Int("terms", len(terms)),
		zap.Duration("duration", time.Since(start)))

	return withOriginal(query, terms), nil
}

// parseTerms decodes the model output, tolerating a fenced code block.
func parseTerms(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		if _, rest, ok := strings.Cut(raw, "\n"); ok {
			raw = rest
		}
		if idx := strings.LastIndex(raw, "```"); idx >= 0 {
			raw = raw[:idx]
		}
		raw = strings.TrimSpace(raw)
	}

	var terms []string
	if err := json.Unmarshal([]byte(raw), &terms); err != nil {
		return nil, fmt.Errorf("parse expansion output: %w", domain.ErrExpansionUnavailable)
	}
	return terms, nil
}

// withOriginal prepends the original query and drops duplicate terms,
// keeping the original itself intact.
func withOriginal(query string, terms []string) []string {
	out := []string{query}
	seen := map[string]bool{strings.ToLower(query): true}
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}

// parseAPIError extracts a readable message from the provider error. All
// errors wrap domain.ErrExpansionUnavailable.
func parseAPIError(err error) error {
	wrap := domain.ErrExpansionUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("expansion API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("expansion API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("expansion request failed: %w", wrap)
}
