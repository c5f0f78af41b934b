package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	adapters "github.com/aescanero/dago-adapters/pkg/llm"
	"github.com/aescanero/dago-libs/pkg/domain"
	"github.com/aescanero/dago-libs/pkg/ports"
	"go.uber.org/zap"
)

// MaxTokens caps the completion length of every call
const MaxTokens = 1024

// ErrEmptyPrompt is returned for blank prompts
var ErrEmptyPrompt = errors.New("empty prompt")

// Completion sends a prompt and returns the model's text
type Completion func(ctx context.Context, prompt string) (string, error)

// NewProvider initializes a provider client using dago-adapters
func NewProvider(provider, apiKey string, logger *zap.Logger) (ports.LLMClient, error) {
	return adapters.NewClient(&adapters.Config{
		Provider: provider,
		APIKey:   apiKey,
		Logger:   logger,
	})
}

// FromPort adapts a provider client to a Completion
func FromPort(client ports.LLMClient, model string) Completion {
	return func(ctx context.Context, prompt string) (string, error) {
		req := &domain.LLMRequest{
			Model: model,
			Messages: []domain.Message{
				{
					Role:    "user",
					Content: prompt,
				},
			},
			MaxTokens: MaxTokens,
		}

		respInterface, err := client.GenerateCompletion(ctx, req)
		if err != nil {
			return "", fmt.Errorf("llm completion failed: %w", err)
		}

		resp, ok := respInterface.(*domain.LLMResponse)
		if !ok {
			return "", fmt.Errorf("unexpected response type from LLM")
		}

		return resp.Content, nil
	}
}

// Client calls the model for template helpers
type Client struct {
	complete Completion
	timeout  time.Duration
	logger   *zap.Logger
}

// NewClient creates a new client. A non-positive timeout leaves calls bound
// only by the caller's context.
func NewClient(complete Completion, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		complete: complete,
		timeout:  timeout,
		logger:   logger,
	}
}

// Complete sends prompt to the model
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.Debug("calling llm", zap.Int("prompt_length", len(prompt)))

	response, err := c.complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	c.logger.Debug("llm response received", zap.String("response", response))
	return response, nil
}

// Route asks the model to classify prompt and maps the answer onto routes.
// A failed call or an unmatched answer yields fallback.
func (c *Client) Route(ctx context.Context, prompt string, routes map[string]string, fallback string) (string, error) {
	if len(routes) == 0 {
		return "", fmt.Errorf("no routes configured")
	}

	response, err := c.Complete(ctx, prompt)
	if err != nil {
		if errors.Is(err, ErrEmptyPrompt) || ctx.Err() != nil {
			return "", err
		}
		c.logger.Error("llm call failed", zap.Error(err))
		return fallback, nil
	}

	target, matched := MatchRoute(response, routes)
	if !matched {
		c.logger.Warn("llm response did not match any route",
			zap.String("response", response),
		)
		return fallback, nil
	}

	return target, nil
}

// MatchRoute maps a model answer onto a route target
func MatchRoute(response string, routes map[string]string) (string, bool) {
	normalized := strings.TrimSpace(strings.ToLower(response))

	// Try exact match first
	if target, ok := routes[normalized]; ok {
		return target, true
	}

	keys := make([]string, 0, len(routes))
	for key := range routes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.EqualFold(key, normalized) {
			return routes[key], true
		}
	}

	// Try partial match - check if response contains any route key
	for _, key := range keys {
		if key != "" && strings.Contains(normalized, strings.ToLower(key)) {
			return routes[key], true
		}
	}

	return "", false
}
