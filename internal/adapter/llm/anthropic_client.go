package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"seal-qa/internal/domain"
)

// AnthropicClient is the alternate completion provider, selected via
// LLM_PROVIDER=anthropic.
type AnthropicClient struct {
	client  anthropic.Client
	model   string
	limiter *rate.Limiter
}

// NewAnthropicClient constructs a completion client backed by the Anthropic
// Messages API. requestsPerSecond <= 0 disables client-side rate limiting.
func NewAnthropicClient(apiKey, model string, requestsPerSecond float64) *AnthropicClient {
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return &AnthropicClient{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		limiter: limiter,
	}
}

func (c *AnthropicClient) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if temperature > 0 {
		params.Temperature = anthropic.Float(temperature)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("anthropic response contained no text blocks")
	}

	return strings.TrimSpace(text.String()), nil
}

// Version returns the wrapped model name.
func (c *AnthropicClient) Version() string {
	return c.model
}

var _ domain.LLMClient = (*AnthropicClient)(nil)
