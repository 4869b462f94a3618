package domain

import "context"

// LLMClient is the text-completion capability consumed by the classifier, the
// query expander, and the answer generator. Implementations must honor the
// context for cancellation and carry a bounded timeout.
type LLMClient interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
	Version() string
}
