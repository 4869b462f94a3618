package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"seal-qa/internal/domain"
)

const (
	classifierMaxTokens   = 50
	classifierTemperature = 0.1
)

// Classifier decides the search strategy for a question before any retrieval
// happens. Refuse must short-circuit the pipeline.
type Classifier interface {
	Classify(ctx context.Context, question string) (domain.SearchStrategy, error)
}

type llmClassifier struct {
	llmClient domain.LLMClient
	logger    *slog.Logger
}

// NewClassifier creates an LLM-backed question classifier.
func NewClassifier(llmClient domain.LLMClient, logger *slog.Logger) Classifier {
	return &llmClassifier{
		llmClient: llmClient,
		logger:    logger,
	}
}

func (c *llmClassifier) Classify(ctx context.Context, question string) (domain.SearchStrategy, error) {
	prompt := buildClassifierPrompt(question)

	raw, err := c.llmClient.Complete(ctx, prompt, classifierMaxTokens, classifierTemperature)
	if err != nil {
		return "", &domain.ClassificationError{Reason: "classifier call failed", Err: err}
	}

	strategy, err := parseStrategy(raw)
	if err != nil {
		c.logger.Warn("classification_output_unparseable",
			slog.String("raw_output", raw),
		)
		return "", err
	}

	c.logger.Info("question_classified",
		slog.String("strategy", string(strategy)),
	)
	return strategy, nil
}

// parseStrategy scans the lowercased model output for the three strategy
// labels. Exactly one label family must match; zero or several matches means
// the output is unusable and the request fails rather than guessing.
func parseStrategy(raw string) (domain.SearchStrategy, error) {
	lowered := strings.ToLower(raw)

	var matched []domain.SearchStrategy
	if strings.Contains(lowered, "refuse") {
		matched = append(matched, domain.StrategyRefuse)
	}
	if strings.Contains(lowered, "facts") {
		matched = append(matched, domain.StrategyFactsOnly)
	}
	if strings.Contains(lowered, "external") {
		matched = append(matched, domain.StrategyExternalSafe)
	}

	switch len(matched) {
	case 1:
		return matched[0], nil
	case 0:
		return "", &domain.ClassificationError{Reason: "no strategy label in classifier output"}
	default:
		return "", &domain.ClassificationError{
			Reason: fmt.Sprintf("ambiguous classifier output matched %d strategy labels", len(matched)),
		}
	}
}

func buildClassifierPrompt(question string) string {
	return fmt.Sprintf(`Analyze this question: %q

Determine the appropriate search strategy:

1. "refuse" - if the question is about sensitive topics like:
   - Pricing, cost, price, how much
   - Warranty, guarantee, coverage
   - Availability, stock, when available, release date
   - Purchasing, buying, where to buy
   - Any financial or commercial information

2. "facts_only" - if the question is about:
   - Technical specifications, features, specs
   - Battery capacity, range, performance
   - Dimensions, size, weight
   - General information that should come from official facts

3. "external_safe" - if the question is about:
   - Reviews, opinions, experiences
   - What reviewers say, what people think
   - Non-sensitive subjective information
   - User experiences and impressions

Respond with exactly one label: refuse, facts_only, or external_safe.`, question)
}
