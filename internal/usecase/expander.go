package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"seal-qa/internal/domain"
)

const (
	expanderMaxTokens   = 200
	expanderTemperature = 0.3
	maxSearchTerms      = 7
	maxFallbackTerms    = 5
	minTermLength       = 3
	minFallbackWordLen  = 4
)

var wordPattern = regexp.MustCompile(`[a-zA-Z0-9]+`)

// QueryExpander turns a question into a handful of short search terms tuned
// for one corpus. It never fails and never returns an empty slice: when the
// LLM is unavailable the question itself is decomposed into keywords.
type QueryExpander interface {
	Expand(ctx context.Context, question string, corpus domain.Corpus) []string
}

type llmQueryExpander struct {
	llmClient   domain.LLMClient
	brandTokens domain.Lexicon
	logger      *slog.Logger
}

// NewQueryExpander creates an LLM-backed query expander. brandTokens lists
// product-name words to strip from generated terms, since the corpus holds
// nothing but this product and the name only adds noise to the search.
func NewQueryExpander(llmClient domain.LLMClient, brandTokens domain.Lexicon, logger *slog.Logger) QueryExpander {
	return &llmQueryExpander{
		llmClient:   llmClient,
		brandTokens: brandTokens,
		logger:      logger,
	}
}

func (e *llmQueryExpander) Expand(ctx context.Context, question string, corpus domain.Corpus) []string {
	prompt := e.buildPrompt(question, corpus)

	raw, err := e.llmClient.Complete(ctx, prompt, expanderMaxTokens, expanderTemperature)
	if err != nil {
		e.logger.Warn("query_expansion_failed",
			slog.String("corpus", string(corpus)),
			slog.String("error", err.Error()),
		)
		return e.fallbackTerms(question)
	}

	terms := e.cleanTerms(raw)
	if len(terms) == 0 {
		e.logger.Warn("query_expansion_empty",
			slog.String("corpus", string(corpus)),
		)
		return e.fallbackTerms(question)
	}

	return terms
}

func (e *llmQueryExpander) cleanTerms(raw string) []string {
	seen := make(map[string]bool)
	var terms []string

	for _, line := range strings.Split(raw, "\n") {
		term := strings.TrimSpace(line)
		term = strings.TrimLeft(term, "-*•0123456789.) ")
		term = strings.TrimSpace(term)
		if len(term) < minTermLength {
			continue
		}
		term = e.stripBrandTokens(term)
		if len(term) < minTermLength {
			continue
		}
		key := strings.ToLower(term)
		if seen[key] {
			continue
		}
		seen[key] = true
		terms = append(terms, term)
		if len(terms) == maxSearchTerms {
			break
		}
	}

	return terms
}

// fallbackTerms decomposes the question into its longer words so retrieval
// still has something to search with when expansion is unavailable.
func (e *llmQueryExpander) fallbackTerms(question string) []string {
	var terms []string
	for _, word := range wordPattern.FindAllString(strings.ToLower(question), -1) {
		if len(word) < minFallbackWordLen {
			continue
		}
		if e.brandTokens.ContainsWord(word) {
			continue
		}
		terms = append(terms, word)
		if len(terms) == maxFallbackTerms {
			break
		}
	}

	if len(terms) == 0 {
		return []string{question}
	}
	return terms
}

func (e *llmQueryExpander) stripBrandTokens(term string) string {
	words := strings.Fields(term)
	kept := words[:0]
	for _, w := range words {
		if e.brandTokens.ContainsWord(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func (e *llmQueryExpander) buildPrompt(question string, corpus domain.Corpus) string {
	if corpus == domain.CorpusExternal {
		return fmt.Sprintf(`Question: %q

Generate 5-7 search terms to find relevant reviews and opinions about the BYD Seal.
Focus on terms that would appear in review content, opinions, and experiences.

Examples:
"What do reviewers say about the audio?" → audio system, sound quality, speakers, music
"What do reviewers say about the interior?" → interior quality, cabin, seats, dashboard
"What do reviewers say about the driving experience?" → driving, handling, performance, experience
"What do reviewers say about the design?" → design, styling, appearance, looks

Your search terms (one per line):`, question)
	}

	return fmt.Sprintf(`Question: %q

Generate 5-7 search terms to find this information in the BYD Seal facts database. Use simple, core terms that would match relevant content.
Focus on the essential information being asked for, not the full question.

IMPORTANT: The facts database is specifically about the BYD Seal, so:
 - If the question mentions "BYD Seal", "BYD", or "Seal", treat it the same as if it didn't mention the car name
 - Focus ONLY on the core concept being asked for (battery capacity, trim levels, range, etc.)
 - Do NOT include "BYD Seal", "BYD", or "Seal" in your search terms
 - The facts database already contains only BYD Seal information

Examples:
"What is the battery capacity of the byd seal?" → battery capacity, kWh, battery size, energy storage
"What are the trim levels?" → trim levels, Design, Premium, Performance, variants
"What is the range?" → driving range, WLTP range, km range, battery range, distance

Focus on the core concept being asked for, not the exact wording. Use simple terms that would appear in technical specifications.

Your search terms (one per line):`, question)
}
