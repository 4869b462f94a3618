package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"seal-qa/internal/domain"
)

const (
	generatorTemperature = 0.3
	maxChunkChars        = 1500
	charsPerToken        = 4
)

// AnswerGenerator synthesizes a grounded answer from retrieved chunks. The
// second return value is the set of chunks actually packed into the prompt
// context, which is also the citation candidate set.
type AnswerGenerator interface {
	Generate(ctx context.Context, question string, chunks []domain.DocumentChunk) (string, []domain.DocumentChunk, error)
}

type groundedAnswerGenerator struct {
	llmClient          domain.LLMClient
	contextTokenBudget int
	answerTokenBudget  int
	logger             *slog.Logger
}

// NewAnswerGenerator creates a generator with the given context and answer
// token budgets.
func NewAnswerGenerator(llmClient domain.LLMClient, contextTokenBudget, answerTokenBudget int, logger *slog.Logger) AnswerGenerator {
	return &groundedAnswerGenerator{
		llmClient:          llmClient,
		contextTokenBudget: contextTokenBudget,
		answerTokenBudget:  answerTokenBudget,
		logger:             logger,
	}
}

func (g *groundedAnswerGenerator) Generate(ctx context.Context, question string, chunks []domain.DocumentChunk) (string, []domain.DocumentChunk, error) {
	if len(chunks) == 0 {
		return "", nil, &domain.GenerationError{Reason: "no context chunks"}
	}

	contextText, usedChunks := g.buildContext(chunks)
	if len(usedChunks) == 0 {
		return "", nil, &domain.GenerationError{Reason: "context token budget too small for any chunk"}
	}
	prompt := buildGroundingPrompt(question, contextText)

	answer, err := g.llmClient.Complete(ctx, prompt, g.answerTokenBudget, generatorTemperature)
	if err != nil {
		return "", nil, &domain.GenerationError{Reason: "answer completion failed", Err: err}
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", nil, &domain.GenerationError{Reason: "empty answer from model"}
	}

	g.logger.Info("answer_generated",
		slog.Int("context_chunks", len(usedChunks)),
		slog.Int("answer_chars", len(answer)),
	)
	return answer, usedChunks, nil
}

// buildContext packs chunks lowest-distance first until the token budget
// would be exceeded. Individual chunks are truncated so one long transcript
// cannot crowd out every other source.
func (g *groundedAnswerGenerator) buildContext(chunks []domain.DocumentChunk) (string, []domain.DocumentChunk) {
	var parts []string
	var used []domain.DocumentChunk
	usedTokens := 0

	for _, chunk := range chunks {
		content := chunk.Content
		if len(content) > maxChunkChars {
			content = content[:maxChunkChars] + "..."
		}

		docText := fmt.Sprintf("Document %s (Source: %s):\n%s\n", chunk.DocID, chunk.Corpus, content)
		docTokens := len(docText) / charsPerToken
		if usedTokens+docTokens > g.contextTokenBudget {
			break
		}

		parts = append(parts, docText)
		usedTokens += docTokens
		used = append(used, chunk)
	}

	return strings.Join(parts, "\n"), used
}

func buildGroundingPrompt(question, contextText string) string {
	return fmt.Sprintf(`Based on the following context, answer this question: %s

Context:
%s

CRITICAL RULES - YOU MUST FOLLOW THESE:
- ONLY use information that is explicitly stated in the provided context
- DO NOT add any information that is not in the context
- DO NOT make up channel names, reviewer names, or any other details
- DO NOT mention channels like "[Channel Name]" or generic terms like "reviewers say"
- DO NOT mention "several channels" or "reviewers" unless they are specifically named in the context
- For facts: State the information clearly without citations
- For external reviews: Provide DETAILED and COMPREHENSIVE answers. Include specific quotes, observations, and detailed opinions from each channel. Attribute every opinion or observation to the specific channel names that appear in the context. NEVER write generic phrases like "one reviewer" or "a reviewer"; instead, write "According to <Channel Name>" or similar. Only mention channel names that are actually in the context.

ANSWER LENGTH GUIDELINES:
- For facts questions: Provide concise, factual answers
- For external review questions: Provide detailed, comprehensive answers that thoroughly cover all the opinions, observations, and insights from the different channels. Include specific details, quotes, and nuanced perspectives. Aim for thorough coverage of the available information.

IMPORTANT: If the context contains relevant information, provide a clear and accurate answer. Only say "I don't have enough information" if the context truly doesn't contain any relevant information for the question.

Answer:`, question, contextText)
}
