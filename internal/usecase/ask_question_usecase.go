package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"seal-qa/internal/domain"
)

const (
	refusalText = "I cannot answer this question as it may involve sensitive information like pricing, warranty, or availability that should only come from official facts."
	noInfoText  = "I couldn't find any relevant information about this question in the available data sources."
)

// AskQuestionInput carries one question through the pipeline.
type AskQuestionInput struct {
	Question string
}

// AskQuestionUsecase is the facts-first decision pipeline. Refused and
// NoInformationFound are terminal outcomes returned as values; only
// validation, classification, and generation failures surface as errors.
type AskQuestionUsecase interface {
	Execute(ctx context.Context, input AskQuestionInput) (*domain.Answer, error)
}

type askQuestionUsecase struct {
	classifier        Classifier
	expander          QueryExpander
	retriever         TierRetriever
	generator         AnswerGenerator
	adequacy          AdequacyJudge
	resultsPerQuery   int
	maxQuestionLength int
	logger            *slog.Logger
}

// NewAskQuestionUsecase wires together the pipeline stages.
func NewAskQuestionUsecase(
	classifier Classifier,
	expander QueryExpander,
	retriever TierRetriever,
	generator AnswerGenerator,
	adequacy AdequacyJudge,
	resultsPerQuery, maxQuestionLength int,
	logger *slog.Logger,
) AskQuestionUsecase {
	return &askQuestionUsecase{
		classifier:        classifier,
		expander:          expander,
		retriever:         retriever,
		generator:         generator,
		adequacy:          adequacy,
		resultsPerQuery:   resultsPerQuery,
		maxQuestionLength: maxQuestionLength,
		logger:            logger,
	}
}

func (u *askQuestionUsecase) Execute(ctx context.Context, input AskQuestionInput) (*domain.Answer, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, &domain.ValidationError{Reason: "question is empty"}
	}
	if len(question) > u.maxQuestionLength {
		return nil, &domain.ValidationError{
			Reason: fmt.Sprintf("question exceeds %d characters", u.maxQuestionLength),
		}
	}

	strategy, err := u.classifier.Classify(ctx, question)
	if err != nil {
		return nil, err
	}

	if strategy == domain.StrategyRefuse {
		u.logger.Info("question_refused")
		return &domain.Answer{
			Text:   refusalText,
			Status: domain.StatusRefused,
		}, nil
	}

	// Facts tier runs unconditionally for any non-refused question.
	factsTerms := u.expander.Expand(ctx, question, domain.CorpusFacts)
	factsChunks, err := u.retriever.Retrieve(ctx, factsTerms, domain.CorpusFacts, u.resultsPerQuery)
	if err != nil {
		return nil, err
	}

	if u.adequacy.Adequate(question, factsChunks, domain.CorpusFacts) {
		return u.answerFrom(ctx, question, factsChunks)
	}

	if strategy == domain.StrategyExternalSafe {
		externalTerms := u.expander.Expand(ctx, question, domain.CorpusExternal)
		externalChunks, err := u.retriever.Retrieve(ctx, externalTerms, domain.CorpusExternal, u.resultsPerQuery)
		if err != nil {
			return nil, err
		}

		if len(externalChunks) > 0 {
			combined := append(append([]domain.DocumentChunk{}, factsChunks...), externalChunks...)
			return u.answerFrom(ctx, question, combined)
		}
	}

	u.logger.Info("no_information_found",
		slog.String("strategy", string(strategy)),
		slog.Int("facts_chunks", len(factsChunks)),
	)
	return &domain.Answer{
		Text:   noInfoText,
		Status: domain.StatusNoInformationFound,
	}, nil
}

func (u *askQuestionUsecase) answerFrom(ctx context.Context, question string, chunks []domain.DocumentChunk) (*domain.Answer, error) {
	text, usedChunks, err := u.generator.Generate(ctx, question, chunks)
	if err != nil {
		return nil, err
	}

	return &domain.Answer{
		Text:      text,
		Status:    domain.StatusAnswered,
		Citations: SelectCitations(usedChunks),
	}, nil
}
