package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"seal-qa/internal/domain"
	"seal-qa/internal/usecase"
)

func newPipeline(classifier *MockClassifier, expander *MockQueryExpander, retriever *MockTierRetriever, generator *MockAnswerGenerator) usecase.AskQuestionUsecase {
	judge := usecase.AdequacyJudge{
		FactsThreshold:    0.4,
		ExternalThreshold: 0.5,
		OpinionMarkers:    domain.NewLexicon([]string{"review", "reviewer", "what do", "opinion"}),
	}
	return usecase.NewAskQuestionUsecase(classifier, expander, retriever, generator, judge, 5, 500, testLogger())
}

func TestAskQuestion_FactsAdequate(t *testing.T) {
	classifier := new(MockClassifier)
	expander := new(MockQueryExpander)
	retriever := new(MockTierRetriever)
	generator := new(MockAnswerGenerator)

	question := "What is the battery capacity?"
	factsChunks := []domain.DocumentChunk{
		{DocID: "facts_2", ChunkID: "facts_2", Corpus: domain.CorpusFacts, Content: "82.5 kWh", Distance: 0.2},
	}

	classifier.On("Classify", mock.Anything, question).Return(domain.StrategyFactsOnly, nil)
	expander.On("Expand", mock.Anything, question, domain.CorpusFacts).Return([]string{"battery capacity", "kWh"})
	retriever.On("Retrieve", mock.Anything, []string{"battery capacity", "kWh"}, domain.CorpusFacts, 5).Return(factsChunks, nil)
	generator.On("Generate", mock.Anything, question, factsChunks).Return("The battery capacity is 82.5 kWh.", factsChunks, nil)

	uc := newPipeline(classifier, expander, retriever, generator)
	answer, err := uc.Execute(context.Background(), usecase.AskQuestionInput{Question: question})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAnswered, answer.Status)
	assert.Equal(t, "The battery capacity is 82.5 kWh.", answer.Text)
	require.Len(t, answer.Citations, 1)
	assert.Equal(t, domain.CorpusFacts, answer.Citations[0].Source())

	// External tier never runs when facts suffice.
	retriever.AssertNotCalled(t, "Retrieve", mock.Anything, mock.Anything, domain.CorpusExternal, mock.Anything)
}

func TestAskQuestion_OpinionEscalatesToExternal(t *testing.T) {
	classifier := new(MockClassifier)
	expander := new(MockQueryExpander)
	retriever := new(MockTierRetriever)
	generator := new(MockAnswerGenerator)

	question := "What do reviewers say about the audio?"
	factsChunks := []domain.DocumentChunk{
		// Close match, but the opinion override forces escalation anyway.
		{DocID: "facts_5", ChunkID: "facts_5", Corpus: domain.CorpusFacts, Content: "12 speakers", Distance: 0.05},
	}
	externalChunks := []domain.DocumentChunk{
		{DocID: "external_3", ChunkID: "external_3", Corpus: domain.CorpusExternal, Distance: 0.3,
			Content: "Title: Audio test Channel: EV Daily Views: 900 Channel Subscribers: 100"},
	}
	combined := append(append([]domain.DocumentChunk{}, factsChunks...), externalChunks...)

	classifier.On("Classify", mock.Anything, question).Return(domain.StrategyExternalSafe, nil)
	expander.On("Expand", mock.Anything, question, domain.CorpusFacts).Return([]string{"audio system"})
	expander.On("Expand", mock.Anything, question, domain.CorpusExternal).Return([]string{"sound quality"})
	retriever.On("Retrieve", mock.Anything, []string{"audio system"}, domain.CorpusFacts, 5).Return(factsChunks, nil)
	retriever.On("Retrieve", mock.Anything, []string{"sound quality"}, domain.CorpusExternal, 5).Return(externalChunks, nil)
	generator.On("Generate", mock.Anything, question, combined).Return("According to EV Daily, the audio is excellent.", combined, nil)

	uc := newPipeline(classifier, expander, retriever, generator)
	answer, err := uc.Execute(context.Background(), usecase.AskQuestionInput{Question: question})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAnswered, answer.Status)
	require.Len(t, answer.Citations, 2)
	assert.Equal(t, domain.CorpusFacts, answer.Citations[0].Source())
	ext, ok := answer.Citations[1].(domain.ExternalCitation)
	require.True(t, ok)
	assert.Equal(t, "EV Daily", ext.Channel)
}

func TestAskQuestion_RefusedWithoutRetrieval(t *testing.T) {
	classifier := new(MockClassifier)
	expander := new(MockQueryExpander)
	retriever := new(MockTierRetriever)
	generator := new(MockAnswerGenerator)

	question := "How much does it cost?"
	classifier.On("Classify", mock.Anything, question).Return(domain.StrategyRefuse, nil)

	uc := newPipeline(classifier, expander, retriever, generator)
	answer, err := uc.Execute(context.Background(), usecase.AskQuestionInput{Question: question})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRefused, answer.Status)
	assert.NotEmpty(t, answer.Text)
	assert.Empty(t, answer.Citations)

	retriever.AssertNotCalled(t, "Retrieve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	expander.AssertNotCalled(t, "Expand", mock.Anything, mock.Anything, mock.Anything)
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestAskQuestion_NoInformationFound(t *testing.T) {
	classifier := new(MockClassifier)
	expander := new(MockQueryExpander)
	retriever := new(MockTierRetriever)
	generator := new(MockAnswerGenerator)

	question := "What is the towing capacity?"
	classifier.On("Classify", mock.Anything, question).Return(domain.StrategyFactsOnly, nil)
	expander.On("Expand", mock.Anything, question, domain.CorpusFacts).Return([]string{"towing capacity"})
	retriever.On("Retrieve", mock.Anything, []string{"towing capacity"}, domain.CorpusFacts, 5).
		Return([]domain.DocumentChunk{}, nil)

	uc := newPipeline(classifier, expander, retriever, generator)
	answer, err := uc.Execute(context.Background(), usecase.AskQuestionInput{Question: question})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoInformationFound, answer.Status)
	assert.NotEmpty(t, answer.Text)
	assert.Empty(t, answer.Citations)

	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestAskQuestion_ExternalSafeWithEmptyExternalIsNoInformation(t *testing.T) {
	classifier := new(MockClassifier)
	expander := new(MockQueryExpander)
	retriever := new(MockTierRetriever)
	generator := new(MockAnswerGenerator)

	question := "What do owners think about servicing?"
	classifier.On("Classify", mock.Anything, question).Return(domain.StrategyExternalSafe, nil)
	expander.On("Expand", mock.Anything, question, domain.CorpusFacts).Return([]string{"servicing"})
	expander.On("Expand", mock.Anything, question, domain.CorpusExternal).Return([]string{"servicing experience"})
	retriever.On("Retrieve", mock.Anything, mock.Anything, domain.CorpusFacts, 5).Return([]domain.DocumentChunk{}, nil)
	retriever.On("Retrieve", mock.Anything, mock.Anything, domain.CorpusExternal, 5).Return([]domain.DocumentChunk{}, nil)

	uc := newPipeline(classifier, expander, retriever, generator)
	answer, err := uc.Execute(context.Background(), usecase.AskQuestionInput{Question: question})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoInformationFound, answer.Status)
}

func TestAskQuestion_ValidationErrors(t *testing.T) {
	uc := newPipeline(new(MockClassifier), new(MockQueryExpander), new(MockTierRetriever), new(MockAnswerGenerator))

	_, err := uc.Execute(context.Background(), usecase.AskQuestionInput{Question: "   "})
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)

	_, err = uc.Execute(context.Background(), usecase.AskQuestionInput{Question: strings.Repeat("a", 501)})
	require.ErrorAs(t, err, &valErr)
}

func TestAskQuestion_ClassificationErrorPropagates(t *testing.T) {
	classifier := new(MockClassifier)
	classifier.On("Classify", mock.Anything, mock.Anything).
		Return(domain.SearchStrategy(""), &domain.ClassificationError{Reason: "no label"})

	uc := newPipeline(classifier, new(MockQueryExpander), new(MockTierRetriever), new(MockAnswerGenerator))
	_, err := uc.Execute(context.Background(), usecase.AskQuestionInput{Question: "What is the range?"})

	var classErr *domain.ClassificationError
	require.ErrorAs(t, err, &classErr)
}

func TestAskQuestion_GenerationErrorPropagates(t *testing.T) {
	classifier := new(MockClassifier)
	expander := new(MockQueryExpander)
	retriever := new(MockTierRetriever)
	generator := new(MockAnswerGenerator)

	question := "What is the range?"
	factsChunks := []domain.DocumentChunk{
		{DocID: "facts_1", Corpus: domain.CorpusFacts, Distance: 0.1},
	}

	classifier.On("Classify", mock.Anything, question).Return(domain.StrategyFactsOnly, nil)
	expander.On("Expand", mock.Anything, question, domain.CorpusFacts).Return([]string{"range"})
	retriever.On("Retrieve", mock.Anything, mock.Anything, domain.CorpusFacts, 5).Return(factsChunks, nil)
	generator.On("Generate", mock.Anything, question, factsChunks).
		Return("", nil, &domain.GenerationError{Reason: "model unavailable"})

	uc := newPipeline(classifier, expander, retriever, generator)
	_, err := uc.Execute(context.Background(), usecase.AskQuestionInput{Question: question})

	var genErr *domain.GenerationError
	require.ErrorAs(t, err, &genErr)
}
