package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"seal-qa/internal/domain"
	"seal-qa/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// MockLLMClient
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	args := m.Called(ctx, prompt, maxTokens, temperature)
	return args.String(0), args.Error(1)
}

func (m *MockLLMClient) Version() string {
	return "mock-llm-v1"
}

// MockVectorSearcher
type MockVectorSearcher struct {
	mock.Mock
}

func (m *MockVectorSearcher) Search(ctx context.Context, query string, corpus domain.Corpus, k int) ([]domain.DocumentChunk, error) {
	args := m.Called(ctx, query, corpus, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentChunk), args.Error(1)
}

// MockVectorEncoder
type MockVectorEncoder struct {
	mock.Mock
}

func (m *MockVectorEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *MockVectorEncoder) Version() string {
	return "mock-encoder-v1"
}

// MockCorpusChunkRepository
type MockCorpusChunkRepository struct {
	mock.Mock
}

func (m *MockCorpusChunkRepository) BulkInsertChunks(ctx context.Context, chunks []domain.CorpusChunk) error {
	args := m.Called(ctx, chunks)
	return args.Error(0)
}

func (m *MockCorpusChunkRepository) Search(ctx context.Context, queryVector []float32, corpus domain.Corpus, limit int) ([]domain.DocumentChunk, error) {
	args := m.Called(ctx, queryVector, corpus, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentChunk), args.Error(1)
}

func (m *MockCorpusChunkRepository) CountByCorpus(ctx context.Context) (map[domain.Corpus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Corpus]int), args.Error(1)
}

func (m *MockCorpusChunkRepository) DeleteCorpus(ctx context.Context, corpus domain.Corpus) error {
	args := m.Called(ctx, corpus)
	return args.Error(0)
}

// MockTransactionManager executes the callback directly.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// MockClassifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, question string) (domain.SearchStrategy, error) {
	args := m.Called(ctx, question)
	return args.Get(0).(domain.SearchStrategy), args.Error(1)
}

// MockQueryExpander
type MockQueryExpander struct {
	mock.Mock
}

func (m *MockQueryExpander) Expand(ctx context.Context, question string, corpus domain.Corpus) []string {
	args := m.Called(ctx, question, corpus)
	return args.Get(0).([]string)
}

// MockTierRetriever
type MockTierRetriever struct {
	mock.Mock
}

func (m *MockTierRetriever) Retrieve(ctx context.Context, terms []string, corpus domain.Corpus, k int) ([]domain.DocumentChunk, error) {
	args := m.Called(ctx, terms, corpus, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentChunk), args.Error(1)
}

// MockAnswerGenerator
type MockAnswerGenerator struct {
	mock.Mock
}

func (m *MockAnswerGenerator) Generate(ctx context.Context, question string, chunks []domain.DocumentChunk) (string, []domain.DocumentChunk, error) {
	args := m.Called(ctx, question, chunks)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]domain.DocumentChunk), args.Error(2)
}

var _ usecase.Classifier = (*MockClassifier)(nil)
var _ usecase.QueryExpander = (*MockQueryExpander)(nil)
var _ usecase.TierRetriever = (*MockTierRetriever)(nil)
var _ usecase.AnswerGenerator = (*MockAnswerGenerator)(nil)
var _ domain.LLMClient = (*MockLLMClient)(nil)
var _ domain.VectorSearcher = (*MockVectorSearcher)(nil)
var _ domain.VectorEncoder = (*MockVectorEncoder)(nil)
var _ domain.CorpusChunkRepository = (*MockCorpusChunkRepository)(nil)
var _ domain.TransactionManager = (*MockTransactionManager)(nil)
