package di

import (
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"seal-qa/internal/adapter/llm"
	"seal-qa/internal/adapter/repository"
	"seal-qa/internal/domain"
	"seal-qa/internal/infra/config"
	"seal-qa/internal/infra/httpclient"
	"seal-qa/internal/usecase"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	// Adapters
	ChunkRepo domain.CorpusChunkRepository
	LLMClient domain.LLMClient
	Encoder   domain.VectorEncoder

	// Usecases
	AskUsecase   usecase.AskQuestionUsecase
	IndexUsecase usecase.IndexCorpusUsecase
}

// NewApplicationComponents wires all dependencies from config and database pool.
func NewApplicationComponents(cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) *ApplicationComponents {
	// Repositories
	chunkRepo := repository.NewCorpusChunkRepository(pool)
	txManager := repository.NewPostgresTransactionManager(pool)

	// Shared HTTP client with connection pooling
	llmHTTP := httpclient.NewPooledClient(time.Duration(cfg.LLMTimeoutSeconds) * time.Second)

	// External clients
	encoder := llm.NewOpenAIEmbedder(cfg.OpenAIBaseURL, cfg.EmbeddingModel, cfg.OpenAIAPIKey, cfg.LLMTimeoutSeconds, llmHTTP)

	var llmClient domain.LLMClient
	if cfg.LLMProvider == "anthropic" {
		llmClient = llm.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.LLMRequestsPerSecond)
		log.Info("llm_provider_selected", slog.String("provider", "anthropic"), slog.String("model", cfg.AnthropicModel))
	} else {
		llmClient = llm.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.ChatModel, cfg.OpenAIAPIKey, cfg.LLMTimeoutSeconds, cfg.LLMRequestsPerSecond, llmHTTP)
		log.Info("llm_provider_selected", slog.String("provider", "openai"), slog.String("model", cfg.ChatModel))
	}

	searcher := repository.NewPgvectorSearcher(encoder, chunkRepo)

	// Pipeline stages
	classifier := usecase.NewClassifier(llmClient, log)
	expander := usecase.NewQueryExpander(llmClient, domain.NewLexicon(cfg.BrandTokens), log)
	retriever := usecase.NewTierRetriever(searcher, log)
	generator := usecase.NewAnswerGenerator(llmClient, cfg.ContextTokenBudget, cfg.AnswerTokenBudget, log)
	adequacy := usecase.AdequacyJudge{
		FactsThreshold:    cfg.FactsThreshold,
		ExternalThreshold: cfg.ExternalThreshold,
		OpinionMarkers:    domain.NewLexicon(cfg.OpinionMarkers),
	}

	askUsecase := usecase.NewAskQuestionUsecase(
		classifier, expander, retriever, generator, adequacy,
		cfg.ResultsPerQuery, cfg.MaxQuestionLength, log,
	)

	indexUsecase := usecase.NewIndexCorpusUsecase(
		chunkRepo, txManager, domain.NewChunker(), encoder, cfg.EmbedBatchSize, log,
	)

	return &ApplicationComponents{
		ChunkRepo:    chunkRepo,
		LLMClient:    llmClient,
		Encoder:      encoder,
		AskUsecase:   askUsecase,
		IndexUsecase: indexUsecase,
	}
}
