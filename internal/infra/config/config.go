package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// LLMProvider selects the completion backend: "openai" or "anthropic".
	// Embeddings always use the OpenAI-compatible endpoint.
	LLMProvider     string
	OpenAIBaseURL   string
	OpenAIAPIKey    string
	ChatModel       string
	EmbeddingModel  string
	AnthropicAPIKey string
	AnthropicModel  string

	LLMTimeoutSeconds    int
	LLMRequestsPerSecond float64

	FactsThreshold     float64
	ExternalThreshold  float64
	ResultsPerQuery    int
	ContextTokenBudget int
	AnswerTokenBudget  int
	MaxQuestionLength  int
	EmbedBatchSize     int

	OpinionMarkers []string
	BrandTokens    []string

	OTelEnabled bool
}

func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "9020"),

		DBHost:     getEnv("DB_HOST", "qa-db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "qa_user"),
		DBPassword: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "qa_password"),
		DBName:     getEnv("DB_NAME", "qa_db"),

		LLMProvider:     getEnv("LLM_PROVIDER", "openai"),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIAPIKey:    getSecret("OPENAI_API_KEY", "OPENAI_API_KEY_FILE", ""),
		ChatModel:       getEnv("CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		AnthropicAPIKey: getSecret("ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY_FILE", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),

		LLMTimeoutSeconds:    getEnvInt("LLM_TIMEOUT_SECONDS", 60),
		LLMRequestsPerSecond: getEnvFloat("LLM_REQUESTS_PER_SECOND", 0),

		FactsThreshold:     getEnvFloat("FACTS_ADEQUACY_THRESHOLD", 0.4),
		ExternalThreshold:  getEnvFloat("EXTERNAL_ADEQUACY_THRESHOLD", 0.5),
		ResultsPerQuery:    getEnvInt("RESULTS_PER_QUERY", 5),
		ContextTokenBudget: getEnvInt("CONTEXT_TOKEN_BUDGET", 6000),
		AnswerTokenBudget:  getEnvInt("ANSWER_TOKEN_BUDGET", 1200),
		MaxQuestionLength:  getEnvInt("MAX_QUESTION_LENGTH", 500),
		EmbedBatchSize:     getEnvInt("EMBED_BATCH_SIZE", 64),

		OpinionMarkers: getEnvList("OPINION_MARKERS",
			"review,reviewer,youtuber,youtube,opinion,say,think,feel,experience,what do"),
		BrandTokens: getEnvList("BRAND_TOKENS", "byd,seal"),

		OTelEnabled: getEnvBool("OTEL_ENABLED", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	// 1. Try direct environment variable
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}

	// 2. Try reading from file specified by fileEnvKey
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	var items []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
