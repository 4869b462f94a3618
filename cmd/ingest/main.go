package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"seal-qa/internal/di"
	"seal-qa/internal/domain"
	"seal-qa/internal/infra"
	"seal-qa/internal/infra/config"
	"seal-qa/internal/infra/logger"
	"seal-qa/internal/usecase"
)

var (
	version = "dev"

	// Run command flags
	factsPath   string
	reviewsPath string
	reset       bool
	batchSize   int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "ingest",
	Short:   "Index corpus documents for the question answering service",
	Version: version,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Index the facts and review corpora",
	Long: `Index the facts and review corpora into the vector store.

The facts corpus is a markdown file split on headings; the review corpus
is a JSON array of video review records.

Examples:
  # Index both corpora, replacing any existing chunks
  ingest run --facts seal_facts.md --reviews reviews.json --reset

  # Re-index only the facts corpus
  ingest run --facts seal_facts.md --reset`,
	RunE: runIngest,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stored chunk counts per corpus",
	RunE:  showStatus,
}

func init() {
	runCmd.Flags().StringVar(&factsPath, "facts", "", "path to the facts markdown file")
	runCmd.Flags().StringVar(&reviewsPath, "reviews", "", "path to the reviews JSON file")
	runCmd.Flags().BoolVar(&reset, "reset", false, "delete existing chunks for each indexed corpus first")
	runCmd.Flags().IntVar(&batchSize, "batch-size", 0, "texts per embedding request (0 uses EMBED_BATCH_SIZE)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
}

func setup(ctx context.Context) (*config.Config, *di.ApplicationComponents, *pgxpool.Pool, error) {
	cfg := config.Load()
	log := logger.New()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	pool, err := infra.NewPostgresDB(ctx, dsn)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to db: %w", err)
	}

	if batchSize > 0 {
		cfg.EmbedBatchSize = batchSize
	}

	components := di.NewApplicationComponents(cfg, pool, log)
	return cfg, components, pool, nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	if factsPath == "" && reviewsPath == "" {
		return fmt.Errorf("at least one of --facts or --reviews is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	_, components, pool, err := setup(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if factsPath != "" {
		markdown, err := os.ReadFile(factsPath)
		if err != nil {
			return fmt.Errorf("read facts file: %w", err)
		}

		count, err := components.IndexUsecase.IndexFacts(ctx, string(markdown), reset)
		if err != nil {
			return fmt.Errorf("index facts: %w", err)
		}
		fmt.Printf("Indexed %d facts chunks\n", count)
	}

	if reviewsPath != "" {
		reviews, err := loadReviews(reviewsPath)
		if err != nil {
			return err
		}

		count, err := components.IndexUsecase.IndexReviews(ctx, reviews, reset)
		if err != nil {
			return fmt.Errorf("index reviews: %w", err)
		}
		fmt.Printf("Indexed %d review chunks\n", count)
	}

	return nil
}

func showStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	_, components, pool, err := setup(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	counts, err := components.IndexUsecase.Status(ctx)
	if err != nil {
		return fmt.Errorf("get status: %w", err)
	}

	fmt.Printf("Corpus Status:\n")
	fmt.Printf("  facts:    %d chunks\n", counts[domain.CorpusFacts])
	fmt.Printf("  external: %d chunks\n", counts[domain.CorpusExternal])

	return nil
}

// reviewRecord mirrors the JSON layout exported by the review scraper.
// Views and subscribers arrive as either numbers or strings depending on
// the scraper version, so both are decoded loosely.
type reviewRecord struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	TranscriptText struct {
		Content string `json:"content"`
	} `json:"transcriptText"`
	ChannelTitle string `json:"channel_title"`
	Views        any    `json:"views"`
	Subscribers  any    `json:"subscribers"`
}

func loadReviews(path string) ([]usecase.ReviewDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reviews file: %w", err)
	}

	var records []reviewRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse reviews file: %w", err)
	}

	reviews := make([]usecase.ReviewDocument, 0, len(records))
	for _, r := range records {
		reviews = append(reviews, usecase.ReviewDocument{
			Title:       r.Title,
			Description: r.Description,
			Transcript:  r.TranscriptText.Content,
			Channel:     r.ChannelTitle,
			Views:       asString(r.Views),
			Subscribers: asString(r.Subscribers),
		})
	}
	return reviews, nil
}

func asString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}
