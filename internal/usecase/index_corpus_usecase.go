package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"seal-qa/internal/domain"
)

// ReviewDocument is one review video as parsed from the reviews JSON file.
// Numeric engagement fields stay strings because the citation contract
// exposes them verbatim.
type ReviewDocument struct {
	Title       string
	Description string
	Transcript  string
	Channel     string
	Views       string
	Subscribers string
}

// Flatten serializes the review into the single-string content format the
// retrieval and citation layers expect. Field labels are load-bearing:
// ParseExternalMetadata scans for them.
func (r ReviewDocument) Flatten() string {
	var parts []string
	if r.Title != "" {
		parts = append(parts, "Title: "+r.Title)
	}
	if r.Description != "" {
		parts = append(parts, "Description: "+r.Description)
	}
	if r.Transcript != "" {
		parts = append(parts, "Transcript: "+r.Transcript)
	}
	if r.Channel != "" {
		parts = append(parts, "Channel: "+r.Channel)
	}
	if r.Views != "" {
		parts = append(parts, "Views: "+r.Views)
	}
	if r.Subscribers != "" {
		parts = append(parts, "Channel Subscribers: "+r.Subscribers)
	}
	return strings.Join(parts, " ")
}

// IndexCorpusUsecase populates the vector index from the two corpus sources.
type IndexCorpusUsecase interface {
	// IndexFacts chunks the facts markdown by section and indexes each
	// section. reset drops the existing facts corpus first.
	IndexFacts(ctx context.Context, markdown string, reset bool) (int, error)
	// IndexReviews indexes one chunk per review document. reset drops the
	// existing external corpus first.
	IndexReviews(ctx context.Context, reviews []ReviewDocument, reset bool) (int, error)
	// Status reports the stored chunk count per corpus.
	Status(ctx context.Context) (map[domain.Corpus]int, error)
}

type indexCorpusUsecase struct {
	chunkRepo domain.CorpusChunkRepository
	txManager domain.TransactionManager
	chunker   domain.Chunker
	encoder   domain.VectorEncoder
	batchSize int
	logger    *slog.Logger
}

// NewIndexCorpusUsecase creates the ingestion usecase. batchSize bounds the
// number of texts sent to the embedding endpoint per call.
func NewIndexCorpusUsecase(
	chunkRepo domain.CorpusChunkRepository,
	txManager domain.TransactionManager,
	chunker domain.Chunker,
	encoder domain.VectorEncoder,
	batchSize int,
	logger *slog.Logger,
) IndexCorpusUsecase {
	return &indexCorpusUsecase{
		chunkRepo: chunkRepo,
		txManager: txManager,
		chunker:   chunker,
		encoder:   encoder,
		batchSize: batchSize,
		logger:    logger,
	}
}

func (u *indexCorpusUsecase) IndexFacts(ctx context.Context, markdown string, reset bool) (int, error) {
	sections, err := u.chunker.Chunk(markdown)
	if err != nil {
		return 0, fmt.Errorf("failed to chunk facts markdown: %w", err)
	}

	contents := make([]string, len(sections))
	for i, s := range sections {
		contents[i] = s.Content
	}

	return u.indexContents(ctx, contents, domain.CorpusFacts, reset)
}

func (u *indexCorpusUsecase) IndexReviews(ctx context.Context, reviews []ReviewDocument, reset bool) (int, error) {
	var contents []string
	for _, r := range reviews {
		flat := r.Flatten()
		if flat == "" {
			continue
		}
		contents = append(contents, flat)
	}

	return u.indexContents(ctx, contents, domain.CorpusExternal, reset)
}

func (u *indexCorpusUsecase) Status(ctx context.Context) (map[domain.Corpus]int, error) {
	return u.chunkRepo.CountByCorpus(ctx)
}

func (u *indexCorpusUsecase) indexContents(ctx context.Context, contents []string, corpus domain.Corpus, reset bool) (int, error) {
	if len(contents) == 0 {
		return 0, fmt.Errorf("no content to index for corpus %s", corpus)
	}

	now := time.Now()
	chunks := make([]domain.CorpusChunk, len(contents))
	for i, content := range contents {
		docID := fmt.Sprintf("%s_%d", corpus, i)
		chunks[i] = domain.CorpusChunk{
			ID:        uuid.New(),
			DocID:     docID,
			ChunkID:   docID,
			Corpus:    corpus,
			Content:   content,
			CreatedAt: now,
		}
	}

	for start := 0; start < len(contents); start += u.batchSize {
		end := min(start+u.batchSize, len(contents))

		embeddings, err := u.encoder.Encode(ctx, contents[start:end])
		if err != nil {
			return 0, fmt.Errorf("failed to encode batch at %d: %w", start, err)
		}
		if len(embeddings) != end-start {
			return 0, fmt.Errorf("expected %d embeddings, got %d", end-start, len(embeddings))
		}
		for i, emb := range embeddings {
			chunks[start+i].Embedding = pgvector.NewVector(emb)
		}
	}

	err := u.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if reset {
			if err := u.chunkRepo.DeleteCorpus(ctx, corpus); err != nil {
				return fmt.Errorf("failed to reset corpus %s: %w", corpus, err)
			}
		}
		if err := u.chunkRepo.BulkInsertChunks(ctx, chunks); err != nil {
			return fmt.Errorf("failed to insert chunks: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	u.logger.Info("corpus_indexed",
		slog.String("corpus", string(corpus)),
		slog.Int("chunks", len(chunks)),
		slog.Bool("reset", reset),
	)
	return len(chunks), nil
}
