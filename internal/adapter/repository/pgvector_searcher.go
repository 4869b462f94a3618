package repository

import (
	"context"
	"fmt"

	"seal-qa/internal/domain"
)

type pgvectorSearcher struct {
	encoder   domain.VectorEncoder
	chunkRepo domain.CorpusChunkRepository
}

// NewPgvectorSearcher composes the embedding encoder and the chunk repository
// into the retrieval gateway the pipeline depends on.
func NewPgvectorSearcher(encoder domain.VectorEncoder, chunkRepo domain.CorpusChunkRepository) domain.VectorSearcher {
	return &pgvectorSearcher{
		encoder:   encoder,
		chunkRepo: chunkRepo,
	}
}

func (s *pgvectorSearcher) Search(ctx context.Context, query string, corpus domain.Corpus, k int) ([]domain.DocumentChunk, error) {
	embeddings, err := s.encoder.Encode(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(embeddings))
	}

	chunks, err := s.chunkRepo.Search(ctx, embeddings[0], corpus, k)
	if err != nil {
		return nil, fmt.Errorf("failed to search corpus %s: %w", corpus, err)
	}
	return chunks, nil
}
