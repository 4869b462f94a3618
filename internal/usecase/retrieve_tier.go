package usecase

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"seal-qa/internal/domain"
)

// TierRetriever runs one retrieval tier: every expanded term is searched
// concurrently against a single corpus and the hits are merged into one
// deduplicated, distance-ordered result.
type TierRetriever interface {
	Retrieve(ctx context.Context, terms []string, corpus domain.Corpus, k int) ([]domain.DocumentChunk, error)
}

type tierRetriever struct {
	searcher domain.VectorSearcher
	logger   *slog.Logger
}

// NewTierRetriever creates a TierRetriever on top of a vector searcher.
func NewTierRetriever(searcher domain.VectorSearcher, logger *slog.Logger) TierRetriever {
	return &tierRetriever{
		searcher: searcher,
		logger:   logger,
	}
}

// Retrieve fans out one search per term. A failing term contributes nothing
// but does not fail the tier: an empty result is a valid retrieval outcome
// and the orchestrator treats it as inadequate. A timed-out query is a
// per-term failure like any other; only caller cancellation, observed on the
// parent context, propagates.
func (r *tierRetriever) Retrieve(ctx context.Context, terms []string, corpus domain.Corpus, k int) ([]domain.DocumentChunk, error) {
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var hits []domain.DocumentChunk

	for _, term := range terms {
		g.Go(func() error {
			chunks, err := r.searcher.Search(gctx, term, corpus, k)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				r.logger.Warn("term_search_failed",
					slog.String("term", term),
					slog.String("corpus", string(corpus)),
					slog.String("error", err.Error()),
				)
				return nil
			}

			mu.Lock()
			hits = append(hits, chunks...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := domain.MergeChunks(hits, k)
	r.logger.Info("tier_retrieval_completed",
		slog.String("corpus", string(corpus)),
		slog.Int("terms", len(terms)),
		slog.Int("raw_hits", len(hits)),
		slog.Int("merged", len(merged)),
	)
	return merged, nil
}
