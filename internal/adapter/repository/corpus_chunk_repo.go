package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"seal-qa/internal/domain"
)

type corpusChunkRepository struct {
	pool *pgxpool.Pool
}

// NewCorpusChunkRepository creates a new CorpusChunkRepository.
func NewCorpusChunkRepository(pool *pgxpool.Pool) domain.CorpusChunkRepository {
	return &corpusChunkRepository{pool: pool}
}

type dbExecutor interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

func (r *corpusChunkRepository) getExecutor(ctx context.Context) dbExecutor {
	tx := ExtractTx(ctx)
	if tx != nil {
		return tx
	}
	return r.pool
}

func (r *corpusChunkRepository) BulkInsertChunks(ctx context.Context, chunks []domain.CorpusChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(chunks))
	for i, chunk := range chunks {
		rows[i] = []interface{}{
			chunk.ID,
			chunk.DocID,
			chunk.ChunkID,
			string(chunk.Corpus),
			chunk.Content,
			chunk.Embedding,
			chunk.CreatedAt,
		}
	}

	_, err := r.getExecutor(ctx).CopyFrom(
		ctx,
		pgx.Identifier{"corpus_chunks"},
		[]string{"id", "doc_id", "chunk_id", "corpus", "content", "embedding", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert chunks: %w", err)
	}

	return nil
}

// Search runs a cosine-distance query against one corpus. Results come back
// ascending by distance, nearest first.
func (r *corpusChunkRepository) Search(ctx context.Context, queryVector []float32, corpus domain.Corpus, limit int) ([]domain.DocumentChunk, error) {
	query := `
		SELECT doc_id, chunk_id, content, corpus, embedding <=> $1 AS distance
		FROM corpus_chunks
		WHERE corpus = $2
		ORDER BY embedding <=> $1
		LIMIT $3
	`
	rows, err := r.getExecutor(ctx).Query(ctx, query, pgvector.NewVector(queryVector), string(corpus), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.DocumentChunk
	for rows.Next() {
		var c domain.DocumentChunk
		var corpusTag string
		if err := rows.Scan(&c.DocID, &c.ChunkID, &c.Content, &corpusTag, &c.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		c.Corpus = domain.Corpus(corpusTag)
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return chunks, nil
}

func (r *corpusChunkRepository) CountByCorpus(ctx context.Context) (map[domain.Corpus]int, error) {
	query := `
		SELECT corpus, COUNT(*)
		FROM corpus_chunks
		GROUP BY corpus
	`
	rows, err := r.getExecutor(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count chunks: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Corpus]int)
	for rows.Next() {
		var corpusTag string
		var count int
		if err := rows.Scan(&corpusTag, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[domain.Corpus(corpusTag)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return counts, nil
}

func (r *corpusChunkRepository) DeleteCorpus(ctx context.Context, corpus domain.Corpus) error {
	_, err := r.getExecutor(ctx).Exec(ctx, `DELETE FROM corpus_chunks WHERE corpus = $1`, string(corpus))
	if err != nil {
		return fmt.Errorf("failed to delete corpus %s: %w", corpus, err)
	}
	return nil
}
