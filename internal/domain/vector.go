package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// VectorEncoder defines the interface for generating embeddings.
type VectorEncoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	Version() string
}

// VectorSearcher is the retrieval gateway: cosine-distance similarity search
// over one corpus. Implementations must support concurrent read-only queries;
// the core never mutates the index.
type VectorSearcher interface {
	Search(ctx context.Context, query string, corpus Corpus, k int) ([]DocumentChunk, error)
}

// CorpusChunk is the persistable form of a corpus chunk.
type CorpusChunk struct {
	ID        uuid.UUID
	DocID     string
	ChunkID   string
	Corpus    Corpus
	Content   string
	Embedding pgvector.Vector
	CreatedAt time.Time
}

// CorpusChunkRepository defines the operations for storing and searching
// corpus chunks.
type CorpusChunkRepository interface {
	// BulkInsertChunks inserts multiple chunks.
	BulkInsertChunks(ctx context.Context, chunks []CorpusChunk) error

	// Search performs a vector search within one corpus, returning chunks
	// ordered ascending by cosine distance.
	Search(ctx context.Context, queryVector []float32, corpus Corpus, limit int) ([]DocumentChunk, error)

	// CountByCorpus returns the number of stored chunks per corpus.
	CountByCorpus(ctx context.Context) (map[Corpus]int, error)

	// DeleteCorpus removes all chunks belonging to the given corpus.
	DeleteCorpus(ctx context.Context, corpus Corpus) error
}

// TransactionManager defines the interface for handling database transactions.
type TransactionManager interface {
	// RunInTx executes the given function within a transaction.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
