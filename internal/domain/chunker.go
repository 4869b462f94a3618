package domain

import "strings"

// ChunkerVersion tracks the splitting algorithm used at ingestion time.
type ChunkerVersion string

const (
	// ChunkerVersionV1 splits markdown on heading lines, falling back to
	// paragraph splitting for heading-less documents.
	ChunkerVersionV1 ChunkerVersion = "v1"
)

// Chunk represents a single piece of a source document.
type Chunk struct {
	Ordinal int
	Content string
}

// Chunker defines the interface for splitting a source document into chunks.
type Chunker interface {
	Chunk(body string) ([]Chunk, error)
	Version() ChunkerVersion
}

type sectionChunker struct{}

// NewChunker creates the default markdown section chunker.
func NewChunker() Chunker {
	return &sectionChunker{}
}

func (c *sectionChunker) Version() ChunkerVersion {
	return ChunkerVersionV1
}

// Chunk splits the body at markdown headings so each spec section becomes one
// retrievable unit. Documents without headings split on blank lines instead.
func (c *sectionChunker) Chunk(body string) ([]Chunk, error) {
	normalized := strings.ReplaceAll(body, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	lines := strings.Split(normalized, "\n")
	var sections []string
	var current []string

	for _, line := range lines {
		if strings.HasPrefix(line, "#") && len(current) > 0 {
			sections = append(sections, strings.Join(current, "\n"))
			current = []string{line}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		sections = append(sections, strings.Join(current, "\n"))
	}

	// No headings: fall back to paragraph boundaries.
	if len(sections) <= 1 {
		sections = strings.Split(normalized, "\n\n")
	}

	var chunks []Chunk
	for _, section := range sections {
		trimmed := strings.TrimSpace(section)
		if trimmed == "" {
			continue
		}
		chunks = append(chunks, Chunk{
			Ordinal: len(chunks),
			Content: trimmed,
		})
	}

	return chunks, nil
}
