package domain

import "sort"

// DocumentChunk is a retrievable unit of corpus content together with the
// cosine distance reported by the vector search that found it.
type DocumentChunk struct {
	DocID    string
	ChunkID  string
	Content  string
	Corpus   Corpus
	Distance float64
}

// MergeChunks combines the raw hits from a fan-out of vector queries into a
// single retrieval result: duplicates (same DocID) keep the minimum distance,
// the survivors are sorted ascending by distance, and the result is truncated
// to at most limit entries.
func MergeChunks(chunks []DocumentChunk, limit int) []DocumentChunk {
	if len(chunks) == 0 {
		return nil
	}

	best := make(map[string]DocumentChunk, len(chunks))
	for _, c := range chunks {
		if existing, ok := best[c.DocID]; !ok || c.Distance < existing.Distance {
			best[c.DocID] = c
		}
	}

	merged := make([]DocumentChunk, 0, len(best))
	for _, c := range best {
		merged = append(merged, c)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Distance < merged[j].Distance
	})

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
