package usecase

import (
	"sort"

	"seal-qa/internal/domain"
)

// maxExternalCitations caps disclosure so a transcript-heavy context does not
// overwhelm the response with sources.
const maxExternalCitations = 5

// SelectCitations derives the disclosed citations from the chunks used to
// build the answer context. Facts contribute a single citation, the closest
// match, because the facts corpus is a single authoritative document and one
// pointer suffices. External reviews are individually attributed, ascending
// by distance, capped at maxExternalCitations. Facts come first in the
// result.
func SelectCitations(usedChunks []domain.DocumentChunk) []domain.Citation {
	var facts []domain.DocumentChunk
	var external []domain.DocumentChunk
	for _, c := range usedChunks {
		switch c.Corpus {
		case domain.CorpusFacts:
			facts = append(facts, c)
		case domain.CorpusExternal:
			external = append(external, c)
		}
	}

	var citations []domain.Citation

	if len(facts) > 0 {
		best := facts[0]
		for _, c := range facts[1:] {
			if c.Distance < best.Distance {
				best = c
			}
		}
		citations = append(citations, domain.FactsCitation{
			DocID:   best.DocID,
			ChunkID: best.ChunkID,
		})
	}

	sort.Slice(external, func(i, j int) bool {
		return external[i].Distance < external[j].Distance
	})
	if len(external) > maxExternalCitations {
		external = external[:maxExternalCitations]
	}
	for _, c := range external {
		meta := domain.ParseExternalMetadata(c.Content)
		citations = append(citations, domain.ExternalCitation{
			DocID:       c.DocID,
			ChunkID:     c.ChunkID,
			Title:       meta.Title,
			Channel:     meta.Channel,
			Views:       meta.Views,
			Subscribers: meta.Subscribers,
		})
	}

	return citations
}
