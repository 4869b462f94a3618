package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seal-qa/internal/domain"
	"seal-qa/internal/usecase"
)

func TestSelectCitations_FactsYieldSingleClosestCitation(t *testing.T) {
	used := []domain.DocumentChunk{
		{DocID: "facts_3", ChunkID: "facts_3", Corpus: domain.CorpusFacts, Distance: 0.4},
		{DocID: "facts_1", ChunkID: "facts_1", Corpus: domain.CorpusFacts, Distance: 0.2},
		{DocID: "facts_7", ChunkID: "facts_7", Corpus: domain.CorpusFacts, Distance: 0.3},
	}

	citations := usecase.SelectCitations(used)

	require.Len(t, citations, 1)
	facts, ok := citations[0].(domain.FactsCitation)
	require.True(t, ok)
	assert.Equal(t, "facts_1", facts.DocID)
}

func TestSelectCitations_ExternalOrderedAndCapped(t *testing.T) {
	var used []domain.DocumentChunk
	distances := []float64{0.9, 0.3, 0.7, 0.1, 0.5, 0.8, 0.2}
	for i, d := range distances {
		used = append(used, domain.DocumentChunk{
			DocID:    "external_" + string(rune('a'+i)),
			ChunkID:  "external_" + string(rune('a'+i)),
			Corpus:   domain.CorpusExternal,
			Distance: d,
			Content:  "Title: Video Channel: Ch Views: 100 Channel Subscribers: 50",
		})
	}

	citations := usecase.SelectCitations(used)

	require.Len(t, citations, 5)
	var prev float64 = -1
	for i, c := range citations {
		ext, ok := c.(domain.ExternalCitation)
		require.True(t, ok)
		assert.Equal(t, "Video", ext.Title)
		// Distances ascend: d, g, b, e, c
		d := distances[indexOf(used, ext.DocID)]
		assert.Greater(t, d, prev, "citation %d out of order", i)
		prev = d
	}
}

func TestSelectCitations_MixedCorpusFactsFirst(t *testing.T) {
	used := []domain.DocumentChunk{
		{DocID: "external_1", ChunkID: "external_1", Corpus: domain.CorpusExternal, Distance: 0.1,
			Content: "Title: Review Channel: EV Daily Views: 500 Channel Subscribers: 20"},
		{DocID: "facts_2", ChunkID: "facts_2", Corpus: domain.CorpusFacts, Distance: 0.5},
	}

	citations := usecase.SelectCitations(used)

	require.Len(t, citations, 2)
	assert.Equal(t, domain.CorpusFacts, citations[0].Source())
	assert.Equal(t, domain.CorpusExternal, citations[1].Source())

	ext := citations[1].(domain.ExternalCitation)
	assert.Equal(t, "Review", ext.Title)
	assert.Equal(t, "EV Daily", ext.Channel)
	assert.Equal(t, "500", ext.Views)
	assert.Equal(t, "20", ext.Subscribers)
}

func TestSelectCitations_EmptyInput(t *testing.T) {
	assert.Empty(t, usecase.SelectCitations(nil))
}

func indexOf(chunks []domain.DocumentChunk, docID string) int {
	for i, c := range chunks {
		if c.DocID == docID {
			return i
		}
	}
	return -1
}
