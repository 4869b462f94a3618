package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeChunks_DeduplicatesByDocID(t *testing.T) {
	chunks := []DocumentChunk{
		{DocID: "facts_1", ChunkID: "facts_1", Distance: 0.42},
		{DocID: "facts_2", ChunkID: "facts_2", Distance: 0.31},
		{DocID: "facts_1", ChunkID: "facts_1", Distance: 0.25},
	}

	merged := MergeChunks(chunks, 5)

	assert.Len(t, merged, 2)
	assert.Equal(t, "facts_1", merged[0].DocID)
	assert.Equal(t, 0.25, merged[0].Distance)
	assert.Equal(t, "facts_2", merged[1].DocID)
}

func TestMergeChunks_SortsAscendingByDistance(t *testing.T) {
	chunks := []DocumentChunk{
		{DocID: "a", Distance: 0.9},
		{DocID: "b", Distance: 0.1},
		{DocID: "c", Distance: 0.5},
	}

	merged := MergeChunks(chunks, 5)

	assert.Equal(t, []string{"b", "c", "a"}, []string{merged[0].DocID, merged[1].DocID, merged[2].DocID})
}

func TestMergeChunks_TruncatesToLimit(t *testing.T) {
	chunks := []DocumentChunk{
		{DocID: "a", Distance: 0.1},
		{DocID: "b", Distance: 0.2},
		{DocID: "c", Distance: 0.3},
	}

	merged := MergeChunks(chunks, 2)

	assert.Len(t, merged, 2)
	assert.Equal(t, "a", merged[0].DocID)
	assert.Equal(t, "b", merged[1].DocID)
}

func TestMergeChunks_EmptyInput(t *testing.T) {
	assert.Nil(t, MergeChunks(nil, 5))
	assert.Nil(t, MergeChunks([]DocumentChunk{}, 5))
}
