package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryVectorIndex_Search_OrdersByAscendingDistanceAndRespectsLimit(t *testing.T) {
	chunks := []Chunk{
		{ChunkID: "near", Content: "near", Metadata: Metadata{Domain: "criminal"}},
		{ChunkID: "mid", Content: "mid", Metadata: Metadata{Domain: "criminal"}},
		{ChunkID: "far", Content: "far", Metadata: Metadata{Domain: "criminal"}},
	}
	embeddings := map[string][]float32{
		"near": {0, 0},
		"mid":  {1, 0},
		"far":  {5, 0},
	}
	idx := NewMemoryVectorIndex(chunks, embeddings)

	results, err := idx.Search(context.Background(), []float32{0, 0}, Filters{}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "near", results[0].Content)
	assert.Equal(t, "mid", results[1].Content)
	assert.Equal(t, "dense", results[0].Source)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestMemoryVectorIndex_Search_FiltersByDomain(t *testing.T) {
	chunks := []Chunk{
		{ChunkID: "a", Content: "a", Metadata: Metadata{Domain: "criminal"}},
		{ChunkID: "b", Content: "b", Metadata: Metadata{Domain: "corporate"}},
	}
	embeddings := map[string][]float32{
		"a": {0, 0},
		"b": {0, 0},
	}
	idx := NewMemoryVectorIndex(chunks, embeddings)

	results, err := idx.Search(context.Background(), []float32{0, 0}, Filters{Domain: "corporate"}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].Content)
}

func TestMemoryVectorIndex_Search_SkipsChunksWithNoPrecomputedEmbedding(t *testing.T) {
	chunks := []Chunk{
		{ChunkID: "has-embedding", Content: "yes"},
		{ChunkID: "missing-embedding", Content: "no"},
	}
	idx := NewMemoryVectorIndex(chunks, map[string][]float32{"has-embedding": {1, 1}})

	results, err := idx.Search(context.Background(), []float32{1, 1}, Filters{}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "yes", results[0].Content)
}

func TestMemoryLexicalIndex_Search_ScoresAndFiltersByDomain(t *testing.T) {
	chunks := []Chunk{
		{ChunkID: "cheating", Content: "cheating and dishonestly inducing delivery of property", Metadata: Metadata{Domain: "criminal"}},
		{ChunkID: "unrelated", Content: "registration of a company under the Companies Act", Metadata: Metadata{Domain: "corporate"}},
	}
	idx := NewMemoryLexicalIndex(chunks)

	results, err := idx.Search(context.Background(), "cheating", Filters{Domain: "criminal"}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "criminal", results[0].Metadata.Domain)
	assert.Equal(t, "sparse", results[0].Source)
	assert.Greater(t, results[0].Score, 0.0)
}

func TestMemoryLexicalIndex_Search_ExcludesNonMatchingChunks(t *testing.T) {
	chunks := []Chunk{
		{ChunkID: "a", Content: "cheating and dishonestly inducing delivery of property"},
		{ChunkID: "b", Content: "registration of a company under the companies act"},
	}
	idx := NewMemoryLexicalIndex(chunks)

	results, err := idx.Search(context.Background(), "registration company", Filters{}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "registration of a company under the companies act", results[0].Content)
}

func TestEuclidean_MismatchedOrEmptyVectorsYieldInfiniteDistance(t *testing.T) {
	assert.True(t, euclidean([]float32{1}, []float32{1, 2}) > 1e300)
	assert.True(t, euclidean(nil, nil) > 1e300)
}

func TestEuclidean_ComputesStandardDistance(t *testing.T) {
	assert.InDelta(t, 5.0, euclidean([]float32{0, 0}, []float32{3, 4}), 1e-9)
}
