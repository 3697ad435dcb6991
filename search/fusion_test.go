package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuse_SumsScoresOnOverlap(t *testing.T) {
	dense := []Result{{Content: "a", Score: 10}, {Content: "b", Score: 5}}
	sparse := []Result{{Content: "a", Score: 8}, {Content: "c", Score: 2}}

	got := fuse(dense, sparse, defaultWeights)

	require.Len(t, got, 3)
	byContent := map[string]Result{}
	for _, r := range got {
		byContent[r.Content] = r
	}
	assert.Equal(t, "hybrid", byContent["a"].Source)
	assert.Greater(t, byContent["a"].ScoreComponents["dense_normalized"], 0.0)
	assert.Greater(t, byContent["a"].ScoreComponents["sparse_normalized"], 0.0)
}

func TestFuse_SortsDescendingByFusedScore(t *testing.T) {
	dense := []Result{{Content: "low", Score: 1}, {Content: "high", Score: 10}}
	sparse := []Result{}

	got := fuse(dense, sparse, defaultWeights)

	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].Content)
	assert.Equal(t, "low", got[1].Content)
}

func TestFuse_TiesPreferDenseInsertionOrder(t *testing.T) {
	dense := []Result{{Content: "d1", Score: 5}}
	sparse := []Result{{Content: "s1", Score: 5}}

	got := fuse(dense, sparse, defaultWeights)

	require.Len(t, got, 2)
	assert.Equal(t, "d1", got[0].Content, "equal fused scores must keep dense-before-sparse insertion order")
	assert.Equal(t, "s1", got[1].Content)
}

func TestFuse_EmptyInputsReturnEmptyResult(t *testing.T) {
	assert.Empty(t, fuse(nil, nil, defaultWeights))
}

func TestFuse_LexicalFavoredWeightsShiftRanking(t *testing.T) {
	dense := []Result{{Content: "denseOnly", Score: 10}}
	sparse := []Result{{Content: "sparseOnly", Score: 10}}

	defaultFused := fuse(dense, sparse, defaultWeights)
	lexicalFused := fuse(dense, sparse, lexicalFavoredWeights)

	require.Len(t, defaultFused, 2)
	require.Len(t, lexicalFused, 2)
	assert.Equal(t, defaultFused[0].Score, defaultFused[1].Score, "equal single-entry normalization ties under equal weights")
	assert.NotEqual(t, lexicalFused[0].Score, lexicalFused[1].Score, "lexical-favored weights must break the tie")
}
