package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClassifier_NilEmbedderDegradesToLexicalOnly(t *testing.T) {
	c, err := NewClassifier(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, c.embeddings)
}

func TestClassifier_Classify_StronglyMatchingQueryPredictsItsDomain(t *testing.T) {
	c, err := NewClassifier(context.Background(), nil)
	require.NoError(t, err)

	got, err := c.Classify(context.Background(), "divorce custody maintenance alimony dowry")

	require.NoError(t, err)
	assert.Equal(t, DomainCivilFamily, got.Predicted)
	assert.Greater(t, got.Scores[DomainCivilFamily], got.Scores[DomainITCyber])
}

func TestGate_AcceptsWhenPredictedMatchesSpecified(t *testing.T) {
	fused := Classification{
		Scores:    map[Domain]float64{DomainCriminal: 0.9, DomainCorporate: 0.1},
		Predicted: DomainCriminal,
	}
	assert.True(t, Gate(fused, DomainCriminal))
}

func TestGate_RejectsWhenSelectedDomainHasNoSignal(t *testing.T) {
	fused := Classification{
		Scores:     map[Domain]float64{DomainCivilFamily: 1.0, DomainITCyber: 0},
		Predicted:  DomainCivilFamily,
		Confidence: 1.0,
	}
	assert.False(t, Gate(fused, DomainITCyber))
}

func TestGate_AcceptsWhenSelectedIsCloseRunnerUp(t *testing.T) {
	fused := Classification{
		Scores:     map[Domain]float64{DomainCriminal: 1.0, DomainCorporate: 0.6},
		Predicted:  DomainCriminal,
		Confidence: 1.0,
	}
	assert.True(t, Gate(fused, DomainCorporate))
}

func TestGate_AcceptsWhenSelectedExceedsAbsoluteFloorEvenIfFarFromTop(t *testing.T) {
	fused := Classification{
		Scores:     map[Domain]float64{DomainCriminal: 1.0, DomainProperty: 0.25},
		Predicted:  DomainCriminal,
		Confidence: 1.0,
	}
	assert.True(t, Gate(fused, DomainProperty))
}

func TestGate_RejectsBelowBothThresholds(t *testing.T) {
	fused := Classification{
		Scores:     map[Domain]float64{DomainCriminal: 1.0, DomainTraffic: 0.15},
		Predicted:  DomainCriminal,
		Confidence: 1.0,
	}
	assert.False(t, Gate(fused, DomainTraffic))
}

func TestCosineSimilarity_ZeroNormVectorYieldsZero(t *testing.T) {
	assert.Equal(t, float64(0), cosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3}))
	assert.Equal(t, float64(0), cosineSimilarity(nil, []float32{1, 2, 3}))
	assert.Equal(t, float64(0), cosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
}

func TestCosineSimilarity_IdenticalVectorsYieldOne(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
}

func TestNormalizeByMax_DividesEveryEntryByTheMaximum(t *testing.T) {
	got := normalizeByMax(map[string]float64{"a": 4, "b": 2, "c": 0})
	assert.InDelta(t, 1.0, got["a"], 1e-9)
	assert.InDelta(t, 0.5, got["b"], 1e-9)
	assert.InDelta(t, 0.0, got["c"], 1e-9)
}

func TestNormalizeByMax_AllZeroOrEmptyYieldsZeros(t *testing.T) {
	assert.Equal(t, map[string]float64{"a": 0, "b": 0}, normalizeByMax(map[string]float64{"a": 0, "b": 0}))
	assert.Empty(t, normalizeByMax(map[string]float64{}))
}
