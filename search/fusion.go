package search

import "sort"

// fusionWeights is the default dense/sparse weighting; callers may request
// the lexical-favoring alternative per §4.8 step 5.
type fusionWeights struct {
	dense  float64
	sparse float64
}

var defaultWeights = fusionWeights{dense: 0.5, sparse: 0.5}
var lexicalFavoredWeights = fusionWeights{dense: 0.3, sparse: 0.7}

// fuse merges normalized dense and sparse result lists by content identity,
// per §4.8 steps 4-6: independent min-max normalization, weighted
// contribution, sum on overlap, descending sort with insertion-order
// tiebreak (dense before sparse).
func fuse(dense, sparse []Result, weights fusionWeights) []Result {
	denseScores := make(map[string]float64, len(dense))
	for _, r := range dense {
		denseScores[r.Content] = r.Score
	}
	sparseScores := make(map[string]float64, len(sparse))
	for _, r := range sparse {
		sparseScores[r.Content] = r.Score
	}
	normDense := Normalize(denseScores)
	normSparse := Normalize(sparseScores)

	order := make([]string, 0, len(dense)+len(sparse))
	seen := map[string]bool{}
	byContent := map[string]Result{}
	for _, r := range dense {
		if !seen[r.Content] {
			seen[r.Content] = true
			order = append(order, r.Content)
			byContent[r.Content] = r
		}
	}
	for _, r := range sparse {
		if !seen[r.Content] {
			seen[r.Content] = true
			order = append(order, r.Content)
			byContent[r.Content] = r
		}
	}

	fused := make([]Result, 0, len(order))
	for _, content := range order {
		d := normDense[content]
		s := normSparse[content]
		base := byContent[content]
		fused = append(fused, Result{
			Content:  content,
			Metadata: base.Metadata,
			Score:    weights.dense*d + weights.sparse*s,
			ScoreComponents: map[string]float64{
				"dense_normalized":  d,
				"sparse_normalized": s,
			},
			Source: "hybrid",
		})
	}

	stableSortByScoreDesc(fused)
	return fused
}

// stableSortByScoreDesc sorts in place by Score descending; ties preserve
// the input (insertion) order, which is how §4.8's and §8's ordering
// guarantees are satisfied since dense entries are appended before sparse.
func stableSortByScoreDesc(results []Result) {
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
}
