package search

import (
	"context"
	"math"
	"sort"
)

// MemoryVectorIndex is an in-process VectorIndex over precomputed
// embeddings. It backs tests and any deployment too small to warrant
// qdrant, per the process-scoped long-lived resource model in §3's
// lifecycle note.
type MemoryVectorIndex struct {
	chunks     []Chunk
	embeddings map[string][]float32
}

var _ VectorIndex = (*MemoryVectorIndex)(nil)

// NewMemoryVectorIndex builds an index over chunks with their corresponding
// precomputed embeddings, keyed by ChunkID.
func NewMemoryVectorIndex(chunks []Chunk, embeddings map[string][]float32) *MemoryVectorIndex {
	return &MemoryVectorIndex{chunks: chunks, embeddings: embeddings}
}

// Search implements VectorIndex by brute-force Euclidean distance converted
// to similarity via s = 1/(1+d), per §4.8 step 2.
func (idx *MemoryVectorIndex) Search(ctx context.Context, embedding []float32, filters Filters, limit int) ([]Result, error) {
	type scored struct {
		chunk Chunk
		dist  float64
	}
	candidates := make([]scored, 0, len(idx.chunks))
	for _, c := range idx.chunks {
		if !filters.matches(c.Metadata) {
			continue
		}
		vec, ok := idx.embeddings[c.ChunkID]
		if !ok {
			continue
		}
		candidates = append(candidates, scored{chunk: c, dist: euclidean(embedding, vec)})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Result{
			Content:         c.chunk.Content,
			Metadata:        c.chunk.Metadata,
			Score:           1 / (1 + c.dist),
			ScoreComponents: map[string]float64{"dense_distance": c.dist},
			Source:          "dense",
		})
	}
	return out, nil
}

// MemoryLexicalIndex is an in-process BM25 LexicalIndex, used for tests and
// for the small fixed classifier corpus's general-purpose counterpart.
type MemoryLexicalIndex struct {
	chunks map[string]Chunk
	bm25   *BM25Index
}

var _ LexicalIndex = (*MemoryLexicalIndex)(nil)

// NewMemoryLexicalIndex builds a BM25 index over chunks.
func NewMemoryLexicalIndex(chunks []Chunk) *MemoryLexicalIndex {
	idx := &MemoryLexicalIndex{chunks: map[string]Chunk{}, bm25: NewBM25Index()}
	for _, c := range chunks {
		idx.chunks[c.ChunkID] = c
		idx.bm25.Add(c.ChunkID, c.Content)
	}
	return idx
}

// Search implements LexicalIndex via the package's BM25Index.
func (idx *MemoryLexicalIndex) Search(ctx context.Context, query string, filters Filters, limit int) ([]Result, error) {
	raw := idx.bm25.Score(query)
	type scored struct {
		chunk Chunk
		score float64
	}
	candidates := make([]scored, 0, len(raw))
	for id, s := range raw {
		c, ok := idx.chunks[id]
		if !ok || !filters.matches(c.Metadata) || s <= 0 {
			continue
		}
		candidates = append(candidates, scored{chunk: c, score: s})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Result{
			Content:         c.chunk.Content,
			Metadata:        c.chunk.Metadata,
			Score:           c.score,
			ScoreComponents: map[string]float64{"bm25": c.score},
			Source:          "sparse",
		})
	}
	return out, nil
}

func euclidean(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
