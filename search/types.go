// Package search implements the hybrid dense+sparse retrieval engine
// (§4.8): an Embedder produces query/document vectors, a VectorIndex
// performs ANN search, a LexicalIndex performs BM25, and an optional
// Reranker re-scores the fused candidates with a cross-encoder.
package search

import "context"

// Chunk is the index entry record from §3.
type Chunk struct {
	ChunkID  string
	Content  string
	Metadata Metadata
}

// Metadata is the fixed set of keys every chunk's metadata carries, per §6.
type Metadata struct {
	Domain         string
	Source         string
	SectionNumbers []string
	ActName        string
	Filename       string
}

// Filters constrains a search to chunks whose metadata matches. An empty
// Domain means no domain constraint (the wildcard case, §4.2 step 2).
type Filters struct {
	Domain string
}

func (f Filters) matches(m Metadata) bool {
	if f.Domain == "" {
		return true
	}
	return m.Domain == f.Domain
}

// Result is one scored passage returned by the engine, per §4.8's
// interface.
type Result struct {
	Content         string
	Metadata        Metadata
	Score           float64
	ScoreComponents map[string]float64
	Source          string // "dense" | "sparse" | "hybrid" | "reranked"
}

// Embedder produces dense vectors for queries and, offline, for documents.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Reranker scores (query, passage) pairs with a cross-encoder. It is an
// optional capability per §9: callers must tolerate its absence.
type Reranker interface {
	Rerank(ctx context.Context, query string, passages []string) ([]float64, error)
}

// LexicalIndex is BM25 over the same corpus as the VectorIndex.
type LexicalIndex interface {
	Search(ctx context.Context, query string, filters Filters, limit int) ([]Result, error)
}

// VectorIndex is ANN search over dense embeddings with a metadata filter.
type VectorIndex interface {
	Search(ctx context.Context, embedding []float32, filters Filters, limit int) ([]Result, error)
}
