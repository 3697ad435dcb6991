package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

const defaultRerankThreshold = 0.3

// EngineConfig configures a HybridSearchEngine, following the teacher's
// Config+validate() builder convention (ai/rag/pipeline.go's
// PipelineConfig).
type EngineConfig struct {
	Embedder        Embedder
	VectorIndex     VectorIndex
	LexicalIndex    LexicalIndex
	Reranker        Reranker // optional; nil degrades gracefully, §4.8 step 8
	RerankThreshold float64
	FetchMultiplier int // "k x 4" in spec language
}

func (c *EngineConfig) validate() error {
	if c.Embedder == nil {
		return fmt.Errorf("search: EngineConfig.Embedder is required")
	}
	if c.VectorIndex == nil {
		return fmt.Errorf("search: EngineConfig.VectorIndex is required")
	}
	if c.LexicalIndex == nil {
		return fmt.Errorf("search: EngineConfig.LexicalIndex is required")
	}
	if c.RerankThreshold == 0 {
		c.RerankThreshold = defaultRerankThreshold
	}
	if c.FetchMultiplier == 0 {
		c.FetchMultiplier = 4
	}
	return nil
}

// Engine implements §4.8's HybridSearchEngine.
type Engine struct {
	embedder        Embedder
	vectorIndex     VectorIndex
	lexicalIndex    LexicalIndex
	reranker        Reranker
	rerankThreshold float64
	fetchMultiplier int

	rerankWarnOnce sync.Once
}

// NewEngine validates cfg and constructs an Engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Engine{
		embedder:        cfg.Embedder,
		vectorIndex:     cfg.VectorIndex,
		lexicalIndex:    cfg.LexicalIndex,
		reranker:        cfg.Reranker,
		rerankThreshold: cfg.RerankThreshold,
		fetchMultiplier: cfg.FetchMultiplier,
	}, nil
}

// Search implements §4.8's algorithm end to end.
func (e *Engine) Search(ctx context.Context, query string, filters Filters, k int, useReranker bool) ([]Result, error) {
	return e.search(ctx, query, filters, k, useReranker, defaultWeights)
}

// SearchLexicalFavored is the same algorithm with the 0.7/0.3 lexical-
// favoring weights a caller may request per §4.8 step 5.
func (e *Engine) SearchLexicalFavored(ctx context.Context, query string, filters Filters, k int, useReranker bool) ([]Result, error) {
	return e.search(ctx, query, filters, k, useReranker, lexicalFavoredWeights)
}

func (e *Engine) search(ctx context.Context, query string, filters Filters, k int, useReranker bool, weights fusionWeights) ([]Result, error) {
	fetch := k * e.fetchMultiplier
	if fetch <= 0 {
		fetch = k
	}

	queryEmbedding, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search: embed query: %w", err)
	}

	var dense, sparse []Result
	var denseErr, sparseErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		dense, denseErr = e.vectorIndex.Search(ctx, queryEmbedding, filters, fetch)
	}()
	go func() {
		defer wg.Done()
		sparse, sparseErr = e.lexicalIndex.Search(ctx, query, filters, fetch)
	}()
	wg.Wait()

	if denseErr != nil {
		slog.Warn("search: dense retrieval unavailable, continuing sparse-only", "error", denseErr)
	}
	if sparseErr != nil {
		slog.Warn("search: sparse retrieval unavailable, continuing dense-only", "error", sparseErr)
	}
	if denseErr != nil && sparseErr != nil {
		return nil, fmt.Errorf("search: both retrieval paths failed: dense=%w sparse=%v", denseErr, sparseErr)
	}

	dense = dropMalformed(dense)
	sparse = dropMalformed(sparse)

	fused := fuse(dense, sparse, weights)

	if !useReranker || e.reranker == nil {
		if useReranker && e.reranker == nil {
			e.rerankWarnOnce.Do(func() {
				slog.Warn("search: reranker requested but not configured, degrading to fused order")
			})
		}
		return capResults(fused, k), nil
	}

	candidates := fused
	if len(candidates) > fetch {
		candidates = candidates[:fetch]
	}
	return e.rerank(ctx, query, candidates, k)
}

func (e *Engine) rerank(ctx context.Context, query string, candidates []Result, k int) ([]Result, error) {
	passages := make([]string, len(candidates))
	for i, c := range candidates {
		passages[i] = c.Content
	}
	scores, err := e.reranker.Rerank(ctx, query, passages)
	if err != nil {
		slog.Warn("search: reranker call failed, degrading to fused order", "error", err)
		return capResults(candidates, k), nil
	}

	asMap := make(map[string]float64, len(scores))
	for i, s := range scores {
		asMap[fmt.Sprintf("%d", i)] = s
	}
	normalized := Normalize(asMap)

	reranked := make([]Result, 0, len(candidates))
	for i, c := range candidates {
		score := normalized[fmt.Sprintf("%d", i)]
		if score < e.rerankThreshold {
			continue
		}
		c.Score = score
		c.Source = "reranked"
		if c.ScoreComponents == nil {
			c.ScoreComponents = map[string]float64{}
		}
		c.ScoreComponents["rerank"] = score
		reranked = append(reranked, c)
	}
	sort.SliceStable(reranked, func(i, j int) bool { return reranked[i].Score > reranked[j].Score })
	return capResults(reranked, k), nil
}

// dropMalformed discards index entries missing required metadata (§7's
// MalformedIndexEntry error kind): no content, or no domain tag at all.
func dropMalformed(results []Result) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Content == "" || r.Metadata.Domain == "" {
			slog.Warn("search: dropping malformed index entry", "source", r.Metadata.Source)
			continue
		}
		out = append(out, r)
	}
	return out
}

func capResults(results []Result, k int) []Result {
	if k > 0 && len(results) > k {
		return results[:k]
	}
	return results
}
