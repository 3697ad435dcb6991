package domain

import (
	"context"
	"math"

	"github.com/lexindia/agent/search"
)

// Embedder is the narrow slice of search.Embedder the classifier needs,
// declared locally so the classifier depends on this one method only; any
// search.Embedder satisfies it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Classifier implements the two-signal domain classification and fusion
// described in §4.1.3. It is constructed once at startup (it caches the
// embeddings of the fixed per-domain corpus) and is safe for concurrent use
// thereafter, matching §5's process-scoped-singleton model.
type Classifier struct {
	embedder   Embedder
	bm25       *search.BM25Index
	embeddings map[Domain][]float32
}

// NewClassifier builds the classifier's fixed BM25 index over
// ClassifierCorpus and, if embedder is non-nil, precomputes its semantic
// vectors. embedder may be nil (e.g. no embedding backend configured); the
// classifier then degrades to lexical-only scoring, since fusion already
// zeroes out a degenerate semantic vector.
func NewClassifier(ctx context.Context, embedder Embedder) (*Classifier, error) {
	c := &Classifier{
		embedder:   embedder,
		bm25:       search.NewBM25Index(),
		embeddings: map[Domain][]float32{},
	}
	for _, d := range AllDomains {
		c.bm25.Add(string(d), ClassifierCorpus[d])
	}
	if embedder != nil {
		for _, d := range AllDomains {
			vec, err := embedder.Embed(ctx, ClassifierCorpus[d])
			if err != nil {
				return nil, err
			}
			c.embeddings[d] = vec
		}
	}
	return c, nil
}

// Classification is the fused result of Classify.
type Classification struct {
	Scores     map[Domain]float64
	Predicted  Domain
	Confidence float64
}

// Classify fuses the lexical and semantic signals per §4.1.3's weighting
// rule: queries tokenizing to 3 words or fewer weight lexical 0.7/semantic
// 0.3; longer queries weight 0.5/0.5.
func (c *Classifier) Classify(ctx context.Context, query string) (Classification, error) {
	lexicalRaw := c.bm25.Score(query)
	lexical := normalizeByMax(lexicalRaw)

	semantic := map[Domain]float64{}
	if c.embedder != nil {
		qvec, err := c.embedder.Embed(ctx, query)
		if err != nil {
			return Classification{}, err
		}
		for _, d := range AllDomains {
			semantic[d] = cosineSimilarity(qvec, c.embeddings[d])
		}
	}

	tokenCount := len(search.Tokenize(query))
	lexicalWeight, semanticWeight := 0.5, 0.5
	if tokenCount <= 3 {
		lexicalWeight, semanticWeight = 0.7, 0.3
	}

	fused := make(map[Domain]float64, len(AllDomains))
	var best Domain
	bestScore := math.Inf(-1)
	for _, d := range AllDomains {
		score := lexicalWeight*lexical[string(d)] + semanticWeight*semantic[d]
		fused[d] = score
		if score > bestScore {
			bestScore = score
			best = d
		}
	}

	return Classification{Scores: fused, Predicted: best, Confidence: bestScore}, nil
}

// normalizeByMax rescales a raw BM25 score map by dividing every entry by
// the map's maximum, per §4.1.3's lexical-signal normalization rule (mirrors
// bm25_service.py's `bm25_scores / max(bm25_scores)`, not the min-max rescale
// search.Normalize performs for the retrieval engine's fusion step). A
// non-positive max (no lexical signal at all) normalizes to all zeros rather
// than dividing by zero.
func normalizeByMax(scores map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(scores))
	max := 0.0
	for _, s := range scores {
		if s > max {
			max = s
		}
	}
	if max <= 0 {
		for id := range scores {
			out[id] = 0
		}
		return out
	}
	for id, s := range scores {
		out[id] = s / max
	}
	return out
}

// cosineSimilarity returns 0 when either vector has zero norm, per §4.1.3.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Gate implements §4.1.4's domain-gate acceptance rule.
func Gate(fused Classification, specifiedDomain Domain) (accept bool) {
	selected := fused.Scores[specifiedDomain]
	top := fused.Confidence
	if fused.Predicted == specifiedDomain {
		return true
	}
	if selected > 0.5*top && selected > 0.1 {
		return true
	}
	return selected > 0.2
}
