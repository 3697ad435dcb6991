package search

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/lexindia/agent/pkg/ptr"
)

// QdrantVectorIndexConfig configures a qdrant-backed VectorIndex, following
// the teacher's Config+Validate() builder convention
// (ai/providers/vectorstores/qdrant/store.go's VectorStoreConfig).
type QdrantVectorIndexConfig struct {
	// Client is the qdrant client instance. Required.
	Client *qdrant.Client
	// CollectionName is the prebuilt collection holding chunk embeddings,
	// per §1's "assumes a prebuilt index" scoping. Required.
	CollectionName string
	// MinScore is the ScoreThreshold passed to every query.
	MinScore float32
}

func (c *QdrantVectorIndexConfig) validate() error {
	if c.Client == nil {
		return fmt.Errorf("search: QdrantVectorIndexConfig.Client is required")
	}
	if c.CollectionName == "" {
		return fmt.Errorf("search: QdrantVectorIndexConfig.CollectionName is required")
	}
	return nil
}

// QdrantVectorIndex implements VectorIndex against a qdrant collection whose
// points carry the §3 Chunk metadata as payload.
type QdrantVectorIndex struct {
	client         *qdrant.Client
	collectionName string
	minScore       float32
}

var _ VectorIndex = (*QdrantVectorIndex)(nil)

// NewQdrantVectorIndex validates cfg and constructs a QdrantVectorIndex.
func NewQdrantVectorIndex(cfg QdrantVectorIndexConfig) (*QdrantVectorIndex, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &QdrantVectorIndex{
		client:         cfg.Client,
		collectionName: cfg.CollectionName,
		minScore:       cfg.MinScore,
	}, nil
}

// Search implements VectorIndex, translating filters.Domain into a single
// payload-equality qdrant Filter — this spec's filter surface never needs
// more than the one domain predicate (§4.8), so no general filter
// expression language is wired in.
func (q *QdrantVectorIndex) Search(ctx context.Context, embedding []float32, filters Filters, limit int) ([]Result, error) {
	query := &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          ptr.Pointer(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if q.minScore > 0 {
		query.ScoreThreshold = ptr.Pointer(q.minScore)
	}
	if filters.Domain != "" {
		query.Filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatchKeyword("domain", filters.Domain),
			},
		}
	}

	scored, err := q.client.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search: qdrant query on %s: %w", q.collectionName, err)
	}

	out := make([]Result, 0, len(scored))
	for _, point := range scored {
		payload := point.GetPayload()
		out = append(out, Result{
			Content:         stringPayload(payload, "content"),
			Metadata:        metadataFromPayload(payload),
			Score:           float64(point.GetScore()),
			ScoreComponents: map[string]float64{"qdrant_score": float64(point.GetScore())},
			Source:          "dense",
		})
	}
	return out, nil
}

func metadataFromPayload(payload map[string]*qdrant.Value) Metadata {
	m := Metadata{
		Domain:   stringPayload(payload, "domain"),
		Source:   stringPayload(payload, "source"),
		ActName:  stringPayload(payload, "act_name"),
		Filename: stringPayload(payload, "filename"),
	}
	if v, ok := payload["section_numbers"]; ok {
		if list := v.GetListValue(); list != nil {
			for _, item := range list.Values {
				m.SectionNumbers = append(m.SectionNumbers, item.GetStringValue())
			}
		}
	}
	return m
}

func stringPayload(payload map[string]*qdrant.Value, key string) string {
	if payload == nil {
		return ""
	}
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}
