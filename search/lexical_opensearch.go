package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// OpenSearchLexicalIndexConfig configures a LexicalIndex backed by
// OpenSearch's own BM25-family scoring, grounded on
// techjusticelab-Motion-Index's pkg/search/client.Client construction.
type OpenSearchLexicalIndexConfig struct {
	Client *opensearch.Client
	Index  string
}

func (c *OpenSearchLexicalIndexConfig) validate() error {
	if c.Client == nil {
		return fmt.Errorf("search: OpenSearchLexicalIndexConfig.Client is required")
	}
	if c.Index == "" {
		return fmt.Errorf("search: OpenSearchLexicalIndexConfig.Index is required")
	}
	return nil
}

// OpenSearchLexicalIndex implements LexicalIndex over a prebuilt OpenSearch
// index of chunk documents (§1's ingestion boundary: this repo assumes the
// index already exists).
type OpenSearchLexicalIndex struct {
	client *opensearch.Client
	index  string
}

var _ LexicalIndex = (*OpenSearchLexicalIndex)(nil)

// NewOpenSearchLexicalIndex validates cfg and constructs an
// OpenSearchLexicalIndex.
func NewOpenSearchLexicalIndex(cfg OpenSearchLexicalIndexConfig) (*OpenSearchLexicalIndex, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &OpenSearchLexicalIndex{client: cfg.Client, index: cfg.Index}, nil
}

type openSearchHit struct {
	Score  float64 `json:"_score"`
	Source struct {
		Content        string   `json:"content"`
		Domain         string   `json:"domain"`
		Source         string   `json:"source"`
		SectionNumbers []string `json:"section_numbers"`
		ActName        string   `json:"act_name"`
		Filename       string   `json:"filename"`
	} `json:"_source"`
}

type openSearchResponse struct {
	Hits struct {
		Hits []openSearchHit `json:"hits"`
	} `json:"hits"`
}

// Search runs a `match` query on content, optionally filtered by
// metadata.domain with a `term` clause, per §4.8 step 3.
func (o *OpenSearchLexicalIndex) Search(ctx context.Context, query string, filters Filters, limit int) ([]Result, error) {
	must := []map[string]any{
		{"match": map[string]any{"content": query}},
	}
	if filters.Domain != "" {
		must = append(must, map[string]any{"term": map[string]any{"domain": filters.Domain}})
	}

	body := map[string]any{
		"size":  limit,
		"query": map[string]any{"bool": map[string]any{"must": must}},
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("search: encode opensearch query: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{o.index},
		Body:  bytes.NewReader(encoded),
	}
	res, err := req.Do(ctx, o.client)
	if err != nil {
		return nil, fmt.Errorf("search: opensearch request: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search: opensearch error status: %s", res.Status())
	}

	var parsed openSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("search: decode opensearch response: %w", err)
	}

	out := make([]Result, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		out = append(out, Result{
			Content: hit.Source.Content,
			Metadata: Metadata{
				Domain:         hit.Source.Domain,
				Source:         hit.Source.Source,
				SectionNumbers: hit.Source.SectionNumbers,
				ActName:        hit.Source.ActName,
				Filename:       hit.Source.Filename,
			},
			Score:           hit.Score,
			ScoreComponents: map[string]float64{"opensearch_score": hit.Score},
			Source:          "sparse",
		})
	}
	return out, nil
}
