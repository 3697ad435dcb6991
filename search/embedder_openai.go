package search

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIEmbedderConfig configures an OpenAI-backed Embedder, following the
// teacher's ApiConfig+validate() pattern (ai/extensions/models/openai/api.go).
type OpenAIEmbedderConfig struct {
	APIKey         string
	Model          string // e.g. "text-embedding-3-small"
	RequestOptions []option.RequestOption
}

func (c *OpenAIEmbedderConfig) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("search: OpenAIEmbedderConfig.APIKey is required")
	}
	if c.Model == "" {
		c.Model = "text-embedding-3-small"
	}
	return nil
}

// OpenAIEmbedder implements Embedder against the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client openai.Client
	model  string
}

var _ Embedder = (*OpenAIEmbedder)(nil)

// NewOpenAIEmbedder validates cfg and constructs an OpenAIEmbedder.
func NewOpenAIEmbedder(cfg OpenAIEmbedderConfig) (*OpenAIEmbedder, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	opts := append(append([]option.RequestOption{}, cfg.RequestOptions...), option.WithAPIKey(cfg.APIKey))
	return &OpenAIEmbedder{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

// Embed returns the single embedding vector for text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: e.model,
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: []string{text}},
	})
	if err != nil {
		return nil, fmt.Errorf("search: openai embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("search: openai embedding: empty response")
	}
	vec := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
