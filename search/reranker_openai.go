package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIRerankerConfig configures an LLM-scored Reranker. The spec's
// cross-encoder role (§4.8 step 7) is filled here by asking a chat model to
// emit a single relevance score per passage; the Reranker interface itself
// is shaped after antflydb-antfly-go's libaf/reranking.Model
// (Rerank(ctx, query, prompts) ([]float32, error)) — conceptual grounding
// only, that package is not imported directly since it ships no
// implementation to build on.
type OpenAIRerankerConfig struct {
	APIKey         string
	Model          string // e.g. "gpt-4o-mini"
	RequestOptions []option.RequestOption
}

func (c *OpenAIRerankerConfig) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("search: OpenAIRerankerConfig.APIKey is required")
	}
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
	return nil
}

// OpenAIReranker implements Reranker by prompting a chat model once per
// passage for a 0..1 relevance score.
type OpenAIReranker struct {
	client openai.Client
	model  string
}

var _ Reranker = (*OpenAIReranker)(nil)

// NewOpenAIReranker validates cfg and constructs an OpenAIReranker.
func NewOpenAIReranker(cfg OpenAIRerankerConfig) (*OpenAIReranker, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	opts := append(append([]option.RequestOption{}, cfg.RequestOptions...), option.WithAPIKey(cfg.APIKey))
	return &OpenAIReranker{client: openai.NewClient(opts...), model: cfg.Model}, nil
}

// Rerank scores every passage against query, returning one float64 per
// passage in the same order.
func (r *OpenAIReranker) Rerank(ctx context.Context, query string, passages []string) ([]float64, error) {
	scores := make([]float64, len(passages))
	for i, passage := range passages {
		score, err := r.scoreOne(ctx, query, passage)
		if err != nil {
			return nil, fmt.Errorf("search: rerank passage %d: %w", i, err)
		}
		scores[i] = score
	}
	return scores, nil
}

func (r *OpenAIReranker) scoreOne(ctx context.Context, query, passage string) (float64, error) {
	prompt := fmt.Sprintf(
		"Rate how relevant the passage is to the query on a scale from 0.00 to 1.00. "+
			"Reply with only the number.\n\nQuery: %s\n\nPassage: %s",
		query, truncate(passage, 800),
	)
	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: r.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return 0, err
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("empty response")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	score, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable score %q: %w", text, err)
	}
	return score, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
