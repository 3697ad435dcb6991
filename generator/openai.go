package generator

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIConfig configures an OpenAI-backed Generator, following the
// teacher's ApiConfig+validate() builder convention
// (ai/extensions/models/openai/api.go, ai/providers/openaiv2/chat_model.go).
type OpenAIConfig struct {
	APIKey         string
	Model          string // e.g. "gpt-4o"
	RequestOptions []option.RequestOption
}

func (c *OpenAIConfig) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("generator: OpenAIConfig.APIKey is required")
	}
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
	return nil
}

// OpenAIGenerator implements Generator against OpenAI's chat completions API.
type OpenAIGenerator struct {
	client openai.Client
	model  string
}

var _ Generator = (*OpenAIGenerator)(nil)

// NewOpenAIGenerator validates cfg and constructs an OpenAIGenerator.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	opts := append(append([]option.RequestOption{}, cfg.RequestOptions...), option.WithAPIKey(cfg.APIKey))
	return &OpenAIGenerator{client: openai.NewClient(opts...), model: cfg.Model}, nil
}

// Generate implements Generator.
func (g *OpenAIGenerator) Generate(ctx context.Context, messages []Message, opts Options) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       g.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(opts.MaxTokens))
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("generator: openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("generator: openai chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
