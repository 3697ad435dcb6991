package search

import (
	"testing"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIEmbedderConfig_Validate_RequiresAPIKeyAndDefaultsModel(t *testing.T) {
	cfg := &OpenAIEmbedderConfig{}
	assert.Error(t, cfg.validate())

	cfg = &OpenAIEmbedderConfig{APIKey: "sk-test"}
	require.NoError(t, cfg.validate())
	assert.Equal(t, "text-embedding-3-small", cfg.Model)

	cfg = &OpenAIEmbedderConfig{APIKey: "sk-test", Model: "text-embedding-3-large"}
	require.NoError(t, cfg.validate())
	assert.Equal(t, "text-embedding-3-large", cfg.Model)
}

func TestNewOpenAIEmbedder_RejectsMissingAPIKey(t *testing.T) {
	_, err := NewOpenAIEmbedder(OpenAIEmbedderConfig{})
	assert.Error(t, err)
}

func TestOpenAIRerankerConfig_Validate_RequiresAPIKeyAndDefaultsModel(t *testing.T) {
	cfg := &OpenAIRerankerConfig{}
	assert.Error(t, cfg.validate())

	cfg = &OpenAIRerankerConfig{APIKey: "sk-test"}
	require.NoError(t, cfg.validate())
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
}

func TestNewOpenAIReranker_RejectsMissingAPIKey(t *testing.T) {
	_, err := NewOpenAIReranker(OpenAIRerankerConfig{})
	assert.Error(t, err)
}

func TestTruncate_LeavesShortStringsUnchanged(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 800))
}

func TestTruncate_CutsLongStringsToRuneCount(t *testing.T) {
	s := ""
	for i := 0; i < 10; i++ {
		s += "日本語test"
	}
	got := truncate(s, 5)
	assert.Equal(t, 5, len([]rune(got)))
	assert.Equal(t, "日本語te", got)
}

func TestOpenSearchLexicalIndexConfig_Validate_RequiresClientAndIndex(t *testing.T) {
	cfg := &OpenSearchLexicalIndexConfig{}
	assert.Error(t, cfg.validate())

	client, err := opensearch.NewClient(opensearch.Config{Addresses: []string{"http://localhost:9200"}})
	require.NoError(t, err)

	cfg = &OpenSearchLexicalIndexConfig{Client: client}
	assert.Error(t, cfg.validate(), "index name is required")

	cfg = &OpenSearchLexicalIndexConfig{Client: client, Index: "statutes"}
	assert.NoError(t, cfg.validate())
}

func TestNewOpenSearchLexicalIndex_RejectsMissingIndex(t *testing.T) {
	client, err := opensearch.NewClient(opensearch.Config{Addresses: []string{"http://localhost:9200"}})
	require.NoError(t, err)

	_, err = NewOpenSearchLexicalIndex(OpenSearchLexicalIndexConfig{Client: client})
	assert.Error(t, err)
}
