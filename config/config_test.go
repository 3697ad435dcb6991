package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	d := Defaults()

	assert.Equal(t, 8, d.Retrieval.ConcurrencyCap)
	assert.Equal(t, 0.5, d.Retrieval.DenseWeight)
	assert.Equal(t, "legal_chunks", d.Backends.QdrantCollection)
	assert.Equal(t, 100, d.Deadlines.GeneratorSeconds)
}

func TestLoad_MissingConfigFileFallsBackToDefaults(t *testing.T) {
	cfg, _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, _, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_PartialYAMLOverlaysOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retrieval:\n  concurrency_cap: 16\n"), 0o644))

	cfg, _, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Retrieval.ConcurrencyCap)
	assert.Equal(t, 0.5, cfg.Retrieval.DenseWeight, "fields the override omits must keep their compiled-in default")
	assert.Equal(t, "legal_chunks", cfg.Backends.QdrantCollection)
}

func TestLoad_MalformedYAMLIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: valid: yaml: ["), 0o644))

	_, _, err := Load(path)

	assert.Error(t, err)
}

func TestLoad_EnvOverrideTakesPrecedenceOverYAMLAndDefaults(t *testing.T) {
	t.Setenv("LEXINDIA_RETRIEVAL_CONCURRENCY_CAP", "32")
	t.Setenv("LEXINDIA_RETRIEVAL_DENSE_WEIGHT", "0.8")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retrieval:\n  concurrency_cap: 16\n  dense_weight: 0.6\n"), 0o644))

	cfg, _, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Retrieval.ConcurrencyCap)
	assert.Equal(t, 0.8, cfg.Retrieval.DenseWeight)
}

func TestLoad_UnparseableEnvOverrideIsAnError(t *testing.T) {
	t.Setenv("LEXINDIA_RETRIEVAL_CONCURRENCY_CAP", "not-a-number")

	_, _, err := Load("")

	assert.Error(t, err)
}

func TestLoad_ReadsSecretsFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test-key")

	_, env, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "sk-test-key", env.OpenAIAPIKey)
}

func TestLoad_StripsQuotesFromShellExportedSecrets(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", `"sk-test-key"`)

	_, env, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "sk-test-key", env.OpenAIAPIKey)
}

func TestDeadlines_ConversionHelpers(t *testing.T) {
	d := Deadlines{GeneratorSeconds: 10, RetrievalSeconds: 5, RequestSeconds: 30}

	assert.Equal(t, 10*time.Second, d.GeneratorDeadline())
	assert.Equal(t, 5*time.Second, d.RetrievalDeadline())
	assert.Equal(t, 30*time.Second, d.RequestDeadline())
}
