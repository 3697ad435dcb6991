// Package config loads runtime settings for the legalcli binary: secrets
// and endpoints from a .env file (github.com/joho/godotenv, as
// SuperOuss-meritDraft-backend's cmd/server does), and a YAML
// document (gopkg.in/yaml.v3, as thinkwright-agent-evals/internal/config
// does) for tuning values that should be editable without a rebuild.
// Every field ships with a compiled-in default so the zero-config case
// (no .env, no config.yaml) still runs against the in-memory store/engine.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	agentstrings "github.com/lexindia/agent/pkg/strings"
)

// Deadlines mirrors §5's per-call timeout budget.
type Deadlines struct {
	GeneratorSeconds int `yaml:"generator_seconds"`
	RetrievalSeconds int `yaml:"retrieval_seconds"`
	RequestSeconds   int `yaml:"request_seconds"`
}

// Retrieval tunes the hybrid search engine (§4.8).
type Retrieval struct {
	ConcurrencyCap   int     `yaml:"concurrency_cap"`
	DenseWeight      float64 `yaml:"dense_weight"`
	LexicalWeight    float64 `yaml:"lexical_weight"`
	RerankThreshold  float64 `yaml:"rerank_threshold"`
	CandidateFanout  int     `yaml:"candidate_fanout"`
}

// Backends holds the endpoints for the process-scoped shared resources
// (§5). Secrets (API keys, passwords) are deliberately not YAML fields —
// they come from the environment via Env below.
type Backends struct {
	QdrantHost        string `yaml:"qdrant_host"`
	QdrantPort        int    `yaml:"qdrant_port"`
	QdrantCollection  string `yaml:"qdrant_collection"`
	OpenSearchHost    string `yaml:"opensearch_host"`
	OpenSearchPort    int    `yaml:"opensearch_port"`
	OpenSearchIndex   string `yaml:"opensearch_index"`
	PostgresDSN       string `yaml:"postgres_dsn"`
	GeneratorModel    string `yaml:"generator_model"`
	EmbedderModel     string `yaml:"embedder_model"`
	RerankerModel     string `yaml:"reranker_model"`
}

// Config is the full YAML document shape.
type Config struct {
	Deadlines Deadlines `yaml:"deadlines"`
	Retrieval Retrieval `yaml:"retrieval"`
	Backends  Backends  `yaml:"backends"`
}

// Env holds secrets and connection strings sourced from the process
// environment (typically populated via a .env file in development).
type Env struct {
	OpenAIAPIKey     string
	QdrantAPIKey     string
	OpenSearchUser   string
	OpenSearchPass   string
}

// Defaults returns the compiled-in configuration used when no config.yaml
// is present, sized for the in-memory store/engine backends.
func Defaults() Config {
	return Config{
		Deadlines: Deadlines{
			GeneratorSeconds: 100,
			RetrievalSeconds: 20,
			RequestSeconds:   150,
		},
		Retrieval: Retrieval{
			ConcurrencyCap:  8,
			DenseWeight:     0.5,
			LexicalWeight:   0.5,
			RerankThreshold: 0.3,
			CandidateFanout: 4,
		},
		Backends: Backends{
			QdrantCollection: "legal_chunks",
			OpenSearchIndex:  "legal_chunks",
			GeneratorModel:   "gpt-4o-mini",
			EmbedderModel:    "text-embedding-3-small",
			RerankerModel:    "gpt-4o-mini",
		},
	}
}

// Load reads config.yaml from path (falling back to Defaults() fields for
// anything the document omits, by unmarshaling onto a Defaults() base) and
// loads .env from the working directory for secrets. A missing config.yaml or .env is not
// an error — both degrade to defaults/bare environment variables, matching
// SuperOuss-meritDraft-backend's cmd/server "Warning: No .env file found"
// tolerance.
func Load(path string) (Config, Env, error) {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			// no .env present; continue with whatever is already in the
			// process environment
		}
	}

	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, Env{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, Env{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, Env{}, err
	}

	// Shell-exported .env values are sometimes left wrapped in quotes
	// (`export OPENAI_API_KEY="sk-..."` sourced directly rather than via
	// godotenv); strip them so a quoted secret doesn't reach the client as-is.
	env := Env{
		OpenAIAPIKey:   agentstrings.UnQuote(os.Getenv("OPENAI_API_KEY")),
		QdrantAPIKey:   agentstrings.UnQuote(os.Getenv("QDRANT_API_KEY")),
		OpenSearchUser: agentstrings.UnQuote(os.Getenv("OPENSEARCH_USERNAME")),
		OpenSearchPass: agentstrings.UnQuote(os.Getenv("OPENSEARCH_PASSWORD")),
	}

	return cfg, env, nil
}

// applyEnvOverrides lets an operator tweak a single tuning value without
// touching config.yaml, coercing the always-string os.Getenv values with
// spf13/cast the way Tangerg/lynx's settings loader does for its own loosely
// typed config bag. A present-but-unparseable override is an error rather
// than a silent no-op.
func applyEnvOverrides(cfg *Config) error {
	overrides := []struct {
		key string
		set func(string) error
	}{
		{"LEXINDIA_RETRIEVAL_CONCURRENCY_CAP", func(v string) error {
			n, err := cast.ToIntE(v)
			if err != nil {
				return err
			}
			cfg.Retrieval.ConcurrencyCap = n
			return nil
		}},
		{"LEXINDIA_RETRIEVAL_DENSE_WEIGHT", func(v string) error {
			f, err := cast.ToFloat64E(v)
			if err != nil {
				return err
			}
			cfg.Retrieval.DenseWeight = f
			return nil
		}},
		{"LEXINDIA_RETRIEVAL_LEXICAL_WEIGHT", func(v string) error {
			f, err := cast.ToFloat64E(v)
			if err != nil {
				return err
			}
			cfg.Retrieval.LexicalWeight = f
			return nil
		}},
		{"LEXINDIA_REQUEST_DEADLINE_SECONDS", func(v string) error {
			n, err := cast.ToIntE(v)
			if err != nil {
				return err
			}
			cfg.Deadlines.RequestSeconds = n
			return nil
		}},
	}
	for _, o := range overrides {
		v, ok := os.LookupEnv(o.key)
		if !ok || v == "" {
			continue
		}
		if err := o.set(v); err != nil {
			return fmt.Errorf("env override %s=%q: %w", o.key, v, err)
		}
	}
	return nil
}

// GeneratorDeadline, RetrievalDeadline and RequestDeadline convert the
// configured second counts to time.Duration for use as context deadlines.
func (d Deadlines) GeneratorDeadline() time.Duration {
	return time.Duration(d.GeneratorSeconds) * time.Second
}

func (d Deadlines) RetrievalDeadline() time.Duration {
	return time.Duration(d.RetrievalSeconds) * time.Second
}

func (d Deadlines) RequestDeadline() time.Duration {
	return time.Duration(d.RequestSeconds) * time.Second
}
