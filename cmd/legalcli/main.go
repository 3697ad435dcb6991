// Command legalcli is the operator entry point for the agent pipeline: it
// wires the process-scoped shared resources (§5) from config.Load, then runs
// one request through the Orchestrator in either unary or streaming mode.
// This is not the excluded HTTP/WebSocket surface — it is a local/offline
// invocation tool, grounded on thinkwright-agent-evals/cmd's cobra layout.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexindia/agent/config"
	"github.com/lexindia/agent/domain"
	"github.com/lexindia/agent/generator"
	"github.com/lexindia/agent/pipeline"
	"github.com/lexindia/agent/search"
	"github.com/lexindia/agent/store"
)

var version = "dev"

func main() {
	var (
		flagConfig    string
		flagLanguage  string
		flagDomain    string
		flagSessionID string
	)

	root := &cobra.Command{
		Use:     "legalcli",
		Short:   "Run the Indian legal question-answering pipeline for one query",
		Version: version,
	}

	askCmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Run the pipeline once and print the §6 JSON response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, cfg, err := buildOrchestrator(flagConfig)
			if err != nil {
				return err
			}

			req := pipeline.Request{Content: args[0], Language: flagLanguage, Domain: flagDomain, SessionID: flagSessionID}
			if err := req.Validate(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Deadlines.RequestDeadline())
			defer cancel()

			rc := orch.Process(ctx, req.Content, req.SessionID, req.LanguageOrDefault(), req.DomainOrWildcard())
			return printJSON(rc.ToResponse())
		},
	}
	askCmd.Flags().StringVar(&flagLanguage, "language", "", "requested language tag (en, hi)")
	askCmd.Flags().StringVar(&flagDomain, "domain", "", "expected domain tag; empty allows any")
	askCmd.Flags().StringVar(&flagSessionID, "session", "", "session identifier to echo back")
	askCmd.Flags().StringVar(&flagConfig, "config", "", "path to config.yaml")

	streamCmd := &cobra.Command{
		Use:   "stream <query>",
		Short: "Run the pipeline and print each streaming event as one JSON line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, cfg, err := buildOrchestrator(flagConfig)
			if err != nil {
				return err
			}

			req := pipeline.Request{Content: args[0], Language: flagLanguage, Domain: flagDomain, SessionID: flagSessionID}
			if err := req.Validate(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Deadlines.RequestDeadline())
			defer cancel()

			for ev := range orch.Stream(ctx, req.Content, req.SessionID, req.LanguageOrDefault(), req.DomainOrWildcard()) {
				if err := printJSON(streamEventView{Type: string(ev.Type), Data: ev.Data}); err != nil {
					return err
				}
			}
			return nil
		},
	}
	streamCmd.Flags().StringVar(&flagLanguage, "language", "", "requested language tag (en, hi)")
	streamCmd.Flags().StringVar(&flagDomain, "domain", "", "expected domain tag; empty allows any")
	streamCmd.Flags().StringVar(&flagSessionID, "session", "", "session identifier to echo back")
	streamCmd.Flags().StringVar(&flagConfig, "config", "", "path to config.yaml")

	root.AddCommand(askCmd, streamCmd)

	if err := root.Execute(); err != nil {
		slog.Error("legalcli failed", "error", err)
		os.Exit(1)
	}
}

type streamEventView struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// buildOrchestrator wires the shared resources (§5) from configuration: an
// OpenAI generator/embedder/reranker when OPENAI_API_KEY is set, otherwise
// the in-memory fixtures degrade gracefully per every stage's documented
// nil-dependency behavior.
func buildOrchestrator(configPath string) (*pipeline.Orchestrator, config.Config, error) {
	cfg, env, err := config.Load(configPath)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var embedder search.Embedder
	var gen generator.Generator
	var reranker search.Reranker

	if env.OpenAIAPIKey != "" {
		e, err := search.NewOpenAIEmbedder(search.OpenAIEmbedderConfig{APIKey: env.OpenAIAPIKey, Model: cfg.Backends.EmbedderModel})
		if err != nil {
			return nil, config.Config{}, fmt.Errorf("build embedder: %w", err)
		}
		embedder = e

		g, err := generator.NewOpenAIGenerator(generator.OpenAIConfig{APIKey: env.OpenAIAPIKey, Model: cfg.Backends.GeneratorModel})
		if err != nil {
			return nil, config.Config{}, fmt.Errorf("build generator: %w", err)
		}
		gen = g

		r, err := search.NewOpenAIReranker(search.OpenAIRerankerConfig{APIKey: env.OpenAIAPIKey, Model: cfg.Backends.RerankerModel})
		if err != nil {
			return nil, config.Config{}, fmt.Errorf("build reranker: %w", err)
		}
		reranker = r
	} else {
		slog.Warn("OPENAI_API_KEY not set; running with no generator/embedder/reranker, retrieval limited to the structured store")
	}

	var classifierEmbedder domain.Embedder
	if embedder != nil {
		classifierEmbedder = embedder
	}
	classifier, err := domain.NewClassifier(ctx, classifierEmbedder)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("build classifier: %w", err)
	}

	structuredStore := store.NewMemoryStore(nil, nil, nil)

	var engine *search.Engine
	if embedder != nil {
		vectorIndex := search.NewMemoryVectorIndex(nil, nil)
		lexicalIndex := search.NewMemoryLexicalIndex(nil)
		eng, err := search.NewEngine(search.EngineConfig{
			Embedder:        embedder,
			VectorIndex:     vectorIndex,
			LexicalIndex:    lexicalIndex,
			Reranker:        reranker,
			RerankThreshold: cfg.Retrieval.RerankThreshold,
			FetchMultiplier: cfg.Retrieval.CandidateFanout,
		})
		if err != nil {
			return nil, config.Config{}, fmt.Errorf("build engine: %w", err)
		}
		engine = eng
	}

	orch := pipeline.NewOrchestrator(
		pipeline.NewQueryAnalyzer(classifier),
		pipeline.NewStatuteRetriever(structuredStore, engine, cfg.Retrieval.ConcurrencyCap),
		pipeline.NewCaseRetriever(structuredStore, engine, cfg.Retrieval.ConcurrencyCap),
		pipeline.NewRegulatoryFilter(),
		pipeline.NewCitationBuilder(),
		pipeline.NewSummarizer(gen),
		pipeline.NewResponder(gen),
	)

	return orch, cfg, nil
}
