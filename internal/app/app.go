// ABOUTME: App wires config, storage, LLM client, and pipeline components together
// ABOUTME: Shared by the CLI and the MCP server so both assemble the same pipeline
package app

import (
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"medassist/internal/config"
	"medassist/internal/core"
	"medassist/internal/extract"
	"medassist/internal/index"
	"medassist/internal/llm"
	"medassist/internal/ratelimit"
	"medassist/internal/storage/sqlite"
)

// App is the assembled pipeline plus the resources it owns.
type App struct {
	Config       *config.Config
	Store        *sqlite.Store
	Index        *index.VectorIndex
	Client       *llm.OpenAIClient
	Orchestrator *core.Orchestrator

	db *sqlite.DB
}

// New assembles the full pipeline from configuration. The returned App owns
// the database handle; call Close when done.
func New(cfg *config.Config) (*App, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	a, err := build(cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

// NewInMemory assembles the pipeline over an in-memory database. Used by
// tests that exercise the full pipeline without touching disk.
func NewInMemory(cfg *config.Config) (*App, error) {
	db, err := sqlite.OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	a, err := build(cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

func build(cfg *config.Config, db *sqlite.DB) (*App, error) {
	store := sqlite.NewStore(db)

	client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, err
	}

	a, err := Assemble(cfg, store, client, client)
	if err != nil {
		return nil, err
	}
	a.Client = client
	a.db = db
	return a, nil
}

// Assemble builds the pipeline over an existing store and LLM pair. Tests
// inject fake embedders and generators through this entry point.
func Assemble(cfg *config.Config, store *sqlite.Store, embedder llm.Embedder, generator llm.Generator) (*App, error) {
	idx, err := index.NewVectorIndex(store, cfg.VectorDimension)
	if err != nil {
		return nil, fmt.Errorf("initializing vector index: %w", err)
	}

	chunker, err := core.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	limiter := ratelimit.New(cfg.RequestInterval, cfg.MaxInputTokens, cfg.MaxOutputTokens)
	registry := extract.NewRegistry(cfg.MaxFileSizeMB * 1024 * 1024)
	retriever := core.NewRetriever(embedder, idx, cfg.TopK, cfg.SimilarityThreshold)
	answerer := core.NewAnswerGenerator(generator, limiter, cfg.HistoryTurns, cfg.Timeout)
	summarizer := core.NewSummarizer(retriever, generator, limiter, cfg.Timeout)
	extractor := core.NewSectionExtractor(embedder, idx, cfg.TopK)
	reporter := core.NewReportBuilder(summarizer, extractor)
	sessions := core.NewSessionStore(cfg.MaxSessionTurns)

	orch := core.NewOrchestrator(registry, chunker, embedder, idx, retriever,
		answerer, summarizer, extractor, reporter, sessions)

	return &App{
		Config:       cfg,
		Store:        store,
		Index:        idx,
		Orchestrator: orch,
	}, nil
}

// Close releases the database handle if this App owns one
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
