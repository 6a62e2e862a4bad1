// Command quill generates documents from rich-text templates, grounding
// LLM-expanded sections in a locally ingested reference corpus.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/quill-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/quill-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/quill-cli/internal/adapters/driven/extractor"
	"github.com/custodia-labs/quill-cli/internal/adapters/driven/renderer"
	"github.com/custodia-labs/quill-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/quill-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/quill-cli/internal/chunker"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quill-cli/internal/core/services"
	"github.com/custodia-labs/quill-cli/internal/logger"
	"github.com/custodia-labs/quill-cli/internal/resolver"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	// AI services are optional at startup. Commands that need them fail
	// with a pointer to 'quill config init'.
	var embedder driven.EmbeddingService
	if settings.Embedding.IsConfigured() {
		embedder, err = ai.CreateEmbeddingService(&settings.Embedding)
		if err != nil {
			logger.Warn("embedding service unavailable: %v", err)
		}
	}

	var llm driven.LLMService
	if settings.LLM.IsConfigured() {
		llm, err = ai.CreateLLMService(&settings.LLM)
		if err != nil {
			logger.Warn("LLM service unavailable: %v", err)
		}
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close() //nolint:errcheck

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	docStore := store.DocumentStore()
	splitter := chunker.New(
		chunker.WithChunkSize(settings.Ingestion.ChunkSize),
		chunker.WithOverlap(settings.Ingestion.ChunkOverlap),
	)

	retrievalService := services.NewRetrievalService(docStore, embedder)
	ingestionService := services.NewIngestionService(docStore, extractor.New(), embedder, splitter)
	generationService := services.NewGenerationService(resolver.New(llm), retrievalService)
	templateService := services.NewTemplateService(store.TemplateStore())

	cli.SetServices(cli.Services{
		Generation: generationService,
		Ingestion:  ingestionService,
		Retrieval:  retrievalService,
		Template:   templateService,
		Settings:   settingsService,
		Prompts:    prompts,
		Renderer:   renderer.NewMarkdown(),
	})

	return cli.Execute()
}
