package mcp

import (
	"github.com/custodia-labs/quill-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Generation resolves templates into documents.
	Generation driving.GenerationService

	// Ingestion manages the reference corpus.
	Ingestion driving.IngestionService

	// Retrieval answers similarity queries over the corpus.
	Retrieval driving.RetrievalService

	// Template manages saved templates.
	Template driving.TemplateService

	// Prompts supplies prompt templates for [[key]] tokens.
	Prompts driven.PromptStore

	// Renderer serialises resolved blocks for tool output.
	Renderer driven.Renderer
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Generation == nil {
		return ErrMissingGenerationService
	}
	// Everything else is optional; dependent tools degrade.
	return nil
}
