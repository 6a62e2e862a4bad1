package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/quill-cli/internal/core/ports/driving"
)

// GenerateInput is the input schema for the generate_document tool.
type GenerateInput struct {
	TemplateName string            `json:"template_name,omitempty" jsonschema:"name of a saved template to resolve"`
	LexicalJSON  string            `json:"lexical_json,omitempty" jsonschema:"inline Lexical template JSON, used when template_name is not set"`
	Context      map[string]string `json:"context,omitempty" jsonschema:"values for {{placeholder}} tokens"`
	Prompts      map[string]string `json:"prompts,omitempty" jsonschema:"prompt templates for [[key]] tokens, overriding the prompt directory"`
	TopK         int               `json:"top_k,omitempty" jsonschema:"grounding chunks to retrieve (default 3)"`
}

// GenerateOutput is the output schema for the generate_document tool.
type GenerateOutput struct {
	Markdown  string          `json:"markdown"`
	Retrieved []ContextOutput `json:"retrieved,omitempty"`
}

// ContextOutput describes one grounding chunk used during generation.
type ContextOutput struct {
	Source     string  `json:"source"`
	Similarity float64 `json:"similarity"`
	Content    string  `json:"content"`
}

// IngestInput is the input schema for the ingest_document tool.
type IngestInput struct {
	Name    string `json:"name" jsonschema:"document name; re-ingesting a name replaces the document"`
	Content string `json:"content,omitempty" jsonschema:"raw text content to ingest"`
	Path    string `json:"path,omitempty" jsonschema:"path to a .txt, .md, .pdf or .docx file, used when content is not set"`
}

// IngestOutput is the output schema for the ingest_document tool.
type IngestOutput struct {
	DocumentID string `json:"document_id"`
	Name       string `json:"name"`
}

// SearchInput is the input schema for the search_context tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the text to find similar reference chunks for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// SearchOutput is the output schema for the search_context tool.
type SearchOutput struct {
	Results []ContextOutput `json:"results"`
	Count   int             `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_document",
		Description: "Resolve a template into a Markdown document, grounding LLM prompts in the ingested reference corpus",
	}, s.handleGenerate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_document",
		Description: "Ingest a reference document into the retrieval corpus",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_context",
		Description: "Find the reference chunks most similar to a query",
	}, s.handleSearch)
}

// handleGenerate handles the generate_document tool invocation.
func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	lexicalJSON, err := s.resolveTemplate(ctx, input)
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	promptMap, err := s.buildPromptMap(lexicalJSON, input.Prompts)
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	result, err := s.ports.Generation.Generate(ctx, driving.GenerationRequest{
		LexicalJSON: lexicalJSON,
		ContextMap:  input.Context,
		PromptMap:   promptMap,
		TopK:        input.TopK,
	})
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	if s.ports.Renderer == nil {
		return nil, GenerateOutput{}, errors.New("mcp: renderer not configured")
	}
	rendered, err := s.ports.Renderer.Render(result.Blocks)
	if err != nil {
		return nil, GenerateOutput{}, fmt.Errorf("rendering: %w", err)
	}

	output := GenerateOutput{Markdown: string(rendered)}
	for _, item := range result.Retrieved {
		output.Retrieved = append(output.Retrieved, ContextOutput{
			Source:     item.SourceName,
			Similarity: item.Similarity,
			Content:    item.Content,
		})
	}
	return nil, output, nil
}

// resolveTemplate loads the template named by the input, or uses the
// inline JSON.
func (s *Server) resolveTemplate(ctx context.Context, input GenerateInput) ([]byte, error) {
	if input.TemplateName != "" {
		if s.ports.Template == nil {
			return nil, errors.New("mcp: template service not configured")
		}
		tmpl, err := s.ports.Template.Get(ctx, input.TemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading template %q: %w", input.TemplateName, err)
		}
		return tmpl.LexicalJSON, nil
	}
	if input.LexicalJSON == "" {
		return nil, errors.New("mcp: either template_name or lexical_json is required")
	}
	return []byte(input.LexicalJSON), nil
}

// buildPromptMap merges explicit prompt overrides with the prompt
// directory for every [[key]] the template references.
func (s *Server) buildPromptMap(lexicalJSON []byte, overrides map[string]string) (map[string]string, error) {
	promptMap := make(map[string]string, len(overrides))
	for k, v := range overrides {
		promptMap[k] = v
	}
	if s.ports.Prompts == nil {
		return promptMap, nil
	}

	fields, err := s.ports.Generation.ExtractFields(lexicalJSON)
	if err != nil {
		return nil, fmt.Errorf("scanning template: %w", err)
	}
	for _, key := range fields.Prompts {
		if _, ok := promptMap[key]; ok {
			continue
		}
		if text, err := s.ports.Prompts.Load(key); err == nil {
			promptMap[key] = text
		}
	}
	return promptMap, nil
}

// handleIngest handles the ingest_document tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if s.ports.Ingestion == nil {
		return nil, IngestOutput{}, errors.New("mcp: ingestion service not configured")
	}
	if input.Name == "" {
		return nil, IngestOutput{}, errors.New("mcp: name is required")
	}

	switch {
	case input.Content != "":
		saved, err := s.ports.Ingestion.IngestText(ctx, input.Name, input.Content)
		if err != nil {
			return nil, IngestOutput{}, err
		}
		return nil, IngestOutput{DocumentID: saved.ID, Name: saved.Name}, nil
	case input.Path != "":
		saved, err := s.ports.Ingestion.IngestFile(ctx, input.Name, input.Path)
		if err != nil {
			return nil, IngestOutput{}, err
		}
		return nil, IngestOutput{DocumentID: saved.ID, Name: saved.Name}, nil
	default:
		return nil, IngestOutput{}, errors.New("mcp: either content or path is required")
	}
}

// handleSearch handles the search_context tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if s.ports.Retrieval == nil {
		return nil, SearchOutput{}, errors.New("mcp: retrieval service not configured")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 5
	}

	results, err := s.ports.Retrieval.FindSimilar(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]ContextOutput, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		output.Results[i] = ContextOutput{
			Source:     r.SourceName,
			Similarity: r.Similarity,
			Content:    r.Content,
		}
	}
	return nil, output, nil
}
