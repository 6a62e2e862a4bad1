package driving

import (
	"context"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
)

// GenerationRequest carries everything needed to resolve one template.
type GenerationRequest struct {
	// LexicalJSON is the raw template tree.
	LexicalJSON []byte

	// ContextMap supplies values for {{placeholder}} tokens.
	ContextMap map[string]string

	// PromptMap supplies templates for [[prompt_key]] tokens.
	PromptMap map[string]string

	// Variables supplies the variable definitions referenced by
	// variable nodes in the tree. Keys are variable IDs.
	Variables map[string]domain.Variable

	// TopK is the number of grounding chunks to retrieve. Zero uses the
	// service default.
	TopK int
}

// GenerationResult is the outcome of resolving one template.
type GenerationResult struct {
	// Blocks is the resolved block sequence, free of placeholder syntax
	// and variable references, in document order.
	Blocks []domain.Block

	// Retrieved is the grounding context that was supplied to LLM calls,
	// highest similarity first. Empty when the template has no prompts
	// or the corpus is empty.
	Retrieved []domain.ContextItem
}

// GenerationService turns templates into resolved documents.
type GenerationService interface {
	// Generate parses the template, retrieves grounding context for its
	// prompts, resolves all tokens and variables, and returns the
	// resolved blocks. LLM failures abort generation with an error
	// identifying the offending token; unknown placeholders and prompt
	// keys fail open as inline text.
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error)

	// ExtractFields scans a template for {{...}} and [[...]] tokens
	// without resolving anything.
	ExtractFields(lexicalJSON []byte) (*domain.TemplateFields, error)
}
