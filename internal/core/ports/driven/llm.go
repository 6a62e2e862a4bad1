// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
)

// LLMService generates text for prompt tokens and prompt variables.
// This is an optional service - templates without prompt tokens can be
// generated with a nil LLM service.
//
// Implementations may include:
//   - OpenAI (GPT-4o, GPT-4o-mini)
//   - Ollama (local models)
//   - OpenAI-compatible inference servers
type LLMService interface {
	// Generate produces text for a prompt, optionally grounded in
	// retrieved context. Context items are appended after the primary
	// prompt as clearly delimited secondary material, each annotated
	// with its source document name and similarity score, together with
	// an instruction to prefer the primary prompt.
	Generate(ctx context.Context, prompt string, contextItems []domain.ContextItem) (string, error)

	// GenerateJSON sends a prompt under a system instruction and expects
	// a strict JSON-only response. The returned bytes are valid JSON; a
	// non-JSON model reply surfaces as an error carrying the raw output.
	GenerateJSON(ctx context.Context, prompt, system string) ([]byte, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
