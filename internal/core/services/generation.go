package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quill-cli/internal/lexical"
	"github.com/custodia-labs/quill-cli/internal/logger"
	"github.com/custodia-labs/quill-cli/internal/resolver"
)

// Ensure GenerationService implements the interface.
var _ driving.GenerationService = (*GenerationService)(nil)

// fallbackQuery grounds retrieval when a template carries prompts whose
// resolved text is empty.
const fallbackQuery = "document generation"

// GenerationService resolves templates into finished block sequences:
// parse, retrieve grounding context for the template's prompts, then
// substitute placeholders, prompt tokens and variables in document order.
type GenerationService struct {
	resolver  *resolver.Resolver
	retrieval driving.RetrievalService
}

// NewGenerationService creates a generation service. Retrieval may be
// nil; generation then runs ungrounded.
func NewGenerationService(res *resolver.Resolver, retrieval driving.RetrievalService) *GenerationService {
	return &GenerationService{
		resolver:  res,
		retrieval: retrieval,
	}
}

// Generate resolves one template.
func (s *GenerationService) Generate(ctx context.Context, req driving.GenerationRequest) (*driving.GenerationResult, error) {
	blocks, err := lexical.Parse(req.LexicalJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing template: %v", domain.ErrInvalidInput, err)
	}

	retrieved, err := s.retrieveContext(ctx, req)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolver.Resolve(ctx, blocks, resolver.Input{
		Context:   req.ContextMap,
		Prompts:   req.PromptMap,
		Variables: req.Variables,
		Retrieved: retrieved,
	})
	if err != nil {
		return nil, err
	}

	return &driving.GenerationResult{
		Blocks:    resolved,
		Retrieved: retrieved,
	}, nil
}

// ExtractFields scans a template for dynamic tokens without resolving.
func (s *GenerationService) ExtractFields(lexicalJSON []byte) (*domain.TemplateFields, error) {
	fields, err := lexical.ExtractFields(lexicalJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing template: %v", domain.ErrInvalidInput, err)
	}
	return fields, nil
}

// retrieveContext grounds the request's prompts. The search query is the
// space-joined resolved text of every prompt template and prompt
// variable; templates without prompts skip retrieval entirely.
func (s *GenerationService) retrieveContext(ctx context.Context, req driving.GenerationRequest) ([]domain.ContextItem, error) {
	if s.retrieval == nil {
		return nil, nil
	}

	// Keys are sorted so the derived query is deterministic.
	var parts []string
	for _, key := range sortedMapKeys(req.PromptMap) {
		parts = append(parts, resolver.ResolvePlaceholders(req.PromptMap[key], req.ContextMap))
	}
	for _, id := range sortedMapKeys(req.Variables) {
		if variable := req.Variables[id]; variable.Type == domain.VariablePrompt {
			parts = append(parts, resolver.ResolvePlaceholders(variable.PromptTemplate, req.ContextMap))
		}
	}
	if len(parts) == 0 {
		return nil, nil
	}

	query := strings.TrimSpace(strings.Join(parts, " "))
	if query == "" {
		query = fallbackQuery
	}

	topK := req.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	retrieved, err := s.retrieval.FindSimilar(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("retrieving context: %w", err)
	}
	logger.Debug("generation: grounded with %d context chunks", len(retrieved))
	return retrieved, nil
}

// sortedMapKeys returns the map's keys in ascending order.
func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
