package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quill-cli/internal/logger"
	"github.com/custodia-labs/quill-cli/internal/vector"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// DefaultTopK is the number of chunks retrieved when the caller does
// not specify one.
const DefaultTopK = 3

// RetrievalService answers nearest-neighbour queries by exact linear
// scan over the stored chunks. Reads are safe for concurrent callers;
// the store serialises chunk replacement.
type RetrievalService struct {
	docStore driven.DocumentStore
	embedder driven.EmbeddingService
}

// NewRetrievalService creates a retrieval service.
func NewRetrievalService(docStore driven.DocumentStore, embedder driven.EmbeddingService) *RetrievalService {
	return &RetrievalService{
		docStore: docStore,
		embedder: embedder,
	}
}

// FindSimilar embeds the query and scans the corpus. An empty corpus
// returns an empty result without calling the embedding service.
func (s *RetrievalService) FindSimilar(ctx context.Context, query string, topK int) ([]domain.ContextItem, error) {
	candidates, err := s.embeddedChunks(ctx)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []domain.ContextItem{}, nil
	}

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	return s.rank(ctx, embedding, candidates, topK)
}

// FindSimilarByVector scans the corpus against a precomputed embedding.
func (s *RetrievalService) FindSimilarByVector(ctx context.Context, embedding []float32, topK int) ([]domain.ContextItem, error) {
	candidates, err := s.embeddedChunks(ctx)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []domain.ContextItem{}, nil
	}
	return s.rank(ctx, embedding, candidates, topK)
}

// embeddedChunks returns the stored chunks that carry embeddings, in
// insertion order. Chunks awaiting embedding are skipped, not errors.
func (s *RetrievalService) embeddedChunks(ctx context.Context) ([]domain.Chunk, error) {
	chunks, err := s.docStore.AllChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}

	candidates := make([]domain.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.Embedding != nil {
			candidates = append(candidates, chunk)
		}
	}
	return candidates, nil
}

func (s *RetrievalService) rank(ctx context.Context, embedding []float32, candidates []domain.Chunk, topK int) ([]domain.ContextItem, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	embeddings := make([][]float32, len(candidates))
	for i := range candidates {
		embeddings[i] = candidates[i].Embedding
	}

	hits := vector.TopK(embedding, embeddings, topK)
	logger.Debug("retrieval: %d candidates, returning top %d", len(candidates), len(hits))

	names := make(map[string]string)
	items := make([]domain.ContextItem, 0, len(hits))
	for _, hit := range hits {
		chunk := candidates[hit.Index]
		items = append(items, domain.ContextItem{
			ChunkID:    chunk.ID,
			Content:    chunk.Content,
			SourceName: s.documentName(ctx, names, chunk.DocumentID),
			Similarity: hit.Score,
		})
	}
	return items, nil
}

// documentName resolves a chunk's owning document name, caching lookups
// for the duration of one query.
func (s *RetrievalService) documentName(ctx context.Context, cache map[string]string, documentID string) string {
	if name, ok := cache[documentID]; ok {
		return name
	}
	name := ""
	if doc, err := s.docStore.GetDocument(ctx, documentID); err == nil {
		name = doc.Name
	}
	cache[documentID] = name
	return name
}
