package driving

import (
	"context"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
)

// RetrievalService answers nearest-neighbour queries over the ingested
// chunk corpus.
type RetrievalService interface {
	// FindSimilar embeds the query text and returns the topK most
	// similar chunks, highest similarity first. An empty corpus yields
	// an empty result.
	FindSimilar(ctx context.Context, query string, topK int) ([]domain.ContextItem, error)

	// FindSimilarByVector is FindSimilar for a precomputed embedding.
	FindSimilarByVector(ctx context.Context, embedding []float32, topK int) ([]domain.ContextItem, error)
}
