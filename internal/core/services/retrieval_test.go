package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quill-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quill-cli/internal/core/domain"
)

func seedCorpus(t *testing.T, store *memory.DocumentStore, docName string, embeddings ...[]float32) *domain.SourceDocument {
	t.Helper()
	doc := &domain.SourceDocument{ID: "doc-" + docName, Name: docName, FileType: domain.FileTypeText}
	require.NoError(t, store.SaveDocument(context.Background(), doc))

	chunks := make([]domain.Chunk, len(embeddings))
	for i, embedding := range embeddings {
		chunks[i] = domain.Chunk{
			ID:         docName + "-chunk-" + string(rune('a'+i)),
			DocumentID: doc.ID,
			Index:      i,
			Content:    "chunk content",
			Embedding:  embedding,
		}
	}
	require.NoError(t, store.ReplaceChunks(context.Background(), doc.ID, chunks))
	return doc
}

func TestFindSimilar_EmptyCorpus(t *testing.T) {
	embedder := &mockEmbedder{embedding: []float32{1, 0}}
	svc := NewRetrievalService(memory.NewDocumentStore(), embedder)

	items, err := svc.FindSimilar(context.Background(), "query", 3)
	require.NoError(t, err)
	assert.Empty(t, items)

	// An empty corpus never touches the embedding service.
	assert.Zero(t, embedder.embedCalls)
}

func TestFindSimilar_SkipsChunksWithoutEmbeddings(t *testing.T) {
	store := memory.NewDocumentStore()
	seedCorpus(t, store, "pending", nil, nil)
	embedder := &mockEmbedder{embedding: []float32{1, 0}}
	svc := NewRetrievalService(store, embedder)

	items, err := svc.FindSimilar(context.Background(), "query", 3)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, embedder.embedCalls)
}

func TestFindSimilar_RanksBySimilarity(t *testing.T) {
	store := memory.NewDocumentStore()
	doc := seedCorpus(t, store, "corpus",
		[]float32{0, 1}, // orthogonal to the query
		[]float32{1, 0}, // identical
		[]float32{1, 1}, // in between
	)
	embedder := &mockEmbedder{embedding: []float32{1, 0}}
	svc := NewRetrievalService(store, embedder)

	items, err := svc.FindSimilar(context.Background(), "query", 3)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "corpus-chunk-b", items[0].ChunkID)
	assert.Equal(t, "corpus-chunk-c", items[1].ChunkID)
	assert.Equal(t, "corpus-chunk-a", items[2].ChunkID)
	assert.InDelta(t, 1.0, items[0].Similarity, 1e-6)
	assert.Equal(t, doc.Name, items[0].SourceName)
	assert.Equal(t, "query", embedder.lastQuery)
}

func TestFindSimilar_LimitsToTopK(t *testing.T) {
	store := memory.NewDocumentStore()
	seedCorpus(t, store, "corpus", []float32{1, 0}, []float32{0, 1}, []float32{1, 1})
	svc := NewRetrievalService(store, &mockEmbedder{embedding: []float32{1, 0}})

	items, err := svc.FindSimilar(context.Background(), "query", 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFindSimilar_ZeroTopKUsesDefault(t *testing.T) {
	store := memory.NewDocumentStore()
	seedCorpus(t, store, "corpus",
		[]float32{1, 0}, []float32{1, 0}, []float32{1, 0}, []float32{1, 0}, []float32{1, 0})
	svc := NewRetrievalService(store, &mockEmbedder{embedding: []float32{1, 0}})

	items, err := svc.FindSimilar(context.Background(), "query", 0)
	require.NoError(t, err)
	assert.Len(t, items, DefaultTopK)
}

func TestFindSimilar_NilEmbedder(t *testing.T) {
	store := memory.NewDocumentStore()
	seedCorpus(t, store, "corpus", []float32{1, 0})
	svc := NewRetrievalService(store, nil)

	_, err := svc.FindSimilar(context.Background(), "query", 3)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestFindSimilar_EmbedError(t *testing.T) {
	store := memory.NewDocumentStore()
	seedCorpus(t, store, "corpus", []float32{1, 0})
	failure := errors.New("service down")
	svc := NewRetrievalService(store, &mockEmbedder{embedErr: failure})

	_, err := svc.FindSimilar(context.Background(), "query", 3)
	assert.ErrorIs(t, err, failure)
}

func TestFindSimilar_UnknownDocumentNameIsEmpty(t *testing.T) {
	store := memory.NewDocumentStore()
	doc := seedCorpus(t, store, "corpus", []float32{1, 0})

	// Orphan the chunk by removing its document from the lookup path.
	chunks, err := store.GetChunks(context.Background(), doc.ID)
	require.NoError(t, err)
	chunks[0].DocumentID = "gone"
	require.NoError(t, store.ReplaceChunks(context.Background(), doc.ID, chunks))

	svc := NewRetrievalService(store, &mockEmbedder{embedding: []float32{1, 0}})
	items, err := svc.FindSimilar(context.Background(), "query", 3)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Empty(t, items[0].SourceName)
}

func TestFindSimilarByVector(t *testing.T) {
	store := memory.NewDocumentStore()
	seedCorpus(t, store, "corpus", []float32{0, 1}, []float32{1, 0})
	embedder := &mockEmbedder{embedding: []float32{0, 1}}
	svc := NewRetrievalService(store, embedder)

	items, err := svc.FindSimilarByVector(context.Background(), []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "corpus-chunk-b", items[0].ChunkID)

	// The caller supplied the embedding; the service must not embed.
	assert.Zero(t, embedder.embedCalls)
}
