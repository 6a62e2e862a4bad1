package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/quill-cli/internal/chunker"
	"github.com/custodia-labs/quill-cli/internal/core/domain"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quill-cli/internal/logger"
)

// Ensure IngestionService implements the interface.
var _ driving.IngestionService = (*IngestionService)(nil)

// IngestionService runs the extract → chunk → embed → store pipeline.
// Every step is a hard dependency on the previous one succeeding: a
// failure aborts the whole ingestion and no document is left with
// chunks inconsistent with its extracted text.
type IngestionService struct {
	docStore  driven.DocumentStore
	extractor driven.TextExtractor
	embedder  driven.EmbeddingService
	splitter  *chunker.Chunker

	// ingestMu serialises the delete-then-insert window so concurrent
	// ingestion of the same document never interleaves.
	ingestMu sync.Mutex
}

// NewIngestionService creates an ingestion service.
func NewIngestionService(
	docStore driven.DocumentStore,
	extractor driven.TextExtractor,
	embedder driven.EmbeddingService,
	splitter *chunker.Chunker,
) *IngestionService {
	if splitter == nil {
		splitter = chunker.New()
	}
	return &IngestionService{
		docStore:  docStore,
		extractor: extractor,
		embedder:  embedder,
		splitter:  splitter,
	}
}

// IngestText ingests raw text content under the given name, replacing
// any previous document with that name.
func (s *IngestionService) IngestText(ctx context.Context, name, content string) (*domain.SourceDocument, error) {
	doc := &domain.SourceDocument{
		ID:            uuid.New().String(),
		Name:          name,
		FileType:      domain.FileTypeText,
		ExtractedText: content,
		CreatedAt:     time.Now(),
	}
	return s.ingest(ctx, doc)
}

// IngestFile extracts text from the file at path and ingests it.
func (s *IngestionService) IngestFile(ctx context.Context, name, path string) (*domain.SourceDocument, error) {
	fileType, err := fileTypeFromPath(path)
	if err != nil {
		return nil, err
	}
	if s.extractor == nil {
		return nil, domain.ErrNotImplemented
	}

	text, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", path, err)
	}

	doc := &domain.SourceDocument{
		ID:            uuid.New().String(),
		Name:          name,
		FileType:      fileType,
		Path:          path,
		ExtractedText: text,
		CreatedAt:     time.Now(),
	}
	return s.ingest(ctx, doc)
}

// List returns all ingested documents.
func (s *IngestionService) List(ctx context.Context) ([]domain.SourceDocument, error) {
	return s.docStore.ListDocuments(ctx)
}

// Delete removes a document and its chunks.
func (s *IngestionService) Delete(ctx context.Context, id string) error {
	return s.docStore.DeleteDocument(ctx, id)
}

// ingest saves the document, then chunks, embeds and stores its text.
// Re-ingesting a name discards the prior document and its chunks as a
// set; the replacement is all-or-nothing.
func (s *IngestionService) ingest(ctx context.Context, doc *domain.SourceDocument) (*domain.SourceDocument, error) {
	s.ingestMu.Lock()
	defer s.ingestMu.Unlock()

	if prior, err := s.docStore.GetDocumentByName(ctx, doc.Name); err == nil {
		if err := s.docStore.DeleteDocument(ctx, prior.ID); err != nil {
			return nil, fmt.Errorf("replacing document %q: %w", doc.Name, err)
		}
	}

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document %q: %w", doc.Name, err)
	}

	chunks, err := s.buildChunks(ctx, doc)
	if err != nil {
		// Remove the half-ingested document so the store never holds a
		// document whose chunks are missing or stale.
		if delErr := s.docStore.DeleteDocument(ctx, doc.ID); delErr != nil {
			logger.Warn("cleanup of document %s after failed ingestion: %v", doc.ID, delErr)
		}
		return nil, err
	}

	if err := s.docStore.ReplaceChunks(ctx, doc.ID, chunks); err != nil {
		if delErr := s.docStore.DeleteDocument(ctx, doc.ID); delErr != nil {
			logger.Warn("cleanup of document %s after failed chunk replace: %v", doc.ID, delErr)
		}
		return nil, fmt.Errorf("storing chunks for %q: %w", doc.Name, err)
	}

	logger.Info("ingested %q (%s) into %d chunks", doc.Name, doc.FileType, len(chunks))
	return doc, nil
}

// buildChunks splits the document text and embeds every chunk in one
// batch call.
func (s *IngestionService) buildChunks(ctx context.Context, doc *domain.SourceDocument) ([]domain.Chunk, error) {
	contents := s.splitter.Chunk(doc.ExtractedText)
	if len(contents) == 0 {
		return nil, nil
	}

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	embeddings, err := s.embedder.EmbedBatch(ctx, contents)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks for %q: %w", doc.Name, err)
	}
	if len(embeddings) != len(contents) {
		return nil, fmt.Errorf("embedding chunks for %q: got %d embeddings for %d chunks", doc.Name, len(embeddings), len(contents))
	}

	chunks := make([]domain.Chunk, len(contents))
	for i, content := range contents {
		chunks[i] = domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Index:      i,
			Content:    content,
			Embedding:  embeddings[i],
			Metadata: map[string]any{
				"document_name": doc.Name,
				"chunk_size":    s.splitter.ChunkSize(),
				"chunk_overlap": s.splitter.Overlap(),
			},
		}
	}
	return chunks, nil
}

// fileTypeFromPath maps a file extension to its document type.
func fileTypeFromPath(path string) (domain.FileType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return domain.FileTypeText, nil
	case ".pdf":
		return domain.FileTypePDF, nil
	case ".docx":
		return domain.FileTypeDocx, nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, filepath.Ext(path))
	}
}
