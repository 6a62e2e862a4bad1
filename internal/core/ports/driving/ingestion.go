package driving

import (
	"context"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
)

// IngestionService processes reference documents into embedded chunks.
type IngestionService interface {
	// IngestText ingests raw text content under the given name.
	// A document with the same name is replaced along with its chunks.
	IngestText(ctx context.Context, name, content string) (*domain.SourceDocument, error)

	// IngestFile ingests a file, extracting text according to its
	// extension. Unsupported extensions return domain.ErrUnsupportedFileType.
	IngestFile(ctx context.Context, name, path string) (*domain.SourceDocument, error)

	// List returns all ingested documents.
	List(ctx context.Context) ([]domain.SourceDocument, error)

	// Delete removes a document and its chunks.
	Delete(ctx context.Context, id string) error
}
