package driven

import (
	"context"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
)

// DocumentStore persists reference documents and their chunks.
// Backed by SQLite for durable storage, with an in-memory variant for
// tests and ephemeral sessions.
type DocumentStore interface {
	// SaveDocument stores or updates a source document.
	SaveDocument(ctx context.Context, doc *domain.SourceDocument) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.SourceDocument, error)

	// GetDocumentByName retrieves a document by name.
	// Returns domain.ErrNotFound when no document has the name.
	GetDocumentByName(ctx context.Context, name string) (*domain.SourceDocument, error)

	// ListDocuments returns all documents ordered by creation time.
	ListDocuments(ctx context.Context) ([]domain.SourceDocument, error)

	// DeleteDocument removes a document and all its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// ReplaceChunks atomically replaces all chunks for a document.
	// Prior chunks are discarded as a set; a failure leaves the previous
	// chunk set intact, never a partial mix of old and new.
	ReplaceChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// GetChunks retrieves a document's chunks ordered by index.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// AllChunks retrieves every stored chunk in insertion order.
	// Retrieval scans this set linearly; the scale of a single reference
	// corpus keeps exact scan practical.
	AllChunks(ctx context.Context) ([]domain.Chunk, error)
}

// TemplateStore persists rich-text templates as opaque records.
type TemplateStore interface {
	// SaveTemplate stores or updates a template.
	SaveTemplate(ctx context.Context, tpl *domain.Template) error

	// GetTemplate retrieves a template by ID.
	GetTemplate(ctx context.Context, id string) (*domain.Template, error)

	// ListTemplates returns all templates ordered by creation time.
	ListTemplates(ctx context.Context) ([]domain.Template, error)

	// DeleteTemplate removes a template.
	DeleteTemplate(ctx context.Context, id string) error
}
