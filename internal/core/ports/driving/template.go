package driving

import (
	"context"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
)

// TemplateService manages saved templates. Templates are validated as
// parseable Lexical JSON on save but otherwise stored opaquely.
type TemplateService interface {
	// Save stores a template under the given name, replacing any
	// existing template with that name.
	Save(ctx context.Context, name string, lexicalJSON []byte) (*domain.Template, error)

	// Get retrieves a template by ID or name.
	Get(ctx context.Context, idOrName string) (*domain.Template, error)

	// List returns all templates ordered by name.
	List(ctx context.Context) ([]domain.Template, error)

	// Delete removes a template by ID or name.
	Delete(ctx context.Context, idOrName string) error
}
