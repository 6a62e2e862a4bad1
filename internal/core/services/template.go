package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quill-cli/internal/lexical"
)

// Ensure TemplateService implements the interface.
var _ driving.TemplateService = (*TemplateService)(nil)

// TemplateService persists templates. The tree is parsed once on save
// to reject malformed JSON early; everything else treats it as opaque.
type TemplateService struct {
	store driven.TemplateStore
}

// NewTemplateService creates a template service.
func NewTemplateService(store driven.TemplateStore) *TemplateService {
	return &TemplateService{store: store}
}

// Save stores a template under the given name. Saving an existing name
// updates the stored tree in place, keeping the template's ID.
func (s *TemplateService) Save(ctx context.Context, name string, lexicalJSON []byte) (*domain.Template, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: template name is empty", domain.ErrInvalidInput)
	}
	if _, err := lexical.Parse(lexicalJSON); err != nil {
		return nil, fmt.Errorf("%w: parsing template: %v", domain.ErrInvalidInput, err)
	}

	tmpl := &domain.Template{
		ID:          uuid.New().String(),
		Name:        name,
		LexicalJSON: lexicalJSON,
	}
	if existing, err := s.store.GetTemplate(ctx, name); err == nil {
		tmpl.ID = existing.ID
		tmpl.CreatedAt = existing.CreatedAt
	}

	if err := s.store.SaveTemplate(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("saving template %q: %w", name, err)
	}
	return tmpl, nil
}

// Get retrieves a template by ID or name.
func (s *TemplateService) Get(ctx context.Context, idOrName string) (*domain.Template, error) {
	return s.store.GetTemplate(ctx, idOrName)
}

// List returns all templates ordered by name.
func (s *TemplateService) List(ctx context.Context) ([]domain.Template, error) {
	return s.store.ListTemplates(ctx)
}

// Delete removes a template by ID or name.
func (s *TemplateService) Delete(ctx context.Context, idOrName string) error {
	tmpl, err := s.store.GetTemplate(ctx, idOrName)
	if err != nil {
		return err
	}
	return s.store.DeleteTemplate(ctx, tmpl.ID)
}
