package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driven"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// TemplateStore is an in-memory implementation of driven.TemplateStore.
type TemplateStore struct {
	mu        sync.RWMutex
	templates map[string]domain.Template
}

// NewTemplateStore creates a new in-memory template store.
func NewTemplateStore() *TemplateStore {
	return &TemplateStore{
		templates: make(map[string]domain.Template),
	}
}

// SaveTemplate stores or updates a template.
func (s *TemplateStore) SaveTemplate(_ context.Context, tmpl *domain.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	if tmpl.CreatedAt.IsZero() {
		tmpl.CreatedAt = now
	}
	tmpl.UpdatedAt = now
	s.templates[tmpl.ID] = *tmpl
	return nil
}

// GetTemplate retrieves a template by ID or name.
func (s *TemplateStore) GetTemplate(_ context.Context, idOrName string) (*domain.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if tmpl, ok := s.templates[idOrName]; ok {
		return &tmpl, nil
	}
	for _, tmpl := range s.templates {
		if tmpl.Name == idOrName {
			return &tmpl, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListTemplates returns all templates ordered by name.
func (s *TemplateStore) ListTemplates(_ context.Context) ([]domain.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Template, 0, len(s.templates))
	for _, tmpl := range s.templates {
		result = append(result, tmpl)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// DeleteTemplate removes a template by ID.
func (s *TemplateStore) DeleteTemplate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.templates, id)
	return nil
}
