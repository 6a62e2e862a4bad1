package mcp

import (
	"context"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driving"
)

// mockGenerationService is a mock implementation of driving.GenerationService.
type mockGenerationService struct {
	result  *driving.GenerationResult
	fields  *domain.TemplateFields
	lastReq driving.GenerationRequest
	err     error
}

func (m *mockGenerationService) Generate(_ context.Context, req driving.GenerationRequest) (*driving.GenerationResult, error) {
	m.lastReq = req
	return m.result, m.err
}

func (m *mockGenerationService) ExtractFields(_ []byte) (*domain.TemplateFields, error) {
	if m.fields != nil {
		return m.fields, nil
	}
	return &domain.TemplateFields{}, nil
}

// mockIngestionService is a mock implementation of driving.IngestionService.
type mockIngestionService struct {
	document  *domain.SourceDocument
	documents []domain.SourceDocument
	err       error
}

func (m *mockIngestionService) IngestText(_ context.Context, _, _ string) (*domain.SourceDocument, error) {
	return m.document, m.err
}

func (m *mockIngestionService) IngestFile(_ context.Context, _, _ string) (*domain.SourceDocument, error) {
	return m.document, m.err
}

func (m *mockIngestionService) List(_ context.Context) ([]domain.SourceDocument, error) {
	return m.documents, m.err
}

func (m *mockIngestionService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	items []domain.ContextItem
	err   error
}

func (m *mockRetrievalService) FindSimilar(_ context.Context, _ string, _ int) ([]domain.ContextItem, error) {
	return m.items, m.err
}

func (m *mockRetrievalService) FindSimilarByVector(_ context.Context, _ []float32, _ int) ([]domain.ContextItem, error) {
	return m.items, m.err
}

// mockTemplateService is a mock implementation of driving.TemplateService.
type mockTemplateService struct {
	template  *domain.Template
	templates []domain.Template
	err       error
}

func (m *mockTemplateService) Save(_ context.Context, _ string, _ []byte) (*domain.Template, error) {
	return m.template, m.err
}

func (m *mockTemplateService) Get(_ context.Context, _ string) (*domain.Template, error) {
	return m.template, m.err
}

func (m *mockTemplateService) List(_ context.Context) ([]domain.Template, error) {
	return m.templates, m.err
}

func (m *mockTemplateService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockPromptStore is a mock implementation of driven.PromptStore.
type mockPromptStore struct {
	prompts map[string]string
	err     error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if text, ok := m.prompts[name]; ok {
		return text, nil
	}
	return "", domain.ErrNotFound
}

func (m *mockPromptStore) List() ([]string, error) {
	names := make([]string, 0, len(m.prompts))
	for name := range m.prompts {
		names = append(names, name)
	}
	return names, m.err
}

func (m *mockPromptStore) Reload() {}
