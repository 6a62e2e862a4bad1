package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/quill-cli/internal/adapters/driven/renderer"
	"github.com/custodia-labs/quill-cli/internal/core/domain"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quill-cli/internal/lexical"
)

// minimalTemplate resolves to a single paragraph with one placeholder
// and one prompt token.
const minimalTemplate = `{"root":{"children":[
	{"type":"paragraph","children":[{"type":"text","text":"Hi {{name}}, [[intro]]"}]}
]}}`

type stubGenerationService struct {
	result  *driving.GenerationResult
	err     error
	lastReq driving.GenerationRequest
}

func (s *stubGenerationService) Generate(_ context.Context, req driving.GenerationRequest) (*driving.GenerationResult, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &driving.GenerationResult{
		Blocks: []domain.Block{{Kind: domain.BlockParagraph, Content: domain.PlainText("resolved output")}},
	}, nil
}

func (s *stubGenerationService) ExtractFields(lexicalJSON []byte) (*domain.TemplateFields, error) {
	return lexical.ExtractFields(lexicalJSON)
}

type stubIngestionService struct {
	docs []domain.SourceDocument
	err  error

	deleted  []string
	lastName string
	lastPath string
	lastText string
}

func (s *stubIngestionService) IngestText(_ context.Context, name, content string) (*domain.SourceDocument, error) {
	s.lastName, s.lastText = name, content
	if s.err != nil {
		return nil, s.err
	}
	return &domain.SourceDocument{ID: "doc-1", Name: name, FileType: domain.FileTypeText}, nil
}

func (s *stubIngestionService) IngestFile(_ context.Context, name, path string) (*domain.SourceDocument, error) {
	s.lastName, s.lastPath = name, path
	if s.err != nil {
		return nil, s.err
	}
	return &domain.SourceDocument{ID: "doc-1", Name: name, FileType: domain.FileTypeText, Path: path}, nil
}

func (s *stubIngestionService) List(context.Context) ([]domain.SourceDocument, error) {
	return s.docs, s.err
}

func (s *stubIngestionService) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

type stubRetrievalService struct {
	items []domain.ContextItem
	err   error

	lastQuery string
	lastTopK  int
}

func (s *stubRetrievalService) FindSimilar(_ context.Context, query string, topK int) ([]domain.ContextItem, error) {
	s.lastQuery, s.lastTopK = query, topK
	return s.items, s.err
}

func (s *stubRetrievalService) FindSimilarByVector(_ context.Context, _ []float32, topK int) ([]domain.ContextItem, error) {
	s.lastTopK = topK
	return s.items, s.err
}

type stubTemplateService struct {
	templates map[string]*domain.Template
	err       error

	deleted []string
}

func (s *stubTemplateService) Save(_ context.Context, name string, lexicalJSON []byte) (*domain.Template, error) {
	if s.err != nil {
		return nil, s.err
	}
	tmpl := &domain.Template{ID: "tpl-1", Name: name, LexicalJSON: lexicalJSON, UpdatedAt: time.Now()}
	if s.templates == nil {
		s.templates = make(map[string]*domain.Template)
	}
	s.templates[name] = tmpl
	return tmpl, nil
}

func (s *stubTemplateService) Get(_ context.Context, idOrName string) (*domain.Template, error) {
	if s.err != nil {
		return nil, s.err
	}
	if tmpl, ok := s.templates[idOrName]; ok {
		return tmpl, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubTemplateService) List(context.Context) ([]domain.Template, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Template, 0, len(s.templates))
	for _, tmpl := range s.templates {
		out = append(out, *tmpl)
	}
	return out, nil
}

func (s *stubTemplateService) Delete(_ context.Context, idOrName string) error {
	s.deleted = append(s.deleted, idOrName)
	return s.err
}

type stubPromptStore struct {
	prompts map[string]string
}

func (s *stubPromptStore) Load(name string) (string, error) {
	if text, ok := s.prompts[name]; ok {
		return text, nil
	}
	return "", domain.ErrNotFound
}

func (s *stubPromptStore) List() ([]string, error) {
	keys := make([]string, 0, len(s.prompts))
	for k := range s.prompts {
		keys = append(keys, k)
	}
	return keys, nil
}

func (s *stubPromptStore) Reload() {}

// setupTestServices installs stub services and returns a cleanup that
// restores the previous wiring.
func setupTestServices() func() {
	previous := Services{
		Generation: generationService,
		Ingestion:  ingestionService,
		Retrieval:  retrievalService,
		Template:   templateService,
		Settings:   settingsService,
		Prompts:    promptStore,
		Renderer:   outputRenderer,
	}

	SetServices(Services{
		Generation: &stubGenerationService{},
		Ingestion:  &stubIngestionService{},
		Retrieval:  &stubRetrievalService{},
		Template:   &stubTemplateService{},
		Prompts:    &stubPromptStore{},
		Renderer:   renderer.NewMarkdown(),
	})

	return func() { SetServices(previous) }
}
