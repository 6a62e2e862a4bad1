package services

import (
	"context"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
)

type mockEmbedder struct {
	embedding  []float32
	embedErr   error
	batchErr   error
	batchShort bool

	embedCalls int
	batchCalls int
	lastQuery  string
	lastBatch  []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedCalls++
	m.lastQuery = text
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedding, nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	m.lastBatch = texts
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	count := len(texts)
	if m.batchShort {
		count--
	}
	out := make([][]float32, count)
	for i := range out {
		out[i] = m.embedding
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int            { return len(m.embedding) }
func (m *mockEmbedder) ModelName() string          { return "mock-embed" }
func (m *mockEmbedder) Ping(context.Context) error { return nil }
func (m *mockEmbedder) Close() error               { return nil }

type mockLLM struct {
	response string
	err      error

	calls     int
	prompts   []string
	retrieved []domain.ContextItem
}

func (m *mockLLM) Generate(_ context.Context, prompt string, retrieved []domain.ContextItem) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.retrieved = retrieved
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) GenerateJSON(context.Context, string, string) ([]byte, error) {
	return []byte("{}"), nil
}

func (m *mockLLM) ModelName() string          { return "mock-llm" }
func (m *mockLLM) Ping(context.Context) error { return nil }
func (m *mockLLM) Close() error               { return nil }

type mockRetrieval struct {
	items []domain.ContextItem
	err   error

	calls     int
	lastQuery string
	lastTopK  int
}

func (m *mockRetrieval) FindSimilar(_ context.Context, query string, topK int) ([]domain.ContextItem, error) {
	m.calls++
	m.lastQuery = query
	m.lastTopK = topK
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *mockRetrieval) FindSimilarByVector(_ context.Context, _ []float32, topK int) ([]domain.ContextItem, error) {
	m.calls++
	m.lastTopK = topK
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

type mockExtractor struct {
	text string
	err  error

	lastPath string
}

func (m *mockExtractor) Extract(_ context.Context, path string) (string, error) {
	m.lastPath = path
	return m.text, m.err
}

func (m *mockExtractor) SupportedExtensions() []string {
	return []string{".txt", ".md", ".pdf", ".docx"}
}
