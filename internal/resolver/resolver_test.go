package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
)

type mockLLM struct {
	response  string
	err       error
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

func (m *mockLLM) ModelName() string          { return "mock" }
func (m *mockLLM) Ping(context.Context) error { return nil }
func (m *mockLLM) Close() error               { return nil }

func paragraph(text string) domain.Block {
	return domain.Block{Kind: domain.BlockParagraph, Content: domain.PlainText(text)}
}

func TestResolve_Placeholder(t *testing.T) {
	r := New(nil)
	in := Input{Context: map[string]string{"name": "Alice"}}

	blocks, err := r.Resolve(context.Background(), []domain.Block{paragraph("Hi {{name}}!")}, in)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Hi Alice!", blocks[0].Content.Plain())
}

func TestResolve_UnknownPlaceholderPreserved(t *testing.T) {
	r := New(nil)

	blocks, err := r.Resolve(context.Background(), []domain.Block{paragraph("Hi {{name}}!")}, Input{})
	require.NoError(t, err)
	assert.Equal(t, "Hi {{name}}!", blocks[0].Content.Plain())
}

func TestResolve_PromptToken(t *testing.T) {
	llm := &mockLLM{response: "generated text"}
	r := New(llm)
	in := Input{Prompts: map[string]string{"intro": "Write an intro for {{company}}"}, Context: map[string]string{"company": "Acme"}}

	blocks, err := r.Resolve(context.Background(), []domain.Block{paragraph("[[intro]]")}, in)
	require.NoError(t, err)
	assert.Equal(t, "generated text", blocks[0].Content.Plain())
	require.Len(t, llm.prompts, 1)
	assert.Equal(t, "Write an intro for Acme", llm.prompts[0])
}

func TestResolve_MissingPromptFailsOpen(t *testing.T) {
	llm := &mockLLM{response: "unused"}
	r := New(llm)

	blocks, err := r.Resolve(context.Background(), []domain.Block{paragraph("before [[missing]] after")}, Input{})
	require.NoError(t, err)
	assert.Equal(t, "before [Missing prompt for key: missing] after", blocks[0].Content.Plain())
	assert.Zero(t, llm.calls)
}

func TestResolve_EmptyPromptTemplateFailsOpen(t *testing.T) {
	llm := &mockLLM{response: "unused"}
	r := New(llm)
	in := Input{Prompts: map[string]string{"blank": ""}}

	blocks, err := r.Resolve(context.Background(), []domain.Block{paragraph("[[blank]]")}, in)
	require.NoError(t, err)
	assert.Equal(t, "[Missing prompt for key: blank]", blocks[0].Content.Plain())
	assert.Zero(t, llm.calls)
}

func TestResolve_OneCallPerOccurrence(t *testing.T) {
	llm := &mockLLM{response: "out"}
	r := New(llm)
	in := Input{Prompts: map[string]string{"summary": "Summarise"}}
	blocks := []domain.Block{
		paragraph("[[summary]] and [[summary]]"),
		paragraph("[[summary]]"),
	}

	_, err := r.Resolve(context.Background(), blocks, in)
	require.NoError(t, err)
	assert.Equal(t, 3, llm.calls)
}

func TestResolve_NilLLM(t *testing.T) {
	r := New(nil)
	in := Input{Prompts: map[string]string{"intro": "Write something"}}

	_, err := r.Resolve(context.Background(), []domain.Block{paragraph("[[intro]]")}, in)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestResolve_LLMErrorAborts(t *testing.T) {
	failure := errors.New("model overloaded")
	r := New(&mockLLM{err: failure})
	in := Input{Prompts: map[string]string{"intro": "Write something"}}

	_, err := r.Resolve(context.Background(), []domain.Block{paragraph("[[intro]]")}, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, failure)
	assert.Contains(t, err.Error(), "intro")
}

func TestResolve_RetrievedContextForwarded(t *testing.T) {
	llm := &mockLLM{response: "grounded"}
	r := New(llm)
	retrieved := []domain.ContextItem{{ChunkID: "c1", Content: "reference", SourceName: "doc", Similarity: 0.9}}
	in := Input{
		Prompts:   map[string]string{"intro": "Write an intro"},
		Retrieved: retrieved,
	}

	_, err := r.Resolve(context.Background(), []domain.Block{paragraph("[[intro]]")}, in)
	require.NoError(t, err)
	assert.Equal(t, retrieved, llm.retrieved)
}

func TestResolve_ValueVariable(t *testing.T) {
	r := New(nil)
	block := domain.Block{
		Kind: domain.BlockParagraph,
		Content: domain.Runs([]domain.FormattedRun{
			{Text: "Dear "},
			{Text: "customer", VariableRef: "var-1"},
		}),
	}
	in := Input{
		Context: map[string]string{"recipient": "Bob"},
		Variables: map[string]domain.Variable{
			"var-1": {ID: "var-1", Name: "recipient", Type: domain.VariableValue},
		},
	}

	blocks, err := r.Resolve(context.Background(), []domain.Block{block}, in)
	require.NoError(t, err)

	runs := blocks[0].Content.FormattedRuns()
	require.Len(t, runs, 2)
	assert.Equal(t, "Bob", runs[1].Text)
	assert.Empty(t, runs[1].VariableRef)
}

func TestResolve_ValueVariableDefault(t *testing.T) {
	r := New(nil)
	block := domain.Block{
		Kind: domain.BlockParagraph,
		Content: domain.Runs([]domain.FormattedRun{
			{Text: "x", VariableRef: "var-1"},
		}),
	}
	in := Input{
		Variables: map[string]domain.Variable{
			"var-1": {ID: "var-1", Name: "recipient", Type: domain.VariableValue, DefaultValue: "Valued Customer"},
		},
	}

	blocks, err := r.Resolve(context.Background(), []domain.Block{block}, in)
	require.NoError(t, err)
	assert.Equal(t, "Valued Customer", blocks[0].Content.FormattedRuns()[0].Text)
}

func TestResolve_PromptVariable(t *testing.T) {
	llm := &mockLLM{response: "a warm greeting"}
	r := New(llm)
	block := domain.Block{
		Kind: domain.BlockParagraph,
		Content: domain.Runs([]domain.FormattedRun{
			{Text: "greeting", VariableRef: "var-1"},
		}),
	}
	in := Input{
		Context: map[string]string{"tone": "formal"},
		Variables: map[string]domain.Variable{
			"var-1": {ID: "var-1", Type: domain.VariablePrompt, PromptTemplate: "Write a {{tone}} greeting"},
		},
	}

	blocks, err := r.Resolve(context.Background(), []domain.Block{block}, in)
	require.NoError(t, err)
	assert.Equal(t, "a warm greeting", blocks[0].Content.FormattedRuns()[0].Text)
	require.Len(t, llm.prompts, 1)
	assert.Equal(t, "Write a formal greeting", llm.prompts[0])
}

func TestResolve_UnknownVariableKeepsText(t *testing.T) {
	r := New(nil)
	block := domain.Block{
		Kind: domain.BlockParagraph,
		Content: domain.Runs([]domain.FormattedRun{
			{Text: "fallback", VariableRef: "ghost"},
		}),
	}

	blocks, err := r.Resolve(context.Background(), []domain.Block{block}, Input{})
	require.NoError(t, err)

	run := blocks[0].Content.FormattedRuns()[0]
	assert.Equal(t, "fallback", run.Text)
	assert.Empty(t, run.VariableRef)
}

func TestResolve_ListItems(t *testing.T) {
	r := New(nil)
	block := domain.Block{
		Kind:  domain.BlockList,
		Style: domain.ListBullet,
		Items: []domain.ListItem{{Text: "Item for {{name}}"}},
	}
	in := Input{Context: map[string]string{"name": "Alice"}}

	blocks, err := r.Resolve(context.Background(), []domain.Block{block}, in)
	require.NoError(t, err)
	require.Len(t, blocks[0].Items, 1)
	assert.Equal(t, "Item for Alice", blocks[0].Items[0].Text)
}

func TestResolve_InputNotMutated(t *testing.T) {
	r := New(nil)
	original := []domain.Block{paragraph("Hi {{name}}!")}
	in := Input{Context: map[string]string{"name": "Alice"}}

	_, err := r.Resolve(context.Background(), original, in)
	require.NoError(t, err)
	assert.Equal(t, "Hi {{name}}!", original[0].Content.Plain())
}

func TestResolve_CancelledContext(t *testing.T) {
	r := New(&mockLLM{response: "never"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := Input{Prompts: map[string]string{"intro": "Write something"}}

	_, err := r.Resolve(ctx, []domain.Block{paragraph("[[intro]]")}, in)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolvePlaceholders_WhitespaceTrimmed(t *testing.T) {
	out := ResolvePlaceholders("{{ name }}", map[string]string{"name": "Alice"})
	assert.Equal(t, "Alice", out)
}
