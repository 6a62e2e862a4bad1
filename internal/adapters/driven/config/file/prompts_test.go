package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quill-cli/internal/core/ports/driven"
)

func TestPromptStore_ImplementsInterface(t *testing.T) {
	var _ driven.PromptStore = (*PromptStore)(nil)
}

func TestNewPromptStore_WithCustomDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPromptStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

func TestNewPromptStore_DefaultDir(t *testing.T) {
	// Skip if we can't determine home dir
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	store, err := NewPromptStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".quill", "prompts"), store.Dir())
}

func TestPromptStore_Load_CreatesReadme(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	// Any access triggers lazy init
	_, _ = store.List()

	_, err = os.Stat(filepath.Join(dir, "README.md"))
	assert.NoError(t, err, "expected README.md to exist")
}

func TestPromptStore_Load_ReturnsFileContent(t *testing.T) {
	dir := t.TempDir()

	content := "Write a short overview of {{company}}."
	err := os.WriteFile(
		filepath.Join(dir, "company_overview.txt"),
		[]byte(content),
		0600,
	)
	require.NoError(t, err)

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load("company_overview")

	require.NoError(t, err)
	assert.Equal(t, content, prompt)
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load("nonexistent_prompt")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent_prompt")
}

func TestPromptStore_List(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"beta.txt", "alpha.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600))
	}
	// Non-prompt files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	keys, err := store.List()

	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, keys)
}

func TestPromptStore_Load_CachesResults(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "overview.txt")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	// First load
	prompt1, err := store.Load("overview")
	require.NoError(t, err)

	// Modify file on disk
	require.NoError(t, os.WriteFile(path, []byte("modified content"), 0600))

	// Second load should return cached value
	prompt2, err := store.Load("overview")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}

func TestPromptStore_Reload_ClearsCache(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "overview.txt")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load("overview")
	require.NoError(t, err)

	// Modify file on disk
	modifiedContent := "modified content"
	require.NoError(t, os.WriteFile(path, []byte(modifiedContent), 0600))

	// Reload cache
	store.Reload()

	// Should return new content
	prompt, err := store.Load("overview")
	require.NoError(t, err)

	assert.Equal(t, modifiedContent, prompt)
}

func TestPromptStore_Load_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "overview.txt"), []byte("shared"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines)

	errors := make(chan error, goroutines)
	prompts := make(chan string, goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			prompt, err := store.Load("overview")
			if err != nil {
				errors <- err
				return
			}
			prompts <- prompt
		}()
	}

	wg.Wait()
	close(errors)
	close(prompts)

	// Check no errors
	for err := range errors {
		t.Errorf("unexpected error: %v", err)
	}

	// Check all prompts are identical
	var first string
	for prompt := range prompts {
		if first == "" {
			first = prompt
		} else {
			assert.Equal(t, first, prompt)
		}
	}
}

func TestPromptStore_DoesNotOverwriteExistingFiles(t *testing.T) {
	dir := t.TempDir()

	// Create custom prompt before store creation
	customContent := "pre-existing custom prompt"
	err := os.WriteFile(
		filepath.Join(dir, "overview.txt"),
		[]byte(customContent),
		0600,
	)
	require.NoError(t, err)

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	// Trigger init
	_, _ = store.List()

	// Original file should be unchanged
	data, err := os.ReadFile(filepath.Join(dir, "overview.txt"))
	require.NoError(t, err)
	assert.Equal(t, customContent, string(data))
}

func TestPromptStore_TrimsWhitespace(t *testing.T) {
	dir := t.TempDir()

	// Create prompt with extra whitespace
	contentWithWhitespace := "\n\n  prompt content  \n\n"
	err := os.WriteFile(
		filepath.Join(dir, "overview.txt"),
		[]byte(contentWithWhitespace),
		0600,
	)
	require.NoError(t, err)

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load("overview")
	require.NoError(t, err)

	assert.Equal(t, "prompt content", prompt)
}
