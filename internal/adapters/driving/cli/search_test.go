package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "5", flag.DefValue)
}

func TestSearchCmd_ErrorsWithoutServices(t *testing.T) {
	oldRetrieval := retrievalService
	retrievalService = nil
	defer func() { retrievalService = oldRetrieval }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "query"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSearchCmd_NoResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "anything"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No results found.")
}

func TestSearchCmd_ShowsRankedResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	retrieval := &stubRetrievalService{items: []domain.ContextItem{
		{ChunkID: "c1", SourceName: "handbook", Similarity: 0.912, Content: "First matching\nexcerpt."},
		{ChunkID: "c2", SourceName: "faq", Similarity: 0.51, Content: "Second match."},
	}}
	retrievalService = retrieval

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "refund policy", "--limit", "2"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchLimit = 5
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "refund policy", retrieval.lastQuery)
	assert.Equal(t, 2, retrieval.lastTopK)
	assert.Contains(t, buf.String(), "[1] handbook (0.912)")
	assert.Contains(t, buf.String(), "[2] faq (0.510)")
	// Newlines are flattened in snippets.
	assert.Contains(t, buf.String(), "First matching excerpt.")
}

func TestSearchCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	retrievalService = &stubRetrievalService{items: []domain.ContextItem{
		{ChunkID: "c1", SourceName: "handbook", Similarity: 0.9, Content: "excerpt"},
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "query", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"chunk_id": "c1"`)
	assert.Contains(t, buf.String(), `"source": "handbook"`)
}
