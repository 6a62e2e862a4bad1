package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [file]", ingestCmd.Use)
}

func TestIngestCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestIngestCmd_ErrorsWithoutServices(t *testing.T) {
	oldIngestion := ingestionService
	ingestionService = nil
	defer func() { ingestionService = oldIngestion }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "file.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestIngestCmd_FileNameDefaultsFromPath(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ingestion := &stubIngestionService{}
	ingestionService = ingestion

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "/data/reference/handbook.pdf"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "handbook", ingestion.lastName)
	assert.Equal(t, "/data/reference/handbook.pdf", ingestion.lastPath)
	assert.Contains(t, buf.String(), `Ingested "handbook"`)
}

func TestIngestCmd_ExplicitName(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ingestion := &stubIngestionService{}
	ingestionService = ingestion

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "/data/notes.md", "--name", "meeting-notes"})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestName = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "meeting-notes", ingestion.lastName)
}

func TestIngestCmd_StdinRequiresName(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "-"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--name is required")
}

func TestIngestCmd_ReadsStdin(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ingestion := &stubIngestionService{}
	ingestionService = ingestion

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("piped transcript text"))
	rootCmd.SetArgs([]string{"ingest", "-", "--name", "transcript"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		ingestName = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "transcript", ingestion.lastName)
	assert.Equal(t, "piped transcript text", ingestion.lastText)
}
