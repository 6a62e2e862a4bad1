package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var ingestName string

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a reference document",
	Long: `Ingests a reference document into the retrieval corpus.

The file's text is extracted, split into chunks, embedded with the
configured embedding provider and stored. Supported formats: .txt, .md,
.pdf (requires pdftotext), .docx.

Pass "-" to read raw text from stdin. Re-ingesting a name replaces the
previous document and all of its chunks.

Examples:
  quill ingest ./handbook.pdf
  quill ingest ./notes.md --name meeting-notes
  cat transcript.txt | quill ingest - --name transcript`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestName, "name", "n", "", "document name (default: file name without extension)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestionService == nil {
		return errors.New("ingestion service not configured")
	}

	path := args[0]

	if path == "-" {
		if ingestName == "" {
			return errors.New("--name is required when reading from stdin")
		}
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		doc, err := ingestionService.IngestText(cmd.Context(), ingestName, string(content))
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
		cmd.Printf("Ingested %q (%s)\n", doc.Name, doc.ID)
		return nil
	}

	name := ingestName
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	doc, err := ingestionService.IngestFile(cmd.Context(), name, path)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Ingested %q (%s) from %s\n", doc.Name, doc.ID, path)
	return nil
}
