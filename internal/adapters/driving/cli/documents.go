package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
)

var documentsJSON bool

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage ingested reference documents",
	Long:  `List or delete the reference documents in the retrieval corpus.`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [id-or-name]",
	Short: "Delete a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDelete,
}

func init() {
	documentsListCmd.Flags().BoolVar(&documentsJSON, "json", false, "output as JSON")
	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if ingestionService == nil {
		return errors.New("ingestion service not configured")
	}

	docs, err := ingestionService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if documentsJSON {
		type docJSON struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			FileType string `json:"file_type"`
			Path     string `json:"path,omitempty"`
			Created  string `json:"created_at"`
		}
		out := make([]docJSON, 0, len(docs))
		for i := range docs {
			out = append(out, docJSON{
				ID:       docs[i].ID,
				Name:     docs[i].Name,
				FileType: string(docs[i].FileType),
				Path:     docs[i].Path,
				Created:  docs[i].CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested. Use 'quill ingest' to add some.")
		return nil
	}

	cmd.Println("Ingested documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].Name)
		cmd.Printf("    ID:      %s\n", docs[i].ID)
		cmd.Printf("    Type:    %s\n", docs[i].FileType)
		if docs[i].Path != "" {
			cmd.Printf("    Path:    %s\n", docs[i].Path)
		}
		cmd.Printf("    Created: %s\n", docs[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	if ingestionService == nil {
		return errors.New("ingestion service not configured")
	}

	id, err := resolveDocumentID(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if err := ingestionService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document %s and its chunks.\n", args[0])
	return nil
}

// resolveDocumentID accepts a document ID or name.
func resolveDocumentID(ctx context.Context, idOrName string) (string, error) {
	docs, err := ingestionService.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list documents: %w", err)
	}
	for i := range docs {
		if docs[i].ID == idOrName || docs[i].Name == idOrName {
			return docs[i].ID, nil
		}
	}
	return "", fmt.Errorf("document %q: %w", idOrName, domain.ErrNotFound)
}
