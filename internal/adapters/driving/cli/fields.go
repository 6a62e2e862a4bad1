package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var fieldsJSON bool

var fieldsCmd = &cobra.Command{
	Use:   "fields [template]",
	Short: "List the dynamic tokens in a template",
	Long: `Scans a template for {{placeholder}} and [[prompt]] tokens without
resolving anything, so callers know which inputs to supply before
running 'quill generate'.`,
	Args: cobra.ExactArgs(1),
	RunE: runFields,
}

func init() {
	fieldsCmd.Flags().BoolVar(&fieldsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(fieldsCmd)
}

func runFields(cmd *cobra.Command, args []string) error {
	if generationService == nil {
		return errors.New("generation service not configured")
	}

	lexicalJSON, err := loadTemplate(cmd, args[0])
	if err != nil {
		return err
	}

	fields, err := generationService.ExtractFields(lexicalJSON)
	if err != nil {
		return fmt.Errorf("scanning template: %w", err)
	}

	if fieldsJSON {
		data, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal fields: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(fields.Placeholders) == 0 && len(fields.Prompts) == 0 {
		cmd.Println("Template has no dynamic tokens.")
		return nil
	}

	if len(fields.Placeholders) > 0 {
		cmd.Println("Placeholders:")
		for _, p := range fields.Placeholders {
			cmd.Printf("  {{%s}}\n", p)
		}
	}
	if len(fields.Prompts) > 0 {
		cmd.Println("Prompts:")
		for _, p := range fields.Prompts {
			cmd.Printf("  [[%s]]\n", p)
		}
	}
	return nil
}
