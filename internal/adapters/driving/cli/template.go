package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage saved templates",
	Long:  `Save, list, inspect, or delete templates for reuse by name.`,
}

var templateSaveCmd = &cobra.Command{
	Use:   "save [name] [file]",
	Short: "Save a template under a name",
	Args:  cobra.ExactArgs(2),
	RunE:  runTemplateSave,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplateList,
}

var templateShowCmd = &cobra.Command{
	Use:   "show [id-or-name]",
	Short: "Print a template's Lexical JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateShow,
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete [id-or-name]",
	Short: "Delete a saved template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateDelete,
}

func init() {
	templateCmd.AddCommand(templateSaveCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateDeleteCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateSave(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	name, path := args[0], args[1]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading template file: %w", err)
	}

	tmpl, err := templateService.Save(cmd.Context(), name, data)
	if err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	cmd.Printf("Saved template %q (%s)\n", tmpl.Name, tmpl.ID)
	return nil
}

func runTemplateList(cmd *cobra.Command, _ []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	templates, err := templateService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	if len(templates) == 0 {
		cmd.Println("No templates saved. Use 'quill template save' to add one.")
		return nil
	}

	cmd.Println("Saved templates:")
	cmd.Println()
	for i := range templates {
		cmd.Printf("  %s\n", templates[i].Name)
		cmd.Printf("    ID:      %s\n", templates[i].ID)
		cmd.Printf("    Updated: %s\n", templates[i].UpdatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}
	cmd.Printf("Total: %d templates\n", len(templates))
	return nil
}

func runTemplateShow(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	tmpl, err := templateService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	cmd.Println(string(tmpl.LexicalJSON))
	return nil
}

func runTemplateDelete(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	if err := templateService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	cmd.Printf("Deleted template %s.\n", args[0])
	return nil
}
