package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driving"
)

var (
	generateContext []string
	generatePrompts []string
	generateVars    string
	generateOut     string
	generateTopK    int
	generateJSON    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [template]",
	Short: "Resolve a template into a document",
	Long: `Resolves a template into a finished document.

The template argument is a path to a Lexical JSON file, or the name of
a template saved with 'quill template save'.

{{placeholder}} tokens fill from --context values. [[prompt]] tokens
expand with the configured LLM: the prompt text comes from --prompt
values, falling back to <key>.txt files in the prompt directory. LLM
calls are grounded in the most similar ingested reference chunks.

Examples:
  quill generate welcome-letter --context name=Alice --context company=Acme
  quill generate ./report.json --prompt summary="Summarise Q3 results" -o report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringArrayVarP(&generateContext, "context", "c", nil, "placeholder value as key=value (repeatable)")
	generateCmd.Flags().StringArrayVarP(&generatePrompts, "prompt", "p", nil, "prompt template as key=text (repeatable)")
	generateCmd.Flags().StringVar(&generateVars, "vars", "", "path to a JSON file of variable definitions")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "output file (default stdout)")
	generateCmd.Flags().IntVar(&generateTopK, "top-k", 0, "grounding chunks per generation (0 = configured default)")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "output the resolved blocks as JSON")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generationService == nil {
		return errors.New("generation service not configured")
	}

	lexicalJSON, err := loadTemplate(cmd, args[0])
	if err != nil {
		return err
	}

	contextMap, err := parseKeyValues(generateContext)
	if err != nil {
		return fmt.Errorf("invalid --context flag: %w", err)
	}

	promptMap, err := buildPromptMap(lexicalJSON)
	if err != nil {
		return err
	}

	variables, err := loadVariables(generateVars)
	if err != nil {
		return err
	}

	result, err := generationService.Generate(cmd.Context(), driving.GenerationRequest{
		LexicalJSON: lexicalJSON,
		ContextMap:  contextMap,
		PromptMap:   promptMap,
		Variables:   variables,
		TopK:        generateTopK,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if generateJSON {
		return writeOutput(cmd, marshalResult(result))
	}

	if outputRenderer == nil {
		return errors.New("renderer not configured")
	}
	rendered, err := outputRenderer.Render(result.Blocks)
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}
	return writeOutput(cmd, rendered)
}

// loadTemplate reads the template from disk when the argument names an
// existing file, otherwise from the template store.
func loadTemplate(cmd *cobra.Command, nameOrPath string) ([]byte, error) {
	if _, err := os.Stat(nameOrPath); err == nil {
		data, err := os.ReadFile(nameOrPath)
		if err != nil {
			return nil, fmt.Errorf("reading template file: %w", err)
		}
		return data, nil
	}

	if templateService == nil {
		return nil, fmt.Errorf("template %q: no such file and template store not configured", nameOrPath)
	}
	tmpl, err := templateService.Get(cmd.Context(), nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("loading template %q: %w", nameOrPath, err)
	}
	return tmpl.LexicalJSON, nil
}

// buildPromptMap assembles prompt templates for the keys the template
// references: explicit --prompt flags win, then the prompt directory.
// Keys found in neither are left out and resolve as visible markers.
func buildPromptMap(lexicalJSON []byte) (map[string]string, error) {
	promptMap, err := parseKeyValues(generatePrompts)
	if err != nil {
		return nil, fmt.Errorf("invalid --prompt flag: %w", err)
	}

	if promptStore == nil {
		return promptMap, nil
	}

	fields, err := generationService.ExtractFields(lexicalJSON)
	if err != nil {
		return nil, fmt.Errorf("scanning template: %w", err)
	}
	for _, key := range fields.Prompts {
		if _, ok := promptMap[key]; ok {
			continue
		}
		if text, err := promptStore.Load(key); err == nil {
			promptMap[key] = text
		}
	}
	return promptMap, nil
}

// loadVariables reads variable definitions from a JSON file keyed by
// variable ID.
func loadVariables(path string) (map[string]domain.Variable, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading variables file: %w", err)
	}
	var variables map[string]domain.Variable
	if err := json.Unmarshal(data, &variables); err != nil {
		return nil, fmt.Errorf("parsing variables file: %w", err)
	}
	for id, v := range variables {
		if v.ID == "" {
			v.ID = id
			variables[id] = v
		}
	}
	return variables, nil
}

// parseKeyValues converts repeated key=value flags to a map.
func parseKeyValues(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		result[key] = value
	}
	return result, nil
}

func marshalResult(result *driving.GenerationResult) []byte {
	type blockJSON struct {
		Kind     string   `json:"kind"`
		Text     string   `json:"text"`
		Level    int      `json:"level,omitempty"`
		Language string   `json:"language,omitempty"`
		Style    string   `json:"style,omitempty"`
		Items    []string `json:"items,omitempty"`
	}

	blocks := make([]blockJSON, 0, len(result.Blocks))
	for _, b := range result.Blocks {
		out := blockJSON{
			Kind:     string(b.Kind),
			Text:     b.Content.Plain(),
			Level:    b.Level,
			Language: b.Language,
			Style:    string(b.Style),
		}
		for _, item := range b.Items {
			out.Items = append(out.Items, item.Text)
		}
		blocks = append(blocks, out)
	}

	data, err := json.MarshalIndent(blocks, "", "  ")
	if err != nil {
		return []byte("[]")
	}
	return append(data, '\n')
}

// writeOutput writes to the --out file or the command's stdout.
func writeOutput(cmd *cobra.Command, data []byte) error {
	if generateOut == "" {
		cmd.Print(string(data))
		return nil
	}
	if err := os.WriteFile(generateOut, data, 0o600); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	cmd.Printf("Wrote %s\n", generateOut)
	return nil
}
