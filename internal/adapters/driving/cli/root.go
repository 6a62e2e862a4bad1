// Package cli implements the quill command-line interface with cobra.
// Commands read their collaborating services from package-level
// variables set once at startup by the composition root.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/quill-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quill-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services the commands depend on. Nil services make the dependent
// commands fail with a configuration error instead of panicking.
var (
	generationService driving.GenerationService
	ingestionService  driving.IngestionService
	retrievalService  driving.RetrievalService
	templateService   driving.TemplateService
	settingsService   driving.SettingsService
	promptStore       driven.PromptStore
	outputRenderer    driven.Renderer
)

// Services bundles everything the CLI needs.
type Services struct {
	Generation driving.GenerationService
	Ingestion  driving.IngestionService
	Retrieval  driving.RetrievalService
	Template   driving.TemplateService
	Settings   driving.SettingsService
	Prompts    driven.PromptStore
	Renderer   driven.Renderer
}

// SetServices wires the CLI to its collaborators.
func SetServices(s Services) {
	generationService = s.Generation
	ingestionService = s.Ingestion
	retrievalService = s.Retrieval
	templateService = s.Template
	settingsService = s.Settings
	promptStore = s.Prompts
	outputRenderer = s.Renderer
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Template-driven document generation with retrieval grounding",
	Long: `Quill resolves rich-text templates into finished documents.

Templates come from the Lexical editor as JSON. Quill fills
{{placeholder}} tokens from supplied context, expands [[prompt]] tokens
with an LLM, and grounds those LLM calls in reference documents you
have ingested.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
