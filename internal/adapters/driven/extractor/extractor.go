// Package extractor converts reference files into plain text for the
// ingestion pipeline. The file format is recognised from the extension:
// plain text and Markdown are read directly, DOCX archives are parsed
// with the standard library, and PDFs are delegated to the pdftotext
// tool from poppler-utils.
package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/quill-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor extracts text from reference files by extension.
type Extractor struct {
	runner CommandRunner
}

// New creates an extractor using the real pdftotext binary for PDFs.
func New() *Extractor {
	return &Extractor{runner: &execRunner{}}
}

// NewWithRunner creates an extractor with a custom command runner.
// Used in tests to avoid a pdftotext dependency.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".txt", ".md", ".pdf", ".docx"}
}

// Extract returns the text content of the file at path. Unrecognised
// extensions yield an empty string rather than an error so callers can
// decide how strict to be.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return e.extractPlainText(path)
	case ".docx":
		return e.extractDocx(path)
	case ".pdf":
		return e.extractPDF(ctx, path)
	default:
		return "", nil
	}
}

// extractPlainText reads the file as UTF-8 text.
func (e *Extractor) extractPlainText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.TrimSpace(string(content)), nil
}
