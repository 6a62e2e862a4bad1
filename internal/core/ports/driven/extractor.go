package driven

import "context"

// TextExtractor converts reference files into plain text for ingestion.
// The file type is recognised from the extension. Unsupported types
// yield an empty string, not an error; malformed files return whatever
// partial text could be recovered.
type TextExtractor interface {
	// Extract returns the text content of the file at path.
	Extract(ctx context.Context, path string) (string, error)

	// SupportedExtensions returns the extensions this extractor handles,
	// lowercase with leading dot (".txt", ".pdf", ".docx").
	SupportedExtensions() []string
}
