package domain

import "time"

// FileType identifies the original format of an ingested reference document.
type FileType string

// Supported reference document file types.
const (
	FileTypeText FileType = "text"
	FileTypePDF  FileType = "pdf"
	FileTypeDocx FileType = "docx"
)

// SourceDocument is an ingested reference document. It owns its chunks;
// deleting or re-ingesting a document replaces the chunk set as a whole.
type SourceDocument struct {
	// ID is the unique identifier for the document.
	ID string

	// Name is the human-readable document name.
	Name string

	// FileType is the original format.
	FileType FileType

	// Path is the original file location, empty for raw text ingests.
	Path string

	// ExtractedText is the full text content after extraction.
	ExtractedText string

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Chunk is a bounded slice of a source document's text, embedded for
// retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning SourceDocument.
	DocumentID string

	// Index is the 0-based position within the document. Chunks for a
	// document are totally ordered and contiguous by Index.
	Index int

	// Content is the chunk text.
	Content string

	// Embedding is the vector representation. Nil until embedded; chunks
	// without embeddings are skipped by retrieval.
	Embedding []float32

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any
}

// ContextItem is one retrieved grounding chunk handed to the LLM,
// ephemeral and scoped to a single query.
type ContextItem struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Content is the chunk text.
	Content string

	// SourceName is the owning document's name.
	SourceName string

	// Similarity is the cosine similarity score in [-1, 1].
	Similarity float64
}
