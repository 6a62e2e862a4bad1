// Package chunker splits text into bounded, overlap-aware segments
// suitable for embedding.
package chunker

import (
	"regexp"
	"strings"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping characters
// repeated between consecutive chunks.
const DefaultOverlap = 200

// separators are tried in order when splitting oversized text: paragraph
// breaks, then line breaks, then spaces, then hard character cuts.
var separators = []string{"\n\n", "\n", " "}

// sentencePattern matches one sentence including its terminator and any
// trailing whitespace, so sentence pieces concatenate back to the input.
var sentencePattern = regexp.MustCompile(`(?s).*?[.!?](\s+|$)`)

// Chunker splits text recursively at natural boundaries.
type Chunker struct {
	chunkSize    int
	overlap      int
	sentenceMode bool
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// WithSentenceMode switches to the simpler sentence-accumulation
// algorithm. Sentence mode never inserts overlap.
func WithSentenceMode() Option {
	return func(c *Chunker) {
		c.sentenceMode = true
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// ChunkSize returns the configured maximum chunk size.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Chunk splits text into ordered segments. No segment is empty or
// exceeds the chunk size, and stripping the overlap prefixes and
// concatenating the remainders reconstructs the input exactly.
func (c *Chunker) Chunk(text string) []string {
	if text == "" {
		return nil
	}
	if c.sentenceMode {
		return c.chunkSentences(text)
	}

	budget := c.chunkSize - c.overlap
	pieces := split(text, separators, budget)
	cores := merge(pieces, budget)

	// Prepend the tail of the preceding core as repeated context so
	// retrieval keeps meaning across chunk boundaries.
	chunks := make([]string, len(cores))
	for i, core := range cores {
		if i == 0 || c.overlap == 0 {
			chunks[i] = core
			continue
		}
		prev := cores[i-1]
		tail := prev
		if len(prev) > c.overlap {
			tail = prev[len(prev)-c.overlap:]
		}
		chunks[i] = tail + core
	}
	return chunks
}

// split recursively divides text into pieces no longer than limit,
// preferring the earliest separator that occurs in the text. Separators
// stay attached to the preceding piece so pieces concatenate losslessly.
func split(text string, seps []string, limit int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= limit {
		return []string{text}
	}

	for i, sep := range seps {
		if !strings.Contains(text, sep) {
			continue
		}
		var pieces []string
		for _, part := range splitAfter(text, sep) {
			if len(part) <= limit {
				pieces = append(pieces, part)
			} else {
				pieces = append(pieces, split(part, seps[i+1:], limit)...)
			}
		}
		return pieces
	}

	// No separator applies: hard character cut.
	var pieces []string
	for start := 0; start < len(text); start += limit {
		end := start + limit
		if end > len(text) {
			end = len(text)
		}
		pieces = append(pieces, text[start:end])
	}
	return pieces
}

// splitAfter splits around sep keeping the separator with the piece
// before it, dropping the empty trailing piece strings.SplitAfter
// produces when the text ends with the separator.
func splitAfter(text, sep string) []string {
	parts := strings.SplitAfter(text, sep)
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}

// merge greedily joins adjacent pieces into cores up to limit characters.
func merge(pieces []string, limit int) []string {
	var cores []string
	var current strings.Builder
	for _, piece := range pieces {
		if current.Len() > 0 && current.Len()+len(piece) > limit {
			cores = append(cores, current.String())
			current.Reset()
		}
		current.WriteString(piece)
	}
	if current.Len() > 0 {
		cores = append(cores, current.String())
	}
	return cores
}

// chunkSentences accumulates whole sentences into a running buffer,
// flushing whenever the next sentence would exceed the chunk size.
func (c *Chunker) chunkSentences(text string) []string {
	sentences := sentencePattern.FindAllString(text, -1)
	consumed := 0
	for _, s := range sentences {
		consumed += len(s)
	}
	// Trailing text without a terminator is kept as a final sentence.
	if consumed < len(text) {
		sentences = append(sentences, text[consumed:])
	}

	var chunks []string
	var current strings.Builder
	for _, sentence := range sentences {
		if current.Len() > 0 && current.Len()+len(sentence) > c.chunkSize {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		// A single sentence longer than the chunk size falls back to
		// hard cuts rather than emitting an oversized chunk.
		if len(sentence) > c.chunkSize {
			for _, piece := range split(sentence, nil, c.chunkSize) {
				chunks = append(chunks, piece)
			}
			continue
		}
		current.WriteString(sentence)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
