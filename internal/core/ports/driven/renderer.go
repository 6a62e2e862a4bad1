package driven

import "github.com/custodia-labs/quill-cli/internal/core/domain"

// Renderer serialises a resolved block sequence into output bytes.
// A renderer must support all five block kinds; an unrecognised kind is
// rendered as a visible placeholder paragraph rather than failing the
// whole document.
type Renderer interface {
	// Render serialises the blocks.
	Render(blocks []domain.Block) ([]byte, error)

	// Extension returns the output file extension, with leading dot.
	Extension() string
}
