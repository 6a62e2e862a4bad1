// Package renderer serialises resolved block sequences into output
// documents. The Markdown renderer is the reference implementation.
package renderer

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driven"
)

// Ensure Markdown implements the interface.
var _ driven.Renderer = (*Markdown)(nil)

// Markdown renders blocks as CommonMark text. Blocks are separated by
// a blank line. Unknown block kinds render as a visible placeholder
// paragraph so a single bad block never sinks the whole document.
type Markdown struct{}

// NewMarkdown creates a Markdown renderer.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// Extension returns the output file extension.
func (m *Markdown) Extension() string {
	return ".md"
}

// Render serialises the blocks.
func (m *Markdown) Render(blocks []domain.Block) ([]byte, error) {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		parts = append(parts, m.renderBlock(block))
	}
	return []byte(strings.Join(parts, "\n\n") + "\n"), nil
}

func (m *Markdown) renderBlock(block domain.Block) string {
	switch block.Kind {
	case domain.BlockHeading:
		level := block.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		return strings.Repeat("#", level) + " " + renderContent(block.Content)
	case domain.BlockParagraph:
		return renderContent(block.Content)
	case domain.BlockQuote:
		return renderQuote(block.Content)
	case domain.BlockCode:
		return "```" + block.Language + "\n" + block.Content.Plain() + "\n```"
	case domain.BlockList:
		return renderList(block)
	default:
		return fmt.Sprintf("[Unsupported block type: %s]", block.Kind)
	}
}

// renderQuote prefixes every line of the content, so multi-line quotes
// stay inside the blockquote.
func renderQuote(content domain.Content) string {
	lines := strings.Split(renderContent(content), "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

func renderList(block domain.Block) string {
	lines := make([]string, 0, len(block.Items))
	for i, item := range block.Items {
		marker := "-"
		if block.Style == domain.ListNumbered {
			marker = fmt.Sprintf("%d.", i+1)
		}
		lines = append(lines, marker+" "+item.Text)
	}
	return strings.Join(lines, "\n")
}

// renderContent serialises plain or formatted content.
func renderContent(content domain.Content) string {
	if !content.IsRuns() {
		return content.Plain()
	}

	var out strings.Builder
	for _, run := range content.FormattedRuns() {
		out.WriteString(renderRun(run))
	}
	return out.String()
}

// renderRun wraps a single run in Markdown emphasis markers. Inline
// code wins over the other markers since Markdown cannot nest emphasis
// inside a code span. Subscript and superscript use the HTML tags
// Markdown passes through.
func renderRun(run domain.FormattedRun) string {
	text := run.Text
	if text == "" {
		return ""
	}

	f := run.Formatting
	if f.Code {
		return "`" + text + "`"
	}
	if f.Bold {
		text = "**" + text + "**"
	}
	if f.Italic {
		text = "*" + text + "*"
	}
	if f.Strikethrough {
		text = "~~" + text + "~~"
	}
	if f.Underline {
		text = "<u>" + text + "</u>"
	}
	if f.Subscript {
		text = "<sub>" + text + "</sub>"
	}
	if f.Superscript {
		text = "<sup>" + text + "</sup>"
	}
	if f.Link != "" {
		text = "[" + text + "](" + f.Link + ")"
	}
	return text
}
