package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driven"
)

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Renderer = (*Markdown)(nil)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".md", NewMarkdown().Extension())
}

func render(t *testing.T, blocks ...domain.Block) string {
	t.Helper()
	out, err := NewMarkdown().Render(blocks)
	require.NoError(t, err)
	return string(out)
}

func TestRender_Heading(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		expected string
	}{
		{"level one", 1, "# Title\n"},
		{"level three", 3, "### Title\n"},
		{"level clamped low", 0, "# Title\n"},
		{"level clamped high", 9, "###### Title\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := render(t, domain.Block{
				Kind:    domain.BlockHeading,
				Level:   tc.level,
				Content: domain.PlainText("Title"),
			})
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestRender_Paragraph(t *testing.T) {
	out := render(t, domain.Block{
		Kind:    domain.BlockParagraph,
		Content: domain.PlainText("Hello world."),
	})
	assert.Equal(t, "Hello world.\n", out)
}

func TestRender_Quote_MultiLine(t *testing.T) {
	out := render(t, domain.Block{
		Kind:    domain.BlockQuote,
		Content: domain.PlainText("line one\nline two"),
	})
	assert.Equal(t, "> line one\n> line two\n", out)
}

func TestRender_Code(t *testing.T) {
	out := render(t, domain.Block{
		Kind:     domain.BlockCode,
		Language: "go",
		Content:  domain.PlainText("fmt.Println(1)"),
	})
	assert.Equal(t, "```go\nfmt.Println(1)\n```\n", out)
}

func TestRender_Code_NoLanguage(t *testing.T) {
	out := render(t, domain.Block{
		Kind:    domain.BlockCode,
		Content: domain.PlainText("plain"),
	})
	assert.Equal(t, "```\nplain\n```\n", out)
}

func TestRender_BulletList(t *testing.T) {
	out := render(t, domain.Block{
		Kind:  domain.BlockList,
		Style: domain.ListBullet,
		Items: []domain.ListItem{{Text: "one"}, {Text: "two"}},
	})
	assert.Equal(t, "- one\n- two\n", out)
}

func TestRender_NumberedList(t *testing.T) {
	out := render(t, domain.Block{
		Kind:  domain.BlockList,
		Style: domain.ListNumbered,
		Items: []domain.ListItem{{Text: "first"}, {Text: "second"}, {Text: "third"}},
	})
	assert.Equal(t, "1. first\n2. second\n3. third\n", out)
}

func TestRender_UnknownKind(t *testing.T) {
	out := render(t, domain.Block{
		Kind:    domain.BlockKind("table"),
		Content: domain.PlainText("ignored"),
	})
	assert.Equal(t, "[Unsupported block type: table]\n", out)
}

func TestRender_BlocksSeparatedByBlankLine(t *testing.T) {
	out := render(t,
		domain.Block{Kind: domain.BlockHeading, Level: 2, Content: domain.PlainText("Intro")},
		domain.Block{Kind: domain.BlockParagraph, Content: domain.PlainText("Body.")},
	)
	assert.Equal(t, "## Intro\n\nBody.\n", out)
}

func TestRender_FormattedRuns(t *testing.T) {
	tests := []struct {
		name       string
		formatting domain.TextFormatting
		expected   string
	}{
		{"bold", domain.TextFormatting{Bold: true}, "**x**\n"},
		{"italic", domain.TextFormatting{Italic: true}, "*x*\n"},
		{"bold italic", domain.TextFormatting{Bold: true, Italic: true}, "***x***\n"},
		{"strikethrough", domain.TextFormatting{Strikethrough: true}, "~~x~~\n"},
		{"underline", domain.TextFormatting{Underline: true}, "<u>x</u>\n"},
		{"code wins", domain.TextFormatting{Code: true, Bold: true}, "`x`\n"},
		{"subscript", domain.TextFormatting{Subscript: true}, "<sub>x</sub>\n"},
		{"superscript", domain.TextFormatting{Superscript: true}, "<sup>x</sup>\n"},
		{"link", domain.TextFormatting{Link: "https://example.com"}, "[x](https://example.com)\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := render(t, domain.Block{
				Kind: domain.BlockParagraph,
				Content: domain.Runs([]domain.FormattedRun{
					{Text: "x", Formatting: tc.formatting},
				}),
			})
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestRender_MixedRuns(t *testing.T) {
	out := render(t, domain.Block{
		Kind: domain.BlockParagraph,
		Content: domain.Runs([]domain.FormattedRun{
			{Text: "plain "},
			{Text: "bold", Formatting: domain.TextFormatting{Bold: true}},
			{Text: " tail"},
		}),
	})
	assert.Equal(t, "plain **bold** tail\n", out)
}

func TestRender_EmptyRunSkipped(t *testing.T) {
	out := render(t, domain.Block{
		Kind: domain.BlockParagraph,
		Content: domain.Runs([]domain.FormattedRun{
			{Text: ""},
			{Text: "kept"},
		}),
	})
	assert.Equal(t, "kept\n", out)
}

func TestRender_EmptyInput(t *testing.T) {
	out, err := NewMarkdown().Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "\n", string(out))
}
