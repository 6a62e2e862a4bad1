package domain

// BlockKind identifies the structural type of a parsed block.
type BlockKind string

// Block kinds produced by the lexical parser.
const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockQuote     BlockKind = "quote"
	BlockCode      BlockKind = "code"
	BlockList      BlockKind = "list"
)

// ListStyle identifies how list items are marked.
type ListStyle string

// List styles carried by list blocks.
const (
	ListBullet   ListStyle = "bullet"
	ListNumbered ListStyle = "number"
)

// Format bitmask values used by the Lexical editor on text leaves.
// These exact values are part of the tree format and must not change.
const (
	FormatBold          = 1
	FormatItalic        = 2
	FormatUnderline     = 4
	FormatStrikethrough = 8
	FormatCode          = 16
	FormatSubscript     = 32
	FormatSuperscript   = 64
)

// TextFormatting holds the decoded formatting flags and style properties
// for a single run of text.
type TextFormatting struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Code          bool
	Subscript     bool
	Superscript   bool

	// Style properties parsed from the CSS-like style string.
	FontName        string
	FontSize        string
	FontColor       string
	BackgroundColor string

	// Link is the target URL when the run came from a link node.
	Link string
}

// IsZero reports whether no formatting effect applies to the run.
// Runs where every segment is zero-formatted collapse to plain text blocks.
func (f TextFormatting) IsZero() bool {
	return f == TextFormatting{}
}

// FormattingFromBitmask decodes the Lexical integer format bitmask.
func FormattingFromBitmask(mask int) TextFormatting {
	return TextFormatting{
		Bold:          mask&FormatBold != 0,
		Italic:        mask&FormatItalic != 0,
		Underline:     mask&FormatUnderline != 0,
		Strikethrough: mask&FormatStrikethrough != 0,
		Code:          mask&FormatCode != 0,
		Subscript:     mask&FormatSubscript != 0,
		Superscript:   mask&FormatSuperscript != 0,
	}
}

// FormattedRun is a contiguous span of text sharing one formatting set.
type FormattedRun struct {
	// Text is the run content.
	Text string

	// Formatting is the decoded formatting for the run.
	Formatting TextFormatting

	// VariableRef points to a Variable by ID when the run came from a
	// variable node. It is cleared by the resolver after resolution.
	VariableRef string
}

// Content is the tagged content of a block: either plain text or a
// sequence of formatted runs, never both.
type Content struct {
	plain string
	runs  []FormattedRun
	isRun bool
}

// PlainText builds plain string content.
func PlainText(text string) Content {
	return Content{plain: text}
}

// Runs builds formatted run content.
func Runs(runs []FormattedRun) Content {
	return Content{runs: runs, isRun: true}
}

// IsRuns reports whether the content is a run sequence.
func (c Content) IsRuns() bool {
	return c.isRun
}

// Plain returns the plain text. For run content it returns the
// concatenation of all run texts.
func (c Content) Plain() string {
	if !c.isRun {
		return c.plain
	}
	var out string
	for _, r := range c.runs {
		out += r.Text
	}
	return out
}

// FormattedRuns returns the run sequence, or nil for plain content.
func (c Content) FormattedRuns() []FormattedRun {
	return c.runs
}

// ListItem is one entry in a list block. List items are always flattened
// to plain text by the parser.
type ListItem struct {
	Text string
}

// Block is one structural unit extracted from a Lexical tree.
// Blocks are immutable value objects built fresh on every parse.
type Block struct {
	// Kind is the structural type.
	Kind BlockKind

	// Content holds the block text, plain or formatted.
	// Unused for list blocks.
	Content Content

	// Level is the heading level (1-6), headings only.
	Level int

	// Language is the code language tag, code blocks only.
	Language string

	// Style is the item marker style, list blocks only.
	Style ListStyle

	// Items are the list entries, list blocks only.
	Items []ListItem
}
