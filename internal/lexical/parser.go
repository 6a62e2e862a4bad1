// Package lexical parses serialized Lexical editor trees into flat block
// sequences. Parsing is deliberately liberal: wrapper nodes the editor
// introduces are recursed into rather than rejected, and malformed nodes
// are skipped so one bad node never fails the whole template.
package lexical

import (
	"encoding/json"
	"strings"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
)

// Node is one element of a Lexical tree. Fields beyond Type are
// populated per node kind; absent fields unmarshal to zero values.
type Node struct {
	Type       string `json:"type"`
	Children   []Node `json:"children,omitempty"`
	Text       string `json:"text,omitempty"`
	Format     int    `json:"format,omitempty"`
	Style      string `json:"style,omitempty"`
	Level      int    `json:"level,omitempty"`
	Language   string `json:"language,omitempty"`
	ListType   string `json:"listType,omitempty"`
	URL        string `json:"url,omitempty"`
	VariableID string `json:"variableId,omitempty"`
}

// Tree is the root document wrapper.
type Tree struct {
	Root Node `json:"root"`
}

// Parse unmarshals serialized Lexical JSON and converts it to blocks.
func Parse(data []byte) ([]domain.Block, error) {
	if len(data) == 0 {
		return []domain.Block{}, nil
	}
	var tree Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return ParseTree(&tree), nil
}

// ParseTree converts a Lexical tree into an ordered block sequence.
// An empty or nil tree yields an empty slice, never an error.
func ParseTree(tree *Tree) []domain.Block {
	blocks := []domain.Block{}
	if tree == nil {
		return blocks
	}
	walkNodes(tree.Root.Children, &blocks)
	return blocks
}

// walkNodes appends one block per recognised container node. Unrecognised
// container types are not emitted; their children are walked in place so
// editor decoration nodes do not break extraction.
func walkNodes(nodes []Node, blocks *[]domain.Block) {
	for i := range nodes {
		node := &nodes[i]
		switch node.Type {
		case "paragraph":
			*blocks = append(*blocks, domain.Block{
				Kind:    domain.BlockParagraph,
				Content: simplify(extractRuns(node.Children)),
			})

		case "heading":
			level := node.Level
			if level < 1 {
				level = 1
			}
			*blocks = append(*blocks, domain.Block{
				Kind:    domain.BlockHeading,
				Content: simplify(extractRuns(node.Children)),
				Level:   level,
			})

		case "quote":
			*blocks = append(*blocks, domain.Block{
				Kind:    domain.BlockQuote,
				Content: simplify(extractRuns(node.Children)),
			})

		case "code":
			// Code blocks are always plain text.
			runs := extractRuns(node.Children)
			var text strings.Builder
			for _, r := range runs {
				text.WriteString(r.Text)
			}
			*blocks = append(*blocks, domain.Block{
				Kind:     domain.BlockCode,
				Content:  domain.PlainText(text.String()),
				Language: node.Language,
			})

		case "list":
			style := domain.ListStyle(node.ListType)
			if style == "" {
				style = domain.ListBullet
			}
			var items []domain.ListItem
			for j := range node.Children {
				li := &node.Children[j]
				if li.Type != "listitem" {
					continue
				}
				// List items flatten to plain text.
				var text strings.Builder
				for _, r := range extractRuns(li.Children) {
					text.WriteString(r.Text)
				}
				items = append(items, domain.ListItem{Text: text.String()})
			}
			*blocks = append(*blocks, domain.Block{
				Kind:  domain.BlockList,
				Style: style,
				Items: items,
			})

		default:
			walkNodes(node.Children, blocks)
		}
	}
}

// extractRuns flattens leaf nodes into formatted runs in document order.
func extractRuns(nodes []Node) []domain.FormattedRun {
	var runs []domain.FormattedRun
	for i := range nodes {
		node := &nodes[i]
		switch node.Type {
		case "text":
			runs = append(runs, domain.FormattedRun{
				Text:       node.Text,
				Formatting: decodeFormatting(node),
			})

		case "variable":
			// Variable leaves behave like text but keep their reference
			// for the resolver.
			runs = append(runs, domain.FormattedRun{
				Text:        node.Text,
				Formatting:  decodeFormatting(node),
				VariableRef: node.VariableID,
			})

		case "link":
			// Link children collapse to a single run carrying the URL.
			var text strings.Builder
			for _, child := range node.Children {
				text.WriteString(child.Text)
			}
			runs = append(runs, domain.FormattedRun{
				Text:       text.String(),
				Formatting: domain.TextFormatting{Link: node.URL},
			})

		default:
			runs = append(runs, extractRuns(node.Children)...)
		}
	}
	return runs
}

// decodeFormatting combines the format bitmask with the CSS-like style
// string of a text or variable leaf.
func decodeFormatting(node *Node) domain.TextFormatting {
	formatting := domain.FormattingFromBitmask(node.Format)
	applyStyle(&formatting, node.Style)
	return formatting
}

// applyStyle parses semicolon-separated "property: value" pairs,
// recognising the font properties the editor emits. Unknown properties
// are ignored.
func applyStyle(formatting *domain.TextFormatting, style string) {
	if style == "" {
		return
	}
	for _, part := range strings.Split(style, ";") {
		property, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		property = strings.TrimSpace(property)
		value = strings.TrimSpace(value)

		switch property {
		case "font-family":
			formatting.FontName = strings.Trim(value, `'"`)
		case "font-size":
			formatting.FontSize = value
		case "color":
			formatting.FontColor = value
		case "background-color":
			formatting.BackgroundColor = value
		}
	}
}

// simplify collapses a run sequence to plain text when no run carries
// any formatting effect or variable reference. Downstream resolvers
// branch on plain-vs-runs content, so this must stay stable.
func simplify(runs []domain.FormattedRun) domain.Content {
	for _, r := range runs {
		if !r.Formatting.IsZero() || r.VariableRef != "" {
			return domain.Runs(runs)
		}
	}
	var text strings.Builder
	for _, r := range runs {
		text.WriteString(r.Text)
	}
	return domain.PlainText(text.String())
}
