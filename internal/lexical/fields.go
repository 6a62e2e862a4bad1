package lexical

import (
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
)

// Token patterns for field discovery. (?s) lets prompt bodies span lines.
var (
	placeholderPattern = regexp.MustCompile(`(?s)\{\{(.*?)\}\}`)
	promptPattern      = regexp.MustCompile(`(?s)\[\[(.*?)\]\]`)
)

// ExtractFields scans a serialized template for {{placeholder}} and
// [[prompt]] tokens across every text leaf, returning sorted, distinct
// identifiers. Used by UIs to know which inputs to collect.
func ExtractFields(data []byte) (*domain.TemplateFields, error) {
	blocks, err := Parse(data)
	if err != nil {
		return nil, err
	}

	placeholders := make(map[string]struct{})
	prompts := make(map[string]struct{})

	collect := func(text string) {
		for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
			placeholders[strings.TrimSpace(m[1])] = struct{}{}
		}
		for _, m := range promptPattern.FindAllStringSubmatch(text, -1) {
			prompts[strings.TrimSpace(m[1])] = struct{}{}
		}
	}

	for _, block := range blocks {
		if block.Kind == domain.BlockList {
			for _, item := range block.Items {
				collect(item.Text)
			}
			continue
		}
		if block.Content.IsRuns() {
			for _, run := range block.Content.FormattedRuns() {
				collect(run.Text)
			}
		} else {
			collect(block.Content.Plain())
		}
	}

	return &domain.TemplateFields{
		Placeholders: sortedKeys(placeholders),
		Prompts:      sortedKeys(prompts),
	}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
