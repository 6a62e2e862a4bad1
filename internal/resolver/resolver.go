// Package resolver substitutes dynamic tokens in parsed blocks.
// Placeholders ({{name}}) fill from a context map, prompt tokens
// ([[key]]) and prompt variables invoke the LLM service, optionally
// grounded in retrieved context. Missing data fails open as visible
// inline text; upstream LLM failures abort resolution.
package resolver

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/quill-cli/internal/core/domain"
	"github.com/custodia-labs/quill-cli/internal/core/ports/driven"
)

// Token patterns. (?s) gives dot-matches-newline so prompt bodies may
// span lines; the inner group is non-greedy.
var (
	placeholderPattern = regexp.MustCompile(`(?s)\{\{(.*?)\}\}`)
	promptPattern      = regexp.MustCompile(`(?s)\[\[(.*?)\]\]`)
)

// Input carries the data one resolution pass substitutes from.
type Input struct {
	// Context maps placeholder identifiers to replacement values.
	Context map[string]string

	// Prompts maps prompt keys to prompt templates.
	Prompts map[string]string

	// Variables maps variable IDs to their definitions.
	Variables map[string]domain.Variable

	// Retrieved is the grounding context passed to every LLM call.
	Retrieved []domain.ContextItem
}

// Resolver walks blocks in document order and substitutes tokens.
type Resolver struct {
	llm driven.LLMService
}

// New creates a resolver. The LLM service may be nil; resolving a
// prompt token or prompt variable then fails with domain.ErrLLMUnavailable.
func New(llm driven.LLMService) *Resolver {
	return &Resolver{llm: llm}
}

// Resolve returns a new block sequence with all tokens substituted.
// Input blocks are never mutated. Each prompt token and prompt variable
// occurrence triggers its own LLM call, even when the resolved prompt
// text is identical; callers relying on per-occurrence generation get
// exactly that.
func (r *Resolver) Resolve(ctx context.Context, blocks []domain.Block, in Input) ([]domain.Block, error) {
	resolved := make([]domain.Block, 0, len(blocks))
	for _, block := range blocks {
		out, err := r.resolveBlock(ctx, block, in)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, out)
	}
	return resolved, nil
}

func (r *Resolver) resolveBlock(ctx context.Context, block domain.Block, in Input) (domain.Block, error) {
	switch block.Kind {
	case domain.BlockList:
		items := make([]domain.ListItem, 0, len(block.Items))
		for _, item := range block.Items {
			text, err := r.resolveText(ctx, item.Text, in)
			if err != nil {
				return domain.Block{}, err
			}
			items = append(items, domain.ListItem{Text: text})
		}
		block.Items = items
		return block, nil

	default:
		content, err := r.resolveContent(ctx, block.Content, in)
		if err != nil {
			return domain.Block{}, err
		}
		block.Content = content
		return block, nil
	}
}

func (r *Resolver) resolveContent(ctx context.Context, content domain.Content, in Input) (domain.Content, error) {
	if !content.IsRuns() {
		text, err := r.resolveText(ctx, content.Plain(), in)
		if err != nil {
			return domain.Content{}, err
		}
		return domain.PlainText(text), nil
	}

	runs := content.FormattedRuns()
	resolved := make([]domain.FormattedRun, 0, len(runs))
	for _, run := range runs {
		out, err := r.resolveRun(ctx, run, in)
		if err != nil {
			return domain.Content{}, err
		}
		resolved = append(resolved, out)
	}
	return domain.Runs(resolved), nil
}

// resolveRun handles a single formatted run. Variable references take
// priority over token scanning; the reference is cleared either way so
// resolved output carries none.
func (r *Resolver) resolveRun(ctx context.Context, run domain.FormattedRun, in Input) (domain.FormattedRun, error) {
	if run.VariableRef != "" {
		text, err := r.resolveVariable(ctx, run, in)
		if err != nil {
			return domain.FormattedRun{}, err
		}
		run.Text = text
		run.VariableRef = ""
		return run, nil
	}

	text, err := r.resolveText(ctx, run.Text, in)
	if err != nil {
		return domain.FormattedRun{}, err
	}
	run.Text = text
	return run, nil
}

// resolveVariable applies the variable's strategy. An unknown ID keeps
// the run's original text so a partially supplied variable set never
// blanks out content.
func (r *Resolver) resolveVariable(ctx context.Context, run domain.FormattedRun, in Input) (string, error) {
	variable, ok := in.Variables[run.VariableRef]
	if !ok {
		return run.Text, nil
	}

	switch variable.Type {
	case domain.VariablePrompt:
		prompt := ResolvePlaceholders(variable.PromptTemplate, in.Context)
		text, err := r.generate(ctx, prompt, in.Retrieved)
		if err != nil {
			return "", fmt.Errorf("resolving variable %q: %w", variable.ID, err)
		}
		return text, nil

	default:
		if value, ok := in.Context[variable.Name]; ok {
			return value, nil
		}
		return variable.DefaultValue, nil
	}
}

// resolveText substitutes placeholders first, then prompt tokens, so a
// prompt template may itself reference context values.
func (r *Resolver) resolveText(ctx context.Context, text string, in Input) (string, error) {
	text = ResolvePlaceholders(text, in.Context)
	return r.resolvePrompts(ctx, text, in)
}

// ResolvePlaceholders replaces {{identifier}} tokens from the context
// map. Unknown identifiers are preserved verbatim so a partially filled
// context never corrupts surrounding text.
func ResolvePlaceholders(text string, contextMap map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		identifier := strings.TrimSpace(token[2 : len(token)-2])
		if value, ok := contextMap[identifier]; ok {
			return value
		}
		return token
	})
}

// resolvePrompts replaces [[key]] tokens with LLM-generated text. A
// missing key substitutes a visible diagnostic string instead of
// failing; an LLM error aborts with the offending key attached.
func (r *Resolver) resolvePrompts(ctx context.Context, text string, in Input) (string, error) {
	matches := promptPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	var out strings.Builder
	last := 0
	for _, m := range matches {
		out.WriteString(text[last:m[0]])
		last = m[1]

		key := strings.TrimSpace(text[m[2]:m[3]])
		template, ok := in.Prompts[key]
		if !ok || template == "" {
			fmt.Fprintf(&out, "[Missing prompt for key: %s]", key)
			continue
		}

		prompt := ResolvePlaceholders(template, in.Context)
		generated, err := r.generate(ctx, prompt, in.Retrieved)
		if err != nil {
			return "", fmt.Errorf("resolving prompt %q: %w", key, err)
		}
		out.WriteString(generated)
	}
	out.WriteString(text[last:])
	return out.String(), nil
}

func (r *Resolver) generate(ctx context.Context, prompt string, retrieved []domain.ContextItem) (string, error) {
	if r.llm == nil {
		return "", domain.ErrLLMUnavailable
	}
	if err := ctx.Err(); err != nil {
		// A cancelled request stops issuing further LLM calls.
		return "", err
	}
	return r.llm.Generate(ctx, prompt, retrieved)
}
