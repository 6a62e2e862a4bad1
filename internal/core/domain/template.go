package domain

import "time"

// Template is a stored rich-text template: the raw Lexical JSON plus
// identifying metadata. The core never interprets the tree beyond parsing;
// persistence is a plain record store.
type Template struct {
	// ID is the unique identifier for the template.
	ID string

	// Name is the human-readable template name.
	Name string

	// LexicalJSON is the raw serialized Lexical tree.
	LexicalJSON []byte

	// CreatedAt is when the template was first saved.
	CreatedAt time.Time

	// UpdatedAt is when the template was last updated.
	UpdatedAt time.Time
}

// VariableType distinguishes plain-value variables from prompt-driven ones.
type VariableType string

// Variable types.
const (
	// VariableValue resolves from the context map by name.
	VariableValue VariableType = "value"

	// VariablePrompt resolves by filling a prompt template and calling
	// the LLM.
	VariablePrompt VariableType = "prompt"
)

// Variable is a named, typed substitution unit referenced by variable
// nodes in the tree. Variables are supplied per generation request and
// are not persisted by the core.
type Variable struct {
	// ID matches the VariableRef carried by formatted runs.
	ID string

	// Name is the lookup key into the context map for value variables.
	Name string

	// Type selects the resolution strategy.
	Type VariableType

	// DefaultValue is used when a value variable has no context entry.
	DefaultValue string

	// PromptTemplate is the LLM prompt for prompt variables. It may
	// contain {{placeholder}} tokens filled from the context map.
	PromptTemplate string
}

// TemplateFields lists the dynamic tokens discovered in a template,
// used by UIs to know which inputs to collect before generation.
type TemplateFields struct {
	// Placeholders are the distinct {{...}} identifiers, sorted.
	Placeholders []string

	// Prompts are the distinct [[...]] keys, sorted.
	Prompts []string
}
