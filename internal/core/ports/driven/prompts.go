package driven

// PromptStore provides access to reusable prompt templates, keyed by
// the prompt identifier that appears inside [[...]] tokens in a
// template. Implementations may load prompts from files, embed them in
// the binary, or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given key.
	// Returns an error when no template with that key exists.
	Load(name string) (string, error)

	// List returns the keys of all stored prompt templates.
	List() ([]string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}
