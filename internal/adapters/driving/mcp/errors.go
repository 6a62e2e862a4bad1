// Package mcp provides an MCP (Model Context Protocol) server adapter for Quill.
// It lets AI assistants generate documents from templates and manage the
// local reference corpus.
package mcp

import "errors"

// ErrMissingGenerationService is returned when the generation service is not provided.
var ErrMissingGenerationService = errors.New("mcp: generation service is required")
