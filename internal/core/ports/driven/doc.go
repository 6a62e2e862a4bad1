// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentStore: Reference document and chunk persistence
//   - TemplateStore: Template persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. Without it, ingestion and retrieval are disabled.
//   - LLMService: Language model operations. Without it, prompt tokens cannot be resolved.
//   - TextExtractor: File text extraction. Without it, only raw text can be ingested.
//   - PromptStore: Named prompt templates on disk.
//   - Renderer: Serialises resolved blocks to an output format.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
