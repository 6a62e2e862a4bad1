// Package driving defines the interfaces external actors use to drive
// the application: the CLI commands and the MCP server both talk to the
// core exclusively through these ports.
//
// Implementations live in internal/core/services.
package driving
