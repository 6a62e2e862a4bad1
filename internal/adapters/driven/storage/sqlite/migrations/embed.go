// Package migrations embeds the schema migrations applied by the SQLite
// document store on startup.
package migrations

import "embed"

// FS holds the numbered .sql migration files, applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
