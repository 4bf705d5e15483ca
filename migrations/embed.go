// Package migrations embeds the SQL schema migrations. The server applies
// them at boot and the repo integration tests apply them in TestMain, both
// through goose's programmatic API.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time, so the binary
// never depends on a migrations directory being present at runtime.
//
//go:embed *.sql
var FS embed.FS
