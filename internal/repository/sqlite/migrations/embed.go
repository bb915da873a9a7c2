// Package migrations holds the SQLite schema and applies it with goose.
package migrations

import "embed"

// FS contains the versioned goose migration files.
//
//go:embed *.sql
var FS embed.FS
