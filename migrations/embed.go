package migrations

import "embed"

// Files holds the SQLite schema migrations applied in filename order at startup.
//
//go:embed *.sql
var Files embed.FS
