package migrations

import "embed"

// Migrations holds the goose SQL migrations, applied at startup.
//
//go:embed *.sql
var Migrations embed.FS
