// Package migrations holds the goose SQL migrations for each SQL dialect.
package migrations

import "embed"

// FS contains the postgres/ and sqlite/ migration directories.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Migration directories inside FS
const (
	DirPostgres = "postgres"
	DirSQLite   = "sqlite"
)
