// Package migrations embeds the goose SQL migrations for every supported
// database dialect. Each dialect lives in its own directory.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Directories of Migrations, by goose dialect family.
const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)
