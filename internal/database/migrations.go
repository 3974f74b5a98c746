package database

import "embed"

// MigrationsFS содержит SQL-миграции для обоих диалектов:
// migrations/postgres и migrations/sqlite.
//
//go:embed migrations
var MigrationsFS embed.FS

const (
	PostgresMigrationsPath = "migrations/postgres"
	SQLiteMigrationsPath   = "migrations/sqlite"
)
