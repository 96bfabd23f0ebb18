package predictionmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the prediction schema. Each file registers itself; names
// come from the file's timestamp prefix.
var Migrations = migrate.NewMigrations()
