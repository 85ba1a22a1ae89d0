package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/goran-ethernal/NomadIndexer/internal/db"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
)

//go:embed 001_messages.sql
var mig001 string

//go:embed 002_events.sql
var mig002 string

//go:embed 003_kv_storage.sql
var mig003 string

// All returns the schema migrations in application order.
func All() []db.Migration {
	return []db.Migration{
		{ID: "001_messages.sql", SQL: mig001},
		{ID: "002_events.sql", SQL: mig002},
		{ID: "003_kv_storage.sql", SQL: mig003},
	}
}

// Run brings the store schema up to date.
func Run(log *logger.Logger, sqlDB *sql.DB, dialect db.Dialect) error {
	return db.RunMigrationsDB(log, sqlDB, dialect, All())
}
