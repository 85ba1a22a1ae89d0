package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	UpDownSeparator     = "-- +migrate Up"
	downMarker          = "-- +migrate Down"
	dbPrefixReplacer    = "/*dbprefix*/"
	NoLimitMigrations   = 0 // indicate that there is no limit on the number of migrations to run
	migrationDirections = 2
)

type Migration struct {
	ID     string
	SQL    string
	Prefix string
}

// RunMigrationsDB applies every pending migration upwards.
func RunMigrationsDB(log *logger.Logger, db *sql.DB, dialect Dialect, migrations []Migration) error {
	_, err := RunMigrationsDBExtended(log, db, dialect, migrations, migrate.Up, NoLimitMigrations)
	return err
}

// RunMigrationsDBExtended runs at most maxMigrations migrations in direction dir
// and returns how many were applied. Pass NoLimitMigrations for no limit.
func RunMigrationsDBExtended(log *logger.Logger,
	db *sql.DB,
	dialect Dialect,
	migrations []Migration,
	dir migrate.MigrationDirection,
	maxMigrations int) (int, error) {
	source, err := memorySource(migrations)
	if err != nil {
		return 0, err
	}

	ids := make([]string, 0, len(source.Migrations))
	for _, m := range source.Migrations {
		ids = append(ids, m.Id)
	}
	list := strings.Join(ids, ", ")

	log.Debugf("running %s migrations (max %d/%d): %s", dialect.Name, maxMigrations, len(ids), list)

	n, err := migrate.ExecMax(db, dialect.Migrate, source, dir, maxMigrations)
	if err != nil {
		return n, fmt.Errorf("error executing migrations (max %d/%d) %s: %w", maxMigrations, len(ids), list, err)
	}

	log.Infof("successfully ran %d migrations from: %s", n, list)
	return n, nil
}

func memorySource(migrations []Migration) (*migrate.MemoryMigrationSource, error) {
	source := &migrate.MemoryMigrationSource{Migrations: make([]*migrate.Migration, 0, len(migrations))}

	for _, m := range migrations {
		prefixed := strings.ReplaceAll(m.SQL, dbPrefixReplacer, m.Prefix)
		parts := strings.Split(prefixed, UpDownSeparator)
		if len(parts) < migrationDirections {
			return nil, fmt.Errorf("migration %s missing '%s' separator", m.ID, UpDownSeparator)
		}

		down := parts[0]
		if idx := strings.Index(down, downMarker); idx != -1 {
			down = down[idx+len(downMarker):]
		}

		source.Migrations = append(source.Migrations, &migrate.Migration{
			Id:   m.Prefix + m.ID,
			Up:   []string{strings.TrimSpace(parts[1])},
			Down: []string{strings.TrimSpace(down)},
		})
	}

	return source, nil
}
