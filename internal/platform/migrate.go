// Package platform owns the database schema. Migrations are embedded so a
// fresh deployment needs nothing beyond a reachable Postgres.
package platform

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// AutoMigrate applies all pending migrations. Already-applied migrations
// are a no-op, so daemons run it unconditionally at startup.
func AutoMigrate(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		version, dirty, verr := m.Version()
		if verr != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		return fmt.Errorf("run migrations (schema at version %d, dirty=%v): %w", version, dirty, err)
	}

	return nil
}
