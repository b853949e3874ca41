package store

import (
	"embed"
	"errors"
	"fmt"

	"github.com/datallboy/ytweb/internal/infra/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFiles embed.FS

func (s *PersistentStore) RunMigrations() error {
	d, err := iofs.New(migrationFiles, "migrations/"+s.driver)
	if err != nil {
		return err
	}

	var driver database.Driver
	switch s.driver {
	case config.StoreDriverPostgres:
		driver, err = pgxmigrate.WithInstance(s.db, &pgxmigrate.Config{})
	default:
		// This driver works with modernc.org/sqlite as well
		driver, err = sqlite.WithInstance(s.db, &sqlite.Config{})
	}
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", d, s.driver, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}
