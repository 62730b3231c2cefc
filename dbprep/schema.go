package dbprep

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// The migrations ship inside the binary, so schema preparation
// works wherever the binary runs.
//
//go:embed migrations/*.sql
var migrationFiles embed.FS

// connection settings, parsed from the environment.  This package
// sits below the storage package, so it carries its own copy.
type config struct {
	DatabaseURL string `env:"DATABASE_URL" envDefault:"postgres://localhost/dokugen?sslmode=disable"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379/"`
}

// newMigrator: build a migrator over the embedded migration files
// and the configured database.  The caller must Close it.
func newMigrator() (*migrate.Migrate, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("Couldn't parse configuration: %v", err)
	}
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("Couldn't read embedded migrations: %v", err)
	}
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("Couldn't open db at %q: %v", cfg.DatabaseURL, err)
	}
	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return nil, fmt.Errorf("Couldn't prepare migration driver: %v", err)
	}
	return migrate.NewWithInstance("iofs", src, "pgx", driver)
}

// SchemaUp creates the database tables
func SchemaUp() error {
	m, err := newMigrator()
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("Table creation had errors: %v", err)
	}
	return nil
}

// SchemaDown tears down the database tables
func SchemaDown() error {
	m, err := newMigrator()
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("Table deletion had errors: %v", err)
	}
	return nil
}

// SchemaVersion returns the version of the database, 0 when no
// migrations have been applied.
func SchemaVersion() (uint, error) {
	m, err := newMigrator()
	if err != nil {
		return 0, err
	}
	defer m.Close()
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if dirty {
		return version, fmt.Errorf("Database schema version %d is dirty", version)
	}
	return version, nil
}
