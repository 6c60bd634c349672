package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator applies the SQL migrations under migrations/ to a Postgres
// database, tracking the applied version in the schema_migrations table.
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

func New(db *sql.DB, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}

	return &Migrator{migrate: m, logger: logger}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up() error {
	m.logger.Info("Applying pending migrations")

	if done, err := m.noChange(m.migrate.Up(), "No migrations to apply"); done || err != nil {
		if err != nil {
			return fmt.Errorf("migration up: %w", err)
		}
		return nil
	}

	m.logVersion("Migrations applied")
	return nil
}

// Down rolls back every applied migration.
func (m *Migrator) Down() error {
	m.logger.Info("Rolling back all migrations")

	if done, err := m.noChange(m.migrate.Down(), "No migrations to roll back"); done || err != nil {
		if err != nil {
			return fmt.Errorf("migration down: %w", err)
		}
		return nil
	}

	m.logger.Info("All migrations rolled back")
	return nil
}

// Steps applies n migrations forward, or rolls back -n when negative.
func (m *Migrator) Steps(n int) error {
	m.logger.Info("Stepping migrations", zap.Int("steps", n))

	if done, err := m.noChange(m.migrate.Steps(n), "No migrations to apply"); done || err != nil {
		if err != nil {
			return fmt.Errorf("migration steps: %w", err)
		}
		return nil
	}

	m.logVersion("Migration steps applied")
	return nil
}

// GoTo migrates up or down until the given version is the current one.
func (m *Migrator) GoTo(version uint) error {
	m.logger.Info("Migrating to version", zap.Uint("target_version", version))

	if done, err := m.noChange(m.migrate.Migrate(version), "Already at target version"); done || err != nil {
		if err != nil {
			return fmt.Errorf("migrate to version %d: %w", version, err)
		}
		return nil
	}

	m.logger.Info("Migrated to version", zap.Uint("version", version))
	return nil
}

// Version reports the current version and whether the schema is dirty.
// A database with no applied migrations reports version 0.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version without running any migration.
// Only for recovering a dirty schema state.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))

	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object in the database, data included.
func (m *Migrator) Drop() error {
	m.logger.Warn("Dropping all database objects")

	if err := m.migrate.Drop(); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	return nil
}

func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}

// noChange folds golang-migrate's ErrNoChange into a logged no-op.
func (m *Migrator) noChange(err error, msg string) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info(msg)
		return true, nil
	}
	return false, err
}

func (m *Migrator) logVersion(msg string) {
	version, dirty, err := m.migrate.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		m.logger.Warn("Could not read migration version", zap.Error(err))
		return
	}
	m.logger.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}
