package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/lawoffice/intake/internal/database"
)

// RunMigrations applies every pending migration for the configured driver.
// Migrations are read from basePath/<dir>, where dir is postgresql, mysql or sqlite3.
// Returns nil when the schema is already current.
func RunMigrations(logger *slog.Logger, driver, connectionString, basePath string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	dir, err := migrationsDir(driver)
	if err != nil {
		return err
	}

	sourceURL := "file://" + filepath.ToSlash(filepath.Join(basePath, dir))
	m, err := migrate.New(sourceURL, migrateDatabaseURL(driver, connectionString))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

func migrationsDir(driver string) (string, error) {
	switch driver {
	case database.DriverPostgres:
		return "postgresql", nil
	case database.DriverMySQL:
		return "mysql", nil
	case database.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// migrateDatabaseURL turns a database/sql DSN into the URL form golang-migrate expects.
// MySQL and SQLite DSNs carry no scheme; PostgreSQL DSNs already are URLs.
func migrateDatabaseURL(driver, connectionString string) string {
	switch driver {
	case database.DriverMySQL:
		if !strings.HasPrefix(connectionString, "mysql://") {
			return "mysql://" + connectionString
		}
	case database.DriverSQLite:
		if !strings.HasPrefix(connectionString, "sqlite3://") {
			return "sqlite3://" + connectionString
		}
	}
	return connectionString
}
