package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/journal/internal/database"
)

// migrationsSource returns the golang-migrate source URL for a driver.
func migrationsSource(driver string) (string, error) {
	switch driver {
	case database.DriverPostgres:
		return "file://migrations/postgresql", nil
	case database.DriverMySQL:
		return "file://migrations/mysql", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// migrationsURL adapts the connection string to what golang-migrate expects.
// The mysql driver takes a DSN without scheme while migrate needs mysql:// and
// multiStatements to run a migration file with several statements.
func migrationsURL(driver, connectionString string) string {
	if driver != database.DriverMySQL {
		return connectionString
	}
	if !strings.HasPrefix(connectionString, "mysql://") {
		connectionString = "mysql://" + connectionString
	}
	if strings.Contains(connectionString, "multiStatements=") {
		return connectionString
	}
	if strings.Contains(connectionString, "?") {
		return connectionString + "&multiStatements=true"
	}
	return connectionString + "?multiStatements=true"
}

// RunMigrations applies every pending migration for the configured driver.
// Returns nil when the schema is already up to date.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	source, err := migrationsSource(driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	m, err := migrate.New(source, migrationsURL(driver, connectionString))
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
