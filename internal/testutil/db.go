// Package testutil provides helpers shared by package tests
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/kanbancal/core/internal/infrastructure/config"
	"github.com/kanbancal/core/internal/infrastructure/database"
	"github.com/kanbancal/core/internal/infrastructure/logger"
)

// SQLiteConfig returns a database config pointing at a fresh file in a temp dir
func SQLiteConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		Path:        filepath.Join(t.TempDir(), "kanban.db"),
		AutoMigrate: true,
	}
}

// SetupTestDB creates a migrated SQLite database that is closed when the test ends
func SetupTestDB(t *testing.T) *database.DB {
	t.Helper()

	cfg := SQLiteConfig(t)
	if err := database.Migrate(cfg, database.MigrateUp); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// Logger returns a logger that discards output
func Logger() *logger.Logger {
	return logger.NewNop()
}
