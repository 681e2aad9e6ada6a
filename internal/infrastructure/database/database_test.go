package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanbancal/core/internal/infrastructure/config"
)

func sqliteConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "kanban.db"),
	}
}

func TestMigrateUpCreatesTables(t *testing.T) {
	cfg := sqliteConfig(t)

	require.NoError(t, Migrate(cfg, MigrateUp))

	db, err := New(cfg)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"kanban_cards", "kanban_comments", "kanban_projects"} {
		var name string
		err := db.DB.Get(&name, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	version, dirty, err := MigrationVersion(cfg)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestMigrateUpTwiceReportsNoChange(t *testing.T) {
	cfg := sqliteConfig(t)

	require.NoError(t, Migrate(cfg, MigrateUp))
	assert.ErrorIs(t, Migrate(cfg, MigrateUp), ErrNoChange)
}

func TestMigrateDownDropsTables(t *testing.T) {
	cfg := sqliteConfig(t)

	require.NoError(t, Migrate(cfg, MigrateUp))
	require.NoError(t, Migrate(cfg, MigrateDown))

	db, err := New(cfg)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.DB.Get(&count, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name LIKE 'kanban_%'"))
	assert.Zero(t, count)
}

func TestMigrateRejectsUnknownDirection(t *testing.T) {
	err := Migrate(sqliteConfig(t), "sideways")
	assert.ErrorContains(t, err, "unknown migration direction")
}

func TestHealthCheck(t *testing.T) {
	db, err := New(sqliteConfig(t))
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.HealthCheck(context.Background()))
	info := db.GetConnectionInfo()
	assert.Equal(t, config.DriverSQLite, info["driver"])
	assert.Equal(t, 1, info["max_open_connections"])
}
