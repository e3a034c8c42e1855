package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"0002_add_index.sql",
		"0001_init.sql",
		"0001_init_rollback.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "0003_dir.sql"), 0o755))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_add_index.sql"}, files)

	_, err = migrationFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestMigrationNames(t *testing.T) {
	assert.Equal(t, "0001", migrationVersion("0001_init.sql"))
	assert.Equal(t, "0007", migrationVersion("0007.sql"))
	assert.Equal(t, "0001_init_rollback.sql", rollbackFile("0001_init.sql"))
}

func TestShippedMigrationsHaveRollbacks(t *testing.T) {
	dir := filepath.Join("..", "..", "migrations")
	files, err := migrationFiles(dir)
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		_, err := os.Stat(filepath.Join(dir, rollbackFile(f)))
		assert.NoError(t, err, "missing rollback for %s", f)
	}
}
